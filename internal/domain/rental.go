package domain

type RentalStatus string

const (
	RentalActive    RentalStatus = "active"
	RentalOverdue   RentalStatus = "overdue"
	RentalCompleted RentalStatus = "completed"
	RentalCancelled RentalStatus = "cancelled"
)

// Terminal reports whether no further lifecycle transition is defined
// from s.
func (s RentalStatus) Terminal() bool {
	return s == RentalCompleted || s == RentalCancelled
}

func (s RentalStatus) Valid() bool {
	switch s {
	case RentalActive, RentalOverdue, RentalCompleted, RentalCancelled:
		return true
	}
	return false
}

// CanTransition reports whether the lifecycle allows moving from one
// status to another. Re-asserting the current status is always allowed;
// the rental state machine treats it as a no-op.
func CanTransition(from, to RentalStatus) bool {
	if from == to {
		return true
	}
	switch from {
	case RentalActive:
		return to == RentalOverdue || to == RentalCompleted || to == RentalCancelled
	case RentalOverdue:
		return to == RentalCompleted || to == RentalCancelled
	}
	return false
}

type RentalItem struct {
	ProductID  string  `json:"productId"`
	Quantity   int     `json:"quantity"`
	DailyPrice float64 `json:"dailyPrice"`
	Deposit    float64 `json:"deposit"`
}

type Rental struct {
	ID              string       `json:"id"`
	CustomerID      string       `json:"customerId"`
	Items           []RentalItem `json:"items"`
	StartDate       string       `json:"startDate"`
	EndDate         string       `json:"endDate"`
	TotalPrice      float64      `json:"totalPrice"`
	TotalDeposit    float64      `json:"totalDeposit"`
	DeliveryAddress *Address     `json:"deliveryAddress,omitempty"`
	Status          RentalStatus `json:"status"`
}

// HoldsStock reports whether the rental's item quantities are currently
// deducted from product availability.
func (r Rental) HoldsStock() bool {
	return r.Status == RentalActive || r.Status == RentalOverdue
}
