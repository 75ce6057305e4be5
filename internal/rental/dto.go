package rental

import "rentstock/internal/domain"

type RentalItemDTO struct {
	ProductID  string  `json:"productId" validate:"required"`
	Quantity   int     `json:"quantity" validate:"gte=1"`
	DailyPrice float64 `json:"dailyPrice" validate:"gte=0"`
	Deposit    float64 `json:"deposit" validate:"gte=0"`
}

type CreateRentalRequest struct {
	CustomerID      string          `json:"customerId" validate:"required"`
	Items           []RentalItemDTO `json:"items" validate:"required,min=1,dive"`
	StartDate       string          `json:"startDate" validate:"required"`
	EndDate         string          `json:"endDate" validate:"required"`
	TotalPrice      float64         `json:"totalPrice" validate:"gte=0"`
	TotalDeposit    float64         `json:"totalDeposit" validate:"gte=0"`
	DeliveryAddress *domain.Address `json:"deliveryAddress,omitempty"`
}

type UpdateRentalRequest struct {
	Status          *string          `json:"status,omitempty" validate:"omitempty,oneof=active overdue completed cancelled"`
	Items           *[]RentalItemDTO `json:"items,omitempty" validate:"omitempty,min=1,dive"`
	StartDate       *string          `json:"startDate,omitempty"`
	EndDate         *string          `json:"endDate,omitempty"`
	TotalPrice      *float64         `json:"totalPrice,omitempty" validate:"omitempty,gte=0"`
	TotalDeposit    *float64         `json:"totalDeposit,omitempty" validate:"omitempty,gte=0"`
	DeliveryAddress *domain.Address  `json:"deliveryAddress,omitempty"`
}

func itemsToDomain(items []RentalItemDTO) []domain.RentalItem {
	out := make([]domain.RentalItem, len(items))
	for i, it := range items {
		out[i] = domain.RentalItem{
			ProductID:  it.ProductID,
			Quantity:   it.Quantity,
			DailyPrice: it.DailyPrice,
			Deposit:    it.Deposit,
		}
	}
	return out
}

func (r CreateRentalRequest) toSpec() CreateSpec {
	return CreateSpec{
		CustomerID:      r.CustomerID,
		Items:           itemsToDomain(r.Items),
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		TotalPrice:      r.TotalPrice,
		TotalDeposit:    r.TotalDeposit,
		DeliveryAddress: r.DeliveryAddress,
	}
}

func (r UpdateRentalRequest) toPatch() Patch {
	p := Patch{
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		TotalPrice:      r.TotalPrice,
		TotalDeposit:    r.TotalDeposit,
		DeliveryAddress: r.DeliveryAddress,
	}
	if r.Status != nil {
		status := domain.RentalStatus(*r.Status)
		p.Status = &status
	}
	if r.Items != nil {
		items := itemsToDomain(*r.Items)
		p.Items = &items
	}
	return p
}
