package rental

import "rentstock/internal/domain"

// Patch carries the optional fields of a rental update. A nil field is
// "leave unchanged"; a set field overwrites. CustomerID is deliberately
// absent: a rental never changes hands.
type Patch struct {
	Status          *domain.RentalStatus
	Items           *[]domain.RentalItem
	StartDate       *string
	EndDate         *string
	TotalPrice      *float64
	TotalDeposit    *float64
	DeliveryAddress *domain.Address
}

func (p Patch) apply(r domain.Rental) domain.Rental {
	if p.Status != nil {
		r.Status = *p.Status
	}
	if p.Items != nil {
		r.Items = *p.Items
	}
	if p.StartDate != nil {
		r.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		r.EndDate = *p.EndDate
	}
	if p.TotalPrice != nil {
		r.TotalPrice = *p.TotalPrice
	}
	if p.TotalDeposit != nil {
		r.TotalDeposit = *p.TotalDeposit
	}
	if p.DeliveryAddress != nil {
		r.DeliveryAddress = p.DeliveryAddress
	}
	return r
}
