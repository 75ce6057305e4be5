package product

import "rentstock/internal/domain"

type PriceDTO struct {
	Daily   float64  `json:"daily" validate:"gte=0"`
	Weekly  *float64 `json:"weekly,omitempty" validate:"omitempty,gte=0"`
	Monthly *float64 `json:"monthly,omitempty" validate:"omitempty,gte=0"`
	Deposit float64  `json:"deposit" validate:"gte=0"`
}

type UpsertProductRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	Category    string   `json:"category" validate:"required"`
	Price       PriceDTO `json:"price" validate:"required"`
	StockTotal  int      `json:"stockTotal" validate:"gte=0"`
	ImageURL    string   `json:"imageUrl"`
}

func (r UpsertProductRequest) toSpec() Spec {
	return Spec{
		Name:        r.Name,
		Description: r.Description,
		Category:    r.Category,
		Price: domain.Price{
			Daily:   r.Price.Daily,
			Weekly:  r.Price.Weekly,
			Monthly: r.Price.Monthly,
			Deposit: r.Price.Deposit,
		},
		StockTotal: r.StockTotal,
		ImageURL:   r.ImageURL,
	}
}
