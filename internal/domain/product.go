package domain

// Price carries the per-period rates quoted for a product. Weekly and
// monthly rates are optional; not every product is offered on those terms.
type Price struct {
	Daily   float64  `json:"daily"`
	Weekly  *float64 `json:"weekly,omitempty"`
	Monthly *float64 `json:"monthly,omitempty"`
	Deposit float64  `json:"deposit"`
}

type Product struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Description    string `json:"description"`
	Category       string `json:"category"`
	Price          Price  `json:"price"`
	StockTotal     int    `json:"stockTotal"`
	StockAvailable int    `json:"stockAvailable"`
	ImageURL       string `json:"imageUrl,omitempty"`
}

// OnLoan reports how many units are currently claimed by rentals.
func (p Product) OnLoan() int {
	return p.StockTotal - p.StockAvailable
}
