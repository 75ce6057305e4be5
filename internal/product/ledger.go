package product

import (
	"rentstock/internal/domain"

	apperrors "rentstock/internal/errors"
)

// Ledger applies stock movements to an in-memory product collection.
// Nothing here is persisted: the caller loads the collection inside a
// coordinator transaction, applies reservations and releases, and stages
// the result for commit. All-or-nothing behavior falls out of that
// split: abandoning the ledger abandons every movement.
type Ledger struct {
	products []domain.Product
}

func NewLedger(products []domain.Product) *Ledger {
	return &Ledger{products: products}
}

func (l *Ledger) find(productID string) int {
	for i := range l.products {
		if l.products[i].ID == productID {
			return i
		}
	}
	return -1
}

// Reserve claims quantity units of a product for a rental.
func (l *Ledger) Reserve(productID string, quantity int) (*domain.Product, error) {
	i := l.find(productID)
	if i < 0 {
		return nil, apperrors.NewNotFoundError("product", productID)
	}

	p := &l.products[i]
	if p.StockAvailable < quantity {
		return nil, apperrors.NewInsufficientStockError(productID, quantity, p.StockAvailable)
	}

	p.StockAvailable -= quantity
	return p, nil
}

// Release returns quantity units to a product's availability. There is
// no upper clamp against stockTotal: a capacity shrink while units are
// on loan legitimately pushes availability past the new total once those
// units come back, and clamping would silently destroy stock.
func (l *Ledger) Release(productID string, quantity int) (*domain.Product, error) {
	i := l.find(productID)
	if i < 0 {
		return nil, apperrors.NewNotFoundError("product", productID)
	}

	p := &l.products[i]
	p.StockAvailable += quantity
	return p, nil
}

// Products returns the collection with all movements applied.
func (l *Ledger) Products() []domain.Product {
	return l.products
}
