package product

import (
	"context"

	"rentstock/internal/domain"
	"rentstock/internal/store"

	apperrors "rentstock/internal/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Spec carries the writable fields of a product. Create and Update both
// take the full set; stockAvailable is never set directly.
type Spec struct {
	Name        string
	Description string
	Category    string
	Price       domain.Price
	StockTotal  int
	ImageURL    string
}

type Service struct {
	coord  *store.Coordinator
	logger *zap.Logger
}

func NewService(coord *store.Coordinator, logger *zap.Logger) *Service {
	return &Service{
		coord:  coord,
		logger: logger,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	err := s.coord.Exec(ctx, func(tx *store.Tx) error {
		var err error
		products, err = store.LoadAll[domain.Product](tx, store.Products)
		return err
	})
	if err != nil {
		return nil, err
	}
	return products, nil
}

// Create persists a new product with every unit available.
func (s *Service) Create(ctx context.Context, spec Spec) (domain.Product, error) {
	created := domain.Product{
		ID:             uuid.NewString(),
		Name:           spec.Name,
		Description:    spec.Description,
		Category:       spec.Category,
		Price:          spec.Price,
		StockTotal:     spec.StockTotal,
		StockAvailable: spec.StockTotal,
		ImageURL:       spec.ImageURL,
	}

	err := s.coord.Exec(ctx, func(tx *store.Tx) error {
		products, err := store.LoadAll[domain.Product](tx, store.Products)
		if err != nil {
			return err
		}
		return store.StageAll(tx, store.Products, append(products, created))
	})
	if err != nil {
		return domain.Product{}, err
	}

	s.logger.Info("product created",
		zap.String("productId", created.ID),
		zap.Int("stockTotal", created.StockTotal))
	return created, nil
}

// Update overwrites a product's fields. A stockTotal change moves
// stockAvailable by the same delta, which preserves the units currently
// on loan. Shrinking the total below the on-loan count drives
// stockAvailable negative; that is surfaced as-is rather than clamped,
// so the books still balance when those units are released.
func (s *Service) Update(ctx context.Context, id string, spec Spec) (domain.Product, error) {
	var updated domain.Product
	err := s.coord.Exec(ctx, func(tx *store.Tx) error {
		products, err := store.LoadAll[domain.Product](tx, store.Products)
		if err != nil {
			return err
		}

		idx := -1
		for i := range products {
			if products[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return apperrors.NewNotFoundError("product", id)
		}

		current := products[idx]
		delta := spec.StockTotal - current.StockTotal
		updated = domain.Product{
			ID:             id,
			Name:           spec.Name,
			Description:    spec.Description,
			Category:       spec.Category,
			Price:          spec.Price,
			StockTotal:     spec.StockTotal,
			StockAvailable: current.StockAvailable + delta,
			ImageURL:       spec.ImageURL,
		}
		products[idx] = updated

		return store.StageAll(tx, store.Products, products)
	})
	if err != nil {
		return domain.Product{}, err
	}

	s.logger.Info("product updated",
		zap.String("productId", id),
		zap.Int("stockTotal", updated.StockTotal),
		zap.Int("stockAvailable", updated.StockAvailable))
	return updated, nil
}

// Delete removes a product unconditionally. Rentals referencing it are
// left alone; their releases against the missing id are skipped later.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.coord.Exec(ctx, func(tx *store.Tx) error {
		products, err := store.LoadAll[domain.Product](tx, store.Products)
		if err != nil {
			return err
		}

		kept := products[:0]
		for _, p := range products {
			if p.ID != id {
				kept = append(kept, p)
			}
		}

		return store.StageAll(tx, store.Products, kept)
	})
	if err != nil {
		return err
	}

	s.logger.Info("product deleted", zap.String("productId", id))
	return nil
}
