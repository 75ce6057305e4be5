package rental

import (
	"context"

	"rentstock/internal/domain"
	"rentstock/internal/product"
	"rentstock/internal/store"

	apperrors "rentstock/internal/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type CreateSpec struct {
	CustomerID      string
	Items           []domain.RentalItem
	StartDate       string
	EndDate         string
	TotalPrice      float64
	TotalDeposit    float64
	DeliveryAddress *domain.Address
}

// Service owns the rental lifecycle and the stock movements it implies.
// Every operation runs one coordinator transaction spanning the full
// read-check-write cycle, so concurrent rentals against the same product
// serialize instead of both reading the same availability.
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

func (s *Service) List(ctx context.Context) ([]domain.Rental, error) {
	var rentals []domain.Rental
	err := s.coord.Exec(ctx, func(tx *store.Tx) error {
		var err error
		rentals, err = store.LoadAll[domain.Rental](tx, store.Rentals)
		return err
	})
	if err != nil {
		return nil, err
	}
	return rentals, nil
}

// Create reserves every item and persists the rental as active. The
// reservation is all-or-nothing: one missing product or short stock
// aborts the transaction before anything is staged for commit, so a
// failing item never leaves earlier items reserved. The product write is
// staged ahead of the rental write and both land in the same commit.
func (s *Service) Create(ctx context.Context, spec CreateSpec) (domain.Rental, error) {
	created := domain.Rental{
		ID:              uuid.NewString(),
		CustomerID:      spec.CustomerID,
		Items:           spec.Items,
		StartDate:       spec.StartDate,
		EndDate:         spec.EndDate,
		TotalPrice:      spec.TotalPrice,
		TotalDeposit:    spec.TotalDeposit,
		DeliveryAddress: spec.DeliveryAddress,
		Status:          domain.RentalActive,
	}

	err := s.coord.Exec(ctx, func(tx *store.Tx) error {
		products, err := store.LoadAll[domain.Product](tx, store.Products)
		if err != nil {
			return err
		}

		ledger := product.NewLedger(products)
		for _, item := range spec.Items {
			if _, err := ledger.Reserve(item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		if err := store.StageAll(tx, store.Products, ledger.Products()); err != nil {
			return err
		}

		rentals, err := store.LoadAll[domain.Rental](tx, store.Rentals)
		if err != nil {
			return err
		}
		return store.StageAll(tx, store.Rentals, append(rentals, created))
	})
	if err != nil {
		s.logger.Warn("rental creation failed",
			zap.String("customerId", spec.CustomerID),
			zap.Int("itemCount", len(spec.Items)),
			zap.Error(err))
		return domain.Rental{}, err
	}

	s.logger.Info("rental created",
		zap.String("rentalId", created.ID),
		zap.String("customerId", created.CustomerID),
		zap.Int("itemCount", len(created.Items)))
	return created, nil
}

// Update applies a partial patch. Completing a rental releases each
// item's quantity exactly once: a repeat completion finds the status
// already completed and releases nothing. Cancellation does NOT release
// stock; that asymmetry is long-standing observed behavior and is kept
// until product decides otherwise (see DESIGN.md), rather than fixed
// here in passing.
func (s *Service) Update(ctx context.Context, id string, patch Patch) (domain.Rental, error) {
	var updated domain.Rental
	err := s.coord.Exec(ctx, func(tx *store.Tx) error {
		rentals, err := store.LoadAll[domain.Rental](tx, store.Rentals)
		if err != nil {
			return err
		}

		idx := -1
		for i := range rentals {
			if rentals[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return apperrors.NewNotFoundError("rental", id)
		}

		current := rentals[idx]

		if patch.Status != nil {
			if !domain.CanTransition(current.Status, *patch.Status) {
				return apperrors.NewInvalidTransitionError(string(current.Status), string(*patch.Status))
			}

			if *patch.Status == domain.RentalCompleted && current.Status != domain.RentalCompleted {
				if err := s.releaseItems(tx, current); err != nil {
					return err
				}
			}
		}

		updated = patch.apply(current)
		rentals[idx] = updated
		return store.StageAll(tx, store.Rentals, rentals)
	})
	if err != nil {
		return domain.Rental{}, err
	}

	s.logger.Info("rental updated",
		zap.String("rentalId", id),
		zap.String("status", string(updated.Status)))
	return updated, nil
}

// Delete removes a rental. Deleting an active rental first returns its
// quantities to stock; a rental in any other state is removed without
// stock movement. An unknown id is a successful no-op.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.coord.Exec(ctx, func(tx *store.Tx) error {
		rentals, err := store.LoadAll[domain.Rental](tx, store.Rentals)
		if err != nil {
			return err
		}

		idx := -1
		for i := range rentals {
			if rentals[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return nil
		}

		if rentals[idx].Status == domain.RentalActive {
			if err := s.releaseItems(tx, rentals[idx]); err != nil {
				return err
			}
		}

		kept := append(rentals[:idx], rentals[idx+1:]...)
		return store.StageAll(tx, store.Rentals, kept)
	})
	if err != nil {
		return err
	}

	s.logger.Info("rental deleted", zap.String("rentalId", id))
	return nil
}

// releaseItems returns a rental's quantities to the ledger and stages
// the product collection. A product deleted while the rental was out no
// longer has a ledger entry; its release is skipped, since product
// deletion is unconditional and does not consult rentals.
func (s *Service) releaseItems(tx *store.Tx, r domain.Rental) error {
	products, err := store.LoadAll[domain.Product](tx, store.Products)
	if err != nil {
		return err
	}

	ledger := product.NewLedger(products)
	for _, item := range r.Items {
		if _, err := ledger.Release(item.ProductID, item.Quantity); err != nil {
			if _, ok := apperrors.IsNotFoundError(err); ok {
				s.logger.Warn("skipping release for missing product",
					zap.String("rentalId", r.ID),
					zap.String("productId", item.ProductID))
				continue
			}
			return err
		}
	}

	return store.StageAll(tx, store.Products, ledger.Products())
}
