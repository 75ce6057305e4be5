package customer

import (
	"context"
	"time"

	"rentstock/internal/domain"
	"rentstock/internal/store"

	apperrors "rentstock/internal/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Spec struct {
	FirstName       string
	LastName        string
	Email           string
	Phone           string
	HomeAddress     domain.Address
	DeliveryAddress *domain.Address
}

type Service struct {
	coord  *store.Coordinator
	logger *zap.Logger
	now    func() time.Time
}

func NewService(coord *store.Coordinator, logger *zap.Logger) *Service {
	return &Service{
		coord:  coord,
		logger: logger,
		now:    time.Now,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Customer, error) {
	var customers []domain.Customer
	err := s.coord.Exec(ctx, func(tx *store.Tx) error {
		var err error
		customers, err = store.LoadAll[domain.Customer](tx, store.Customers)
		return err
	})
	if err != nil {
		return nil, err
	}
	return customers, nil
}

func (s *Service) Create(ctx context.Context, spec Spec) (domain.Customer, error) {
	created := domain.Customer{
		ID:              uuid.NewString(),
		FirstName:       spec.FirstName,
		LastName:        spec.LastName,
		Email:           spec.Email,
		Phone:           spec.Phone,
		HomeAddress:     spec.HomeAddress,
		DeliveryAddress: spec.DeliveryAddress,
		JoinDate:        s.now().UTC(),
	}

	err := s.coord.Exec(ctx, func(tx *store.Tx) error {
		customers, err := store.LoadAll[domain.Customer](tx, store.Customers)
		if err != nil {
			return err
		}
		return store.StageAll(tx, store.Customers, append(customers, created))
	})
	if err != nil {
		return domain.Customer{}, err
	}

	s.logger.Info("customer created", zap.String("customerId", created.ID))
	return created, nil
}

// Update replaces the writable fields, keeping id and joinDate from the
// stored record.
func (s *Service) Update(ctx context.Context, id string, spec Spec) (domain.Customer, error) {
	var updated domain.Customer
	err := s.coord.Exec(ctx, func(tx *store.Tx) error {
		customers, err := store.LoadAll[domain.Customer](tx, store.Customers)
		if err != nil {
			return err
		}

		idx := -1
		for i := range customers {
			if customers[i].ID == id {
				idx = i
				break
			}
		}
		if idx < 0 {
			return apperrors.NewNotFoundError("customer", id)
		}

		updated = domain.Customer{
			ID:              id,
			FirstName:       spec.FirstName,
			LastName:        spec.LastName,
			Email:           spec.Email,
			Phone:           spec.Phone,
			HomeAddress:     spec.HomeAddress,
			DeliveryAddress: spec.DeliveryAddress,
			JoinDate:        customers[idx].JoinDate,
		}
		customers[idx] = updated
		return store.StageAll(tx, store.Customers, customers)
	})
	if err != nil {
		return domain.Customer{}, err
	}

	s.logger.Info("customer updated", zap.String("customerId", id))
	return updated, nil
}

// Delete removes a customer unconditionally; rentals referencing the id
// are untouched. Deleting an unknown id succeeds.
func (s *Service) Delete(ctx context.Context, id string) error {
	err := s.coord.Exec(ctx, func(tx *store.Tx) error {
		customers, err := store.LoadAll[domain.Customer](tx, store.Customers)
		if err != nil {
			return err
		}

		kept := customers[:0]
		for _, c := range customers {
			if c.ID != id {
				kept = append(kept, c)
			}
		}
		return store.StageAll(tx, store.Customers, kept)
	})
	if err != nil {
		return err
	}

	s.logger.Info("customer deleted", zap.String("customerId", id))
	return nil
}
