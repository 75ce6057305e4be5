package rental

import (
	"context"
	"testing"

	"rentstock/internal/domain"
	"rentstock/internal/product"
	"rentstock/internal/store"
	"rentstock/internal/store/memstore"

	apperrors "rentstock/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fixture struct {
	coord    *store.Coordinator
	products *product.Service
	rentals  *Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	coord := store.NewCoordinator(memstore.New(), zap.NewNop())
	return &fixture{
		coord:    coord,
		products: product.NewService(coord, zap.NewNop()),
		rentals:  NewService(coord, zap.NewNop()),
	}
}

func (f *fixture) seedProduct(t *testing.T, name string, stockTotal int) domain.Product {
	t.Helper()
	p, err := f.products.Create(context.Background(), product.Spec{
		Name:       name,
		Category:   "tools",
		StockTotal: stockTotal,
	})
	require.NoError(t, err)
	return p
}

func (f *fixture) available(t *testing.T, productID string) int {
	t.Helper()
	products, err := f.products.List(context.Background())
	require.NoError(t, err)
	for _, p := range products {
		if p.ID == productID {
			return p.StockAvailable
		}
	}
	t.Fatalf("product %s not found", productID)
	return 0
}

func statusPtr(s domain.RentalStatus) *domain.RentalStatus { return &s }

func TestCreate_ReservesStock(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "drill", 5)

	created, err := f.rentals.Create(context.Background(), CreateSpec{
		CustomerID: "c1",
		Items:      []domain.RentalItem{{ProductID: p.ID, Quantity: 2, DailyPrice: 10}},
		StartDate:  "2026-09-01",
		EndDate:    "2026-09-08",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RentalActive, created.Status)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, 3, f.available(t, p.ID))
}

func TestCreate_InsufficientStock(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "drill", 1)

	_, err := f.rentals.Create(context.Background(), CreateSpec{
		CustomerID: "c1",
		Items:      []domain.RentalItem{{ProductID: p.ID, Quantity: 2}},
	})

	is, ok := apperrors.IsInsufficientStockError(err)
	require.True(t, ok)
	assert.Equal(t, p.ID, is.ProductID)
	assert.Equal(t, 1, f.available(t, p.ID))
}

func TestCreate_UnknownProduct(t *testing.T) {
	f := newFixture(t)

	_, err := f.rentals.Create(context.Background(), CreateSpec{
		CustomerID: "c1",
		Items:      []domain.RentalItem{{ProductID: "missing", Quantity: 1}},
	})

	_, ok := apperrors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestCreate_AllOrNothing(t *testing.T) {
	f := newFixture(t)
	p1 := f.seedProduct(t, "drill", 5)
	p2 := f.seedProduct(t, "saw", 3)

	_, err := f.rentals.Create(context.Background(), CreateSpec{
		CustomerID: "c1",
		Items: []domain.RentalItem{
			{ProductID: p1.ID, Quantity: 3},
			{ProductID: p2.ID, Quantity: 1000000},
		},
	})

	_, ok := apperrors.IsInsufficientStockError(err)
	require.True(t, ok)

	// The first item's reservation must not stick.
	assert.Equal(t, 5, f.available(t, p1.ID))
	assert.Equal(t, 3, f.available(t, p2.ID))

	rentals, err := f.rentals.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rentals)
}

func TestUpdate_CompleteReleasesStockOnce(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "drill", 5)

	created, err := f.rentals.Create(context.Background(), CreateSpec{
		CustomerID: "c1",
		Items:      []domain.RentalItem{{ProductID: p.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	require.Equal(t, 3, f.available(t, p.ID))

	updated, err := f.rentals.Update(context.Background(), created.ID, Patch{
		Status: statusPtr(domain.RentalCompleted),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RentalCompleted, updated.Status)
	assert.Equal(t, 5, f.available(t, p.ID))

	// Re-completing is a no-op on stock.
	_, err = f.rentals.Update(context.Background(), created.ID, Patch{
		Status: statusPtr(domain.RentalCompleted),
	})
	require.NoError(t, err)
	assert.Equal(t, 5, f.available(t, p.ID))
}

func TestUpdate_CancelDoesNotReleaseStock(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "drill", 5)

	created, err := f.rentals.Create(context.Background(), CreateSpec{
		CustomerID: "c1",
		Items:      []domain.RentalItem{{ProductID: p.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	updated, err := f.rentals.Update(context.Background(), created.ID, Patch{
		Status: statusPtr(domain.RentalCancelled),
	})
	require.NoError(t, err)
	assert.Equal(t, domain.RentalCancelled, updated.Status)

	// Long-standing behavior: cancellation keeps the deduction in place.
	assert.Equal(t, 3, f.available(t, p.ID))
}

func TestUpdate_OverdueThenComplete(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "drill", 5)

	created, err := f.rentals.Create(context.Background(), CreateSpec{
		CustomerID: "c1",
		Items:      []domain.RentalItem{{ProductID: p.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	_, err = f.rentals.Update(context.Background(), created.ID, Patch{
		Status: statusPtr(domain.RentalOverdue),
	})
	require.NoError(t, err)
	// Going overdue keeps the deduction.
	assert.Equal(t, 3, f.available(t, p.ID))

	_, err = f.rentals.Update(context.Background(), created.ID, Patch{
		Status: statusPtr(domain.RentalCompleted),
	})
	require.NoError(t, err)
	assert.Equal(t, 5, f.available(t, p.ID))
}

func TestUpdate_TerminalTransitionsRejected(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "drill", 5)

	created, err := f.rentals.Create(context.Background(), CreateSpec{
		CustomerID: "c1",
		Items:      []domain.RentalItem{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	_, err = f.rentals.Update(context.Background(), created.ID, Patch{
		Status: statusPtr(domain.RentalCompleted),
	})
	require.NoError(t, err)

	_, err = f.rentals.Update(context.Background(), created.ID, Patch{
		Status: statusPtr(domain.RentalActive),
	})
	it, ok := apperrors.IsInvalidTransitionError(err)
	require.True(t, ok)
	assert.Equal(t, "completed", it.From)
	assert.Equal(t, "active", it.To)
}

func TestUpdate_PartialPatchLeavesOtherFields(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "drill", 5)

	created, err := f.rentals.Create(context.Background(), CreateSpec{
		CustomerID:   "c1",
		Items:        []domain.RentalItem{{ProductID: p.ID, Quantity: 1, DailyPrice: 10}},
		StartDate:    "2026-09-01",
		EndDate:      "2026-09-08",
		TotalPrice:   70,
		TotalDeposit: 20,
	})
	require.NoError(t, err)

	newEnd := "2026-09-15"
	newPrice := 140.0
	updated, err := f.rentals.Update(context.Background(), created.ID, Patch{
		EndDate:    &newEnd,
		TotalPrice: &newPrice,
	})
	require.NoError(t, err)

	assert.Equal(t, "2026-09-15", updated.EndDate)
	assert.Equal(t, 140.0, updated.TotalPrice)
	assert.Equal(t, "2026-09-01", updated.StartDate)
	assert.Equal(t, 20.0, updated.TotalDeposit)
	assert.Equal(t, domain.RentalActive, updated.Status)
	assert.Equal(t, created.Items, updated.Items)
}

func TestUpdate_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.rentals.Update(context.Background(), "missing", Patch{
		Status: statusPtr(domain.RentalCompleted),
	})
	nf, ok := apperrors.IsNotFoundError(err)
	require.True(t, ok)
	assert.Equal(t, "rental", nf.Entity)
}

func TestUpdate_CompleteSkipsDeletedProduct(t *testing.T) {
	f := newFixture(t)
	p1 := f.seedProduct(t, "drill", 5)
	p2 := f.seedProduct(t, "saw", 5)

	created, err := f.rentals.Create(context.Background(), CreateSpec{
		CustomerID: "c1",
		Items: []domain.RentalItem{
			{ProductID: p1.ID, Quantity: 2},
			{ProductID: p2.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)

	require.NoError(t, f.products.Delete(context.Background(), p1.ID))

	_, err = f.rentals.Update(context.Background(), created.ID, Patch{
		Status: statusPtr(domain.RentalCompleted),
	})
	require.NoError(t, err)

	// The surviving product got its unit back; the deleted one is gone.
	assert.Equal(t, 5, f.available(t, p2.ID))
}

func TestDelete_ActiveReleasesStock(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "drill", 5)

	created, err := f.rentals.Create(context.Background(), CreateSpec{
		CustomerID: "c1",
		Items:      []domain.RentalItem{{ProductID: p.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	require.Equal(t, 3, f.available(t, p.ID))

	require.NoError(t, f.rentals.Delete(context.Background(), created.ID))

	assert.Equal(t, 5, f.available(t, p.ID))
	rentals, err := f.rentals.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rentals)

	// Deleting the same id again succeeds as a no-op.
	require.NoError(t, f.rentals.Delete(context.Background(), created.ID))
	assert.Equal(t, 5, f.available(t, p.ID))
}

func TestDelete_CompletedDoesNotReleaseStock(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "drill", 5)

	created, err := f.rentals.Create(context.Background(), CreateSpec{
		CustomerID: "c1",
		Items:      []domain.RentalItem{{ProductID: p.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	_, err = f.rentals.Update(context.Background(), created.ID, Patch{
		Status: statusPtr(domain.RentalCompleted),
	})
	require.NoError(t, err)
	require.Equal(t, 5, f.available(t, p.ID))

	// The completion already released; deletion must not release again.
	require.NoError(t, f.rentals.Delete(context.Background(), created.ID))
	assert.Equal(t, 5, f.available(t, p.ID))
}

func TestDelete_CancelledDoesNotReleaseStock(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "drill", 5)

	created, err := f.rentals.Create(context.Background(), CreateSpec{
		CustomerID: "c1",
		Items:      []domain.RentalItem{{ProductID: p.ID, Quantity: 2}},
	})
	require.NoError(t, err)

	_, err = f.rentals.Update(context.Background(), created.ID, Patch{
		Status: statusPtr(domain.RentalCancelled),
	})
	require.NoError(t, err)

	require.NoError(t, f.rentals.Delete(context.Background(), created.ID))
	assert.Equal(t, 3, f.available(t, p.ID))
}

// End to end over one product: rent 2 of 5, complete, complete again.
func TestScenario_RentCompleteRecomplete(t *testing.T) {
	f := newFixture(t)
	p := f.seedProduct(t, "drill", 5)
	require.Equal(t, 5, f.available(t, p.ID))

	created, err := f.rentals.Create(context.Background(), CreateSpec{
		CustomerID: "c1",
		Items:      []domain.RentalItem{{ProductID: p.ID, Quantity: 2}},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, f.available(t, p.ID))

	_, err = f.rentals.Update(context.Background(), created.ID, Patch{Status: statusPtr(domain.RentalCompleted)})
	require.NoError(t, err)
	assert.Equal(t, 5, f.available(t, p.ID))

	_, err = f.rentals.Update(context.Background(), created.ID, Patch{Status: statusPtr(domain.RentalCompleted)})
	require.NoError(t, err)
	assert.Equal(t, 5, f.available(t, p.ID))
}
