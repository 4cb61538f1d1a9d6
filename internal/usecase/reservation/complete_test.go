package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BarberiaElCorte/barber-pos-api/internal/audit"
	domain "github.com/BarberiaElCorte/barber-pos-api/internal/domain/reservation"
	"github.com/BarberiaElCorte/barber-pos-api/internal/httperr"
	"github.com/BarberiaElCorte/barber-pos-api/internal/models"
)

func newCompleteUC(repo *fakeRepo) *CompleteReservation {
	return NewCompleteReservation(repo, audit.NewDispatcher(nil))
}

func TestCompleteReservationCreatesSaleFromSnapshots(t *testing.T) {
	repo := newFakeRepo()

	repo.addService(models.Service{ID: 1, Name: "Corte clásico", Price: 30, DurationMinutes: 30})
	shampoo := repo.addProduct(models.Product{ID: 7, Name: "Shampoo", Price: 99, StockQuantity: 10})

	res := repo.addReservation(models.Reservation{
		BarberID:     3,
		ServiceID:    1,
		ClientName:   "Marta",
		Status:       string(domain.StatusCompleted),
		ServicePrice: 25, // quoted before a catalog price bump
	})

	// Two product lines, both priced at reservation time.
	repo.resProducts = append(repo.resProducts,
		models.ReservationProduct{ID: 1, ReservationID: res.ID, ProductID: shampoo.ID, Quantity: 1, PriceAtReservation: 20},
		models.ReservationProduct{ID: 2, ReservationID: res.ID, ProductID: shampoo.ID, Quantity: 1, PriceAtReservation: 5},
	)

	sale, err := newCompleteUC(repo).Execute(context.Background(), res.ID, "cash", nil)
	require.NoError(t, err)

	assert.Equal(t, 25.0, sale.ServiceAmount)
	assert.Equal(t, 25.0, sale.ProductsAmount)
	assert.Equal(t, 50.0, sale.TotalAmount)
	assert.Equal(t, "cash", sale.PaymentMethod)
	assert.Equal(t, uint(3), sale.BarberID)
	assert.Equal(t, "Marta", sale.CustomerName)
	assert.NotEmpty(t, sale.ReceiptNumber)
	require.NotNil(t, sale.ReservationID)
	assert.Equal(t, res.ID, *sale.ReservationID)

	// Service line first, then one line per product.
	require.Len(t, sale.Items, 3)
	assert.Equal(t, "service", sale.Items[0].ItemType)
	assert.Equal(t, 25.0, sale.Items[0].TotalPrice)

	// Reservation transitions straight to paid.
	stored := repo.reservations[res.ID]
	assert.Equal(t, string(domain.StatusPaid), stored.Status)

	// Stock went out once per product line.
	assert.Len(t, repo.stockOuts, 2)
	assert.Equal(t, 8, repo.products[shampoo.ID].StockQuantity)
}

func TestCompleteReservationQuantitySnapshot(t *testing.T) {
	repo := newFakeRepo()

	repo.addService(models.Service{ID: 1, Name: "Afeitado", Price: 10})
	wax := repo.addProduct(models.Product{ID: 2, Name: "Cera", Price: 12.0, StockQuantity: 5})

	res := repo.addReservation(models.Reservation{
		ServiceID:    1,
		Status:       string(domain.StatusInProgress),
		ServicePrice: 10,
	})
	repo.resProducts = append(repo.resProducts, models.ReservationProduct{
		ID: 1, ReservationID: res.ID, ProductID: wax.ID, Quantity: 3, PriceAtReservation: 7.50,
	})

	sale, err := newCompleteUC(repo).Execute(context.Background(), res.ID, "card", nil)
	require.NoError(t, err)

	assert.InDelta(t, 22.50, sale.ProductsAmount, 0.001)
	assert.InDelta(t, 32.50, sale.TotalAmount, 0.001)

	require.Len(t, sale.Items, 2)
	assert.Equal(t, 3, sale.Items[1].Quantity)
	assert.InDelta(t, 7.50, sale.Items[1].UnitPrice, 0.001)
	assert.Equal(t, 2, repo.products[wax.ID].StockQuantity)
}

func TestCompleteReservationRejectsDoubleCompletion(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(models.Service{ID: 1, Name: "Corte", Price: 30})

	res := repo.addReservation(models.Reservation{
		ServiceID:    1,
		Status:       string(domain.StatusCompleted),
		ServicePrice: 30,
	})

	uc := newCompleteUC(repo)

	_, err := uc.Execute(context.Background(), res.ID, "cash", nil)
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), res.ID, "cash", nil)
	assert.True(t, httperr.IsBusiness(err, "reservation_already_paid"))
	assert.Len(t, repo.sales, 1)
}

func TestCompleteReservationRejectsCancelled(t *testing.T) {
	repo := newFakeRepo()
	repo.addService(models.Service{ID: 1, Name: "Corte", Price: 30})

	res := repo.addReservation(models.Reservation{
		ServiceID: 1,
		Status:    string(domain.StatusCancelled),
	})

	_, err := newCompleteUC(repo).Execute(context.Background(), res.ID, "cash", nil)
	assert.True(t, httperr.IsBusiness(err, "reservation_cancelled"))
	assert.Empty(t, repo.sales)
}

func TestCompleteReservationRequiresPaymentMethod(t *testing.T) {
	repo := newFakeRepo()

	_, err := newCompleteUC(repo).Execute(context.Background(), 1, "", nil)
	assert.True(t, httperr.IsBusiness(err, "payment_method_required"))
}

func TestCompleteReservationUnknownID(t *testing.T) {
	repo := newFakeRepo()

	_, err := newCompleteUC(repo).Execute(context.Background(), 42, "cash", nil)
	assert.True(t, httperr.IsBusiness(err, "reservation_not_found"))
}

func TestCreateThenCompleteEndToEnd(t *testing.T) {
	repo := newFakeRepo()

	repo.addService(models.Service{ID: 5, Name: "Corte y barba", Price: 30, DurationMinutes: 45})
	gel := repo.addProduct(models.Product{ID: 9, Name: "Gel", Price: 12, StockQuantity: 4})

	created, err := NewCreateReservation(repo).Execute(context.Background(), CreateReservationInput{
		BarberID:   1,
		StationID:  1,
		ServiceID:  5,
		ClientName: "Diego",
		StartTime:  time.Date(2026, 8, 20, 11, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	assert.Equal(t, 30.0, created.ServicePrice)
	assert.Equal(t, time.Date(2026, 8, 20, 11, 45, 0, 0, time.UTC), created.EndTime)

	_, err = NewAddProductToReservation(repo).Execute(context.Background(), created.ID, gel.ID, 1)
	require.NoError(t, err)

	// Catalog prices change after booking; the sale must not notice.
	repo.services[5].Price = 99
	repo.products[9].Price = 99

	sale, err := newCompleteUC(repo).Execute(context.Background(), created.ID, "cash", nil)
	require.NoError(t, err)

	assert.Equal(t, 30.0, sale.ServiceAmount)
	assert.Equal(t, 12.0, sale.ProductsAmount)
	assert.Equal(t, 42.0, sale.TotalAmount)
}
