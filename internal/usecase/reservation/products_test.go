package reservation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BarberiaElCorte/barber-pos-api/internal/domain/reservation"
	"github.com/BarberiaElCorte/barber-pos-api/internal/httperr"
	"github.com/BarberiaElCorte/barber-pos-api/internal/models"
)

func TestAddProductSnapshotsPrice(t *testing.T) {
	repo := newFakeRepo()
	product := repo.addProduct(models.Product{ID: 4, Name: "Pomada", Price: 15})
	res := repo.addReservation(models.Reservation{Status: string(domain.StatusPending)})

	rp, err := NewAddProductToReservation(repo).Execute(context.Background(), res.ID, product.ID, 2)
	require.NoError(t, err)

	assert.Equal(t, 15.0, rp.PriceAtReservation)
	assert.Equal(t, 2, rp.Quantity)

	// A later catalog change leaves the snapshot intact.
	repo.products[4].Price = 25
	stored, err := repo.ListReservationProducts(context.Background(), res.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, 15.0, stored[0].PriceAtReservation)
}

func TestAddProductValidations(t *testing.T) {
	repo := newFakeRepo()
	product := repo.addProduct(models.Product{ID: 4, Price: 15})
	open := repo.addReservation(models.Reservation{Status: string(domain.StatusPending)})
	paid := repo.addReservation(models.Reservation{Status: string(domain.StatusPaid)})

	uc := NewAddProductToReservation(repo)

	_, err := uc.Execute(context.Background(), open.ID, product.ID, 0)
	assert.True(t, httperr.IsBusiness(err, "invalid_quantity"))

	_, err = uc.Execute(context.Background(), paid.ID, product.ID, 1)
	assert.True(t, httperr.IsBusiness(err, "reservation_closed"))

	_, err = uc.Execute(context.Background(), open.ID, 99, 1)
	assert.True(t, httperr.IsBusiness(err, "product_not_found"))

	_, err = uc.Execute(context.Background(), 42, product.ID, 1)
	assert.True(t, httperr.IsBusiness(err, "reservation_not_found"))
}

func TestRemoveProduct(t *testing.T) {
	repo := newFakeRepo()
	product := repo.addProduct(models.Product{ID: 4, Price: 15})
	res := repo.addReservation(models.Reservation{Status: string(domain.StatusInProgress)})

	rp, err := NewAddProductToReservation(repo).Execute(context.Background(), res.ID, product.ID, 1)
	require.NoError(t, err)

	err = NewRemoveProductFromReservation(repo).Execute(context.Background(), res.ID, rp.ID)
	require.NoError(t, err)

	stored, _ := repo.ListReservationProducts(context.Background(), res.ID)
	assert.Empty(t, stored)
}

func TestRemoveProductFromClosedReservation(t *testing.T) {
	repo := newFakeRepo()
	res := repo.addReservation(models.Reservation{Status: string(domain.StatusPaid)})

	err := NewRemoveProductFromReservation(repo).Execute(context.Background(), res.ID, 1)
	assert.True(t, httperr.IsBusiness(err, "reservation_closed"))
}
