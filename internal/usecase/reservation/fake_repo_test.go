package reservation

import (
	"context"
	"errors"

	domain "github.com/BarberiaElCorte/barber-pos-api/internal/domain/reservation"
	"github.com/BarberiaElCorte/barber-pos-api/internal/models"
)

// fakeRepo is an in-memory Repository. InTx just runs fn against the same
// instance; rollback on error is not simulated because the use cases under
// test bail out before mutating on failure paths.
type fakeRepo struct {
	services     map[uint]*models.Service
	products     map[uint]*models.Product
	reservations map[uint]*models.Reservation
	resProducts  []models.ReservationProduct
	sales        []*models.Sale
	stockOuts    []stockOut

	nextReservationID uint
	nextSaleID        uint
	nextResProductID  uint
}

type stockOut struct {
	productID uint
	quantity  int
	saleID    uint
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		services:     map[uint]*models.Service{},
		products:     map[uint]*models.Product{},
		reservations: map[uint]*models.Reservation{},
	}
}

func (f *fakeRepo) addService(s models.Service) *models.Service {
	f.services[s.ID] = &s
	return &s
}

func (f *fakeRepo) addProduct(p models.Product) *models.Product {
	f.products[p.ID] = &p
	return &p
}

func (f *fakeRepo) addReservation(r models.Reservation) *models.Reservation {
	if r.ID == 0 {
		f.nextReservationID++
		r.ID = f.nextReservationID
	}
	f.reservations[r.ID] = &r
	return &r
}

// -------- Repository --------

func (f *fakeRepo) GetService(ctx context.Context, id uint) (*models.Service, error) {
	s, ok := f.services[id]
	if !ok {
		return nil, errors.New("service not found")
	}
	return s, nil
}

func (f *fakeRepo) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, errors.New("product not found")
	}
	return p, nil
}

func (f *fakeRepo) GetReservation(ctx context.Context, id uint) (*models.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, errors.New("reservation not found")
	}
	cp := *r
	return &cp, nil
}

func (f *fakeRepo) GetReservationForUpdate(ctx context.Context, id uint) (*models.Reservation, error) {
	return f.GetReservation(ctx, id)
}

func (f *fakeRepo) CreateReservation(ctx context.Context, res *models.Reservation) error {
	f.nextReservationID++
	res.ID = f.nextReservationID
	cp := *res
	f.reservations[res.ID] = &cp
	return nil
}

func (f *fakeRepo) UpdateReservation(ctx context.Context, res *models.Reservation) error {
	if _, ok := f.reservations[res.ID]; !ok {
		return errors.New("reservation not found")
	}
	cp := *res
	f.reservations[res.ID] = &cp
	return nil
}

func (f *fakeRepo) ListAllReservations(ctx context.Context) ([]models.Reservation, error) {
	out := make([]models.Reservation, 0, len(f.reservations))
	for _, r := range f.reservations {
		out = append(out, *r)
	}
	return out, nil
}

func (f *fakeRepo) ListReservationProducts(ctx context.Context, reservationID uint) ([]models.ReservationProduct, error) {
	var out []models.ReservationProduct
	for _, rp := range f.resProducts {
		if rp.ReservationID == reservationID {
			out = append(out, rp)
		}
	}
	return out, nil
}

func (f *fakeRepo) AddReservationProduct(ctx context.Context, rp *models.ReservationProduct) error {
	f.nextResProductID++
	rp.ID = f.nextResProductID
	f.resProducts = append(f.resProducts, *rp)
	return nil
}

func (f *fakeRepo) RemoveReservationProduct(ctx context.Context, reservationID, reservationProductID uint) error {
	for i, rp := range f.resProducts {
		if rp.ReservationID == reservationID && rp.ID == reservationProductID {
			f.resProducts = append(f.resProducts[:i], f.resProducts[i+1:]...)
			return nil
		}
	}
	return errors.New("reservation product not found")
}

func (f *fakeRepo) SaleExistsForReservation(ctx context.Context, reservationID uint) (bool, error) {
	for _, s := range f.sales {
		if s.ReservationID != nil && *s.ReservationID == reservationID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) CreateSale(ctx context.Context, sale *models.Sale) error {
	f.nextSaleID++
	sale.ID = f.nextSaleID
	f.sales = append(f.sales, sale)
	return nil
}

func (f *fakeRepo) RecordStockOut(ctx context.Context, productID uint, quantity int, saleID uint) error {
	p, ok := f.products[productID]
	if !ok {
		return errors.New("product not found")
	}
	p.StockQuantity -= quantity
	f.stockOuts = append(f.stockOuts, stockOut{productID, quantity, saleID})
	return nil
}

func (f *fakeRepo) InTx(ctx context.Context, fn func(txRepo domain.Repository) error) error {
	return fn(f)
}

var _ domain.Repository = (*fakeRepo)(nil)
