package reservation

import (
	"context"

	"github.com/google/uuid"

	"github.com/BarberiaElCorte/barber-pos-api/internal/audit"
	domain "github.com/BarberiaElCorte/barber-pos-api/internal/domain/reservation"
	"github.com/BarberiaElCorte/barber-pos-api/internal/httperr"
	"github.com/BarberiaElCorte/barber-pos-api/internal/models"
	"github.com/BarberiaElCorte/barber-pos-api/internal/timezone"
)

type CompleteReservation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCompleteReservation(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CompleteReservation {
	return &CompleteReservation{
		repo:  repo,
		audit: audit,
	}
}

// Execute closes a reservation and creates its sale in a single
// transaction. The reservation row is locked for the duration, so two
// concurrent completions of the same reservation serialize and the loser
// fails the in-lock status re-check instead of double-charging.
func (uc *CompleteReservation) Execute(
	ctx context.Context,
	reservationID uint,
	paymentMethod string,
	userID *uint,
) (*models.Sale, error) {

	if paymentMethod == "" {
		return nil, httperr.ErrBusiness("payment_method_required")
	}

	var sale *models.Sale

	err := uc.repo.InTx(ctx, func(tx domain.Repository) error {

		res, err := tx.GetReservationForUpdate(ctx, reservationID)
		if err != nil {
			return httperr.ErrBusiness("reservation_not_found")
		}

		if err := domain.CanComplete(domain.Status(res.Status)); err != nil {
			return err
		}

		svc, err := tx.GetService(ctx, res.ServiceID)
		if err != nil {
			// A reservation without its service row is a data
			// integrity failure, not a user error.
			return httperr.ErrBusiness("service_record_missing")
		}

		products, err := tx.ListReservationProducts(ctx, reservationID)
		if err != nil {
			return err
		}

		// Amounts come from booking-time snapshots, never the live
		// catalog.
		serviceAmount := res.ServicePrice
		productsAmount := 0.0
		for _, p := range products {
			productsAmount += p.PriceAtReservation * float64(p.Quantity)
		}
		totalAmount := serviceAmount + productsAmount

		items := make([]models.SaleItem, 0, len(products)+1)
		items = append(items, models.SaleItem{
			ItemType:   "service",
			ItemID:     res.ServiceID,
			ItemName:   svc.Name,
			Quantity:   1,
			UnitPrice:  serviceAmount,
			TotalPrice: serviceAmount,
		})

		for _, p := range products {
			product, err := tx.GetProduct(ctx, p.ProductID)
			if err != nil {
				return httperr.ErrBusiness("product_record_missing")
			}
			items = append(items, models.SaleItem{
				ItemType:   "product",
				ItemID:     p.ProductID,
				ItemName:   product.Name,
				Quantity:   p.Quantity,
				UnitPrice:  p.PriceAtReservation,
				TotalPrice: p.PriceAtReservation * float64(p.Quantity),
			})
		}

		resID := res.ID
		newSale := &models.Sale{
			ReservationID:  &resID,
			BarberID:       res.BarberID,
			ReceiptNumber:  uuid.NewString(),
			CustomerName:   res.ClientName,
			ServiceAmount:  serviceAmount,
			ProductsAmount: productsAmount,
			TotalAmount:    totalAmount,
			PaymentMethod:  paymentMethod,
			SaleDate:       timezone.Now(),
			Items:          items,
		}

		if err := tx.CreateSale(ctx, newSale); err != nil {
			return err
		}

		for _, p := range products {
			if err := tx.RecordStockOut(ctx, p.ProductID, p.Quantity, newSale.ID); err != nil {
				return err
			}
		}

		res.Status = string(domain.StatusPaid)
		if err := tx.UpdateReservation(ctx, res); err != nil {
			return err
		}

		sale = newSale
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   userID,
		Action:   "reservation_completed",
		Entity:   "sale",
		EntityID: &sale.ID,
		Metadata: map[string]any{
			"reservation_id": reservationID,
			"total_amount":   sale.TotalAmount,
		},
	})

	return sale, nil
}
