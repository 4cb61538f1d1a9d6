package commission

import (
	"context"
	"time"

	"github.com/BarberiaElCorte/barber-pos-api/internal/models"
)

// ServiceSaleRow is one service line sold by a barber inside a period,
// as shown in the settlement drill-down.
type ServiceSaleRow struct {
	SaleID      uint      `json:"sale_id"`
	ServiceID   uint      `json:"service_id"`
	ServiceName string    `json:"service_name"`
	SaleDate    time.Time `json:"sale_date"`
	Price       float64   `json:"price"`
}

type Repository interface {
	// -------- Barbers --------
	ListActiveBarbers(
		ctx context.Context,
	) ([]models.Barber, error)

	GetBarber(
		ctx context.Context,
		id uint,
	) (*models.Barber, error)

	// -------- Finalized commissions --------
	// GetCommissionForPeriod returns nil (no error) when no row exists.
	GetCommissionForPeriod(
		ctx context.Context,
		barberID uint,
		period Period,
	) (*models.BarberCommission, error)

	// CreateCommission inserts the finalized row. A duplicate
	// (barber, period) insert returns a conflict business error backed by
	// the table's unique index.
	CreateCommission(
		ctx context.Context,
		c *models.BarberCommission,
	) error

	// -------- Aggregates --------
	ServicesTotal(
		ctx context.Context,
		barberID uint,
		period Period,
	) (float64, error)

	// UnabsorbedAdvancesTotal sums advances in the period whose
	// commission_id is still null.
	UnabsorbedAdvancesTotal(
		ctx context.Context,
		barberID uint,
		period Period,
	) (float64, error)

	// AbsorbAdvances stamps commissionID onto the period's open advances.
	AbsorbAdvances(
		ctx context.Context,
		barberID uint,
		period Period,
		commissionID uint,
	) error

	// -------- Drill-downs --------
	ListBarberServices(
		ctx context.Context,
		barberID uint,
		period Period,
	) ([]ServiceSaleRow, error)

	ListBarberAdvances(
		ctx context.Context,
		barberID uint,
		period Period,
	) ([]models.BarberAdvance, error)

	// InTx runs fn against a transaction-scoped copy of the repository.
	InTx(
		ctx context.Context,
		fn func(txRepo Repository) error,
	) error
}
