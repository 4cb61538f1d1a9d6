package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	domain "github.com/BarberiaElCorte/barber-pos-api/internal/domain/commission"
	"github.com/BarberiaElCorte/barber-pos-api/internal/httperr"
	"github.com/BarberiaElCorte/barber-pos-api/internal/models"
)

const pgUniqueViolation = "23505"

type CommissionGormRepository struct {
	db *gorm.DB
}

func NewCommissionGormRepository(db *gorm.DB) *CommissionGormRepository {
	return &CommissionGormRepository{db: db}
}

// --------------------------------------------------
// Barbers
// --------------------------------------------------

func (r *CommissionGormRepository) ListActiveBarbers(
	ctx context.Context,
) ([]models.Barber, error) {

	var barbers []models.Barber
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&barbers).Error; err != nil {
		return nil, err
	}
	return barbers, nil
}

func (r *CommissionGormRepository) GetBarber(
	ctx context.Context,
	id uint,
) (*models.Barber, error) {

	var barber models.Barber
	if err := r.db.WithContext(ctx).First(&barber, id).Error; err != nil {
		return nil, err
	}
	return &barber, nil
}

// --------------------------------------------------
// Finalized commissions
// --------------------------------------------------

func (r *CommissionGormRepository) GetCommissionForPeriod(
	ctx context.Context,
	barberID uint,
	period domain.Period,
) (*models.BarberCommission, error) {

	var c models.BarberCommission
	err := r.db.WithContext(ctx).
		Where(
			"barber_id = ? AND period_start = ? AND period_end = ?",
			barberID, period.Start, period.End,
		).
		First(&c).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommissionGormRepository) CreateCommission(
	ctx context.Context,
	c *models.BarberCommission,
) error {

	err := r.db.WithContext(ctx).Create(c).Error
	if err == nil {
		return nil
	}

	// The unique index on (barber_id, period_start, period_end) is the
	// final backstop against concurrent finalize calls.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return httperr.ErrBusiness("commission_already_finalized")
	}
	return err
}

// --------------------------------------------------
// Aggregates
// --------------------------------------------------

func (r *CommissionGormRepository) ServicesTotal(
	ctx context.Context,
	barberID uint,
	period domain.Period,
) (float64, error) {

	var total float64
	err := r.db.WithContext(ctx).
		Model(&models.Sale{}).
		Select("COALESCE(SUM(service_amount), 0)").
		Where(
			"barber_id = ? AND sale_date >= ? AND sale_date <= ?",
			barberID, period.Start, period.End,
		).
		Scan(&total).Error

	return total, err
}

func (r *CommissionGormRepository) UnabsorbedAdvancesTotal(
	ctx context.Context,
	barberID uint,
	period domain.Period,
) (float64, error) {

	var total float64
	err := r.db.WithContext(ctx).
		Model(&models.BarberAdvance{}).
		Select("COALESCE(SUM(amount), 0)").
		Where(
			"barber_id = ? AND date >= ? AND date <= ? AND commission_id IS NULL",
			barberID, period.Start, period.End,
		).
		Scan(&total).Error

	return total, err
}

func (r *CommissionGormRepository) AbsorbAdvances(
	ctx context.Context,
	barberID uint,
	period domain.Period,
	commissionID uint,
) error {

	return r.db.WithContext(ctx).
		Model(&models.BarberAdvance{}).
		Where(
			"barber_id = ? AND date >= ? AND date <= ? AND commission_id IS NULL",
			barberID, period.Start, period.End,
		).
		Update("commission_id", commissionID).Error
}

// --------------------------------------------------
// Drill-downs
// --------------------------------------------------

func (r *CommissionGormRepository) ListBarberServices(
	ctx context.Context,
	barberID uint,
	period domain.Period,
) ([]domain.ServiceSaleRow, error) {

	var rows []domain.ServiceSaleRow
	err := r.db.WithContext(ctx).
		Model(&models.SaleItem{}).
		Select(`sale_items.sale_id,
			sale_items.item_id AS service_id,
			sale_items.item_name AS service_name,
			sales.sale_date,
			sale_items.unit_price AS price`).
		Joins("JOIN sales ON sales.id = sale_items.sale_id").
		Where(
			"sale_items.item_type = ? AND sales.barber_id = ? AND sales.sale_date >= ? AND sales.sale_date <= ?",
			"service", barberID, period.Start, period.End,
		).
		Order("sales.sale_date DESC").
		Scan(&rows).Error

	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *CommissionGormRepository) ListBarberAdvances(
	ctx context.Context,
	barberID uint,
	period domain.Period,
) ([]models.BarberAdvance, error) {

	var advances []models.BarberAdvance
	if err := r.db.WithContext(ctx).
		Where(
			"barber_id = ? AND date >= ? AND date <= ?",
			barberID, period.Start, period.End,
		).
		Order("date ASC").
		Find(&advances).Error; err != nil {
		return nil, err
	}
	return advances, nil
}

// --------------------------------------------------
// Transactions
// --------------------------------------------------

func (r *CommissionGormRepository) InTx(
	ctx context.Context,
	fn func(txRepo domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&CommissionGormRepository{db: tx})
	})
}

// Compile-time check
var _ domain.Repository = (*CommissionGormRepository)(nil)
