package models

import "time"

type BarberCommission struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint   `gorm:"uniqueIndex:idx_commission_period" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	PeriodStart time.Time `gorm:"uniqueIndex:idx_commission_period" json:"period_start"`
	PeriodEnd   time.Time `gorm:"uniqueIndex:idx_commission_period" json:"period_end"`

	BaseSalary       float64 `json:"base_salary"`
	ServicesTotal    float64 `json:"services_total"`
	CommissionAmount float64 `json:"commission_amount"`
	AdvancesTotal    float64 `json:"advances_total"`
	TotalPayment     float64 `json:"total_payment"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type BarberAdvance struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint   `gorm:"index" json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
	Notes  string    `gorm:"size:255" json:"notes"`

	// Set once the advance has been absorbed into a finalized commission.
	// An absorbed advance is never deducted again.
	CommissionID *uint `json:"commission_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
