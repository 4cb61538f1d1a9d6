package models

import "time"

type Sale struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Null for walk-in sales without a prior booking.
	ReservationID *uint `gorm:"uniqueIndex" json:"reservation_id"`

	BarberID uint   `json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	ReceiptNumber string `gorm:"size:36;uniqueIndex" json:"receipt_number"`

	CustomerName string `gorm:"size:100" json:"customer_name"`

	ServiceAmount  float64 `json:"service_amount"`
	ProductsAmount float64 `json:"products_amount"`
	TotalAmount    float64 `json:"total_amount"`

	PaymentMethod string    `gorm:"size:30" json:"payment_method"`
	SaleDate      time.Time `json:"sale_date"`

	Items []SaleItem `gorm:"constraint:OnDelete:CASCADE;" json:"items,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SaleItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SaleID uint `gorm:"index" json:"sale_id"`

	ItemType string `gorm:"size:10;not null" json:"item_type"` // "service" or "product"
	ItemID   uint   `json:"item_id"`
	ItemName string `gorm:"size:100" json:"item_name"`

	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
	TotalPrice float64 `json:"total_price"`

	CreatedAt time.Time `json:"created_at"`
}
