package models

import "time"

type DraftSale struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ReservationID uint `gorm:"uniqueIndex" json:"reservation_id"`

	ClientName  string  `gorm:"size:100" json:"client_name"`
	BarberID    *uint   `json:"barber_id"`
	TotalAmount float64 `json:"total_amount"`

	Items []DraftSaleItem `gorm:"constraint:OnDelete:CASCADE;" json:"sale_items"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type DraftSaleItem struct {
	ID uint `gorm:"primaryKey" json:"id"`

	DraftSaleID uint `gorm:"index" json:"draft_sale_id"`

	ItemID   uint   `json:"item_id"`
	ItemType string `gorm:"size:10" json:"item_type"`

	Quantity     int     `json:"quantity"`
	PriceAtDraft float64 `json:"price_at_draft"`
}
