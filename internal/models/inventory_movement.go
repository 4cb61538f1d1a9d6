package models

import "time"

type InventoryMovement struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ProductID uint    `gorm:"index" json:"product_id"`
	Product   Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"product"`

	MovementType string `gorm:"size:10;not null" json:"movement_type"` // "in" or "out"
	Quantity     int    `json:"quantity"`

	ReferenceType string `gorm:"size:30" json:"reference_type"`
	ReferenceID   *uint  `json:"reference_id"`

	Notes string `gorm:"size:255" json:"notes"`

	CreatedAt time.Time `json:"created_at"`
}
