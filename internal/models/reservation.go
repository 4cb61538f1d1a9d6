package models

import "time"

type Reservation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint   `json:"barber_id"`
	Barber   Barber `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	StationID uint    `json:"station_id"`
	Station   Station `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"station"`

	ServiceID uint    `json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	ClientName  string `gorm:"size:100;not null" json:"client_name"`
	ClientPhone string `gorm:"size:20" json:"client_phone"`
	ClientEmail string `gorm:"size:100" json:"client_email"`

	StartTime time.Time `json:"start_time"`
	EndTime   time.Time `json:"end_time"`

	Status string `gorm:"size:20;default:'pending'" json:"status"`

	// Price of the service as quoted at booking time. Sales are settled
	// against this snapshot, not the live catalog price.
	ServicePrice float64 `json:"service_price"`

	Notes string `gorm:"size:255" json:"notes"`

	Products []ReservationProduct `gorm:"constraint:OnDelete:CASCADE;" json:"products,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ReservationProduct struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ReservationID uint `gorm:"index" json:"reservation_id"`

	ProductID uint    `json:"product_id"`
	Product   Product `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"product"`

	Quantity           int     `json:"quantity"`
	PriceAtReservation float64 `json:"price_at_reservation"`

	CreatedAt time.Time `json:"created_at"`
}
