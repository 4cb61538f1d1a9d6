package models

import "time"

type Barber struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name      string `gorm:"size:100;not null" json:"name"`
	Email     string `gorm:"size:100" json:"email"`
	Phone     string `gorm:"size:20" json:"phone"`
	Specialty string `gorm:"size:100" json:"specialty"`
	PhotoURL  string `gorm:"size:255" json:"photo_url"`

	StationID *uint   `json:"station_id"`
	Station   Station `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"station"`

	BaseSalary float64 `json:"base_salary"`
	IsActive   bool    `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
