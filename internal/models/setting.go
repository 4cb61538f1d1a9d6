package models

import "time"

type Setting struct {
	ID uint `gorm:"primaryKey" json:"id"`

	SettingKey   string `gorm:"size:100;uniqueIndex;not null" json:"setting_key"`
	SettingValue string `gorm:"type:text" json:"setting_value"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
