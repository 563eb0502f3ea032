package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AppointmentType is a bookable visit category (cleaning, consultation, ...).
type AppointmentType struct {
	ID              int             `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	Name            string          `gorm:"type:varchar(100);not null" json:"name"`
	DurationMinutes int             `gorm:"not null;default:30" json:"duration_minutes"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"price"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (AppointmentType) TableName() string {
	return "appointment_types"
}
