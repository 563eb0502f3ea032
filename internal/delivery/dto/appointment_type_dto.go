package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request DTOs

type CreateAppointmentTypeRequest struct {
	Name            string          `json:"name" validate:"required,max=100"`
	DurationMinutes int             `json:"duration_minutes" validate:"omitempty,min=5,max=480"`
	Price           decimal.Decimal `json:"price"`
}

type UpdateAppointmentTypeRequest struct {
	Name            string           `json:"name" validate:"omitempty,max=100"`
	DurationMinutes *int             `json:"duration_minutes" validate:"omitempty,min=5,max=480"`
	Price           *decimal.Decimal `json:"price"`
}

// Response DTOs

type AppointmentTypeResponse struct {
	ID              int             `json:"id"`
	Name            string          `json:"name"`
	DurationMinutes int             `json:"duration_minutes"`
	Price           decimal.Decimal `json:"price"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

type AppointmentTypeListResponse struct {
	AppointmentTypes []AppointmentTypeResponse `json:"appointment_types"`
	Total            int                       `json:"total"`
}
