package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreateDoctorRequest struct {
	Name           string `json:"name" validate:"required,max=255"`
	Email          string `json:"email" validate:"omitempty,email"`
	Phone          string `json:"phone" validate:"omitempty,max=20"`
	Specialization string `json:"specialization" validate:"omitempty,max=100"`
}

type UpdateDoctorRequest struct {
	Name           string `json:"name" validate:"omitempty,max=255"`
	Email          string `json:"email" validate:"omitempty,email"`
	Phone          string `json:"phone" validate:"omitempty,max=20"`
	Specialization string `json:"specialization" validate:"omitempty,max=100"`
}

// DayWindowRequest is one weekday row of the availability editor. Start/End
// accept both "09:00" and "9:00 AM" shapes.
type DayWindowRequest struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start" validate:"required_if=Enabled true"`
	End     string `json:"end" validate:"required_if=Enabled true"`
}

type UpdateAvailabilityRequest struct {
	Days map[string]DayWindowRequest `json:"days" validate:"required"`
}

type TimeOffEntryRequest struct {
	Label string `json:"label" validate:"required,max=100"`
	From  string `json:"from" validate:"required"` // YYYY-MM-DD
	To    string `json:"to" validate:"required"`   // YYYY-MM-DD
}

// UpdateTimeOffRequest replaces a doctor's whole leave list in one call,
// mirroring how the time-off editor submits.
type UpdateTimeOffRequest struct {
	Entries []TimeOffEntryRequest `json:"entries" validate:"dive"`
}

// Response DTOs

type DayWindowResponse struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

type TimeOffEntryResponse struct {
	Label string `json:"label"`
	From  string `json:"from"`
	To    string `json:"to"`
}

type DoctorResponse struct {
	ID                 uuid.UUID                    `json:"id"`
	Name               string                       `json:"name"`
	Email              string                       `json:"email,omitempty"`
	Phone              string                       `json:"phone,omitempty"`
	Specialization     string                       `json:"specialization,omitempty"`
	WeeklyAvailability map[string]DayWindowResponse `json:"weekly_availability"`
	OffDays            []TimeOffEntryResponse       `json:"off_days"`
	CalendarConnected  bool                         `json:"calendar_connected"`
	CreatedAt          time.Time                    `json:"created_at"`
	UpdatedAt          time.Time                    `json:"updated_at"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
