package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type PatientDetailsRequest struct {
	PatientID *uuid.UUID `json:"patient_id"`
	Name      string     `json:"name" validate:"required,max=255"`
	Email     string     `json:"email" validate:"omitempty,email"`
	Phone     string     `json:"phone" validate:"omitempty,max=20"`
}

type CreateAppointmentRequest struct {
	DoctorID          uuid.UUID             `json:"doctor_id" validate:"required"`
	Timezone          string                `json:"timezone" validate:"required,max=64"`
	MeetingDate       string                `json:"meeting_date" validate:"required"` // YYYY-MM-DD
	From              string                `json:"from" validate:"required"`         // "9:00 AM" or "09:00"
	To                string                `json:"to" validate:"required"`
	AppointmentTypeID int                   `json:"appointment_type_id" validate:"omitempty,min=1"`
	PatientDetails    PatientDetailsRequest `json:"patient_details" validate:"required"`
	Notes             string                `json:"notes"`
}

// RescheduleAppointmentRequest moves an existing booking. The whole rules
// pass runs again; the appointment being moved is excluded from the sibling
// overlap set.
type RescheduleAppointmentRequest struct {
	MeetingDate string `json:"meeting_date" validate:"required"`
	From        string `json:"from" validate:"required"`
	To          string `json:"to" validate:"required"`
}

type ListAppointmentsRequest struct {
	FromDate string     `json:"from_date"`
	ToDate   string     `json:"to_date"`
	DoctorID *uuid.UUID `json:"doctor_id"`
}

// Response DTOs

type PatientDetailsResponse struct {
	PatientID string `json:"patient_id,omitempty"`
	Name      string `json:"name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
}

type AppointmentResponse struct {
	ID                uuid.UUID              `json:"id"`
	DoctorID          uuid.UUID              `json:"doctor_id"`
	DoctorName        string                 `json:"doctor_name,omitempty"`
	AppointmentTypeID int                    `json:"appointment_type_id,omitempty"`
	Timezone          string                 `json:"timezone"`
	MeetingDate       string                 `json:"meeting_date"`
	From              string                 `json:"from"`
	To                string                 `json:"to"`
	PatientDetails    PatientDetailsResponse `json:"patient_details"`
	Notes             string                 `json:"notes,omitempty"`
	SyncStatus        string                 `json:"sync_status"`
	CreatedAt         time.Time              `json:"created_at"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
