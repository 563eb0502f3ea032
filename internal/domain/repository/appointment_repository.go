package repository

import (
	"dentalcare-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AppointmentFilter narrows calendar-page listings. Dates are YYYY-MM-DD.
type AppointmentFilter struct {
	FromDate string
	ToDate   string
	DoctorID *uuid.UUID
}

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *entity.Appointment) error
	FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error)
	// FindByDoctorAndDate returns the sibling set the booking validator runs
	// against: every appointment of one doctor on one meeting date.
	FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, meetingDate string) ([]entity.Appointment, error)
	FindByUser(db *gorm.DB, userID uuid.UUID, filter *AppointmentFilter) ([]entity.Appointment, error)
	Update(db *gorm.DB, appointment *entity.Appointment) error
	UpdateSyncStatus(db *gorm.DB, id uuid.UUID, status entity.SyncStatus) error
	Delete(db *gorm.DB, id uuid.UUID) (int64, error)
}
