package repository

import (
	"dentalcare-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AppointmentTypeRepository interface {
	Create(db *gorm.DB, appointmentType *entity.AppointmentType) error
	FindByID(db *gorm.DB, id int) (*entity.AppointmentType, error)
	FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.AppointmentType, error)
	Update(db *gorm.DB, appointmentType *entity.AppointmentType) error
	Delete(db *gorm.DB, id int) (int64, error)
}
