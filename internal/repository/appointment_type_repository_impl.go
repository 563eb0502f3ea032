package repository

import (
	"errors"

	"dentalcare-backend/internal/domain/entity"
	domainRepo "dentalcare-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentTypeRepository struct{}

func NewAppointmentTypeRepository() domainRepo.AppointmentTypeRepository {
	return &appointmentTypeRepository{}
}

func (r *appointmentTypeRepository) Create(db *gorm.DB, appointmentType *entity.AppointmentType) error {
	return db.Create(appointmentType).Error
}

func (r *appointmentTypeRepository) FindByID(db *gorm.DB, id int) (*entity.AppointmentType, error) {
	var appointmentType entity.AppointmentType
	err := db.Where("id = ?", id).First(&appointmentType).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointmentType, nil
}

func (r *appointmentTypeRepository) FindByUserID(db *gorm.DB, userID uuid.UUID) ([]entity.AppointmentType, error) {
	var types []entity.AppointmentType
	err := db.Where("user_id = ?", userID).Order("name ASC").Find(&types).Error
	if err != nil {
		return nil, err
	}
	return types, nil
}

func (r *appointmentTypeRepository) Update(db *gorm.DB, appointmentType *entity.AppointmentType) error {
	return db.Save(appointmentType).Error
}

func (r *appointmentTypeRepository) Delete(db *gorm.DB, id int) (int64, error) {
	affected := db.Where("id = ?", id).Delete(&entity.AppointmentType{})
	return affected.RowsAffected, affected.Error
}
