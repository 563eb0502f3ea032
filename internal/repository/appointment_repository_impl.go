package repository

import (
	"errors"

	"dentalcare-backend/internal/domain/entity"
	domainRepo "dentalcare-backend/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type appointmentRepository struct{}

func NewAppointmentRepository() domainRepo.AppointmentRepository {
	return &appointmentRepository{}
}

func (r *appointmentRepository) Create(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Create(appointment).Error
}

func (r *appointmentRepository) FindByID(db *gorm.DB, id uuid.UUID) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := db.Preload("Doctor").Preload("AppointmentType").Where("id = ?", id).First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindByDoctorAndDate(db *gorm.DB, doctorID uuid.UUID, meetingDate string) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	err := db.
		Where("doctor_id = ? AND meeting_date = ?", doctorID, meetingDate).
		Order("from_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) FindByUser(db *gorm.DB, userID uuid.UUID, filter *domainRepo.AppointmentFilter) ([]entity.Appointment, error) {
	var appointments []entity.Appointment
	query := db.Where("user_id = ?", userID)

	if filter != nil {
		if filter.FromDate != "" {
			query = query.Where("meeting_date >= ?", filter.FromDate)
		}
		if filter.ToDate != "" {
			query = query.Where("meeting_date <= ?", filter.ToDate)
		}
		if filter.DoctorID != nil {
			query = query.Where("doctor_id = ?", *filter.DoctorID)
		}
	}

	err := query.
		Preload("Doctor").
		Order("meeting_date ASC, from_time ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) Update(db *gorm.DB, appointment *entity.Appointment) error {
	return db.Omit("Doctor", "AppointmentType").Save(appointment).Error
}

func (r *appointmentRepository) UpdateSyncStatus(db *gorm.DB, id uuid.UUID, status entity.SyncStatus) error {
	return db.Model(&entity.Appointment{}).Where("id = ?", id).Update("sync_status", status).Error
}

func (r *appointmentRepository) Delete(db *gorm.DB, id uuid.UUID) (int64, error) {
	affected := db.Where("id = ?", id).Delete(&entity.Appointment{})
	return affected.RowsAffected, affected.Error
}
