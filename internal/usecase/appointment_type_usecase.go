package usecase

import (
	"context"
	"errors"

	"dentalcare-backend/internal/converter"
	"dentalcare-backend/internal/delivery/dto"
	"dentalcare-backend/internal/domain/entity"
	"dentalcare-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrAppointmentTypeNotFound = errors.New("appointment type not found")

const defaultDurationMinutes = 30

type AppointmentTypeUsecase interface {
	CreateAppointmentType(ctx context.Context, userID uuid.UUID, req *dto.CreateAppointmentTypeRequest) (*dto.AppointmentTypeResponse, error)
	GetAppointmentType(ctx context.Context, id int) (*dto.AppointmentTypeResponse, error)
	ListAppointmentTypes(ctx context.Context, userID uuid.UUID) (*dto.AppointmentTypeListResponse, error)
	UpdateAppointmentType(ctx context.Context, id int, req *dto.UpdateAppointmentTypeRequest) (*dto.AppointmentTypeResponse, error)
	DeleteAppointmentType(ctx context.Context, id int) error
}

type appointmentTypeUsecase struct {
	db                  *gorm.DB
	log                 *logrus.Logger
	appointmentTypeRepo repository.AppointmentTypeRepository
}

func NewAppointmentTypeUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentTypeRepo repository.AppointmentTypeRepository,
) AppointmentTypeUsecase {
	return &appointmentTypeUsecase{
		db:                  db,
		log:                 log,
		appointmentTypeRepo: appointmentTypeRepo,
	}
}

func (u *appointmentTypeUsecase) CreateAppointmentType(ctx context.Context, userID uuid.UUID, req *dto.CreateAppointmentTypeRequest) (*dto.AppointmentTypeResponse, error) {
	duration := req.DurationMinutes
	if duration == 0 {
		duration = defaultDurationMinutes
	}

	appointmentType := &entity.AppointmentType{
		UserID:          userID,
		Name:            req.Name,
		DurationMinutes: duration,
		Price:           req.Price,
	}

	if err := u.appointmentTypeRepo.Create(u.db, appointmentType); err != nil {
		u.log.Warnf("Failed to create appointment type: %+v", err)
		return nil, err
	}

	return converter.AppointmentTypeToResponse(appointmentType), nil
}

func (u *appointmentTypeUsecase) GetAppointmentType(ctx context.Context, id int) (*dto.AppointmentTypeResponse, error) {
	appointmentType, err := u.appointmentTypeRepo.FindByID(u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment type: %+v", err)
		return nil, err
	}
	if appointmentType == nil {
		return nil, ErrAppointmentTypeNotFound
	}

	return converter.AppointmentTypeToResponse(appointmentType), nil
}

func (u *appointmentTypeUsecase) ListAppointmentTypes(ctx context.Context, userID uuid.UUID) (*dto.AppointmentTypeListResponse, error) {
	types, err := u.appointmentTypeRepo.FindByUserID(u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to list appointment types: %+v", err)
		return nil, err
	}

	return &dto.AppointmentTypeListResponse{
		AppointmentTypes: converter.AppointmentTypesToResponses(types),
		Total:            len(types),
	}, nil
}

func (u *appointmentTypeUsecase) UpdateAppointmentType(ctx context.Context, id int, req *dto.UpdateAppointmentTypeRequest) (*dto.AppointmentTypeResponse, error) {
	appointmentType, err := u.appointmentTypeRepo.FindByID(u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment type: %+v", err)
		return nil, err
	}
	if appointmentType == nil {
		return nil, ErrAppointmentTypeNotFound
	}

	if req.Name != "" {
		appointmentType.Name = req.Name
	}
	if req.DurationMinutes != nil {
		appointmentType.DurationMinutes = *req.DurationMinutes
	}
	if req.Price != nil {
		appointmentType.Price = *req.Price
	}

	if err := u.appointmentTypeRepo.Update(u.db, appointmentType); err != nil {
		u.log.Warnf("Failed to update appointment type: %+v", err)
		return nil, err
	}

	return converter.AppointmentTypeToResponse(appointmentType), nil
}

func (u *appointmentTypeUsecase) DeleteAppointmentType(ctx context.Context, id int) error {
	affected, err := u.appointmentTypeRepo.Delete(u.db, id)
	if err != nil {
		u.log.Warnf("Failed to delete appointment type: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrAppointmentTypeNotFound
	}

	return nil
}
