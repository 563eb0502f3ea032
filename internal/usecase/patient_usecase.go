package usecase

import (
	"context"
	"errors"
	"fmt"

	"dentalcare-backend/internal/converter"
	"dentalcare-backend/internal/delivery/dto"
	"dentalcare-backend/internal/domain/entity"
	"dentalcare-backend/internal/domain/repository"
	"dentalcare-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrPatientNotFound    = errors.New("patient not found")
	ErrInvalidDateOfBirth = errors.New("invalid date of birth, use YYYY-MM-DD")
)

type PatientUsecase interface {
	CreatePatient(ctx context.Context, userID uuid.UUID, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	GetPatient(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error)
	ListPatients(ctx context.Context, userID uuid.UUID) (*dto.PatientListResponse, error)
	UpdatePatient(ctx context.Context, userID uuid.UUID, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	DeletePatient(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
}

type patientUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	patientRepo  repository.PatientRepository
	auditService service.AuditService
}

func NewPatientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	patientRepo repository.PatientRepository,
	auditService service.AuditService,
) PatientUsecase {
	return &patientUsecase{
		db:           db,
		log:          log,
		patientRepo:  patientRepo,
		auditService: auditService,
	}
}

func (u *patientUsecase) CreatePatient(ctx context.Context, userID uuid.UUID, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	dateOfBirth, err := converter.ParseDateOfBirth(req.DateOfBirth)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDateOfBirth, req.DateOfBirth)
	}

	patient := &entity.Patient{
		UserID:      userID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		DateOfBirth: dateOfBirth,
		Address:     req.Address,
		Notes:       req.Notes,
	}

	if err := u.patientRepo.Create(u.db, patient); err != nil {
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, u.db, &userID, entity.AuditActionPatientCreate,
		"patient", patient.ID.String(), entity.JSON{"name": patient.Name})

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) GetPatient(ctx context.Context, id uuid.UUID) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) ListPatients(ctx context.Context, userID uuid.UUID) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindByUserID(u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, err
	}

	return &dto.PatientListResponse{
		Patients: converter.PatientsToResponses(patients),
		Total:    len(patients),
	}, nil
}

func (u *patientUsecase) UpdatePatient(ctx context.Context, userID uuid.UUID, id uuid.UUID, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	oldName := patient.Name

	if req.Name != "" {
		patient.Name = req.Name
	}
	if req.Email != "" {
		patient.Email = req.Email
	}
	if req.Phone != "" {
		patient.Phone = req.Phone
	}
	if req.DateOfBirth != "" {
		dateOfBirth, err := converter.ParseDateOfBirth(req.DateOfBirth)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidDateOfBirth, req.DateOfBirth)
		}
		patient.DateOfBirth = dateOfBirth
	}
	if req.Address != "" {
		patient.Address = req.Address
	}
	if req.Notes != "" {
		patient.Notes = req.Notes
	}

	if err := u.patientRepo.Update(u.db, patient); err != nil {
		u.log.Warnf("Failed to update patient: %+v", err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, u.db, &userID, entity.AuditActionPatientUpdate,
		"patient", patient.ID.String(),
		entity.JSON{"name": oldName}, entity.JSON{"name": patient.Name})

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) DeletePatient(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	patient, err := u.patientRepo.FindByID(u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}

	affected, err := u.patientRepo.Delete(u.db, id)
	if err != nil {
		u.log.Warnf("Failed to delete patient: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrPatientNotFound
	}

	u.auditService.LogDelete(ctx, u.db, &userID, entity.AuditActionPatientDelete,
		"patient", id.String(), entity.JSON{"name": patient.Name})

	return nil
}
