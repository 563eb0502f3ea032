package usecase

import (
	"context"
	"errors"
	"fmt"

	"dentalcare-backend/internal/converter"
	"dentalcare-backend/internal/delivery/dto"
	"dentalcare-backend/internal/domain/entity"
	"dentalcare-backend/internal/domain/repository"
	"dentalcare-backend/internal/infrastructure/cache"
	"dentalcare-backend/internal/scheduling"
	"dentalcare-backend/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrAppointmentNotFound    = errors.New("appointment not found")
	ErrInvalidMeetingDate     = errors.New("invalid meeting date, use YYYY-MM-DD")
	ErrInvalidAppointmentTime = errors.New("invalid appointment time, use HH:MM or h:mm AM/PM")
)

type AppointmentUsecase interface {
	CreateAppointment(ctx context.Context, userID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error)
	ListAppointments(ctx context.Context, userID uuid.UUID, req *dto.ListAppointmentsRequest) (*dto.AppointmentListResponse, error)
	RescheduleAppointment(ctx context.Context, userID uuid.UUID, id uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
}

type appointmentUsecase struct {
	db                  *gorm.DB
	log                 *logrus.Logger
	appointmentRepo     repository.AppointmentRepository
	doctorRepo          repository.DoctorRepository
	appointmentTypeRepo repository.AppointmentTypeRepository
	auditService        service.AuditService
	syncDispatcher      *service.CalendarSyncDispatcher
	rulesCache          *cache.DoctorRulesCache
}

func NewAppointmentUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	appointmentTypeRepo repository.AppointmentTypeRepository,
	auditService service.AuditService,
	syncDispatcher *service.CalendarSyncDispatcher,
	rulesCache *cache.DoctorRulesCache,
) AppointmentUsecase {
	return &appointmentUsecase{
		db:                  db,
		log:                 log,
		appointmentRepo:     appointmentRepo,
		doctorRepo:          doctorRepo,
		appointmentTypeRepo: appointmentTypeRepo,
		auditService:        auditService,
		syncDispatcher:      syncDispatcher,
		rulesCache:          rulesCache,
	}
}

// loadDoctorRules returns the doctor's normalized booking rules, preferring
// the Redis copy over re-normalizing the JSONB columns.
func (u *appointmentUsecase) loadDoctorRules(ctx context.Context, doctor *entity.Doctor) (scheduling.DoctorRules, error) {
	if cached, _ := u.rulesCache.Get(ctx, doctor.ID.String()); cached != nil {
		return *cached, nil
	}

	rules, skipped, err := converter.DoctorRules(doctor)
	if err != nil {
		u.log.Warnf("Failed to normalize rules for doctor %s: %+v", doctor.ID, err)
		return scheduling.DoctorRules{}, err
	}
	if skipped > 0 {
		u.log.Warnf("Dropped %d malformed off-day entries for doctor %s", skipped, doctor.ID)
	}

	u.rulesCache.Set(ctx, &rules)
	return rules, nil
}

// validateCandidate runs the whole rules pass for one candidate slot.
// excludeID skips the appointment being rescheduled in the overlap check.
func (u *appointmentUsecase) validateCandidate(ctx context.Context, doctor *entity.Doctor, candidate scheduling.Candidate, excludeID *uuid.UUID) error {
	rules, err := u.loadDoctorRules(ctx, doctor)
	if err != nil {
		return err
	}

	siblings, err := u.appointmentRepo.FindByDoctorAndDate(u.db, doctor.ID, candidate.Date.String())
	if err != nil {
		u.log.Warnf("Failed to load sibling appointments: %+v", err)
		return err
	}

	intervals, skipped := converter.SiblingIntervals(siblings, excludeID)
	if skipped > 0 {
		u.log.Warnf("Skipped %d unparseable appointments for doctor %s on %s", skipped, doctor.ID, candidate.Date)
	}

	return scheduling.Validate(rules, candidate, intervals)
}

func (u *appointmentUsecase) CreateAppointment(ctx context.Context, userID uuid.UUID, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	date, err := scheduling.ParseCalendarDate(req.MeetingDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMeetingDate, req.MeetingDate)
	}
	from, err := scheduling.ParseTimeOfDay(req.From)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAppointmentTime, req.From)
	}
	to, err := scheduling.ParseTimeOfDay(req.To)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAppointmentTime, req.To)
	}

	doctor, err := u.doctorRepo.FindByID(u.db, req.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	if req.AppointmentTypeID != 0 {
		appointmentType, err := u.appointmentTypeRepo.FindByID(u.db, req.AppointmentTypeID)
		if err != nil {
			u.log.Warnf("Failed to find appointment type: %+v", err)
			return nil, err
		}
		if appointmentType == nil {
			return nil, ErrAppointmentTypeNotFound
		}
	}

	candidate := scheduling.Candidate{Date: date, From: from, To: to}
	if err := u.validateCandidate(ctx, doctor, candidate, nil); err != nil {
		return nil, err
	}

	syncStatus := entity.SyncStatusNone
	if doctor.CalendarConnected {
		syncStatus = entity.SyncStatusPending
	}

	details := entity.JSON{"name": req.PatientDetails.Name}
	if req.PatientDetails.PatientID != nil {
		details["patient_id"] = req.PatientDetails.PatientID.String()
	}
	if req.PatientDetails.Email != "" {
		details["email"] = req.PatientDetails.Email
	}
	if req.PatientDetails.Phone != "" {
		details["phone"] = req.PatientDetails.Phone
	}

	appointment := &entity.Appointment{
		UserID:            userID,
		DoctorID:          doctor.ID,
		AppointmentTypeID: req.AppointmentTypeID,
		Timezone:          req.Timezone,
		MeetingDate:       datatypes.Date(date.Time()),
		From:              from.Format(),
		To:                to.Format(),
		PatientDetails:    details,
		Notes:             req.Notes,
		SyncStatus:        syncStatus,
	}

	if err := u.appointmentRepo.Create(u.db, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, u.db, &userID, entity.AuditActionAppointmentCreate,
		"appointment", appointment.ID.String(), entity.JSON{
			"doctor_id":    doctor.ID.String(),
			"meeting_date": date.String(),
			"from":         appointment.From,
			"to":           appointment.To,
		})

	u.syncDispatcher.Dispatch(appointment, doctor)

	appointment.Doctor = *doctor
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) GetAppointment(ctx context.Context, id uuid.UUID) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) ListAppointments(ctx context.Context, userID uuid.UUID, req *dto.ListAppointmentsRequest) (*dto.AppointmentListResponse, error) {
	filter := &repository.AppointmentFilter{DoctorID: req.DoctorID}

	if req.FromDate != "" {
		if _, err := scheduling.ParseCalendarDate(req.FromDate); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidMeetingDate, req.FromDate)
		}
		filter.FromDate = req.FromDate
	}
	if req.ToDate != "" {
		if _, err := scheduling.ParseCalendarDate(req.ToDate); err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidMeetingDate, req.ToDate)
		}
		filter.ToDate = req.ToDate
	}

	appointments, err := u.appointmentRepo.FindByUser(u.db, userID, filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, err
	}

	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}, nil
}

func (u *appointmentUsecase) RescheduleAppointment(ctx context.Context, userID uuid.UUID, id uuid.UUID, req *dto.RescheduleAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	date, err := scheduling.ParseCalendarDate(req.MeetingDate)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMeetingDate, req.MeetingDate)
	}
	from, err := scheduling.ParseTimeOfDay(req.From)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAppointmentTime, req.From)
	}
	to, err := scheduling.ParseTimeOfDay(req.To)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAppointmentTime, req.To)
	}

	doctor, err := u.doctorRepo.FindByID(u.db, appointment.DoctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	candidate := scheduling.Candidate{Date: date, From: from, To: to}
	if err := u.validateCandidate(ctx, doctor, candidate, &appointment.ID); err != nil {
		return nil, err
	}

	oldSlot := entity.JSON{
		"meeting_date": appointment.MeetingDateString(),
		"from":         appointment.From,
		"to":           appointment.To,
	}

	appointment.MeetingDate = datatypes.Date(date.Time())
	appointment.From = from.Format()
	appointment.To = to.Format()
	if doctor.CalendarConnected {
		appointment.SyncStatus = entity.SyncStatusPending
	}

	if err := u.appointmentRepo.Update(u.db, appointment); err != nil {
		u.log.Warnf("Failed to reschedule appointment: %+v", err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, u.db, &userID, entity.AuditActionAppointmentReschedule,
		"appointment", appointment.ID.String(), oldSlot, entity.JSON{
			"meeting_date": date.String(),
			"from":         appointment.From,
			"to":           appointment.To,
		})

	u.syncDispatcher.Dispatch(appointment, doctor)

	appointment.Doctor = *doctor
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) CancelAppointment(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	appointment, err := u.appointmentRepo.FindByID(u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	affected, err := u.appointmentRepo.Delete(u.db, id)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrAppointmentNotFound
	}

	u.auditService.LogDelete(ctx, u.db, &userID, entity.AuditActionAppointmentCancel,
		"appointment", id.String(), entity.JSON{
			"doctor_id":    appointment.DoctorID.String(),
			"meeting_date": appointment.MeetingDateString(),
			"from":         appointment.From,
			"to":           appointment.To,
		})

	return nil
}
