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
	"gorm.io/gorm"
)

var (
	ErrDoctorNotFound    = errors.New("doctor not found")
	ErrUserNotFound      = errors.New("user not found")
	ErrInvalidWeekday    = errors.New("invalid weekday, use Mon..Sun")
	ErrInvalidWindowTime = errors.New("invalid availability time, use HH:MM or h:mm AM/PM")
	ErrEmptyWindow       = errors.New("availability window end must be after start")
	ErrInvalidLeaveDate  = errors.New("invalid time-off date, use YYYY-MM-DD")
	ErrInvalidLeaveRange = errors.New("time-off range end must not be before start")
)

type DoctorUsecase interface {
	CreateDoctor(ctx context.Context, userID uuid.UUID, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	GetDoctor(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error)
	ListDoctors(ctx context.Context, userID uuid.UUID) (*dto.DoctorListResponse, error)
	UpdateDoctor(ctx context.Context, userID uuid.UUID, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error)
	DeleteDoctor(ctx context.Context, userID uuid.UUID, id uuid.UUID) error
	UpdateAvailability(ctx context.Context, userID uuid.UUID, id uuid.UUID, req *dto.UpdateAvailabilityRequest) (*dto.DoctorResponse, error)
	UpdateTimeOff(ctx context.Context, userID uuid.UUID, id uuid.UUID, req *dto.UpdateTimeOffRequest) (*dto.DoctorResponse, error)
	StoreCalendarCredential(ctx context.Context, doctorID uuid.UUID, refreshToken string) error
}

type doctorUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	doctorRepo   repository.DoctorRepository
	userRepo     repository.UserRepository
	auditService service.AuditService
	rulesCache   *cache.DoctorRulesCache
}

func NewDoctorUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	doctorRepo repository.DoctorRepository,
	userRepo repository.UserRepository,
	auditService service.AuditService,
	rulesCache *cache.DoctorRulesCache,
) DoctorUsecase {
	return &doctorUsecase{
		db:           db,
		log:          log,
		doctorRepo:   doctorRepo,
		userRepo:     userRepo,
		auditService: auditService,
		rulesCache:   rulesCache,
	}
}

func (u *doctorUsecase) CreateDoctor(ctx context.Context, userID uuid.UUID, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	// Validate the owning staff account exists
	user, err := u.userRepo.FindByID(u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to find user: %+v", err)
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	availability, err := converter.MarshalWeeklyAvailability(scheduling.DefaultWeeklyAvailability())
	if err != nil {
		u.log.Warnf("Failed to marshal default availability: %+v", err)
		return nil, err
	}
	offDays, err := converter.MarshalOffDays(nil)
	if err != nil {
		u.log.Warnf("Failed to marshal empty off days: %+v", err)
		return nil, err
	}

	doctor := &entity.Doctor{
		UserID:             userID,
		Name:               req.Name,
		Email:              req.Email,
		Phone:              req.Phone,
		Specialization:     req.Specialization,
		WeeklyAvailability: availability,
		OffDays:            offDays,
	}

	if err := u.doctorRepo.Create(u.db, doctor); err != nil {
		u.log.Warnf("Failed to create doctor: %+v", err)
		return nil, err
	}

	u.auditService.LogCreate(ctx, u.db, &userID, entity.AuditActionDoctorCreate,
		"doctor", doctor.ID.String(), entity.JSON{"name": doctor.Name})

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetDoctor(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) ListDoctors(ctx context.Context, userID uuid.UUID) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindByUserID(u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, err
	}

	return &dto.DoctorListResponse{
		Doctors: converter.DoctorsToResponses(doctors),
		Total:   len(doctors),
	}, nil
}

func (u *doctorUsecase) UpdateDoctor(ctx context.Context, userID uuid.UUID, id uuid.UUID, req *dto.UpdateDoctorRequest) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	oldName := doctor.Name

	if req.Name != "" {
		doctor.Name = req.Name
	}
	if req.Email != "" {
		doctor.Email = req.Email
	}
	if req.Phone != "" {
		doctor.Phone = req.Phone
	}
	if req.Specialization != "" {
		doctor.Specialization = req.Specialization
	}

	if err := u.doctorRepo.Update(u.db, doctor); err != nil {
		u.log.Warnf("Failed to update doctor: %+v", err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, u.db, &userID, entity.AuditActionDoctorUpdate,
		"doctor", doctor.ID.String(),
		entity.JSON{"name": oldName}, entity.JSON{"name": doctor.Name})
	u.rulesCache.Invalidate(ctx, doctor.ID.String())

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) DeleteDoctor(ctx context.Context, userID uuid.UUID, id uuid.UUID) error {
	doctor, err := u.doctorRepo.FindByID(u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	affected, err := u.doctorRepo.Delete(u.db, id)
	if err != nil {
		u.log.Warnf("Failed to delete doctor: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrDoctorNotFound
	}

	u.auditService.LogDelete(ctx, u.db, &userID, entity.AuditActionDoctorDelete,
		"doctor", id.String(), entity.JSON{"name": doctor.Name})
	u.rulesCache.Invalidate(ctx, id.String())

	return nil
}

func (u *doctorUsecase) UpdateAvailability(ctx context.Context, userID uuid.UUID, id uuid.UUID, req *dto.UpdateAvailabilityRequest) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	availability, err := buildAvailability(req.Days)
	if err != nil {
		return nil, err
	}

	raw, err := converter.MarshalWeeklyAvailability(availability)
	if err != nil {
		u.log.Warnf("Failed to marshal availability: %+v", err)
		return nil, err
	}

	old := doctor.WeeklyAvailability
	doctor.WeeklyAvailability = raw

	if err := u.doctorRepo.Update(u.db, doctor); err != nil {
		u.log.Warnf("Failed to update doctor availability: %+v", err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, u.db, &userID, entity.AuditActionAvailabilityUpdate,
		"doctor", doctor.ID.String(),
		entity.JSON{"weekly_availability": string(old)},
		entity.JSON{"weekly_availability": string(raw)})
	u.rulesCache.Invalidate(ctx, doctor.ID.String())

	return converter.DoctorToResponse(doctor), nil
}

// buildAvailability validates the editor's submission against the weekday
// vocabulary and window rules. Days missing from the request stay disabled.
func buildAvailability(days map[string]dto.DayWindowRequest) (scheduling.WeeklyAvailability, error) {
	valid := make(map[string]bool, len(scheduling.Weekdays))
	for _, day := range scheduling.Weekdays {
		valid[day] = true
	}

	availability := make(scheduling.WeeklyAvailability, len(scheduling.Weekdays))
	for _, day := range scheduling.Weekdays {
		availability[day] = scheduling.DayWindow{}
	}

	for day, window := range days {
		if !valid[day] {
			return nil, fmt.Errorf("%w: %s", ErrInvalidWeekday, day)
		}
		if !window.Enabled {
			availability[day] = scheduling.DayWindow{}
			continue
		}

		start, err := scheduling.ParseTimeOfDay(window.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: %s start %q", ErrInvalidWindowTime, day, window.Start)
		}
		end, err := scheduling.ParseTimeOfDay(window.End)
		if err != nil {
			return nil, fmt.Errorf("%w: %s end %q", ErrInvalidWindowTime, day, window.End)
		}
		if end <= start {
			return nil, fmt.Errorf("%w: %s", ErrEmptyWindow, day)
		}
		availability[day] = scheduling.DayWindow{Enabled: true, Start: start, End: end}
	}

	return availability, nil
}

func (u *doctorUsecase) UpdateTimeOff(ctx context.Context, userID uuid.UUID, id uuid.UUID, req *dto.UpdateTimeOffRequest) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(u.db, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return nil, err
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	leaves := make([]scheduling.LeaveRange, 0, len(req.Entries))
	for _, entry := range req.Entries {
		from, err := scheduling.ParseCalendarDate(entry.From)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLeaveDate, entry.From)
		}
		to, err := scheduling.ParseCalendarDate(entry.To)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidLeaveDate, entry.To)
		}
		if from.After(to) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidLeaveRange, entry.Label)
		}
		leaves = append(leaves, scheduling.LeaveRange{Label: entry.Label, From: from, To: to})
	}

	raw, err := converter.MarshalOffDays(leaves)
	if err != nil {
		u.log.Warnf("Failed to marshal off days: %+v", err)
		return nil, err
	}

	old := doctor.OffDays
	doctor.OffDays = raw

	if err := u.doctorRepo.Update(u.db, doctor); err != nil {
		u.log.Warnf("Failed to update doctor time off: %+v", err)
		return nil, err
	}

	u.auditService.LogUpdate(ctx, u.db, &userID, entity.AuditActionTimeOffUpdate,
		"doctor", doctor.ID.String(),
		entity.JSON{"off_days": string(old)},
		entity.JSON{"off_days": string(raw)})
	u.rulesCache.Invalidate(ctx, doctor.ID.String())

	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) StoreCalendarCredential(ctx context.Context, doctorID uuid.UUID, refreshToken string) error {
	doctor, err := u.doctorRepo.FindByID(u.db, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor: %+v", err)
		return err
	}
	if doctor == nil {
		return ErrDoctorNotFound
	}

	doctor.GoogleRefreshToken = refreshToken
	doctor.CalendarConnected = true

	if err := u.doctorRepo.Update(u.db, doctor); err != nil {
		u.log.Warnf("Failed to store calendar credential: %+v", err)
		return err
	}

	u.auditService.LogUpdate(ctx, u.db, nil, entity.AuditActionCalendarLinked,
		"doctor", doctor.ID.String(), nil, entity.JSON{"calendar_connected": true})

	return nil
}
