package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"dentalcare-backend/internal/calendar"
	"dentalcare-backend/internal/converter"
	"dentalcare-backend/internal/delivery/dto"
	"dentalcare-backend/internal/domain/repository"
	"dentalcare-backend/internal/scheduling"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrInvalidViewMode = errors.New("invalid view mode, use day, week or month")
	ErrInvalidAnchor   = errors.New("invalid anchor date, use YYYY-MM-DD")
)

type CalendarViewUsecase interface {
	// GetCalendarView projects the practice calendar for one (mode, anchor)
	// pair. step moves the anchor first: -1 back, +1 forward, 0 stays.
	GetCalendarView(ctx context.Context, userID uuid.UUID, mode string, anchor string, step int) (*dto.CalendarViewResponse, error)
}

type calendarViewUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
}

func NewCalendarViewUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
) CalendarViewUsecase {
	return &calendarViewUsecase{
		db:              db,
		log:             log,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
	}
}

func (u *calendarViewUsecase) GetCalendarView(ctx context.Context, userID uuid.UUID, mode string, anchor string, step int) (*dto.CalendarViewResponse, error) {
	viewMode, err := parseViewMode(mode)
	if err != nil {
		return nil, err
	}

	anchorDate := scheduling.DateOf(time.Now().UTC())
	if anchor != "" {
		anchorDate, err = scheduling.ParseCalendarDate(anchor)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidAnchor, anchor)
		}
	}
	if step != 0 {
		anchorDate = calendar.Advance(anchorDate, viewMode, step)
	}

	fromDate, toDate := calendar.VisibleRange(viewMode, anchorDate)

	doctors, err := u.doctorRepo.FindByUserID(u.db, userID)
	if err != nil {
		u.log.Warnf("Failed to list doctors for calendar: %+v", err)
		return nil, err
	}

	doctorOrder := make([]string, len(doctors))
	for i, doctor := range doctors {
		doctorOrder[i] = doctor.ID.String()
	}

	rows, err := u.appointmentRepo.FindByUser(u.db, userID, &repository.AppointmentFilter{
		FromDate: fromDate.String(),
		ToDate:   toDate.String(),
	})
	if err != nil {
		u.log.Warnf("Failed to load appointments for calendar: %+v", err)
		return nil, err
	}

	appointments := make([]calendar.Appointment, 0, len(rows))
	dropped := 0
	for i := range rows {
		appointment, err := converter.AppointmentToCalendarModel(&rows[i])
		if err != nil {
			dropped++
			continue
		}
		appointments = append(appointments, appointment)
	}
	if dropped > 0 {
		u.log.Warnf("Dropped %d unrenderable appointments from calendar view", dropped)
	}

	legend := make([]dto.CalendarDoctorLegend, len(doctors))
	for i, doctor := range doctors {
		legend[i] = dto.CalendarDoctorLegend{
			ID:    doctor.ID,
			Name:  doctor.Name,
			Color: calendar.DoctorColor(doctor.ID.String(), doctorOrder),
		}
	}

	return &dto.CalendarViewResponse{
		Grid:    calendar.Project(appointments, viewMode, anchorDate, doctorOrder),
		Doctors: legend,
	}, nil
}

func parseViewMode(mode string) (calendar.ViewMode, error) {
	switch calendar.ViewMode(mode) {
	case calendar.ViewDay, calendar.ViewWeek, calendar.ViewMonth:
		return calendar.ViewMode(mode), nil
	case "":
		return calendar.ViewWeek, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidViewMode, mode)
	}
}
