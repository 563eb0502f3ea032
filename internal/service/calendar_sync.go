package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"dentalcare-backend/internal/domain/entity"
	"dentalcare-backend/internal/domain/repository"
	"dentalcare-backend/internal/scheduling"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CalendarEvent is the provider-neutral shape handed to a CalendarSyncer.
// Date-times are local wall clock ("2006-01-02T15:04:00"); the timezone
// travels separately so the provider can attach its own zone handling.
type CalendarEvent struct {
	Summary       string
	Description   string
	StartDateTime string
	EndDateTime   string
	Timezone      string
}

// CalendarSyncer pushes one event to an external calendar on behalf of a
// doctor identified by their stored refresh token.
type CalendarSyncer interface {
	InsertEvent(ctx context.Context, refreshToken string, event CalendarEvent) (string, error)
}

// CalendarSyncDispatcher runs the fire-and-forget external calendar sync.
// Dispatch returns immediately; a single best-effort attempt runs in the
// background and lands in sync_status. A failed attempt is never retried
// and never surfaces to the booking caller — the appointment is already
// persisted and stays valid either way.
type CalendarSyncDispatcher struct {
	db              *gorm.DB
	log             *logrus.Logger
	syncer          CalendarSyncer
	appointmentRepo repository.AppointmentRepository
	auditService    AuditService
	timeout         time.Duration

	wg      sync.WaitGroup
	stopped atomic.Bool
}

func NewCalendarSyncDispatcher(
	db *gorm.DB,
	log *logrus.Logger,
	syncer CalendarSyncer,
	appointmentRepo repository.AppointmentRepository,
	auditService AuditService,
	timeout time.Duration,
) *CalendarSyncDispatcher {
	return &CalendarSyncDispatcher{
		db:              db,
		log:             log,
		syncer:          syncer,
		appointmentRepo: appointmentRepo,
		auditService:    auditService,
		timeout:         timeout,
	}
}

// Stop waits for in-flight sync attempts to finish. Safe to call multiple
// times; Dispatch calls after Stop are dropped.
func (d *CalendarSyncDispatcher) Stop() {
	if d.stopped.CompareAndSwap(false, true) {
		d.wg.Wait()
		d.log.Info("Calendar sync dispatcher stopped")
	}
}

// Dispatch schedules a background sync of one appointment to the doctor's
// linked calendar. No-op when the doctor has no calendar linked.
func (d *CalendarSyncDispatcher) Dispatch(appointment *entity.Appointment, doctor *entity.Doctor) {
	if !doctor.CalendarConnected || doctor.GoogleRefreshToken == "" {
		return
	}
	if d.stopped.Load() {
		d.log.Warnf("Dispatcher stopped, dropping calendar sync for appointment %s", appointment.ID)
		return
	}

	event, err := d.buildEvent(appointment)
	if err != nil {
		d.log.Warnf("Cannot build calendar event for appointment %s: %+v", appointment.ID, err)
		d.markFailed(appointment, err)
		return
	}

	appointmentID := appointment.ID
	refreshToken := doctor.GoogleRefreshToken

	d.wg.Add(1)
	go func() {
		defer d.wg.Done()

		// The request context is gone by now; the attempt gets its own
		// deadline instead.
		ctx, cancel := context.WithTimeout(context.Background(), d.timeout)
		defer cancel()

		eventID, err := d.syncer.InsertEvent(ctx, refreshToken, event)
		if err != nil {
			d.log.Warnf("Calendar sync failed for appointment %s: %+v", appointmentID, err)
			d.markFailed(appointment, err)
			return
		}

		if err := d.appointmentRepo.UpdateSyncStatus(d.db, appointmentID, entity.SyncStatusSynced); err != nil {
			d.log.Warnf("Failed to record sync result for appointment %s: %+v", appointmentID, err)
			return
		}
		d.log.Infof("Appointment %s synced to external calendar as event %s", appointmentID, eventID)
	}()
}

func (d *CalendarSyncDispatcher) markFailed(appointment *entity.Appointment, cause error) {
	if err := d.appointmentRepo.UpdateSyncStatus(d.db, appointment.ID, entity.SyncStatusFailed); err != nil {
		d.log.Warnf("Failed to record sync failure for appointment %s: %+v", appointment.ID, err)
	}

	d.auditService.LogUpdate(context.Background(), d.db, nil,
		entity.AuditActionAppointmentSyncFailed, "appointment", appointment.ID.String(),
		nil, entity.JSON{"error": cause.Error()})
}

func (d *CalendarSyncDispatcher) buildEvent(appointment *entity.Appointment) (CalendarEvent, error) {
	date, err := scheduling.ParseCalendarDate(appointment.MeetingDateString())
	if err != nil {
		return CalendarEvent{}, fmt.Errorf("meeting date: %w", err)
	}
	from, err := scheduling.ParseTimeOfDay(appointment.From)
	if err != nil {
		return CalendarEvent{}, fmt.Errorf("from time: %w", err)
	}
	to, err := scheduling.ParseTimeOfDay(appointment.To)
	if err != nil {
		return CalendarEvent{}, fmt.Errorf("to time: %w", err)
	}

	return CalendarEvent{
		Summary:       fmt.Sprintf("Appointment - %s", appointment.PatientName()),
		Description:   appointment.Notes,
		StartDateTime: scheduling.CombineDateTime(date, from),
		EndDateTime:   scheduling.CombineDateTime(date, to),
		Timezone:      appointment.Timezone,
	}, nil
}
