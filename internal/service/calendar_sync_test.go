package service

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"dentalcare-backend/internal/domain/entity"
	"dentalcare-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type fakeSyncer struct {
	mu     sync.Mutex
	events []CalendarEvent
	err    error
}

func (f *fakeSyncer) InsertEvent(ctx context.Context, refreshToken string, event CalendarEvent) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
	if f.err != nil {
		return "", f.err
	}
	return "evt-123", nil
}

func (f *fakeSyncer) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.events)
}

type fakeAppointmentRepo struct {
	repository.AppointmentRepository

	mu       sync.Mutex
	statuses map[uuid.UUID]entity.SyncStatus
}

func (f *fakeAppointmentRepo) UpdateSyncStatus(db *gorm.DB, id uuid.UUID, status entity.SyncStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.statuses == nil {
		f.statuses = make(map[uuid.UUID]entity.SyncStatus)
	}
	f.statuses[id] = status
	return nil
}

func (f *fakeAppointmentRepo) status(id uuid.UUID) entity.SyncStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.statuses[id]
}

type fakeAuditService struct {
	mu      sync.Mutex
	actions []string
}

func (f *fakeAuditService) LogCreate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action, entityName, entityID string, newValue interface{}) error {
	return f.record(action)
}

func (f *fakeAuditService) LogUpdate(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action, entityName, entityID string, oldValue, newValue interface{}) error {
	return f.record(action)
}

func (f *fakeAuditService) LogDelete(ctx context.Context, tx *gorm.DB, userID *uuid.UUID, action, entityName, entityID string, oldValue interface{}) error {
	return f.record(action)
}

func (f *fakeAuditService) record(action string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.actions = append(f.actions, action)
	return nil
}

func (f *fakeAuditService) recorded() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.actions...)
}

func testDispatcher(syncer CalendarSyncer) (*CalendarSyncDispatcher, *fakeAppointmentRepo, *fakeAuditService) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	repo := &fakeAppointmentRepo{}
	audit := &fakeAuditService{}
	return NewCalendarSyncDispatcher(nil, log, syncer, repo, audit, time.Second), repo, audit
}

func syncableAppointment(t *testing.T) *entity.Appointment {
	t.Helper()
	day, err := time.Parse("2006-01-02", "2026-02-18")
	if err != nil {
		t.Fatalf("parse date: %v", err)
	}
	return &entity.Appointment{
		ID:          uuid.New(),
		DoctorID:    uuid.New(),
		Timezone:    "America/New_York",
		MeetingDate: datatypes.Date(day),
		From:        "9:00 AM",
		To:          "9:30 AM",
		PatientDetails: entity.JSON{
			"name": "Alex Morgan",
		},
		SyncStatus: entity.SyncStatusPending,
	}
}

func connectedDoctor() *entity.Doctor {
	return &entity.Doctor{
		ID:                 uuid.New(),
		Name:               "Dr. Verner",
		CalendarConnected:  true,
		GoogleRefreshToken: "refresh-token",
	}
}

func TestDispatchMarksSynced(t *testing.T) {
	syncer := &fakeSyncer{}
	dispatcher, repo, _ := testDispatcher(syncer)
	appointment := syncableAppointment(t)

	dispatcher.Dispatch(appointment, connectedDoctor())
	dispatcher.Stop()

	if got := repo.status(appointment.ID); got != entity.SyncStatusSynced {
		t.Errorf("sync status = %s, want %s", got, entity.SyncStatusSynced)
	}

	if len(syncer.events) != 1 {
		t.Fatalf("syncer called %d times, want 1", len(syncer.events))
	}
	event := syncer.events[0]
	if event.Summary != "Appointment - Alex Morgan" {
		t.Errorf("summary = %q", event.Summary)
	}
	if event.StartDateTime != "2026-02-18T09:00:00" || event.EndDateTime != "2026-02-18T09:30:00" {
		t.Errorf("event window = %s..%s", event.StartDateTime, event.EndDateTime)
	}
	if event.Timezone != "America/New_York" {
		t.Errorf("timezone = %q", event.Timezone)
	}
}

func TestDispatchMarksFailedAndAudits(t *testing.T) {
	syncer := &fakeSyncer{err: errors.New("invalid_grant")}
	dispatcher, repo, audit := testDispatcher(syncer)
	appointment := syncableAppointment(t)

	dispatcher.Dispatch(appointment, connectedDoctor())
	dispatcher.Stop()

	if got := repo.status(appointment.ID); got != entity.SyncStatusFailed {
		t.Errorf("sync status = %s, want %s", got, entity.SyncStatusFailed)
	}

	actions := audit.recorded()
	if len(actions) != 1 || actions[0] != entity.AuditActionAppointmentSyncFailed {
		t.Errorf("audit actions = %v", actions)
	}
}

func TestDispatchSkipsUnlinkedDoctor(t *testing.T) {
	syncer := &fakeSyncer{}
	dispatcher, repo, _ := testDispatcher(syncer)
	appointment := syncableAppointment(t)

	dispatcher.Dispatch(appointment, &entity.Doctor{ID: uuid.New(), Name: "Dr. Verner"})
	dispatcher.Stop()

	if syncer.calls() != 0 {
		t.Errorf("syncer should not be called for unlinked doctor")
	}
	if got := repo.status(appointment.ID); got != "" {
		t.Errorf("sync status touched: %s", got)
	}
}

func TestDispatchFailsFastOnCorruptStoredTimes(t *testing.T) {
	syncer := &fakeSyncer{}
	dispatcher, repo, audit := testDispatcher(syncer)
	appointment := syncableAppointment(t)
	appointment.From = "garbage"

	dispatcher.Dispatch(appointment, connectedDoctor())
	dispatcher.Stop()

	if syncer.calls() != 0 {
		t.Errorf("syncer should not be called when the event cannot be built")
	}
	if got := repo.status(appointment.ID); got != entity.SyncStatusFailed {
		t.Errorf("sync status = %s, want %s", got, entity.SyncStatusFailed)
	}
	if len(audit.recorded()) != 1 {
		t.Errorf("expected one audit entry, got %v", audit.recorded())
	}
}

func TestDispatchAfterStopIsDropped(t *testing.T) {
	syncer := &fakeSyncer{}
	dispatcher, repo, _ := testDispatcher(syncer)
	dispatcher.Stop()

	appointment := syncableAppointment(t)
	dispatcher.Dispatch(appointment, connectedDoctor())

	if syncer.calls() != 0 {
		t.Errorf("syncer called after Stop")
	}
	if got := repo.status(appointment.ID); got != "" {
		t.Errorf("sync status touched after Stop: %s", got)
	}
}
