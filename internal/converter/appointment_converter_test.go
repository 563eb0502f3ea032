package converter

import (
	"testing"
	"time"

	"dentalcare-backend/internal/domain/entity"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

func storedAppointment(t *testing.T, date, from, to string) entity.Appointment {
	t.Helper()
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		t.Fatalf("bad date %q: %v", date, err)
	}
	return entity.Appointment{
		ID:          uuid.New(),
		DoctorID:    uuid.New(),
		MeetingDate: datatypes.Date(day),
		From:        from,
		To:          to,
		PatientDetails: entity.JSON{
			"name": "Alex Morgan",
		},
	}
}

func TestSiblingIntervals(t *testing.T) {
	a := storedAppointment(t, "2026-02-17", "9:00 AM", "9:30 AM")
	b := storedAppointment(t, "2026-02-17", "10:00 AM", "10:30 AM")

	intervals, skipped := SiblingIntervals([]entity.Appointment{a, b}, nil)
	if skipped != 0 {
		t.Fatalf("skipped = %d, want 0", skipped)
	}
	if len(intervals) != 2 {
		t.Fatalf("got %d intervals, want 2", len(intervals))
	}
	if intervals[0].From != 9*60 || intervals[0].To != 9*60+30 {
		t.Errorf("first interval = %+v", intervals[0])
	}
}

func TestSiblingIntervalsExcludesRescheduledRow(t *testing.T) {
	a := storedAppointment(t, "2026-02-17", "9:00 AM", "9:30 AM")
	b := storedAppointment(t, "2026-02-17", "10:00 AM", "10:30 AM")

	intervals, _ := SiblingIntervals([]entity.Appointment{a, b}, &a.ID)
	if len(intervals) != 1 {
		t.Fatalf("got %d intervals, want 1", len(intervals))
	}
	if intervals[0].From != 10*60 {
		t.Errorf("excluded the wrong row: %+v", intervals[0])
	}
}

func TestSiblingIntervalsSkipsUnparseableRows(t *testing.T) {
	good := storedAppointment(t, "2026-02-17", "9:00 AM", "9:30 AM")
	bad := storedAppointment(t, "2026-02-17", "garbage", "9:30 AM")

	intervals, skipped := SiblingIntervals([]entity.Appointment{good, bad}, nil)
	if len(intervals) != 1 || skipped != 1 {
		t.Errorf("intervals = %d, skipped = %d; want 1, 1", len(intervals), skipped)
	}
}

func TestAppointmentToCalendarModel(t *testing.T) {
	a := storedAppointment(t, "2026-02-18", "1:00 PM", "1:45 PM")

	model, err := AppointmentToCalendarModel(&a)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if model.Date.String() != "2026-02-18" {
		t.Errorf("date = %s", model.Date)
	}
	if model.From != 13*60 || model.To != 13*60+45 {
		t.Errorf("interval = %d..%d", model.From, model.To)
	}
	if model.Title != "Alex Morgan" {
		t.Errorf("title = %q", model.Title)
	}
}

func TestAppointmentToCalendarModelRejectsCorruptTimes(t *testing.T) {
	a := storedAppointment(t, "2026-02-18", "25:99", "1:45 PM")

	if _, err := AppointmentToCalendarModel(&a); err == nil {
		t.Fatal("expected an error for unparseable stored time")
	}
}
