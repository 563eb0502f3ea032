package scheduling

import (
	"errors"
	"testing"
)

func testRules(t *testing.T) DoctorRules {
	t.Helper()
	from, _ := ParseCalendarDate("2026-02-18")
	to, _ := ParseCalendarDate("2026-02-20")
	return DoctorRules{
		DoctorID: "doc-1",
		Name:     "Dr. Verner",
		Weekly:   DefaultWeeklyAvailability(),
		Leaves:   []LeaveRange{{Label: "Annual Leave", From: from, To: to}},
	}
}

func mustDate(t *testing.T, s string) CalendarDate {
	t.Helper()
	d, err := ParseCalendarDate(s)
	if err != nil {
		t.Fatalf("ParseCalendarDate(%q): %v", s, err)
	}
	return d
}

func mustTime(t *testing.T, s string) TimeOfDay {
	t.Helper()
	tod, err := ParseTimeOfDay(s)
	if err != nil {
		t.Fatalf("ParseTimeOfDay(%q): %v", s, err)
	}
	return tod
}

func rejectionReason(t *testing.T, err error) Reason {
	t.Helper()
	var rejection *Rejection
	if !errors.As(err, &rejection) {
		t.Fatalf("expected *Rejection, got %v", err)
	}
	return rejection.Reason
}

func TestValidateAcceptsOpenSlot(t *testing.T) {
	candidate := Candidate{
		Date: mustDate(t, "2026-02-17"), // Tuesday
		From: mustTime(t, "10:00 AM"),
		To:   mustTime(t, "10:30 AM"),
	}

	if err := Validate(testRules(t), candidate, nil); err != nil {
		t.Fatalf("expected acceptance, got %v", err)
	}
}

func TestValidateRejectsLeaveDay(t *testing.T) {
	candidate := Candidate{
		Date: mustDate(t, "2026-02-19"),
		From: mustTime(t, "10:00 AM"),
		To:   mustTime(t, "10:30 AM"),
	}

	err := Validate(testRules(t), candidate, nil)
	if got := rejectionReason(t, err); got != ReasonDoctorOnLeave {
		t.Fatalf("reason = %s, want %s", got, ReasonDoctorOnLeave)
	}

	var rejection *Rejection
	errors.As(err, &rejection)
	if rejection.Detail != "Annual Leave" {
		t.Errorf("detail = %q, want the leave label", rejection.Detail)
	}
}

func TestValidateLeaveBoundariesInclusive(t *testing.T) {
	for _, day := range []string{"2026-02-18", "2026-02-20"} {
		candidate := Candidate{
			Date: mustDate(t, day),
			From: mustTime(t, "10:00 AM"),
			To:   mustTime(t, "10:30 AM"),
		}
		err := Validate(testRules(t), candidate, nil)
		if got := rejectionReason(t, err); got != ReasonDoctorOnLeave {
			t.Errorf("%s: reason = %s, want %s", day, got, ReasonDoctorOnLeave)
		}
	}
}

func TestValidateRejectsDisabledWeekday(t *testing.T) {
	candidate := Candidate{
		Date: mustDate(t, "2026-02-21"), // Saturday
		From: mustTime(t, "10:00 AM"),
		To:   mustTime(t, "10:30 AM"),
	}

	err := Validate(testRules(t), candidate, nil)
	if got := rejectionReason(t, err); got != ReasonUnavailableWeekday {
		t.Fatalf("reason = %s, want %s", got, ReasonUnavailableWeekday)
	}
}

func TestValidateRejectsEmptyInterval(t *testing.T) {
	candidate := Candidate{
		Date: mustDate(t, "2026-02-17"),
		From: mustTime(t, "10:30 AM"),
		To:   mustTime(t, "10:30 AM"),
	}

	err := Validate(testRules(t), candidate, nil)
	if got := rejectionReason(t, err); got != ReasonEndNotAfterStart {
		t.Fatalf("reason = %s, want %s", got, ReasonEndNotAfterStart)
	}
}

func TestValidateRejectsOutsideWorkingHours(t *testing.T) {
	tests := []struct{ from, to string }{
		{"8:00 AM", "9:30 AM"},  // starts too early
		{"4:30 PM", "5:30 PM"},  // ends too late
		{"7:00 PM", "8:00 PM"},  // fully outside
	}

	for _, tt := range tests {
		candidate := Candidate{
			Date: mustDate(t, "2026-02-17"),
			From: mustTime(t, tt.from),
			To:   mustTime(t, tt.to),
		}
		err := Validate(testRules(t), candidate, nil)
		if got := rejectionReason(t, err); got != ReasonOutsideWorkingHours {
			t.Errorf("%s-%s: reason = %s, want %s", tt.from, tt.to, got, ReasonOutsideWorkingHours)
		}
	}
}

func TestValidateWindowBoundariesAllowed(t *testing.T) {
	candidate := Candidate{
		Date: mustDate(t, "2026-02-17"),
		From: mustTime(t, "9:00 AM"),
		To:   mustTime(t, "5:00 PM"),
	}

	if err := Validate(testRules(t), candidate, nil); err != nil {
		t.Fatalf("full-window booking should pass, got %v", err)
	}
}

func TestValidateRejectsDoubleBooking(t *testing.T) {
	siblings := []Interval{
		{From: mustTime(t, "10:00 AM"), To: mustTime(t, "10:30 AM")},
	}
	candidate := Candidate{
		Date: mustDate(t, "2026-02-17"),
		From: mustTime(t, "10:15 AM"),
		To:   mustTime(t, "10:45 AM"),
	}

	err := Validate(testRules(t), candidate, siblings)
	if got := rejectionReason(t, err); got != ReasonDoubleBooked {
		t.Fatalf("reason = %s, want %s", got, ReasonDoubleBooked)
	}

	var rejection *Rejection
	errors.As(err, &rejection)
	if rejection.Conflict == nil || rejection.Conflict.From != siblings[0].From {
		t.Errorf("conflict interval not reported: %+v", rejection.Conflict)
	}
}

func TestValidateTouchingBookingsDoNotOverlap(t *testing.T) {
	siblings := []Interval{
		{From: mustTime(t, "10:00 AM"), To: mustTime(t, "10:30 AM")},
	}
	candidate := Candidate{
		Date: mustDate(t, "2026-02-17"),
		From: mustTime(t, "10:30 AM"),
		To:   mustTime(t, "11:00 AM"),
	}

	if err := Validate(testRules(t), candidate, siblings); err != nil {
		t.Fatalf("back-to-back booking should pass, got %v", err)
	}
}

func TestValidateChecksRunInOrder(t *testing.T) {
	// A leave-day request that also has inverted times and a sibling
	// collision must still report the leave, the first check to fail.
	siblings := []Interval{
		{From: mustTime(t, "10:00 AM"), To: mustTime(t, "11:00 AM")},
	}
	candidate := Candidate{
		Date: mustDate(t, "2026-02-19"),
		From: mustTime(t, "10:30 AM"),
		To:   mustTime(t, "10:00 AM"),
	}

	err := Validate(testRules(t), candidate, siblings)
	if got := rejectionReason(t, err); got != ReasonDoctorOnLeave {
		t.Fatalf("reason = %s, want %s", got, ReasonDoctorOnLeave)
	}
}

func TestIntervalOverlaps(t *testing.T) {
	base := Interval{From: 600, To: 660}

	tests := []struct {
		other Interval
		want  bool
	}{
		{Interval{From: 630, To: 690}, true},
		{Interval{From: 540, To: 630}, true},
		{Interval{From: 610, To: 650}, true},
		{Interval{From: 660, To: 720}, false},
		{Interval{From: 540, To: 600}, false},
	}

	for _, tt := range tests {
		if got := base.Overlaps(tt.other); got != tt.want {
			t.Errorf("Overlaps(%+v) = %v, want %v", tt.other, got, tt.want)
		}
	}
}
