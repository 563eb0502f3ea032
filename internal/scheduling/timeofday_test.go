package scheduling

import (
	"errors"
	"testing"
	"time"
)

func TestParseTimeOfDay12Hour(t *testing.T) {
	tests := []struct {
		in   string
		want TimeOfDay
	}{
		{"9:00 AM", 9 * 60},
		{"9:05 am", 9*60 + 5},
		{"12:00 AM", 0},
		{"12:30 AM", 30},
		{"12:00 PM", 12 * 60},
		{"12:45 PM", 12*60 + 45},
		{"1:00 PM", 13 * 60},
		{"11:59 PM", 23*60 + 59},
		{"9:00AM", 9 * 60},
		{"  9:00 AM  ", 9 * 60},
	}

	for _, tt := range tests {
		got, err := ParseTimeOfDay(tt.in)
		if err != nil {
			t.Fatalf("ParseTimeOfDay(%q) returned error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseTimeOfDay(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseTimeOfDay24Hour(t *testing.T) {
	tests := []struct {
		in   string
		want TimeOfDay
	}{
		{"00:00", 0},
		{"09:00", 9 * 60},
		{"9:30", 9*60 + 30},
		{"14:30", 14*60 + 30},
		{"23:59", 23*60 + 59},
	}

	for _, tt := range tests {
		got, err := ParseTimeOfDay(tt.in)
		if err != nil {
			t.Fatalf("ParseTimeOfDay(%q) returned error: %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseTimeOfDay(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestParseTimeOfDayRejectsMalformed(t *testing.T) {
	bad := []string{
		"", "9", "9 AM", "25:00", "12:60", "0:30 PM", "13:00 PM",
		"9:00 XM", "nine o'clock", "09:00:00",
	}

	for _, in := range bad {
		if _, err := ParseTimeOfDay(in); !errors.Is(err, ErrInvalidTimeFormat) {
			t.Errorf("ParseTimeOfDay(%q) = %v, want ErrInvalidTimeFormat", in, err)
		}
	}
}

func TestTimeOfDayFormatRoundTrip(t *testing.T) {
	for _, minutes := range []TimeOfDay{0, 30, 9 * 60, 12 * 60, 12*60 + 45, 13 * 60, 23*60 + 59} {
		parsed, err := ParseTimeOfDay(minutes.Format())
		if err != nil {
			t.Fatalf("reparse of %q failed: %v", minutes.Format(), err)
		}
		if parsed != minutes {
			t.Errorf("round trip of %d via %q = %d", minutes, minutes.Format(), parsed)
		}
	}
}

func TestTimeOfDayFormat(t *testing.T) {
	tests := []struct {
		minutes TimeOfDay
		want    string
	}{
		{0, "12:00 AM"},
		{30, "12:30 AM"},
		{9*60 + 5, "9:05 AM"},
		{12 * 60, "12:00 PM"},
		{13*60 + 15, "1:15 PM"},
		{23*60 + 59, "11:59 PM"},
	}

	for _, tt := range tests {
		if got := tt.minutes.Format(); got != tt.want {
			t.Errorf("Format(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestTimeOfDayFormat24(t *testing.T) {
	if got := TimeOfDay(9 * 60).Format24(); got != "09:00" {
		t.Errorf("Format24 = %q, want 09:00", got)
	}
	if got := TimeOfDay(23*60 + 5).Format24(); got != "23:05" {
		t.Errorf("Format24 = %q, want 23:05", got)
	}
}

func TestParseCalendarDate(t *testing.T) {
	d, err := ParseCalendarDate("2026-02-18")
	if err != nil {
		t.Fatalf("ParseCalendarDate: %v", err)
	}
	if d.Year != 2026 || d.Month != time.February || d.Day != 18 {
		t.Errorf("ParseCalendarDate = %+v", d)
	}
	if d.String() != "2026-02-18" {
		t.Errorf("String() = %q", d.String())
	}
	if d.Weekday() != "Wed" {
		t.Errorf("Weekday() = %q, want Wed", d.Weekday())
	}

	if _, err := ParseCalendarDate("18/02/2026"); !errors.Is(err, ErrInvalidDateFormat) {
		t.Errorf("expected ErrInvalidDateFormat, got %v", err)
	}
}

func TestCalendarDateComparisons(t *testing.T) {
	a, _ := ParseCalendarDate("2026-02-18")
	b, _ := ParseCalendarDate("2026-02-20")

	if !a.Before(b) || b.Before(a) {
		t.Errorf("Before is wrong for %s vs %s", a, b)
	}
	if !b.After(a) {
		t.Errorf("After is wrong for %s vs %s", b, a)
	}
	if !a.Equal(a) || a.Equal(b) {
		t.Errorf("Equal is wrong")
	}
}

func TestCalendarDateAddDaysCrossesMonth(t *testing.T) {
	d, _ := ParseCalendarDate("2026-01-31")
	next := d.AddDays(1)
	if next.String() != "2026-02-01" {
		t.Errorf("AddDays(1) = %s, want 2026-02-01", next)
	}

	leap, _ := ParseCalendarDate("2024-02-28")
	if leap.AddDays(1).String() != "2024-02-29" {
		t.Errorf("leap day not handled: %s", leap.AddDays(1))
	}
}

func TestCalendarDateJSON(t *testing.T) {
	d, _ := ParseCalendarDate("2026-02-18")
	raw, err := d.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	if string(raw) != `"2026-02-18"` {
		t.Errorf("MarshalJSON = %s", raw)
	}

	var back CalendarDate
	if err := back.UnmarshalJSON(raw); err != nil {
		t.Fatalf("UnmarshalJSON: %v", err)
	}
	if !back.Equal(d) {
		t.Errorf("round trip = %+v, want %+v", back, d)
	}
}

func TestCombineDateTime(t *testing.T) {
	d, _ := ParseCalendarDate("2026-02-18")
	from, _ := ParseTimeOfDay("9:05 AM")
	if got := CombineDateTime(d, from); got != "2026-02-18T09:05:00" {
		t.Errorf("CombineDateTime = %q", got)
	}
}
