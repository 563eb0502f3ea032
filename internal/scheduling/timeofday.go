package scheduling

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTimeFormat is returned when a time-of-day string matches neither
// the 12-hour ("9:00 AM") nor the 24-hour ("14:30") shape.
var ErrInvalidTimeFormat = errors.New("invalid time format")

// ErrInvalidDateFormat is returned for calendar dates not in YYYY-MM-DD form.
var ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")

var (
	time12Pattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})\s*([AaPp][Mm])$`)
	time24Pattern = regexp.MustCompile(`^(\d{1,2}):(\d{2})$`)
)

// TimeOfDay is a wall-clock time as minutes since midnight, 0-1439.
// Values are only constructed through ParseTimeOfDay so the range invariant
// holds everywhere downstream.
type TimeOfDay int

// ParseTimeOfDay parses "H:MM AM|PM" (hour 1-12, case-insensitive) or
// "HH:MM" 24-hour (hour 0-23). Anything else fails with ErrInvalidTimeFormat.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)

	if m := time12Pattern.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour < 1 || hour > 12 || minute > 59 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
		period := strings.ToUpper(m[3])
		if period == "PM" && hour != 12 {
			hour += 12
		}
		if period == "AM" && hour == 12 {
			hour = 0
		}
		return TimeOfDay(hour*60 + minute), nil
	}

	if m := time24Pattern.FindStringSubmatch(s); m != nil {
		hour, _ := strconv.Atoi(m[1])
		minute, _ := strconv.Atoi(m[2])
		if hour > 23 || minute > 59 {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
		return TimeOfDay(hour*60 + minute), nil
	}

	return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
}

// Hour returns the hour component, 0-23.
func (t TimeOfDay) Hour() int {
	return int(t) / 60
}

// Minute returns the minute component, 0-59.
func (t TimeOfDay) Minute() int {
	return int(t) % 60
}

// Format renders the time in 12-hour display form, e.g. "9:05 AM".
// Parsing the result yields the same TimeOfDay.
func (t TimeOfDay) Format() string {
	hour := t.Hour()
	period := "AM"
	switch {
	case hour == 0:
		hour = 12
	case hour == 12:
		period = "PM"
	case hour > 12:
		hour -= 12
		period = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", hour, t.Minute(), period)
}

// Format24 renders the zero-padded 24-hour form used by the stored
// availability table, e.g. "09:00".
func (t TimeOfDay) Format24() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

func (t TimeOfDay) String() string {
	return t.Format()
}

// CalendarDate is a date without time-of-day, compared by calendar identity.
// It is deliberately not a time.Time so that timezone shifting can never move
// a booking to a neighbouring day.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// ParseCalendarDate parses a "YYYY-MM-DD" string.
func ParseCalendarDate(s string) (CalendarDate, error) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return CalendarDate{}, fmt.Errorf("%w: %q", ErrInvalidDateFormat, s)
	}
	return CalendarDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}, nil
}

// DateOf truncates an instant to its calendar date in the instant's location.
func DateOf(t time.Time) CalendarDate {
	return CalendarDate{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

func (d CalendarDate) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

func (d CalendarDate) String() string {
	return d.Time().Format("2006-01-02")
}

// Weekday returns the short weekday label used by availability tables:
// "Sun", "Mon", ... "Sat".
func (d CalendarDate) Weekday() string {
	return d.Time().Format("Mon")
}

func (d CalendarDate) AddDays(n int) CalendarDate {
	return DateOf(d.Time().AddDate(0, 0, n))
}

// AddMonths moves by whole calendar months with Go's AddDate overflow rules.
func (d CalendarDate) AddMonths(n int) CalendarDate {
	return DateOf(d.Time().AddDate(0, n, 0))
}

func (d CalendarDate) Equal(other CalendarDate) bool {
	return d == other
}

func (d CalendarDate) Before(other CalendarDate) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

func (d CalendarDate) After(other CalendarDate) bool {
	return other.Before(d)
}

func (d CalendarDate) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Quote(d.String())), nil
}

func (d *CalendarDate) UnmarshalJSON(b []byte) error {
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return err
	}
	parsed, err := ParseCalendarDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// CombineDateTime concatenates a date and a time into a sortable local
// date-time string ("2006-01-02T15:04:00"). No timezone conversion happens
// here; the practice timezone travels alongside as an opaque string.
func CombineDateTime(d CalendarDate, t TimeOfDay) string {
	return fmt.Sprintf("%sT%02d:%02d:00", d.String(), t.Hour(), t.Minute())
}
