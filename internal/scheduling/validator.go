package scheduling

import "fmt"

// Reason identifies why a candidate booking was rejected.
type Reason string

const (
	ReasonDoctorOnLeave       Reason = "doctor_on_leave"
	ReasonUnavailableWeekday  Reason = "doctor_unavailable_on_weekday"
	ReasonEndNotAfterStart    Reason = "end_not_after_start"
	ReasonOutsideWorkingHours Reason = "outside_working_hours"
	ReasonDoubleBooked        Reason = "double_booked"
)

// Interval is a half-open [From, To) slice of a single day.
type Interval struct {
	From TimeOfDay `json:"from"`
	To   TimeOfDay `json:"to"`
}

// Overlaps uses the standard half-open test: touching boundaries do not
// overlap, so a booking may start exactly when another ends.
func (i Interval) Overlaps(other Interval) bool {
	return i.From < other.To && other.From < i.To
}

// Candidate is a booking request reduced to the fields the rules act on.
type Candidate struct {
	Date CalendarDate
	From TimeOfDay
	To   TimeOfDay
}

// Rejection is the validator's typed failure. It carries the machine-readable
// reason plus enough detail for a user-facing message.
type Rejection struct {
	Reason   Reason
	Detail   string
	Conflict *Interval
}

func (r *Rejection) Error() string {
	if r.Detail != "" {
		return fmt.Sprintf("booking rejected: %s (%s)", r.Reason, r.Detail)
	}
	return fmt.Sprintf("booking rejected: %s", r.Reason)
}

// Validate decides whether a candidate appointment is legal for a doctor.
// Checks run in a fixed order and the first failure wins:
//
//  1. leave-range overlap
//  2. weekday enabled in the weekly availability table
//  3. end strictly after start
//  4. containment in the weekday's working window
//  5. pairwise overlap against sibling bookings
//
// siblings must already be filtered to the same doctor and meeting date by
// the caller; Validate performs no I/O and never mutates its inputs. Both
// times are minute-of-day on the candidate's date, so an appointment can
// never span midnight (step 3 rejects it).
func Validate(rules DoctorRules, c Candidate, siblings []Interval) error {
	for _, leave := range rules.Leaves {
		if leave.Contains(c.Date) {
			return &Rejection{Reason: ReasonDoctorOnLeave, Detail: leave.Label}
		}
	}

	window, ok := rules.Weekly[c.Date.Weekday()]
	if !ok || !window.Enabled {
		return &Rejection{Reason: ReasonUnavailableWeekday, Detail: c.Date.Weekday()}
	}

	if c.To <= c.From {
		return &Rejection{Reason: ReasonEndNotAfterStart}
	}

	if c.From < window.Start || c.To > window.End {
		return &Rejection{
			Reason: ReasonOutsideWorkingHours,
			Detail: fmt.Sprintf("%s - %s", window.Start.Format(), window.End.Format()),
		}
	}

	candidate := Interval{From: c.From, To: c.To}
	for _, s := range siblings {
		if candidate.Overlaps(s) {
			conflict := s
			return &Rejection{
				Reason:   ReasonDoubleBooked,
				Detail:   fmt.Sprintf("%s - %s", s.From.Format(), s.To.Format()),
				Conflict: &conflict,
			}
		}
	}

	return nil
}
