package scheduling

// Weekdays lists the availability-table keys in week order (Monday first,
// matching the calendar grid).
var Weekdays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// DayWindow is one weekday's working window. Start/End are only meaningful
// when Enabled is true, and then Start < End.
type DayWindow struct {
	Enabled bool      `json:"enabled"`
	Start   TimeOfDay `json:"start"`
	End     TimeOfDay `json:"end"`
}

// WeeklyAvailability maps short weekday labels ("Mon".."Sun") to windows.
type WeeklyAvailability map[string]DayWindow

// DefaultWeeklyAvailability is the template applied at doctor creation:
// Mon-Fri 09:00-17:00 enabled, weekend disabled.
func DefaultWeeklyAvailability() WeeklyAvailability {
	avail := make(WeeklyAvailability, len(Weekdays))
	for _, day := range Weekdays {
		enabled := day != "Sat" && day != "Sun"
		avail[day] = DayWindow{Enabled: enabled, Start: 9 * 60, End: 17 * 60}
	}
	return avail
}

// LeaveRange is a one-off block of days, inclusive on both ends, during which
// a doctor takes no bookings.
type LeaveRange struct {
	Label string       `json:"label"`
	From  CalendarDate `json:"from"`
	To    CalendarDate `json:"to"`
}

// Contains reports whether d falls inside the range, boundaries included.
func (l LeaveRange) Contains(d CalendarDate) bool {
	return !d.Before(l.From) && !d.After(l.To)
}

// DoctorRules bundles everything the validator needs to know about one
// doctor, already normalized by the data-access layer.
type DoctorRules struct {
	DoctorID string             `json:"doctor_id"`
	Name     string             `json:"name"`
	Weekly   WeeklyAvailability `json:"weekly_availability"`
	Leaves   []LeaveRange       `json:"leaves"`
}
