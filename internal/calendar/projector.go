// Package calendar lays appointments out into day/week/month grids for the
// practice calendar page. Everything here is pure date and pixel arithmetic
// over data the caller already fetched.
package calendar

import (
	"fmt"

	"dentalcare-backend/internal/scheduling"
)

// ViewMode selects the grid shape.
type ViewMode string

const (
	ViewDay   ViewMode = "day"
	ViewWeek  ViewMode = "week"
	ViewMonth ViewMode = "month"
)

const (
	// HourHeight is the pixel height of one hour row on the 24-hour axis.
	HourHeight = 60
	// MinCardHeight keeps very short appointments clickable in day view.
	MinCardHeight = 28
	// MinCardHeightWeek is the tighter floor used by the narrower week columns.
	MinCardHeightWeek = 24
	// MonthCellCap is how many entries a month cell shows before collapsing
	// the rest into an overflow counter.
	MonthCellCap = 3
	// MonthGridCells is always 6 weeks x 7 days.
	MonthGridCells = 42
)

// doctorPalette assigns stable per-doctor accent colors.
var doctorPalette = []string{
	"#6f2ac3", "#2563EB", "#059669", "#D97706", "#DC2626",
	"#7C3AED", "#0891B2", "#BE185D", "#4F46E5", "#15803D",
}

// Appointment is the projector's read model: one confirmed booking with its
// times already parsed.
type Appointment struct {
	ID       string                  `json:"id"`
	DoctorID string                  `json:"doctor_id"`
	Date     scheduling.CalendarDate `json:"date"`
	From     scheduling.TimeOfDay    `json:"from"`
	To       scheduling.TimeOfDay    `json:"to"`
	Title    string                  `json:"title"`
}

// Card is an appointment positioned on the vertical 24-hour axis.
type Card struct {
	Appointment
	Top    int    `json:"top"`
	Height int    `json:"height"`
	Color  string `json:"color"`
}

// DayColumn is one day's worth of positioned cards.
type DayColumn struct {
	Date  scheduling.CalendarDate `json:"date"`
	Cards []Card                  `json:"cards"`
}

// MonthCell is a single cell of the 6x7 month grid. Dimmed cells belong to
// the neighbouring months that pad the grid out to 42 cells.
type MonthCell struct {
	Date     scheduling.CalendarDate `json:"date"`
	Dimmed   bool                    `json:"dimmed"`
	Cards    []Card                  `json:"cards"`
	Overflow int                     `json:"overflow"`
}

// Grid is the projected view for one (mode, anchor) pair.
type Grid struct {
	Mode   ViewMode                `json:"mode"`
	Anchor scheduling.CalendarDate `json:"anchor"`
	Label  string                  `json:"label"`
	Days   []DayColumn             `json:"days,omitempty"`
	Cells  []MonthCell             `json:"cells,omitempty"`
}

// Project builds the grid for the requested view. doctorOrder is the full
// ordered doctor-id set for the practice; it pins each doctor to a palette
// slot so the same doctor keeps its color across renders.
func Project(appts []Appointment, mode ViewMode, anchor scheduling.CalendarDate, doctorOrder []string) Grid {
	grid := Grid{Mode: mode, Anchor: anchor, Label: RangeLabel(mode, anchor)}

	switch mode {
	case ViewWeek:
		for _, day := range WeekOf(anchor) {
			grid.Days = append(grid.Days, projectDay(appts, day, doctorOrder, MinCardHeightWeek))
		}
	case ViewMonth:
		grid.Cells = projectMonth(appts, anchor, doctorOrder)
	default:
		grid.Mode = ViewDay
		grid.Days = []DayColumn{projectDay(appts, anchor, doctorOrder, MinCardHeight)}
	}

	return grid
}

func projectDay(appts []Appointment, day scheduling.CalendarDate, doctorOrder []string, minHeight int) DayColumn {
	col := DayColumn{Date: day}
	for _, a := range appts {
		if !a.Date.Equal(day) {
			continue
		}
		col.Cards = append(col.Cards, positionCard(a, doctorOrder, minHeight))
	}
	return col
}

func positionCard(a Appointment, doctorOrder []string, minHeight int) Card {
	top := int(a.From) * HourHeight / 60
	height := int(a.To-a.From) * HourHeight / 60
	if height < minHeight {
		height = minHeight
	}
	return Card{
		Appointment: a,
		Top:         top,
		Height:      height,
		Color:       DoctorColor(a.DoctorID, doctorOrder),
	}
}

func projectMonth(appts []Appointment, anchor scheduling.CalendarDate, doctorOrder []string) []MonthCell {
	cells := make([]MonthCell, 0, MonthGridCells)
	for _, day := range MonthDays(anchor) {
		cell := MonthCell{Date: day, Dimmed: day.Month != anchor.Month || day.Year != anchor.Year}
		for _, a := range appts {
			if !a.Date.Equal(day) {
				continue
			}
			if len(cell.Cards) < MonthCellCap {
				cell.Cards = append(cell.Cards, positionCard(a, doctorOrder, MinCardHeight))
			} else {
				cell.Overflow++
			}
		}
		cells = append(cells, cell)
	}
	return cells
}

// WeekOf returns the Monday-start 7-day window containing anchor. Sunday maps
// to offset -6 so the week never starts mid-grid.
func WeekOf(anchor scheduling.CalendarDate) []scheduling.CalendarDate {
	weekday := int(anchor.Time().Weekday())
	diff := 1 - weekday
	if weekday == 0 {
		diff = -6
	}
	start := anchor.AddDays(diff)

	days := make([]scheduling.CalendarDate, 7)
	for i := range days {
		days[i] = start.AddDays(i)
	}
	return days
}

// MonthDays returns the 42 dates of the month grid: it starts at the Monday
// on or before the 1st of anchor's month and runs far enough into the next
// month to fill six rows.
func MonthDays(anchor scheduling.CalendarDate) []scheduling.CalendarDate {
	first := scheduling.CalendarDate{Year: anchor.Year, Month: anchor.Month, Day: 1}
	offset := (int(first.Time().Weekday()) + 6) % 7
	start := first.AddDays(-offset)

	days := make([]scheduling.CalendarDate, MonthGridCells)
	for i := range days {
		days[i] = start.AddDays(i)
	}
	return days
}

// VisibleRange is the inclusive date span a view needs fetched from storage.
func VisibleRange(mode ViewMode, anchor scheduling.CalendarDate) (scheduling.CalendarDate, scheduling.CalendarDate) {
	switch mode {
	case ViewWeek:
		days := WeekOf(anchor)
		return days[0], days[6]
	case ViewMonth:
		days := MonthDays(anchor)
		return days[0], days[MonthGridCells-1]
	default:
		return anchor, anchor
	}
}

// Advance moves the anchor one step in a direction: a day, a week, or one
// calendar month depending on the view.
func Advance(anchor scheduling.CalendarDate, mode ViewMode, direction int) scheduling.CalendarDate {
	switch mode {
	case ViewWeek:
		return anchor.AddDays(7 * direction)
	case ViewMonth:
		return anchor.AddMonths(direction)
	default:
		return anchor.AddDays(direction)
	}
}

// DoctorColor maps a doctor to a palette slot by its index in the practice's
// ordered doctor-id set. Unknown doctors fall back to the first color.
func DoctorColor(doctorID string, doctorOrder []string) string {
	for i, id := range doctorOrder {
		if id == doctorID {
			return doctorPalette[i%len(doctorPalette)]
		}
	}
	return doctorPalette[0]
}

// HourLabel formats an hour for the time gutter: "12 AM", "1 AM" ... "11 PM".
func HourLabel(hour int) string {
	switch {
	case hour == 0:
		return "12 AM"
	case hour < 12:
		return fmt.Sprintf("%d AM", hour)
	case hour == 12:
		return "12 PM"
	default:
		return fmt.Sprintf("%d PM", hour-12)
	}
}

// RangeLabel renders the toolbar heading for a view.
func RangeLabel(mode ViewMode, anchor scheduling.CalendarDate) string {
	switch mode {
	case ViewWeek:
		days := WeekOf(anchor)
		from, to := days[0], days[6]
		if from.Month == to.Month {
			return fmt.Sprintf("%s %d–%d, %d", from.Time().Format("January"), from.Day, to.Day, from.Year)
		}
		return fmt.Sprintf("%s %d – %s %d, %d",
			from.Time().Format("Jan"), from.Day, to.Time().Format("Jan"), to.Day, to.Year)
	case ViewMonth:
		return anchor.Time().Format("January 2006")
	default:
		return anchor.Time().Format("Mon, Jan 2")
	}
}
