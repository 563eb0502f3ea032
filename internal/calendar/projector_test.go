package calendar

import (
	"testing"

	"dentalcare-backend/internal/scheduling"
)

func mustDate(t *testing.T, s string) scheduling.CalendarDate {
	t.Helper()
	d, err := scheduling.ParseCalendarDate(s)
	if err != nil {
		t.Fatalf("ParseCalendarDate(%q): %v", s, err)
	}
	return d
}

func appt(t *testing.T, id, doctorID, date string, from, to scheduling.TimeOfDay) Appointment {
	t.Helper()
	return Appointment{
		ID:       id,
		DoctorID: doctorID,
		Date:     mustDate(t, date),
		From:     from,
		To:       to,
		Title:    "Checkup",
	}
}

func TestWeekOfStartsMonday(t *testing.T) {
	tests := []struct {
		anchor string
		start  string
	}{
		{"2026-02-18", "2026-02-16"}, // Wednesday
		{"2026-02-16", "2026-02-16"}, // Monday itself
		{"2026-02-22", "2026-02-16"}, // Sunday belongs to the week before
	}

	for _, tt := range tests {
		days := WeekOf(mustDate(t, tt.anchor))
		if len(days) != 7 {
			t.Fatalf("WeekOf(%s) returned %d days", tt.anchor, len(days))
		}
		if days[0].String() != tt.start {
			t.Errorf("WeekOf(%s) starts %s, want %s", tt.anchor, days[0], tt.start)
		}
		if days[6].String() != mustDate(t, tt.start).AddDays(6).String() {
			t.Errorf("WeekOf(%s) ends %s", tt.anchor, days[6])
		}
	}
}

func TestMonthDaysAlwaysFortyTwo(t *testing.T) {
	// February 2026 starts on a Sunday, so the grid has to reach back to
	// Monday January 26.
	days := MonthDays(mustDate(t, "2026-02-18"))
	if len(days) != MonthGridCells {
		t.Fatalf("MonthDays returned %d cells, want %d", len(days), MonthGridCells)
	}
	if days[0].String() != "2026-01-26" {
		t.Errorf("grid starts %s, want 2026-01-26", days[0])
	}
	if days[0].Weekday() != "Mon" {
		t.Errorf("grid starts on %s, want Mon", days[0].Weekday())
	}
	if days[6].String() != "2026-02-01" {
		t.Errorf("first of month lands at %s in the first row", days[6])
	}
	if days[41].String() != "2026-03-08" {
		t.Errorf("grid ends %s, want 2026-03-08", days[41])
	}
}

func TestMonthDaysMonthStartingMonday(t *testing.T) {
	// June 2026 starts on a Monday; the grid must not reach into May.
	days := MonthDays(mustDate(t, "2026-06-10"))
	if days[0].String() != "2026-06-01" {
		t.Errorf("grid starts %s, want 2026-06-01", days[0])
	}
}

func TestProjectDayPositionsCards(t *testing.T) {
	order := []string{"doc-1"}
	appointments := []Appointment{
		appt(t, "a1", "doc-1", "2026-02-17", 10*60, 10*60+30),
		appt(t, "a2", "doc-1", "2026-02-18", 11*60, 12*60), // other day, excluded
	}

	grid := Project(appointments, ViewDay, mustDate(t, "2026-02-17"), order)
	if grid.Mode != ViewDay || len(grid.Days) != 1 {
		t.Fatalf("unexpected grid shape: %+v", grid)
	}

	cards := grid.Days[0].Cards
	if len(cards) != 1 {
		t.Fatalf("got %d cards, want 1", len(cards))
	}
	if cards[0].Top != 600 {
		t.Errorf("Top = %d, want 600", cards[0].Top)
	}
	if cards[0].Height != 30 {
		t.Errorf("Height = %d, want 30", cards[0].Height)
	}
	if cards[0].Color != doctorPalette[0] {
		t.Errorf("Color = %s, want first palette slot", cards[0].Color)
	}
}

func TestProjectClampsShortCards(t *testing.T) {
	order := []string{"doc-1"}
	short := []Appointment{appt(t, "a1", "doc-1", "2026-02-17", 9*60, 9*60+10)}

	day := Project(short, ViewDay, mustDate(t, "2026-02-17"), order)
	if h := day.Days[0].Cards[0].Height; h != MinCardHeight {
		t.Errorf("day card height = %d, want clamp to %d", h, MinCardHeight)
	}

	week := Project(short, ViewWeek, mustDate(t, "2026-02-17"), order)
	var found bool
	for _, col := range week.Days {
		for _, card := range col.Cards {
			found = true
			if card.Height != MinCardHeightWeek {
				t.Errorf("week card height = %d, want clamp to %d", card.Height, MinCardHeightWeek)
			}
		}
	}
	if !found {
		t.Fatal("appointment missing from week view")
	}
}

func TestProjectWeekHasSevenColumns(t *testing.T) {
	grid := Project(nil, ViewWeek, mustDate(t, "2026-02-18"), nil)
	if len(grid.Days) != 7 {
		t.Fatalf("week view has %d columns, want 7", len(grid.Days))
	}
	if grid.Days[0].Date.Weekday() != "Mon" {
		t.Errorf("week starts on %s", grid.Days[0].Date.Weekday())
	}
}

func TestProjectMonthCapsCellEntries(t *testing.T) {
	order := []string{"doc-1"}
	var appointments []Appointment
	for i := 0; i < 5; i++ {
		appointments = append(appointments,
			appt(t, string(rune('a'+i)), "doc-1", "2026-02-17", scheduling.TimeOfDay(9*60+i*30), scheduling.TimeOfDay(9*60+i*30+30)))
	}

	grid := Project(appointments, ViewMonth, mustDate(t, "2026-02-18"), order)
	if len(grid.Cells) != MonthGridCells {
		t.Fatalf("month view has %d cells", len(grid.Cells))
	}

	for _, cell := range grid.Cells {
		if cell.Date.String() != "2026-02-17" {
			continue
		}
		if len(cell.Cards) != MonthCellCap {
			t.Errorf("cell shows %d cards, want %d", len(cell.Cards), MonthCellCap)
		}
		if cell.Overflow != 2 {
			t.Errorf("overflow = %d, want 2", cell.Overflow)
		}
		return
	}
	t.Fatal("2026-02-17 cell not found")
}

func TestProjectMonthDimsNeighbourMonths(t *testing.T) {
	grid := Project(nil, ViewMonth, mustDate(t, "2026-02-18"), nil)

	for _, cell := range grid.Cells {
		inMonth := cell.Date.Month == mustDate(t, "2026-02-18").Month
		if cell.Dimmed == inMonth {
			t.Errorf("cell %s dimmed = %v", cell.Date, cell.Dimmed)
		}
	}
}

func TestDoctorColorStableAssignment(t *testing.T) {
	order := []string{"doc-1", "doc-2", "doc-3"}

	if got := DoctorColor("doc-2", order); got != doctorPalette[1] {
		t.Errorf("doc-2 color = %s, want palette slot 1", got)
	}
	// Unknown doctors fall back to the first color.
	if got := DoctorColor("ghost", order); got != doctorPalette[0] {
		t.Errorf("unknown doctor color = %s", got)
	}
}

func TestDoctorColorWrapsPalette(t *testing.T) {
	order := make([]string, len(doctorPalette)+1)
	for i := range order {
		order[i] = string(rune('a' + i))
	}

	last := order[len(order)-1]
	if got := DoctorColor(last, order); got != doctorPalette[0] {
		t.Errorf("palette did not wrap: %s", got)
	}
}

func TestAdvance(t *testing.T) {
	anchor := mustDate(t, "2026-02-18")

	if got := Advance(anchor, ViewDay, 1); got.String() != "2026-02-19" {
		t.Errorf("day advance = %s", got)
	}
	if got := Advance(anchor, ViewWeek, -1); got.String() != "2026-02-11" {
		t.Errorf("week back = %s", got)
	}
	if got := Advance(anchor, ViewMonth, 1); got.String() != "2026-03-18" {
		t.Errorf("month advance = %s", got)
	}
}

func TestVisibleRange(t *testing.T) {
	anchor := mustDate(t, "2026-02-18")

	from, to := VisibleRange(ViewDay, anchor)
	if !from.Equal(anchor) || !to.Equal(anchor) {
		t.Errorf("day range = %s..%s", from, to)
	}

	from, to = VisibleRange(ViewWeek, anchor)
	if from.String() != "2026-02-16" || to.String() != "2026-02-22" {
		t.Errorf("week range = %s..%s", from, to)
	}

	from, to = VisibleRange(ViewMonth, anchor)
	if from.String() != "2026-01-26" || to.String() != "2026-03-08" {
		t.Errorf("month range = %s..%s", from, to)
	}
}

func TestHourLabel(t *testing.T) {
	tests := []struct {
		hour int
		want string
	}{
		{0, "12 AM"},
		{1, "1 AM"},
		{11, "11 AM"},
		{12, "12 PM"},
		{13, "1 PM"},
		{23, "11 PM"},
	}

	for _, tt := range tests {
		if got := HourLabel(tt.hour); got != tt.want {
			t.Errorf("HourLabel(%d) = %q, want %q", tt.hour, got, tt.want)
		}
	}
}

func TestRangeLabel(t *testing.T) {
	anchor := mustDate(t, "2026-02-18")

	if got := RangeLabel(ViewMonth, anchor); got != "February 2026" {
		t.Errorf("month label = %q", got)
	}
	if got := RangeLabel(ViewDay, anchor); got != "Wed, Feb 18" {
		t.Errorf("day label = %q", got)
	}
	if got := RangeLabel(ViewWeek, anchor); got != "February 16–22, 2026" {
		t.Errorf("week label = %q", got)
	}
}
