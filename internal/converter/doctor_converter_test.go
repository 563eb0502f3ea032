package converter

import (
	"errors"
	"testing"

	"dentalcare-backend/internal/scheduling"

	"gorm.io/datatypes"
)

func TestNormalizeWeeklyAvailabilityEmptyFallsBackToDefault(t *testing.T) {
	avail, err := NormalizeWeeklyAvailability(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	mon, ok := avail["Mon"]
	if !ok || !mon.Enabled || mon.Start != 9*60 || mon.End != 17*60 {
		t.Errorf("Mon = %+v, want default 09:00-17:00", mon)
	}
	if sat := avail["Sat"]; sat.Enabled {
		t.Errorf("Sat should default to disabled")
	}
}

func TestNormalizeWeeklyAvailabilityRoundTrip(t *testing.T) {
	original := scheduling.DefaultWeeklyAvailability()

	raw, err := MarshalWeeklyAvailability(original)
	if err != nil {
		t.Fatalf("MarshalWeeklyAvailability: %v", err)
	}

	back, err := NormalizeWeeklyAvailability(raw)
	if err != nil {
		t.Fatalf("NormalizeWeeklyAvailability: %v", err)
	}

	for _, day := range scheduling.Weekdays {
		if back[day] != original[day] {
			t.Errorf("%s = %+v, want %+v", day, back[day], original[day])
		}
	}
}

func TestNormalizeWeeklyAvailabilityAcceptsBothTimeShapes(t *testing.T) {
	raw := datatypes.JSON(`{"Mon":{"enabled":true,"start":"9:00 AM","end":"17:00"}}`)

	avail, err := NormalizeWeeklyAvailability(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mon := avail["Mon"]; mon.Start != 9*60 || mon.End != 17*60 {
		t.Errorf("Mon = %+v", mon)
	}
}

func TestNormalizeWeeklyAvailabilityFailsClosed(t *testing.T) {
	cases := []string{
		`not json at all`,
		`{"Mon":{"enabled":true,"start":"nonsense","end":"17:00"}}`,
		`{"Mon":{"enabled":true,"start":"17:00","end":"09:00"}}`,
		`{"Mon":{"enabled":true,"start":"09:00","end":"09:00"}}`,
	}

	for _, raw := range cases {
		if _, err := NormalizeWeeklyAvailability(datatypes.JSON(raw)); !errors.Is(err, ErrCorruptAvailability) {
			t.Errorf("raw %q: err = %v, want ErrCorruptAvailability", raw, err)
		}
	}
}

func TestNormalizeWeeklyAvailabilityIgnoresDisabledDayTimes(t *testing.T) {
	// A disabled day keeps whatever stale times it has; they are never read.
	raw := datatypes.JSON(`{"Sun":{"enabled":false,"start":"garbage","end":""}}`)

	avail, err := NormalizeWeeklyAvailability(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if avail["Sun"].Enabled {
		t.Errorf("Sun should stay disabled")
	}
}

func TestNormalizeOffDaysObjectEntries(t *testing.T) {
	raw := datatypes.JSON(`[{"label":"Annual Leave","from":"2026-02-18","to":"2026-02-20"}]`)

	leaves, skipped := NormalizeOffDays(raw)
	if skipped != 0 {
		t.Fatalf("skipped = %d, want 0", skipped)
	}
	if len(leaves) != 1 {
		t.Fatalf("got %d leaves, want 1", len(leaves))
	}
	if leaves[0].Label != "Annual Leave" {
		t.Errorf("label = %q", leaves[0].Label)
	}
	if leaves[0].From.String() != "2026-02-18" || leaves[0].To.String() != "2026-02-20" {
		t.Errorf("range = %s..%s", leaves[0].From, leaves[0].To)
	}
}

func TestNormalizeOffDaysStringEncodedEntries(t *testing.T) {
	// Historic rows stored each entry as a JSON-encoded string.
	raw := datatypes.JSON(`["{\"label\":\"Conference\",\"from\":\"2026-03-02\",\"to\":\"2026-03-04\"}"]`)

	leaves, skipped := NormalizeOffDays(raw)
	if skipped != 0 {
		t.Fatalf("skipped = %d, want 0", skipped)
	}
	if len(leaves) != 1 || leaves[0].Label != "Conference" {
		t.Fatalf("leaves = %+v", leaves)
	}
}

func TestNormalizeOffDaysNameKeyFallback(t *testing.T) {
	raw := datatypes.JSON(`[{"name":"Old Style","from":"2026-03-02","to":"2026-03-04"}]`)

	leaves, _ := NormalizeOffDays(raw)
	if len(leaves) != 1 || leaves[0].Label != "Old Style" {
		t.Fatalf("leaves = %+v", leaves)
	}
}

func TestNormalizeOffDaysSkipsMalformedEntries(t *testing.T) {
	raw := datatypes.JSON(`[
		{"label":"Good","from":"2026-02-18","to":"2026-02-20"},
		{"label":"No dates"},
		{"label":"Bad date","from":"18/02/2026","to":"2026-02-20"},
		{"label":"Inverted","from":"2026-02-20","to":"2026-02-18"},
		42
	]`)

	leaves, skipped := NormalizeOffDays(raw)
	if len(leaves) != 1 || leaves[0].Label != "Good" {
		t.Fatalf("leaves = %+v", leaves)
	}
	if skipped != 4 {
		t.Errorf("skipped = %d, want 4", skipped)
	}
}

func TestNormalizeOffDaysUnparseableColumn(t *testing.T) {
	leaves, skipped := NormalizeOffDays(datatypes.JSON(`{"not":"an array"}`))
	if leaves != nil || skipped != 1 {
		t.Errorf("leaves = %v, skipped = %d; want nil, 1", leaves, skipped)
	}
}

func TestNormalizeOffDaysEmpty(t *testing.T) {
	leaves, skipped := NormalizeOffDays(nil)
	if leaves != nil || skipped != 0 {
		t.Errorf("leaves = %v, skipped = %d", leaves, skipped)
	}
}

func TestMarshalOffDaysRoundTrip(t *testing.T) {
	from, _ := scheduling.ParseCalendarDate("2026-02-18")
	to, _ := scheduling.ParseCalendarDate("2026-02-20")
	original := []scheduling.LeaveRange{{Label: "Annual Leave", From: from, To: to}}

	raw, err := MarshalOffDays(original)
	if err != nil {
		t.Fatalf("MarshalOffDays: %v", err)
	}

	back, skipped := NormalizeOffDays(raw)
	if skipped != 0 || len(back) != 1 {
		t.Fatalf("back = %+v, skipped = %d", back, skipped)
	}
	if back[0] != original[0] {
		t.Errorf("round trip = %+v, want %+v", back[0], original[0])
	}
}
