package converter

import (
	"encoding/json"
	"errors"
	"fmt"

	"dentalcare-backend/internal/delivery/dto"
	"dentalcare-backend/internal/domain/entity"
	"dentalcare-backend/internal/scheduling"

	"gorm.io/datatypes"
)

// ErrCorruptAvailability means a doctor's stored weekly_availability JSONB
// cannot be normalized into the scheduling model. Unlike off-day entries this
// is never skipped silently: a broken availability table would let bookings
// through at arbitrary hours.
var ErrCorruptAvailability = errors.New("corrupt weekly availability data")

// storedDayWindow is the JSONB shape of one weekday row, times as strings in
// either accepted format.
type storedDayWindow struct {
	Enabled bool   `json:"enabled"`
	Start   string `json:"start"`
	End     string `json:"end"`
}

// storedLeave is the JSONB shape of one off-day entry. Older rows used "name"
// where newer ones use "label".
type storedLeave struct {
	Label string `json:"label"`
	Name  string `json:"name"`
	From  string `json:"from"`
	To    string `json:"to"`
}

// MarshalWeeklyAvailability serializes the scheduling model into the stored
// JSONB shape (24-hour time strings).
func MarshalWeeklyAvailability(avail scheduling.WeeklyAvailability) (datatypes.JSON, error) {
	stored := make(map[string]storedDayWindow, len(avail))
	for day, window := range avail {
		stored[day] = storedDayWindow{
			Enabled: window.Enabled,
			Start:   window.Start.Format24(),
			End:     window.End.Format24(),
		}
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// NormalizeWeeklyAvailability decodes a doctor's stored availability table.
// A missing column falls back to the creation default. An enabled day whose
// times do not parse, or whose window is empty, fails with
// ErrCorruptAvailability.
func NormalizeWeeklyAvailability(raw datatypes.JSON) (scheduling.WeeklyAvailability, error) {
	if len(raw) == 0 {
		return scheduling.DefaultWeeklyAvailability(), nil
	}

	var stored map[string]storedDayWindow
	if err := json.Unmarshal(raw, &stored); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptAvailability, err)
	}

	avail := make(scheduling.WeeklyAvailability, len(stored))
	for day, window := range stored {
		if !window.Enabled {
			avail[day] = scheduling.DayWindow{}
			continue
		}
		start, err := scheduling.ParseTimeOfDay(window.Start)
		if err != nil {
			return nil, fmt.Errorf("%w: %s start: %v", ErrCorruptAvailability, day, err)
		}
		end, err := scheduling.ParseTimeOfDay(window.End)
		if err != nil {
			return nil, fmt.Errorf("%w: %s end: %v", ErrCorruptAvailability, day, err)
		}
		if end <= start {
			return nil, fmt.Errorf("%w: %s window is empty", ErrCorruptAvailability, day)
		}
		avail[day] = scheduling.DayWindow{Enabled: true, Start: start, End: end}
	}
	return avail, nil
}

// MarshalOffDays serializes leave ranges into the stored JSONB array, always
// in the object form (the string-encoded form is legacy input only).
func MarshalOffDays(leaves []scheduling.LeaveRange) (datatypes.JSON, error) {
	stored := make([]storedLeave, 0, len(leaves))
	for _, l := range leaves {
		stored = append(stored, storedLeave{
			Label: l.Label,
			From:  l.From.String(),
			To:    l.To.String(),
		})
	}
	raw, err := json.Marshal(stored)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(raw), nil
}

// NormalizeOffDays decodes a doctor's off_days column into leave ranges.
// Entries arrive in two historic shapes: plain objects, or JSON-encoded
// strings of the same object. Entries that cannot be decoded, lack a date,
// or have from > to are dropped and counted — a malformed range never blocks
// a booking (the deliberate fail-open policy; callers log the skipped count).
func NormalizeOffDays(raw datatypes.JSON) ([]scheduling.LeaveRange, int) {
	if len(raw) == 0 {
		return nil, 0
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, 1
	}

	var leaves []scheduling.LeaveRange
	skipped := 0
	for _, item := range items {
		stored, ok := decodeLeaveEntry(item)
		if !ok {
			skipped++
			continue
		}

		from, err := scheduling.ParseCalendarDate(stored.From)
		if err != nil {
			skipped++
			continue
		}
		to, err := scheduling.ParseCalendarDate(stored.To)
		if err != nil {
			skipped++
			continue
		}
		if from.After(to) {
			skipped++
			continue
		}

		label := stored.Label
		if label == "" {
			label = stored.Name
		}
		leaves = append(leaves, scheduling.LeaveRange{Label: label, From: from, To: to})
	}
	return leaves, skipped
}

func decodeLeaveEntry(item json.RawMessage) (storedLeave, bool) {
	var stored storedLeave
	if err := json.Unmarshal(item, &stored); err == nil && stored.From != "" {
		return stored, true
	}

	// Legacy shape: the entry itself is a JSON-encoded string.
	var encoded string
	if err := json.Unmarshal(item, &encoded); err != nil {
		return storedLeave{}, false
	}
	if err := json.Unmarshal([]byte(encoded), &stored); err != nil || stored.From == "" {
		return storedLeave{}, false
	}
	return stored, true
}

// DoctorRules normalizes one doctor row into the validator's input. The
// second return value is the number of off-day entries dropped as malformed.
func DoctorRules(doctor *entity.Doctor) (scheduling.DoctorRules, int, error) {
	weekly, err := NormalizeWeeklyAvailability(doctor.WeeklyAvailability)
	if err != nil {
		return scheduling.DoctorRules{}, 0, err
	}
	leaves, skipped := NormalizeOffDays(doctor.OffDays)
	return scheduling.DoctorRules{
		DoctorID: doctor.ID.String(),
		Name:     doctor.Name,
		Weekly:   weekly,
		Leaves:   leaves,
	}, skipped, nil
}

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	response := &dto.DoctorResponse{
		ID:                doctor.ID,
		Name:              doctor.Name,
		Email:             doctor.Email,
		Phone:             doctor.Phone,
		Specialization:    doctor.Specialization,
		CalendarConnected: doctor.CalendarConnected,
		CreatedAt:         doctor.CreatedAt,
		UpdatedAt:         doctor.UpdatedAt,
	}

	if weekly, err := NormalizeWeeklyAvailability(doctor.WeeklyAvailability); err == nil {
		response.WeeklyAvailability = make(map[string]dto.DayWindowResponse, len(weekly))
		for day, window := range weekly {
			response.WeeklyAvailability[day] = dto.DayWindowResponse{
				Enabled: window.Enabled,
				Start:   window.Start.Format24(),
				End:     window.End.Format24(),
			}
		}
	}

	leaves, _ := NormalizeOffDays(doctor.OffDays)
	response.OffDays = make([]dto.TimeOffEntryResponse, 0, len(leaves))
	for _, l := range leaves {
		response.OffDays = append(response.OffDays, dto.TimeOffEntryResponse{
			Label: l.Label,
			From:  l.From.String(),
			To:    l.To.String(),
		})
	}

	return response
}

// DoctorsToResponses converts a slice of Doctor entities to response DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i, doctor := range doctors {
		resp := DoctorToResponse(&doctor)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
