package dto

import (
	"dentalcare-backend/internal/calendar"

	"github.com/google/uuid"
)

// CalendarDoctorLegend pairs each doctor with the color the grid assigned.
type CalendarDoctorLegend struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Color string    `json:"color"`
}

type CalendarViewResponse struct {
	Grid    calendar.Grid          `json:"grid"`
	Doctors []CalendarDoctorLegend `json:"doctors"`
}
