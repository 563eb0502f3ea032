package converter

import (
	"dentalcare-backend/internal/calendar"
	"dentalcare-backend/internal/delivery/dto"
	"dentalcare-backend/internal/domain/entity"
	"dentalcare-backend/internal/scheduling"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity to its response DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:                appointment.ID,
		DoctorID:          appointment.DoctorID,
		AppointmentTypeID: appointment.AppointmentTypeID,
		Timezone:          appointment.Timezone,
		MeetingDate:       appointment.MeetingDateString(),
		From:              appointment.From,
		To:                appointment.To,
		Notes:             appointment.Notes,
		SyncStatus:        string(appointment.SyncStatus),
		CreatedAt:         appointment.CreatedAt,
		UpdatedAt:         appointment.UpdatedAt,
	}

	if appointment.Doctor.ID != uuid.Nil {
		response.DoctorName = appointment.Doctor.Name
	}

	if appointment.PatientDetails != nil {
		details := dto.PatientDetailsResponse{Name: appointment.PatientName()}
		if id, ok := appointment.PatientDetails["patient_id"].(string); ok {
			details.PatientID = id
		}
		if email, ok := appointment.PatientDetails["email"].(string); ok {
			details.Email = email
		}
		if phone, ok := appointment.PatientDetails["phone"].(string); ok {
			details.Phone = phone
		}
		response.PatientDetails = details
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// AppointmentToCalendarModel parses a stored appointment into the projector's
// read model. Rows whose stored times no longer parse are reported as an
// error so the calendar page can drop them instead of rendering at midnight.
func AppointmentToCalendarModel(appointment *entity.Appointment) (calendar.Appointment, error) {
	date, err := scheduling.ParseCalendarDate(appointment.MeetingDateString())
	if err != nil {
		return calendar.Appointment{}, err
	}
	from, err := scheduling.ParseTimeOfDay(appointment.From)
	if err != nil {
		return calendar.Appointment{}, err
	}
	to, err := scheduling.ParseTimeOfDay(appointment.To)
	if err != nil {
		return calendar.Appointment{}, err
	}

	return calendar.Appointment{
		ID:       appointment.ID.String(),
		DoctorID: appointment.DoctorID.String(),
		Date:     date,
		From:     from,
		To:       to,
		Title:    appointment.PatientName(),
	}, nil
}

// SiblingIntervals parses the stored times of a doctor's same-day bookings
// into intervals for the overlap check. excludeID skips the appointment
// being rescheduled. Unparseable rows are skipped and counted so the caller
// can log them; they cannot take part in an overlap comparison.
func SiblingIntervals(appointments []entity.Appointment, excludeID *uuid.UUID) ([]scheduling.Interval, int) {
	intervals := make([]scheduling.Interval, 0, len(appointments))
	skipped := 0
	for _, a := range appointments {
		if excludeID != nil && a.ID == *excludeID {
			continue
		}
		from, err := scheduling.ParseTimeOfDay(a.From)
		if err != nil {
			skipped++
			continue
		}
		to, err := scheduling.ParseTimeOfDay(a.To)
		if err != nil {
			skipped++
			continue
		}
		intervals = append(intervals, scheduling.Interval{From: from, To: to})
	}
	return intervals, skipped
}
