package converter

import (
	"dentalcare-backend/internal/delivery/dto"
	"dentalcare-backend/internal/domain/entity"
)

// AppointmentTypeToResponse converts an AppointmentType entity to its DTO
func AppointmentTypeToResponse(appointmentType *entity.AppointmentType) *dto.AppointmentTypeResponse {
	if appointmentType == nil {
		return nil
	}

	return &dto.AppointmentTypeResponse{
		ID:              appointmentType.ID,
		Name:            appointmentType.Name,
		DurationMinutes: appointmentType.DurationMinutes,
		Price:           appointmentType.Price,
		CreatedAt:       appointmentType.CreatedAt,
		UpdatedAt:       appointmentType.UpdatedAt,
	}
}

// AppointmentTypesToResponses converts a slice of AppointmentType entities
func AppointmentTypesToResponses(types []entity.AppointmentType) []dto.AppointmentTypeResponse {
	responses := make([]dto.AppointmentTypeResponse, len(types))
	for i, appointmentType := range types {
		resp := AppointmentTypeToResponse(&appointmentType)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
