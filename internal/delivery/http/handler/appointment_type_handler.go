package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"dentalcare-backend/internal/delivery/dto"
	"dentalcare-backend/internal/delivery/http/middleware"
	"dentalcare-backend/internal/usecase"
	"dentalcare-backend/pkg/response"
	"dentalcare-backend/pkg/validator"

	"github.com/gorilla/mux"
)

type AppointmentTypeHandler struct {
	appointmentTypeUsecase usecase.AppointmentTypeUsecase
	validator              *validator.CustomValidator
}

func NewAppointmentTypeHandler(appointmentTypeUsecase usecase.AppointmentTypeUsecase, validator *validator.CustomValidator) *AppointmentTypeHandler {
	return &AppointmentTypeHandler{
		appointmentTypeUsecase: appointmentTypeUsecase,
		validator:              validator,
	}
}

func (h *AppointmentTypeHandler) CreateAppointmentType(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	var req dto.CreateAppointmentTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointmentType, err := h.appointmentTypeUsecase.CreateAppointmentType(r.Context(), userID, &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create appointment type")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment type created successfully", appointmentType)
}

func (h *AppointmentTypeHandler) GetAppointmentType(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment type ID", nil)
		return
	}

	appointmentType, err := h.appointmentTypeUsecase.GetAppointmentType(r.Context(), id)
	if err != nil {
		if errors.Is(err, usecase.ErrAppointmentTypeNotFound) {
			response.NotFound(w, "Appointment type not found")
			return
		}
		response.InternalServerError(w, "Failed to get appointment type")
		return
	}

	response.Success(w, http.StatusOK, "Appointment type retrieved successfully", appointmentType)
}

func (h *AppointmentTypeHandler) ListAppointmentTypes(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	types, err := h.appointmentTypeUsecase.ListAppointmentTypes(r.Context(), userID)
	if err != nil {
		response.InternalServerError(w, "Failed to list appointment types")
		return
	}

	response.Success(w, http.StatusOK, "Appointment types retrieved successfully", types)
}

func (h *AppointmentTypeHandler) UpdateAppointmentType(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment type ID", nil)
		return
	}

	var req dto.UpdateAppointmentTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointmentType, err := h.appointmentTypeUsecase.UpdateAppointmentType(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, usecase.ErrAppointmentTypeNotFound) {
			response.NotFound(w, "Appointment type not found")
			return
		}
		response.InternalServerError(w, "Failed to update appointment type")
		return
	}

	response.Success(w, http.StatusOK, "Appointment type updated successfully", appointmentType)
}

func (h *AppointmentTypeHandler) DeleteAppointmentType(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment type ID", nil)
		return
	}

	if err := h.appointmentTypeUsecase.DeleteAppointmentType(r.Context(), id); err != nil {
		if errors.Is(err, usecase.ErrAppointmentTypeNotFound) {
			response.NotFound(w, "Appointment type not found")
			return
		}
		response.InternalServerError(w, "Failed to delete appointment type")
		return
	}

	response.Success(w, http.StatusOK, "Appointment type deleted successfully", nil)
}
