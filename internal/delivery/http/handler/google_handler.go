package handler

import (
	"errors"
	"net/http"

	"dentalcare-backend/internal/usecase"
	"dentalcare-backend/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type GoogleHandler struct {
	calendarLinkUsecase usecase.CalendarLinkUsecase
}

func NewGoogleHandler(calendarLinkUsecase usecase.CalendarLinkUsecase) *GoogleHandler {
	return &GoogleHandler{
		calendarLinkUsecase: calendarLinkUsecase,
	}
}

// ConnectCalendar hands back the Google consent URL for a doctor. The
// front-end redirects the browser there.
func (h *GoogleHandler) ConnectCalendar(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor ID", nil)
		return
	}

	url, err := h.calendarLinkUsecase.ConnectURL(r.Context(), doctorID)
	if err != nil {
		if errors.Is(err, usecase.ErrDoctorNotFound) {
			response.NotFound(w, "Doctor not found")
			return
		}
		response.InternalServerError(w, "Failed to start calendar connection")
		return
	}

	response.Success(w, http.StatusOK, "Authorization URL created", map[string]string{"url": url})
}

// CalendarCallback is Google's redirect target. It has no bearer token, so
// it stays outside the authenticated router; the state parameter carries
// the doctor identity instead.
func (h *GoogleHandler) CalendarCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	state := query.Get("state")
	code := query.Get("code")

	if errMsg := query.Get("error"); errMsg != "" {
		response.Error(w, http.StatusBadRequest, "Authorization was denied", map[string]string{"error": errMsg})
		return
	}
	if state == "" || code == "" {
		response.Error(w, http.StatusBadRequest, "Missing state or code parameter", nil)
		return
	}

	if err := h.calendarLinkUsecase.HandleCallback(r.Context(), state, code); err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidOAuthState):
			response.Error(w, http.StatusBadRequest, "Invalid state parameter", nil)
		case errors.Is(err, usecase.ErrDoctorNotFound):
			response.NotFound(w, "Doctor not found")
		case errors.Is(err, usecase.ErrMissingRefreshToken),
			errors.Is(err, usecase.ErrCalendarExchangeFail):
			response.Error(w, http.StatusBadGateway, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to complete calendar connection")
		}
		return
	}

	response.Success(w, http.StatusOK, "Calendar connected successfully", nil)
}
