package handler

import (
	"errors"
	"net/http"
	"strconv"

	"dentalcare-backend/internal/delivery/http/middleware"
	"dentalcare-backend/internal/usecase"
	"dentalcare-backend/pkg/response"
)

type CalendarHandler struct {
	calendarViewUsecase usecase.CalendarViewUsecase
}

func NewCalendarHandler(calendarViewUsecase usecase.CalendarViewUsecase) *CalendarHandler {
	return &CalendarHandler{
		calendarViewUsecase: calendarViewUsecase,
	}
}

// GetCalendarView renders the practice calendar. Query parameters: mode
// (day|week|month, default week), anchor (YYYY-MM-DD, default today) and
// step (-1 back, 1 forward) for toolbar navigation.
func (h *CalendarHandler) GetCalendarView(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "")
		return
	}

	query := r.URL.Query()
	step := 0
	if raw := query.Get("step"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid step value", nil)
			return
		}
		step = parsed
	}

	view, err := h.calendarViewUsecase.GetCalendarView(r.Context(), userID, query.Get("mode"), query.Get("anchor"), step)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidViewMode),
			errors.Is(err, usecase.ErrInvalidAnchor):
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to build calendar view")
		}
		return
	}

	response.Success(w, http.StatusOK, "Calendar view retrieved successfully", view)
}
