package http

import (
	"net/http"

	"dentalcare-backend/internal/delivery/http/handler"
	"dentalcare-backend/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router                 *mux.Router
	doctorHandler          *handler.DoctorHandler
	appointmentHandler     *handler.AppointmentHandler
	appointmentTypeHandler *handler.AppointmentTypeHandler
	patientHandler         *handler.PatientHandler
	calendarHandler        *handler.CalendarHandler
	googleHandler          *handler.GoogleHandler
	auditLogHandler        *handler.AuditLogHandler
	authMiddleware         *middleware.AuthMiddleware
	corsMiddleware         *middleware.CORSMiddleware
}

func NewRouter(
	doctorHandler *handler.DoctorHandler,
	appointmentHandler *handler.AppointmentHandler,
	appointmentTypeHandler *handler.AppointmentTypeHandler,
	patientHandler *handler.PatientHandler,
	calendarHandler *handler.CalendarHandler,
	googleHandler *handler.GoogleHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:                 mux.NewRouter(),
		doctorHandler:          doctorHandler,
		appointmentHandler:     appointmentHandler,
		appointmentTypeHandler: appointmentTypeHandler,
		patientHandler:         patientHandler,
		calendarHandler:        calendarHandler,
		googleHandler:          googleHandler,
		auditLogHandler:        auditLogHandler,
		authMiddleware:         authMiddleware,
		corsMiddleware:         corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Google redirects here without a bearer token; state carries identity.
	api.HandleFunc("/google/callback", r.googleHandler.CalendarCallback).Methods(http.MethodGet)

	// Staff routes (protected)
	staff := api.PathPrefix("").Subrouter()
	staff.Use(r.authMiddleware.Authenticate)
	staff.Use(middleware.RequireStaff)

	// Doctor management
	staff.HandleFunc("/doctors", r.doctorHandler.CreateDoctor).Methods(http.MethodPost)
	staff.HandleFunc("/doctors", r.doctorHandler.ListDoctors).Methods(http.MethodGet)
	staff.HandleFunc("/doctors/{id}", r.doctorHandler.GetDoctor).Methods(http.MethodGet)
	staff.HandleFunc("/doctors/{id}", r.doctorHandler.UpdateDoctor).Methods(http.MethodPut)
	staff.HandleFunc("/doctors/{id}", r.doctorHandler.DeleteDoctor).Methods(http.MethodDelete)
	staff.HandleFunc("/doctors/{id}/availability", r.doctorHandler.UpdateAvailability).Methods(http.MethodPut)
	staff.HandleFunc("/doctors/{id}/time-off", r.doctorHandler.UpdateTimeOff).Methods(http.MethodPut)
	staff.HandleFunc("/doctors/{id}/calendar/connect", r.googleHandler.ConnectCalendar).Methods(http.MethodGet)

	// Appointments
	staff.HandleFunc("/appointments", r.appointmentHandler.CreateAppointment).Methods(http.MethodPost)
	staff.HandleFunc("/appointments", r.appointmentHandler.ListAppointments).Methods(http.MethodGet)
	staff.HandleFunc("/appointments/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	staff.HandleFunc("/appointments/{id}/reschedule", r.appointmentHandler.RescheduleAppointment).Methods(http.MethodPut)
	staff.HandleFunc("/appointments/{id}", r.appointmentHandler.CancelAppointment).Methods(http.MethodDelete)

	// Appointment types
	staff.HandleFunc("/appointment-types", r.appointmentTypeHandler.CreateAppointmentType).Methods(http.MethodPost)
	staff.HandleFunc("/appointment-types", r.appointmentTypeHandler.ListAppointmentTypes).Methods(http.MethodGet)
	staff.HandleFunc("/appointment-types/{id}", r.appointmentTypeHandler.GetAppointmentType).Methods(http.MethodGet)
	staff.HandleFunc("/appointment-types/{id}", r.appointmentTypeHandler.UpdateAppointmentType).Methods(http.MethodPut)
	staff.HandleFunc("/appointment-types/{id}", r.appointmentTypeHandler.DeleteAppointmentType).Methods(http.MethodDelete)

	// Patients
	staff.HandleFunc("/patients", r.patientHandler.CreatePatient).Methods(http.MethodPost)
	staff.HandleFunc("/patients", r.patientHandler.ListPatients).Methods(http.MethodGet)
	staff.HandleFunc("/patients/{id}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	staff.HandleFunc("/patients/{id}", r.patientHandler.UpdatePatient).Methods(http.MethodPut)
	staff.HandleFunc("/patients/{id}", r.patientHandler.DeletePatient).Methods(http.MethodDelete)

	// Calendar page
	staff.HandleFunc("/calendar", r.calendarHandler.GetCalendarView).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/audit-logs", r.auditLogHandler.ListAuditLogs).Methods(http.MethodGet)

	// Add CORS middleware
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
