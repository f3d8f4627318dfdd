package http

import (
	"net/http"

	"go-medical-scheduling/internal/delivery/http/handler"
	"go-medical-scheduling/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Router struct {
	router              *mux.Router
	patientHandler      *handler.PatientHandler
	practitionerHandler *handler.PractitionerHandler
	appointmentHandler  *handler.AppointmentHandler
	healthRecordHandler *handler.HealthRecordHandler
	auditLogHandler     *handler.AuditLogHandler
	corsMiddleware      *middleware.CORSMiddleware
	loggingMiddleware   *middleware.LoggingMiddleware
	gatherer            prometheus.Gatherer
}

func NewRouter(
	patientHandler *handler.PatientHandler,
	practitionerHandler *handler.PractitionerHandler,
	appointmentHandler *handler.AppointmentHandler,
	healthRecordHandler *handler.HealthRecordHandler,
	auditLogHandler *handler.AuditLogHandler,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
	gatherer prometheus.Gatherer,
) *Router {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &Router{
		router:              mux.NewRouter(),
		patientHandler:      patientHandler,
		practitionerHandler: practitionerHandler,
		appointmentHandler:  appointmentHandler,
		healthRecordHandler: healthRecordHandler,
		auditLogHandler:     auditLogHandler,
		corsMiddleware:      corsMiddleware,
		loggingMiddleware:   loggingMiddleware,
		gatherer:            gatherer,
	}
}

func (r *Router) Setup() *mux.Router {
	r.router.Handle("/metrics", promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Patients
	api.HandleFunc("/patients", r.patientHandler.RegisterPatient).Methods(http.MethodPost)
	api.HandleFunc("/patients", r.patientHandler.GetAllPatients).Methods(http.MethodGet)
	api.HandleFunc("/patients/{id}", r.patientHandler.GetPatient).Methods(http.MethodGet)
	api.HandleFunc("/patients/{id}", r.patientHandler.UpdatePatient).Methods(http.MethodPut)
	api.HandleFunc("/patients/{id}/appointments", r.patientHandler.GetPatientAppointments).Methods(http.MethodGet)
	api.HandleFunc("/patients/{id}/health-records", r.patientHandler.GetPatientHealthRecords).Methods(http.MethodGet)

	// Practitioners and their slots
	api.HandleFunc("/practitioners", r.practitionerHandler.RegisterPractitioner).Methods(http.MethodPost)
	api.HandleFunc("/practitioners", r.practitionerHandler.GetAllPractitioners).Methods(http.MethodGet)
	api.HandleFunc("/practitioners/{id}", r.practitionerHandler.GetPractitioner).Methods(http.MethodGet)
	api.HandleFunc("/practitioners/{id}/slots", r.practitionerHandler.CheckSlot).Methods(http.MethodGet)
	api.HandleFunc("/practitioners/{id}/slots", r.practitionerHandler.OpenSlot).Methods(http.MethodPost)
	api.HandleFunc("/practitioners/{id}/slots", r.practitionerHandler.CloseSlot).Methods(http.MethodDelete)
	api.HandleFunc("/practitioners/{id}/appointments", r.practitionerHandler.GetPractitionerAppointments).Methods(http.MethodGet)

	// Appointments
	api.HandleFunc("/appointments", r.appointmentHandler.BookAppointment).Methods(http.MethodPost)
	api.HandleFunc("/appointments", r.appointmentHandler.GetAllAppointments).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id}", r.appointmentHandler.GetAppointment).Methods(http.MethodGet)
	api.HandleFunc("/appointments/{id}/cancel", r.appointmentHandler.CancelAppointment).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{id}/reschedule", r.appointmentHandler.RescheduleAppointment).Methods(http.MethodPost)
	api.HandleFunc("/appointments/{id}/complete", r.appointmentHandler.CompleteAppointment).Methods(http.MethodPost)

	// Health records
	api.HandleFunc("/health-records", r.healthRecordHandler.AddHealthRecord).Methods(http.MethodPost)
	api.HandleFunc("/health-records", r.healthRecordHandler.GetAllHealthRecords).Methods(http.MethodGet)
	api.HandleFunc("/health-records/{id}", r.healthRecordHandler.GetHealthRecord).Methods(http.MethodGet)

	// Maintenance
	api.HandleFunc("/audit-logs", r.auditLogHandler.GetAllAuditLogs).Methods(http.MethodGet)
	api.HandleFunc("/maintenance/reconcile", r.appointmentHandler.Reconcile).Methods(http.MethodPost)

	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
