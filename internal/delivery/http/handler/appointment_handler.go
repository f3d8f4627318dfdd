package handler

import (
	"net/http"
	"time"

	"go-medical-scheduling/internal/delivery/dto"
	"go-medical-scheduling/internal/usecase"
	"go-medical-scheduling/pkg/response"
	"go-medical-scheduling/pkg/validator"

	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
	location           *time.Location
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator, location *time.Location) *AppointmentHandler {
	if location == nil {
		location = time.UTC
	}
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
		location:           location,
	}
}

func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.BookAppointmentRequest
	if err := decodeBody(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Book(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to book appointment")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment booked successfully", appointment)
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	appointment, err := h.appointmentUsecase.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err, "Failed to get appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

// GetAllAppointments lists every appointment, or one day's when ?date=YYYY-MM-DD
// is given. The date is read in the configured time zone.
func (h *AppointmentHandler) GetAllAppointments(w http.ResponseWriter, r *http.Request) {
	var (
		appointments *dto.AppointmentListResponse
		err          error
	)

	if raw := r.URL.Query().Get("date"); raw != "" {
		day, parseErr := time.ParseInLocation(time.DateOnly, raw, h.location)
		if parseErr != nil {
			response.ValidationError(w, map[string]string{"date": "date must be formatted as YYYY-MM-DD"})
			return
		}
		appointments, err = h.appointmentUsecase.ListByDate(r.Context(), day)
	} else {
		appointments, err = h.appointmentUsecase.ListAll(r.Context())
	}
	if err != nil {
		writeError(w, err, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	result, err := h.appointmentUsecase.Cancel(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err, "Failed to cancel appointment")
		return
	}

	message := "Appointment cancelled successfully"
	if !result.Changed {
		message = "Appointment was already cancelled"
	}
	response.Success(w, http.StatusOK, message, result)
}

func (h *AppointmentHandler) RescheduleAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.RescheduleAppointmentRequest
	if err := decodeBody(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	appointment, err := h.appointmentUsecase.Reschedule(r.Context(), mux.Vars(r)["id"], req.ScheduledAt)
	if err != nil {
		writeError(w, err, "Failed to reschedule appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment rescheduled successfully", appointment)
}

func (h *AppointmentHandler) CompleteAppointment(w http.ResponseWriter, r *http.Request) {
	appointment, err := h.appointmentUsecase.Complete(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err, "Failed to complete appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment completed successfully", appointment)
}

func (h *AppointmentHandler) Reconcile(w http.ResponseWriter, r *http.Request) {
	result, err := h.appointmentUsecase.Reconcile(r.Context())
	if err != nil {
		writeError(w, err, "Failed to reconcile intents")
		return
	}

	response.Success(w, http.StatusOK, "Intents reconciled successfully", result)
}
