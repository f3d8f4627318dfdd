package handler

import (
	"net/http"

	"go-medical-scheduling/internal/delivery/dto"
	"go-medical-scheduling/internal/usecase"
	"go-medical-scheduling/pkg/response"
	"go-medical-scheduling/pkg/validator"

	"github.com/gorilla/mux"
)

type PractitionerHandler struct {
	practitionerUsecase usecase.PractitionerUsecase
	appointmentUsecase  usecase.AppointmentUsecase
	validator           *validator.CustomValidator
}

func NewPractitionerHandler(
	practitionerUsecase usecase.PractitionerUsecase,
	appointmentUsecase usecase.AppointmentUsecase,
	validator *validator.CustomValidator,
) *PractitionerHandler {
	return &PractitionerHandler{
		practitionerUsecase: practitionerUsecase,
		appointmentUsecase:  appointmentUsecase,
		validator:           validator,
	}
}

func (h *PractitionerHandler) RegisterPractitioner(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePractitionerRequest
	if err := decodeBody(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	practitioner, err := h.practitionerUsecase.Register(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to register practitioner")
		return
	}

	response.Success(w, http.StatusCreated, "Practitioner registered successfully", practitioner)
}

func (h *PractitionerHandler) GetPractitioner(w http.ResponseWriter, r *http.Request) {
	practitioner, err := h.practitionerUsecase.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err, "Failed to get practitioner")
		return
	}

	response.Success(w, http.StatusOK, "Practitioner retrieved successfully", practitioner)
}

func (h *PractitionerHandler) GetAllPractitioners(w http.ResponseWriter, r *http.Request) {
	practitioners, err := h.practitionerUsecase.List(r.Context())
	if err != nil {
		writeError(w, err, "Failed to get practitioners")
		return
	}

	response.Success(w, http.StatusOK, "Practitioners retrieved successfully", practitioners)
}

// CheckSlot answers GET /practitioners/{id}/slots?time=RFC3339
func (h *PractitionerHandler) CheckSlot(w http.ResponseWriter, r *http.Request) {
	at, ok := parseTimeQuery(r, "time")
	if !ok {
		response.ValidationError(w, map[string]string{"time": "time must be an RFC3339 timestamp"})
		return
	}

	available, err := h.practitionerUsecase.HasSlot(r.Context(), mux.Vars(r)["id"], at)
	if err != nil {
		writeError(w, err, "Failed to check slot")
		return
	}

	response.Success(w, http.StatusOK, "Slot checked successfully", map[string]interface{}{
		"time":      at,
		"available": available,
	})
}

func (h *PractitionerHandler) OpenSlot(w http.ResponseWriter, r *http.Request) {
	var req dto.SlotRequest
	if err := decodeBody(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	practitioner, err := h.appointmentUsecase.OpenSlot(r.Context(), mux.Vars(r)["id"], req.Time)
	if err != nil {
		writeError(w, err, "Failed to open slot")
		return
	}

	response.Success(w, http.StatusOK, "Slot opened successfully", practitioner)
}

// CloseSlot answers DELETE /practitioners/{id}/slots?time=RFC3339
func (h *PractitionerHandler) CloseSlot(w http.ResponseWriter, r *http.Request) {
	at, ok := parseTimeQuery(r, "time")
	if !ok {
		response.ValidationError(w, map[string]string{"time": "time must be an RFC3339 timestamp"})
		return
	}

	removed, err := h.appointmentUsecase.CloseSlot(r.Context(), mux.Vars(r)["id"], at)
	if err != nil {
		writeError(w, err, "Failed to close slot")
		return
	}

	response.Success(w, http.StatusOK, "Slot closed successfully", map[string]interface{}{
		"time":    at,
		"removed": removed,
	})
}

func (h *PractitionerHandler) GetPractitionerAppointments(w http.ResponseWriter, r *http.Request) {
	appointments, err := h.appointmentUsecase.ListByPractitioner(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}
