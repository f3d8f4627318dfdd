package handler

import (
	"net/http"

	"go-medical-scheduling/internal/delivery/dto"
	"go-medical-scheduling/internal/usecase"
	"go-medical-scheduling/pkg/response"
	"go-medical-scheduling/pkg/validator"

	"github.com/gorilla/mux"
)

type HealthRecordHandler struct {
	healthRecordUsecase usecase.HealthRecordUsecase
	validator           *validator.CustomValidator
}

func NewHealthRecordHandler(healthRecordUsecase usecase.HealthRecordUsecase, validator *validator.CustomValidator) *HealthRecordHandler {
	return &HealthRecordHandler{
		healthRecordUsecase: healthRecordUsecase,
		validator:           validator,
	}
}

func (h *HealthRecordHandler) AddHealthRecord(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateHealthRecordRequest
	if err := decodeBody(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	record, err := h.healthRecordUsecase.Add(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to add health record")
		return
	}

	response.Success(w, http.StatusCreated, "Health record added successfully", record)
}

func (h *HealthRecordHandler) GetHealthRecord(w http.ResponseWriter, r *http.Request) {
	record, err := h.healthRecordUsecase.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err, "Failed to get health record")
		return
	}

	response.Success(w, http.StatusOK, "Health record retrieved successfully", record)
}

// GetAllHealthRecords accepts an optional ?practitioner_id filter
func (h *HealthRecordHandler) GetAllHealthRecords(w http.ResponseWriter, r *http.Request) {
	var (
		records *dto.HealthRecordListResponse
		err     error
	)
	if practitionerID := r.URL.Query().Get("practitioner_id"); practitionerID != "" {
		records, err = h.healthRecordUsecase.ListByPractitioner(r.Context(), practitionerID)
	} else {
		records, err = h.healthRecordUsecase.ListAll(r.Context())
	}
	if err != nil {
		writeError(w, err, "Failed to get health records")
		return
	}

	response.Success(w, http.StatusOK, "Health records retrieved successfully", records)
}
