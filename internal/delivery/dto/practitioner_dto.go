package dto

import "time"

// Request DTOs

type CreatePractitionerRequest struct {
	Name      string `json:"name" validate:"required,max=255"`
	Specialty string `json:"specialty" validate:"required,max=100"`
	// Slots, when empty, are filled by the configured slot policy
	Slots []time.Time `json:"slots,omitempty"`
}

type SlotRequest struct {
	Time time.Time `json:"time" validate:"required"`
}

// Response DTOs

type PractitionerResponse struct {
	ID             string      `json:"id"`
	Name           string      `json:"name"`
	Specialty      string      `json:"specialty"`
	Slots          []time.Time `json:"slots"`
	AvailableSlots int         `json:"available_slots"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

type PractitionerListResponse struct {
	Practitioners []PractitionerResponse `json:"practitioners"`
	Total         int                    `json:"total"`
}
