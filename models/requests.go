package models

import "time"

// CheckRequest carries the slot to test for availability.
type CheckRequest struct {
	Start time.Time `json:"start" binding:"required"`
	End   time.Time `json:"end" binding:"required"`
}

// CreateRequest carries a reservation token from a prior check plus the
// appointment details.
type CreateRequest struct {
	Token   string      `json:"token"`
	Title   string      `json:"title" binding:"required"`
	Start   time.Time   `json:"start" binding:"required"`
	End     time.Time   `json:"end" binding:"required"`
	Patient PatientInfo `json:"patient"`
}

// UpdateRequest moves an existing appointment to a new time range.
type UpdateRequest struct {
	EventID string    `json:"eventId" binding:"required"`
	Start   time.Time `json:"start" binding:"required"`
	End     time.Time `json:"end" binding:"required"`
}

// DeleteRequest cancels an existing appointment.
type DeleteRequest struct {
	EventID string `json:"eventId" binding:"required"`
}

// CreateResponse acknowledges a created appointment.
type CreateResponse struct {
	Success bool   `json:"success"`
	EventID string `json:"eventId"`
}

// UpdateResponse acknowledges an updated appointment.
type UpdateResponse struct {
	Success bool   `json:"success"`
	Event   *Event `json:"event"`
}

// DeleteResponse acknowledges a deleted appointment.
type DeleteResponse struct {
	Success bool `json:"success"`
}
