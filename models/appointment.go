package models

import "time"

// TimeRange is a candidate or existing appointment slot. Both ends carry
// their own timezone; comparisons happen on the instants, not the offsets.
type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// PatientInfo is embedded verbatim into the event description. The strings
// are free-form; no validation is performed on them.
type PatientInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

// Event is the local view of a calendar event owned by the remote calendar.
// Events are never cached; this struct only carries gateway responses back
// to the caller.
type Event struct {
	ID          string    `json:"id"`
	Summary     string    `json:"summary"`
	Description string    `json:"description,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Status      string    `json:"status,omitempty"`
	HTMLLink    string    `json:"htmlLink,omitempty"`
}

// EventDraft is the payload for creating a new calendar event.
type EventDraft struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
}

// CheckResult is the outcome of an availability check.
type CheckResult struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
	Token     string `json:"token,omitempty"`
}

// Availability rejection reasons. These are expected workflow outcomes, not
// errors, and surface with HTTP 200.
const (
	ReasonWeekendNotAllowed = "weekend_not_allowed"
	ReasonDoubleBooking     = "double_booking"
)
