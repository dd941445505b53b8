package booking

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/oscarfollett-cpu/vf-dentist-mcp/calendar"
	"github.com/oscarfollett-cpu/vf-dentist-mcp/models"
)

// DefaultAppointmentService implements AppointmentService by forwarding
// mutations to the calendar gateway.
type DefaultAppointmentService struct {
	Gateway calendar.Gateway
	Holds   HoldStore
	Logger  *zap.Logger
}

// Create validates the reservation token against the hold table and books
// the appointment. When the hold has lapsed, the slot is re-checked against
// the calendar before inserting, so a stale token can never double-book.
func (s *DefaultAppointmentService) Create(ctx context.Context, req models.CreateRequest) (string, error) {
	if req.Token == "" {
		return "", ErrNoToken
	}

	key := HoldKey(req.Start, req.End)
	holder, err := s.Holds.Holder(ctx, key)
	if err != nil {
		s.Logger.Warn("hold store unavailable, falling back to calendar re-check",
			zap.String("interval", key), zap.Error(err))
		holder = ""
	}

	switch {
	case holder != "" && holder != req.Token:
		// Another caller holds the slot.
		return "", ErrSlotUnavailable
	case holder == "":
		// No active hold for this interval; the check may have expired or
		// the hold store restarted. Re-validate against the calendar.
		events, err := s.Gateway.ListOverlapping(ctx, req.Start, req.End)
		if err != nil {
			return "", fmt.Errorf("conflict re-check failed: %w", err)
		}
		if len(events) > 0 {
			return "", ErrSlotUnavailable
		}
	}

	draft := models.EventDraft{
		Summary:     req.Title,
		Description: patientDescription(req.Patient),
		Start:       req.Start,
		End:         req.End,
	}
	event, err := s.Gateway.Insert(ctx, draft)
	if err != nil {
		return "", fmt.Errorf("event creation failed: %w", err)
	}

	// The hold has served its purpose; best effort, it expires on its own.
	if err := s.Holds.Release(ctx, key); err != nil {
		s.Logger.Warn("failed to release hold", zap.String("interval", key), zap.Error(err))
	}

	return event.ID, nil
}

// Update forwards a partial update of the time range for the given event.
func (s *DefaultAppointmentService) Update(ctx context.Context, eventID string, start, end time.Time) (*models.Event, error) {
	event, err := s.Gateway.Patch(ctx, eventID, start, end)
	if err != nil {
		return nil, fmt.Errorf("event update failed: %w", err)
	}
	return event, nil
}

// Delete forwards a deletion for the given event.
func (s *DefaultAppointmentService) Delete(ctx context.Context, eventID string) error {
	if err := s.Gateway.Delete(ctx, eventID); err != nil {
		return fmt.Errorf("event deletion failed: %w", err)
	}
	return nil
}

// patientDescription renders the patient details into the event description.
// The fields are free-form strings and are embedded verbatim.
func patientDescription(p models.PatientInfo) string {
	var b strings.Builder
	b.WriteString("Patient: " + p.Name)
	if p.Email != "" {
		b.WriteString("\nEmail: " + p.Email)
	}
	if p.Phone != "" {
		b.WriteString("\nPhone: " + p.Phone)
	}
	return b.String()
}
