package booking

import (
	"context"
	"errors"
	"time"

	"github.com/oscarfollett-cpu/vf-dentist-mcp/models"
)

// Sentinel errors returned by the booking services. Handlers map these to
// client-facing status codes; everything else is a generic server error.
var (
	// ErrInvalidRange is returned when start is not strictly before end.
	ErrInvalidRange = errors.New("start must be before end")
	// ErrNoToken is returned when a create request carries no reservation token.
	ErrNoToken = errors.New("no reservation token")
	// ErrSlotUnavailable is returned when the slot is held or booked by the
	// time the create request arrives.
	ErrSlotUnavailable = errors.New("slot no longer available")
)

// AvailabilityService checks whether a slot can be booked and issues a
// reservation token on a clear slot.
type AvailabilityService interface {
	Check(ctx context.Context, start, end time.Time) (*models.CheckResult, error)
}

// AppointmentService creates, moves, and cancels calendar appointments.
type AppointmentService interface {
	Create(ctx context.Context, req models.CreateRequest) (string, error)
	Update(ctx context.Context, eventID string, start, end time.Time) (*models.Event, error)
	Delete(ctx context.Context, eventID string) error
}
