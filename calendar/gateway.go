package calendar

import (
	"context"
	"time"

	"github.com/oscarfollett-cpu/vf-dentist-mcp/models"
)

// Gateway is the contract with the remote calendar service. Events live
// entirely on the remote side; nothing is cached locally.
type Gateway interface {
	// ListOverlapping returns events intersecting [start, end), ordered by
	// start time, with recurring events expanded to single instances.
	ListOverlapping(ctx context.Context, start, end time.Time) ([]models.Event, error)
	// Insert creates a new event and returns the gateway's representation,
	// including the assigned event id.
	Insert(ctx context.Context, draft models.EventDraft) (*models.Event, error)
	// Patch applies a partial time-range update to an existing event.
	Patch(ctx context.Context, eventID string, start, end time.Time) (*models.Event, error)
	// Delete removes an event by id.
	Delete(ctx context.Context, eventID string) error
}
