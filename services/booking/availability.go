package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/oscarfollett-cpu/vf-dentist-mcp/calendar"
	"github.com/oscarfollett-cpu/vf-dentist-mcp/models"
)

// DefaultAvailabilityService implements AvailabilityService against the
// calendar gateway and the reservation hold store.
type DefaultAvailabilityService struct {
	Gateway calendar.Gateway
	Holds   HoldStore
	HoldTTL time.Duration
	Logger  *zap.Logger
}

// Check applies the weekend rule, queries the calendar for conflicts, and on
// a clear slot takes a short-lived hold and issues a reservation token. The
// token is advisory: the calendar stays the source of truth at create time.
func (s *DefaultAvailabilityService) Check(ctx context.Context, start, end time.Time) (*models.CheckResult, error) {
	if !start.Before(end) {
		return nil, ErrInvalidRange
	}

	// The clinic is closed on weekends. The rule applies to the calendar
	// day as written in the request timestamp, so a Saturday-morning slot
	// in Auckland is rejected even though the instant is still Friday UTC.
	if isWeekend(start) {
		return &models.CheckResult{Available: false, Reason: models.ReasonWeekendNotAllowed}, nil
	}

	events, err := s.Gateway.ListOverlapping(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("availability query failed: %w", err)
	}
	if len(events) > 0 {
		return &models.CheckResult{Available: false, Reason: models.ReasonDoubleBooking}, nil
	}

	token := uuid.New().String()
	acquired, err := s.Holds.Acquire(ctx, HoldKey(start, end), token, s.HoldTTL)
	if err != nil {
		// The hold is a best-effort guard between concurrent checkers; the
		// create path re-validates against the calendar either way.
		s.Logger.Warn("hold store unavailable, skipping hold",
			zap.String("interval", HoldKey(start, end)), zap.Error(err))
	} else if !acquired {
		return &models.CheckResult{Available: false, Reason: models.ReasonDoubleBooking}, nil
	}

	return &models.CheckResult{Available: true, Token: token}, nil
}

func isWeekend(t time.Time) bool {
	switch t.Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	return false
}
