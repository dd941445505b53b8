package calendar

import (
	"context"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2/google"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"

	"github.com/oscarfollett-cpu/vf-dentist-mcp/config"
	"github.com/oscarfollett-cpu/vf-dentist-mcp/models"
)

// GoogleGateway implements Gateway against the Google Calendar API v3.
type GoogleGateway struct {
	service    *gcal.Service
	calendarID string
	timezone   string
}

// NewGoogleGateway creates a Calendar API client for the configured calendar.
// Credentials come from the configured service-account JSON file, or from
// application default credentials when no file is set. Extra options are
// accepted so tests can point the client at a mock server.
func NewGoogleGateway(ctx context.Context, cfg *config.Config, opts ...option.ClientOption) (*GoogleGateway, error) {
	if cfg.GoogleCredentialsFile != "" {
		b, err := os.ReadFile(cfg.GoogleCredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("unable to read credentials file: %w", err)
		}
		creds, err := google.CredentialsFromJSON(ctx, b, gcal.CalendarScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse credentials: %w", err)
		}
		opts = append([]option.ClientOption{option.WithCredentials(creds)}, opts...)
	}

	srv, err := gcal.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Calendar service: %w", err)
	}

	return &GoogleGateway{
		service:    srv,
		calendarID: cfg.CalendarID,
		timezone:   cfg.Timezone,
	}, nil
}

// ListOverlapping queries events intersecting [start, end). The API's
// timeMin/timeMax filter on event end/start respectively, which yields
// exactly the overlap set.
func (g *GoogleGateway) ListOverlapping(ctx context.Context, start, end time.Time) ([]models.Event, error) {
	res, err := g.service.Events.List(g.calendarID).
		TimeMin(start.Format(time.RFC3339)).
		TimeMax(end.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("unable to list events: %w", err)
	}

	events := make([]models.Event, 0, len(res.Items))
	for _, item := range res.Items {
		events = append(events, mapEvent(item))
	}
	return events, nil
}

// Insert creates the event pinned to the configured timezone.
func (g *GoogleGateway) Insert(ctx context.Context, draft models.EventDraft) (*models.Event, error) {
	event := &gcal.Event{
		Summary:     draft.Summary,
		Description: draft.Description,
		Start:       g.eventTime(draft.Start),
		End:         g.eventTime(draft.End),
	}

	created, err := g.service.Events.Insert(g.calendarID, event).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to create event: %w", err)
	}
	mapped := mapEvent(created)
	return &mapped, nil
}

// Patch forwards a partial update of the event's time range.
func (g *GoogleGateway) Patch(ctx context.Context, eventID string, start, end time.Time) (*models.Event, error) {
	patch := &gcal.Event{
		Start: g.eventTime(start),
		End:   g.eventTime(end),
	}

	updated, err := g.service.Events.Patch(g.calendarID, eventID, patch).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("unable to update event: %w", err)
	}
	mapped := mapEvent(updated)
	return &mapped, nil
}

// Delete removes the event from the calendar.
func (g *GoogleGateway) Delete(ctx context.Context, eventID string) error {
	if err := g.service.Events.Delete(g.calendarID, eventID).Context(ctx).Do(); err != nil {
		return fmt.Errorf("unable to delete event: %w", err)
	}
	return nil
}

func (g *GoogleGateway) eventTime(t time.Time) *gcal.EventDateTime {
	return &gcal.EventDateTime{
		DateTime: t.Format(time.RFC3339),
		TimeZone: g.timezone,
	}
}

func mapEvent(e *gcal.Event) models.Event {
	ev := models.Event{
		ID:          e.Id,
		Summary:     e.Summary,
		Description: e.Description,
		Status:      e.Status,
		HTMLLink:    e.HtmlLink,
	}
	if e.Start != nil {
		ev.Start = parseEventTime(e.Start)
	}
	if e.End != nil {
		ev.End = parseEventTime(e.End)
	}
	return ev
}

func parseEventTime(t *gcal.EventDateTime) time.Time {
	if t.DateTime != "" {
		if parsed, err := time.Parse(time.RFC3339, t.DateTime); err == nil {
			return parsed
		}
	}
	// All-day events carry only a date.
	if parsed, err := time.Parse("2006-01-02", t.Date); err == nil {
		return parsed
	}
	return time.Time{}
}
