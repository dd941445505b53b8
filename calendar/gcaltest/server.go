// Package gcaltest provides a mock Google Calendar API server for testing.
// It implements the subset of the Calendar API v3 Events surface that the
// booking service touches: list with a time window, insert, patch, delete.
package gcaltest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"time"

	gcal "google.golang.org/api/calendar/v3"
)

// Server is a mock Google Calendar API server for testing.
type Server struct {
	*httptest.Server
	mu     sync.RWMutex
	events map[string]map[string]*gcal.Event // calendarID -> eventID -> event
	nextID int
}

// NewServer starts a new mock Calendar API server.
func NewServer() *Server {
	s := &Server{
		events: make(map[string]map[string]*gcal.Event),
		nextID: 1,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", s.route)

	s.Server = httptest.NewServer(mux)
	return s
}

// route dispatches /calendars/{calendarId}/events[/{eventId}] requests.
func (s *Server) route(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Path
	idx := strings.Index(path, "/calendars/")
	if idx == -1 {
		http.Error(w, "unsupported endpoint", http.StatusNotFound)
		return
	}
	parts := strings.Split(strings.Trim(path[idx+len("/calendars/"):], "/"), "/")
	if len(parts) < 2 || parts[1] != "events" {
		http.Error(w, "unsupported resource", http.StatusNotFound)
		return
	}
	calendarID := parts[0]

	switch {
	case len(parts) == 2 && r.Method == http.MethodGet:
		s.listEvents(w, r, calendarID)
	case len(parts) == 2 && r.Method == http.MethodPost:
		s.insertEvent(w, r, calendarID)
	case len(parts) == 3 && (r.Method == http.MethodPatch || r.Method == http.MethodPut):
		s.patchEvent(w, r, calendarID, parts[2])
	case len(parts) == 3 && r.Method == http.MethodDelete:
		s.deleteEvent(w, calendarID, parts[2])
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) insertEvent(w http.ResponseWriter, r *http.Request, calendarID string) {
	var event gcal.Event
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, fmt.Sprintf("invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	event.Id = fmt.Sprintf("event%d", s.nextID)
	s.nextID++
	event.Status = "confirmed"
	event.Created = time.Now().Format(time.RFC3339)
	event.Updated = event.Created
	event.HtmlLink = fmt.Sprintf("https://calendar.google.com/event?eid=%s", event.Id)

	if s.events[calendarID] == nil {
		s.events[calendarID] = make(map[string]*gcal.Event)
	}
	s.events[calendarID][event.Id] = &event

	writeJSON(w, event)
}

func (s *Server) listEvents(w http.ResponseWriter, r *http.Request, calendarID string) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := r.URL.Query()
	timeMin := parseQueryTime(query.Get("timeMin"))
	timeMax := parseQueryTime(query.Get("timeMax"))

	var events []*gcal.Event
	for _, evt := range s.events[calendarID] {
		start, end := eventWindow(evt)
		// timeMin filters on event end, timeMax on event start; together
		// they select events overlapping the requested window.
		if !timeMin.IsZero() && !end.After(timeMin) {
			continue
		}
		if !timeMax.IsZero() && !start.Before(timeMax) {
			continue
		}
		events = append(events, evt)
	}

	if query.Get("orderBy") == "startTime" {
		sort.Slice(events, func(i, j int) bool {
			si, _ := eventWindow(events[i])
			sj, _ := eventWindow(events[j])
			return si.Before(sj)
		})
	}

	writeJSON(w, &gcal.Events{
		Kind:    "calendar#events",
		Summary: calendarID,
		Items:   events,
	})
}

func (s *Server) patchEvent(w http.ResponseWriter, r *http.Request, calendarID, eventID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing := s.events[calendarID][eventID]
	if existing == nil {
		http.Error(w, "event not found", http.StatusNotFound)
		return
	}

	var updates gcal.Event
	if err := json.NewDecoder(r.Body).Decode(&updates); err != nil {
		http.Error(w, fmt.Sprintf("invalid JSON: %v", err), http.StatusBadRequest)
		return
	}

	// Patch semantics: only provided fields replace existing ones.
	if updates.Summary != "" {
		existing.Summary = updates.Summary
	}
	if updates.Description != "" {
		existing.Description = updates.Description
	}
	if updates.Start != nil {
		existing.Start = updates.Start
	}
	if updates.End != nil {
		existing.End = updates.End
	}
	existing.Updated = time.Now().Format(time.RFC3339)

	writeJSON(w, existing)
}

func (s *Server) deleteEvent(w http.ResponseWriter, calendarID, eventID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.events[calendarID][eventID] == nil {
		http.Error(w, "event not found", http.StatusNotFound)
		return
	}
	delete(s.events[calendarID], eventID)
	w.WriteHeader(http.StatusNoContent)
}

// AddEvent adds a pre-configured event to the server (for test setup).
func (s *Server) AddEvent(calendarID string, event *gcal.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if event.Id == "" {
		event.Id = fmt.Sprintf("event%d", s.nextID)
		s.nextID++
	}
	if s.events[calendarID] == nil {
		s.events[calendarID] = make(map[string]*gcal.Event)
	}
	s.events[calendarID][event.Id] = event
}

// Events returns all events for a calendar (for test assertions).
func (s *Server) Events(calendarID string) []*gcal.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var events []*gcal.Event
	for _, evt := range s.events[calendarID] {
		events = append(events, evt)
	}
	return events
}

// Reset clears all events from the server.
func (s *Server) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = make(map[string]map[string]*gcal.Event)
	s.nextID = 1
}

func eventWindow(e *gcal.Event) (start, end time.Time) {
	if e.Start != nil {
		start = parseQueryTime(e.Start.DateTime)
	}
	if e.End != nil {
		end = parseQueryTime(e.End.DateTime)
	}
	return start, end
}

func parseQueryTime(v string) time.Time {
	if v == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}
	}
	return t
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
