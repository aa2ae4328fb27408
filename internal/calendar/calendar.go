// Package calendar provides read-only access to the user's calendar events
// for one day at a time.
package calendar

import (
	"context"
	"errors"
	"time"
)

// StatusAuthorized is the authorization status that permits event fetches.
const StatusAuthorized = "authorized"

// ErrNotAuthorized is returned when the calendar source denies access.
var ErrNotAuthorized = errors.New("not authorized to access calendar")

// Event is a read-only snapshot of one calendar event.
type Event struct {
	Title      string    `json:"title" yaml:"title"`
	StartDate  time.Time `json:"startDate" yaml:"startDate"`
	EndDate    time.Time `json:"endDate" yaml:"endDate"`
	AllDay     bool      `json:"allDay" yaml:"allDay"`
	CalendarID string    `json:"calendarId" yaml:"calendarId"`
}

// String renders the event as "[<start> -- <title>]" for logs.
func (e Event) String() string {
	return "[" + e.StartDate.Format(time.RFC3339) + " -- " + e.Title + "]"
}

// Source is the calendar data collaborator. Implementations own the events
// for the duration of the call; callers copy what they keep.
type Source interface {
	// AuthorizationStatus reports whether the source may be read.
	// Any status other than StatusAuthorized forbids fetching.
	AuthorizationStatus(ctx context.Context) (string, error)

	// FetchEvents returns the events starting within [start, end),
	// restricted to the given calendar IDs (empty means all).
	FetchEvents(ctx context.Context, start, end time.Time, calendarIDs []string) ([]Event, error)
}
