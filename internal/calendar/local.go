package calendar

import (
	"context"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// LocalSource reads events from a YAML agenda file:
//
//	events:
//	  - title: Standup
//	    startDate: 2024-03-10T09:00:00+01:00
//	    endDate: 2024-03-10T09:15:00+01:00
//	    calendarId: work
//
// The file is re-read on every fetch so edits take effect without a restart.
type LocalSource struct {
	path string
}

type agendaFile struct {
	Events []Event `yaml:"events"`
}

// NewLocalSource creates a LocalSource reading from path.
func NewLocalSource(path string) *LocalSource {
	return &LocalSource{path: path}
}

// AuthorizationStatus always authorizes: the agenda is the user's own file.
func (s *LocalSource) AuthorizationStatus(_ context.Context) (string, error) {
	return StatusAuthorized, nil
}

// FetchEvents returns the agenda events starting within [start, end),
// restricted to calendarIDs when non-empty.
func (s *LocalSource) FetchEvents(_ context.Context, start, end time.Time, calendarIDs []string) ([]Event, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read agenda %s: %w", s.path, err)
	}

	var agenda agendaFile
	if err := yaml.Unmarshal(data, &agenda); err != nil {
		return nil, fmt.Errorf("parse agenda %s: %w", s.path, err)
	}

	wanted := make(map[string]bool, len(calendarIDs))
	for _, id := range calendarIDs {
		wanted[id] = true
	}

	var out []Event
	for _, ev := range agenda.Events {
		if ev.StartDate.Before(start) || !ev.StartDate.Before(end) {
			continue
		}
		if len(wanted) > 0 && !wanted[ev.CalendarID] {
			continue
		}
		out = append(out, ev)
	}
	return out, nil
}
