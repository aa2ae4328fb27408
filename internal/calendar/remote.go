package calendar

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// RemoteSource fetches events from an HTTP agenda service.
//
//	GET {base}/status            -> {"status": "authorized"}
//	GET {base}/events?from=&to=&calendars=a,b -> {"events": [...]}
//
// Instants are exchanged as RFC 3339.
type RemoteSource struct {
	baseURL string
	token   string
	client  *http.Client
}

// NewRemoteSource creates a RemoteSource for baseURL authenticated with the
// bearer token.
func NewRemoteSource(baseURL, token string) *RemoteSource {
	return &RemoteSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

func (s *RemoteSource) get(ctx context.Context, path string, query url.Values, out any) error {
	u := s.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrNotAuthorized
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("agenda service returned %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// AuthorizationStatus asks the agenda service whether this token may read
// events.
func (s *RemoteSource) AuthorizationStatus(ctx context.Context) (string, error) {
	var body struct {
		Status string `json:"status"`
	}
	if err := s.get(ctx, "/status", nil, &body); err != nil {
		return "", fmt.Errorf("authorization status: %w", err)
	}
	return body.Status, nil
}

// FetchEvents fetches the events starting within [start, end) for the given
// calendar IDs.
func (s *RemoteSource) FetchEvents(ctx context.Context, start, end time.Time, calendarIDs []string) ([]Event, error) {
	query := url.Values{}
	query.Set("from", start.Format(time.RFC3339))
	query.Set("to", end.Format(time.RFC3339))
	if len(calendarIDs) > 0 {
		query.Set("calendars", strings.Join(calendarIDs, ","))
	}

	var body struct {
		Events []Event `json:"events"`
	}
	if err := s.get(ctx, "/events", query, &body); err != nil {
		return nil, fmt.Errorf("fetch events: %w", err)
	}
	return body.Events, nil
}
