package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
)

// Client provides read/write access to the external calendar. The
// upload phase is the only writer; slot generation only reads.
type Client interface {
	ListEvents(ctx context.Context, start, end time.Time) ([]domain.BookedEvent, error)
	CreateEvent(ctx context.Context, ev domain.PlacedEvent) (domain.BookedEvent, error)
	UpdateEvent(ctx context.Context, id string, ev domain.PlacedEvent) error
	DeleteEvent(ctx context.Context, id string) error
}

type httpClient struct {
	cfg  Config
	http *http.Client
}

// NewClient creates a calendar Client from the given config.
func NewClient(cfg Config) Client {
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
	}
}

// eventPayload is the wire shape of one calendar event. All timestamps
// travel as RFC3339 with an explicit offset.
type eventPayload struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title,omitempty"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Description string `json:"description,omitempty"`
	Category    string `json:"category,omitempty"`
	SourceTask  string `json:"source_task_id,omitempty"`
}

type listEventsResponse struct {
	Events []eventPayload `json:"events"`
}

func (c *httpClient) ListEvents(ctx context.Context, start, end time.Time) ([]domain.BookedEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	query := url.Values{}
	query.Set("start", start.Format(time.RFC3339))
	query.Set("end", end.Format(time.RFC3339))

	body, err := c.do(ctx, http.MethodGet, "/api/events?"+query.Encode(), nil, http.StatusOK)
	if err != nil {
		return nil, err
	}

	var payload listEventsResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	events := make([]domain.BookedEvent, 0, len(payload.Events))
	for _, p := range payload.Events {
		ev, err := p.toBooked()
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
		}
		events = append(events, ev)
	}
	return events, nil
}

func (c *httpClient) CreateEvent(ctx context.Context, ev domain.PlacedEvent) (domain.BookedEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	payload := eventPayload{
		Title:       ev.Title,
		Start:       ev.Start.Format(time.RFC3339),
		End:         ev.End.Format(time.RFC3339),
		Description: ev.Description,
		Category:    ev.Category,
		SourceTask:  ev.TaskID,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return domain.BookedEvent{}, fmt.Errorf("marshaling event: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/api/events", data, http.StatusCreated)
	if err != nil {
		return domain.BookedEvent{}, err
	}

	var created eventPayload
	if err := json.Unmarshal(body, &created); err != nil {
		return domain.BookedEvent{}, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}
	return created.toBooked()
}

func (c *httpClient) UpdateEvent(ctx context.Context, id string, ev domain.PlacedEvent) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	payload := eventPayload{
		Title:       ev.Title,
		Start:       ev.Start.Format(time.RFC3339),
		End:         ev.End.Format(time.RFC3339),
		Description: ev.Description,
		Category:    ev.Category,
		SourceTask:  ev.TaskID,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling event: %w", err)
	}

	_, err = c.do(ctx, http.MethodPut, "/api/events/"+url.PathEscape(id), data, http.StatusOK)
	return err
}

func (c *httpClient) DeleteEvent(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	_, err := c.do(ctx, http.MethodDelete, "/api/events/"+url.PathEscape(id), nil, http.StatusNoContent)
	return err
}

// do performs one request and returns the response body, mapping
// transport failures to the package sentinels.
func (c *httpClient) do(ctx context.Context, method, path string, body []byte, wantStatus int) ([]byte, error) {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.cfg.Endpoint+path, reader)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ErrTimeout
		}
		if isConnectionError(err) {
			return nil, ErrUnavailable
		}
		return nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != wantStatus {
		if resp.StatusCode >= 400 && resp.StatusCode < 500 {
			return nil, fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, string(respBody))
		}
		return nil, fmt.Errorf("calendar returned status %d: %s", resp.StatusCode, string(respBody))
	}
	return respBody, nil
}

func (p eventPayload) toBooked() (domain.BookedEvent, error) {
	start, err := time.Parse(time.RFC3339, p.Start)
	if err != nil {
		return domain.BookedEvent{}, fmt.Errorf("parsing event start: %w", err)
	}
	end, err := time.Parse(time.RFC3339, p.End)
	if err != nil {
		return domain.BookedEvent{}, fmt.Errorf("parsing event end: %w", err)
	}
	return domain.BookedEvent{ID: p.ID, Start: start, End: end}, nil
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}
