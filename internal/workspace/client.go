package workspace

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/alexanderramin/tempo/internal/domain"
)

// Client provides read access to the external workspace's task list.
type Client interface {
	// ListIncompleteTasks fetches pending tasks, optionally filtered to
	// the given resource associations. An empty filter fetches all
	// incomplete tasks.
	ListIncompleteTasks(ctx context.Context, resourceIDs []string) ([]domain.Task, error)

	// Available checks whether the workspace API is reachable.
	Available(ctx context.Context) bool
}

// httpClient implements Client against the workspace HTTP API.
type httpClient struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewClient creates a workspace Client from the given config.
func NewClient(cfg Config, observer Observer) Client {
	if observer == nil {
		observer = NoopObserver{}
	}
	return &httpClient{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// taskPayload is the wire shape of one workspace task.
type taskPayload struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Completed    bool   `json:"completed"`
	EstimatedMin int    `json:"estimated_minutes"`
	Priority     string `json:"priority,omitempty"`
	ResourceID   string `json:"resource_id,omitempty"`
}

type listTasksResponse struct {
	Tasks []taskPayload `json:"tasks"`
}

func (c *httpClient) ListIncompleteTasks(ctx context.Context, resourceIDs []string) ([]domain.Task, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, time.Duration(c.cfg.TimeoutMs)*time.Millisecond)
	defer cancel()

	query := url.Values{}
	query.Set("completed", "false")
	if len(resourceIDs) > 0 {
		query.Set("resources", strings.Join(resourceIDs, ","))
	}
	endpoint := c.cfg.Endpoint + "/api/tasks?" + query.Encode()

	var lastErr error
	attempts := 1 + c.cfg.MaxRetries
	for i := 0; i < attempts; i++ {
		tasks, err := c.doList(ctx, endpoint)
		if err == nil {
			c.observer.OnCallComplete(CallEvent{
				Op:        "list_tasks",
				LatencyMs: time.Since(start).Milliseconds(),
				Success:   true,
			})
			return tasks, nil
		}
		lastErr = err

		// Don't retry on context cancellation/timeout
		if ctx.Err() != nil {
			break
		}
	}

	err := classifyError(ctx, lastErr)
	c.observer.OnCallComplete(CallEvent{
		Op:        "list_tasks",
		LatencyMs: time.Since(start).Milliseconds(),
		Success:   false,
		ErrorCode: errorCode(err),
	})
	return nil, err
}

func (c *httpClient) doList(ctx context.Context, endpoint string) ([]domain.Task, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if c.cfg.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("workspace returned status %d: %s", resp.StatusCode, string(body))
	}

	var payload listTasksResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadResponse, err)
	}

	tasks := make([]domain.Task, 0, len(payload.Tasks))
	for _, p := range payload.Tasks {
		if p.Completed {
			continue
		}
		tasks = append(tasks, domain.Task{
			ID:           p.ID,
			Title:        p.Title,
			Completed:    p.Completed,
			EstimatedMin: p.EstimatedMin,
			Priority:     parsePriority(p.Priority),
			ResourceID:   p.ResourceID,
		})
	}
	return tasks, nil
}

func (c *httpClient) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+"/api/health", nil)
	if err != nil {
		return false
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// parsePriority maps wire priorities to the domain enum; anything
// unrecognized ranks as low, matching the scorer's default.
func parsePriority(s string) domain.Priority {
	switch domain.Priority(s) {
	case domain.PriorityHigh, domain.PriorityMedium, domain.PriorityLow:
		return domain.Priority(s)
	default:
		return ""
	}
}

func classifyError(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return ErrTimeout
	}
	if isConnectionError(err) {
		return ErrUnavailable
	}
	return err
}

func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrBadResponse):
		return "BAD_RESPONSE"
	default:
		return "UNKNOWN"
	}
}
