// Package placeholder implements task.Source against the JSONPlaceholder
// demo API (a list of {userId, id, title, completed} records).
package placeholder

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tasktable/internal/config"
	"tasktable/internal/task"
)

// DefaultTimeout bounds the single fetch when the config does not set one.
const DefaultTimeout = config.DefaultTimeout

// maxBody caps how much of the response is decoded.
const maxBody = 16 << 20

// todo is one record of the remote list.
type todo struct {
	UserID    int    `json:"userId"`
	ID        int    `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// Client implements task.Source over HTTP.
type Client struct {
	httpClient *http.Client
	endpoint   string
	timeout    time.Duration
}

// New creates a client for the endpoint and timeout in cfg.
func New(cfg *config.Config) *Client {
	return NewWithHTTPClient(http.DefaultClient, cfg.Settings.Endpoint, cfg.Settings.Timeout)
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(httpClient *http.Client, endpoint string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: httpClient,
		endpoint:   endpoint,
		timeout:    timeout,
	}
}

// Name implements task.Source.
func (c *Client) Name() string { return config.SourcePlaceholder }

// FetchTasks issues one GET to the endpoint and maps every record to a task.
// Completed records become Done, all others To Do; descriptions start empty.
func (c *Client) FetchTasks(ctx context.Context) ([]task.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, wrapError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var todos []todo
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(&todos); err != nil {
		return nil, fmt.Errorf("invalid response: %w", wrapError(err))
	}

	return toTasks(todos), nil
}

func toTasks(todos []todo) []task.Task {
	result := make([]task.Task, 0, len(todos))
	for _, td := range todos {
		status := task.StatusToDo
		if td.Completed {
			status = task.StatusDone
		}
		result = append(result, task.Task{
			ID:     td.ID,
			Title:  td.Title,
			Status: status,
		})
	}
	return result
}

// wrapError replaces transport noise with a short reason.
func wrapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return errors.New("request timed out")
	}
	if errors.Is(err, context.Canceled) {
		return errors.New("cancelled")
	}
	return err
}
