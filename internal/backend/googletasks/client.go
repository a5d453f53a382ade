// Package googletasks implements task.Source by reading one Google Tasks list.
package googletasks

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"google.golang.org/api/option"
	tasks "google.golang.org/api/tasks/v1"

	"tasktable/internal/config"
	"tasktable/internal/task"
)

const (
	// DefaultListID is the special ID for the default list.
	DefaultListID = "@default"

	// PageSize is the number of tasks requested per API page.
	PageSize = 100

	// Scope is the OAuth scope requested by login. Loading only reads.
	Scope = tasks.TasksScope

	statusCompleted = "completed"
)

// Client implements task.Source using the Google Tasks API.
type Client struct {
	svc      *tasks.Service
	listName string
	timeout  time.Duration
}

// New creates a Google Tasks client.
// Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	oauthConfig, err := OAuthConfig(cfg)
	if err != nil {
		return nil, err
	}
	token, err := LoadToken(cfg.TokenPath())
	if err != nil {
		return nil, err
	}

	// Token source refreshes the access token as needed
	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, token))

	svc, err := tasks.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("failed to create tasks service: %w", err)
	}

	return &Client{
		svc:      svc,
		listName: cfg.Settings.GoogleList,
		timeout:  cfg.Settings.Timeout,
	}, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client and endpoint (for testing).
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, endpoint, listName string) (*Client, error) {
	opts := []option.ClientOption{option.WithHTTPClient(httpClient)}
	if endpoint != "" {
		opts = append(opts, option.WithEndpoint(endpoint))
	}
	svc, err := tasks.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{svc: svc, listName: listName, timeout: config.DefaultTimeout}, nil
}

// Name implements task.Source.
func (c *Client) Name() string { return config.SourceGoogle }

// FetchTasks reads every task of the configured list, completed ones included.
// Google IDs are opaque strings, so tasks are numbered 1..n in API order.
func (c *Client) FetchTasks(ctx context.Context) ([]task.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	listID, err := c.resolveList(ctx)
	if err != nil {
		return nil, err
	}

	var result []task.Task
	err = c.svc.Tasks.List(listID).
		MaxResults(PageSize).
		ShowCompleted(true).
		ShowHidden(true).
		ShowDeleted(false).
		Pages(ctx, func(resp *tasks.Tasks) error {
			for _, item := range resp.Items {
				status := task.StatusToDo
				if item.Status == statusCompleted {
					status = task.StatusDone
				}
				result = append(result, task.Task{
					ID:          len(result) + 1,
					Title:       item.Title,
					Description: item.Notes,
					Status:      status,
				})
			}
			return nil
		})
	if err != nil {
		return nil, wrapError(err)
	}

	return result, nil
}

// resolveList finds the configured list by name (case-insensitive, trimmed).
// An empty name selects the default list.
func (c *Client) resolveList(ctx context.Context) (string, error) {
	name := strings.TrimSpace(c.listName)
	if name == "" {
		return DefaultListID, nil
	}
	nameLower := strings.ToLower(name)

	var matches []string
	err := c.svc.Tasklists.List().MaxResults(100).Pages(ctx, func(resp *tasks.TaskLists) error {
		for _, list := range resp.Items {
			if strings.ToLower(strings.TrimSpace(list.Title)) == nameLower {
				matches = append(matches, list.Id)
			}
		}
		return nil
	})
	if err != nil {
		return "", wrapError(err)
	}

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("list not found: %s", name)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("ambiguous list name: %s", name)
	}
}

// wrapError wraps API errors with user-friendly messages.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	errStr := err.Error()

	if strings.Contains(errStr, "context deadline exceeded") {
		return fmt.Errorf("request timed out")
	}

	if strings.Contains(errStr, "401") || strings.Contains(errStr, "403") {
		return fmt.Errorf("token expired or revoked (run: tasktable login)")
	}

	if strings.Contains(errStr, "404") {
		return fmt.Errorf("not found")
	}

	return err
}
