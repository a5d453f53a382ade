// Package backend selects the task.Source named by the configuration.
package backend

import (
	"context"
	"errors"
	"fmt"

	"tasktable/internal/backend/googletasks"
	"tasktable/internal/backend/placeholder"
	"tasktable/internal/config"
	"tasktable/internal/task"
)

// ErrAuth marks failures caused by missing or unusable credentials.
var ErrAuth = errors.New("auth error")

// New creates the source named by cfg.Settings.Source.
func New(ctx context.Context, cfg *config.Config) (task.Source, error) {
	switch cfg.Settings.Source {
	case config.SourcePlaceholder, "":
		return placeholder.New(cfg), nil
	case config.SourceGoogle:
		if !cfg.HasOAuthClient() {
			return nil, fmt.Errorf("%w: oauth_client.json not found in %s", ErrAuth, cfg.Dir)
		}
		if !cfg.HasToken() {
			return nil, fmt.Errorf("%w: not logged in (run: tasktable login)", ErrAuth)
		}
		c, err := googletasks.New(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrAuth, err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown source: %s", cfg.Settings.Source)
	}
}
