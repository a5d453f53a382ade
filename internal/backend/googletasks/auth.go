package googletasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"tasktable/internal/config"
)

// tokenCheckTimeout bounds the refresh round trip made by CheckToken.
const tokenCheckTimeout = 10 * time.Second

// ErrNoRefreshToken is returned for a stored token that cannot be renewed.
var ErrNoRefreshToken = errors.New("token has no refresh token")

// OAuthConfig reads oauth_client.json from the config dir.
func OAuthConfig(cfg *config.Config) (*oauth2.Config, error) {
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", config.OAuthClientFile, err)
	}
	oc, err := google.ConfigFromJSON(clientJSON, Scope)
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", config.OAuthClientFile, err)
	}
	return oc, nil
}

// LoadToken reads a token written by SaveToken.
func LoadToken(path string) (*oauth2.Token, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", config.TokenFile, err)
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("invalid %s: %w", config.TokenFile, err)
	}
	return &token, nil
}

// SaveToken writes token to path with mode 0600.
func SaveToken(path string, token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// CheckToken reports why the stored token cannot load tasks, or nil when
// it can. A token is usable when it carries a refresh token and the token
// endpoint accepts it.
func CheckToken(ctx context.Context, cfg *config.Config) error {
	token, err := LoadToken(cfg.TokenPath())
	if err != nil {
		return err
	}
	if token.RefreshToken == "" {
		return ErrNoRefreshToken
	}
	oc, err := OAuthConfig(cfg)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, tokenCheckTimeout)
	defer cancel()
	if _, err := oc.TokenSource(ctx, token).Token(); err != nil {
		return fmt.Errorf("token refresh failed: %w", err)
	}
	return nil
}
