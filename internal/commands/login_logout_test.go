package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"tasktable/internal/commands"
	"tasktable/internal/config"
	"tasktable/internal/exitcode"
)

const testOAuthClient = `{"installed":{"client_id":"test","client_secret":"test","redirect_uris":["http://localhost"]}}`

// credentialDir returns a config dir holding oauth_client.json and, when
// token is non-empty, token.json.
func credentialDir(t *testing.T, token string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, config.OAuthClientFile), []byte(testOAuthClient), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", config.OAuthClientFile, err)
	}
	if token != "" {
		if err := os.WriteFile(filepath.Join(dir, config.TokenFile), []byte(token), 0600); err != nil {
			t.Fatalf("failed to write %s: %v", config.TokenFile, err)
		}
	}
	return dir
}

func runIn(ctx context.Context, cmd commands.Command, dir string, quiet bool) (stdout, stderr string, code int) {
	var outBuf, errBuf bytes.Buffer
	cfg := &config.Config{Dir: dir, Quiet: quiet, Settings: config.DefaultSettings()}
	code = cmd.Run(ctx, cfg, nil, nil, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestLoginCommand_NoOAuthClient(t *testing.T) {
	dir := t.TempDir()
	stdout, stderr, code := runIn(context.Background(), &commands.LoginCmd{}, dir, false)

	if code != exitcode.ConfigError {
		t.Errorf("expected exit code %d, got %d", exitcode.ConfigError, code)
	}
	if stdout != "" {
		t.Errorf("expected no stdout, got %q", stdout)
	}
	if !strings.HasPrefix(stderr, "error: oauth_client.json not found in "+dir+"\n") {
		t.Errorf("unexpected stderr %q", stderr)
	}
	if !strings.Contains(stderr, "Then run 'tasktable login' again.") {
		t.Error("expected setup instructions on stderr")
	}
}

// A stored token is only trusted when it can be refreshed; these cases
// must start a new login rather than report "already logged in".
func TestLoginCommand_UnusableToken(t *testing.T) {
	tests := []struct {
		name  string
		token string
	}{
		{"corrupt", `{not json`},
		{"no refresh token", `{"access_token":"test","token_type":"Bearer","expiry":"2020-01-01T00:00:00Z"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := credentialDir(t, tt.token)

			// Cancelled up front so the command never waits for the callback
			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			stdout, _, _ := runIn(ctx, &commands.LoginCmd{}, dir, false)
			if stdout == "already logged in\n" {
				t.Error("should not say 'already logged in' with an unusable token")
			}
		})
	}
}

func TestLogoutCommand_OnlyRemovesToken(t *testing.T) {
	dir := credentialDir(t, `{"access_token":"test","refresh_token":"test"}`)

	stdout, stderr, code := runIn(context.Background(), &commands.LogoutCmd{}, dir, false)

	if code != exitcode.Success {
		t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
	}
	if stderr != "" {
		t.Errorf("expected no stderr, got %q", stderr)
	}
	if stdout != "ok\n" {
		t.Errorf("expected 'ok\\n', got %q", stdout)
	}
	if _, err := os.Stat(filepath.Join(dir, config.TokenFile)); !os.IsNotExist(err) {
		t.Error("token.json should have been deleted")
	}
	if _, err := os.Stat(filepath.Join(dir, config.OAuthClientFile)); err != nil {
		t.Error("oauth_client.json should NOT have been deleted")
	}
}

func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	tests := []struct {
		name   string
		quiet  bool
		stdout string
	}{
		{"normal", false, "not logged in\n"},
		{"quiet", true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout, stderr, code := runIn(context.Background(), &commands.LogoutCmd{}, t.TempDir(), tt.quiet)

			if code != exitcode.Success {
				t.Errorf("expected exit code %d, got %d", exitcode.Success, code)
			}
			if stderr != "" {
				t.Errorf("expected no stderr, got %q", stderr)
			}
			if stdout != tt.stdout {
				t.Errorf("expected %q, got %q", tt.stdout, stdout)
			}
		})
	}
}
