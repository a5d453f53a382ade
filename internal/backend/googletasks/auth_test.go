package googletasks

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"tasktable/internal/config"
)

// credentialConfig writes oauth_client.json pointing its token endpoint at
// tokenURL, plus token.json when token is non-empty.
func credentialConfig(t *testing.T, tokenURL, token string) *config.Config {
	t.Helper()
	cfg := &config.Config{Dir: t.TempDir(), Settings: config.DefaultSettings()}
	client := fmt.Sprintf(`{"installed":{"client_id":"id","client_secret":"secret",`+
		`"redirect_uris":["http://localhost"],"auth_uri":"http://auth.test/auth","token_uri":%q}}`, tokenURL)
	require.NoError(t, os.WriteFile(cfg.OAuthClientPath(), []byte(client), 0600))
	if token != "" {
		require.NoError(t, os.WriteFile(cfg.TokenPath(), []byte(token), 0600))
	}
	return cfg
}

func tokenServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status == http.StatusOK {
			_, _ = w.Write([]byte(`{"access_token":"fresh","token_type":"Bearer","expires_in":3600}`))
			return
		}
		_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestSaveAndLoadToken(t *testing.T) {
	path := filepath.Join(t.TempDir(), config.TokenFile)
	want := &oauth2.Token{AccessToken: "a", RefreshToken: "r", TokenType: "Bearer"}

	require.NoError(t, SaveToken(path, want))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	got, err := LoadToken(path)
	require.NoError(t, err)
	assert.Equal(t, "a", got.AccessToken)
	assert.Equal(t, "r", got.RefreshToken)
}

func TestOAuthConfig_Invalid(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}
	_, err := OAuthConfig(cfg)
	assert.ErrorContains(t, err, "failed to read oauth_client.json")

	require.NoError(t, os.WriteFile(cfg.OAuthClientPath(), []byte(`{}`), 0600))
	_, err = OAuthConfig(cfg)
	assert.ErrorContains(t, err, "invalid oauth_client.json")
}

func TestCheckToken(t *testing.T) {
	ok := tokenServer(t, http.StatusOK)
	rejected := tokenServer(t, http.StatusBadRequest)
	expired := `{"access_token":"old","refresh_token":"r","token_type":"Bearer","expiry":"2020-01-01T00:00:00Z"}`

	tests := []struct {
		name     string
		tokenURL string
		token    string
		wantErr  string
	}{
		{"refreshable", ok.URL, expired, ""},
		{"rejected by endpoint", rejected.URL, expired, "token refresh failed"},
		{"no refresh token", ok.URL, `{"access_token":"old","token_type":"Bearer"}`, ErrNoRefreshToken.Error()},
		{"corrupt", ok.URL, `{not json`, "invalid token.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := credentialConfig(t, tt.tokenURL, tt.token)

			err := CheckToken(context.Background(), cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestNew_UsesStoredCredentials(t *testing.T) {
	cfg := credentialConfig(t, "http://token.test/token", `{"access_token":"a","refresh_token":"r","token_type":"Bearer"}`)
	cfg.Settings.GoogleList = "Groceries"

	c, err := New(context.Background(), cfg)
	require.NoError(t, err)
	assert.Equal(t, "Groceries", c.listName)

	require.NoError(t, os.Remove(cfg.TokenPath()))
	_, err = New(context.Background(), cfg)
	assert.ErrorContains(t, err, "failed to read token.json")
}
