package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"tasktable/internal/backend/googletasks"
	"tasktable/internal/config"
	"tasktable/internal/exitcode"
	"tasktable/internal/logging"
	"tasktable/internal/task"
)

const (
	callbackTimeout  = 5 * time.Minute
	exchangeTimeout  = 30 * time.Second
	callbackPort     = 8085
	callbackAttempts = 5
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command.
// The token it stores is only used by the google source.
type LoginCmd struct{}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return nil }
func (c *LoginCmd) Synopsis() string  { return "Authenticate with Google for the google source" }
func (c *LoginCmd) Usage() string     { return "tasktable login [common flags]" }
func (c *LoginCmd) NeedsSource() bool { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, src task.Source, args []string, out, errOut io.Writer) int {
	log := logging.From(ctx)

	if !cfg.HasOAuthClient() {
		printOAuthSetup(cfg, errOut)
		return exitcode.ConfigError
	}

	if cfg.HasToken() {
		err := googletasks.CheckToken(ctx, cfg)
		if err == nil {
			if !cfg.Quiet {
				fmt.Fprintln(out, "already logged in")
			}
			return exitcode.Success
		}
		log.Debug("stored token unusable, logging in again", "err", err)
	}

	oauthConfig, err := googletasks.OAuthConfig(cfg)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.ConfigError
	}

	token, err := authorize(ctx, oauthConfig, errOut)
	if err != nil {
		fmt.Fprintf(errOut, "error: %v\n", err)
		return exitcode.ConfigError
	}

	if err := cfg.EnsureDir(); err != nil {
		fmt.Fprintf(errOut, "error: failed to create config directory: %v\n", err)
		return exitcode.ConfigError
	}
	if err := googletasks.SaveToken(cfg.TokenPath(), token); err != nil {
		fmt.Fprintf(errOut, "error: failed to save token: %v\n", err)
		return exitcode.ConfigError
	}

	log.Debug("token saved", "path", cfg.TokenPath())
	if !cfg.Quiet {
		fmt.Fprintln(out, "ok")
		if cfg.Settings.Source != config.SourceGoogle {
			fmt.Fprintln(out, "set source: google in config.yaml (or pass --source google) to load your Google Tasks")
		}
	}
	return exitcode.Success
}

// authorize runs the browser consent flow with PKCE and returns the
// exchanged token. The consent URL is printed to errOut.
func authorize(ctx context.Context, oc *oauth2.Config, errOut io.Writer) (*oauth2.Token, error) {
	cb, err := listenCallback()
	if err != nil {
		return nil, err
	}
	defer cb.close()

	oc.RedirectURL = cb.url
	verifier := oauth2.GenerateVerifier()
	authURL := oc.AuthCodeURL("state", oauth2.AccessTypeOffline, oauth2.S256ChallengeOption(verifier))

	fmt.Fprintln(errOut, "Open this URL in your browser:")
	fmt.Fprintln(errOut, authURL)

	code, err := cb.wait(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, exchangeTimeout)
	defer cancel()
	token, err := oc.Exchange(ctx, code, oauth2.VerifierOption(verifier))
	if err != nil {
		return nil, fmt.Errorf("failed to exchange code for token: %w", err)
	}
	return token, nil
}

// callback is the local redirect target of the consent flow.
type callback struct {
	url    string
	server *http.Server
	codes  chan string
	errs   chan error
}

// listenCallback serves /callback on the first free port from callbackPort.
func listenCallback() (*callback, error) {
	var ln net.Listener
	var err error
	port := callbackPort
	for i := 0; i < callbackAttempts; i++ {
		port = callbackPort + i
		ln, err = net.Listen("tcp", fmt.Sprintf("localhost:%d", port))
		if err == nil {
			break
		}
	}
	if err != nil {
		return nil, errors.New("could not bind to local port for OAuth callback")
	}

	cb := &callback{
		url:   fmt.Sprintf("http://localhost:%d/callback", port),
		codes: make(chan string, 1),
		errs:  make(chan error, 1),
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/callback", cb.handle)
	cb.server = &http.Server{Handler: mux}

	go func() {
		if err := cb.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			cb.fail(err)
		}
	}()
	return cb, nil
}

func (cb *callback) handle(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		http.Error(w, "No code in callback", http.StatusBadRequest)
		cb.fail(errors.New("no code in callback"))
		return
	}
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, "<html><body><h1>tasktable is authorized</h1><p>You may close this window.</p></body></html>")
	select {
	case cb.codes <- code:
	default:
	}
}

func (cb *callback) fail(err error) {
	select {
	case cb.errs <- err:
	default:
	}
}

// wait blocks until the browser delivers a code, the flow fails, or ctx ends.
func (cb *callback) wait(ctx context.Context) (string, error) {
	select {
	case code := <-cb.codes:
		return code, nil
	case err := <-cb.errs:
		return "", err
	case <-time.After(callbackTimeout):
		return "", errors.New("oauth callback timed out")
	case <-ctx.Done():
		return "", errors.New("cancelled")
	}
}

func (cb *callback) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = cb.server.Shutdown(ctx)
}

// printOAuthSetup explains how to obtain oauth_client.json.
func printOAuthSetup(cfg *config.Config, errOut io.Writer) {
	fmt.Fprintf(errOut, "error: %s not found in %s\n\n", config.OAuthClientFile, cfg.Dir)
	fmt.Fprintln(errOut, "The google source needs OAuth credentials:")
	fmt.Fprintln(errOut, "")
	fmt.Fprintln(errOut, "1. Go to https://console.cloud.google.com/apis/credentials")
	fmt.Fprintln(errOut, "2. Enable the Google Tasks API for your project:")
	fmt.Fprintln(errOut, "   https://console.cloud.google.com/apis/library/tasks.googleapis.com")
	fmt.Fprintln(errOut, "3. Create an OAuth client ID of type 'Desktop app' and download the JSON")
	fmt.Fprintf(errOut, "4. Save it as %s\n", cfg.OAuthClientPath())
	fmt.Fprintln(errOut, "")
	fmt.Fprintln(errOut, "Then run 'tasktable login' again.")
}
