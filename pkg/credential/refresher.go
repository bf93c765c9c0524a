package credential

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/eventsync-labs/agent/pkg/httpapi"
	"github.com/robfig/cron/v3"
)

// RefresherConfig configures the daily token refresh.
type RefresherConfig struct {
	// AuthBaseURL is the OAuth issuer, e.g. https://auth.accounts.poap.xyz.
	AuthBaseURL string `yaml:"authBaseUrl"`
	// Audience identifies the API the token is minted for.
	Audience string `yaml:"audience"`
	// EnvFile is the persisted credential file rewritten on success.
	EnvFile string `yaml:"envFile"`
	// Schedule is a cron expression; defaults to 03:00 daily.
	Schedule string `yaml:"schedule"`
}

func (c RefresherConfig) withDefaults() RefresherConfig {
	if c.Audience == "" {
		c.Audience = "https://api.poap.tech"
	}
	if c.Schedule == "" {
		c.Schedule = "0 3 * * *"
	}
	return c
}

// Refresher exchanges the POAP client id/secret for a fresh bearer
// token once per scheduled run. A failed run is logged and skipped;
// handlers keep using the previous token until the next cycle.
type Refresher struct {
	cfg    RefresherConfig
	client *httpapi.Client
	source Source
	logger *slog.Logger
}

func NewRefresher(cfg RefresherConfig, source Source, logger *slog.Logger, opts ...httpapi.Option) *Refresher {
	cfg = cfg.withDefaults()
	return &Refresher{
		cfg:    cfg,
		client: httpapi.New(cfg.AuthBaseURL, opts...),
		source: source,
		logger: logger,
	}
}

// Start schedules the refresh job. The returned cron owns the timer
// goroutine; stop it to halt refreshes.
func (r *Refresher) Start() (*cron.Cron, error) {
	c := cron.New()
	_, err := c.AddFunc(r.cfg.Schedule, func() {
		if err := r.Run(context.Background()); err != nil {
			r.logger.Error("credential refresh failed, keeping previous token", "error", err)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("scheduling credential refresh: %w", err)
	}
	c.Start()
	return c, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Run performs one refresh cycle: fetch a token, rewrite the persisted
// credential file, update the process environment. On any error the
// file and environment are left untouched.
func (r *Refresher) Run(ctx context.Context) error {
	clientID := r.source.Lookup(POAPClientID)
	clientSecret := r.source.Lookup(POAPClientSecret)
	if clientID == "" || clientSecret == "" {
		return fmt.Errorf("missing %s or %s", POAPClientID, POAPClientSecret)
	}

	r.logger.Info("refreshing POAP access token")

	result, err := r.client.Do(ctx, httpapi.Request{
		Method: "POST",
		Path:   "/oauth/token",
		Body: map[string]string{
			"audience":      r.cfg.Audience,
			"grant_type":    "client_credentials",
			"client_id":     clientID,
			"client_secret": clientSecret,
		},
	})
	if err != nil {
		return err
	}
	if !result.OK() {
		return fmt.Errorf("oauth token endpoint returned %d: %s", result.StatusCode, result.Body)
	}

	var tok tokenResponse
	if err := result.Decode(&tok); err != nil {
		return fmt.Errorf("decoding token response: %w", err)
	}
	if tok.AccessToken == "" {
		return fmt.Errorf("token response missing access_token")
	}

	if r.cfg.EnvFile != "" {
		if err := SetEnvFileVar(r.cfg.EnvFile, POAPAccessToken, tok.AccessToken); err != nil {
			return err
		}
	}

	if err := os.Setenv(POAPAccessToken, tok.AccessToken); err != nil {
		return fmt.Errorf("updating process environment: %w", err)
	}

	r.logger.Info("POAP access token refreshed")
	return nil
}
