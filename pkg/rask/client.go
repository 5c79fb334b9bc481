package rask

import (
	"context"
	"fmt"
	"net/http"

	"github.com/MimeLyc/rask-sdk-go/internal/auth"
	"github.com/MimeLyc/rask-sdk-go/pkg/log"
)

// Client is the Rask API client. It is safe for concurrent use; all calls
// share one access token.
type Client struct {
	config     *Config
	httpClient *http.Client
	logger     *log.Logger
	store      *auth.Store
	session    *auth.Session
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for API and token requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithLogger sets the logger; the global logger is used otherwise.
func WithLogger(l *log.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient creates a client. The first request authenticates on demand;
// call Authenticate to fetch a token eagerly.
//
// Example:
//
//	client, err := rask.NewClient(&rask.Config{
//		ClientID:     "id",
//		ClientSecret: "secret",
//	}, rask.WithLogger(log.NewLogger(log.LevelDebug)))
func NewClient(config *Config, opts ...Option) (*Client, error) {
	if config == nil {
		return nil, fmt.Errorf("invalid configuration: config is nil")
	}
	cfg := *config
	cfg.Scopes = append([]string(nil), config.Scopes...)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	c := &Client{config: &cfg}
	for _, opt := range opts {
		opt(c)
	}
	if c.httpClient == nil {
		// Per-call deadlines come from the context, see Config.Timeout.
		c.httpClient = &http.Client{}
	}
	if c.logger == nil {
		c.logger = log.GetLogger()
	}

	c.store = auth.NewStore()
	c.session = auth.NewSession(auth.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     cfg.TokenURL,
		Scopes:       cfg.Scopes,
		HTTPClient:   c.httpClient,
		Timeout:      cfg.Timeout,
	}, c.store, c.logger)

	return c, nil
}

// Authenticate fetches a new access token, replacing the current one.
// A rejected exchange returns *AuthenticationError.
func (c *Client) Authenticate(ctx context.Context) error {
	return c.session.Authenticate(ctx)
}

// Authenticated reports whether the client holds an unexpired token.
func (c *Client) Authenticated() bool {
	return c.store.State() == auth.Authenticated
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.config.BaseURL
}
