package rask

import (
	"fmt"
	"net/url"
	"time"

	"github.com/MimeLyc/rask-sdk-go/internal/auth"
)

const (
	// DefaultBaseURL is the Rask API base URL.
	DefaultBaseURL = "https://api.rask.ai"

	// DefaultTokenURL is the identity provider's token endpoint.
	DefaultTokenURL = auth.DefaultTokenURL

	// DefaultTimeout bounds ordinary requests.
	DefaultTimeout = 30 * time.Second

	// DefaultUploadTimeout bounds media and SRT uploads.
	DefaultUploadTimeout = 30 * time.Minute
)

// DefaultScopes returns the scopes requested when Config.Scopes is empty.
func DefaultScopes() []string {
	return append([]string(nil), auth.DefaultScopes...)
}

// Config holds the client configuration. Zero values fall back to the
// defaults above.
type Config struct {
	ClientID     string        `json:"client_id"`
	ClientSecret string        `json:"-"`
	BaseURL      string        `json:"base_url"`
	TokenURL     string        `json:"token_url"`
	Scopes       []string      `json:"scopes"`
	Timeout      time.Duration `json:"timeout"`

	// UploadTimeout bounds CreateMediaFile and CreateTranscriptionSRT, which
	// transfer large files.
	UploadTimeout time.Duration `json:"upload_timeout"`
}

// Validate checks required fields and fills defaults in place.
func (c *Config) Validate() error {
	if c.ClientID == "" {
		return fmt.Errorf("client id is required")
	}
	if c.ClientSecret == "" {
		return fmt.Errorf("client secret is required")
	}

	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if err := checkURL(c.BaseURL); err != nil {
		return fmt.Errorf("base url: %w", err)
	}
	if c.TokenURL == "" {
		c.TokenURL = DefaultTokenURL
	}
	if err := checkURL(c.TokenURL); err != nil {
		return fmt.Errorf("token url: %w", err)
	}

	if len(c.Scopes) == 0 {
		c.Scopes = DefaultScopes()
	}
	if c.Timeout < 0 || c.UploadTimeout < 0 {
		return fmt.Errorf("timeouts must not be negative")
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.UploadTimeout == 0 {
		c.UploadTimeout = DefaultUploadTimeout
	}
	return nil
}

func checkURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("missing host")
	}
	return nil
}
