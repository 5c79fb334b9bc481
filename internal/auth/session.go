package auth

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/singleflight"

	"github.com/MimeLyc/rask-sdk-go/pkg/log"
)

const (
	// DefaultTokenURL is the Rask identity provider's token endpoint.
	DefaultTokenURL = "https://rask-prod.auth.us-east-2.amazoncognito.com/oauth2/token"
)

// DefaultScopes are requested by every exchange unless configured otherwise.
var DefaultScopes = []string{"api/source", "api/input", "api/output", "api/limit"}

// Authenticator obtains a fresh token.
type Authenticator interface {
	Authenticate(ctx context.Context) error
}

// Config describes the client-credentials exchange.
type Config struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	Scopes       []string

	// HTTPClient performs the exchange; http.DefaultClient when nil.
	HTTPClient *http.Client

	// Timeout bounds one exchange when positive.
	Timeout time.Duration
}

// Session exchanges client credentials for tokens and saves them in a Store.
// Concurrent Authenticate calls share one exchange.
type Session struct {
	creds      *clientcredentials.Config
	httpClient *http.Client
	timeout    time.Duration
	store      *Store
	logger     *log.Logger
	group      singleflight.Group
}

// NewSession creates a session writing into store.
func NewSession(cfg Config, store *Store, logger *log.Logger) *Session {
	tokenURL := cfg.TokenURL
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = DefaultScopes
	}
	if logger == nil {
		logger = log.GetLogger()
	}

	return &Session{
		creds: &clientcredentials.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			TokenURL:     tokenURL,
			Scopes:       scopes,
			AuthStyle:    oauth2.AuthStyleInParams,
		},
		httpClient: cfg.HTTPClient,
		timeout:    cfg.Timeout,
		store:      store,
		logger:     logger,
	}
}

// Store returns the token store the session fills.
func (s *Session) Store() *Store {
	return s.store
}

// Authenticate runs the client-credentials exchange and replaces the stored
// token. Callers arriving while an exchange is in flight wait for it and
// share its result, which is tied to the first caller's context.
func (s *Session) Authenticate(ctx context.Context) error {
	_, err, shared := s.group.Do("token", func() (any, error) {
		return nil, s.exchange(ctx)
	})
	if shared {
		s.logger.Debug("Shared in-flight token exchange for client %s", s.creds.ClientID)
	}
	return err
}

func (s *Session) exchange(ctx context.Context) error {
	if s.httpClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	}
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	s.logger.Info("Authenticating client %s (state: %s)", s.creds.ClientID, s.store.State())

	tok, err := s.creds.Token(ctx)
	if err != nil {
		s.logger.Error("Token exchange for client %s failed: %v", s.creds.ClientID, err)
		return newError(err)
	}

	s.store.Save(fromOAuth2(tok, s.creds.Scopes))
	return nil
}
