// Package auth keeps the access token of one Rask client and recovers from
// missing or expired tokens.
package auth

import (
	"strings"
	"sync"
	"time"

	"golang.org/x/oauth2"
)

// expiryDelta treats a token as expired slightly before its real expiry so a
// request does not race the deadline. Short-lived tokens use at most half of
// their lifetime as margin.
const expiryDelta = 10 * time.Second

// Token is a bearer credential issued by the identity provider.
type Token struct {
	AccessToken string
	TokenType   string
	Expiry      time.Time
	Scopes      []string
}

// fromOAuth2 converts an exchanged token. The granted scopes come from the
// "scope" response field and fall back to the requested ones.
func fromOAuth2(t *oauth2.Token, requested []string) *Token {
	scopes := requested
	if granted, ok := t.Extra("scope").(string); ok && granted != "" {
		scopes = strings.Fields(granted)
	}
	return &Token{
		AccessToken: t.AccessToken,
		TokenType:   t.Type(),
		Expiry:      t.Expiry,
		Scopes:      append([]string(nil), scopes...),
	}
}

// State is the authentication state of a Store.
type State int

const (
	Unauthenticated State = iota
	Authenticated
	Expired
)

func (s State) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Authenticated:
		return "authenticated"
	case Expired:
		return "expired"
	default:
		return "unknown"
	}
}

// Store holds the current token of one client. It is safe for concurrent use.
// Tokens are replaced wholesale, never modified in place.
type Store struct {
	mu       sync.RWMutex
	token    *Token
	rejected bool
	margin   time.Duration
	now      func() time.Time
}

// NewStore returns an empty, unauthenticated store.
func NewStore() *Store {
	return &Store{now: time.Now}
}

// Load returns the current token. It fails with a token signal when no token
// was stored yet, or when the stored one expired or was rejected.
func (s *Store) Load() (*Token, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	switch s.stateLocked() {
	case Unauthenticated:
		return nil, ErrTokenMissing
	case Expired:
		return nil, ErrTokenExpired
	}
	return s.token, nil
}

// Save replaces the stored token.
func (s *Store) Save(t *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = t
	s.rejected = false
	s.margin = expiryDelta
	if t != nil && !t.Expiry.IsZero() {
		if half := t.Expiry.Sub(s.now()) / 2; half < s.margin {
			s.margin = max(half, 0)
		}
	}
}

// Reject marks the token as expired after the server refused it. A token
// saved in the meantime is left alone.
func (s *Store) Reject(t *Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.token == t {
		s.rejected = true
	}
}

// State reports the store's state; expiry is derived when asked.
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stateLocked()
}

func (s *Store) stateLocked() State {
	if s.token == nil {
		return Unauthenticated
	}
	if s.rejected {
		return Expired
	}
	if !s.token.Expiry.IsZero() && !s.now().Add(s.margin).Before(s.token.Expiry) {
		return Expired
	}
	return Authenticated
}
