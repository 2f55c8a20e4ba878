// Package tutortest mints tutor session tokens for tests of services that
// verify them.
package tutortest

import (
	"net/http"
	"time"

	"git.sr.ht/~jakintosh/tutor/pkg/tokens"
)

// Session holds a minted token and the claims it carries.
type Session struct {
	Token     string
	ID        string
	Role      string
	ExpiresAt time.Time
}

// NewServer returns a token server for secret whose clock is fixed at now.
func NewServer(secret string, now time.Time) (*tokens.Server, error) {
	return tokens.NewServer(
		[]byte(secret),
		tokens.WithClock(func() time.Time { return now }),
	)
}

// NewSession mints a token for id and role, valid for the default lifetime.
func NewSession(secret string, id string, role string) (*Session, error) {
	return newSession(secret, id, role, time.Now())
}

// NewExpiredSession mints a token that expired an hour ago.
func NewExpiredSession(secret string, id string, role string) (*Session, error) {
	return newSession(secret, id, role, time.Now().Add(-tokens.DefaultLifetime-time.Hour))
}

func newSession(secret, id, role string, issuedAt time.Time) (*Session, error) {
	server, err := NewServer(secret, issuedAt)
	if err != nil {
		return nil, err
	}
	token, err := server.Issue(tokens.Claims{
		"id":   id,
		"role": role,
	})
	if err != nil {
		return nil, err
	}
	return &Session{
		Token:     token,
		ID:        id,
		Role:      role,
		ExpiresAt: issuedAt.Add(tokens.DefaultLifetime),
	}, nil
}

// Authorize sets the session as the request's bearer token.
func Authorize(r *http.Request, sess *Session) {
	r.Header.Set("Authorization", "Bearer "+sess.Token)
}

// Validator returns a validator for tokens signed with secret.
func Validator(secret string) (tokens.Validator, error) {
	server, err := tokens.NewServer([]byte(secret))
	if err != nil {
		return nil, err
	}
	return server, nil
}
