package tokens

import (
	"fmt"
	"time"
)

// DefaultLifetime is how long an issued token stays valid.
const DefaultLifetime = 24 * time.Hour

// Server implements both Issuer and Validator with a single shared secret.
// It is read-only after construction and safe for concurrent use. Create a
// Server with NewServer.
type Server struct {
	secret   []byte
	signer   Signer
	now      func() time.Time
	lifetime time.Duration
}

type Option func(*Server)

// WithSigner replaces the default HMACSigner.
func WithSigner(signer Signer) Option {
	return func(s *Server) { s.signer = signer }
}

// WithClock replaces time.Now, for issuing and verifying against a fixed time.
func WithClock(now func() time.Time) Option {
	return func(s *Server) { s.now = now }
}

// WithLifetime replaces DefaultLifetime. Non-positive values are ignored.
func WithLifetime(lifetime time.Duration) Option {
	return func(s *Server) {
		if lifetime > 0 {
			s.lifetime = lifetime
		}
	}
}

func NewServer(
	secret []byte,
	opts ...Option,
) (
	*Server,
	error,
) {
	if len(secret) == 0 {
		return nil, errSecretMissing
	}
	server := &Server{
		secret:   append([]byte(nil), secret...),
		signer:   HMACSigner{},
		now:      time.Now,
		lifetime: DefaultLifetime,
	}
	for _, opt := range opts {
		opt(server)
	}
	return server, nil
}

//
// Issuer interface

// Issue encodes and signs claims. The "exp" claim is always set to the
// current time plus the server lifetime, replacing any caller value.
func (server *Server) Issue(claims Claims) (string, error) {
	payload := claims.clone()
	payload[claimExpiration] = server.now().Add(server.lifetime).Unix()

	message, err := encodeMessage(payload)
	if err != nil {
		return "", err
	}

	signature, err := server.signer.Sign([]byte(message), server.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign message: %v", err)
	}

	return fmt.Sprintf("%s.%s", message, EncodeSegment(signature)), nil
}

//
// Validator interface

// Verify authenticates tokenStr and returns its claims. The returned error
// matches one of ErrTokenMalformed, ErrTokenBadSignature, ErrTokenDecode or
// ErrTokenExpired under errors.Is.
func (server *Server) Verify(tokenStr string) (Claims, error) {
	claims, verr := decodeToken(tokenStr, server.secret, server.signer, server.now())
	if verr != nil {
		return nil, verr
	}
	return claims, nil
}

// Issue signs claims with secret using a default Server.
func Issue(claims Claims, secret []byte) (string, error) {
	server, err := NewServer(secret)
	if err != nil {
		return "", err
	}
	return server.Issue(claims)
}

// Verify validates token against secret using a default Server.
func Verify(token string, secret []byte) (Claims, error) {
	server, err := NewServer(secret)
	if err != nil {
		return nil, err
	}
	return server.Verify(token)
}
