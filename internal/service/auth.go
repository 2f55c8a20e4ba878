package service

import (
	"database/sql"
	"errors"
	"fmt"

	"git.sr.ht/~jakintosh/tutor/pkg/tokens"
	"go.uber.org/zap"
)

// Identity is the authenticated caller of a request, read from a verified
// token.
type Identity struct {
	ID     string
	Role   string
	Claims tokens.Claims
}

func (i *Identity) IsAdmin() bool {
	return i != nil && i.Role == RoleAdmin
}

func (s *Service) Login(
	username string,
	secret string,
) (
	string,
	*User,
	error,
) {
	if username == "" || secret == "" {
		return "", nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	user, err := s.authenticate(username, secret)
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokenIssuer.Issue(tokens.Claims{
		"id":   user.ID,
		"role": user.Role,
	})
	if err != nil {
		return "", nil, fmt.Errorf("%w: failed to issue token: %v", ErrInternal, err)
	}

	s.log.Info("login", zap.String("user_id", user.ID), zap.String("role", user.Role))
	return token, user, nil
}

func (s *Service) authenticate(
	username string,
	secret string,
) (
	*User,
	error,
) {
	user, err := s.userStore.GetUser(username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.hasher.VerifyDummy(secret)
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, username)
		}
		return nil, fmt.Errorf("%w: failed to retrieve user: %v", ErrInternal, err)
	}

	if !s.hasher.Verify(secret, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	if s.hasher.NeedsRehash(user.PasswordHash) {
		s.rehash(user, secret)
	}

	return user, nil
}

// rehash rewrites a stored hash under the configured scheme. Failure only
// delays the migration, so it is logged rather than returned.
func (s *Service) rehash(user *User, secret string) {
	hash, err := s.hasher.Hash(secret)
	if err != nil {
		s.log.Warn("password rehash failed", zap.String("user_id", user.ID), zap.Error(err))
		return
	}
	if err := s.userStore.UpdatePasswordHash(user.ID, hash); err != nil {
		s.log.Warn("password rehash not stored", zap.String("user_id", user.ID), zap.Error(err))
		return
	}
	user.PasswordHash = hash
	s.log.Info("password rehashed", zap.String("user_id", user.ID), zap.String("scheme", string(s.hasher.Scheme())))
}

// Authenticate verifies a bearer token. Every failure wraps ErrUnauthorized;
// the specific reason is only logged.
func (s *Service) Authenticate(
	token string,
) (
	*Identity,
	error,
) {
	claims, err := s.tokenValidator.Verify(token)
	if err != nil {
		s.log.Debug("token rejected",
			zap.Error(err),
			zap.String("detail", tokens.Context(err)),
		)
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	id := claims.String("id")
	if id == "" {
		s.log.Debug("token rejected", zap.String("detail", "missing id claim"))
		return nil, fmt.Errorf("%w: missing id claim", ErrUnauthorized)
	}

	return &Identity{
		ID:     id,
		Role:   claims.String("role"),
		Claims: claims,
	}, nil
}
