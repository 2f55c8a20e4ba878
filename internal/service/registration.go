package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

func validRole(role string) bool {
	switch role {
	case RoleAdmin, RoleTeacher, RoleStudent:
		return true
	}
	return false
}

// Register creates a user account, hashing the password under the
// configured scheme.
func (s *Service) Register(
	name string,
	username string,
	secret string,
	role string,
) (
	*User,
	error,
) {
	username = strings.TrimSpace(username)
	if username == "" || secret == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}
	if role == "" {
		role = RoleStudent
	}
	if !validRole(role) {
		return nil, fmt.Errorf("%w: unknown role %q", ErrInvalidInput, role)
	}
	if name == "" {
		name = username
	}

	hash, err := s.hasher.Hash(secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	user := &User{
		ID:           uuid.NewString(),
		Name:         name,
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	}
	if err := s.userStore.InsertUser(user); err != nil {
		if errors.Is(err, ErrHandleExists) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: failed to insert user: %v", ErrInternal, err)
	}

	return user, nil
}

// Users lists every account. Only admins may call it.
func (s *Service) Users(caller *Identity) ([]User, error) {
	if !caller.IsAdmin() {
		return nil, ErrForbidden
	}
	users, err := s.userStore.ListUsers()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list users: %v", ErrInternal, err)
	}
	return users, nil
}
