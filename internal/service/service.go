// Package service implements the business logic layer for the tutor scheduling server.
// It handles login, token authentication, user registration and schedule queries.
package service

import (
	"errors"

	"git.sr.ht/~jakintosh/tutor/pkg/password"
	"git.sr.ht/~jakintosh/tutor/pkg/tokens"
	"go.uber.org/zap"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountNotFound    = errors.New("account not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternal           = errors.New("internal error")
	ErrHandleExists       = errors.New("username already exists")
	ErrInvalidInput       = errors.New("invalid input")
)

// Service coordinates authentication, registration, and schedule operations.
// It depends on storage interfaces (UserStore, ScheduleStore) and delegates
// to them for persistence.
type Service struct {
	userStore      UserStore
	scheduleStore  ScheduleStore
	tokenIssuer    tokens.Issuer
	tokenValidator tokens.Validator
	hasher         *password.Hasher
	log            *zap.Logger
}

func New(
	userStore UserStore,
	scheduleStore ScheduleStore,
	issuer tokens.Issuer,
	validator tokens.Validator,
	hasher *password.Hasher,
	log *zap.Logger,
) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{
		userStore:      userStore,
		scheduleStore:  scheduleStore,
		tokenIssuer:    issuer,
		tokenValidator: validator,
		hasher:         hasher,
		log:            log,
	}
}
