// Package testutil provides test environment setup and utilities for internal package tests.
package testutil

import (
	"net/http"
	"testing"

	"git.sr.ht/~jakintosh/tutor/internal/api"
	"git.sr.ht/~jakintosh/tutor/internal/database"
	"git.sr.ht/~jakintosh/tutor/internal/service"
	"git.sr.ht/~jakintosh/tutor/pkg/password"
	"git.sr.ht/~jakintosh/tutor/pkg/tokens"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const TestSecret = "test secret"

// TestEnv provides all dependencies needed for testing
type TestEnv struct {
	DB             *database.SQLiteStore
	Service        *service.Service
	Router         http.Handler
	Tokens         *tokens.Server
	TokenIssuer    tokens.Issuer
	TokenValidator tokens.Validator
	Hasher         *password.Hasher
}

// SetupTestEnv creates an isolated test environment with in-memory SQLite
func SetupTestEnv(
	t *testing.T,
) *TestEnv {
	t.Helper()
	return SetupTestEnvWithHasher(t, password.SchemeSHA256)
}

// SetupTestEnvWithHasher is SetupTestEnv with a chosen password scheme.
// Bcrypt runs at its minimum cost.
func SetupTestEnvWithHasher(
	t *testing.T,
	scheme password.Scheme,
) *TestEnv {
	t.Helper()

	// create in-memory SQLite database
	db, err := database.NewSQLiteStore(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	// create token server
	server, err := tokens.NewServer([]byte(TestSecret))
	if err != nil {
		t.Fatalf("failed to create token server: %v", err)
	}

	hasher, err := password.NewHasher(scheme, bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to create hasher: %v", err)
	}

	// create service
	svc := service.New(
		db.UserStore(),
		db.ScheduleStore(),
		server,
		server,
		hasher,
		zap.NewNop(),
	)

	// setup cleanup
	t.Cleanup(func() {
		_ = db.Close()
	})

	return &TestEnv{
		DB:             db,
		Service:        svc,
		Tokens:         server,
		TokenIssuer:    server,
		TokenValidator: server,
		Hasher:         hasher,
	}
}

// SetupTestEnvWithRouter creates TestEnv and configures the API router
func SetupTestEnvWithRouter(
	t *testing.T,
) *TestEnv {
	t.Helper()
	env := SetupTestEnv(t)
	a := api.New(env.Service, zap.NewNop())
	env.Router = a.Router()
	return env
}

// RegisterTestUser creates a test user in the database
func (env *TestEnv) RegisterTestUser(
	t *testing.T,
	username string,
	password string,
	role string,
) *service.User {
	t.Helper()
	user, err := env.Service.Register("", username, password, role)
	if err != nil {
		t.Fatalf("failed to register test user: %v", err)
	}
	return user
}

// IssueTestToken creates a token carrying the user's id and role
func (env *TestEnv) IssueTestToken(
	t *testing.T,
	user *service.User,
) string {
	t.Helper()
	token, err := env.TokenIssuer.Issue(tokens.Claims{
		"id":   user.ID,
		"role": user.Role,
	})
	if err != nil {
		t.Fatalf("failed to issue test token: %v", err)
	}
	return token
}

// LoginTestUser registers a user and returns a bearer header for them
func (env *TestEnv) LoginTestUser(
	t *testing.T,
	username string,
	role string,
) (*service.User, Header) {
	t.Helper()
	user := env.RegisterTestUser(t, username, "password123", role)
	return user, Bearer(env.IssueTestToken(t, user))
}
