package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"git.sr.ht/~jakintosh/tutor/pkg/tokens"
	"go.uber.org/zap"
)

var (
	ErrNoToken  = errors.New("no token")
	ErrRequest  = errors.New("request failed")
	ErrResponse = errors.New("invalid response")
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code    int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("tutor: status %d", e.Code)
	}
	return fmt.Sprintf("tutor: status %d: %s", e.Code, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.Logger

	mu    sync.RWMutex
	token string
}

type Option func(*Client)

func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) { c.httpClient = httpClient }
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: http.DefaultClient,
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns the token stored by the last Login or SetToken.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) Login(
	ctx context.Context,
	username string,
	password string,
) (
	*LoginResponse,
	error,
) {
	req := LoginRequest{Username: username, Password: password}
	response := new(LoginResponse)
	if err := c.do(ctx, http.MethodPost, "/api/login", false, req, response); err != nil {
		return nil, err
	}
	if response.Token == "" {
		return nil, fmt.Errorf("%w: login returned no token", ErrResponse)
	}
	c.SetToken(response.Token)
	return response, nil
}

func (c *Client) Me(ctx context.Context) (tokens.Claims, error) {
	claims := tokens.Claims{}
	if err := c.do(ctx, http.MethodGet, "/api/me", true, nil, &claims); err != nil {
		return nil, err
	}
	return claims, nil
}

// Schedules lists studentID's schedule, or the caller's when it is empty.
func (c *Client) Schedules(
	ctx context.Context,
	studentID string,
) (
	[]ScheduleResponse,
	error,
) {
	path := "/api/schedules"
	if studentID != "" {
		path += "?studentId=" + url.QueryEscape(studentID)
	}
	var schedules []ScheduleResponse
	if err := c.do(ctx, http.MethodGet, path, true, nil, &schedules); err != nil {
		return nil, err
	}
	return schedules, nil
}

func (c *Client) Users(ctx context.Context) ([]UserResponse, error) {
	var users []UserResponse
	if err := c.do(ctx, http.MethodGet, "/api/admin/users", true, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *Client) CreateUser(
	ctx context.Context,
	req CreateUserRequest,
) (
	*UserResponse,
	error,
) {
	user := new(UserResponse)
	if err := c.do(ctx, http.MethodPost, "/api/admin/users", true, req, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (c *Client) do(
	ctx context.Context,
	method string,
	path string,
	authorized bool,
	body any,
	response any,
) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("%w: couldn't encode body: %v", ErrRequest, err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequest, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if authorized {
		token := c.Token()
		if token == "" {
			return ErrNoToken
		}
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.log.Debug("request", zap.String("method", method), zap.String("path", path))
	res, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRequest, err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		apiErr := ErrorResponse{}
		_ = json.NewDecoder(res.Body).Decode(&apiErr)
		return &StatusError{Code: res.StatusCode, Message: apiErr.Error}
	}

	if response == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(response); err != nil {
		c.log.Warn("couldn't decode response", zap.String("path", path), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrResponse, err)
	}
	return nil
}
