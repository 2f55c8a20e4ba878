package api

import (
	"context"
	"net/http"
	"strings"
	"time"

	"git.sr.ht/~jakintosh/tutor/internal/service"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type contextKey int

const (
	identityKey contextKey = iota
	requestIDKey
)

const RequestIDHeader = "X-Request-Id"

func identity(ctx context.Context) *service.Identity {
	id, _ := ctx.Value(identityKey).(*service.Identity)
	return id
}

func requestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(status int) {
	s.status = status
	s.ResponseWriter.WriteHeader(status)
}

// withRequestLog tags the request with an id and logs it once it completes.
// An incoming X-Request-Id is kept if it is a uuid.
func (a *API) withRequestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set(RequestIDHeader, id)

		ctx := context.WithValue(r.Context(), requestIDKey, id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()

		next.ServeHTTP(rec, r.WithContext(ctx))

		a.log.Info("request",
			zap.String("request_id", id),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

// withAuth requires a valid bearer token and stores the caller's identity
// in the request context.
func (a *API) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			returnError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		caller, err := a.service.Authenticate(token)
		if err != nil {
			a.writeError(w, r, err)
			return
		}

		ctx := context.WithValue(r.Context(), identityKey, caller)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (a *API) withAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !identity(r.Context()).IsAdmin() {
			a.writeError(w, r, service.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}
