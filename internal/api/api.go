// Package api exposes the tutor service over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"git.sr.ht/~jakintosh/tutor/internal/service"
	"go.uber.org/zap"
)

type API struct {
	service *service.Service
	log     *zap.Logger
}

func New(
	svc *service.Service,
	log *zap.Logger,
) *API {
	if log == nil {
		log = zap.NewNop()
	}
	return &API{
		service: svc,
		log:     log.Named("api"),
	}
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func (a *API) decodeRequest(req any, w http.ResponseWriter, r *http.Request) bool {
	err := json.NewDecoder(r.Body).Decode(req)
	if err != nil {
		a.logApiErr(r, "bad json request", zap.Error(err))
		returnError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

func returnJson(data any, w http.ResponseWriter) {
	returnJsonStatus(http.StatusOK, data, w)
}

func returnJsonStatus(status int, data any, w http.ResponseWriter) {
	body, err := json.Marshal(data)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(body, '\n'))
}

func returnError(w http.ResponseWriter, status int, msg string) {
	returnJsonStatus(status, ErrorResponse{Error: msg}, w)
}

func (a *API) logApiErr(r *http.Request, msg string, fields ...zap.Field) {
	fields = append([]zap.Field{
		zap.String("method", r.Method),
		zap.String("uri", r.RequestURI),
		zap.String("request_id", requestID(r.Context())),
	}, fields...)
	a.log.Warn(msg, fields...)
}

// writeError maps service errors to status codes. Authentication failures
// share one body so callers can't tell which check rejected them.
func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		a.logApiErr(r, "invalid input", zap.Error(err))
		returnError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrAccountNotFound),
		errors.Is(err, service.ErrInvalidCredentials):
		a.logApiErr(r, "login rejected", zap.Error(err))
		returnError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, service.ErrUnauthorized):
		returnError(w, http.StatusUnauthorized, "Unauthorized")
	case errors.Is(err, service.ErrForbidden):
		a.logApiErr(r, "forbidden", zap.Error(err))
		returnError(w, http.StatusForbidden, "Forbidden")
	case errors.Is(err, service.ErrHandleExists):
		returnError(w, http.StatusConflict, "Username already exists")
	default:
		a.log.Error("request failed",
			zap.String("method", r.Method),
			zap.String("uri", r.RequestURI),
			zap.String("request_id", requestID(r.Context())),
			zap.Error(err),
		)
		returnError(w, http.StatusInternalServerError, "Internal server error")
	}
}
