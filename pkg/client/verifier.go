package client

import (
	"net/http"
	"strings"

	"git.sr.ht/~jakintosh/tutor/pkg/tokens"
)

// Verifier validates authorization from HTTP requests.
type Verifier interface {
	VerifyAuthorization(r *http.Request) (tokens.Claims, error)
}

// BearerVerifier checks the Authorization header against a tokens.Validator.
type BearerVerifier struct {
	validator tokens.Validator
}

var _ Verifier = (*BearerVerifier)(nil)

func NewBearerVerifier(validator tokens.Validator) *BearerVerifier {
	return &BearerVerifier{validator: validator}
}

// VerifyAuthorization returns the verified claims of the request's bearer
// token. The error is ErrNoToken when there is none, otherwise one of the
// tokens package errors.
func (v *BearerVerifier) VerifyAuthorization(r *http.Request) (tokens.Claims, error) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || token == "" {
		return nil, ErrNoToken
	}
	return v.validator.Verify(token)
}
