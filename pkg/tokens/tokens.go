package tokens

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

type validateError struct {
	context string
	err     error
}

func (t *validateError) Context() string {
	return t.context
}
func (t *validateError) Error() string {
	return fmt.Sprintf("%v", t.err)
}
func (t *validateError) Unwrap() error {
	return t.err
}

var (
	errTokenMalformed    = errors.New("token malformed")
	errTokenBadSignature = errors.New("token bad signature")
	errTokenDecode       = errors.New("token decode failure")
	errTokenExpired      = errors.New("token expired")
	errSecretMissing     = errors.New("token secret missing")
)

func ErrTokenMalformed() error    { return errTokenMalformed }
func ErrTokenBadSignature() error { return errTokenBadSignature }
func ErrTokenDecode() error       { return errTokenDecode }
func ErrTokenExpired() error      { return errTokenExpired }
func ErrSecretMissing() error     { return errSecretMissing }

// Context returns the diagnostic detail attached to a validation failure.
// It is meant for server logs only.
func Context(err error) string {
	var verr *validateError
	if errors.As(err, &verr) {
		return verr.Context()
	}
	return ""
}

type Issuer interface {
	Issue(Claims) (string, error)
}

type Validator interface {
	Verify(string) (Claims, error)
}

type JWTHeader struct {
	Algorithm string `json:"alg"`
	Type      string `json:"typ"`
}

func newHS256JWTHeader() JWTHeader {
	return JWTHeader{
		Algorithm: "HS256",
		Type:      "JWT",
	}
}

func buildMessage(encHeader string, encClaims string) string {
	return fmt.Sprintf("%s.%s", encHeader, encClaims)
}

func encodeJWTSection[T any](section T) (string, error) {
	sectionJSON, err := json.Marshal(section)
	if err != nil {
		return "", fmt.Errorf("json marshal failure: %v", err)
	}
	return EncodeSegment(sectionJSON), nil
}

func encodeMessage(claims Claims) (string, error) {
	encHeader, err := encodeJWTSection(newHS256JWTHeader())
	if err != nil {
		return "", fmt.Errorf("failed to encode header: %v", err)
	}
	encClaims, err := encodeJWTSection(claims)
	if err != nil {
		return "", fmt.Errorf("failed to encode claims: %v", err)
	}
	return buildMessage(encHeader, encClaims), nil
}

func decodeJWTSection[T any](str string, value *T) error {
	bytes, err := DecodeSegment(str)
	if err != nil {
		return fmt.Errorf("invalid base64 encoding: %v", err)
	}
	err = json.Unmarshal(bytes, value)
	if err != nil {
		return fmt.Errorf("not valid JSON: %v", err)
	}
	return nil
}

func validateStructure(tokenStr string) (
	header string,
	claims string,
	signature string,
	err error,
) {
	parts := strings.Split(tokenStr, ".")
	if len(parts) != 3 {
		err = fmt.Errorf("JWT expected three parts, found %d", len(parts))
		return
	}
	for i, part := range parts {
		if part == "" {
			err = fmt.Errorf("JWT part %d is empty", i)
			return
		}
	}
	header = parts[0]
	claims = parts[1]
	signature = parts[2]
	return
}

func verifySignature(
	encHeader string,
	encClaims string,
	encSignature string,
	secret []byte,
	signer Signer,
) *validateError {
	signature, err := DecodeSegment(encSignature)
	if err != nil {
		return &validateError{
			context: fmt.Sprintf("token signature malformed: %v", err),
			err:     errTokenDecode,
		}
	}

	expected, err := signer.Sign([]byte(buildMessage(encHeader, encClaims)), secret)
	if err != nil {
		return &validateError{
			context: fmt.Sprintf("failed to compute signature: %v", err),
			err:     errTokenBadSignature,
		}
	}

	if !Equal(signature, expected) {
		return &validateError{
			context: "token signature illegal: verification failed",
			err:     errTokenBadSignature,
		}
	}
	return nil
}

func decodeToken(
	tokenStr string,
	secret []byte,
	signer Signer,
	now time.Time,
) (
	Claims,
	*validateError,
) {
	encHeader, encClaims, encSignature, err := validateStructure(tokenStr)
	if err != nil {
		return nil, &validateError{
			context: fmt.Sprintf("token malformed: %v", err),
			err:     errTokenMalformed,
		}
	}

	if verr := verifySignature(encHeader, encClaims, encSignature, secret, signer); verr != nil {
		return nil, verr
	}

	var claims Claims
	if err := decodeJWTSection(encClaims, &claims); err != nil {
		return nil, &validateError{
			context: fmt.Sprintf("token claims malformed: %v", err),
			err:     errTokenDecode,
		}
	}
	if claims == nil {
		return nil, &validateError{
			context: "token claims malformed: payload is null",
			err:     errTokenDecode,
		}
	}

	expiration, err := claims.Expiration()
	if err != nil {
		return nil, &validateError{
			context: fmt.Sprintf("token claims malformed: %v", err),
			err:     errTokenDecode,
		}
	}
	if !now.Before(expiration) {
		return nil, &validateError{
			context: fmt.Sprintf("token expired at %s", expiration.UTC().Format(time.RFC3339)),
			err:     errTokenExpired,
		}
	}

	normalizeExpiration(claims)
	return claims, nil
}
