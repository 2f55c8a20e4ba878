// Package password hashes and verifies user passwords.
//
// Stored credentials are lowercase hex SHA-256 digests of the UTF-8
// password, unsalted. That format is kept so existing user rows keep
// working; it has no work factor and should not be chosen for new
// deployments. A Hasher configured with SchemeBcrypt writes bcrypt hashes
// instead, and verifies both formats so a store can be migrated in place.
package password

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"

	"git.sr.ht/~jakintosh/tutor/pkg/tokens"
	"golang.org/x/crypto/bcrypt"
)

type Scheme string

const (
	SchemeSHA256 Scheme = "sha256"
	SchemeBcrypt Scheme = "bcrypt"
)

var ErrUnknownScheme = errors.New("unknown password scheme")

// ParseScheme maps a configuration value to a Scheme. The empty string is
// SchemeSHA256.
func ParseScheme(s string) (Scheme, error) {
	switch Scheme(strings.ToLower(strings.TrimSpace(s))) {
	case "", SchemeSHA256:
		return SchemeSHA256, nil
	case SchemeBcrypt:
		return SchemeBcrypt, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownScheme, s)
	}
}

// Hash returns the lowercase hex SHA-256 digest of password.
func Hash(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Verify reports whether password hashes to storedHash.
func Verify(password string, storedHash string) bool {
	return tokens.Equal(
		[]byte(Hash(password)),
		[]byte(strings.ToLower(storedHash)),
	)
}

// Hasher produces hashes for one Scheme.
type Hasher struct {
	scheme Scheme
	cost   int

	dummyOnce sync.Once
	dummy     string
}

// NewHasher returns a Hasher for scheme. cost applies to bcrypt only; zero
// selects bcrypt.DefaultCost.
func NewHasher(
	scheme Scheme,
	cost int,
) (
	*Hasher,
	error,
) {
	switch scheme {
	case SchemeSHA256:
	case SchemeBcrypt:
		if cost == 0 {
			cost = bcrypt.DefaultCost
		}
		if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
			return nil, fmt.Errorf("bcrypt cost %d out of range", cost)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}
	return &Hasher{scheme: scheme, cost: cost}, nil
}

func (h *Hasher) Scheme() Scheme { return h.scheme }

func (h *Hasher) Hash(password string) (string, error) {
	switch h.scheme {
	case SchemeBcrypt:
		hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
		if err != nil {
			return "", fmt.Errorf("failed to hash password: %v", err)
		}
		return string(hash), nil
	default:
		return Hash(password), nil
	}
}

// Verify checks password against storedHash in whichever format it was
// written.
func (h *Hasher) Verify(password string, storedHash string) bool {
	if isBcrypt(storedHash) {
		return bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)) == nil
	}
	return Verify(password, storedHash)
}

// NeedsRehash reports whether storedHash is a SHA-256 digest that should be
// upgraded to bcrypt. A bcrypt hash never needs rehashing, whatever the
// configured scheme.
func (h *Hasher) NeedsRehash(storedHash string) bool {
	return h.scheme == SchemeBcrypt && !isBcrypt(storedHash)
}

// VerifyDummy runs the same comparison Verify would for a stored hash of the
// configured scheme, against a hash no password matches. Callers use it when
// there is no stored hash, so a missing account costs as much as a wrong
// password.
func (h *Hasher) VerifyDummy(password string) {
	h.dummyOnce.Do(func() {
		h.dummy = Hash(rand.Text())
		if h.scheme != SchemeBcrypt {
			return
		}
		if hash, err := bcrypt.GenerateFromPassword([]byte(rand.Text()), h.cost); err == nil {
			h.dummy = string(hash)
		}
	})
	_ = h.Verify(password, h.dummy)
}

func isBcrypt(hash string) bool {
	return strings.HasPrefix(hash, "$2a$") ||
		strings.HasPrefix(hash, "$2b$") ||
		strings.HasPrefix(hash, "$2y$")
}
