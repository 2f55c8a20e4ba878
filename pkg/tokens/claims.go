package tokens

import (
	"encoding/json"
	"fmt"
	"math"
	"time"
)

const claimExpiration = "exp"

// Claims is the JSON object carried in a token payload.
type Claims map[string]any

// String returns the claim under key if it is a string, or "".
func (c Claims) String(key string) string {
	if s, ok := c[key].(string); ok {
		return s
	}
	return ""
}

// Expiration returns the "exp" claim as a time.
func (c Claims) Expiration() (time.Time, error) {
	return expirationOf(c[claimExpiration])
}

func (c Claims) clone() Claims {
	out := make(Claims, len(c)+1)
	for k, v := range c {
		out[k] = v
	}
	return out
}

func expirationOf(v any) (time.Time, error) {
	switch exp := v.(type) {
	case int64:
		return time.Unix(exp, 0), nil
	case int:
		return time.Unix(int64(exp), 0), nil
	case float64:
		if math.IsNaN(exp) || math.IsInf(exp, 0) {
			return time.Time{}, fmt.Errorf("exp is not finite")
		}
		sec, frac := math.Modf(exp)
		return time.Unix(int64(sec), int64(frac*1e9)), nil
	case json.Number:
		if i, err := exp.Int64(); err == nil {
			return time.Unix(i, 0), nil
		}
		f, err := exp.Float64()
		if err != nil {
			return time.Time{}, fmt.Errorf("exp is not numeric: %v", err)
		}
		return expirationOf(f)
	case nil:
		return time.Time{}, fmt.Errorf("exp missing")
	default:
		return time.Time{}, fmt.Errorf("exp has type %T", v)
	}
}

// normalizeExpiration rewrites an integral float "exp" decoded from JSON as
// int64, so verified claims carry the same value Issue wrote.
func normalizeExpiration(c Claims) {
	if f, ok := c[claimExpiration].(float64); ok && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		c[claimExpiration] = int64(f)
	}
}
