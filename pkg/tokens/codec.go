package tokens

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// EncodeSegment encodes b as unpadded Base64url.
func EncodeSegment(b []byte) string {
	return base64.RawURLEncoding.EncodeToString(b)
}

// DecodeSegment decodes a Base64url string, with or without trailing
// padding. Padding, when present, must complete the final quantum. It fails
// with ErrTokenDecode on characters outside the Base64url alphabet, on
// impossible lengths, and on non-zero trailing bits.
func DecodeSegment(s string) ([]byte, error) {
	trimmed := strings.TrimRight(s, "=")
	if pad := len(s) - len(trimmed); pad > 2 {
		return nil, fmt.Errorf("%w: too much padding", errTokenDecode)
	} else if pad > 0 && len(s)%4 != 0 {
		return nil, fmt.Errorf("%w: incomplete padding", errTokenDecode)
	}
	for i := 0; i < len(trimmed); i++ {
		if !isURLAlphabet(trimmed[i]) {
			return nil, fmt.Errorf("%w: illegal character %q at offset %d", errTokenDecode, trimmed[i], i)
		}
	}
	if len(trimmed)%4 == 1 {
		return nil, fmt.Errorf("%w: impossible length %d", errTokenDecode, len(trimmed))
	}

	padded := trimmed + strings.Repeat("=", (4-len(trimmed)%4)%4)
	b, err := base64.URLEncoding.Strict().DecodeString(padded)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errTokenDecode, err)
	}
	return b, nil
}

func isURLAlphabet(c byte) bool {
	switch {
	case c >= 'A' && c <= 'Z':
		return true
	case c >= 'a' && c <= 'z':
		return true
	case c >= '0' && c <= '9':
		return true
	case c == '-' || c == '_':
		return true
	}
	return false
}
