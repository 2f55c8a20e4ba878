package tokens_test

import (
	"bytes"
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"git.sr.ht/~jakintosh/tutor/pkg/tokens"
)

func TestSegment_RoundTripRandom(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(1, 2))

	// 1000 random payloads of length 0-256
	for i := 0; i < 1000; i++ {
		b := make([]byte, rng.IntN(257))
		for j := range b {
			b[j] = byte(rng.UintN(256))
		}

		encoded := tokens.EncodeSegment(b)
		decoded, err := tokens.DecodeSegment(encoded)
		if err != nil {
			t.Fatalf("DecodeSegment(%q) failed: %v", encoded, err)
		}
		if !bytes.Equal(decoded, b) {
			t.Fatalf("round trip mismatch for %x: got %x", b, decoded)
		}
	}
}

func TestSegment_RoundTripEdgeCases(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input []byte
	}{
		{"empty", []byte{}},
		{"single null", []byte{0}},
		{"embedded nulls", []byte{'a', 0, 0, 'b'}},
		{"high bits", []byte{0xff, 0xfe, 0xfb, 0x80}},
		{"one byte", []byte{0x3e}},
		{"two bytes", []byte{0x3e, 0x3f}},
		{"three bytes", []byte{0xfb, 0xff, 0xbf}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decoded, err := tokens.DecodeSegment(tokens.EncodeSegment(tt.input))
			if err != nil {
				t.Fatalf("DecodeSegment failed: %v", err)
			}
			if !bytes.Equal(decoded, tt.input) {
				t.Errorf("got %x, want %x", decoded, tt.input)
			}
		})
	}
}

func TestEncodeSegment_Alphabet(t *testing.T) {
	t.Parallel()

	// bytes that produce '+' and '/' in standard Base64
	encoded := tokens.EncodeSegment([]byte{0xfb, 0xff, 0xbf, 0xfe})
	if strings.ContainsAny(encoded, "+/=") {
		t.Errorf("encoded %q contains standard alphabet or padding", encoded)
	}
	if !strings.ContainsAny(encoded, "-_") {
		t.Errorf("encoded %q should use url-safe substitutes", encoded)
	}
}

func TestDecodeSegment_AcceptsPadding(t *testing.T) {
	t.Parallel()

	// padded and unpadded forms decode the same
	unpadded, err := tokens.DecodeSegment("YQ")
	if err != nil {
		t.Fatalf("unpadded decode failed: %v", err)
	}
	padded, err := tokens.DecodeSegment("YQ==")
	if err != nil {
		t.Fatalf("padded decode failed: %v", err)
	}
	if string(unpadded) != "a" || string(padded) != "a" {
		t.Errorf("got %q and %q, want \"a\"", unpadded, padded)
	}

	single, err := tokens.DecodeSegment("QUI=")
	if err != nil {
		t.Fatalf("single pad decode failed: %v", err)
	}
	if string(single) != "AB" {
		t.Errorf("got %q, want \"AB\"", single)
	}
}

func TestDecodeSegment_Invalid(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input string
	}{
		{"standard plus", "ab+c"},
		{"standard slash", "ab/c"},
		{"whitespace", "ab c"},
		{"newline", "ab\ncd"},
		{"dot", "ab.c"},
		{"impossible length", "abcde"},
		{"too much padding", "YQ==="},
		{"short padding", "QQ="},
		{"padding after full quantum", "QUJD="},
		{"padding after two full quanta", "QUJDQUJD=="},
		{"padding in middle", "Y=Q="},
		{"non-zero trailing bits", "YR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tokens.DecodeSegment(tt.input)
			if !errors.Is(err, tokens.ErrTokenDecode()) {
				t.Errorf("expected ErrTokenDecode, got %v", err)
			}
		})
	}
}
