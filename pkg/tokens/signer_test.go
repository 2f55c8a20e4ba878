package tokens_test

import (
	"bytes"
	"encoding/hex"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"

	"git.sr.ht/~jakintosh/tutor/pkg/tokens"
)

// RFC 4231 HMAC-SHA-256 test vectors
var rfc4231 = []struct {
	name string
	key  []byte
	data []byte
	mac  string
}{
	{
		"case 1",
		bytes.Repeat([]byte{0x0b}, 20),
		[]byte("Hi There"),
		"b0344c61d8db38535ca8afceaf0bf12b881dc200c9833da726e9376c2e32cff7",
	},
	{
		"case 2",
		[]byte("Jefe"),
		[]byte("what do ya want for nothing?"),
		"5bdcc146bf60754e6a042426089575c75a003f089d2739839dec58b964ec3843",
	},
	{
		"case 6 key larger than block",
		bytes.Repeat([]byte{0xaa}, 131),
		[]byte("Test Using Larger Than Block-Size Key - Hash Key First"),
		"60e431591ee0b67f0d8a26aacbf5b77f8e0bc6213728c5140546040f0ee37f54",
	},
}

func TestSigners_RFC4231(t *testing.T) {
	t.Parallel()
	signers := map[string]tokens.Signer{
		"hmac":  tokens.HMACSigner{},
		"keyed": tokens.KeyedSigner{},
	}

	for signerName, signer := range signers {
		for _, tt := range rfc4231 {
			t.Run(signerName+"/"+tt.name, func(t *testing.T) {
				mac, err := signer.Sign(tt.data, tt.key)
				if err != nil {
					t.Fatalf("Sign failed: %v", err)
				}
				if got := hex.EncodeToString(mac); got != tt.mac {
					t.Errorf("mac = %s, want %s", got, tt.mac)
				}
			})
		}
	}
}

func TestSigners_Converge(t *testing.T) {
	t.Parallel()
	rng := rand.New(rand.NewPCG(3, 4))

	// both constructions agree for random keys of every size class
	for i := 0; i < 500; i++ {
		secret := make([]byte, rng.IntN(200))
		message := make([]byte, rng.IntN(300))
		for j := range secret {
			secret[j] = byte(rng.UintN(256))
		}
		for j := range message {
			message[j] = byte(rng.UintN(256))
		}

		a, err := tokens.HMACSigner{}.Sign(message, secret)
		if err != nil {
			t.Fatalf("HMACSigner failed: %v", err)
		}
		b, err := tokens.KeyedSigner{}.Sign(message, secret)
		if err != nil {
			t.Fatalf("KeyedSigner failed: %v", err)
		}
		if !bytes.Equal(a, b) {
			t.Fatalf("signers disagree for secret %x message %x", secret, message)
		}
	}
}

func TestSigners_TokenMessage(t *testing.T) {
	t.Parallel()
	message := []byte("eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJpZCI6InUxIn0")
	secret := []byte("tutor_jwt_secret_key")

	a, _ := tokens.HMACSigner{}.Sign(message, secret)
	b, _ := tokens.KeyedSigner{}.Sign(message, secret)
	if !bytes.Equal(a, b) {
		t.Errorf("signers disagree: %x vs %x", a, b)
	}
	if len(a) != 32 {
		t.Errorf("mac length = %d, want 32", len(a))
	}
}

func TestHMACKey_ReusedConcurrently(t *testing.T) {
	t.Parallel()
	key := tokens.ImportKey([]byte("shared"))
	want, _ := tokens.HMACSigner{}.Sign([]byte("msg"), []byte("shared"))

	// an imported key is read-only and can sign from many goroutines
	var wg sync.WaitGroup
	errs := make(chan string, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if got := key.Sign([]byte("msg")); !bytes.Equal(got, want) {
				errs <- hex.EncodeToString(got)
			}
		}()
	}
	wg.Wait()
	close(errs)

	var bad []string
	for e := range errs {
		bad = append(bad, e)
	}
	if len(bad) > 0 {
		t.Errorf("concurrent signatures differ: %s", strings.Join(bad, ", "))
	}
}
