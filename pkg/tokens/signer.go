package tokens

import (
	"crypto/hmac"
	"crypto/sha256"
)

// Signer computes HMAC-SHA256 over message keyed by secret, returning the
// raw MAC bytes. Every implementation must produce identical bytes for the
// same inputs.
type Signer interface {
	Sign(message []byte, secret []byte) ([]byte, error)
}

// HMACSigner signs with crypto/hmac in a single call.
type HMACSigner struct{}

func (HMACSigner) Sign(message []byte, secret []byte) ([]byte, error) {
	mac := hmac.New(sha256.New, secret)
	mac.Write(message)
	return mac.Sum(nil), nil
}

// KeyedSigner imports the secret into an HMACKey and signs with it.
type KeyedSigner struct{}

func (KeyedSigner) Sign(message []byte, secret []byte) ([]byte, error) {
	return ImportKey(secret).Sign(message), nil
}

// HMACKey is an HMAC-SHA256 key with its inner and outer pads precomputed
// (RFC 2104). It is immutable and safe for concurrent use.
type HMACKey struct {
	ipad [sha256.BlockSize]byte
	opad [sha256.BlockSize]byte
}

// ImportKey derives the pads for secret. Secrets longer than the SHA-256
// block size are hashed first.
func ImportKey(secret []byte) *HMACKey {
	var block [sha256.BlockSize]byte
	if len(secret) > sha256.BlockSize {
		sum := sha256.Sum256(secret)
		copy(block[:], sum[:])
	} else {
		copy(block[:], secret)
	}

	key := &HMACKey{}
	for i, b := range block {
		key.ipad[i] = b ^ 0x36
		key.opad[i] = b ^ 0x5c
	}
	return key
}

// Sign returns H(opad || H(ipad || message)).
func (k *HMACKey) Sign(message []byte) []byte {
	inner := sha256.New()
	inner.Write(k.ipad[:])
	inner.Write(message)
	innerSum := inner.Sum(nil)

	outer := sha256.New()
	outer.Write(k.opad[:])
	outer.Write(innerSum)
	return outer.Sum(nil)
}
