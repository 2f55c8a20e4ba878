// Package tokens provides JWT token issuing and validation for the tutor
// scheduling server.
//
// This package implements HS256 (HMAC with SHA-256) signed JSON Web Tokens
// keyed by a single shared secret. Tokens are bearer capabilities: nothing
// is persisted server side, and a token is valid purely because its
// signature recomputes and its expiration lies in the future.
//
// A token is three Base64url segments joined by ".":
//
//   - Header: always {"alg":"HS256","typ":"JWT"}
//   - Payload: the caller's claims plus an "exp" claim (Unix seconds)
//   - Signature: HMAC-SHA256 over "<header>.<payload>" with the secret
//
// # Issuing Tokens
//
// The login handler constructs a Server once, with the secret loaded from
// configuration, and issues a token per successful login:
//
//	server, err := tokens.NewServer([]byte(secret))
//	if err != nil {
//	    log.Fatal(err) // empty secret
//	}
//
//	token, err := server.Issue(tokens.Claims{
//	    "id":   "u1",
//	    "role": "admin",
//	})
//
// The "exp" claim is always set by Issue to issuance time plus 24 hours,
// overwriting any "exp" supplied by the caller.
//
// # Validating Tokens
//
// The authentication middleware strips the "Bearer " prefix and hands the
// raw token to Verify:
//
//	claims, err := server.Verify(tokenString)
//	if err != nil {
//	    // respond 401, whatever the reason
//	}
//	userID := claims.String("id")
//
// Verify checks, in order: structure, signature, payload encoding, expiry.
// The signature is checked before the payload is parsed.
//
// # Error Handling
//
// Validation can fail for several reasons:
//
//	_, err := server.Verify(tokenString)
//	switch {
//	case errors.Is(err, tokens.ErrTokenMalformed()):
//	    // not three non-empty segments
//	case errors.Is(err, tokens.ErrTokenBadSignature()):
//	    // signature does not match
//	case errors.Is(err, tokens.ErrTokenDecode()):
//	    // segment is not Base64url, or payload is not a JSON object with exp
//	case errors.Is(err, tokens.ErrTokenExpired()):
//	    // exp is at or before the current time
//	}
//
// HTTP callers should not expose which of these occurred; every failure is
// an authentication failure.
//
// # Signers
//
// Signatures are produced by a Signer. HMACSigner uses crypto/hmac directly.
// KeyedSigner imports the key once into precomputed inner and outer pads and
// then signs messages against that key. Both produce identical bytes.
package tokens
