package tokens

import "crypto/subtle"

// Equal reports whether a and b are bytewise identical. For equal lengths the
// running time does not depend on where the inputs differ.
func Equal(a, b []byte) bool {
	return subtle.ConstantTimeCompare(a, b) == 1
}
