// Package password wraps bcrypt behind the two operations the rest of the
// service needs: hashing a plaintext password and verifying one against a
// stored digest.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor used for every new digest.
const Cost = bcrypt.DefaultCost

// Hash returns a salted bcrypt digest of plain. The salt is generated per
// call, so hashing the same password twice yields different digests.
func Hash(plain string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), Cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

// Verify reports whether plain matches digest. A malformed digest is treated
// the same as a wrong password.
func Verify(plain, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plain)) == nil
}
