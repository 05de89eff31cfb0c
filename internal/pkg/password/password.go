// Package password wraps bcrypt for credential hashing.
package password

import "golang.org/x/crypto/bcrypt"

// Hash produces a salted one-way digest of plaintext. Two calls on the same
// input produce different digests; only Verify can relate them.
func Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Verify reports whether plaintext matches hash. A mismatch is a normal
// outcome, never an error.
func Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
