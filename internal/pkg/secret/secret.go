// Package secret wraps the salted adaptive hashing used for retailer API
// keys and admin passwords. Plaintext secrets are never stored or logged.
package secret

import "golang.org/x/crypto/bcrypt"

// Hash produces a bcrypt hash of the plaintext with a fresh random salt.
// Hashing the same input twice yields different outputs.
func Hash(plaintext string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

// Verify reports whether plaintext reproduces the given hash. Comparison is
// constant-time with respect to the secret content. A mismatch is a normal
// false result, not an error.
func Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
