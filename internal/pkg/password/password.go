// Package password is the one-way credential hashing leaf. Both login
// passwords and recovery codes are stored through it; no caller ever
// persists or logs plaintext.
package password

import "golang.org/x/crypto/bcrypt"

// Hash returns a salted bcrypt digest of plaintext.
func Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), bcrypt.DefaultCost)
	return string(digest), err
}

// Verify reports whether plaintext matches the stored digest.
func Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}
