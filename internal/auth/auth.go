// Package auth hashes and verifies account passwords.
//
// Hashing is deliberately deterministic: stored digests are compared by
// equality, so the same password must always produce the same digest. The
// salt is an application constant, not per-user.
package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/pbkdf2"
)

const (
	salt       = "bookeeper/auth/v1"
	iterations = 4096
	keyLength  = 32
)

// HashPassword derives the stored digest for a password.
func HashPassword(password string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), iterations, keyLength, sha256.New)
	return hex.EncodeToString(key)
}

// CheckPassword reports whether password matches a stored digest.
func CheckPassword(password, hash string) bool {
	digest := HashPassword(password)
	return subtle.ConstantTimeCompare([]byte(digest), []byte(hash)) == 1
}
