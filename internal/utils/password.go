// Package utils holds small helpers shared across handlers and
// repositories.
package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword derives a bcrypt digest of plain at the given cost.  The
// cost comes from configuration so tests can run at the cheap minimum
// while production keeps the slow default.
func HashPassword(plain string, cost int) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// VerifyPassword reports whether plain matches the stored bcrypt digest.
// The comparison is constant-time.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
