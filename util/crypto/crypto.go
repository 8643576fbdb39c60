// Package crypto hashes and verifies user passwords.
package crypto

import (
	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor used for new hashes.
var PasswordCost = bcrypt.DefaultCost

// HashPasswordAsBcrypt returns the bcrypt hash of password. The plaintext is
// never stored.
func HashPasswordAsBcrypt(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	return string(hash), err
}

// CheckPasswordHash reports whether password matches hash. A malformed hash
// never matches.
func CheckPasswordHash(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
