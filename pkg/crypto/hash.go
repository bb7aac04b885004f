// Package crypto wraps the bcrypt credential hashing used by the dev login.
package crypto

import "golang.org/x/crypto/bcrypt"

func HashPassword(pw string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(pw), bcrypt.DefaultCost)
}

// CheckPassword returns nil when pw matches hash.
func CheckPassword(hash []byte, pw string) error {
	return bcrypt.CompareHashAndPassword(hash, []byte(pw))
}
