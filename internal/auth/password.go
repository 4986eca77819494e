package auth

import (
	stderrors "errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"taskhub/internal/errors"
)

const bcryptCost = 10

// HashPassword returns a one-way salted hash of the password. Hashing the
// same plaintext twice yields different outputs; both verify against it.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether the plaintext matches the hash. A mismatch
// is not an error; only a malformed hash is.
func VerifyPassword(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	switch {
	case err == nil:
		return true, nil
	case stderrors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, errors.NewAuthentication("malformed password hash")
	}
}
