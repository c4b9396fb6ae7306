package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinTokenLength is the minimum accepted API token length.
const MinTokenLength = 16

// DefaultBcryptCost is used by the hash-token command.
const DefaultBcryptCost = 12

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrTokenTooShort = errors.New("token must be at least 16 characters")
	ErrTokenTooLong  = errors.New("token exceeds maximum length of 72 bytes")
)

// HashToken creates a bcrypt hash of an API token for AUTH_TOKEN_HASH.
func HashToken(token string, cost int) (string, error) {
	if len(token) < MinTokenLength {
		return "", ErrTokenTooShort
	}
	// bcrypt has a 72-byte limit
	if len(token) > 72 {
		return "", ErrTokenTooLong
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(token), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckToken compares a token with its bcrypt hash.
func CheckToken(token, hash string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(token))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidToken
		}
		return err
	}
	return nil
}

// ValidateHash reports whether hash looks like a bcrypt hash.
func ValidateHash(hash string) error {
	_, err := bcrypt.Cost([]byte(hash))
	return err
}

// GenerateToken creates a cryptographically secure random token.
func GenerateToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
