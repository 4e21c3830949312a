package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is the work factor for stored passwords
const BcryptCost = 12

// otpCost is lower since codes expire within minutes
const otpCost = bcrypt.DefaultCost

// HashPassword hashes a password for storage
func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(bytes), nil
}

// CheckPassword compares a password with its hash
func CheckPassword(hashedPassword, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password))
	return err == nil
}

// GenerateOTP returns a random six digit code and its bcrypt hash
func GenerateOTP() (code, hash string, err error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", "", fmt.Errorf("failed to generate otp: %w", err)
	}
	code = fmt.Sprintf("%06d", n.Int64())

	h, err := bcrypt.GenerateFromPassword([]byte(code), otpCost)
	if err != nil {
		return "", "", fmt.Errorf("failed to hash otp: %w", err)
	}
	return code, string(h), nil
}
