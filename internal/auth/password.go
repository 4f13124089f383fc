package auth

import (
	"greenhouse-server/configs"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword hashes a plaintext password with the configured bcrypt cost.
func HashPassword(password string) (string, error) {
	cost := configs.Configs.Authn.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword compares a plaintext password against a stored hash.
func CheckPassword(hashedPassword, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(password)) == nil
}
