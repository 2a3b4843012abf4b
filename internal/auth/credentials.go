package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword хэширует пароль через bcrypt.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(hash), nil
}

// ComparePassword сверяет пароль с bcrypt-хэшем.
func ComparePassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// HashToken возвращает SHA-256 хэш refresh-токена в hex-представлении.
// В базе хранится только хэш, сам токен не сохраняется.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// CompareTokenHash сравнивает хэш с токеном в константное время.
func CompareTokenHash(hash, token string) bool {
	computed := HashToken(token)
	return subtle.ConstantTimeCompare([]byte(hash), []byte(computed)) == 1
}
