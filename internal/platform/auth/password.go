package auth

import "golang.org/x/crypto/bcrypt"

// DefaultCost is the bcrypt work factor used for every stored password.
const DefaultCost = 12

// HashPassword bcrypt-hashes password at DefaultCost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether password matches hash.
func VerifyPassword(password, hash string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
