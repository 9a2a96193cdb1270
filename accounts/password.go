package accounts

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost is the bcrypt work factor for every stored hash
const PasswordCost = 10

// dummyHash is compared against when the email is unknown so both login
// failures spend the same bcrypt time.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("club-server-timing-equaliser"), PasswordCost)

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), PasswordCost)
	if err != nil {
		return "", fmt.Errorf("[accounts HashPassword] %w", err)
	}
	return string(bytes), nil
}

// CheckPassword reports whether password matches hash. A mismatch is not an error.
func CheckPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// BurnPasswordCheck runs a comparison that always fails
func BurnPasswordCheck(password string) {
	_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
}

// GeneratePassword returns a random URL safe password
func GeneratePassword() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("[accounts GeneratePassword] %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
