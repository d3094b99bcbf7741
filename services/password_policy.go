package services

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// MinPasswordLength applies to every password set through UserService
const MinPasswordLength = 8

// ValidatePassword checks a new password for username:
// - At least MinPasswordLength characters
// - Not only whitespace
// - Not the username itself
func ValidatePassword(password, username string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return invalid("password", fmt.Sprintf("must be at least %d characters", MinPasswordLength))
	}
	if strings.TrimFunc(password, unicode.IsSpace) == "" {
		return invalid("password", "cannot be blank")
	}
	if username != "" && strings.EqualFold(strings.TrimSpace(password), strings.TrimSpace(username)) {
		return invalid("password", "cannot be the username")
	}
	return nil
}
