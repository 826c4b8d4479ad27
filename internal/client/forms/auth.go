package forms

import (
	"strings"
	"unicode/utf8"
)

const MinPasswordLength = 8

type SignupForm struct {
	Email    string
	Password string
	Confirm  string
}

// Validate checks the password length first, whatever else was typed, then
// the confirmation, then the email. Length is counted in characters.
func (f SignupForm) Validate() error {
	if utf8.RuneCountInString(f.Password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if f.Password != f.Confirm {
		return ErrPasswordMismatch
	}
	if strings.TrimSpace(f.Email) == "" {
		return ErrEmailRequired
	}
	return nil
}

type LoginForm struct {
	Email    string
	Password string
}

func (f LoginForm) Validate() error {
	if strings.TrimSpace(f.Email) == "" {
		return ErrEmailRequired
	}
	if f.Password == "" {
		return ErrPasswordRequired
	}
	return nil
}

// ValidateUsername trims name and rejects an empty result.
func ValidateUsername(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrUsernameRequired
	}
	return name, nil
}
