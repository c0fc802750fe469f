package utils

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

var (
	bdPhonePattern = regexp.MustCompile(`^(\+?88)?01[3-9][0-9]{8}$`)
	emailPattern   = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

// IsValidBDPhone reports whether phone is a Bangladeshi mobile number, with
// or without the +88 country prefix. Spaces and hyphens are ignored.
func IsValidBDPhone(phone string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(strings.TrimSpace(phone))
	return bdPhonePattern.MatchString(cleaned)
}

// IsValidEmail checks the rough shape of an email address.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(strings.TrimSpace(email))
}

// IsValidName requires at least two characters after trimming.
func IsValidName(name string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(name)) >= 2
}

// IsValidAddress requires at least ten characters after trimming.
func IsValidAddress(address string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(address)) >= 10
}

// NewValidator builds the validator used for checkout forms, with the custom
// bd_phone rule installed.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterValidation("bd_phone", func(fl validator.FieldLevel) bool {
		return IsValidBDPhone(fl.Field().String())
	})
	return v
}
