// utils/validator.go - Input validation
package utils

import (
	"regexp"
	"strings"
)

// Mainland mobile numbers: 11 digits, leading 1, second digit 3-9.
var phoneRegex = regexp.MustCompile(`^1[3-9]\d{9}$`)

// ValidatePhone checks if phone is a valid mobile number.
func ValidatePhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}

// SanitizeInput removes potentially harmful characters
func SanitizeInput(input string) string {
	// Remove leading/trailing spaces
	input = strings.TrimSpace(input)

	// Remove null bytes
	input = strings.ReplaceAll(input, "\x00", "")

	return input
}
