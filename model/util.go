package model

import (
	"regexp"
	"strings"
)

var (
	contactPattern = regexp.MustCompile(`^[0-9]{10}$`)
)

func StripEmail(email string) string {
	stripped := strings.ReplaceAll(email, " ", "")
	return strings.ToLower(stripped)
}

// StripPhone removes the separators people usually type into a phone field.
func StripPhone(phone string) string {
	stripped := strings.ReplaceAll(phone, "-", "")
	stripped = strings.ReplaceAll(stripped, " ", "")
	stripped = strings.ReplaceAll(stripped, "(", "")
	stripped = strings.ReplaceAll(stripped, ")", "")
	return stripped
}

// IsValidContactNumber accepts exactly ten digits, no country code.
func IsValidContactNumber(phone string) bool {
	return contactPattern.MatchString(phone)
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
