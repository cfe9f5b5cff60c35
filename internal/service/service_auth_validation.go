package service

import (
	"unicode"
	"unicode/utf8"
)

const minPasswordLength = 8

// isStrongPassword requires at least 8 characters with an upper-case letter,
// a lower-case letter, a digit and a character that is neither a letter nor
// a digit.
func isStrongPassword(password string) bool {
	if utf8.RuneCountInString(password) < minPasswordLength {
		return false
	}

	var upper, lower, digit, special bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case !unicode.IsLetter(r):
			special = true
		}
	}

	return upper && lower && digit && special
}
