// Package validate holds the input predicates shared by the stores, the
// calculator and the CLI.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/spf13/cast"
)

// ErrTypeConversion is returned when a value has no string representation.
var ErrTypeConversion = errors.New("value cannot be converted to string")

var (
	emailRe = regexp.MustCompile(`^[0-9a-zA-Z]+([0-9a-zA-Z]*[-._+])*[0-9a-zA-Z]+@[0-9a-zA-Z]+([-.][0-9a-zA-Z]+)*([0-9a-zA-Z]*[.])[a-zA-Z]{2,6}$`)

	// E.164: optional plus, no leading zero, 5 to 16 digits.
	phoneRe = regexp.MustCompile(`^\+?[1-9][0-9]{4,15}$`)

	// Only anchors a digit run at the start, so any non-empty input matches.
	addressNumberRe = regexp.MustCompile(`^[0-9]*`)
)

// IsEmail reports whether email looks like local-part@domain.tld.
func IsEmail(email string) bool {
	if email == "" {
		return false
	}
	return emailRe.MatchString(email)
}

// IsPhoneNumber reports whether number is E.164 shaped.
func IsPhoneNumber(number string) bool {
	if number == "" {
		return false
	}
	return phoneRe.MatchString(number)
}

// IsAddressNumber reports whether s starts with a (possibly empty) run of
// digits. Empty input is rejected.
func IsAddressNumber(s string) bool {
	if s == "" {
		return false
	}
	return addressNumberRe.MatchString(s)
}

// IsEmptyOrWhitespace reports whether value, converted to a string, is empty
// or consists only of whitespace.
func IsEmptyOrWhitespace(value any) (bool, error) {
	s, err := toString(value)
	if err != nil {
		return false, err
	}
	return strings.TrimFunc(s, unicode.IsSpace) == "", nil
}

// BeginsWithWhitespace reports whether value, converted to a string, starts
// with a whitespace character. Empty input does not.
func BeginsWithWhitespace(value any) (bool, error) {
	s, err := toString(value)
	if err != nil {
		return false, err
	}
	if s == "" {
		return false, nil
	}
	r, _ := utf8.DecodeRuneInString(s)
	return unicode.IsSpace(r), nil
}

// IsPositiveDouble reports whether value converts to a number greater than 0.
func IsPositiveDouble(value any) bool {
	f, err := cast.ToFloat64E(value)
	if err != nil {
		return false
	}
	return f > 0
}

// IsPositivePercentage reports whether value is a positive number below 100.
// Exactly 100 is rejected.
func IsPositivePercentage(value any) bool {
	if !IsPositiveDouble(value) {
		return false
	}
	return cast.ToFloat64(value) < 100
}

func toString(value any) (string, error) {
	s, err := cast.ToStringE(value)
	if err != nil {
		return "", fmt.Errorf("%w: %T", ErrTypeConversion, value)
	}
	return s, nil
}
