package model

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Shape limits, counted in runes after NFC normalisation.
const (
	MaxHandleLength  = 30
	MaxMessageLength = 100
)

var (
	errHandleEmpty      = errors.New("handle is empty")
	errHandleWhitespace = errors.New("handle contains whitespace")
	errMessageEmpty     = errors.New("message is empty")
)

// Normalize returns the NFC form of s. Handles and messages are stored
// normalised so that canonically equivalent strings compare equal.
func Normalize(s string) string {
	return norm.NFC.String(s)
}

// ValidateHandle checks the handle shape rule: non-empty, at most
// MaxHandleLength runes, no whitespace. The input must already be normalised.
func ValidateHandle(handle string) error {
	if handle == "" {
		return errHandleEmpty
	}
	if n := utf8.RuneCountInString(handle); n > MaxHandleLength {
		return fmt.Errorf("handle has %d characters, max %d", n, MaxHandleLength)
	}
	if strings.IndexFunc(handle, unicode.IsSpace) >= 0 {
		return errHandleWhitespace
	}
	return nil
}

// ValidateMessage checks the message shape rule: non-empty, at most
// MaxMessageLength runes. The input must already be normalised.
func ValidateMessage(message string) error {
	if message == "" {
		return errMessageEmpty
	}
	if n := utf8.RuneCountInString(message); n > MaxMessageLength {
		return fmt.Errorf("message has %d characters, max %d", n, MaxMessageLength)
	}
	return nil
}
