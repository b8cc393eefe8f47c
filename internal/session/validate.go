package session

import (
	"errors"
	"strings"
)

// ErrEmptyMessage rejects user input that is empty or whitespace-only.
// It is reported to the caller and never persisted.
var ErrEmptyMessage = errors.New("message is required")

func ValidateUserText(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrEmptyMessage
	}
	return nil
}
