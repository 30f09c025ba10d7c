package views

import (
	"errors"
	"fmt"
)

var (
	ErrUnknownPage   = errors.New("unknown page")
	ErrValidation    = errors.New("validation failed")
	ErrUnknownOption = errors.New("unknown option")
	ErrNotFound      = errors.New("record not found")
)

// ValidationError reports a form value rejected before anything is sent.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func invalid(field, msg string) error {
	return &ValidationError{Field: field, Message: msg}
}

// UserMessage is the text shown for a validation failure.
func UserMessage(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	return err.Error()
}
