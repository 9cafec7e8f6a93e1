package utils

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

// UserError represents an error with a user-friendly message and solution
type UserError struct {
	Message  string
	Solution string
	Err      error
}

func (e *UserError) Error() string {
	msg := e.Message
	if e.Solution != "" {
		msg += fmt.Sprintf("\n\n💡 Solution: %s", e.Solution)
	}
	if e.Err != nil {
		msg += fmt.Sprintf("\n\nDetails: %v", e.Err)
	}
	return msg
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new UserError
func NewUserError(message, solution string, err error) *UserError {
	return &UserError{
		Message:  message,
		Solution: solution,
		Err:      err,
	}
}

// NewLoadError explains a trajectory file that could not be opened or parsed.
func NewLoadError(path string, err error) *UserError {
	if errors.Is(err, os.ErrNotExist) {
		return NewUserError(
			fmt.Sprintf("Trajectory file %s does not exist", path),
			"Check the path or pass a different file",
			err,
		)
	}
	return NewUserError(
		fmt.Sprintf("Could not load trajectory file %s", path),
		"The file must contain a JSON array of step objects",
		err,
	)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a new ValidationError
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: message,
	}
}

// NewChoiceError reports a value outside a fixed set of choices.
func NewChoiceError(field, value string, choices ...string) *ValidationError {
	return NewValidationError(field,
		fmt.Sprintf("unsupported value %q (supported: %s)", value, strings.Join(choices, ", ")))
}
