package errors

import (
	"errors"
	"fmt"
)

// Common error types for the research platform client
var (
	// Session errors
	ErrNotAuthenticated = errors.New("not authenticated")
	ErrEmptyAccessToken = errors.New("refresh response carried no access token")

	// Token store errors
	ErrNotFound     = errors.New("not found")
	ErrCorruptStore = errors.New("token store is corrupt")

	// Configuration errors
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrInvalidBaseURL = errors.New("invalid base url")

	// Request errors
	ErrInvalidRequest  = errors.New("invalid request body")
	ErrInvalidResponse = errors.New("invalid response body")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
