package errors

import (
	"errors"
	"fmt"
)

// Common error types for the admin console client
var (
	// Credential store errors
	ErrNotFound        = errors.New("not found")
	ErrStoreClosed     = errors.New("credential store closed")
	ErrInvalidStoreKey = errors.New("invalid credential store key")

	// Token errors
	ErrInvalidToken = errors.New("invalid token")

	// Transport errors
	ErrEmptyResponse = errors.New("empty response")

	// General errors
	ErrUnsupported = errors.New("unsupported operation")
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

// Join returns an error that wraps the given errors, dropping nils
func Join(errs ...error) error {
	return errors.Join(errs...)
}
