package errors

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by the store, the auth service and the HTTP layer
var (
	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("unauthenticated")
	ErrInvalidToken       = errors.New("invalid token")
	ErrTokenRevoked       = errors.New("token revoked")

	// Authorization errors
	ErrForbidden           = errors.New("forbidden")
	ErrSuperadminProtected = errors.New("superadmin accounts cannot be deleted")
	ErrNoClubBinding       = errors.New("admin has no club binding")

	// Request errors
	ErrInvalidRequest = errors.New("invalid request")
	ErrEmailTaken     = errors.New("email already registered")

	// Store errors
	ErrNotFound         = errors.New("not found")
	ErrStoreUnavailable = errors.New("store unavailable")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Store marks err as a store failure while keeping the driver error in the chain
func Store(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("[%s] %w: %w", op, ErrStoreUnavailable, err)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
