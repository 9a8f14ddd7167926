package model

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound             = errors.New("not found")
	ErrReferenceNotFound    = errors.New("referenced entity not found")
	ErrValidation           = errors.New("validation failed")
	ErrDuplicateEmail       = errors.New("user already exists")
	ErrInvalidClaimCode     = errors.New("invalid claim code")
	ErrClaimCodeExpired     = errors.New("claim code expired")
	ErrAlreadyLinked        = errors.New("member already linked")
	ErrProfileAlreadyLinked = errors.New("account is already linked to a member profile")
	ErrNoMemberProfile      = errors.New("no linked member profile")
	ErrInvalidCredentials   = errors.New("invalid email or password")
	ErrInvalidToken         = errors.New("invalid token")
	ErrUnauthorized         = errors.New("authentication required")
	ErrForbidden            = errors.New("insufficient permissions")
	ErrClaimCodeCollision   = errors.New("claim code already in use")
)

// ValidationError reports missing or malformed input. It matches ErrValidation.
type ValidationError struct {
	Message string
}

// NewValidationError builds a ValidationError from a format string.
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError names the entity that is absent. It matches ErrNotFound.
type NotFoundError struct {
	Entity string
}

// NewNotFoundError returns a NotFoundError for entity.
func NewNotFoundError(entity string) *NotFoundError {
	return &NotFoundError{Entity: entity}
}

func (e *NotFoundError) Error() string { return e.Entity + " not found" }

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// ReferenceError is returned when a payload points at a row that does not
// exist. It matches ErrReferenceNotFound.
type ReferenceError struct {
	Entity string
}

// NewReferenceError returns a ReferenceError for entity.
func NewReferenceError(entity string) *ReferenceError {
	return &ReferenceError{Entity: entity}
}

func (e *ReferenceError) Error() string { return e.Entity + " not found" }

func (e *ReferenceError) Is(target error) bool { return target == ErrReferenceNotFound }
