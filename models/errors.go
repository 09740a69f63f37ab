package models

import (
	"fmt"

	"github.com/pkg/errors"
)

type ErrorKind int

const (
	ErrKindInternal ErrorKind = iota
	ErrKindNotFound
	ErrKindInvalidState
	ErrKindForbidden
	ErrKindConflict
	ErrKindValidation
)

// AppError carries a message that is safe to show to the API caller.
type AppError struct {
	Kind    ErrorKind
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewNotFoundError(format string, args ...any) error {
	return &AppError{Kind: ErrKindNotFound, Message: fmt.Sprintf(format, args...)}
}

func NewInvalidStateError(format string, args ...any) error {
	return &AppError{Kind: ErrKindInvalidState, Message: fmt.Sprintf(format, args...)}
}

func NewForbiddenError(format string, args ...any) error {
	return &AppError{Kind: ErrKindForbidden, Message: fmt.Sprintf(format, args...)}
}

func NewConflictError(format string, args ...any) error {
	return &AppError{Kind: ErrKindConflict, Message: fmt.Sprintf(format, args...)}
}

func NewValidationError(format string, args ...any) error {
	return &AppError{Kind: ErrKindValidation, Message: fmt.Sprintf(format, args...)}
}

// ErrorKindOf unwraps err looking for an AppError.
func ErrorKindOf(err error) (ErrorKind, string) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind, appErr.Message
	}
	return ErrKindInternal, ""
}

func IsErrorKind(err error, kind ErrorKind) bool {
	k, _ := ErrorKindOf(err)
	return k == kind
}
