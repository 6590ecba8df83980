package models

import (
	"fmt"

	"github.com/pkg/errors"
)

// ErrKind clasifica los fallos del núcleo de workflows para que los
// controladores puedan mapearlos a códigos HTTP sin inspeccionar textos.
type ErrKind string

const (
	ErrKindValidation   ErrKind = "VALIDATION"
	ErrKindInvalidState ErrKind = "INVALID_STATE"
	ErrKindPermission   ErrKind = "PERMISSION_DENIED"
	ErrKindDependency   ErrKind = "DEPENDENCY"
	ErrKindConcurrency  ErrKind = "CONCURRENCY_CONFLICT"
	ErrKindNotFound     ErrKind = "NOT_FOUND"
)

type DomainError struct {
	Kind    ErrKind
	Message string
	cause   error
}

func (e *DomainError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.cause.Error())
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.cause
}

func NewValidationError(format string, args ...interface{}) error {
	return &DomainError{Kind: ErrKindValidation, Message: fmt.Sprintf(format, args...)}
}

func NewInvalidStateError(format string, args ...interface{}) error {
	return &DomainError{Kind: ErrKindInvalidState, Message: fmt.Sprintf(format, args...)}
}

func NewPermissionError(format string, args ...interface{}) error {
	return &DomainError{Kind: ErrKindPermission, Message: fmt.Sprintf(format, args...)}
}

func NewDependencyError(cause error, format string, args ...interface{}) error {
	return &DomainError{Kind: ErrKindDependency, Message: fmt.Sprintf(format, args...), cause: cause}
}

func NewConcurrencyError(format string, args ...interface{}) error {
	return &DomainError{Kind: ErrKindConcurrency, Message: fmt.Sprintf(format, args...)}
}

func NewNotFoundError(format string, args ...interface{}) error {
	return &DomainError{Kind: ErrKindNotFound, Message: fmt.Sprintf(format, args...)}
}

func KindOf(err error) ErrKind {
	var dErr *DomainError
	if errors.As(err, &dErr) {
		return dErr.Kind
	}
	return ""
}

func IsKind(err error, kind ErrKind) bool {
	return KindOf(err) == kind
}
