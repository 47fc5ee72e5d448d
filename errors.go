package loom

import (
	"errors"
	"fmt"

	"github.com/mvoloskov/loom/internal/container"
)

type ErrorCode uint16

const (
	ErrCodeUnknown ErrorCode = iota
	ErrCodeBindingNotFound
	ErrCodeOverrideNotAllowed
	ErrCodeMutationNotAllowed
	ErrCodeConstructionFailed
	ErrCodeInvalidBinding
	ErrCodeTypeMismatch
	ErrCodeAlreadyInitialized
)

var codeNames = map[ErrorCode]string{
	ErrCodeUnknown:            "UNKNOWN",
	ErrCodeBindingNotFound:    "BINDING_NOT_FOUND",
	ErrCodeOverrideNotAllowed: "OVERRIDE_NOT_ALLOWED",
	ErrCodeMutationNotAllowed: "MUTATION_NOT_ALLOWED",
	ErrCodeConstructionFailed: "CONSTRUCTION_FAILED",
	ErrCodeInvalidBinding:     "INVALID_BINDING",
	ErrCodeTypeMismatch:       "TYPE_MISMATCH",
	ErrCodeAlreadyInitialized: "ALREADY_INITIALIZED",
}

func (c ErrorCode) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return fmt.Sprintf("UNKNOWN(%d)", c)
}

// Error is the error type surfaced by every loom operation. Key holds the
// rendered type key the operation was attempting, when there is one;
// construction failures chain through Cause, one *Error per key on the
// resolution path.
type Error struct {
	Code    ErrorCode
	Message string
	Key     string
	Cause   error
}

func (e *Error) Error() string {
	s := fmt.Sprintf("[%s]", e.Code)
	if e.Key != "" {
		s += fmt.Sprintf(" key=%q:", e.Key)
	}
	s += " " + e.Message
	if e.Cause != nil {
		s += ": " + e.Cause.Error()
	}
	return s
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

func (e *Error) WithKey(key string) *Error {
	e.Key = key
	return e
}

func newError(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func errBindingNotFound(key string) *Error {
	return newError(
		ErrCodeBindingNotFound,
		"no binding found",
		nil,
	).WithKey(key)
}

func errOverrideNotAllowed(key string) *Error {
	return newError(
		ErrCodeOverrideNotAllowed,
		"binding already present and override not allowed",
		nil,
	).WithKey(key)
}

func errMutationNotAllowed(op string) *Error {
	return newError(
		ErrCodeMutationNotAllowed,
		op+" not allowed on a locked container",
		nil,
	)
}

func errConstructionFailed(key string, cause error) *Error {
	return newError(
		ErrCodeConstructionFailed,
		"construction failed",
		cause,
	).WithKey(key)
}

func errInvalidBinding(key string, message string) *Error {
	return newError(
		ErrCodeInvalidBinding,
		message,
		nil,
	).WithKey(key)
}

func errTypeMismatch(key string) *Error {
	return newError(
		ErrCodeTypeMismatch,
		"bound instance has unexpected type",
		nil,
	).WithKey(key)
}

func errAlreadyInitialized(what string) *Error {
	return newError(
		ErrCodeAlreadyInitialized,
		what+" already initialized",
		nil,
	)
}

// convertError maps errors surfaced by the resolution engine onto the
// public taxonomy. Nested retrieval already returns *Error values, so a
// chain of construction failures keeps one entry per attempted key.
func convertError(err error) error {
	switch e := err.(type) {
	case *Error:
		return e
	case *container.NotFoundError:
		return errBindingNotFound(e.Key.String())
	case *container.ProduceError:
		return errConstructionFailed(e.Key.String(), e.Cause)
	case *container.ConflictError:
		return errOverrideNotAllowed(e.Key.String())
	default:
		return newError(ErrCodeUnknown, "resolution failed", err)
	}
}

func IsBindingNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeBindingNotFound
}

func IsOverrideNotAllowed(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeOverrideNotAllowed
}

func IsMutationNotAllowed(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeMutationNotAllowed
}

func IsConstructionFailed(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeConstructionFailed
}

func IsInvalidBinding(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeInvalidBinding
}

func IsTypeMismatch(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeTypeMismatch
}

func IsAlreadyInitialized(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeAlreadyInitialized
}
