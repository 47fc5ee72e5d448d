package container

import (
	"fmt"

	"github.com/mvoloskov/loom/internal/typekey"
)

// NotFoundError reports that no binding, exact or subtype, matched a key.
type NotFoundError struct {
	Key typekey.Key
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no binding found for %s", e.Key)
}

// ProduceError reports that a binding's producer returned an error.
type ProduceError struct {
	Key   typekey.Key
	Cause error
}

func (e *ProduceError) Error() string {
	return fmt.Sprintf("binding for %s failed to produce: %v", e.Key, e.Cause)
}

func (e *ProduceError) Unwrap() error {
	return e.Cause
}

// ConflictError reports a declaration against an occupied key without
// override permission.
type ConflictError struct {
	Key typekey.Key
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("binding already present for %s", e.Key)
}
