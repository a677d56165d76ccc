package errs

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrObjectNotFound    = errors.New("object not found")
	ErrValueIsInvalid    = errors.New("value is invalid")
	ErrValueIsOutOfRange = errors.New("value is out of range")
	ErrValueIsRequired   = errors.New("value is required")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrPersistence       = errors.New("persistence failure")
)

// ObjectNotFoundError reports a lookup that resolved to nothing.
type ObjectNotFoundError struct {
	ParamName string
	ID        any
	Cause     error
}

func NewObjectNotFoundError(paramName string, id any) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id}
}

func NewObjectNotFoundErrorWithCause(paramName string, id any, cause error) *ObjectNotFoundError {
	return &ObjectNotFoundError{ParamName: paramName, ID: id, Cause: cause}
}

func (e *ObjectNotFoundError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: param is: %s, ID is: %s (cause: %v)", ErrObjectNotFound, e.ParamName, e.ID, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrObjectNotFound, e.ID)
}

func (e *ObjectNotFoundError) Unwrap() error {
	return ErrObjectNotFound
}

// ValueIsInvalidError reports a value that failed validation.
type ValueIsInvalidError struct {
	ParamName string
	Cause     error
}

func NewValueIsInvalidError(paramName string) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName}
}

func NewValueIsInvalidErrorWithCause(paramName string, cause error) *ValueIsInvalidError {
	return &ValueIsInvalidError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsInvalidError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsInvalid, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsInvalid, e.ParamName)
}

func (e *ValueIsInvalidError) Unwrap() error {
	return ErrValueIsInvalid
}

// ValueIsOutOfRangeError reports a value outside of [Min, Max].
type ValueIsOutOfRangeError struct {
	ParamName string
	Value     any
	Min       any
	Max       any
	Cause     error
}

func NewValueIsOutOfRangeError(paramName string, value, minValue, maxValue any) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue}
}

func NewValueIsOutOfRangeErrorWithCause(
	paramName string,
	value, minValue, maxValue any,
	cause error,
) *ValueIsOutOfRangeError {
	return &ValueIsOutOfRangeError{ParamName: paramName, Value: value, Min: minValue, Max: maxValue, Cause: cause}
}

func (e *ValueIsOutOfRangeError) Error() string {
	msg := fmt.Sprintf("%s: %v is %s, min value is %v, max value is %v",
		ErrValueIsInvalid, sanitize(e.Value), e.ParamName, sanitize(e.Min), sanitize(e.Max))
	if e.Cause != nil {
		msg += fmt.Sprintf(" (cause: %v)", e.Cause)
	}
	return msg
}

func (e *ValueIsOutOfRangeError) Unwrap() error {
	return ErrValueIsOutOfRange
}

// ValueIsRequiredError reports a missing mandatory value.
type ValueIsRequiredError struct {
	ParamName string
	Cause     error
}

func NewValueIsRequiredError(paramName string) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName}
}

func NewValueIsRequiredErrorWithCause(paramName string, cause error) *ValueIsRequiredError {
	return &ValueIsRequiredError{ParamName: paramName, Cause: cause}
}

func (e *ValueIsRequiredError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrValueIsRequired, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrValueIsRequired, e.ParamName)
}

func (e *ValueIsRequiredError) Unwrap() error {
	return ErrValueIsRequired
}

// InvalidTransitionError reports an event delivered to an entity whose
// current state does not accept it. Callers treat it as "already processed".
type InvalidTransitionError struct {
	State string
	Event string
}

func NewInvalidTransitionError(state, event string) *InvalidTransitionError {
	return &InvalidTransitionError{State: state, Event: event}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: cannot %s from status %s", ErrInvalidTransition, e.Event, e.State)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// PersistenceError wraps a storage failure. Both ErrPersistence and the
// underlying cause are reachable through errors.Is / errors.As.
type PersistenceError struct {
	Operation string
	Cause     error
}

func NewPersistenceError(operation string, cause error) *PersistenceError {
	return &PersistenceError{Operation: operation, Cause: cause}
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s: %s (cause: %v)", ErrPersistence, e.Operation, e.Cause)
}

func (e *PersistenceError) Unwrap() []error {
	return []error{ErrPersistence, e.Cause}
}

func sanitize(v any) string {
	return strings.ReplaceAll(fmt.Sprintf("%v", v), "\n", " ")
}
