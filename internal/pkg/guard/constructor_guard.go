// Package guard holds the constructor guard embedded by commands and queries
// so that zero-value instances are rejected before a handler touches storage.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the caller passes a nil error.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as built by its constructor. The zero value
// is "not constructed".
//
// Example:
//
//	type AcceptOrderCommand struct {
//	    displayNo int
//	    guard     guard.ConstructorGuard
//	}
//
//	func (c AcceptOrderCommand) Validate() error {
//	    return c.guard.Validate(ErrAcceptOrderCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard was not produced by NewConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
