// Package guard detects zero-value structs that bypassed their constructor.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded into commands, queries and domain entities.
// Only NewConstructorGuard produces a guard that validates, so a struct literal
// or a zero value is rejected by the owner's Validate method.
//
//	type SelectPartQuoteCommand struct {
//	    partID kernel.UUID
//	    guard  guard.ConstructorGuard
//	}
//
//	func (c SelectPartQuoteCommand) Validate() error {
//	    return c.guard.Validate(ErrSelectPartQuoteCommandIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard marks the owner as properly constructed.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when nil)
// if the guard is a zero value.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
