// Package guard provides the constructor guard used by value objects, entities and
// commands to tell a properly constructed value apart from its zero value.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when the guarded value was not
// constructed and no specific error was supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard marks a value as built through its constructor. Embed it as a
// private field and set it with NewConstructorGuard in the constructor only; the zero
// value of the enclosing struct then fails Validate.
//
// Example:
//
//	var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine")
//
//	type Line struct {
//	    quantity int
//	    guard    guard.ConstructorGuard
//	}
//
//	func (l Line) Validate() error {
//	    return l.guard.Validate(ErrLineIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard in the constructed state.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard is a zero value, nil otherwise.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
