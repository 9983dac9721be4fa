package guard

import "errors"

// ErrDefaultConstructorGuard is the default error returned by ConstructorGuard.Validate()
// when a nil error is passed as the validation error. This ensures that validation
// always fails with a meaningful message even if no specific error is provided.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard ensures value objects and commands are only created through
// their designated constructor functions. By embedding a ConstructorGuard in a
// struct, a zero-value instance can be distinguished from a properly constructed
// one, so validation rules enforced by the constructor cannot be bypassed.
//
// Example usage:
//
//	var ErrDraftNotConstructed = errors.New("Draft must be created via NewDraft")
//
//	type Draft struct {
//	    customer string
//	    guard    guard.ConstructorGuard
//	}
//
//	func NewDraft(customer string) (Draft, error) {
//	    if customer == "" {
//	        return Draft{}, errors.New("customer is required")
//	    }
//	    return Draft{
//	        customer: customer,
//	        guard:    guard.NewConstructorGuard(),
//	    }, nil
//	}
//
//	func (d Draft) Validate() error {
//	    return d.guard.Validate(ErrDraftNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard creates a ConstructorGuard that marks an object as
// properly constructed. Call it in the constructor of guarded objects.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate checks whether the guarded object was created through its
// constructor. Returns nil for constructed objects; otherwise returns
// validationError, or ErrDefaultConstructorGuard when validationError is nil.
func (g ConstructorGuard) Validate(validationError error) error {
	if validationError == nil {
		validationError = ErrDefaultConstructorGuard
	}
	if !g.isConstructed {
		return validationError
	}
	return nil
}
