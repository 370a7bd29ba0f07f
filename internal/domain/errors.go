package domain

import "errors"

// Not-found sentinels, one per entity. The API layer maps these to 404 when
// the entity is the primary resource of the request and to 400 when it is a
// reference inside another resource (e.g. an order item's product).
var (
	ErrProductNotFound  = errors.New("Product not found")
	ErrSupplierNotFound = errors.New("Supplier not found")
	ErrOrderNotFound    = errors.New("Order not found")
)

// ValidationError reports missing or malformed input, an illegal status
// value, an invalid stock operation, or insufficient stock. Maps to 400.
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string { return e.msg }

// Validation builds a ValidationError with the given message.
func Validation(msg string) error {
	return &ValidationError{msg: msg}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}

// ConflictError reports a uniqueness violation (duplicate SKU or contact
// email). Both the application-level pre-check and the store's unique-index
// enforcement surface as this type. Maps to 400.
type ConflictError struct {
	msg string
}

func (e *ConflictError) Error() string { return e.msg }

// Conflict builds a ConflictError with the given message.
func Conflict(msg string) error {
	return &ConflictError{msg: msg}
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var cerr *ConflictError
	return errors.As(err, &cerr)
}

// IsNotFound reports whether err is any of the not-found sentinels.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrProductNotFound) ||
		errors.Is(err, ErrSupplierNotFound) ||
		errors.Is(err, ErrOrderNotFound)
}
