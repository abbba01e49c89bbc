package models

import (
	"errors"
	"fmt"
)

// NotFoundError indicates that a referenced resource does not exist in storage.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

func NewOrderNotFound(id string) *NotFoundError {
	return &NotFoundError{Resource: "order", ID: id}
}

func NewOrderItemNotFound(id string) *NotFoundError {
	return &NotFoundError{Resource: "order item", ID: id}
}

func NewProductNotFound(id string) *NotFoundError {
	return &NotFoundError{Resource: "product", ID: id}
}

func NewCustomerNotFound(id string) *NotFoundError {
	return &NotFoundError{Resource: "customer", ID: id}
}

// ValidationError indicates a violated business rule or a malformed value,
// e.g. a blank product name, a negative price or a currency mismatch.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with a formatted message.
func NewValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// IllegalStateError indicates an invariant violation inside a single
// aggregate detected at mutation time, e.g. removing more stock than is
// available or modifying an order that is no longer PENDING.
type IllegalStateError struct {
	Message string
}

func (e *IllegalStateError) Error() string {
	return e.Message
}

// NewIllegalStateError creates an IllegalStateError with a formatted message.
func NewIllegalStateError(format string, args ...interface{}) *IllegalStateError {
	return &IllegalStateError{Message: fmt.Sprintf(format, args...)}
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var target *NotFoundError
	return errors.As(err, &target)
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var target *ValidationError
	return errors.As(err, &target)
}

// IsIllegalState reports whether err is (or wraps) an IllegalStateError.
func IsIllegalState(err error) bool {
	var target *IllegalStateError
	return errors.As(err, &target)
}
