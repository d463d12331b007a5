package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fjod/swiftrail/domain"
)

var (
	ErrEmptyCart           = errors.New("cart is empty, nothing to checkout")
	ErrMissingSeat         = errors.New("every ticket needs a seat")
	ErrInvalidEmail        = errors.New("email address is malformed")
	ErrInvalidPayment      = errors.New("payment form is invalid")
	ErrInvalidTrip         = errors.New("trip details are invalid")
	ErrUnknownOption       = errors.New("unknown option")
	ErrTripsExist          = errors.New("trips already exist for this route and date")
	IllegalTransitionError = errors.New("illegal transition of checkout status")
)

// ValidationError rejects a request before anything is read or written.
type ValidationError struct {
	Err    error
	Fields []domain.FieldError
}

func newValidationError(err error, fields ...domain.FieldError) *ValidationError {
	return &ValidationError{Err: err, Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Err.Error()
	}
	parts := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		parts[i] = f.Field + ": " + f.Message
	}
	return fmt.Sprintf("%v (%s)", e.Err, strings.Join(parts, "; "))
}

func (e *ValidationError) Unwrap() error { return e.Err }

// PersistenceError is reported on a degraded outcome; checkout carries on
// with a fallback reference.
type PersistenceError struct {
	Op  string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persistence failed during %s: %v", e.Op, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// DeliveryError means the confirmation was not sent. The order it belongs
// to, if persisted, stays in place and can be resent.
type DeliveryError struct {
	OrderReference string
	Err            error
}

func (e *DeliveryError) Error() string {
	return fmt.Sprintf("confirmation for %s not delivered: %v", e.OrderReference, e.Err)
}

func (e *DeliveryError) Unwrap() error { return e.Err }

// DataError flags one cart item that lacks the data needed to issue it.
type DataError struct {
	Index  int
	Reason string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("item %d: %s", e.Index, e.Reason)
}
