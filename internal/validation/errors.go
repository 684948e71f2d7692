// Package validation holds the business-rule errors raised by the booking
// and thread engines. Every error carries a field-to-message map so callers
// can render per-field feedback.
package validation

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

var (
	ErrDateOrder        = errors.New("start date later than end date")
	ErrPastStart        = errors.New("start date in the past")
	ErrInvalidCapacity  = errors.New("invalid capacity")
	ErrInvalidPax       = errors.New("invalid pax")
	ErrInvalidState     = errors.New("invalid booking state")
	ErrCapacityExceeded = errors.New("capacity exceeded")
	ErrTripStarted      = errors.New("trip already started")
	ErrCycle            = errors.New("message cycle")
	ErrParentBooking    = errors.New("parent message belongs to another booking")
)

// Error is a rejected input. Err is one of the sentinel kinds above.
type Error struct {
	Err    error
	Fields map[string]string
}

func New(kind error, fields map[string]string) *Error {
	return &Error{Err: kind, Fields: fields}
}

// Field is shorthand for an error on a single field.
func Field(kind error, field, message string) *Error {
	return New(kind, map[string]string{field: message})
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Err.Error())
	for _, f := range e.FieldNames() {
		b.WriteString("; ")
		b.WriteString(f)
		b.WriteString(": ")
		b.WriteString(e.Fields[f])
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// FieldNames returns the fields in a stable order.
func (e *Error) FieldNames() []string {
	return slices.Sorted(maps.Keys(e.Fields))
}

// As extracts a *Error from err's chain.
func As(err error) (*Error, bool) {
	var verr *Error
	if errors.As(err, &verr) {
		return verr, true
	}
	return nil, false
}
