package domain

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidID         = errors.New("invalid id")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrIllegalTransition = errors.New("illegal status transition")
	ErrInvalidSignature  = errors.New("invalid payment signature")
	ErrDuplicate         = errors.New("duplicate")
	ErrValidation        = errors.New("validation failed")
)

// ParseID converts a hex identifier from a URL or payload into an ObjectID.
func ParseID(raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, raw)
	}
	return id, nil
}

// TransitionError describes a status change the order lifecycle forbids.
type TransitionError struct {
	From OrderStatus
	To   OrderStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot move order from %s to %s", e.From, e.To)
}

func (e *TransitionError) Unwrap() error {
	return ErrIllegalTransition
}

// StatusError reports a status value outside the accepted set.
type StatusError struct {
	Value string
	Valid []OrderStatus
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: %q", ErrInvalidStatus, e.Value)
}

func (e *StatusError) Unwrap() error {
	return ErrInvalidStatus
}

// ValidStrings lists the accepted values.
func (e *StatusError) ValidStrings() []string {
	return statusStrings(e.Valid)
}
