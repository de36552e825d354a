package domain

import (
	"errors"
	"fmt"
)

// Common domain errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrInvalidInput   = errors.New("invalid input")
	ErrUnauthorized   = errors.New("unauthorized")
	ErrForbidden      = errors.New("forbidden")
	ErrInternalServer = errors.New("internal server error")
)

// Ledger errors
var (
	ErrUnknownTransactionType = errors.New("unknown transaction type")
	ErrAggregationFailed      = errors.New("aggregation failed")
	ErrInvalidFilter          = errors.New("invalid filter")
)

// ClassificationError reports a transaction whose type is outside the classification table
type ClassificationError struct {
	TransactionID string
	Type          TransactionType
}

func (e *ClassificationError) Error() string {
	if e.TransactionID == "" {
		return fmt.Sprintf("%s: %q", ErrUnknownTransactionType, e.Type)
	}
	return fmt.Sprintf("%s: %q (transaction %s)", ErrUnknownTransactionType, e.Type, e.TransactionID)
}

func (e *ClassificationError) Unwrap() error {
	return ErrUnknownTransactionType
}

// AggregationError reports an internal failure inside a pipeline stage.
// It is distinct from an empty result.
type AggregationError struct {
	Stage string
	Cause error
}

func (e *AggregationError) Error() string {
	return fmt.Sprintf("%s in stage %s: %v", ErrAggregationFailed, e.Stage, e.Cause)
}

func (e *AggregationError) Unwrap() []error {
	return []error{ErrAggregationFailed, e.Cause}
}
