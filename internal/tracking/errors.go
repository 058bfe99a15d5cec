package tracking

import "errors"

var (
	// ErrEmptyUpdate is returned when reconciliation is asked to apply zero columns.
	ErrEmptyUpdate = errors.New("tracking: empty update set")
	// ErrUnknownColumn marks a column outside the record schema.
	ErrUnknownColumn = errors.New("tracking: unknown column")
	// ErrInvalidVocabulary marks a vocabulary definition that cannot be used.
	ErrInvalidVocabulary = errors.New("tracking: invalid vocabulary")
)
