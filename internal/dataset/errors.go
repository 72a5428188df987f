package dataset

import (
	"errors"
	"fmt"
)

// Sentinel errors matched with errors.Is.
var (
	ErrMalformedDataset    = errors.New("malformed dataset")
	ErrMissingField        = errors.New("missing required field")
	ErrDuplicateIdentifier = errors.New("duplicate identifier")
)

// MalformedDatasetError reports input that is not an array of buyer objects.
// Index is -1 when the document itself is invalid.
type MalformedDatasetError struct {
	Index  int
	Reason string
	Err    error
}

func (e *MalformedDatasetError) Error() string {
	msg := "malformed dataset: " + e.Reason
	if e.Index >= 0 {
		msg = fmt.Sprintf("malformed dataset: record %d: %s", e.Index, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedDatasetError) Is(target error) bool { return target == ErrMalformedDataset }

func (e *MalformedDatasetError) Unwrap() error { return e.Err }

// MissingFieldError reports a record lacking a required field.
// It also matches ErrMalformedDataset.
type MissingFieldError struct {
	Index int
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("record %d: missing required field %q", e.Index, e.Field)
}

func (e *MissingFieldError) Is(target error) bool {
	return target == ErrMissingField || target == ErrMalformedDataset
}

// DuplicateIdentifierError reports an id used by more than one record.
type DuplicateIdentifierError struct {
	ID       string
	Name     string
	Existing string
}

func (e *DuplicateIdentifierError) Error() string {
	return fmt.Sprintf("duplicate identifier %q: %q collides with %q", e.ID, e.Name, e.Existing)
}

func (e *DuplicateIdentifierError) Is(target error) bool { return target == ErrDuplicateIdentifier }
