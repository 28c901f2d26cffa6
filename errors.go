package auragold

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedJSON is returned when import content is not valid JSON.
	ErrMalformedJSON = errors.New("malformed JSON")
	// ErrSchemaMismatch is returned when valid JSON does not describe ledgers.
	ErrSchemaMismatch = errors.New("schema mismatch")
	// ErrUnrecognizedImport is returned when the top-level shape of an import is unknown.
	ErrUnrecognizedImport = errors.New("unrecognized import format")
	// ErrLedgerNotFound is returned when a ledger id does not exist.
	ErrLedgerNotFound = errors.New("ledger not found")
	// ErrRecordNotFound is returned when a record id does not exist in a ledger.
	ErrRecordNotFound = errors.New("record not found")
)

// NormalizeError describes why a JSON value could not be normalized.
//
// Path locates the offending value, e.g. "payload.ledgers[2].records[0].grams".
type NormalizeError struct {
	Path   string
	Reason string
	Err    error // optional cause, such as ErrUnrecognizedImport
}

func (e *NormalizeError) Error() string {
	if e.Path == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Reason)
}

// Is makes every NormalizeError match ErrSchemaMismatch.
func (e *NormalizeError) Is(target error) bool { return target == ErrSchemaMismatch }

func (e *NormalizeError) Unwrap() error { return e.Err }

// at returns a copy of err with its path prefixed by p.
func at(p string, err error) error {
	var ne *NormalizeError
	if !errors.As(err, &ne) {
		return err
	}
	path := p
	if ne.Path != "" {
		if ne.Path[0] == '[' {
			path += ne.Path
		} else {
			path += "." + ne.Path
		}
	}
	return &NormalizeError{Path: path, Reason: ne.Reason, Err: ne.Err}
}

// ImportErrorKind classifies import failures.
type ImportErrorKind int

const (
	// MalformedJSON means the content does not parse.
	MalformedJSON ImportErrorKind = iota
	// SchemaMismatch means the content parses but does not normalize.
	SchemaMismatch
)

func (k ImportErrorKind) String() string {
	switch k {
	case MalformedJSON:
		return "malformed JSON"
	case SchemaMismatch:
		return "schema mismatch"
	default:
		return "unknown"
	}
}

// ImportError is returned by the Decode functions of the import format.
type ImportError struct {
	Kind ImportErrorKind
	Err  error
}

func (e *ImportError) Error() string {
	return fmt.Sprintf("cannot import: %s: %v", e.Kind, e.Err)
}

func (e *ImportError) Unwrap() error { return e.Err }

// Is matches the sentinel corresponding to the error kind.
func (e *ImportError) Is(target error) bool {
	switch e.Kind {
	case MalformedJSON:
		return target == ErrMalformedJSON
	case SchemaMismatch:
		return target == ErrSchemaMismatch
	}
	return false
}
