package model

import (
	"errors"
	"fmt"
	"strings"
)

// Error taxonomy shared by every pipeline stage. Callers match with errors.Is.
var (
	ErrSourceNotFound          = errors.New("source not found")
	ErrMalformedArgument       = errors.New("malformed argument")
	ErrSchemaValidation        = errors.New("schema validation failed")
	ErrUnknownInstruction      = errors.New("unknown instruction")
	ErrMissingKey              = errors.New("missing key")
	ErrInconsistentRecordShape = errors.New("inconsistent record shape")
	ErrTypeMismatch            = errors.New("type mismatch")
	ErrLayerParse              = errors.New("layer parse error")
)

// LocatedError attaches the offending file, line and field to a taxonomy error
type LocatedError struct {
	Source string
	Line   int
	Field  string
	Err    error
}

func (e *LocatedError) Error() string {
	var loc []string
	if e.Source != "" {
		if e.Line > 0 {
			loc = append(loc, fmt.Sprintf("%s:%d", e.Source, e.Line))
		} else {
			loc = append(loc, e.Source)
		}
	}
	if e.Field != "" {
		loc = append(loc, fmt.Sprintf("field %q", e.Field))
	}
	if len(loc) == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", strings.Join(loc, " "), e.Err)
}

func (e *LocatedError) Unwrap() error {
	return e.Err
}

// AtLine wraps err with a source path and 1-based line number
func AtLine(source string, line int, err error) error {
	if err == nil {
		return nil
	}
	return &LocatedError{Source: source, Line: line, Err: err}
}

// AtField wraps err with a source and field name
func AtField(source, field string, err error) error {
	if err == nil {
		return nil
	}
	return &LocatedError{Source: source, Field: field, Err: err}
}
