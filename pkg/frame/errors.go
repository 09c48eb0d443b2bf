package frame

import "fmt"

// ParseError reports a row that could not be decoded under the declared
// schema while error tolerance was disabled.
type ParseError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("parse row %d column %q value %q: %v", e.Row, e.Column, e.Value, e.Err)
	}
	return fmt.Sprintf("parse row %d column %q value %q", e.Row, e.Column, e.Value)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaMismatchError reports column kinds that cannot be reconciled,
// typically during join or concat.
type SchemaMismatchError struct {
	Op     string
	Column string
	Left   Kind
	Right  Kind
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("%s: column %q kinds %s and %s cannot be reconciled", e.Op, e.Column, e.Left, e.Right)
}

// MissingColumnError reports a reference to a column the dataset does not have.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("unknown column: %s", e.Column)
}
