package model

import (
	"errors"
	"fmt"
)

// Build and lookup failures. A catalog build fails as a whole on any of
// these; callers match with errors.Is.
var (
	ErrSyntax              = errors.New("syntax error")
	ErrMalformedPitchToken = errors.New("malformed pitch token")
	ErrMissingField        = errors.New("missing field")
	ErrDuplicateField      = errors.New("duplicate field")
	ErrDuplicateEntry      = errors.New("duplicate entry")
	ErrUnresolvedAlias     = errors.New("unresolved alias")
	ErrBrokenAliasChain    = errors.New("broken alias chain")
	ErrNotFound            = errors.New("not found")
)

// ErrBadRequest marks a lookup whose arguments can never succeed.
var ErrBadRequest = errors.New("bad request")

// RecordError locates a failure inside one vocabulary entry.
type RecordError struct {
	Tag   string
	Name  string
	Field string
	Err   error
}

func (e *RecordError) Error() string {
	name := e.Name
	if name == "" {
		name = "?"
	}
	if e.Field == "" {
		return fmt.Sprintf("%s %q: %v", e.Tag, name, e.Err)
	}
	return fmt.Sprintf("%s %q field %q: %v", e.Tag, name, e.Field, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }
