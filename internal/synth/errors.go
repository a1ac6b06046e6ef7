package synth

import (
	"fmt"
	"go/token"

	"github.com/sirkon/errsum/internal/errsumrules"
	"github.com/sirkon/errsum/internal/typeref"
)

// DeclarationError is returned when an annotated declaration cannot get an aggregate error.
type DeclarationError struct {
	Func   string
	Rule   errsumrules.Rule
	Pos    token.Pos
	Reason string

	// Err is the underlying failure, like a reference parsing error. May be nil.
	Err error
}

func (e *DeclarationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Func, e.Reason, e.Err)
	}

	return fmt.Sprintf("%s: %s", e.Func, e.Reason)
}

func (e *DeclarationError) Unwrap() error {
	return e.Err
}

// NameCollisionError is returned when two source error types of a function derive the same
// variant name.
type NameCollisionError struct {
	Func   string
	Name   string
	First  typeref.Entry
	Second typeref.Entry
}

func (e *NameCollisionError) Error() string {
	return fmt.Sprintf(
		"%s: variant name %s is derived from both %s and %s, set an alias with '= Name' for one of them",
		e.Func,
		e.Name,
		e.First,
		e.Second,
	)
}
