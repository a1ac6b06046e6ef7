// Package resolve turns type references into what the generator needs to emit them: the name to
// qualify a type with and, when a type checker is at hand, the type itself.
package resolve

import (
	"context"
	"errors"
	"go/types"

	"github.com/sirkon/errsum/internal/typeref"
)

var (
	// ErrUnresolved is returned when a reference does not denote a type.
	ErrUnresolved = errors.New("unresolved type reference")

	// ErrNotError is returned when a referenced type does not implement error.
	ErrNotError = errors.New("type does not implement error")
)

// Resolution is the outcome of a successful resolution.
type Resolution struct {
	// PackageName is the name the package declares itself with. Empty for local references.
	PackageName string

	// Type is the resolved type, nil when the resolver does not type-check.
	Type types.Type
}

// Resolver resolves references met in a source file located in dir.
type Resolver interface {
	Resolve(ctx context.Context, dir string, ref typeref.Reference) (Resolution, error)
}

var errorType = types.Universe.Lookup("error").Type().Underlying().(*types.Interface)

// checkObject turns a looked up object into a resolution of ref.
func checkObject(obj types.Object, ref typeref.Reference) (types.Type, error) {
	tn, ok := obj.(*types.TypeName)
	if !ok || tn == nil {
		return nil, ErrUnresolved
	}

	typ := tn.Type()
	if ref.Pointer {
		typ = types.NewPointer(typ)
	}

	// Instantiated generics are left to the Go type checker.
	if ref.TypeArgs != "" {
		return typ, nil
	}

	if !types.Implements(typ, errorType) {
		return typ, ErrNotError
	}

	return typ, nil
}
