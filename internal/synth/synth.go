// Package synth synthesizes aggregate error types for annotated functions and rewrites
// the functions to return them.
//
// An aggregate is a sealed interface with one struct variant per source error type:
//
//	type ReadIntError interface {
//		error
//		isReadIntError()
//	}
//
//	type ReadIntErrorIoFsPath struct {
//		Err *fs.PathError
//	}
//
// Variants render and unwrap as the value they hold. A converter function generated along with
// the aggregate turns errors produced by the function body into variants.
package synth

import (
	"go.uber.org/multierr"

	"github.com/sirkon/errsum/internal/errsumrules"
	"github.com/sirkon/errsum/internal/naming"
	"github.com/sirkon/errsum/internal/typeref"
)

// Aggregate describes the aggregate error type of a single function.
type Aggregate struct {
	// Func is the display name of the function the aggregate belongs to.
	Func string

	Name      string
	Converter string
	Variants  []Variant
}

// Variant is a single alternative of an aggregate.
type Variant struct {
	// Name is the derived or aliased variant name.
	Name string

	// TypeName is the name of the generated Go type holding the variant.
	TypeName string

	Source typeref.Entry
}

// Build creates the aggregate of a function from the list of its source error types.
// Name collisions are all reported at once as *NameCollisionError combined with multierr.
func Build(sig Signature, entries []typeref.Entry) (*Aggregate, error) {
	if len(entries) == 0 {
		return nil, &DeclarationError{
			Func:   sig.Display(),
			Rule:   errsumrules.EmptySources(),
			Pos:    sig.Pos,
			Reason: "at least one source error type is required",
		}
	}

	if reserved(sig) {
		return nil, &DeclarationError{
			Func:   sig.Display(),
			Rule:   errsumrules.ReservedFunction(),
			Pos:    sig.Pos,
			Reason: "the signature of this function is fixed by the language",
		}
	}

	names, collisions := naming.Names(entries)
	if len(collisions) > 0 {
		var err error
		for _, c := range collisions {
			err = multierr.Append(err, &NameCollisionError{
				Func:   sig.Display(),
				Name:   c.Name,
				First:  c.First,
				Second: c.Second,
			})
		}
		return nil, err
	}

	name := naming.Aggregate(sig.RecvType, sig.Name)
	agg := &Aggregate{
		Func:      sig.Display(),
		Name:      name,
		Converter: naming.Converter(name),
		Variants:  make([]Variant, len(entries)),
	}
	for i, e := range entries {
		agg.Variants[i] = Variant{
			Name:     names[i],
			TypeName: naming.Variant(name, names[i]),
			Source:   e,
		}
	}

	return agg, nil
}

func reserved(sig Signature) bool {
	if sig.Recv != "" {
		return false
	}

	return sig.Name == "init" || (sig.Name == "main" && sig.Package == "main")
}
