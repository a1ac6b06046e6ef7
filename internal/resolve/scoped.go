package resolve

import (
	"context"
	"fmt"
	"go/types"

	"github.com/sirkon/errsum/internal/typeref"
)

// Scoped resolves references through an already type-checked package: local references are looked
// up in its scope, foreign ones in its imports. References it cannot see are passed to Fallback.
type Scoped struct {
	Pkg      *types.Package
	Fallback Resolver
}

// Resolve implements Resolver.
func (s *Scoped) Resolve(ctx context.Context, dir string, ref typeref.Reference) (Resolution, error) {
	pkg := s.lookup(ref)
	if pkg == nil {
		if s.Fallback == nil {
			return Resolution{}, fmt.Errorf("%s: %w", ref, ErrUnresolved)
		}
		return s.Fallback.Resolve(ctx, dir, ref)
	}

	obj := pkg.Scope().Lookup(ref.Name)
	if obj == nil && ref.Local() && s.Fallback != nil {
		// The type may be declared in an errsum source file the checked package does not include.
		return s.Fallback.Resolve(ctx, dir, ref)
	}

	typ, err := checkObject(obj, ref)
	if err != nil {
		return Resolution{}, fmt.Errorf("%s: %w", ref, err)
	}

	res := Resolution{Type: typ}
	if !ref.Local() {
		res.PackageName = pkg.Name()
	}

	return res, nil
}

func (s *Scoped) lookup(ref typeref.Reference) *types.Package {
	if s.Pkg == nil {
		return nil
	}
	if ref.Local() {
		return s.Pkg
	}

	for _, imp := range s.Pkg.Imports() {
		if imp.Path() == ref.Package {
			return imp
		}
	}

	return nil
}
