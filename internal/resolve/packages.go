package resolve

import (
	"context"
	"fmt"
	"go/types"
	"sync"

	"golang.org/x/tools/go/packages"

	"github.com/sirkon/errsum/internal/typeref"
)

// Packages resolves references by loading the packages they point to. Loaded packages are cached,
// so a single instance should serve a whole generation run. It is safe for concurrent use.
type Packages struct {
	tags string

	mu    sync.Mutex
	cache map[string]*loaded
}

type loaded struct {
	once sync.Once
	pkg  *types.Package
	err  error
}

// NewPackages creates a Packages resolver. Local references are looked up in the package of the
// source file directory loaded with the given build tag set.
func NewPackages(tag string) *Packages {
	return &Packages{
		tags:  tag,
		cache: make(map[string]*loaded),
	}
}

// Resolve implements Resolver.
func (p *Packages) Resolve(ctx context.Context, dir string, ref typeref.Reference) (Resolution, error) {
	key, pattern := ref.Package, ref.Package
	if ref.Local() {
		key, pattern = "dir:"+dir, "."
	}

	pkg, err := p.load(ctx, key, dir, pattern)
	if err != nil {
		return Resolution{}, fmt.Errorf("load package of %s: %w", ref, err)
	}

	typ, err := checkObject(pkg.Scope().Lookup(ref.Name), ref)
	if err != nil {
		return Resolution{}, fmt.Errorf("%s: %w", ref, err)
	}

	res := Resolution{Type: typ}
	if !ref.Local() {
		res.PackageName = pkg.Name()
	}

	return res, nil
}

func (p *Packages) load(ctx context.Context, key, dir, pattern string) (*types.Package, error) {
	p.mu.Lock()
	l, ok := p.cache[key]
	if !ok {
		l = &loaded{}
		p.cache[key] = l
	}
	p.mu.Unlock()

	l.once.Do(func() {
		cfg := &packages.Config{
			Context: ctx,
			Mode:    packages.NeedName | packages.NeedTypes | packages.NeedImports | packages.NeedDeps,
			Dir:     dir,
		}
		if pattern == "." {
			// Broken packages have no export data, so they are checked from source.
			cfg.Mode |= packages.NeedSyntax | packages.NeedTypesInfo
			if p.tags != "" {
				cfg.BuildFlags = []string{"-tags=" + p.tags}
			}
		}

		pkgs, err := packages.Load(cfg, pattern)
		if err != nil {
			l.err = err
			return
		}
		if len(pkgs) != 1 || pkgs[0].Types == nil {
			l.err = fmt.Errorf("%w: package %s not found", ErrUnresolved, pattern)
			return
		}

		// Type errors are expected for local packages: errsum source files do not compile
		// before they are generated. What was declared is still in scope.
		if pattern != "." && len(pkgs[0].Errors) > 0 {
			l.err = fmt.Errorf("%w: %s", ErrUnresolved, pkgs[0].Errors[0])
			return
		}

		l.pkg = pkgs[0].Types
	})

	return l.pkg, l.err
}
