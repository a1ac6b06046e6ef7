package generate

import (
	"go/ast"
	"go/token"
	"sort"
	"strconv"

	"github.com/sirkon/errsum/internal/resolve"
	"github.com/sirkon/errsum/internal/synth"
	"github.com/sirkon/errsum/internal/typeref"
)

// imports hands out package names for qualified types and remembers imports to add.
type imports struct {
	// names of imported packages by import path.
	names map[string]string

	// taken holds every identifier declared at the file or package level of the file.
	taken map[string]bool

	// resolved package names of referenced packages by import path.
	resolved map[string]string

	added map[string]string
}

func newImports(file *ast.File, resolved map[string]string) *imports {
	m := &imports{
		names:    map[string]string{},
		taken:    map[string]bool{},
		resolved: resolved,
		added:    map[string]string{},
	}

	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}

		var name string
		switch {
		case spec.Name == nil:
			name = m.packageName(path)
		case spec.Name.Name == "_":
			continue
		default:
			name = spec.Name.Name
		}

		if name != "." {
			m.taken[name] = true
		}
		if _, ok := m.names[path]; !ok {
			m.names[path] = name
		}
	}

	for _, name := range topLevelNames(file) {
		m.taken[name] = true
	}

	return m
}

// qualify implements synth.Qualifier.
func (m *imports) qualify(ref typeref.Reference) string {
	if ref.Local() {
		return synth.TypeExpr(ref, "")
	}

	if name, ok := m.names[ref.Package]; ok {
		if name == "." {
			return synth.TypeExpr(ref, "")
		}
		return synth.TypeExpr(ref, name)
	}

	base := m.packageName(ref.Package)
	name := base
	for i := 1; m.taken[name]; i++ {
		name = base + strconv.Itoa(i)
	}

	m.taken[name] = true
	m.names[ref.Package] = name
	m.added[ref.Package] = name

	return synth.TypeExpr(ref, name)
}

func (m *imports) packageName(path string) string {
	if name, ok := m.resolved[path]; ok && name != "" {
		return name
	}

	return resolve.AssumedName(path)
}

// newImport is an import to add. Name is empty when the import path tells the package name.
type newImport struct {
	Name string
	Path string
}

// additions returns imports to add ordered by path.
func (m *imports) additions() []newImport {
	res := make([]newImport, 0, len(m.added))
	for path, name := range m.added {
		imp := newImport{Path: path}
		if name != resolve.AssumedName(path) {
			imp.Name = name
		}
		res = append(res, imp)
	}
	sort.Slice(res, func(i, j int) bool {
		return res[i].Path < res[j].Path
	})

	return res
}

// topLevelNames lists identifiers declared at the top level of a file.
func topLevelNames(file *ast.File) []string {
	var res []string
	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if d.Recv == nil {
				res = append(res, d.Name.Name)
			}
		case *ast.GenDecl:
			if d.Tok == token.IMPORT {
				continue
			}
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					res = append(res, s.Name.Name)
				case *ast.ValueSpec:
					for _, n := range s.Names {
						res = append(res, n.Name)
					}
				}
			}
		}
	}

	return res
}
