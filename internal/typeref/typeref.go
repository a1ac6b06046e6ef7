// Package typeref parses references to Go error types as they are written in errsum directives.
package typeref

import (
	"bytes"
	"encoding"
	"errors"
	"fmt"
	"go/token"
	"strconv"
	"strings"

	"golang.org/x/mod/module"
)

// Reference identifies a named type by the import path of its package and its name.
//
//	*"io/fs".PathError   // Package: "io/fs", Name: "PathError", Pointer: true
//	strconv.NumError     // Package: "strconv", Name: "NumError"
//	MyError              // Package: "", Name: "MyError"
type Reference struct {
	// Package is the import path of the package that declares the type.
	// Empty for types of the package being generated.
	Package string

	// Name is the declared identifier of the type within its package.
	Name string

	// Pointer is set for references to *T.
	Pointer bool

	// TypeArgs keeps the raw text between the brackets of an instantiated generic type.
	TypeArgs string
}

// Local reports whether the reference points to a type of the current package.
func (r Reference) Local() bool {
	return r.Package == ""
}

// Segments returns the import path elements followed by the type name.
func (r Reference) Segments() []string {
	if r.Package == "" {
		return []string{r.Name}
	}

	res := strings.Split(r.Package, "/")
	return append(res, r.Name)
}

// String renders the reference in the unquoted directive form.
func (r Reference) String() string {
	var b strings.Builder
	if r.Pointer {
		b.WriteByte('*')
	}
	if r.Package != "" {
		b.WriteString(r.Package)
		b.WriteByte('.')
	}
	b.WriteString(r.Name)
	if r.TypeArgs != "" {
		b.WriteByte('[')
		b.WriteString(r.TypeArgs)
		b.WriteByte(']')
	}

	return b.String()
}

// Parse parses a single type reference.
func Parse(s string) (Reference, error) {
	var r Reference
	if err := r.UnmarshalText([]byte(s)); err != nil {
		return Reference{}, err
	}

	return r, nil
}

var (
	_ encoding.TextUnmarshaler = (*Reference)(nil)
	_ encoding.TextMarshaler   = Reference{}
)

// UnmarshalText parses both quoted and unquoted forms:
//
//	*"gopkg.in/yaml.v3".TypeError
//	*gopkg.in/yaml.v3.TypeError
//	Local[T]
func (r *Reference) UnmarshalText(b []byte) error {
	s := string(bytes.TrimSpace(b))
	if s == "" {
		return errors.New("empty reference")
	}

	var res Reference
	rest := s
	if strings.HasPrefix(rest, "*") {
		res.Pointer = true
		rest = strings.TrimSpace(rest[1:])
	}

	if strings.HasPrefix(rest, `"`) {
		end := strings.Index(rest[1:], `"`)
		if end < 0 {
			return fmt.Errorf("unterminated quoted package in reference %q", s)
		}
		end++

		res.Package = rest[1:end]
		if res.Package == "" {
			return fmt.Errorf("package cannot be empty in reference %q", s)
		}

		rest = rest[end+1:]
		if !strings.HasPrefix(rest, ".") {
			return fmt.Errorf("reference must continue with a type name after the quoted package: %q", s)
		}
		rest = rest[1:]
	}

	// Import paths cannot contain brackets, so the first one opens type arguments.
	if i := strings.IndexByte(rest, '['); i >= 0 {
		if !strings.HasSuffix(rest, "]") {
			return fmt.Errorf("unterminated type arguments in reference %q", s)
		}
		res.TypeArgs = strings.TrimSpace(rest[i+1 : len(rest)-1])
		if res.TypeArgs == "" {
			return fmt.Errorf("empty type arguments in reference %q", s)
		}
		rest = rest[:i]
	}

	if res.Package == "" {
		if i := strings.LastIndexByte(rest, '.'); i >= 0 {
			res.Package = rest[:i]
			rest = rest[i+1:]
		}
	}
	res.Name = rest

	if !token.IsIdentifier(res.Name) {
		return fmt.Errorf("invalid type name %q in reference %q", res.Name, s)
	}

	if res.Package != "" {
		if err := module.CheckImportPath(res.Package); err != nil {
			return fmt.Errorf("invalid package in reference %q: %w", s, err)
		}
		if !token.IsExported(res.Name) {
			return fmt.Errorf("type %s of package %s is not exported", res.Name, res.Package)
		}
	}

	*r = res
	return nil
}

// MarshalText renders the reference in the quoted form.
func (r Reference) MarshalText() ([]byte, error) {
	if r.Name == "" {
		return nil, errors.New("cannot marshal Reference: empty Name")
	}

	var b strings.Builder
	if r.Pointer {
		b.WriteByte('*')
	}
	if r.Package != "" {
		b.WriteString(strconv.Quote(r.Package))
		b.WriteByte('.')
	}
	b.WriteString(r.Name)
	if r.TypeArgs != "" {
		b.WriteByte('[')
		b.WriteString(r.TypeArgs)
		b.WriteByte(']')
	}

	return []byte(b.String()), nil
}
