package resolve

import (
	"context"
	"errors"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirkon/errsum/internal/typeref"
)

func TestAssumedName(t *testing.T) {
	tests := map[string]string{
		"strconv":                       "strconv",
		"io/fs":                         "fs",
		"github.com/go-redis/redis/v8":  "redis",
		"github.com/mattn/go-colorable": "colorable",
		"github.com/some/client-go":     "client",
		"gopkg.in/check.v1":             "check",
		"example.com/v2":                "example",
		"example.com/pkg.go":            "pkg",
	}

	for path, want := range tests {
		t.Run(path, func(t *testing.T) {
			assert.Equal(t, want, AssumedName(path))
		})
	}
}

func TestAssumed(t *testing.T) {
	a := NewAssumed(map[string]string{
		"example.com/lib":  "library",
		"gopkg.in/yaml.v3": "yamlv3",
	})
	ctx := context.Background()

	res, err := a.Resolve(ctx, ".", typeref.Reference{Package: "example.com/lib", Name: "Err"})
	require.NoError(t, err)
	assert.Equal(t, "library", res.PackageName)
	assert.Nil(t, res.Type)

	assert.Equal(t, "yamlv3", a.PackageName("gopkg.in/yaml.v3"), "custom entries win")
	assert.Equal(t, "jsoniter", a.PackageName("github.com/json-iterator/go"))
	assert.Equal(t, "fs", a.PackageName("io/fs"))

	res, err = a.Resolve(ctx, ".", typeref.Reference{Name: "Local"})
	require.NoError(t, err)
	assert.Equal(t, Resolution{}, res)

	// Predefined table must not be shared between instances.
	assert.Equal(t, "yaml", NewAssumed(nil).PackageName("gopkg.in/yaml.v3"))
}

const scopedSource = `package sample

import (
	"io/fs"
	"strconv"
)

type LocalError struct{}

func (LocalError) Error() string { return "local" }

type notAnError struct{}

var (
	_ *fs.PathError
	_ *strconv.NumError
)
`

func checkScopedSource(t *testing.T) *types.Package {
	t.Helper()

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "sample.go", scopedSource, 0)
	require.NoError(t, err)

	conf := types.Config{Importer: importer.ForCompiler(fset, "source", nil)}
	pkg, err := conf.Check("example.com/sample", fset, []*ast.File{file}, nil)
	require.NoError(t, err)

	return pkg
}

type recordingResolver struct {
	refs []typeref.Reference
}

func (r *recordingResolver) Resolve(_ context.Context, _ string, ref typeref.Reference) (Resolution, error) {
	r.refs = append(r.refs, ref)
	return Resolution{PackageName: "fallback"}, nil
}

func TestScoped(t *testing.T) {
	pkg := checkScopedSource(t)
	fallback := &recordingResolver{}
	s := &Scoped{Pkg: pkg, Fallback: fallback}
	ctx := context.Background()

	t.Run("foreign pointer", func(t *testing.T) {
		res, err := s.Resolve(ctx, ".", typeref.Reference{Package: "io/fs", Name: "PathError", Pointer: true})
		require.NoError(t, err)
		assert.Equal(t, "fs", res.PackageName)
		require.NotNil(t, res.Type)
		assert.Equal(t, "*io/fs.PathError", res.Type.String())
	})

	t.Run("foreign value is not an error", func(t *testing.T) {
		_, err := s.Resolve(ctx, ".", typeref.Reference{Package: "strconv", Name: "NumError"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotError))
	})

	t.Run("foreign missing", func(t *testing.T) {
		_, err := s.Resolve(ctx, ".", typeref.Reference{Package: "strconv", Name: "NopeError"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrUnresolved))
	})

	t.Run("local value", func(t *testing.T) {
		res, err := s.Resolve(ctx, ".", typeref.Reference{Name: "LocalError"})
		require.NoError(t, err)
		assert.Empty(t, res.PackageName)
		assert.NotNil(t, res.Type)
	})

	t.Run("local not an error", func(t *testing.T) {
		_, err := s.Resolve(ctx, ".", typeref.Reference{Name: "notAnError", Pointer: true})
		assert.True(t, errors.Is(err, ErrNotError))
	})

	t.Run("fallbacks", func(t *testing.T) {
		res, err := s.Resolve(ctx, ".", typeref.Reference{Package: "example.com/other", Name: "Err"})
		require.NoError(t, err)
		assert.Equal(t, "fallback", res.PackageName)

		_, err = s.Resolve(ctx, ".", typeref.Reference{Name: "DeclaredInSourceFile"})
		require.NoError(t, err)

		require.Len(t, fallback.refs, 2)
		assert.Equal(t, "example.com/other", fallback.refs[0].Package)
		assert.Equal(t, "DeclaredInSourceFile", fallback.refs[1].Name)
	})

	t.Run("no fallback", func(t *testing.T) {
		_, err := (&Scoped{Pkg: pkg}).Resolve(ctx, ".", typeref.Reference{Package: "example.com/other", Name: "Err"})
		assert.True(t, errors.Is(err, ErrUnresolved))
	})
}
