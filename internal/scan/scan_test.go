package scan

import (
	"go/parser"
	"go/token"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const source = `//go:build errsum

package sample

//errsum:errors Detached

// Config is not a function.
//
//errsum:errors *io/fs.PathError
type Config struct {
	//errsum:errors InField
	Path string
}

// ReadInt reads.
//
//errsum:errors *io/fs.PathError, *strconv.NumError
func ReadInt(path string) int64 {
	//errsum:errors InBody
	return 0, nil
}

//errsum:errorsExtra is another directive
func Other() {}

//errsum:errors First
//errsum:errors Second
func (s *Server) Twice() {
	return nil
}

//errsum:errors
func Empty() {
	return nil
}
`

func TestScannerFile(t *testing.T) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "sample.go", source, parser.ParseComments)
	require.NoError(t, err)

	res := New("errsum:errors").File(file)

	funcs := map[string]string{}
	for _, d := range res.Funcs {
		funcs[d.Func.Name.Name] = d.Args
	}
	assert.Equal(t, map[string]string{
		"ReadInt": "*io/fs.PathError, *strconv.NumError",
		"Twice":   "First",
		"Empty":   "",
	}, funcs)

	require.Len(t, res.Duplicates, 1)
	assert.Equal(t, "Twice", res.Duplicates[0].Func.Name.Name)
	assert.Equal(t, "Second", res.Duplicates[0].Args)

	stray := map[string]Placement{}
	for _, s := range res.Stray {
		stray[s.Comment.Text] = s.Placement
	}
	assert.Equal(t, map[string]Placement{
		"//errsum:errors Detached":         PlacementDetached,
		"//errsum:errors *io/fs.PathError": PlacementDeclaration,
		"//errsum:errors InField":          PlacementDeclaration,
		"//errsum:errors InBody":           PlacementFunction,
	}, stray)
}

func TestScannerFileWithoutDirectives(t *testing.T) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "sample.go", "package sample\n\n// F does nothing.\nfunc F() {}\n", parser.ParseComments)
	require.NoError(t, err)

	res := New("errsum:errors").File(file)
	assert.Empty(t, res.Funcs)
	assert.Empty(t, res.Duplicates)
	assert.Empty(t, res.Stray)
}

func TestScannerMatch(t *testing.T) {
	s := New("errsum:errors")
	tests := []struct {
		text string
		args string
		ok   bool
	}{
		{text: "//errsum:errors A, B", args: "A, B", ok: true},
		{text: "//errsum:errors\tA", args: "A", ok: true},
		{text: "//errsum:errors", args: "", ok: true},
		{text: "// errsum:errors A"},
		{text: "//errsum:errorsA"},
		{text: "/*errsum:errors A*/"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			args, ok := s.Match(tt.text)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.args, args)
		})
	}
}

func TestPlacementString(t *testing.T) {
	assert.Equal(t, "inside a function", PlacementFunction.String())
	assert.Equal(t, "unknown placement", Placement(0).String())
}
