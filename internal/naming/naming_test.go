package naming

import (
	"reflect"
	"testing"

	"github.com/sirkon/deepequal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirkon/errsum/internal/typeref"
)

func TestDerive(t *testing.T) {
	tests := []struct {
		ref  string
		want string
	}{
		{ref: "*io/fs.PathError", want: "IoFsPath"},
		{ref: "*strconv.NumError", want: "StrconvNum"},
		{ref: "*encoding/json.SyntaxError", want: "EncodingJsonSyntax"},
		{ref: "*os.LinkError", want: "OsLink"},
		{ref: "net.Error", want: "Net"},
		{ref: "*gopkg.in/yaml.v3.TypeError", want: "GopkgInYamlV3Type"},
		{ref: "*github.com/go-redis/redis/v8.Error", want: "GithubComGoRedisRedisV8"},
		{ref: "example.com/errs.ErrorCode", want: "ExampleComErrsCode"},
		{ref: "example.com/errs.Errors", want: "ExampleComErrsErrors"},
		{ref: "example.com/error.Bad", want: "ExampleComBad"},
		{ref: "*example.com/errs.Coded[int]", want: "ExampleComErrsCoded"},
		{ref: "parse_error", want: "Parse"},
		{ref: "MyError", want: "My"},
		{ref: "Error", want: "Error"},
		{ref: "ErrorError", want: "Error"},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			ref, err := typeref.Parse(tt.ref)
			require.NoError(t, err)

			got := Derive(ref)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, Derive(ref), "derivation must be deterministic")
		})
	}
}

func TestDerivePointerAgnostic(t *testing.T) {
	ptr, err := typeref.Parse("*io/fs.PathError")
	require.NoError(t, err)
	val, err := typeref.Parse("io/fs.PathError")
	require.NoError(t, err)

	assert.Equal(t, Derive(ptr), Derive(val))
}

func TestNames(t *testing.T) {
	parse := func(t *testing.T, text string) []typeref.Entry {
		t.Helper()
		entries, err := typeref.ParseList(text)
		require.NoError(t, err)
		return entries
	}

	t.Run("distinct", func(t *testing.T) {
		entries := parse(t, "*io/fs.PathError, *strconv.NumError")
		names, collisions := Names(entries)
		assert.Equal(t, []string{"IoFsPath", "StrconvNum"}, names)
		assert.Empty(t, collisions)
	})

	t.Run("alias", func(t *testing.T) {
		entries := parse(t, "*io/fs.PathError = Path, *strconv.NumError")
		names, collisions := Names(entries)
		assert.Equal(t, []string{"Path", "StrconvNum"}, names)
		assert.Empty(t, collisions)
	})

	t.Run("duplicate path", func(t *testing.T) {
		entries := parse(t, "*io/fs.PathError, *io/fs.PathError")
		names, collisions := Names(entries)
		assert.Equal(t, []string{"IoFsPath", "IoFsPath"}, names)

		expected := []Collision{
			{
				Name:   "IoFsPath",
				First:  entries[0],
				Second: entries[1],
			},
		}
		if !reflect.DeepEqual(expected, collisions) {
			deepequal.SideBySide(t, "collisions", expected, collisions)
			t.FailNow()
		}
	})

	t.Run("different paths same name", func(t *testing.T) {
		entries := parse(t, "io/fs.PathError, io.FsPathError, *strconv.NumError, Alias = IoFsPath")
		_, collisions := Names(entries)
		require.Len(t, collisions, 2)
		assert.Equal(t, entries[0], collisions[0].First)
		assert.Equal(t, entries[1], collisions[0].Second)
		assert.Equal(t, entries[0], collisions[1].First)
		assert.Equal(t, entries[3], collisions[1].Second)
	})

	t.Run("alias resolves collision", func(t *testing.T) {
		entries := parse(t, "io/fs.PathError, io.FsPathError = IoPath")
		_, collisions := Names(entries)
		assert.Empty(t, collisions)
	})
}

func TestAggregate(t *testing.T) {
	tests := []struct {
		recv string
		fn   string
		want string
	}{
		{fn: "ReadInt", want: "ReadIntError"},
		{fn: "readInt", want: "readIntError"},
		{fn: "read_int", want: "readIntError"},
		{fn: "Read_Int", want: "ReadIntError"},
		{recv: "Server", fn: "Load", want: "ServerLoadError"},
		{recv: "server", fn: "Load", want: "serverLoadError"},
		{recv: "Server", fn: "load", want: "serverLoadError"},
	}

	for _, tt := range tests {
		t.Run(tt.recv+"."+tt.fn, func(t *testing.T) {
			assert.Equal(t, tt.want, Aggregate(tt.recv, tt.fn))
		})
	}
}

func TestConverterAndVariant(t *testing.T) {
	assert.Equal(t, "toReadIntError", Converter("ReadIntError"))
	assert.Equal(t, "toReadIntError", Converter("readIntError"))
	assert.Equal(t, "isReadIntError", Marker("readIntError"))
	assert.Equal(t, "ReadIntErrorIoFsPath", Variant("ReadIntError", "IoFsPath"))
}
