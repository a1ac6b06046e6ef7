package resolve

import (
	"context"
	"maps"
	"regexp"
	"strings"

	"github.com/sirkon/errsum/internal/typeref"
)

// Assumed resolves references without loading anything: the package name is taken from the
// known names table or guessed from the import path the way goimports does it.
type Assumed struct {
	known map[string]string
}

// NewAssumed creates an Assumed resolver. custom maps import paths to package names and
// takes precedence over the predefined table.
func NewAssumed(custom map[string]string) *Assumed {
	predefined := map[string]string{
		// Paths whose last element does not name the package.
		"gopkg.in/yaml.v2":                         "yaml",
		"gopkg.in/yaml.v3":                         "yaml",
		"github.com/json-iterator/go":              "jsoniter",
		"github.com/go-sql-driver/mysql":           "mysql",
		"github.com/mattn/go-sqlite3":              "sqlite3",
		"github.com/santhosh-tekuri/jsonschema/v5": "jsonschema",
		"github.com/go-playground/validator/v10":   "validator",
		"github.com/golang-jwt/jwt/v5":             "jwt",
	}

	known := maps.Clone(predefined)
	if custom != nil {
		// Custom entries override predefined ones.
		maps.Insert(known, maps.All(custom))
	}

	return &Assumed{known: known}
}

// Resolve implements Resolver.
func (a *Assumed) Resolve(_ context.Context, _ string, ref typeref.Reference) (Resolution, error) {
	if ref.Local() {
		return Resolution{}, nil
	}

	return Resolution{PackageName: a.PackageName(ref.Package)}, nil
}

// PackageName returns the name of the package at the given import path.
func (a *Assumed) PackageName(path string) string {
	if name, ok := a.known[path]; ok {
		return name
	}

	return AssumedName(path)
}

var majorVersion = regexp.MustCompile(`^v[0-9]+$`)

// AssumedName guesses the package name from an import path:
//
//	strconv                         → strconv
//	github.com/go-redis/redis/v8    → redis
//	github.com/mattn/go-colorable   → colorable
//	github.com/some/client-go       → client
//	gopkg.in/check.v1               → check
func AssumedName(path string) string {
	elems := strings.Split(path, "/")
	name := elems[len(elems)-1]
	if len(elems) > 1 && majorVersion.MatchString(name) {
		name = elems[len(elems)-2]
	}

	name = strings.TrimPrefix(name, "go-")
	name = strings.TrimSuffix(name, "-go")
	name = strings.TrimSuffix(name, ".go")
	if i := strings.IndexAny(name, ".-"); i > 0 {
		name = name[:i]
	}

	return name
}
