// Package naming derives identifiers for synthesized aggregate errors and their variants.
//
// All functions here are pure: the same input always gives the same identifier.
package naming

import (
	"go/token"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sirkon/errsum/internal/typeref"
)

const errorWord = "Error"

// Derive returns the variant name for the given type reference.
//
//	*io/fs.PathError          → IoFsPath
//	*strconv.NumError         → StrconvNum
//	*encoding/json.SyntaxError → EncodingJsonSyntax
//	Error                     → Error
func Derive(ref typeref.Reference) string {
	var b strings.Builder
	for _, seg := range ref.Segments() {
		b.WriteString(dropErrorWord(camel(seg)))
	}

	if b.Len() == 0 {
		return errorWord
	}

	return b.String()
}

// Collision describes two entries deriving the same variant name.
type Collision struct {
	Name   string
	First  typeref.Entry
	Second typeref.Entry
}

// Names returns variant names for entries in their order, aliases take precedence over derived
// names. Every entry whose name was already taken by a previous one is reported as a collision.
func Names(entries []typeref.Entry) ([]string, []Collision) {
	names := make([]string, len(entries))
	owners := make(map[string]int, len(entries))
	var collisions []Collision
	for i, e := range entries {
		name := e.Alias
		if name == "" {
			name = Derive(e.Ref)
		}
		names[i] = name

		if j, ok := owners[name]; ok {
			collisions = append(collisions, Collision{
				Name:   name,
				First:  entries[j],
				Second: e,
			})
			continue
		}
		owners[name] = i
	}

	return names, collisions
}

// Aggregate returns the aggregate error name of a function. recv is the base type name of
// the receiver for methods and empty for functions.
//
//	Aggregate("", "ReadInt")       → ReadIntError
//	Aggregate("", "read_int")      → readIntError
//	Aggregate("Server", "Load")    → ServerLoadError
//	Aggregate("server", "Load")    → serverLoadError
func Aggregate(recv, fn string) string {
	name := camel(recv) + camel(fn) + errorWord
	if token.IsExported(fn) && (recv == "" || token.IsExported(recv)) {
		return name
	}

	return unexport(name)
}

// Converter returns the name of the function converting plain errors into the aggregate.
func Converter(aggregate string) string {
	return "to" + export(aggregate)
}

// Marker returns the name of the unexported method sealing the aggregate interface.
func Marker(aggregate string) string {
	return "is" + export(aggregate)
}

// Variant returns the Go type name of an aggregate variant.
func Variant(aggregate, variant string) string {
	return aggregate + variant
}

// camel splits s into words at runs of non-alphanumeric runes and capitalizes every word.
// Letters after the first one keep their case, so ParseIntError stays ParseIntError.
func camel(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	caser := cases.Title(language.Und, cases.NoLower)
	var b strings.Builder
	for _, w := range words {
		b.WriteString(caser.String(w))
	}

	return b.String()
}

// dropErrorWord removes every camel-case word "Error" from s: an occurrence counts as a word
// when the next rune does not continue it in lower case.
func dropErrorWord(s string) string {
	var b strings.Builder
	for {
		i := strings.Index(s, errorWord)
		if i < 0 {
			b.WriteString(s)
			return b.String()
		}

		rest := s[i+len(errorWord):]
		next, _ := utf8.DecodeRuneInString(rest)
		if rest != "" && unicode.IsLower(next) {
			b.WriteString(s[:i+len(errorWord)])
		} else {
			b.WriteString(s[:i])
		}
		s = rest
	}
}

func export(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}

func unexport(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}
