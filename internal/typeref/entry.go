package typeref

import (
	"fmt"
	"go/token"
	"strconv"
	"strings"
)

// Entry is a single element of a directive list: a type reference with an optional variant name override.
//
//	*io/fs.PathError = Path // Ref: *"io/fs".PathError, Alias: "Path"
type Entry struct {
	Ref   Reference
	Alias string

	// Raw is the entry text as written.
	Raw string
}

func (e Entry) String() string {
	if e.Alias == "" {
		return e.Ref.String()
	}

	return e.Ref.String() + " = " + e.Alias
}

// ParseList parses a comma separated list of entries. An empty text gives an empty list,
// a single trailing comma is allowed.
func ParseList(text string) ([]Entry, error) {
	parts, err := splitTopLevel(text)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(parts[len(parts)-1]) == "" {
		parts = parts[:len(parts)-1]
	}
	if len(parts) == 0 {
		return nil, nil
	}

	res := make([]Entry, 0, len(parts))
	for i, part := range parts {
		if strings.TrimSpace(part) == "" {
			return nil, fmt.Errorf("empty entry at position %d", i+1)
		}

		entry, err := ParseEntry(part)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}
		res = append(res, entry)
	}

	return res, nil
}

// ParseEntry parses a single list entry.
func ParseEntry(text string) (Entry, error) {
	raw := strings.TrimSpace(text)
	refText, alias, hasAlias := cutAlias(raw)

	ref, err := Parse(refText)
	if err != nil {
		return Entry{}, err
	}

	if hasAlias {
		alias = strings.TrimSpace(alias)
		if strings.HasPrefix(alias, `"`) {
			v, err := strconv.Unquote(alias)
			if err != nil {
				return Entry{}, fmt.Errorf("invalid quoted variant name %s: %w", alias, err)
			}
			alias = v
		}
		if !token.IsIdentifier(alias) {
			return Entry{}, fmt.Errorf("variant name %q is not an identifier", alias)
		}
	}

	return Entry{
		Ref:   ref,
		Alias: alias,
		Raw:   raw,
	}, nil
}

// cutAlias splits "ref = Alias" at the first '=' outside quotes and brackets.
func cutAlias(s string) (string, string, bool) {
	depth := 0
	quoted := false
	for i, c := range s {
		switch {
		case c == '"':
			quoted = !quoted
		case quoted:
		case c == '[':
			depth++
		case c == ']':
			depth--
		case c == '=' && depth == 0:
			return s[:i], s[i+1:], true
		}
	}

	return s, "", false
}

// splitTopLevel splits at commas which are not inside quotes or brackets: type arguments have their own commas.
func splitTopLevel(s string) ([]string, error) {
	var res []string
	depth := 0
	quoted := false
	start := 0
	for i, c := range s {
		switch {
		case c == '"':
			quoted = !quoted
		case quoted:
		case c == '[':
			depth++
		case c == ']':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced ']' at offset %d", i)
			}
		case c == ',' && depth == 0:
			res = append(res, s[start:i])
			start = i + 1
		}
	}

	if quoted {
		return nil, fmt.Errorf("unterminated quote")
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced '['")
	}

	return append(res, s[start:]), nil
}
