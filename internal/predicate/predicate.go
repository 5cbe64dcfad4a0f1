// Package predicate parses and evaluates the `check` subcommand's
// mini-language against a Report, using the Field Registry as its
// source of valid paths and types.
package predicate

import (
	"fmt"
	"strings"

	"github.com/technicalpickles/envsense/internal/registry"
	"github.com/technicalpickles/envsense/internal/report"
)

// Predicate is a parsed, not-yet-evaluated expression: `!`? path (`=`
// literal)?
type Predicate struct {
	Raw     string
	Negate  bool
	Path    string
	HasEq   bool
	Literal string
}

// String renders the predicate back into its concrete syntax. For any
// valid input, Parse(p.String()) parses to an equivalent Predicate.
func (p *Predicate) String() string {
	var b strings.Builder
	if p.Negate {
		b.WriteByte('!')
	}
	b.WriteString(p.Path)
	if p.HasEq {
		b.WriteByte('=')
		b.WriteString(p.Literal)
	}
	return b.String()
}

// Parse implements the grammar:
//
//	predicate := '!'? atom
//	atom      := path ('=' literal)?
//	path      := ident ('.' ident)*
//	ident     := [A-Za-z][A-Za-z0-9_]*
//	literal   := unquoted | '"' any-but-quote* '"'
func Parse(src string) (*Predicate, error) {
	raw := src
	rest := src

	negate := false
	if strings.HasPrefix(rest, "!") {
		negate = true
		rest = rest[1:]
	}

	if rest == "" {
		return nil, syntaxErr(raw, len(raw), "empty predicate")
	}

	eqIdx := strings.IndexByte(rest, '=')
	var pathPart, litPart string
	hasEq := eqIdx >= 0
	if hasEq {
		pathPart = rest[:eqIdx]
		litPart = rest[eqIdx+1:]
	} else {
		pathPart = rest
	}

	if err := validatePath(raw, pathPart); err != nil {
		return nil, err
	}

	literal := litPart
	if hasEq {
		literal = unquote(litPart)
	}

	return &Predicate{
		Raw:     raw,
		Negate:  negate,
		Path:    pathPart,
		HasEq:   hasEq,
		Literal: literal,
	}, nil
}

func validatePath(raw, path string) error {
	if path == "" {
		return syntaxErr(raw, len(raw), "empty field path")
	}
	segments := strings.Split(path, ".")
	offset := strings.Index(raw, path)
	if offset < 0 {
		offset = 0
	}
	pos := offset
	for i, seg := range segments {
		if i > 0 {
			pos++ // the '.' separator
		}
		if seg == "" {
			return syntaxErr(raw, pos, "empty path segment")
		}
		for j, r := range seg {
			if j == 0 && !isIdentStart(r) {
				return syntaxErr(raw, pos+j, "unexpected character %q in field path", r)
			}
			if j > 0 && !isIdentCont(r) {
				return syntaxErr(raw, pos+j, "unexpected character %q in field path", r)
			}
		}
		pos += len(seg)
	}
	return nil
}

func isIdentStart(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

func isIdentCont(r rune) bool {
	return isIdentStart(r) || (r >= '0' && r <= '9') || r == '_'
}

func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func syntaxErr(raw string, pos int, format string, args ...any) error {
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	return &Error{
		Kind:      KindInvalidSyntax,
		Predicate: raw,
		Message:   msg,
		Position:  pos,
	}
}

// Evaluate checks p against r using the Field Registry.
func Evaluate(p *Predicate, r *report.Report) (bool, error) {
	field, ok := registry.Lookup(p.Path)
	if !ok {
		return false, &Error{
			Kind:        KindInvalidField,
			Predicate:   p.Raw,
			Message:     "unknown field \"" + p.Path + "\"",
			Suggestions: suggest(p.Path, registry.Paths()),
		}
	}

	var result bool
	if p.HasEq {
		present := true
		if field.Type != registry.TypeObject {
			_, present = field.Read(r)
		}
		result = present && stringify(field, r) == p.Literal
	} else {
		result = evaluateField(field, r)
	}

	if p.Negate {
		result = !result
	}
	return result, nil
}

// evaluateField computes bare-path truthiness.
func evaluateField(field registry.Field, r *report.Report) bool {
	switch field.Type {
	case registry.TypeObject:
		return registry.HasContext(r, field.Path)
	case registry.TypeBool:
		v, _ := field.Read(r)
		b, _ := v.(bool)
		return b
	default: // string, enum
		_, present := field.Read(r)
		return present
	}
}

// stringify projects a field's value to the string form used for
// path=literal comparisons: booleans render as "true"/"false", enums
// and strings render as their stored value.
func stringify(field registry.Field, r *report.Report) string {
	if field.Type == registry.TypeObject {
		if registry.HasContext(r, field.Path) {
			return field.Path
		}
		return ""
	}
	v, present := field.Read(r)
	if !present {
		return ""
	}
	switch val := v.(type) {
	case bool:
		if val {
			return "true"
		}
		return "false"
	case string:
		return val
	default:
		return ""
	}
}
