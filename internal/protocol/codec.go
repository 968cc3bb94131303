package protocol

import (
	"fmt"
	"strings"
)

// Separator delimits fields within a request line and within a record.
const Separator = "|"

// Escape makes a free-text value safe to embed in a field: the
// separator, the line terminator and backslash itself are
// backslash-escaped. Producers and consumers apply it symmetrically.
func Escape(s string) string {
	if !strings.ContainsAny(s, "|\n\\") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 8)
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '|':
			b.WriteString(`\|`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Unescape reverses Escape. Unknown escape sequences and a trailing
// lone backslash are passed through unchanged.
func Unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	escaped := false
	for _, r := range s {
		if escaped {
			switch r {
			case '\\':
				b.WriteRune('\\')
			case '|':
				b.WriteRune('|')
			case 'n':
				b.WriteRune('\n')
			default:
				b.WriteRune('\\')
				b.WriteRune(r)
			}
			escaped = false
			continue
		}
		if r == '\\' {
			escaped = true
			continue
		}
		b.WriteRune(r)
	}
	if escaped {
		b.WriteRune('\\')
	}
	return b.String()
}

// SplitCommand separates the command keyword from the argument portion
// of a request line. The line terminator must already be stripped.
func SplitCommand(line string) (keyword, rest string) {
	keyword, rest, _ = strings.Cut(line, Separator)
	return strings.TrimSpace(keyword), rest
}

// SplitArgs splits the argument portion into exactly arity fields.
// When restOfLine is set the final field keeps any further separators,
// so escaped free text may follow. Returns false on a field-count
// mismatch.
func SplitArgs(rest string, arity int, restOfLine bool) ([]string, bool) {
	if arity == 0 {
		return nil, rest == ""
	}
	if rest == "" {
		return nil, false
	}
	var fields []string
	if restOfLine {
		fields = strings.SplitN(rest, Separator, arity)
	} else {
		fields = strings.Split(rest, Separator)
	}
	if len(fields) != arity {
		return nil, false
	}
	for _, f := range fields {
		if f == "" {
			return nil, false
		}
	}
	return fields, true
}

// EncodeResponse renders the single response line for a request. A
// list payload may carry embedded record separators; the whole thing is
// still one logical response.
func EncodeResponse(code int, payload string) string {
	return fmt.Sprintf("%d%s%s\n", code, Separator, payload)
}

// JoinFields builds one record from its fields.
func JoinFields(fields ...string) string {
	return strings.Join(fields, Separator)
}

// JoinRecords builds a list payload, one record per embedded line.
func JoinRecords(records []string) string {
	return strings.Join(records, "\n")
}
