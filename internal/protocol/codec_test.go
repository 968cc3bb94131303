package protocol

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscapeUnescape(t *testing.T) {
	cases := []struct {
		raw     string
		escaped string
	}{
		{"plain text", "plain text"},
		{"a|b", `a\|b`},
		{"line1\nline2", `line1\nline2`},
		{`back\slash`, `back\\slash`},
		{"mix|of\nall\\three", `mix\|of\nall\\three`},
		{"", ""},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.escaped, Escape(tc.raw))
		assert.Equal(t, tc.raw, Unescape(tc.escaped))
	}
}

func TestUnescapeLenient(t *testing.T) {
	// unknown escapes pass through
	assert.Equal(t, `\x`, Unescape(`\x`))
	// trailing lone backslash kept
	assert.Equal(t, `abc\`, Unescape(`abc\`))
}

func TestSplitCommand(t *testing.T) {
	keyword, rest := SplitCommand("LOGIN|alice|secret")
	assert.Equal(t, "LOGIN", keyword)
	assert.Equal(t, "alice|secret", rest)

	keyword, rest = SplitCommand("LIST_PROJECT")
	assert.Equal(t, "LIST_PROJECT", keyword)
	assert.Equal(t, "", rest)
}

func TestSplitArgs(t *testing.T) {
	args, ok := SplitArgs("alice|secret", 2, false)
	assert.True(t, ok)
	assert.Equal(t, []string{"alice", "secret"}, args)

	// too few fields
	_, ok = SplitArgs("alice", 2, false)
	assert.False(t, ok)

	// too many fields
	_, ok = SplitArgs("alice|secret|extra", 2, false)
	assert.False(t, ok)

	// empty field rejected
	_, ok = SplitArgs("alice|", 2, false)
	assert.False(t, ok)

	// zero arity requires an empty rest
	args, ok = SplitArgs("", 0, false)
	assert.True(t, ok)
	assert.Nil(t, args)
	_, ok = SplitArgs("junk", 0, false)
	assert.False(t, ok)
}

func TestSplitArgsRestOfLine(t *testing.T) {
	// the final field keeps further separators
	args, ok := SplitArgs("7|note with | inside", 2, true)
	assert.True(t, ok)
	assert.Equal(t, []string{"7", "note with | inside"}, args)

	args, ok = SplitArgs("7|file.txt|/srv/files/a|b.txt", 3, true)
	assert.True(t, ok)
	assert.Equal(t, "/srv/files/a|b.txt", args[2])
}

func TestEncodeResponse(t *testing.T) {
	assert.Equal(t, "0|Login OK\n", EncodeResponse(CodeOK, "Login OK"))
	assert.Equal(t, "1|Not logged in\n", EncodeResponse(CodeFail, "Not logged in"))
	// empty payload still carries the separator
	assert.Equal(t, "0|\n", EncodeResponse(CodeOK, ""))
}

func TestJoinRecords(t *testing.T) {
	assert.Equal(t, "1|alpha\n2|beta", JoinRecords([]string{"1|alpha", "2|beta"}))
	assert.Equal(t, "1|alpha", JoinRecords([]string{"1|alpha"}))
}
