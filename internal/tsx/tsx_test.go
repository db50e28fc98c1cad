package tsx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriter(t *testing.T) {
	w := NewWriter()
	w.Block("export const x = (data: any) =>")
	w.Line("data.a = %s;", "1")
	w.Line("return data;")
	w.EndBlockSuffix(";")

	assert.Equal(t, "export const x = (data: any) => {\n  data.a = 1;\n  return data;\n};\n", w.String())
}

func TestWriter_MultiLine(t *testing.T) {
	w := NewWriter()
	w.Indent()
	w.Line("a\nb")
	w.Dedent()
	w.Dedent()
	assert.Equal(t, "  a\n  b\n", w.String())
}

func TestLiteral(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, "null"},
		{"it's", `'it\'s'`},
		{`say "hi"`, `'say "hi"'`},
		{true, "true"},
		{1.0, "1"},
		{2.5, "2.5"},
		{42, "42"},
		{[]any{"a", 1.0}, `["a",1]`},
		{map[string]any{"b": 1.0, "a": true}, `{"a":true,"b":1}`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Literal(tt.in))
	}
}

func TestBigIntLiteral(t *testing.T) {
	assert.Equal(t, "10n", BigIntLiteral(10.0))
	assert.Equal(t, "7n", BigIntLiteral("7"))
	assert.Equal(t, "1.5", BigIntLiteral(1.5))
}

func TestPropertyKey(t *testing.T) {
	assert.Equal(t, "name", PropertyKey("name"))
	assert.Equal(t, "'content-type'", PropertyKey("content-type"))
	assert.Equal(t, "'1st'", PropertyKey("1st"))
	assert.Equal(t, "data['x-id']", PropertyAccess("data", "x-id"))
	assert.Equal(t, "data.id", PropertyAccess("data", "id"))
}

func TestIndentText(t *testing.T) {
	assert.Equal(t, "  a\n\n  b", IndentText("a\n\nb"))
}

func TestDocComment(t *testing.T) {
	assert.Equal(t, "", DocComment("  ", false))
	assert.Equal(t, "/**\n * A pet.\n */\n", DocComment("A pet.", false))
	assert.Equal(t, "/**\n * @deprecated\n */\n", DocComment("", true))
	assert.Equal(t, "/**\n * one\n *\n * two *\\/\n * @deprecated\n */\n", DocComment("one\n\ntwo */", true))
}

func TestRegexLiteral(t *testing.T) {
	assert.Equal(t, `/^\d+$/`, RegexLiteral(`^\d+$`))
	assert.Equal(t, `/a\/b/`, RegexLiteral(`a/b`))
	assert.Equal(t, `/a\/b/`, RegexLiteral(`a\/b`))
	assert.Equal(t, `/a\nb/`, RegexLiteral("a\nb"))
}
