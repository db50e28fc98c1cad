package tsx

import (
	"math"
	"strconv"
	"strings"

	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"

	"github.com/erraggy/oasgen/internal/naming"
)

// Literal encodes a decoded YAML/JSON value as a TypeScript literal.
// Object keys are sorted so output is stable across runs.
func Literal(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return Quote(x)
	case bool:
		return strconv.FormatBool(x)
	case float64:
		return formatFloat(x)
	case float32:
		return formatFloat(float64(x))
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	case uint64:
		return strconv.FormatUint(x, 10)
	}
	data, err := json.Marshal(v, json.Deterministic(true), jsontext.EscapeForJS(true))
	if err != nil {
		return "undefined"
	}
	return string(data)
}

// BigIntLiteral encodes v as a bigint literal such as 10n. Non-integral
// values fall back to Literal.
func BigIntLiteral(v any) string {
	switch x := v.(type) {
	case int:
		return strconv.Itoa(x) + "n"
	case int64:
		return strconv.FormatInt(x, 10) + "n"
	case uint64:
		return strconv.FormatUint(x, 10) + "n"
	case float64:
		if x == math.Trunc(x) && !math.IsInf(x, 0) {
			return strconv.FormatFloat(x, 'f', -1, 64) + "n"
		}
	case string:
		if _, err := strconv.ParseInt(x, 10, 64); err == nil {
			return x + "n"
		}
	}
	return Literal(v)
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Quote returns s as a single-quoted string literal.
func Quote(s string) string {
	data, err := json.Marshal(s, jsontext.EscapeForJS(true))
	if err != nil {
		return "''"
	}
	inner := string(data[1 : len(data)-1])
	inner = strings.ReplaceAll(inner, `\"`, `"`)
	inner = strings.ReplaceAll(inner, `'`, `\'`)
	return "'" + inner + "'"
}

// PropertyKey returns name as an object key, quoted unless it is a valid
// identifier.
func PropertyKey(name string) string {
	if naming.IsIdentifier(name) {
		return name
	}
	return Quote(name)
}

// PropertyAccess returns the access expression for name on target.
func PropertyAccess(target, name string) string {
	if naming.IsIdentifier(name) {
		return target + "." + name
	}
	return target + "[" + Quote(name) + "]"
}

// RegexLiteral renders pattern as a JavaScript regular expression literal.
// Unescaped slashes are escaped; existing escapes are kept.
func RegexLiteral(pattern string) string {
	var b strings.Builder
	b.WriteByte('/')
	escaped := false
	for _, r := range pattern {
		switch {
		case escaped:
			escaped = false
		case r == '\\':
			escaped = true
		case r == '/':
			b.WriteByte('\\')
		case r == '\n':
			b.WriteString(`\n`)
			continue
		}
		b.WriteRune(r)
	}
	b.WriteByte('/')
	return b.String()
}
