package naming

import (
	"strings"
	"unicode"
)

// reservedWords cannot be used as TypeScript declaration names.
var reservedWords = map[string]bool{
	"break": true, "case": true, "catch": true, "class": true, "const": true,
	"continue": true, "debugger": true, "default": true, "delete": true, "do": true,
	"else": true, "enum": true, "export": true, "extends": true, "false": true,
	"finally": true, "for": true, "function": true, "if": true, "import": true,
	"in": true, "instanceof": true, "new": true, "null": true, "return": true,
	"super": true, "switch": true, "this": true, "throw": true, "true": true,
	"try": true, "typeof": true, "var": true, "void": true, "while": true,
	"with": true, "implements": true, "interface": true, "let": true,
	"package": true, "private": true, "protected": true, "public": true,
	"static": true, "yield": true, "any": true, "boolean": true, "number": true,
	"string": true, "symbol": true, "never": true, "unknown": true, "object": true,
	"undefined": true, "bigint": true, "type": true, "await": true,
}

// IsReservedWord reports whether s is a TypeScript reserved word or
// built-in type name.
func IsReservedWord(s string) bool {
	return reservedWords[s]
}

// IsIdentifier reports whether s is a valid TypeScript identifier.
func IsIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		if r == '_' || r == '$' || unicode.IsLetter(r) {
			continue
		}
		if i > 0 && unicode.IsDigit(r) {
			continue
		}
		return false
	}
	return true
}

// SafeIdentifier replaces characters that are invalid in identifiers with
// underscores, prefixes a leading digit with an underscore and suffixes
// reserved words with an underscore.
func SafeIdentifier(s string) string {
	if s == "" {
		return "_"
	}
	if !IsIdentifier(s) {
		var b strings.Builder
		for i, r := range s {
			switch {
			case r == '_' || r == '$' || unicode.IsLetter(r):
				b.WriteRune(r)
			case unicode.IsDigit(r):
				if i == 0 {
					b.WriteByte('_')
				}
				b.WriteRune(r)
			default:
				b.WriteByte('_')
			}
		}
		s = b.String()
	}
	if IsReservedWord(s) {
		s += "_"
	}
	return s
}
