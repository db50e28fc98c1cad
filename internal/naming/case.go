package naming

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Casing is a target identifier casing.
type Casing string

const (
	PascalCase         Casing = "PascalCase"
	CamelCase          Casing = "camelCase"
	SnakeCase          Casing = "snake_case"
	ScreamingSnakeCase Casing = "SCREAMING_SNAKE_CASE"
	Preserve           Casing = "preserve"
)

// ParseCasing validates a casing name. An empty name means Preserve.
func ParseCasing(s string) (Casing, bool) {
	switch c := Casing(s); c {
	case PascalCase, CamelCase, SnakeCase, ScreamingSnakeCase, Preserve:
		return c, true
	case "":
		return Preserve, true
	}
	return "", false
}

// ToCase converts s to casing. Words are split at separators, at
// lower-to-upper transitions, before the last capital of an acronym
// ("APIClient" -> API, Client) and after digit runs.
func ToCase(s string, casing Casing) string {
	s = strings.TrimSpace(s)
	if s == "" || casing == Preserve || casing == "" {
		return s
	}

	words := Words(s)
	if len(words) == 0 {
		return ""
	}

	lower := cases.Lower(language.Und)
	upper := cases.Upper(language.Und)
	title := cases.Title(language.Und)

	switch casing {
	case SnakeCase:
		for i, w := range words {
			words[i] = lower.String(w)
		}
		return strings.Join(words, "_")
	case ScreamingSnakeCase:
		for i, w := range words {
			words[i] = upper.String(w)
		}
		return strings.Join(words, "_")
	case CamelCase:
		var b strings.Builder
		for i, w := range words {
			if i == 0 {
				b.WriteString(lower.String(w))
				continue
			}
			b.WriteString(title.String(w))
		}
		return b.String()
	default:
		var b strings.Builder
		for _, w := range words {
			b.WriteString(title.String(w))
		}
		return b.String()
	}
}

// ToPascalCase is ToCase(s, PascalCase).
func ToPascalCase(s string) string { return ToCase(s, PascalCase) }

// ToCamelCase is ToCase(s, CamelCase).
func ToCamelCase(s string) string { return ToCase(s, CamelCase) }

// ToSnakeCase is ToCase(s, SnakeCase).
func ToSnakeCase(s string) string { return ToCase(s, SnakeCase) }

// ToScreamingSnakeCase is ToCase(s, ScreamingSnakeCase).
func ToScreamingSnakeCase(s string) string { return ToCase(s, ScreamingSnakeCase) }

// Words splits s into case-insensitive words.
func Words(s string) []string {
	runes := []rune(s)
	var (
		words   []string
		current []rune
	)
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}

	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if len(current) > 0 {
			prev := current[len(current)-1]
			switch {
			case unicode.IsUpper(r) && (unicode.IsLower(prev) || unicode.IsDigit(prev)):
				flush()
			case unicode.IsUpper(r) && unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) && !isPluralSuffix(runes, i+1):
				flush()
			case unicode.IsLetter(r) && unicode.IsDigit(prev):
				flush()
			}
		}
		current = append(current, r)
	}
	flush()
	return words
}

// isPluralSuffix reports a lone trailing "s" after an acronym, as in "IDs",
// which stays part of the acronym word.
func isPluralSuffix(runes []rune, i int) bool {
	if runes[i] != 's' {
		return false
	}
	return i+1 == len(runes) || !unicode.IsLower(runes[i+1])
}
