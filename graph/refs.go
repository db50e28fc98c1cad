package graph

import (
	"strings"
)

// ComponentPrefix is the JSON pointer prefix of component schemas.
const ComponentPrefix = "#/components/schemas/"

// ComponentRef returns the $ref id of the named component schema.
func ComponentRef(name string) string {
	return ComponentPrefix + escapePointerToken(name)
}

// RefToName returns the raw declaration name for a $ref: the last JSON
// pointer segment with ~1 and ~0 decoded.
func RefToName(ref string) string {
	path := JSONPointerToPath(ref)
	if len(path) == 0 {
		return ""
	}
	return path[len(path)-1]
}

// IsComponentRef reports whether ref points directly at a component schema
// rather than into one.
func IsComponentRef(ref string) bool {
	if !strings.HasPrefix(ref, ComponentPrefix) {
		return false
	}
	rest := ref[len(ComponentPrefix):]
	return rest != "" && !strings.Contains(rest, "/")
}

// JSONPointerToPath splits a "#/a/b" style pointer into decoded segments.
func JSONPointerToPath(pointer string) []string {
	p := strings.TrimPrefix(pointer, "#")
	p = strings.TrimPrefix(p, "/")
	if p == "" {
		return nil
	}
	segments := strings.Split(p, "/")
	for i, s := range segments {
		segments[i] = unescapePointerToken(s)
	}
	return segments
}

// PathToJSONPointer joins segments into a "#/a/b" style pointer.
func PathToJSONPointer(path []string) string {
	if len(path) == 0 {
		return "#"
	}
	var b strings.Builder
	b.WriteByte('#')
	for _, s := range path {
		b.WriteByte('/')
		b.WriteString(escapePointerToken(s))
	}
	return b.String()
}

func escapePointerToken(s string) string {
	if !strings.ContainsAny(s, "~/") {
		return s
	}
	s = strings.ReplaceAll(s, "~", "~0")
	return strings.ReplaceAll(s, "/", "~1")
}

func unescapePointerToken(s string) string {
	if !strings.Contains(s, "~") {
		return s
	}
	s = strings.ReplaceAll(s, "~1", "/")
	return strings.ReplaceAll(s, "~0", "~")
}
