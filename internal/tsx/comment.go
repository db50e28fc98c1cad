package tsx

import "strings"

// DocComment returns a JSDoc block for description, with a @deprecated tag
// when deprecated is set. It returns "" when there is nothing to say.
// The block ends with a newline.
func DocComment(description string, deprecated bool) string {
	description = strings.TrimSpace(description)
	if description == "" && !deprecated {
		return ""
	}
	var lines []string
	if description != "" {
		description = strings.ReplaceAll(description, "*/", "*\\/")
		lines = strings.Split(description, "\n")
	}
	if deprecated {
		lines = append(lines, "@deprecated")
	}

	var b strings.Builder
	b.WriteString("/**\n")
	for _, l := range lines {
		l = strings.TrimRight(l, " \t\r")
		if l == "" {
			b.WriteString(" *\n")
			continue
		}
		b.WriteString(" * ")
		b.WriteString(l)
		b.WriteByte('\n')
	}
	b.WriteString(" */\n")
	return b.String()
}
