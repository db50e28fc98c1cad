package naming

import (
	"bytes"
	"strings"
	"text/template"

	"github.com/erraggy/oasgen/oaserrors"
)

// DefaultTemplate substitutes the raw name unchanged.
const DefaultTemplate = "{{name}}"

// Policy is a name template plus a casing.
type Policy struct {
	Template string
	Case     Casing

	tmpl *template.Template
}

type templateData struct {
	Name string
}

// templateFuncs are available inside name templates.
func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"pascalCase":         ToPascalCase,
		"camelCase":          ToCamelCase,
		"snakeCase":          ToSnakeCase,
		"screamingSnakeCase": ToScreamingSnakeCase,
		"lower":              strings.ToLower,
		"upper":              strings.ToUpper,
	}
}

// NewPolicy parses tmpl. "{{name}}" is shorthand for "{{.Name}}". An empty
// template means DefaultTemplate.
func NewPolicy(tmpl string, casing Casing) (Policy, error) {
	if tmpl == "" {
		tmpl = DefaultTemplate
	}
	if _, ok := ParseCasing(string(casing)); !ok {
		return Policy{}, &oaserrors.ConfigError{Option: "casing", Value: string(casing), Message: "unknown casing"}
	}
	if !strings.Contains(tmpl, "{{") {
		return Policy{}, &oaserrors.ConfigError{Option: "template", Value: tmpl, Message: "template must reference {{name}}"}
	}

	src := strings.ReplaceAll(tmpl, "{{name}}", "{{.Name}}")
	t, err := template.New("name").Funcs(templateFuncs()).Option("missingkey=error").Parse(src)
	if err != nil {
		return Policy{}, &oaserrors.ConfigError{Option: "template", Value: tmpl, Message: "invalid name template", Cause: err}
	}
	return Policy{Template: tmpl, Case: casing, tmpl: t}, nil
}

// MustPolicy is NewPolicy for package-level defaults; it panics on error.
func MustPolicy(tmpl string, casing Casing) Policy {
	p, err := NewPolicy(tmpl, casing)
	if err != nil {
		panic(err)
	}
	return p
}

// Apply builds the declaration name for raw. The template is substituted
// first, with the raw name fenced by separators so the casing pass treats
// it as separate words, and then the casing is applied to the result.
func (p Policy) Apply(raw string) (string, error) {
	name := raw
	if p.tmpl != nil {
		fenced := raw
		if p.Case != Preserve && p.Case != "" {
			fenced = "-" + raw + "-"
		}
		var buf bytes.Buffer
		if err := p.tmpl.Execute(&buf, templateData{Name: fenced}); err != nil {
			return "", &oaserrors.ConfigError{Option: "template", Value: p.Template, Message: "template execution failed", Cause: err}
		}
		name = buf.String()
	}
	return SafeIdentifier(ToCase(name, p.Case)), nil
}
