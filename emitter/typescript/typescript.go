// Package typescript emits static TypeScript type aliases.
//
// Every entity becomes one "export type" declaration. Type aliases may
// refer to themselves, so deferred references are plain references here
// and need no type hint.
package typescript

import (
	"strings"

	"github.com/erraggy/oasgen/graph"
	"github.com/erraggy/oasgen/internal/naming"
	"github.com/erraggy/oasgen/internal/schemautil"
	"github.com/erraggy/oasgen/internal/tsx"
	"github.com/erraggy/oasgen/symbols"
	"github.com/erraggy/oasgen/walker"
)

// FlavorName is the flavor name of this emitter.
const FlavorName = "typescript"

// Emitter implements walker.Emitter for static types.
type Emitter struct{}

// New returns a TypeScript types emitter.
func New() *Emitter {
	return &Emitter{}
}

var _ walker.Emitter = (*Emitter)(nil)

// Flavor implements walker.Emitter.
func (e *Emitter) Flavor() string { return FlavorName }

// Namespace implements walker.Emitter.
func (e *Emitter) Namespace() symbols.Namespace { return symbols.NamespaceType }

// Naming implements walker.Emitter.
func (e *Emitter) Naming() walker.Naming {
	return walker.Naming{
		walker.KindDefinition: naming.MustPolicy("{{name}}", naming.PascalCase),
		walker.KindRequest:    naming.MustPolicy("{{name}}Data", naming.PascalCase),
		walker.KindResponse:   naming.MustPolicy("{{name}}Response", naming.PascalCase),
		walker.KindWebhook:    naming.MustPolicy("{{name}}WebhookRequest", naming.PascalCase),
	}
}

// Shape implements walker.Emitter.
func (e *Emitter) Shape(node *graph.Node, ctx *walker.Context) (walker.Emission, error) {
	switch node.Type {
	case graph.ShapeObject:
		return e.object(node, ctx)
	case graph.ShapeArray:
		return e.array(node, ctx)
	case graph.ShapeTuple:
		return e.tuple(node, ctx)
	case graph.ShapeEnum:
		return expr(enumType(node)), nil
	case graph.ShapeString:
		if node.HasConst() {
			return expr(tsx.Literal(node.Const)), nil
		}
		if node.Format == "binary" {
			return expr("Blob | File"), nil
		}
		return expr("string"), nil
	case graph.ShapeNumber, graph.ShapeInteger:
		bigint := schemautil.IsBigInt(node)
		if node.HasConst() {
			if bigint {
				return expr(tsx.BigIntLiteral(node.Const)), nil
			}
			return expr(tsx.Literal(node.Const)), nil
		}
		if bigint {
			return expr("bigint"), nil
		}
		return expr("number"), nil
	case graph.ShapeBoolean:
		if node.HasConst() {
			return expr(tsx.Literal(node.Const)), nil
		}
		return expr("boolean"), nil
	case graph.ShapeNull:
		return expr("null"), nil
	case graph.ShapeNever:
		return expr("never"), nil
	case graph.ShapeVoid:
		return expr("void"), nil
	case graph.ShapeUndefined:
		return expr("undefined"), nil
	}
	return e.Unknown(ctx), nil
}

func expr(s string) walker.Emission {
	return walker.Emission{Expr: s}
}

func (e *Emitter) object(node *graph.Node, ctx *walker.Context) (walker.Emission, error) {
	keys := node.Properties.Keys()
	w := tsx.NewWriter()
	w.Line("{")
	w.Indent()

	propTypes := make([]string, 0, len(keys))
	for _, name := range keys {
		child, _ := node.Properties.Get(name)
		c, err := ctx.ResolveProperty(name, child, !node.IsRequired(name))
		if err != nil {
			return walker.Emission{}, err
		}
		if child != nil {
			if doc := tsx.DocComment(child.Description, child.Deprecated); doc != "" {
				w.Line("%s", strings.TrimSuffix(doc, "\n"))
			}
		}
		var mod, opt string
		if c.Readonly {
			mod = "readonly "
		}
		if c.Optional {
			opt = "?"
		}
		w.Line("%s%s%s: %s;", mod, tsx.PropertyKey(name), opt, c.Expr)
		propTypes = append(propTypes, c.Expr)
	}

	switch {
	case node.AdditionalProperties != nil:
		ap, err := ctx.Resolve(node.AdditionalProperties, "additionalProperties")
		if err != nil {
			return walker.Emission{}, err
		}
		w.Line("[key: string]: %s;", indexType(ap.Expr, propTypes))
	case len(keys) == 0:
		w.Line("[key: string]: unknown;")
	}

	w.Dedent()
	w.Raw("}")
	return expr(w.String()), nil
}

// indexType is the index signature type of an object with named
// properties. It must admit every property type.
func indexType(additional string, propTypes []string) string {
	for _, t := range propTypes {
		if t != additional {
			return "unknown"
		}
	}
	return additional
}

func (e *Emitter) array(node *graph.Node, ctx *walker.Context) (walker.Emission, error) {
	el, ok, err := ctx.ResolveElements(node)
	if err != nil {
		return walker.Emission{}, err
	}
	if !ok {
		return expr("Array<unknown>"), nil
	}
	return expr("Array<" + el.Expr + ">"), nil
}

func (e *Emitter) tuple(node *graph.Node, ctx *walker.Context) (walker.Emission, error) {
	if values, ok := node.Const.([]any); ok && node.HasConst() {
		parts := make([]string, len(values))
		for i, v := range values {
			parts[i] = tsx.Literal(v)
		}
		return expr("[" + strings.Join(parts, ", ") + "]"), nil
	}
	parts := make([]string, 0, len(node.Items))
	for i, item := range node.Items {
		c, err := ctx.ResolveItem(i, item)
		if err != nil {
			return walker.Emission{}, err
		}
		parts = append(parts, c.Expr)
	}
	return expr("[" + strings.Join(parts, ", ") + "]"), nil
}

func enumType(node *graph.Node) string {
	var parts []string
	for _, item := range node.Items {
		switch {
		case item == nil:
		case item.HasConst():
			parts = appendUnique(parts, tsx.Literal(item.Const))
		case item.Type == graph.ShapeNull:
			parts = appendUnique(parts, "null")
		}
	}
	if len(parts) == 0 {
		return "unknown"
	}
	return strings.Join(parts, " | ")
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}

// Unknown implements walker.Emitter.
func (e *Emitter) Unknown(*walker.Context) walker.Emission { return expr("unknown") }

// Reference implements walker.Emitter.
func (e *Emitter) Reference(target *symbols.Symbol) walker.Emission {
	return expr(target.Ref())
}

// Lazy implements walker.Emitter. Type aliases are allowed to recurse.
func (e *Emitter) Lazy(target *symbols.Symbol) walker.Emission {
	return expr(target.Ref())
}

// Union implements walker.Emitter.
func (e *Emitter) Union(members []walker.Emission, _ []*graph.Node, _ *walker.Context) walker.Emission {
	var parts []string
	for _, m := range members {
		parts = appendUnique(parts, m.Expr)
	}
	return expr(strings.Join(parts, " | "))
}

// Intersection implements walker.Emitter. Union members are parenthesized.
func (e *Emitter) Intersection(members []walker.Emission, nodes []*graph.Node, _ *walker.Context) walker.Emission {
	parts := make([]string, 0, len(members))
	for i, m := range members {
		s := m.Expr
		if i < len(nodes) && isUnion(nodes[i]) {
			s = "(" + s + ")"
		}
		parts = appendUnique(parts, s)
	}
	return expr(strings.Join(parts, " & "))
}

func isUnion(n *graph.Node) bool {
	if n == nil || n.Ref != "" {
		return false
	}
	if n.Type == graph.ShapeEnum {
		return len(n.Items) > 1
	}
	return n.Type == "" && len(schemautil.DeduplicateMembers(n.Items)) > 1 && n.Operator() == graph.OperatorOr
}

// Readonly implements walker.Emitter. The modifier is written on the
// property, from Emission.Readonly.
func (e *Emitter) Readonly(x walker.Emission) walker.Emission { return x }

// Optional implements walker.Emitter. The modifier is written on the
// property, from Emission.Optional.
func (e *Emitter) Optional(x walker.Emission) walker.Emission { return x }

// Default implements walker.Emitter. Defaults have no static type.
func (e *Emitter) Default(x walker.Emission, _ *graph.Node) walker.Emission { return x }

// Declare implements walker.Emitter.
func (e *Emitter) Declare(d *walker.Declaration) (string, bool) {
	var b strings.Builder
	if n := d.Entity.Node; n != nil {
		b.WriteString(tsx.DocComment(n.Description, n.Deprecated))
	}
	b.WriteString("export type ")
	b.WriteString(d.Symbol.Name)
	b.WriteString(" = ")
	b.WriteString(d.Emission.Expr)
	b.WriteString(";")
	return b.String(), true
}
