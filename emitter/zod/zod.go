// Package zod emits zod validator schemas.
//
// Three API variants are supported, selected with [WithVersion]: the
// method-chain API of zod 4 ([V4], the default), the zod 3 API served
// from "zod/v3" ([V3]) and the functional "zod/mini" API ([Mini]).
//
// Each entity becomes one "export const" declaration. With
// [WithInferTypes] an inferred static type is declared next to it:
//
//	export const zPet = z.object({ ... });
//
//	export type PetZodType = z.infer<typeof zPet>;
package zod

import (
	"strings"

	"github.com/erraggy/oasgen/graph"
	"github.com/erraggy/oasgen/internal/naming"
	"github.com/erraggy/oasgen/internal/tsx"
	"github.com/erraggy/oasgen/symbols"
	"github.com/erraggy/oasgen/walker"
)

// Version selects the zod API variant.
type Version string

const (
	V4   Version = "v4"
	V3   Version = "v3"
	Mini Version = "mini"
)

// Emitter implements walker.Emitter for zod.
type Emitter struct {
	version     Version
	infer       bool
	inferNaming walker.Naming
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithVersion selects the API variant. Unknown versions fall back to V4.
func WithVersion(v Version) Option {
	return func(e *Emitter) {
		switch v {
		case V3, Mini:
			e.version = v
		default:
			e.version = V4
		}
	}
}

// WithInferTypes declares a z.infer type next to each schema.
func WithInferTypes(enabled bool) Option {
	return func(e *Emitter) { e.infer = enabled }
}

// WithInferNaming overrides the naming policy of inferred types of kind.
func WithInferNaming(kind walker.EntityKind, p naming.Policy) Option {
	return func(e *Emitter) { e.inferNaming[kind] = p }
}

// New returns a zod emitter.
func New(opts ...Option) *Emitter {
	e := &Emitter{
		version: V4,
		inferNaming: walker.Naming{
			walker.KindDefinition: naming.MustPolicy("{{name}}ZodType", naming.PascalCase),
			walker.KindRequest:    naming.MustPolicy("{{name}}DataZodType", naming.PascalCase),
			walker.KindResponse:   naming.MustPolicy("{{name}}ResponseZodType", naming.PascalCase),
			walker.KindWebhook:    naming.MustPolicy("{{name}}WebhookRequestZodType", naming.PascalCase),
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var (
	_ walker.Emitter  = (*Emitter)(nil)
	_ walker.Importer = (*Emitter)(nil)
)

// Version returns the API variant.
func (e *Emitter) Version() Version { return e.version }

// Flavor implements walker.Emitter.
func (e *Emitter) Flavor() string {
	switch e.version {
	case V3:
		return "zod-v3"
	case Mini:
		return "zod-mini"
	}
	return "zod"
}

// Namespace implements walker.Emitter.
func (e *Emitter) Namespace() symbols.Namespace { return symbols.NamespaceValue }

// Naming implements walker.Emitter.
func (e *Emitter) Naming() walker.Naming {
	return walker.Naming{
		walker.KindDefinition: naming.MustPolicy("z{{name}}", naming.CamelCase),
		walker.KindRequest:    naming.MustPolicy("z{{name}}Data", naming.CamelCase),
		walker.KindResponse:   naming.MustPolicy("z{{name}}Response", naming.CamelCase),
		walker.KindWebhook:    naming.MustPolicy("z{{name}}WebhookRequest", naming.CamelCase),
	}
}

// Imports implements walker.Importer.
func (e *Emitter) Imports() []symbols.Import {
	return []symbols.Import{{Module: e.module(), Names: []string{"z"}}}
}

func (e *Emitter) module() string {
	switch e.version {
	case V3:
		return "zod/v3"
	case Mini:
		return "zod/mini"
	}
	return "zod"
}

// Unknown implements walker.Emitter.
func (e *Emitter) Unknown(*walker.Context) walker.Emission { return expr("z.unknown()") }

// Reference implements walker.Emitter. zod 3 has no getters, so a
// declaration that is not finished yet is reached through z.lazy.
func (e *Emitter) Reference(target *symbols.Symbol) walker.Emission {
	if e.version == V3 && !target.Finished() {
		return walker.Emission{
			Expr:              "z.lazy(() => " + target.Ref() + ")",
			TypeHint:          "z.ZodTypeAny",
			HasLazyExpression: true,
		}
	}
	return expr(target.Ref())
}

// Lazy implements walker.Emitter.
func (e *Emitter) Lazy(target *symbols.Symbol) walker.Emission {
	if e.version == V3 {
		return walker.Emission{Expr: "z.lazy(() => " + target.Ref() + ")", TypeHint: "z.ZodTypeAny"}
	}
	return walker.Emission{Expr: "z.lazy((): any => " + target.Ref() + ")", TypeHint: "z.ZodType"}
}

// Union implements walker.Emitter. Null members become a nullable wrapper.
func (e *Emitter) Union(members []walker.Emission, nodes []*graph.Node, _ *walker.Context) walker.Emission {
	var (
		parts    []string
		nullable bool
	)
	for i, m := range members {
		if i < len(nodes) && nodes[i] != nil && nodes[i].Type == graph.ShapeNull {
			nullable = true
			continue
		}
		parts = appendUnique(parts, m.Expr)
	}

	var out walker.Emission
	switch len(parts) {
	case 0:
		return expr("z.null()")
	case 1:
		out.Expr = parts[0]
	default:
		out.Expr = "z.union([" + strings.Join(parts, ", ") + "])"
	}
	if nullable {
		out.Expr = e.nullable(out.Expr)
		out.Nullable = true
	}
	return out
}

// Intersection implements walker.Emitter. Object-first intersections are
// chained with .and(); anything else, and every intersection in zod
// mini, nests z.intersection.
func (e *Emitter) Intersection(members []walker.Emission, nodes []*graph.Node, _ *walker.Context) walker.Emission {
	if len(members) == 0 {
		return expr("z.unknown()")
	}
	if e.version == Mini || (len(nodes) > 0 && !chainable(nodes[0])) {
		out := members[0].Expr
		for _, m := range members[1:] {
			out = "z.intersection(" + out + ", " + m.Expr + ")"
		}
		return expr(out)
	}

	out := members[0].Expr
	for _, m := range members[1:] {
		arg := m.Expr
		if m.HasCircularReference && !m.HasLazyExpression {
			arg = "z.lazy(() => " + arg + ")"
		}
		out += ".and(" + arg + ")"
	}
	return expr(out)
}

// chainable reports whether the first intersection member supports .and().
func chainable(n *graph.Node) bool {
	if n == nil {
		return false
	}
	if n.Ref != "" {
		return true
	}
	if n.Type == "" {
		return n.Operator() != graph.OperatorOr
	}
	return n.Type == graph.ShapeObject
}

// Readonly implements walker.Emitter.
func (e *Emitter) Readonly(x walker.Emission) walker.Emission {
	if e.version == Mini {
		x.Expr = "z.readonly(" + x.Expr + ")"
	} else {
		x.Expr += ".readonly()"
	}
	return x
}

// Optional implements walker.Emitter.
func (e *Emitter) Optional(x walker.Emission) walker.Emission {
	if e.version == V3 {
		x.Expr += ".optional()"
	} else {
		x.Expr = "z.optional(" + x.Expr + ")"
	}
	return x
}

// Default implements walker.Emitter.
func (e *Emitter) Default(x walker.Emission, node *graph.Node) walker.Emission {
	value := defaultValue(node)
	if e.version == Mini {
		x.Expr = "z._default(" + x.Expr + ", " + value + ")"
	} else {
		x.Expr += ".default(" + value + ")"
	}
	return x
}

// Declare implements walker.Emitter.
func (e *Emitter) Declare(d *walker.Declaration) (string, bool) {
	var b strings.Builder
	if n := d.Entity.Node; n != nil {
		b.WriteString(tsx.DocComment(n.Description, n.Deprecated))
	}
	b.WriteString("export const ")
	b.WriteString(d.Symbol.Name)
	if hint := e.declarationType(d); hint != "" {
		b.WriteString(": ")
		b.WriteString(hint)
	}
	b.WriteString(" = ")
	b.WriteString(d.Emission.Expr)
	b.WriteString(";")

	if e.infer {
		if name, err := e.inferNaming.Policy(d.Entity.Kind).Apply(d.Entity.Name); err == nil {
			typeSym, _ := d.File.Register(d.Entity.ID, symbols.NamespaceType, name, true)
			b.WriteString("\n\nexport type ")
			b.WriteString(typeSym.Ref())
			b.WriteString(" = z.infer<typeof ")
			b.WriteString(d.Symbol.Name)
			b.WriteString(">;")
		}
	}
	return b.String(), true
}

// declarationType is the annotation zod 3 needs on a schema that refers
// to itself through z.lazy.
func (e *Emitter) declarationType(d *walker.Declaration) string {
	if e.version != V3 {
		return ""
	}
	if d.Symbol.TypeHint != "" {
		return d.Symbol.TypeHint
	}
	if d.Emission.HasLazyExpression || d.Emission.HasCircularReference {
		return "z.ZodTypeAny"
	}
	return ""
}

func (e *Emitter) nullable(s string) string {
	if e.version == V3 {
		return s + ".nullable()"
	}
	return "z.nullable(" + s + ")"
}

func expr(s string) walker.Emission {
	return walker.Emission{Expr: s}
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
