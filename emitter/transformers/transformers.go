// Package transformers emits response transformers: functions that turn
// decoded JSON into the runtime values the static types promise.
//
// Date strings become Date objects and 64-bit integers become bigint.
// Objects are mutated in place, arrays are mapped, and references call the
// referenced schema's transformer. Schemas with nothing to transform emit
// nothing; which ones need a transformer is decided up front by [Analyze]
// so a reference never calls a transformer that is skipped later.
//
//	export const petSchemaResponseTransformer = (data: any) => {
//	  data.bornAt = new Date(data.bornAt);
//	  return data;
//	};
package transformers

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
const FlavorName = "transformers"

// DefaultTypesModule is the module operation response types are imported
// from.
const DefaultTypesModule = "./types.gen"

// hole stands for the value being transformed in emission text. The NUL
// bytes keep it apart from property names.
const hole = "\x00$v\x00"

const dataVar = "data"

// Emitter implements walker.Emitter for response transformers.
type Emitter struct {
	resolver    graph.Resolver
	roots       []string
	needs       map[string]bool
	types       *symbols.File
	typesModule string
}

// Option configures an Emitter.
type Option func(*Emitter)

// WithTypes makes operation response transformers return the response
// type declared in file, imported from module.
func WithTypes(file *symbols.File, module string) Option {
	return func(e *Emitter) {
		e.types = file
		if module != "" {
			e.typesModule = module
		}
	}
}

// New returns a transformers emitter for the components of doc.
func New(doc *graph.Document, opts ...Option) *Emitter {
	e := &Emitter{
		resolver:    doc,
		roots:       doc.ComponentIDs(),
		typesModule: DefaultTypesModule,
	}
	e.needs = Analyze(e.resolver, e.roots)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

var _ walker.Emitter = (*Emitter)(nil)

// Needs reports whether the schema with the $ref id gets a transformer.
// Refs outside the components, such as pointers into a schema, are
// analyzed on first use.
func (e *Emitter) Needs(id string) bool {
	if v, ok := e.needs[id]; ok {
		return v
	}
	e.roots = append(e.roots, id)
	e.needs = Analyze(e.resolver, e.roots)
	return e.needs[id]
}

// Flavor implements walker.Emitter.
func (e *Emitter) Flavor() string { return FlavorName }

// Namespace implements walker.Emitter.
func (e *Emitter) Namespace() symbols.Namespace { return symbols.NamespaceValue }

// Naming implements walker.Emitter.
func (e *Emitter) Naming() walker.Naming {
	return walker.Naming{
		walker.KindDefinition: naming.MustPolicy("{{name}}SchemaResponseTransformer", naming.CamelCase),
		walker.KindResponse:   naming.MustPolicy("{{name}}ResponseTransformer", naming.CamelCase),
	}
}

// Shape implements walker.Emitter.
func (e *Emitter) Shape(node *graph.Node, ctx *walker.Context) (walker.Emission, error) {
	switch {
	case schemautil.IsDate(node):
		return walker.Emission{Expr: "new Date(" + hole + ")"}, nil
	case schemautil.IsBigInt(node):
		return walker.Emission{Expr: "BigInt(" + hole + ".toString())"}, nil
	}
	switch node.Type {
	case graph.ShapeObject:
		return e.object(node, ctx)
	case graph.ShapeArray:
		return e.array(node, ctx)
	case graph.ShapeTuple:
		return e.tuple(node, ctx)
	}
	return walker.Emission{}, nil
}

func (e *Emitter) object(node *graph.Node, ctx *walker.Context) (walker.Emission, error) {
	var out []string
	for _, name := range node.Properties.Keys() {
		child, _ := node.Properties.Get(name)
		c, err := ctx.ResolveProperty(name, child, !node.IsRequired(name))
		if err != nil {
			return walker.Emission{}, err
		}
		if c.Empty() {
			continue
		}
		out = append(out, assign(c, tsx.PropertyAccess(hole, name))...)
	}
	return walker.Emission{Statements: out}, nil
}

func (e *Emitter) array(node *graph.Node, ctx *walker.Context) (walker.Emission, error) {
	el, ok, err := ctx.ResolveElements(node)
	if err != nil || !ok || el.Empty() {
		return walker.Emission{}, err
	}
	const item = "item"
	if len(el.Statements) > 0 {
		body := append(assign(el, item), "return "+item+";")
		fn := "(" + item + ": any) => {\n" + tsx.IndentText(strings.Join(body, "\n")) + "\n}"
		return walker.Emission{Expr: hole + ".map(" + fn + ")"}, nil
	}
	value := strings.ReplaceAll(el.Expr, hole, item)
	if el.Nullable {
		value = item + " ? " + value + " : " + item
	}
	return walker.Emission{Expr: hole + ".map((" + item + ": any) => " + value + ")"}, nil
}

func (e *Emitter) tuple(node *graph.Node, ctx *walker.Context) (walker.Emission, error) {
	var out []string
	for i, item := range node.Items {
		c, err := ctx.ResolveItem(i, item)
		if err != nil {
			return walker.Emission{}, err
		}
		if c.Empty() {
			continue
		}
		out = append(out, assign(c, hole+"["+tsx.Literal(i)+"]")...)
	}
	return walker.Emission{Statements: out}, nil
}

// statements returns c in statement form, acting on the hole.
func statements(c walker.Emission) []string {
	if len(c.Statements) > 0 {
		return c.Statements
	}
	return []string{hole + " = " + c.Expr + ";"}
}

// assign returns the statements applying c to the value at target,
// guarded when the value may be absent.
func assign(c walker.Emission, target string) []string {
	src := statements(c)
	body := make([]string, len(src))
	for i, s := range src {
		body[i] = strings.ReplaceAll(s, hole, target)
	}
	if !c.Optional && !c.Nullable {
		return body
	}
	return []string{"if (" + target + ") {\n" + tsx.IndentText(strings.Join(body, "\n")) + "\n}"}
}

// Unknown implements walker.Emitter.
func (e *Emitter) Unknown(*walker.Context) walker.Emission { return walker.Emission{} }

// Reference implements walker.Emitter. Only schemas that need
// transforming are called.
func (e *Emitter) Reference(target *symbols.Symbol) walker.Emission {
	if !e.Needs(target.ID) {
		return walker.Emission{}
	}
	return walker.Emission{Expr: target.Ref() + "(" + hole + ")"}
}

// Lazy implements walker.Emitter. Transformers are functions, so a self
// reference is an ordinary call.
func (e *Emitter) Lazy(target *symbols.Symbol) walker.Emission {
	return e.Reference(target)
}

// Union implements walker.Emitter. Only a union of one transformable
// member and null members is transformed; anything else is ambiguous at
// runtime and left alone.
func (e *Emitter) Union(members []walker.Emission, nodes []*graph.Node, _ *walker.Context) walker.Emission {
	var (
		picked   *walker.Emission
		nullable bool
	)
	for i := range members {
		if i < len(nodes) && nodes[i] != nil && nodes[i].Type == graph.ShapeNull {
			nullable = true
			continue
		}
		if members[i].Empty() || picked != nil {
			return walker.Emission{}
		}
		picked = &members[i]
	}
	if picked == nil {
		return walker.Emission{}
	}
	out := *picked
	out.Nullable = out.Nullable || nullable
	return out
}

// Intersection implements walker.Emitter. Every member acts on the same
// value, so their statements run one after the other.
func (e *Emitter) Intersection(members []walker.Emission, _ []*graph.Node, _ *walker.Context) walker.Emission {
	var out []string
	for _, m := range members {
		if m.Empty() {
			continue
		}
		out = append(out, statements(m)...)
	}
	return walker.Emission{Statements: out}
}

// Readonly implements walker.Emitter.
func (e *Emitter) Readonly(x walker.Emission) walker.Emission { return x }

// Optional implements walker.Emitter. The guard is added by the parent.
func (e *Emitter) Optional(x walker.Emission) walker.Emission { return x }

// Default implements walker.Emitter.
func (e *Emitter) Default(x walker.Emission, _ *graph.Node) walker.Emission { return x }

// Declare implements walker.Emitter. Entities with nothing to transform
// are skipped.
func (e *Emitter) Declare(d *walker.Declaration) (string, bool) {
	if d.Emission.Empty() {
		return "", false
	}

	w := tsx.NewWriter()
	if d.Entity.Kind == walker.KindResponse {
		w.Block("export const %s = async (%s: any)%s =>", d.Symbol.Name, dataVar, e.responseType(d))
	} else {
		w.Block("export const %s = (%s: any) =>", d.Symbol.Name, dataVar)
	}
	for _, s := range statements(d.Emission) {
		w.Line("%s", strings.ReplaceAll(s, hole, dataVar))
	}
	w.Line("return %s;", dataVar)
	w.EndBlockSuffix(";")
	return strings.TrimSuffix(w.String(), "\n"), true
}

// responseType returns the Promise annotation of an operation response
// transformer and imports the response type into the file.
func (e *Emitter) responseType(d *walker.Declaration) string {
	if e.types == nil {
		return ""
	}
	name, ok := e.types.Lookup(d.Entity.ID, symbols.NamespaceType)
	if !ok {
		return ""
	}
	d.File.AddImport(symbols.Import{Module: e.typesModule, Names: []string{name}, TypeOnly: true})
	d.File.Registry(symbols.NamespaceType).Register("import:"+e.typesModule+"#"+name, name)
	return ": Promise<" + name + ">"
}
