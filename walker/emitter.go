package walker

import (
	"github.com/erraggy/oasgen/graph"
	"github.com/erraggy/oasgen/internal/naming"
	"github.com/erraggy/oasgen/symbols"
)

// Emitter turns concrete shapes into expressions for one output flavor.
//
// Emitters never detect cycles, allocate names or decide the order of
// modifiers; the walker does, and calls back into the emitter for each
// step.
type Emitter interface {
	// Flavor names the output flavor, e.g. "zod".
	Flavor() string
	// Namespace is where the flavor's declarations are named.
	Namespace() symbols.Namespace
	// Naming returns the flavor's default naming policies.
	Naming() Naming

	// Shape builds the expression of a node with a shape tag. Children
	// are resolved through ctx.
	Shape(node *graph.Node, ctx *Context) (Emission, error)
	// Unknown is the catch-all shape.
	Unknown(ctx *Context) Emission
	// Reference refers to a named declaration.
	Reference(target *symbols.Symbol) Emission
	// Lazy refers to a declaration that is still being built by an
	// ancestor on the current call chain.
	Lazy(target *symbols.Symbol) Emission
	// Union and Intersection combine the resolved members of an
	// anonymous composite. nodes are the deduplicated member nodes.
	Union(members []Emission, nodes []*graph.Node, ctx *Context) Emission
	Intersection(members []Emission, nodes []*graph.Node, ctx *Context) Emission

	Readonly(e Emission) Emission
	Optional(e Emission) Emission
	Default(e Emission, node *graph.Node) Emission

	// Declare returns the declaration text of a finished entity. ok is
	// false when the flavor has nothing to emit for it.
	Declare(d *Declaration) (value string, ok bool)
}

// Importer is implemented by emitters whose output imports modules.
// The walker records the imports and reserves the imported names in the
// file before any entity is named, so no declaration can shadow them.
type Importer interface {
	Imports() []symbols.Import
}

// Naming maps entity kinds to naming policies.
type Naming map[EntityKind]naming.Policy

// Policy returns the policy for kind, falling back to the definition
// policy and then to the zero policy.
func (n Naming) Policy(kind EntityKind) naming.Policy {
	if p, ok := n[kind]; ok {
		return p
	}
	return n[KindDefinition]
}

// Merge returns a copy of n with the entries of other on top.
func (n Naming) Merge(other Naming) Naming {
	out := make(Naming, len(n)+len(other))
	for k, v := range n {
		out[k] = v
	}
	for k, v := range other {
		out[k] = v
	}
	return out
}
