package walker

import (
	"github.com/erraggy/oasgen/graph"
	"github.com/erraggy/oasgen/symbols"
)

// Emission is the result of resolving one node for one flavor.
type Emission struct {
	// Expr is the target expression. It may embed symbol placeholders,
	// which the File renders to final names.
	Expr string
	// TypeHint is the static type of Expr when the flavor needs one, e.g.
	// for a lazy self reference.
	TypeHint string
	// HasCircularReference is set when Expr refers to a declaration that
	// is still being built further up the stack, directly or through a
	// child.
	HasCircularReference bool
	// HasLazyExpression is set when Expr contains a deferred reference.
	HasLazyExpression bool
	// Optional and Readonly record the modifiers applied by the walker so
	// flavors that express them at the property level can read them back.
	Optional bool
	Readonly bool
	// Nullable is set by flavors whose unions absorb null members.
	Nullable bool
	// Statements is a statement-form body for imperative flavors, which
	// choose their own token for the value being processed.
	Statements []string
}

// Empty reports whether the emission produces nothing.
func (e Emission) Empty() bool {
	return e.Expr == "" && len(e.Statements) == 0
}

// EntityKind classifies top-level entities for naming.
type EntityKind string

const (
	// KindDefinition is a component schema.
	KindDefinition EntityKind = "definition"
	// KindRequest is an operation's request data.
	KindRequest EntityKind = "request"
	// KindResponse is an operation's successful response.
	KindResponse EntityKind = "response"
	// KindWebhook is a webhook request payload.
	KindWebhook EntityKind = "webhook"
)

// Entity is a top-level unit of generation.
type Entity struct {
	// ID is the stable symbol id: the $ref of a component schema, or a
	// derived id such as "#/operations/getPet/response".
	ID string
	// Name is the raw name handed to the naming policy.
	Name string
	Kind EntityKind
	Node *graph.Node
	// Meta carries entity attributes that end up on the symbol, such as
	// the operation id.
	Meta map[string]string
}

// Declaration is a finished entity ready to be turned into declaration
// text by Emitter.Declare.
type Declaration struct {
	Symbol   *symbols.Symbol
	Entity   *Entity
	Emission Emission
	File     *symbols.File
}
