package walker

import (
	"context"

	"github.com/erraggy/oasgen/graph"
	"github.com/erraggy/oasgen/internal/naming"
)

// DefaultMaxDepth bounds nested resolve calls per entity.
const DefaultMaxDepth = 256

// Option configures a Walker.
type Option func(*Walker)

// WithLogger sets the logger. Nil keeps the NopLogger.
func WithLogger(l graph.Logger) Option {
	return func(w *Walker) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithMaxDepth sets the maximum nesting depth per entity. Nodes below it
// degrade to the unknown shape. If depth is <= 0, the default is kept.
func WithMaxDepth(depth int) Option {
	return func(w *Walker) {
		if depth > 0 {
			w.maxDepth = depth
		}
	}
}

// WithNaming overrides the emitter's naming policy for one entity kind.
func WithNaming(kind EntityKind, p naming.Policy) Option {
	return func(w *Walker) {
		w.overrides[kind] = p
	}
}

// WithContext sets the context checked before each top-level entity.
func WithContext(ctx context.Context) Option {
	return func(w *Walker) {
		if ctx != nil {
			w.ctx = ctx
		}
	}
}

// SchemaSkippedHandler is called when a node degrades to the unknown
// shape. reason is "depth" when the node lies below the maximum depth and
// "unsupported" when it has no $ref, shape tag or members.
type SchemaSkippedHandler func(reason string, node *graph.Node, path string)

// WithSchemaSkippedHandler sets the handler called for degraded nodes.
func WithSchemaSkippedHandler(fn SchemaSkippedHandler) Option {
	return func(w *Walker) { w.onSkipped = fn }
}
