package walker

import (
	"strconv"

	"github.com/erraggy/oasgen/graph"
	"github.com/erraggy/oasgen/internal/schemautil"
	"github.com/erraggy/oasgen/symbols"
)

// Context is handed to the emitter for one node. It resolves children
// through the walker and collects the flags they bubble up.
type Context struct {
	w      *Walker
	state  *State
	entity *Entity

	circular bool
	lazy     bool
}

// Resolve resolves a child node reached through the path segments.
func (c *Context) Resolve(child *graph.Node, segments ...string) (Emission, error) {
	return c.resolve(child, false, segments)
}

// ResolveProperty resolves an object property. An optional property gets
// the optional modifier after read-only and before default.
func (c *Context) ResolveProperty(name string, child *graph.Node, optional bool) (Emission, error) {
	return c.resolve(child, optional, []string{"properties", name})
}

// ResolveItem resolves the i-th item of an array, tuple or enum.
func (c *Context) ResolveItem(i int, child *graph.Node) (Emission, error) {
	return c.resolve(child, false, []string{"items", strconv.Itoa(i)})
}

// ResolveElements resolves the element type of an array. Duplicate items
// are dropped and several remaining items are combined into a union, or an
// intersection for the "and" operator. ok is false when node has no items.
func (c *Context) ResolveElements(node *graph.Node) (e Emission, ok bool, err error) {
	items := schemautil.DeduplicateMembers(node.Items)
	if len(items) == 0 {
		return Emission{}, false, nil
	}
	members := make([]Emission, 0, len(items))
	for i, item := range items {
		m, err := c.ResolveItem(i, item)
		if err != nil {
			return Emission{}, true, err
		}
		members = append(members, m)
	}
	if len(members) == 1 {
		return members[0], true, nil
	}
	if node.Operator() == graph.OperatorAnd {
		e = c.w.emitter.Intersection(members, items, c)
	} else {
		e = c.w.emitter.Union(members, items, c)
	}
	e.HasCircularReference = e.HasCircularReference || anyCircular(members)
	return e, true, nil
}

func anyCircular(members []Emission) bool {
	for _, m := range members {
		if m.HasCircularReference {
			return true
		}
	}
	return false
}

func (c *Context) resolve(child *graph.Node, optional bool, segments []string) (Emission, error) {
	e, err := c.w.Resolve(child, c.state.child(optional, segments...))
	if err != nil {
		return Emission{}, err
	}
	c.circular = c.circular || e.HasCircularReference
	c.lazy = c.lazy || e.HasLazyExpression
	return e, nil
}

// File returns the file being generated.
func (c *Context) File() *symbols.File {
	return c.w.file
}

// Logger returns the walker's logger.
func (c *Context) Logger() graph.Logger {
	return c.w.logger
}

// Entity returns the top-level entity being generated.
func (c *Context) Entity() *Entity {
	return c.entity
}

// Path returns the JSON pointer of the current node.
func (c *Context) Path() string {
	return c.state.Path()
}

// Optional reports whether the current node is an optional property.
func (c *Context) Optional() bool {
	return c.state.Optional
}

// Warn records a warning issue at the current path.
func (c *Context) Warn(msg string) {
	c.w.addIssue(c.state.Path(), warningIssue, msg)
}
