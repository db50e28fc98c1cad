package transformers

import (
	"github.com/erraggy/oasgen/graph"
	"github.com/erraggy/oasgen/internal/schemautil"
)

// Analyze reports, for every $ref reachable from the component schemas,
// whether values of that schema need transforming. The result is the least
// fixpoint over the reference graph, so cycles without any date or 64-bit
// integer field converge to false.
func Analyze(resolver graph.Resolver, ids []string) map[string]bool {
	a := &analysis{
		resolver: resolver,
		nodes:    make(map[string]*graph.Node),
		needs:    make(map[string]bool),
	}
	for _, id := range ids {
		a.add(id)
	}
	for changed := true; changed; {
		changed = false
		// a.order grows while new refs are discovered.
		for i := 0; i < len(a.order); i++ {
			id := a.order[i]
			if a.needs[id] {
				continue
			}
			if a.transforms(a.nodes[id]) {
				a.needs[id] = true
				changed = true
			}
		}
	}
	return a.needs
}

type analysis struct {
	resolver graph.Resolver
	nodes    map[string]*graph.Node
	needs    map[string]bool
	order    []string
}

func (a *analysis) add(id string) {
	if _, ok := a.nodes[id]; ok {
		return
	}
	node, err := a.resolver.ResolveRef(id)
	if err != nil {
		node = nil
	}
	a.nodes[id] = node
	a.order = append(a.order, id)
}

// transforms mirrors the shape decisions of Emitter: a node transforms
// exactly when the emitter produces a non-empty emission for it.
func (a *analysis) transforms(n *graph.Node) bool {
	if n == nil {
		return false
	}
	if n.Ref != "" {
		a.add(n.Ref)
		return a.needs[n.Ref]
	}
	if schemautil.IsDate(n) || schemautil.IsBigInt(n) {
		return true
	}
	switch n.Type {
	case graph.ShapeObject:
		found := false
		n.Properties.Each(func(_ string, child *graph.Node) bool {
			found = a.transforms(child)
			return !found
		})
		return found
	case graph.ShapeArray:
		return a.composite(n.Operator(), schemautil.DeduplicateMembers(n.Items))
	case graph.ShapeTuple:
		for _, item := range n.Items {
			if a.transforms(item) {
				return true
			}
		}
		return false
	case "":
		return a.composite(n.Operator(), schemautil.DeduplicateMembers(n.Items))
	}
	return false
}

func (a *analysis) composite(op graph.LogicalOperator, items []*graph.Node) bool {
	switch len(items) {
	case 0:
		return false
	case 1:
		return a.transforms(items[0])
	}
	if op == graph.OperatorAnd {
		for _, item := range items {
			if a.transforms(item) {
				return true
			}
		}
		return false
	}
	count := 0
	for _, item := range items {
		switch {
		case item != nil && item.Type == graph.ShapeNull:
		case a.transforms(item):
			count++
		default:
			return false
		}
	}
	return count == 1
}
