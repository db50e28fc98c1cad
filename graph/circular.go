package graph

import "slices"

// MarkCircular sets the Circular hint on every $ref node whose target
// component lies on a cycle through the component that contains the node.
//
// Components are grouped into strongly connected components of the
// component reference graph; a reference is circular when source and target
// share a group that is either larger than one member or has a self edge.
func MarkCircular(doc *Document) {
	names := doc.Components.Schemas.Keys()
	if len(names) == 0 {
		return
	}

	refs := make(map[string][]*Node, len(names))
	edges := make(map[string][]string, len(names))
	for _, name := range names {
		root, _ := doc.Schema(name)
		seen := make(map[*Node]bool)
		collectRefs(root, seen, func(n *Node) {
			refs[name] = append(refs[name], n)
			if target := componentOf(n.Ref); target != "" {
				edges[name] = append(edges[name], target)
			}
		})
	}

	group := stronglyConnected(names, edges)
	size := make(map[int]int, len(group))
	for _, g := range group {
		size[g]++
	}

	for _, name := range names {
		for _, n := range refs[name] {
			target := componentOf(n.Ref)
			g, ok := group[target]
			if !ok || g != group[name] {
				continue
			}
			if size[g] > 1 || target == name {
				n.Circular = true
			}
		}
	}
}

// References returns, for each component, the components its subtree
// references. Pointers into a component count as references to it.
// Duplicates are kept so callers can count uses.
func (d *Document) References() map[string][]string {
	out := make(map[string][]string)
	for _, name := range d.Components.Schemas.Keys() {
		root, _ := d.Schema(name)
		collectRefs(root, make(map[*Node]bool), func(n *Node) {
			if target := componentOf(n.Ref); target != "" {
				out[name] = append(out[name], target)
			}
		})
	}
	return out
}

// CyclicComponents returns the components that lie on a reference cycle,
// including components that reference themselves.
func (d *Document) CyclicComponents() map[string]bool {
	names := d.Components.Schemas.Keys()
	edges := d.References()
	group := stronglyConnected(names, edges)
	size := make(map[int]int, len(group))
	for _, g := range group {
		size[g]++
	}
	out := make(map[string]bool)
	for _, name := range names {
		if size[group[name]] > 1 || slices.Contains(edges[name], name) {
			out[name] = true
		}
	}
	return out
}

// componentOf returns the component name a ref points at or into.
func componentOf(ref string) string {
	if len(ref) <= len(ComponentPrefix) || ref[:len(ComponentPrefix)] != ComponentPrefix {
		return ""
	}
	path := JSONPointerToPath(ref)
	if len(path) < 3 {
		return ""
	}
	return path[2]
}

// collectRefs calls fn for every $ref node reachable from n without
// following references.
func collectRefs(n *Node, seen map[*Node]bool, fn func(*Node)) {
	if n == nil || seen[n] {
		return
	}
	seen[n] = true
	if n.Ref != "" {
		fn(n)
	}
	n.Properties.Each(func(_ string, child *Node) bool {
		collectRefs(child, seen, fn)
		return true
	})
	collectRefs(n.AdditionalProperties, seen, fn)
	for _, item := range n.Items {
		collectRefs(item, seen, fn)
	}
}

// stronglyConnected assigns each key a group number using Tarjan's
// algorithm. Keys are visited in the given order so numbering is stable.
func stronglyConnected(keys []string, edges map[string][]string) map[string]int {
	var (
		index   = make(map[string]int, len(keys))
		lowlink = make(map[string]int, len(keys))
		onStack = make(map[string]bool, len(keys))
		stack   []string
		group   = make(map[string]int, len(keys))
		next    int
		groups  int
	)
	known := make(map[string]bool, len(keys))
	for _, k := range keys {
		known[k] = true
	}

	var visit func(k string)
	visit = func(k string) {
		index[k] = next
		lowlink[k] = next
		next++
		stack = append(stack, k)
		onStack[k] = true

		for _, to := range edges[k] {
			if !known[to] {
				continue
			}
			if _, visited := index[to]; !visited {
				visit(to)
				lowlink[k] = min(lowlink[k], lowlink[to])
			} else if onStack[to] {
				lowlink[k] = min(lowlink[k], index[to])
			}
		}

		if lowlink[k] == index[k] {
			for {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[top] = false
				group[top] = groups
				if top == k {
					break
				}
			}
			groups++
		}
	}

	for _, k := range keys {
		if _, visited := index[k]; !visited {
			visit(k)
		}
	}
	return group
}
