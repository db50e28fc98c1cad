package schemautil

import (
	"github.com/goccy/go-json"

	"github.com/erraggy/oasgen/graph"
)

// Signature returns the key under which a union or intersection member is
// deduplicated: its $ref, shape tag and const value. Composite members
// (objects, arrays, tuples and anything with members of its own) return ""
// and are never merged.
func Signature(n *graph.Node) string {
	if n == nil {
		return "nil"
	}
	if n.Ref == "" && (n.IsComposite() || len(n.Items) > 0) {
		return ""
	}
	sig := n.Ref + "|" + string(n.Type) + "|"
	if n.HasConst() {
		sig += "const:" + encodeConst(n.Const)
	}
	return sig
}

// encodeConst renders a const value deterministically. Map keys are sorted
// by the encoder.
func encodeConst(v any) string {
	data, err := json.Marshal(v)
	if err != nil {
		return "?"
	}
	return string(data)
}

// DeduplicateMembers removes redundant members from a union or intersection
// member list, keeping the first occurrence of each signature in order. A
// member of shape unknown is dropped when any other member remains.
func DeduplicateMembers(items []*graph.Node) []*graph.Node {
	if len(items) == 0 {
		return items
	}

	out := make([]*graph.Node, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		sig := Signature(item)
		if sig != "" {
			if seen[sig] {
				continue
			}
			seen[sig] = true
		}
		out = append(out, item)
	}

	if len(out) > 1 {
		kept := out[:0:0]
		for _, item := range out {
			if isPureUnknown(item) {
				continue
			}
			kept = append(kept, item)
		}
		if len(kept) > 0 {
			out = kept
		}
	}
	return out
}

// isPureUnknown reports whether n is an unknown shape without a ref or const.
func isPureUnknown(n *graph.Node) bool {
	return n != nil && n.Type == graph.ShapeUnknown && n.Ref == "" && !n.HasConst()
}

// Deduplicate normalizes the member list of parent. The input is never
// modified: parent itself is returned when nothing changes, a copy
// otherwise.
//
// When a single member survives and parent is not an array, enum or tuple,
// the member's fields are lifted over the parent's so the result is the
// plain member shape. Parent metadata the member lacks (description,
// default, access scope) is kept.
func Deduplicate(parent *graph.Node) *graph.Node {
	if parent == nil || len(parent.Items) == 0 {
		return parent
	}

	items := DeduplicateMembers(parent.Items)
	switch parent.Type {
	case graph.ShapeArray, graph.ShapeEnum, graph.ShapeTuple:
		if len(items) == len(parent.Items) {
			return parent
		}
		out := parent.Clone()
		out.Items = items
		return out
	}

	if len(items) != 1 {
		if len(items) == len(parent.Items) {
			return parent
		}
		out := parent.Clone()
		out.Items = items
		return out
	}
	return lift(parent, items[0])
}

// lift returns member with parent metadata filled in where member has none.
func lift(parent, member *graph.Node) *graph.Node {
	out := member.Clone()
	if out.Description == "" {
		out.Description = parent.Description
	}
	if out.Title == "" {
		out.Title = parent.Title
	}
	if !out.Deprecated {
		out.Deprecated = parent.Deprecated
	}
	if out.AccessScope == "" {
		out.AccessScope = parent.AccessScope
	}
	if !out.HasDefault() && parent.HasDefault() {
		out.SetDefault(parent.Default)
	}
	return out
}
