package generator

import (
	"slices"

	"github.com/erraggy/oasgen/graph"
)

// DefaultPaginationKeywords are the field names treated as pagination
// controls.
var DefaultPaginationKeywords = []string{"after", "before", "cursor", "offset", "page", "start"}

// maxRefHops bounds $ref chains followed while looking for pagination.
const maxRefHops = 32

// Pagination is the field that controls paging of an operation.
type Pagination struct {
	// In is "query" or "body".
	In   string `json:"in" yaml:"in"`
	Name string `json:"name" yaml:"name"`
}

// DetectPagination returns the first field of op whose name is one of
// keywords: query parameters first, then the properties of the request
// body, following $ref. Only scalar fields count. It returns nil when
// nothing matches.
func DetectPagination(op *graph.Operation, resolver graph.Resolver, keywords []string) *Pagination {
	if op == nil {
		return nil
	}
	if len(keywords) == 0 {
		keywords = DefaultPaginationKeywords
	}

	for _, p := range op.Parameters {
		if p == nil || p.In != graph.InQuery || !slices.Contains(keywords, p.Name) {
			continue
		}
		if isScalar(deref(p.Schema, resolver)) {
			return &Pagination{In: string(graph.InQuery), Name: p.Name}
		}
	}

	if op.Body == nil {
		return nil
	}
	body := deref(op.Body.Schema, resolver)
	if body == nil || body.Type != graph.ShapeObject {
		return nil
	}
	for _, name := range body.Properties.Keys() {
		if !slices.Contains(keywords, name) {
			continue
		}
		child, _ := body.Properties.Get(name)
		if isScalar(deref(child, resolver)) {
			return &Pagination{In: "body", Name: name}
		}
	}
	return nil
}

// deref follows $ref until it reaches a concrete node. It returns nil for
// unresolved or overly long chains.
func deref(n *graph.Node, resolver graph.Resolver) *graph.Node {
	for i := 0; n != nil && n.Ref != ""; i++ {
		if i == maxRefHops || resolver == nil {
			return nil
		}
		next, err := resolver.ResolveRef(n.Ref)
		if err != nil {
			return nil
		}
		n = next
	}
	return n
}

func isScalar(n *graph.Node) bool {
	if n == nil {
		return false
	}
	switch n.Type {
	case graph.ShapeString, graph.ShapeNumber, graph.ShapeInteger, graph.ShapeBoolean:
		return true
	}
	return false
}
