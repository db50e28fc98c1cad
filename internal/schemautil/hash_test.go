package schemautil

import (
	"testing"

	"github.com/erraggy/oasgen/graph"
)

func object(props ...string) *graph.Node {
	n := &graph.Node{Type: graph.ShapeObject, Properties: graph.NewOrderedMap[*graph.Node]()}
	for _, p := range props {
		n.Properties.Set(p, &graph.Node{Type: graph.ShapeString})
	}
	return n
}

func TestSchemaHasher_Hash_Consistency(t *testing.T) {
	hasher := NewSchemaHasher()
	n := object("name", "age")

	if hasher.Hash(n) != hasher.Hash(n) {
		t.Error("Hash is not consistent")
	}
}

func TestSchemaHasher_Hash_PropertyOrderIgnored(t *testing.T) {
	if StructuralHash(object("a", "b")) != StructuralHash(object("b", "a")) {
		t.Error("property order should not change the hash")
	}
}

func TestSchemaHasher_Hash_MetadataIgnored(t *testing.T) {
	a := &graph.Node{Type: graph.ShapeString, Description: "one"}
	b := &graph.Node{Type: graph.ShapeString, Description: "two", Title: "T"}
	if StructuralHash(a) != StructuralHash(b) {
		t.Error("metadata should not change the hash")
	}
}

func TestSchemaHasher_Hash_DifferentNodes(t *testing.T) {
	tests := []struct {
		name string
		a, b *graph.Node
	}{
		{"different types", &graph.Node{Type: graph.ShapeString}, &graph.Node{Type: graph.ShapeNumber}},
		{"different formats", &graph.Node{Type: graph.ShapeString, Format: "date"}, &graph.Node{Type: graph.ShapeString, Format: "uuid"}},
		{"different refs", &graph.Node{Ref: "#/components/schemas/A"}, &graph.Node{Ref: "#/components/schemas/B"}},
		{"different properties", object("a"), object("b")},
		{"member order", &graph.Node{Items: []*graph.Node{{Type: graph.ShapeString}, {Type: graph.ShapeNumber}}},
			&graph.Node{Items: []*graph.Node{{Type: graph.ShapeNumber}, {Type: graph.ShapeString}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if StructuralHash(tt.a) == StructuralHash(tt.b) {
				t.Errorf("expected different hashes")
			}
		})
	}
}

func TestSchemaHasher_Hash_SharedCycle(t *testing.T) {
	n := &graph.Node{Type: graph.ShapeArray}
	n.Items = []*graph.Node{n}
	_ = StructuralHash(n) // must terminate
}

func TestSchemaHasher_GroupByHash(t *testing.T) {
	nodes := map[string]*graph.Node{
		"A": object("x"),
		"B": object("x"),
		"C": object("y"),
	}
	groups := NewSchemaHasher().GroupByHash([]string{"A", "B", "C"}, func(name string) *graph.Node { return nodes[name] })
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if g := groups[StructuralHash(nodes["A"])]; len(g) != 2 || g[0] != "A" || g[1] != "B" {
		t.Errorf("unexpected group %v", g)
	}
}
