package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasgen/graph"
)

func TestObject(t *testing.T) {
	n := Object(Req("id", String()), Opt("tag", String()))
	assert.Equal(t, []string{"id", "tag"}, n.Properties.Keys())
	assert.Equal(t, []string{"id"}, n.Required)
}

func TestEnum(t *testing.T) {
	n := Enum("a", 1.0, nil)
	require.Len(t, n.Items, 3)
	assert.Equal(t, graph.ShapeString, n.Items[0].Type)
	assert.Equal(t, graph.ShapeNumber, n.Items[1].Type)
	assert.True(t, n.Items[2].HasConst())
}

func TestDocumentMarksCycles(t *testing.T) {
	doc := Document(S("Tree", Object(Opt("children", Array(Ref("Tree"))))))
	tree, ok := doc.Schema("Tree")
	require.True(t, ok)
	children, _ := tree.Properties.Get("children")
	assert.True(t, children.Items[0].Circular)
}

func TestPetStoreYAMLParses(t *testing.T) {
	doc, err := graph.Parse([]byte(PetStoreYAML))
	require.NoError(t, err)
	assert.Equal(t, []string{"Pet", "Status", "Tree", "Error"}, doc.Components.Schemas.Keys())
	assert.Len(t, doc.Operations, 3)
	assert.Len(t, doc.Webhooks, 1)
}

func TestWriteTempYAML(t *testing.T) {
	path := WriteTempYAML(t, "components: {}\n")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "components: {}\n", string(data))
}
