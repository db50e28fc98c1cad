package schemautil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/erraggy/oasgen/graph"
)

func TestFormatHelpers(t *testing.T) {
	assert.True(t, IsBigInt(&graph.Node{Type: graph.ShapeInteger, Format: "int64"}))
	assert.True(t, IsBigInt(&graph.Node{Type: graph.ShapeString, Format: "uint64"}))
	assert.False(t, IsBigInt(&graph.Node{Type: graph.ShapeInteger, Format: "int32"}))
	assert.False(t, IsBigInt(&graph.Node{Type: graph.ShapeBoolean, Format: "int64"}))

	assert.True(t, IsDate(&graph.Node{Type: graph.ShapeString, Format: "date"}))
	assert.True(t, IsDateTime(&graph.Node{Type: graph.ShapeString, Format: "date-time"}))
	assert.False(t, IsDateTime(&graph.Node{Type: graph.ShapeString, Format: "date"}))
	assert.False(t, IsDate(nil))
}

func TestEnumLiterals(t *testing.T) {
	enum := &graph.Node{Type: graph.ShapeEnum, Items: []*graph.Node{constNode("a"), constNode("b")}}
	values, ok := EnumLiterals(enum)
	assert.True(t, ok)
	assert.Equal(t, []any{"a", "b"}, values)
	assert.True(t, IsStringEnum(enum))

	mixed := &graph.Node{Type: graph.ShapeEnum, Items: []*graph.Node{constNode("a"), constNode(1.0)}}
	assert.False(t, IsStringEnum(mixed))

	open := &graph.Node{Type: graph.ShapeEnum, Items: []*graph.Node{{Type: graph.ShapeString}}}
	_, ok = EnumLiterals(open)
	assert.False(t, ok)
}

func TestIsNullable(t *testing.T) {
	assert.True(t, IsNullable(&graph.Node{Items: []*graph.Node{{Type: graph.ShapeString}, {Type: graph.ShapeNull}}}))
	assert.True(t, IsNullable(&graph.Node{Type: graph.ShapeEnum, Items: []*graph.Node{constNode("a"), constNode(nil)}}))
	assert.False(t, IsNullable(&graph.Node{Type: graph.ShapeString}))
	assert.Len(t, WithoutNull([]*graph.Node{{Type: graph.ShapeNull}, {Type: graph.ShapeString}}), 1)
}
