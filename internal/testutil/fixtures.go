// Package testutil provides schema-graph fixtures for unit tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/erraggy/oasgen/graph"
)

// Prop is one object property.
type Prop struct {
	Name     string
	Node     *graph.Node
	Required bool
}

// Req returns a required property.
func Req(name string, n *graph.Node) Prop { return Prop{Name: name, Node: n, Required: true} }

// Opt returns an optional property.
func Opt(name string, n *graph.Node) Prop { return Prop{Name: name, Node: n} }

// Ref returns a reference to the named component schema.
func Ref(name string) *graph.Node { return &graph.Node{Ref: graph.ComponentRef(name)} }

// String returns a string node with an optional format.
func String(format ...string) *graph.Node {
	n := &graph.Node{Type: graph.ShapeString}
	if len(format) > 0 {
		n.Format = format[0]
	}
	return n
}

// Number returns a number node.
func Number() *graph.Node { return &graph.Node{Type: graph.ShapeNumber} }

// Integer returns an integer node with an optional format.
func Integer(format ...string) *graph.Node {
	n := &graph.Node{Type: graph.ShapeInteger}
	if len(format) > 0 {
		n.Format = format[0]
	}
	return n
}

// Boolean returns a boolean node.
func Boolean() *graph.Node { return &graph.Node{Type: graph.ShapeBoolean} }

// Null returns a null node.
func Null() *graph.Node { return &graph.Node{Type: graph.ShapeNull} }

// Unknown returns an unknown node.
func Unknown() *graph.Node { return &graph.Node{Type: graph.ShapeUnknown} }

// Const returns a node of shape with a const value.
func Const(shape graph.Shape, v any) *graph.Node {
	n := &graph.Node{Type: shape}
	n.SetConst(v)
	return n
}

// Object returns an object node with props in order.
func Object(props ...Prop) *graph.Node {
	n := &graph.Node{Type: graph.ShapeObject, Properties: graph.NewOrderedMap[*graph.Node]()}
	for _, p := range props {
		n.Properties.Set(p.Name, p.Node)
		if p.Required {
			n.Required = append(n.Required, p.Name)
		}
	}
	return n
}

// Array returns an array of item.
func Array(item *graph.Node) *graph.Node {
	return &graph.Node{Type: graph.ShapeArray, Items: []*graph.Node{item}}
}

// Tuple returns a tuple of items.
func Tuple(items ...*graph.Node) *graph.Node {
	return &graph.Node{Type: graph.ShapeTuple, Items: items}
}

// Enum returns an enum of const values. Strings become string consts,
// nil a null const and everything else a number const.
func Enum(values ...any) *graph.Node {
	n := &graph.Node{Type: graph.ShapeEnum}
	for _, v := range values {
		shape := graph.ShapeNumber
		switch v.(type) {
		case string:
			shape = graph.ShapeString
		case bool:
			shape = graph.ShapeBoolean
		case nil:
			shape = graph.ShapeNull
		}
		n.Items = append(n.Items, Const(shape, v))
	}
	return n
}

// Union returns an anonymous union of items.
func Union(items ...*graph.Node) *graph.Node {
	return &graph.Node{Items: items, LogicalOperator: graph.OperatorOr}
}

// Intersection returns an anonymous intersection of items.
func Intersection(items ...*graph.Node) *graph.Node {
	return &graph.Node{Items: items, LogicalOperator: graph.OperatorAnd}
}

// ReadOnly marks n read-only and returns it.
func ReadOnly(n *graph.Node) *graph.Node {
	n.AccessScope = graph.ScopeRead
	return n
}

// WithDefault sets n's default and returns it.
func WithDefault(n *graph.Node, v any) *graph.Node {
	n.SetDefault(v)
	return n
}

// Schema is a named component schema.
type Schema struct {
	Name string
	Node *graph.Node
}

// S returns a named component schema.
func S(name string, n *graph.Node) Schema { return Schema{Name: name, Node: n} }

// Document builds a graph document from schemas in order and computes
// circular hints.
func Document(schemas ...Schema) *graph.Document {
	doc := &graph.Document{}
	for _, s := range schemas {
		doc.AddSchema(s.Name, s.Node)
	}
	if doc.Components.Schemas == nil {
		doc.Components.Schemas = graph.NewOrderedMap[*graph.Node]()
	}
	graph.MarkCircular(doc)
	return doc
}

// PetStoreYAML is a small graph document with components, operations and
// a webhook.
const PetStoreYAML = `components:
  schemas:
    Pet:
      type: object
      required: [id, name]
      properties:
        id:
          type: integer
          format: int64
        name:
          type: string
          minLength: 1
        tag:
          type: string
        bornAt:
          type: string
          format: date-time
        status:
          $ref: '#/components/schemas/Status'
    Status:
      type: enum
      items:
        - type: string
          const: available
        - type: string
          const: sold
    Tree:
      type: object
      properties:
        label:
          type: string
        children:
          type: array
          items:
            $ref: '#/components/schemas/Tree'
    Error:
      type: object
      required: [message]
      properties:
        message:
          type: string
operations:
  - id: listPets
    method: get
    path: /pets
    parameters:
      - name: cursor
        in: query
        schema:
          type: string
      - name: limit
        in: query
        schema:
          type: integer
    responses:
      "200":
        schema:
          type: array
          items:
            $ref: '#/components/schemas/Pet'
      default:
        schema:
          $ref: '#/components/schemas/Error'
  - id: getPet
    method: get
    path: /pets/{petId}
    parameters:
      - name: petId
        in: path
        required: true
        schema:
          type: integer
          format: int64
    responses:
      "200":
        schema:
          $ref: '#/components/schemas/Pet'
  - id: deletePet
    method: delete
    path: /pets/{petId}
    parameters:
      - name: petId
        in: path
        required: true
        schema:
          type: integer
          format: int64
    responses:
      "204": {}
webhooks:
  - name: petAdopted
    method: post
    body:
      required: true
      schema:
        $ref: '#/components/schemas/Pet'
`

// WriteTempYAML writes content to a temporary file and returns its path.
// The file is removed when the test completes (via t.TempDir).
func WriteTempYAML(t *testing.T, content string) string {
	t.Helper()

	tmpFile := filepath.Join(t.TempDir(), "graph.yaml")
	if err := os.WriteFile(tmpFile, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write temporary YAML file: %v", err)
	}
	return tmpFile
}
