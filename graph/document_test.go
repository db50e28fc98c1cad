package graph

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasgen/oaserrors"
)

const petstoreGraph = `
components:
  schemas:
    Pet:
      type: object
      required: [name, id]
      properties:
        name: {type: string}
        id: {type: integer, format: int64}
        tag: {type: string, default: null}
        owner: {$ref: '#/components/schemas/Owner'}
    Owner:
      type: object
      properties:
        pets:
          type: array
          items: {$ref: '#/components/schemas/Pet'}
        extra:
          type: object
          additionalProperties: true
    Status:
      type: enum
      items:
        - {type: string, const: active}
        - {type: string, const: null}
operations:
  - id: getPet
    method: get
    path: /pets/{id}
    parameters:
      - {name: id, in: path, required: true, schema: {type: integer}}
    responses:
      "200": {schema: {$ref: '#/components/schemas/Pet'}}
`

func TestParse_PreservesPropertyOrder(t *testing.T) {
	doc, err := Parse([]byte(petstoreGraph))
	require.NoError(t, err)

	assert.Equal(t, []string{"Pet", "Owner", "Status"}, doc.Components.Schemas.Keys())
	pet, ok := doc.Schema("Pet")
	require.True(t, ok)
	assert.Equal(t, []string{"name", "id", "tag", "owner"}, pet.Properties.Keys())
	assert.True(t, pet.IsRequired("id"))
	assert.False(t, pet.IsRequired("tag"))
}

func TestParse_ShorthandForms(t *testing.T) {
	doc, err := Parse([]byte(petstoreGraph))
	require.NoError(t, err)

	owner, _ := doc.Schema("Owner")
	pets, _ := owner.Properties.Get("pets")
	require.Len(t, pets.Items, 1, "single items mapping becomes a one-element list")
	assert.Equal(t, "#/components/schemas/Pet", pets.Items[0].Ref)

	extra, _ := owner.Properties.Get("extra")
	require.NotNil(t, extra.AdditionalProperties)
	assert.Equal(t, ShapeUnknown, extra.AdditionalProperties.Type)
}

func TestParse_ExplicitNulls(t *testing.T) {
	doc, err := Parse([]byte(petstoreGraph))
	require.NoError(t, err)

	pet, _ := doc.Schema("Pet")
	tag, _ := pet.Properties.Get("tag")
	assert.True(t, tag.HasDefault())
	assert.Nil(t, tag.Default)

	status, _ := doc.Schema("Status")
	assert.True(t, status.Items[0].HasConst())
	assert.Equal(t, "active", status.Items[0].Const)
	assert.True(t, status.Items[1].HasConst())
	assert.Nil(t, status.Items[1].Const)

	name, _ := pet.Properties.Get("name")
	assert.False(t, name.HasConst())
	assert.False(t, name.HasDefault())
}

func TestParse_Operations(t *testing.T) {
	doc, err := Parse([]byte(petstoreGraph))
	require.NoError(t, err)

	require.Len(t, doc.Operations, 1)
	op := doc.Operations[0]
	assert.Equal(t, "getPet", op.ID)
	assert.Equal(t, InPath, op.Parameters[0].In)
	assert.Equal(t, []string{"200"}, op.Responses.Keys())
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("components: [not, a, mapping"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, oaserrors.ErrParse))

	_, err = Parse([]byte("operations:\n  - method: get\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "operations[0]: missing id")
}

func TestResolveRef(t *testing.T) {
	doc, err := Parse([]byte(petstoreGraph))
	require.NoError(t, err)

	t.Run("component", func(t *testing.T) {
		n, err := doc.ResolveRef("#/components/schemas/Pet")
		require.NoError(t, err)
		assert.Equal(t, ShapeObject, n.Type)
	})

	t.Run("pointer into a component", func(t *testing.T) {
		n, err := doc.ResolveRef("#/components/schemas/Owner/properties/pets/items/0")
		require.NoError(t, err)
		assert.Equal(t, "#/components/schemas/Pet", n.Ref)

		n, err = doc.ResolveRef("#/components/schemas/Owner/properties/extra/additionalProperties")
		require.NoError(t, err)
		assert.Equal(t, ShapeUnknown, n.Type)
	})

	t.Run("missing ref is named in the error", func(t *testing.T) {
		for _, ref := range []string{
			"#/components/schemas/Missing",
			"#/components/schemas/Pet/properties/nope",
			"#/components/schemas/Owner/properties/pets/items/3",
			"#/definitions/Pet",
		} {
			_, err := doc.ResolveRef(ref)
			require.Error(t, err, ref)
			assert.True(t, errors.Is(err, oaserrors.ErrReference))
			assert.Contains(t, err.Error(), ref)
		}
	})
}

func TestRefHelpers(t *testing.T) {
	assert.Equal(t, "Pet", RefToName("#/components/schemas/Pet"))
	assert.Equal(t, "a/b~c", RefToName("#/components/schemas/a~1b~0c"))
	assert.Equal(t, "id", RefToName("#/components/schemas/User/properties/id"))
	assert.Equal(t, "", RefToName("#"))

	assert.Equal(t, "#/components/schemas/a~1b~0c", ComponentRef("a/b~c"))
	assert.Equal(t, []string{"components", "schemas", "a/b"}, JSONPointerToPath("#/components/schemas/a~1b"))
	assert.Equal(t, "#/x/a~1b", PathToJSONPointer([]string{"x", "a/b"}))
	assert.Equal(t, "#", PathToJSONPointer(nil))

	assert.True(t, IsComponentRef("#/components/schemas/Pet"))
	assert.False(t, IsComponentRef("#/components/schemas/Pet/properties/id"))
	assert.False(t, IsComponentRef("#/components/parameters/id"))
}

func TestOrderedMap_SetKeepsPosition(t *testing.T) {
	m := NewOrderedMap[int]()
	m.Set("b", 1)
	m.Set("a", 2)
	m.Set("b", 3)

	assert.Equal(t, []string{"b", "a"}, m.Keys())
	v, ok := m.Get("b")
	assert.True(t, ok)
	assert.Equal(t, 3, v)

	data, err := m.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"b":3,"a":2}`, string(data))
	assert.Equal(t, `{"b":3,"a":2}`, string(data))

	var nilMap *OrderedMap[int]
	assert.Equal(t, 0, nilMap.Len())
	_, ok = nilMap.Get("x")
	assert.False(t, ok)
}
