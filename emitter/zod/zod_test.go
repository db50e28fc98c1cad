package zod

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/oasgen/graph"
	tu "github.com/erraggy/oasgen/internal/testutil"
	"github.com/erraggy/oasgen/symbols"
	"github.com/erraggy/oasgen/walker"
)

func generate(t *testing.T, doc *graph.Document, opts ...Option) *symbols.File {
	t.Helper()
	file := symbols.NewFile("zod.gen.ts")
	w := walker.New(doc, New(opts...), file)
	for _, id := range doc.ComponentIDs() {
		_, err := w.ResolveComponent(id)
		require.NoError(t, err)
	}
	return file
}

func declaration(t *testing.T, file *symbols.File, name string) string {
	t.Helper()
	sym, ok := file.ByID(graph.ComponentRef(name), symbols.NamespaceValue)
	require.True(t, ok, "no symbol for %s", name)
	return file.Render(sym.Value())
}

func intPtr(v int) *int { return &v }

func floatPtr(v float64) *float64 { return &v }

type shapeCase struct {
	name string
	node *graph.Node
	want string
}

func runShapes(t *testing.T, tests []shapeCase, opts ...Option) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := tu.Document(
				tu.S("A", tu.Object(tu.Req("a", tu.String()))),
				tu.S("B", tu.Object(tu.Req("b", tu.String()))),
				tu.S("Root", tt.node),
			)
			file := generate(t, doc, opts...)
			assert.Equal(t, "export const zRoot = "+tt.want+";", declaration(t, file, "Root"))
		})
	}
}

func TestShapes_V4(t *testing.T) {
	name := tu.String()
	name.MinLength = intPtr(1)
	code := tu.String()
	code.MinLength, code.MaxLength = intPtr(3), intPtr(3)
	pattern := tu.String()
	pattern.Pattern = "^a/b$"
	bounded := tu.Number()
	bounded.Minimum, bounded.ExclusiveMaximum = floatPtr(0), floatPtr(10)
	pair := tu.Array(tu.String())
	pair.MinItems, pair.MaxItems = intPtr(2), intPtr(2)

	runShapes(t, []shapeCase{
		{
			name: "object",
			node: tu.Object(
				tu.Req("id", tu.Integer("int64")),
				tu.Req("name", name),
				tu.Opt("tag", tu.String()),
				tu.Opt("bornAt", tu.String("date-time")),
			),
			want: "z.object({\n  id: z.coerce.bigint(),\n  name: z.string().min(1),\n  tag: z.optional(z.string()),\n  bornAt: z.optional(z.iso.datetime()),\n})",
		},
		{name: "empty object", node: tu.Object(), want: "z.object({})"},
		{name: "record", node: &graph.Node{Type: graph.ShapeObject, AdditionalProperties: tu.String()}, want: "z.record(z.string(), z.string())"},
		{name: "fixed length", node: code, want: "z.string().length(3)"},
		{name: "pattern", node: pattern, want: `z.string().regex(/^a\/b$/)`},
		{name: "uuid", node: tu.String("uuid"), want: "z.uuid()"},
		{name: "integer", node: tu.Integer(), want: "z.int()"},
		{name: "bounds", node: bounded, want: "z.number().gte(0).lt(10)"},
		{name: "array length", node: pair, want: "z.array(z.string()).length(2)"},
		{name: "array without items", node: &graph.Node{Type: graph.ShapeArray}, want: "z.array(z.unknown())"},
		{name: "tuple", node: tu.Tuple(tu.String(), tu.Boolean()), want: "z.tuple([z.string(), z.boolean()])"},
		{name: "string enum", node: tu.Enum("a", "b"), want: "z.enum(['a', 'b'])"},
		{name: "nullable enum", node: tu.Enum("a", nil), want: "z.nullable(z.enum(['a']))"},
		{name: "mixed enum", node: tu.Enum(1, "a"), want: "z.union([z.literal(1), z.literal('a')])"},
		{name: "single literal enum", node: tu.Enum(1), want: "z.literal(1)"},
		{name: "empty enum", node: &graph.Node{Type: graph.ShapeEnum, Items: []*graph.Node{tu.Null()}}, want: "z.unknown()"},
		{name: "nullable union", node: tu.Union(tu.String(), tu.Null()), want: "z.nullable(z.string())"},
		{name: "union", node: tu.Union(tu.Ref("A"), tu.Ref("B")), want: "z.union([zA, zB])"},
		{
			name: "object intersection",
			node: tu.Intersection(tu.Ref("A"), tu.Object(tu.Req("x", tu.Number()))),
			want: "zA.and(z.object({\n  x: z.number(),\n}))",
		},
		{
			name: "union-first intersection",
			node: tu.Intersection(tu.Union(tu.Ref("A"), tu.Ref("B")), tu.Object(tu.Req("x", tu.Number()))),
			want: "z.intersection(z.union([zA, zB]), z.object({\n  x: z.number(),\n}))",
		},
		{
			name: "modifier order",
			node: tu.Object(tu.Opt("p", tu.WithDefault(tu.ReadOnly(tu.String()), "x"))),
			want: "z.object({\n  p: z.optional(z.string().readonly()).default('x'),\n})",
		},
		{
			name: "bigint default",
			node: tu.Object(tu.Opt("n", tu.WithDefault(tu.Integer("int64"), 5))),
			want: "z.object({\n  n: z.optional(z.coerce.bigint()).default(BigInt(5)),\n})",
		},
	})
}

func TestShapes_V3(t *testing.T) {
	runShapes(t, []shapeCase{
		{name: "integer", node: tu.Integer(), want: "z.number().int()"},
		{name: "date-time", node: tu.String("date-time"), want: "z.string().datetime()"},
		{name: "record", node: &graph.Node{Type: graph.ShapeObject, AdditionalProperties: tu.Number()}, want: "z.record(z.number())"},
		{name: "nullable enum", node: tu.Enum("a", nil), want: "z.enum(['a']).nullable()"},
		{
			name: "modifier order",
			node: tu.Object(tu.Opt("p", tu.WithDefault(tu.ReadOnly(tu.String()), "x"))),
			want: "z.object({\n  p: z.string().readonly().optional().default('x'),\n})",
		},
	}, WithVersion(V3))
}

func TestShapes_Mini(t *testing.T) {
	name := tu.String()
	name.MinLength, name.MaxLength = intPtr(1), intPtr(5)
	bounded := tu.Integer()
	bounded.ExclusiveMinimum = floatPtr(1)

	runShapes(t, []shapeCase{
		{name: "checks", node: name, want: "z.string().check(z.minLength(1), z.maxLength(5))"},
		{name: "number checks", node: bounded, want: "z.int().check(z.gt(1))"},
		{
			name: "modifier order",
			node: tu.Object(tu.Opt("p", tu.WithDefault(tu.ReadOnly(tu.String()), "x"))),
			want: "z.object({\n  p: z._default(z.optional(z.readonly(z.string())), 'x'),\n})",
		},
		{
			name: "intersection",
			node: tu.Intersection(tu.Ref("A"), tu.Object(tu.Req("x", tu.Number()))),
			want: "z.intersection(zA, z.object({\n  x: z.number(),\n}))",
		},
	}, WithVersion(Mini))
}

func TestSelfReference(t *testing.T) {
	doc := tu.Document(tu.S("Tree", tu.Object(tu.Opt("children", tu.Array(tu.Ref("Tree"))))))

	t.Run("v4 getter", func(t *testing.T) {
		file := generate(t, doc)
		assert.Equal(t,
			"export const zTree = z.object({\n  get children(): z.ZodType {\n    return z.optional(z.array(z.lazy((): any => zTree)));\n  },\n});",
			declaration(t, file, "Tree"))
	})

	t.Run("v3 annotated lazy", func(t *testing.T) {
		file := generate(t, doc, WithVersion(V3))
		assert.Equal(t,
			"export const zTree: z.ZodTypeAny = z.object({\n  children: z.array(z.lazy(() => zTree)).optional(),\n});",
			declaration(t, file, "Tree"))
	})
}

func TestMutualCycle(t *testing.T) {
	doc := tu.Document(
		tu.S("A", tu.Object(tu.Opt("b", tu.Ref("B")))),
		tu.S("B", tu.Object(tu.Opt("a", tu.Ref("A")))),
	)

	t.Run("v4", func(t *testing.T) {
		file := generate(t, doc)
		var names []string
		for _, sym := range file.Symbols() {
			names = append(names, sym.Name)
		}
		assert.Equal(t, []string{"zB", "zA"}, names)
		assert.Equal(t, "export const zB = z.object({\n  get a(): z.ZodType {\n    return z.optional(zA);\n  },\n});", declaration(t, file, "B"))
		assert.Equal(t, "export const zA = z.object({\n  get b(): z.ZodType {\n    return z.optional(zB);\n  },\n});", declaration(t, file, "A"))
	})

	t.Run("v3", func(t *testing.T) {
		file := generate(t, doc, WithVersion(V3))
		assert.Equal(t, "export const zB: z.ZodTypeAny = z.object({\n  a: z.lazy(() => zA).optional(),\n});", declaration(t, file, "B"))
		assert.Equal(t, "export const zA: z.ZodTypeAny = z.object({\n  b: zB.optional(),\n});", declaration(t, file, "A"))
	})
}

func TestInferTypes(t *testing.T) {
	file := generate(t, tu.Document(tu.S("Pet", tu.String())), WithInferTypes(true))
	assert.Equal(t, "export const zPet = z.string();\n\nexport type PetZodType = z.infer<typeof zPet>;", declaration(t, file, "Pet"))

	name, ok := file.Lookup(graph.ComponentRef("Pet"), symbols.NamespaceType)
	require.True(t, ok)
	assert.Equal(t, "PetZodType", name)
}

func TestImportsAndFlavor(t *testing.T) {
	tests := []struct {
		version Version
		flavor  string
		module  string
	}{
		{V4, "zod", "zod"},
		{V3, "zod-v3", "zod/v3"},
		{Mini, "zod-mini", "zod/mini"},
		{"v9", "zod", "zod"},
	}
	for _, tt := range tests {
		t.Run(string(tt.version), func(t *testing.T) {
			e := New(WithVersion(tt.version))
			assert.Equal(t, tt.flavor, e.Flavor())
			require.Len(t, e.Imports(), 1)
			assert.Equal(t, tt.module, e.Imports()[0].Module)
			assert.Equal(t, []string{"z"}, e.Imports()[0].Names)
		})
	}
}
