// Package valibot emits valibot validator schemas.
//
// Refinements are expressed as pipelines (v.pipe), optional and nullable
// wrappers take the default value as their second argument, and any
// reference to a declaration that is not finished yet goes through
// v.lazy, which types the declaration as v.GenericSchema.
package valibot

import (
	"strconv"
	"strings"

	"github.com/erraggy/oasgen/graph"
	"github.com/erraggy/oasgen/internal/naming"
	"github.com/erraggy/oasgen/internal/schemautil"
	"github.com/erraggy/oasgen/internal/tsx"
	"github.com/erraggy/oasgen/symbols"
	"github.com/erraggy/oasgen/walker"
)

// FlavorName is the flavor name of this emitter.
const FlavorName = "valibot"

const genericSchema = "v.GenericSchema"

// Emitter implements walker.Emitter for valibot.
type Emitter struct{}

// New returns a valibot emitter.
func New() *Emitter {
	return &Emitter{}
}

var (
	_ walker.Emitter  = (*Emitter)(nil)
	_ walker.Importer = (*Emitter)(nil)
)

func (e *Emitter) Flavor() string               { return FlavorName }
func (e *Emitter) Namespace() symbols.Namespace { return symbols.NamespaceValue }

func (e *Emitter) Naming() walker.Naming {
	return walker.Naming{
		walker.KindDefinition: naming.MustPolicy("v{{name}}", naming.CamelCase),
		walker.KindRequest:    naming.MustPolicy("v{{name}}Data", naming.CamelCase),
		walker.KindResponse:   naming.MustPolicy("v{{name}}Response", naming.CamelCase),
		walker.KindWebhook:    naming.MustPolicy("v{{name}}WebhookRequest", naming.CamelCase),
	}
}

func (e *Emitter) Imports() []symbols.Import {
	return []symbols.Import{{Module: "valibot", Namespace: "v"}}
}

func (e *Emitter) Shape(node *graph.Node, ctx *walker.Context) (walker.Emission, error) {
	switch node.Type {
	case graph.ShapeObject:
		return e.object(node, ctx)
	case graph.ShapeArray:
		return e.array(node, ctx)
	case graph.ShapeTuple:
		return e.tuple(node, ctx)
	case graph.ShapeEnum:
		return enum(node), nil
	case graph.ShapeString:
		if schemautil.IsBigInt(node) {
			return expr(numberSchema(node)), nil
		}
		return expr(stringSchema(node)), nil
	case graph.ShapeNumber, graph.ShapeInteger:
		return expr(numberSchema(node)), nil
	case graph.ShapeBoolean:
		if node.HasConst() {
			return expr("v.literal(" + tsx.Literal(node.Const) + ")"), nil
		}
		return expr("v.boolean()"), nil
	case graph.ShapeNull:
		return expr("v.null()"), nil
	case graph.ShapeNever:
		return expr("v.never()"), nil
	case graph.ShapeVoid:
		return expr("v.void()"), nil
	case graph.ShapeUndefined:
		return expr("v.undefined()"), nil
	}
	return e.Unknown(ctx), nil
}

func (e *Emitter) object(node *graph.Node, ctx *walker.Context) (walker.Emission, error) {
	keys := node.Properties.Keys()
	if len(keys) == 0 && node.AdditionalProperties != nil {
		ap, err := ctx.Resolve(node.AdditionalProperties, "additionalProperties")
		if err != nil {
			return walker.Emission{}, err
		}
		return expr("v.record(v.string(), " + ap.Expr + ")"), nil
	}
	if len(keys) == 0 {
		return expr("v.object({})"), nil
	}

	w := tsx.NewWriter()
	w.Line("v.object({")
	w.Indent()
	for _, name := range keys {
		child, _ := node.Properties.Get(name)
		c, err := ctx.ResolveProperty(name, child, !node.IsRequired(name))
		if err != nil {
			return walker.Emission{}, err
		}
		w.Line("%s: %s,", tsx.PropertyKey(name), c.Expr)
	}
	w.Dedent()
	w.Raw("})")
	return expr(w.String()), nil
}

func (e *Emitter) array(node *graph.Node, ctx *walker.Context) (walker.Emission, error) {
	el, ok, err := ctx.ResolveElements(node)
	if err != nil {
		return walker.Emission{}, err
	}
	item := "v.unknown()"
	if ok {
		item = el.Expr
	}
	return expr(pipe("v.array("+item+")", lengthActions(node.MinItems, node.MaxItems)...)), nil
}

func (e *Emitter) tuple(node *graph.Node, ctx *walker.Context) (walker.Emission, error) {
	parts := make([]string, 0, len(node.Items))
	if values, ok := node.Const.([]any); ok && node.HasConst() {
		for _, v := range values {
			parts = append(parts, "v.literal("+tsx.Literal(v)+")")
		}
		return expr("v.tuple([" + strings.Join(parts, ", ") + "])"), nil
	}
	for i, item := range node.Items {
		c, err := ctx.ResolveItem(i, item)
		if err != nil {
			return walker.Emission{}, err
		}
		parts = append(parts, c.Expr)
	}
	return expr("v.tuple([" + strings.Join(parts, ", ") + "])"), nil
}

// enum uses v.picklist for all-string members and literal unions
// otherwise.
func enum(node *graph.Node) walker.Emission {
	var (
		strs       []string
		literals   []string
		allStrings = true
		nullable   bool
	)
	for _, item := range node.Items {
		switch {
		case item == nil:
		case item.Type == graph.ShapeNull || (item.HasConst() && item.Const == nil):
			nullable = true
		case item.HasConst():
			lit := tsx.Literal(item.Const)
			if _, ok := item.Const.(string); ok {
				strs = append(strs, lit)
			} else {
				allStrings = false
			}
			literals = append(literals, "v.literal("+lit+")")
		}
	}

	var out walker.Emission
	switch {
	case len(literals) == 0:
		return expr("v.unknown()")
	case allStrings:
		out.Expr = "v.picklist([" + strings.Join(strs, ", ") + "])"
	case len(literals) == 1:
		out.Expr = literals[0]
	default:
		out.Expr = "v.union([" + strings.Join(literals, ", ") + "])"
	}
	if nullable {
		out.Expr = "v.nullable(" + out.Expr + ")"
		out.Nullable = true
	}
	return out
}

var formatActions = map[string]string{
	"date":      "v.isoDate()",
	"date-time": "v.isoTimestamp()",
	"time":      "v.isoTime()",
	"email":     "v.email()",
	"ipv4":      "v.ipv4()",
	"ipv6":      "v.ipv6()",
	"uri":       "v.url()",
	"uuid":      "v.uuid()",
}

func stringSchema(node *graph.Node) string {
	if node.HasConst() {
		return "v.literal(" + tsx.Literal(node.Const) + ")"
	}
	var actions []string
	if a, ok := formatActions[node.Format]; ok {
		actions = append(actions, a)
	}
	actions = append(actions, lengthActions(node.MinLength, node.MaxLength)...)
	if node.Pattern != "" {
		actions = append(actions, "v.regex("+tsx.RegexLiteral(node.Pattern)+")")
	}
	return pipe("v.string()", actions...)
}

func numberSchema(node *graph.Node) string {
	bigint := schemautil.IsBigInt(node)
	if node.HasConst() {
		if bigint {
			return "v.literal(" + tsx.BigIntLiteral(node.Const) + ")"
		}
		return "v.literal(" + tsx.Literal(node.Const) + ")"
	}

	base := "v.number()"
	var actions []string
	switch {
	case bigint:
		base = "v.union([v.number(), v.string(), v.bigint()])"
		actions = append(actions, "v.transform((x) => BigInt(x))")
	case node.Type == graph.ShapeInteger:
		actions = append(actions, "v.integer()")
	}

	param := func(v float64) string {
		if bigint {
			return "BigInt(" + tsx.Literal(v) + ")"
		}
		return tsx.Literal(v)
	}
	if node.ExclusiveMinimum != nil {
		actions = append(actions, "v.gtValue("+param(*node.ExclusiveMinimum)+")")
	} else if node.Minimum != nil {
		actions = append(actions, "v.minValue("+param(*node.Minimum)+")")
	}
	if node.ExclusiveMaximum != nil {
		actions = append(actions, "v.ltValue("+param(*node.ExclusiveMaximum)+")")
	} else if node.Maximum != nil {
		actions = append(actions, "v.maxValue("+param(*node.Maximum)+")")
	}
	return pipe(base, actions...)
}

func lengthActions(minLen, maxLen *int) []string {
	if minLen != nil && maxLen != nil && *minLen == *maxLen {
		return []string{"v.length(" + strconv.Itoa(*minLen) + ")"}
	}
	var out []string
	if minLen != nil {
		out = append(out, "v.minLength("+strconv.Itoa(*minLen)+")")
	}
	if maxLen != nil {
		out = append(out, "v.maxLength("+strconv.Itoa(*maxLen)+")")
	}
	return out
}

func pipe(schema string, actions ...string) string {
	if len(actions) == 0 {
		return schema
	}
	return "v.pipe(" + schema + ", " + strings.Join(actions, ", ") + ")"
}

func (e *Emitter) Unknown(*walker.Context) walker.Emission { return expr("v.unknown()") }

// Reference refers to target directly once it is declared and through
// v.lazy before that.
func (e *Emitter) Reference(target *symbols.Symbol) walker.Emission {
	if target.Finished() {
		return expr(target.Ref())
	}
	return e.Lazy(target)
}

func (e *Emitter) Lazy(target *symbols.Symbol) walker.Emission {
	return walker.Emission{
		Expr:              "v.lazy(() => " + target.Ref() + ")",
		TypeHint:          genericSchema,
		HasLazyExpression: true,
	}
}

func (e *Emitter) Union(members []walker.Emission, nodes []*graph.Node, _ *walker.Context) walker.Emission {
	var (
		parts    []string
		nullable bool
	)
	for i, m := range members {
		if i < len(nodes) && nodes[i] != nil && nodes[i].Type == graph.ShapeNull {
			nullable = true
			continue
		}
		parts = appendUnique(parts, m.Expr)
	}

	var out walker.Emission
	switch len(parts) {
	case 0:
		return expr("v.null()")
	case 1:
		out.Expr = parts[0]
	default:
		out.Expr = "v.union([" + strings.Join(parts, ", ") + "])"
	}
	if nullable {
		out.Expr = "v.nullable(" + out.Expr + ")"
		out.Nullable = true
	}
	return out
}

func (e *Emitter) Intersection(members []walker.Emission, _ []*graph.Node, _ *walker.Context) walker.Emission {
	parts := make([]string, 0, len(members))
	for _, m := range members {
		parts = appendUnique(parts, m.Expr)
	}
	return expr("v.intersect([" + strings.Join(parts, ", ") + "])")
}

func (e *Emitter) Readonly(x walker.Emission) walker.Emission {
	x.Expr = pipe(x.Expr, "v.readonly()")
	return x
}

// Optional wraps x in v.optional, or turns a nullable wrapper into
// v.nullish.
func (e *Emitter) Optional(x walker.Emission) walker.Emission {
	if inner, ok := unwrap(x, "v.nullable("); ok {
		x.Expr = "v.nullish(" + inner + ")"
		return x
	}
	x.Expr = "v.optional(" + x.Expr + ")"
	return x
}

// Default passes the default value to the optional wrapper, adding one
// when the value is not optional yet.
func (e *Emitter) Default(x walker.Emission, node *graph.Node) walker.Emission {
	value := defaultValue(node)
	if x.Optional {
		for _, fn := range []string{"v.optional(", "v.nullish("} {
			if inner, ok := unwrap(x, fn); ok {
				x.Expr = fn + inner + ", " + value + ")"
				return x
			}
		}
	}
	if inner, ok := unwrap(x, "v.nullable("); ok {
		x.Expr = "v.nullish(" + inner + ", " + value + ")"
		return x
	}
	x.Expr = "v.optional(" + x.Expr + ", " + value + ")"
	return x
}

// unwrap returns the argument of the wrapper fn when it is the outermost
// call of x. Only wrappers this emitter produced last are unwrapped.
func unwrap(x walker.Emission, fn string) (string, bool) {
	switch fn {
	case "v.nullable(":
		if !x.Nullable {
			return "", false
		}
	default:
		if !x.Optional {
			return "", false
		}
	}
	if !strings.HasPrefix(x.Expr, fn) || !strings.HasSuffix(x.Expr, ")") {
		return "", false
	}
	return x.Expr[len(fn) : len(x.Expr)-1], true
}

func (e *Emitter) Declare(d *walker.Declaration) (string, bool) {
	var b strings.Builder
	if n := d.Entity.Node; n != nil {
		b.WriteString(tsx.DocComment(n.Description, n.Deprecated))
	}
	b.WriteString("export const ")
	b.WriteString(d.Symbol.Name)
	if d.Symbol.TypeHint != "" || d.Emission.HasLazyExpression {
		b.WriteString(": " + genericSchema)
	}
	b.WriteString(" = ")
	b.WriteString(d.Emission.Expr)
	b.WriteString(";")
	return b.String(), true
}

func defaultValue(node *graph.Node) string {
	lit := tsx.Literal(node.Default)
	if !schemautil.IsBigInt(node) {
		return lit
	}
	switch node.Default.(type) {
	case string, bool, int, int64, uint64, float64:
		return "BigInt(" + lit + ")"
	}
	return lit
}

func expr(s string) walker.Emission {
	return walker.Emission{Expr: s}
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
