package zod

import (
	"strconv"
	"strings"

	"github.com/erraggy/oasgen/graph"
	"github.com/erraggy/oasgen/internal/schemautil"
	"github.com/erraggy/oasgen/internal/tsx"
	"github.com/erraggy/oasgen/walker"
)

// Shape implements walker.Emitter.
func (e *Emitter) Shape(node *graph.Node, ctx *walker.Context) (walker.Emission, error) {
	switch node.Type {
	case graph.ShapeObject:
		return e.object(node, ctx)
	case graph.ShapeArray:
		return e.array(node, ctx)
	case graph.ShapeTuple:
		return e.tuple(node, ctx)
	case graph.ShapeEnum:
		return e.enum(node), nil
	case graph.ShapeString:
		if schemautil.IsBigInt(node) {
			return expr(e.numberSchema(node)), nil
		}
		return expr(e.stringSchema(node)), nil
	case graph.ShapeNumber, graph.ShapeInteger:
		return expr(e.numberSchema(node)), nil
	case graph.ShapeBoolean:
		if node.HasConst() {
			return expr("z.literal(" + tsx.Literal(node.Const) + ")"), nil
		}
		return expr("z.boolean()"), nil
	case graph.ShapeNull:
		return expr("z.null()"), nil
	case graph.ShapeNever:
		return expr("z.never()"), nil
	case graph.ShapeVoid:
		return expr("z.void()"), nil
	case graph.ShapeUndefined:
		return expr("z.undefined()"), nil
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
		if e.version == V3 {
			return expr("z.record(" + ap.Expr + ")"), nil
		}
		return expr("z.record(z.string(), " + ap.Expr + ")"), nil
	}
	if len(keys) == 0 {
		return expr("z.object({})"), nil
	}

	w := tsx.NewWriter()
	w.Line("z.object({")
	w.Indent()
	for _, name := range keys {
		child, _ := node.Properties.Get(name)
		c, err := ctx.ResolveProperty(name, child, !node.IsRequired(name))
		if err != nil {
			return walker.Emission{}, err
		}
		key := tsx.PropertyKey(name)
		if e.version != V3 && (c.HasCircularReference || c.HasLazyExpression) {
			w.Block("get %s(): z.ZodType", key)
			w.Line("return %s;", c.Expr)
			w.EndBlockSuffix(",")
			continue
		}
		w.Line("%s: %s,", key, c.Expr)
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
	item := "z.unknown()"
	if ok {
		item = el.Expr
	}

	var checks []check
	switch {
	case node.MinItems != nil && node.MaxItems != nil && *node.MinItems == *node.MaxItems:
		checks = append(checks, check{"length", "length", strconv.Itoa(*node.MinItems)})
	default:
		if node.MinItems != nil {
			checks = append(checks, check{"min", "minLength", strconv.Itoa(*node.MinItems)})
		}
		if node.MaxItems != nil {
			checks = append(checks, check{"max", "maxLength", strconv.Itoa(*node.MaxItems)})
		}
	}
	return expr(e.withChecks("z.array("+item+")", checks)), nil
}

func (e *Emitter) tuple(node *graph.Node, ctx *walker.Context) (walker.Emission, error) {
	if values, ok := node.Const.([]any); ok && node.HasConst() {
		parts := make([]string, len(values))
		for i, v := range values {
			parts[i] = "z.literal(" + tsx.Literal(v) + ")"
		}
		return expr("z.tuple([" + strings.Join(parts, ", ") + "])"), nil
	}
	parts := make([]string, 0, len(node.Items))
	for i, item := range node.Items {
		c, err := ctx.ResolveItem(i, item)
		if err != nil {
			return walker.Emission{}, err
		}
		parts = append(parts, c.Expr)
	}
	return expr("z.tuple([" + strings.Join(parts, ", ") + "])"), nil
}

// enum uses z.enum for all-string members and literal unions otherwise.
func (e *Emitter) enum(node *graph.Node) walker.Emission {
	var (
		strs       []string
		literals   []string
		allStrings = true
		nullable   bool
	)
	for _, item := range node.Items {
		if item == nil {
			continue
		}
		if item.Type == graph.ShapeNull || (item.HasConst() && item.Const == nil) {
			nullable = true
			continue
		}
		if !item.HasConst() {
			continue
		}
		lit := tsx.Literal(item.Const)
		if _, ok := item.Const.(string); ok {
			strs = append(strs, lit)
		} else {
			allStrings = false
		}
		literals = append(literals, "z.literal("+lit+")")
	}

	var out walker.Emission
	switch {
	case len(literals) == 0:
		return expr("z.unknown()")
	case allStrings:
		out.Expr = "z.enum([" + strings.Join(strs, ", ") + "])"
	case len(literals) == 1:
		out.Expr = literals[0]
	default:
		out.Expr = "z.union([" + strings.Join(literals, ", ") + "])"
	}
	if nullable {
		out.Expr = e.nullable(out.Expr)
		out.Nullable = true
	}
	return out
}

var isoFormats = map[string]string{
	"date":      "z.iso.date()",
	"date-time": "z.iso.datetime()",
	"time":      "z.iso.time()",
	"email":     "z.email()",
	"ipv4":      "z.ipv4()",
	"ipv6":      "z.ipv6()",
	"uri":       "z.url()",
	"uuid":      "z.uuid()",
}

var v3Formats = map[string]string{
	"date":      ".date()",
	"date-time": ".datetime()",
	"time":      ".time()",
	"email":     ".email()",
	"ipv4":      ".ip({ version: 'v4' })",
	"ipv6":      ".ip({ version: 'v6' })",
	"uri":       ".url()",
	"uuid":      ".uuid()",
}

func (e *Emitter) stringSchema(node *graph.Node) string {
	if node.HasConst() {
		return "z.literal(" + tsx.Literal(node.Const) + ")"
	}

	base := "z.string()"
	if e.version == V3 {
		base += v3Formats[node.Format]
	} else if f, ok := isoFormats[node.Format]; ok {
		base = f
	}

	var checks []check
	switch {
	case node.MinLength != nil && node.MaxLength != nil && *node.MinLength == *node.MaxLength:
		checks = append(checks, check{"length", "length", strconv.Itoa(*node.MinLength)})
	default:
		if node.MinLength != nil {
			checks = append(checks, check{"min", "minLength", strconv.Itoa(*node.MinLength)})
		}
		if node.MaxLength != nil {
			checks = append(checks, check{"max", "maxLength", strconv.Itoa(*node.MaxLength)})
		}
	}
	if node.Pattern != "" {
		checks = append(checks, check{"regex", "regex", tsx.RegexLiteral(node.Pattern)})
	}
	return e.withChecks(base, checks)
}

func (e *Emitter) numberSchema(node *graph.Node) string {
	bigint := schemautil.IsBigInt(node)
	if node.HasConst() {
		if bigint {
			return "z.literal(" + tsx.BigIntLiteral(node.Const) + ")"
		}
		return "z.literal(" + tsx.Literal(node.Const) + ")"
	}

	var base string
	switch {
	case bigint:
		base = "z.coerce.bigint()"
	case node.Type == graph.ShapeInteger && e.version == V3:
		base = "z.number().int()"
	case node.Type == graph.ShapeInteger:
		base = "z.int()"
	default:
		base = "z.number()"
	}

	param := func(v float64) string { return numberParameter(v, bigint) }
	var checks []check
	if node.ExclusiveMinimum != nil {
		checks = append(checks, check{"gt", "gt", param(*node.ExclusiveMinimum)})
	} else if node.Minimum != nil {
		checks = append(checks, check{"gte", "gte", param(*node.Minimum)})
	}
	if node.ExclusiveMaximum != nil {
		checks = append(checks, check{"lt", "lt", param(*node.ExclusiveMaximum)})
	} else if node.Maximum != nil {
		checks = append(checks, check{"lte", "lte", param(*node.Maximum)})
	}
	return e.withChecks(base, checks)
}

// check is one refinement: a method in the chain APIs and a check
// function in zod mini.
type check struct {
	method string
	fn     string
	arg    string
}

func (e *Emitter) withChecks(base string, checks []check) string {
	if len(checks) == 0 {
		return base
	}
	if e.version == Mini {
		parts := make([]string, len(checks))
		for i, c := range checks {
			parts[i] = "z." + c.fn + "(" + c.arg + ")"
		}
		return base + ".check(" + strings.Join(parts, ", ") + ")"
	}
	var b strings.Builder
	b.WriteString(base)
	for _, c := range checks {
		b.WriteString("." + c.method + "(" + c.arg + ")")
	}
	return b.String()
}

func numberParameter(v float64, bigint bool) string {
	lit := tsx.Literal(v)
	if bigint {
		return "BigInt(" + lit + ")"
	}
	return lit
}

// defaultValue renders a node's default, converting scalars of 64-bit
// integer nodes to BigInt.
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

