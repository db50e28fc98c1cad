package mcpserver

import (
	"context"
	"fmt"
	"sort"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/erraggy/oasgen/graph"
)

type inspectInput struct {
	Document documentInput `json:"document"            jsonschema:"The schema-graph document to inspect"`
	Name     string        `json:"name,omitempty"      jsonschema:"Filter by component name (supports * and ? glob)"`
	Circular bool          `json:"circular,omitempty"  jsonschema:"Only return components that lie on a reference cycle"`
	SortBy   string        `json:"sort_by,omitempty"   jsonschema:"Order of results: document (default) or refs (most referenced first)"`
	GroupBy  string        `json:"group_by,omitempty"  jsonschema:"Group results and return counts instead of individual items. Values: shape"`
	Limit    int           `json:"limit,omitempty"     jsonschema:"Maximum number of results to return (default 100)"`
	Offset   int           `json:"offset,omitempty"    jsonschema:"Skip the first N results (for pagination)"`
}

type componentSummary struct {
	Name       string   `json:"name"`
	Ref        string   `json:"ref"`
	Shape      string   `json:"shape"`
	Circular   bool     `json:"circular,omitempty"`
	RefCount   int      `json:"ref_count"`
	References []string `json:"references,omitempty"`
}

// inspectOutput holds results from inspect. Total counts all components,
// Matched those passing the filters.
type inspectOutput struct {
	Total      int                `json:"total"`
	Matched    int                `json:"matched"`
	Returned   int                `json:"returned"`
	Components []componentSummary `json:"components,omitempty"`
	Groups     []groupCount       `json:"groups,omitempty"`
}

func handleInspect(ctx context.Context, _ *mcp.CallToolRequest, input inspectInput) (*mcp.CallToolResult, inspectOutput, error) {
	if err := validateGlobPattern(input.Name); err != nil {
		return errResult(err), inspectOutput{}, nil
	}
	if err := validateGroupBy(input.GroupBy, []string{"shape"}); err != nil {
		return errResult(err), inspectOutput{}, nil
	}
	if input.SortBy != "" && input.SortBy != "document" && input.SortBy != "refs" {
		return errResult(fmt.Errorf("invalid sort_by value %q; valid values: document, refs", input.SortBy)), inspectOutput{}, nil
	}

	doc, err := input.Document.resolve(ctx)
	if err != nil {
		return errResult(err), inspectOutput{}, nil
	}

	all := summarizeComponents(doc)
	var matched []componentSummary
	for _, c := range all {
		if !matchGlobName(c.Name, input.Name) {
			continue
		}
		if input.Circular && !c.Circular {
			continue
		}
		matched = append(matched, c)
	}

	output := inspectOutput{Total: len(all), Matched: len(matched)}

	if input.GroupBy != "" {
		output.Groups = groupAndSort(matched, func(c componentSummary) []string {
			return []string{c.Shape}
		})
		output.Returned = len(output.Groups)
		return nil, output, nil
	}

	if input.SortBy == "refs" {
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].RefCount > matched[j].RefCount
		})
	}
	output.Components = paginate(matched, input.Offset, input.Limit)
	output.Returned = len(output.Components)
	return nil, output, nil
}

// summarizeComponents lists the components of doc in document order with
// the number of references pointing at each.
func summarizeComponents(doc *graph.Document) []componentSummary {
	refs := doc.References()
	cyclic := doc.CyclicComponents()

	incoming := make(map[string]int)
	for _, targets := range refs {
		for _, target := range targets {
			incoming[target]++
		}
	}

	names := doc.Components.Schemas.Keys()
	out := makeSlice[componentSummary](len(names))
	for _, name := range names {
		node, _ := doc.Schema(name)
		out = append(out, componentSummary{
			Name:       name,
			Ref:        graph.ComponentRef(name),
			Shape:      shapeOf(node),
			Circular:   cyclic[name],
			RefCount:   incoming[name],
			References: uniqueSorted(refs[name]),
		})
	}
	return out
}

// shapeOf names the top-level shape of a component.
func shapeOf(n *graph.Node) string {
	switch {
	case n == nil:
		return string(graph.ShapeUnknown)
	case n.Ref != "":
		return "ref"
	case n.Type != "":
		return string(n.Type)
	case len(n.Items) > 0 && n.Operator() == graph.OperatorAnd:
		return "intersection"
	case len(n.Items) > 0:
		return "union"
	}
	return string(graph.ShapeUnknown)
}

func uniqueSorted(list []string) []string {
	if len(list) == 0 {
		return nil
	}
	seen := make(map[string]bool, len(list))
	out := make([]string, 0, len(list))
	for _, s := range list {
		if !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	sort.Strings(out)
	return out
}
