package generator

import (
	"github.com/erraggy/oasgen/graph"
	"github.com/erraggy/oasgen/internal/httputil"
	"github.com/erraggy/oasgen/walker"
)

// OperationInfo summarizes one generated operation.
type OperationInfo struct {
	ID     string `json:"id" yaml:"id"`
	Method string `json:"method" yaml:"method"`
	Path   string `json:"path" yaml:"path"`
	// HasResponse is false when the operation has no successful response
	// schema and its response entity was skipped.
	HasResponse bool `json:"hasResponse" yaml:"hasResponse"`
	// Pagination is the detected pagination field, if any.
	Pagination *Pagination `json:"pagination,omitempty" yaml:"pagination,omitempty"`
}

// OperationDataID returns the entity id of an operation's request data.
func OperationDataID(operationID string) string {
	return "#/operations/" + operationID + "/data"
}

// OperationResponseID returns the entity id of an operation's response.
func OperationResponseID(operationID string) string {
	return "#/operations/" + operationID + "/response"
}

// WebhookID returns the entity id of a webhook payload.
func WebhookID(name string) string {
	return "#/webhooks/" + name
}

// operationEntities returns the request data entity and, when the
// operation has a successful response schema, the response entity.
func operationEntities(op *graph.Operation) (data walker.Entity, response *walker.Entity) {
	meta := map[string]string{"operationId": op.ID, "method": op.Method, "path": op.Path}
	data = walker.Entity{
		ID:   OperationDataID(op.ID),
		Name: op.ID,
		Kind: walker.KindRequest,
		Node: dataNode(op),
		Meta: meta,
	}
	if node := responseNode(op); node != nil {
		response = &walker.Entity{
			ID:   OperationResponseID(op.ID),
			Name: op.ID,
			Kind: walker.KindResponse,
			Node: node,
			Meta: meta,
		}
	}
	return data, response
}

// webhookEntity returns the payload entity of a webhook. ok is false when
// the webhook has no body schema.
func webhookEntity(wh *graph.Webhook) (walker.Entity, bool) {
	if wh.Body == nil || wh.Body.Schema == nil {
		return walker.Entity{}, false
	}
	return walker.Entity{
		ID:   WebhookID(wh.Name),
		Name: wh.Name,
		Kind: walker.KindWebhook,
		Node: wh.Body.Schema,
		Meta: map[string]string{"webhook": wh.Name},
	}, true
}

// dataNode builds the request data object of op: body, headers, path and
// query, each never-typed and optional when absent, plus the url template.
func dataNode(op *graph.Operation) *graph.Node {
	n := &graph.Node{Type: graph.ShapeObject, Properties: graph.NewOrderedMap[*graph.Node]()}
	add := func(name string, child *graph.Node, required bool) {
		if child == nil {
			child = &graph.Node{Type: graph.ShapeNever}
			required = false
		}
		n.Properties.Set(name, child)
		if required {
			n.Required = append(n.Required, name)
		}
	}

	if op.Body != nil && op.Body.Schema != nil {
		add("body", op.Body.Schema, op.Body.Required)
	} else {
		add("body", nil, false)
	}
	for _, in := range []graph.ParameterLocation{graph.InHeader, graph.InPath, graph.InQuery} {
		params, required := parameterObject(op.Parameters, in)
		add(dataKey(in), params, required)
	}
	url := &graph.Node{Type: graph.ShapeString}
	url.SetConst(op.Path)
	add("url", url, true)
	return n
}

func dataKey(in graph.ParameterLocation) string {
	if in == graph.InHeader {
		return "headers"
	}
	return string(in)
}

// parameterObject groups the parameters in one location into an object.
// required is set when any of them is required.
func parameterObject(params []*graph.Parameter, in graph.ParameterLocation) (obj *graph.Node, required bool) {
	for _, p := range params {
		if p == nil || p.In != in {
			continue
		}
		if obj == nil {
			obj = &graph.Node{Type: graph.ShapeObject, Properties: graph.NewOrderedMap[*graph.Node]()}
		}
		schema := p.Schema
		if schema == nil {
			schema = &graph.Node{Type: graph.ShapeUnknown}
		}
		obj.Properties.Set(p.Name, schema)
		if p.Required || in == graph.InPath {
			obj.Required = append(obj.Required, p.Name)
			required = true
		}
	}
	return obj, required
}

// responseNode returns the schema of op's successful responses: the only
// one, or a union of all of them. It returns nil when no 2xx response has
// a schema.
func responseNode(op *graph.Operation) *graph.Node {
	var items []*graph.Node
	op.Responses.Each(func(code string, r *graph.Response) bool {
		if httputil.IsSuccessStatus(code) && r != nil && r.Schema != nil {
			items = append(items, r.Schema)
		}
		return true
	})
	switch len(items) {
	case 0:
		return nil
	case 1:
		return items[0]
	}
	return &graph.Node{Items: items, LogicalOperator: graph.OperatorOr}
}
