package mcpserver

import (
	"context"
	"slices"
	"testing"

	"github.com/goccy/go-json"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// minimalGraph is a small schema graph in JSON form used across
// integration tests.
const minimalGraph = `{
  "components": {
    "schemas": {
      "Pet": {
        "type": "object",
        "required": ["id"],
        "properties": {
          "id": {"type": "integer", "format": "int64"},
          "name": {"type": "string"},
          "parent": {"$ref": "#/components/schemas/Pet"}
        }
      }
    }
  },
  "operations": [
    {
      "id": "getPet",
      "method": "get",
      "path": "/pets/{id}",
      "parameters": [{"name": "id", "in": "path", "required": true, "schema": {"type": "string"}}],
      "responses": {"200": {"schema": {"$ref": "#/components/schemas/Pet"}}}
    }
  ]
}`

// startTestSession creates an in-process MCP server/client pair and returns
// the connected client session. The server is shut down when the test ends.
func startTestSession(t *testing.T) *mcp.ClientSession {
	t.Helper()

	server := mcp.NewServer(
		&mcp.Implementation{Name: "oasgen-test", Version: "test"},
		nil,
	)
	registerAllTools(server)

	serverTransport, clientTransport := mcp.NewInMemoryTransports()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	done := make(chan error, 1)
	go func() {
		done <- server.Run(ctx, serverTransport)
	}()

	client := mcp.NewClient(
		&mcp.Implementation{Name: "test-client", Version: "test"},
		nil,
	)
	session, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = session.Close()
		cancel()
		<-done
	})

	return session
}

func TestIntegration_ListTools(t *testing.T) {
	session := startTestSession(t)

	result, err := session.ListTools(context.Background(), &mcp.ListToolsParams{})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Len(t, result.Tools, 2)

	names := make([]string, 0, len(result.Tools))
	for _, tool := range result.Tools {
		names = append(names, tool.Name)
		assert.NotEmpty(t, tool.Description, "tool %q has empty description", tool.Name)
	}
	for _, name := range []string{"generate", "inspect"} {
		assert.True(t, slices.Contains(names, name), "missing tool: %s", name)
	}
}

func TestIntegration_CallTool_Generate(t *testing.T) {
	docCache.reset()
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "generate",
		Arguments: map[string]any{
			"document": map[string]any{"content": minimalGraph},
			"flavors":  []string{"typescript", "transformers"},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError, "generate should succeed on a valid graph")

	structured := unmarshalStructured(t, result)
	assert.Equal(t, true, structured["success"])
	assert.Equal(t, float64(2), structured["file_count"])

	files, ok := structured["files"].([]any)
	require.True(t, ok)
	transformers, ok := files[1].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "transformers.gen.ts", transformers["name"])
	assert.Contains(t, transformers["content"], "export const petSchemaResponseTransformer = (data: any) => {")
	assert.Contains(t, transformers["content"], "data.parent = petSchemaResponseTransformer(data.parent);")

	ops, ok := structured["operations"].([]any)
	require.True(t, ok)
	require.Len(t, ops, 1)
	assert.Equal(t, "getPet", ops[0].(map[string]any)["id"])
}

func TestIntegration_CallTool_Inspect(t *testing.T) {
	docCache.reset()
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "inspect",
		Arguments: map[string]any{
			"document": map[string]any{"content": minimalGraph},
		},
	})
	require.NoError(t, err)
	assert.False(t, result.IsError)

	structured := unmarshalStructured(t, result)
	assert.Equal(t, float64(1), structured["total"])
	components, ok := structured["components"].([]any)
	require.True(t, ok)
	pet := components[0].(map[string]any)
	assert.Equal(t, "Pet", pet["name"])
	assert.Equal(t, true, pet["circular"])
}

func TestIntegration_CallTool_Error(t *testing.T) {
	session := startTestSession(t)

	result, err := session.CallTool(context.Background(), &mcp.CallToolParams{
		Name: "generate",
		Arguments: map[string]any{
			"document": map[string]any{"file": "/tmp/oasgen-missing/graph.yaml"},
		},
	})
	require.NoError(t, err)
	require.True(t, result.IsError)
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok)
	assert.NotContains(t, text.Text, "/tmp/", "paths are sanitized")
	assert.Contains(t, text.Text, "<path>")
}

// unmarshalStructured extracts the structured output of a tool call as a map.
func unmarshalStructured(t *testing.T, result *mcp.CallToolResult) map[string]any {
	t.Helper()

	if result.StructuredContent != nil {
		data, err := json.Marshal(result.StructuredContent)
		require.NoError(t, err)
		var m map[string]any
		require.NoError(t, json.Unmarshal(data, &m))
		return m
	}

	require.NotEmpty(t, result.Content, "expected at least one content item")
	text, ok := result.Content[0].(*mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(text.Text), &m), "failed to parse text content as JSON")
	return m
}
