package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubMCPServer(t *testing.T, err error) *bool {
	t.Helper()
	called := false
	old := runMCPServer
	runMCPServer = func(context.Context) error {
		called = true
		return err
	}
	t.Cleanup(func() { runMCPServer = old })
	return &called
}

func TestHandleMCP(t *testing.T) {
	t.Run("runs the server", func(t *testing.T) {
		called := stubMCPServer(t, nil)
		require.NoError(t, HandleMCP(context.Background(), nil))
		assert.True(t, *called)
	})

	t.Run("cancellation is a clean exit", func(t *testing.T) {
		stubMCPServer(t, context.Canceled)
		assert.NoError(t, HandleMCP(context.Background(), nil))
	})

	t.Run("server errors are wrapped", func(t *testing.T) {
		stubMCPServer(t, errors.New("broken pipe"))
		err := HandleMCP(context.Background(), nil)
		require.Error(t, err)
		assert.Equal(t, "mcp server: broken pipe", err.Error())
	})

	t.Run("rejects arguments", func(t *testing.T) {
		called := stubMCPServer(t, nil)
		assert.Error(t, HandleMCP(context.Background(), []string{"extra"}))
		assert.False(t, *called)
	})

	t.Run("help", func(t *testing.T) {
		called := stubMCPServer(t, nil)
		assert.NoError(t, HandleMCP(context.Background(), []string{"--help"}))
		assert.False(t, *called)
	})
}
