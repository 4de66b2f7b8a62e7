package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/motionsplit/internal/adapters/driving/mcp"
)

// fakeMCPServer records how it was started.
type fakeMCPServer struct {
	ranStdio bool
	addr     string
	err      error
}

func (f *fakeMCPServer) Run(_ context.Context) error {
	f.ranStdio = true
	return f.err
}

func (f *fakeMCPServer) RunHTTP(_ context.Context, addr string) error {
	f.addr = addr
	return f.err
}

func setupMCPServer(t *testing.T, server *fakeMCPServer) *mcp.Ports {
	t.Helper()
	captured := &mcp.Ports{}
	old := newMCPServer
	newMCPServer = func(ports *mcp.Ports) (mcpServer, error) {
		*captured = *ports
		return server, nil
	}
	t.Cleanup(func() { newMCPServer = old })
	return captured
}

func TestMCPServeCmd_Stdio(t *testing.T) {
	extraction := &mockExtractionService{}
	history := &mockHistoryService{}
	setupServices(t, Services{Extraction: extraction, History: history})
	server := &fakeMCPServer{}
	ports := setupMCPServer(t, server)

	_, err := execute(t, "mcp", "serve")

	require.NoError(t, err)
	assert.True(t, server.ranStdio)
	assert.Same(t, extraction, ports.Extraction)
	assert.Same(t, history, ports.History)
	assert.NotNil(t, ports.Settings)
}

func TestMCPServeCmd_HTTP(t *testing.T) {
	setupServices(t, Services{Extraction: &mockExtractionService{}})
	server := &fakeMCPServer{}
	setupMCPServer(t, server)

	out, err := execute(t, "mcp", "serve", "--port", "8080")

	require.NoError(t, err)
	assert.False(t, server.ranStdio)
	assert.Equal(t, ":8080", server.addr)
	assert.Contains(t, out, "MCP server listening on http://localhost:8080")
}

func TestMCPServeCmd_ServerError(t *testing.T) {
	setupServices(t, Services{Extraction: &mockExtractionService{}})
	setupMCPServer(t, &fakeMCPServer{err: errors.New("address in use")})

	_, err := execute(t, "mcp", "serve", "-p", "8080")

	assert.ErrorContains(t, err, "address in use")
}

func TestMCPServeCmd_ServiceNotConfigured(t *testing.T) {
	setupServices(t, Services{})

	_, err := execute(t, "mcp", "serve")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "extraction service not configured")
}

func TestMCPServeCmd_RealServer(t *testing.T) {
	server, err := newMCPServer(&mcp.Ports{Extraction: &mockExtractionService{}})

	require.NoError(t, err)
	assert.NotNil(t, server)
}
