package mcpsrv

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/qyinm/galtui/config"
)

// MountPath is where the streamable MCP endpoint is served.
const MountPath = "/mcp"

func NewHandler(server *mcp.Server, opts *mcp.StreamableHTTPOptions) http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, opts)
}

// Mount serves server at MountPath behind Guard.
func Mount(r chi.Router, server *mcp.Server, cfg config.MCP) {
	h := NewHandler(server, StreamableOptions(cfg))
	r.With(Guard(cfg)).Handle(MountPath, h)
}
