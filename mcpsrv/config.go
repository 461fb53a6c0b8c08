package mcpsrv

import (
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/qyinm/galtui/config"
)

func StreamableOptions(cfg config.MCP) *mcp.StreamableHTTPOptions {
	return &mcp.StreamableHTTPOptions{
		Stateless:      cfg.Stateless,
		SessionTimeout: cfg.SessionTimeout,
	}
}

// ServerOptionsFrom derives the tool set from the mcp config section.
// Admin tools need an API key in front of them.
func ServerOptionsFrom(cfg config.MCP, assetBase string) *ServerOptions {
	return &ServerOptions{
		AssetBase:     assetBase,
		EnableSuggest: cfg.EnableSuggest,
		EnableAdmin:   cfg.EnableAdmin && strings.TrimSpace(cfg.APIKey) != "",
		APIKey:        cfg.APIKey,
	}
}
