package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/qyinm/galtui/catalog"
	"github.com/qyinm/galtui/config"
	"github.com/qyinm/galtui/mcpsrv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// stdout carries the protocol
	log.SetOutput(os.Stderr)

	path := strings.TrimSpace(os.Getenv("GALTUI_CONFIG"))
	if path == "" {
		path = config.DefaultFile
	}
	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	source, err := catalog.Open(cfg.Catalog)
	if err != nil {
		log.Fatalf("open catalog: %v", err)
	}
	server := mcpsrv.NewServer(source, "dev", mcpsrv.ServerOptionsFrom(cfg.MCP, cfg.Assets))
	mcpsrv.StartCacheJanitor(ctx, source, cfg.MCP.CacheClearInterval)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
		log.Fatalf("stdio mcp server failed: %v", err)
	}
}
