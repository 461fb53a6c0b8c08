package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/qyinm/galtui/catalog"
	"github.com/qyinm/galtui/config"
	"github.com/qyinm/galtui/mcpsrv"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(configPath())
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		cfg.MCP.Port = port
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

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	mcpsrv.Mount(r, server, cfg.MCP)

	// The site directory holds index.html, the category pages, images.json
	// and public/.
	r.Handle("/*", http.FileServer(http.Dir(cfg.MCP.SiteDir)))

	httpServer := &http.Server{
		Addr:              ":" + strings.TrimSpace(cfg.MCP.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      0,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error: %v", err)
		}
	}()

	log.Printf("galtui-mcp listening on %s (site %s, catalog %s)", httpServer.Addr, cfg.MCP.SiteDir, cfg.Catalog)
	err = httpServer.ListenAndServe()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatalf("server failed: %v", err)
	}
}

func configPath() string {
	if p := strings.TrimSpace(os.Getenv("GALTUI_CONFIG")); p != "" {
		return p
	}
	return config.DefaultFile
}
