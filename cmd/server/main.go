// Package main is the entry point for the customcolour server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/customcolour/colormaps/internal/api"
	"github.com/customcolour/colormaps/internal/cache"
	"github.com/customcolour/colormaps/internal/config"
	"github.com/customcolour/colormaps/internal/palettestore"
	"github.com/customcolour/colormaps/internal/render"
	"github.com/customcolour/colormaps/internal/service"
	"github.com/customcolour/colormaps/pkg/colormap"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "config/server.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting customcolour server on port %d", cfg.Server.Port)

	// Build the colormap registry: built-ins plus any maps from config
	registry, err := colormap.Builtin().With(cfg.Maps...)
	if err != nil {
		log.Fatalf("Failed to build colormap registry: %v", err)
	}
	log.Printf("Registry: %d colormaps (%d from config)", registry.Len(), len(cfg.Maps))

	if !registry.Has(cfg.Render.DefaultColormap) {
		log.Fatalf("Default colormap %q is not registered", cfg.Render.DefaultColormap)
	}

	// Initialize cache manager
	cacheManager, err := cache.NewManager(cache.Config{
		SwatchCacheSizeMB: cfg.Cache.SwatchSizeMB,
		SwatchTTL:         time.Duration(cfg.Cache.SwatchTTLMinutes) * time.Minute,
		LUTCacheSize:      cfg.Cache.LUTCacheSize,
	})
	if err != nil {
		log.Fatalf("Failed to initialize cache: %v", err)
	}

	// Initialize swatch renderer
	swatchRenderer := render.NewSwatchRenderer(render.Config{
		Width:  cfg.Render.SwatchWidth,
		Height: cfg.Render.SwatchHeight,
	})

	// Initialize palette store (saved colormaps, SQLite persistence)
	store, err := palettestore.NewStore(cfg.Store.SQLitePath)
	if err != nil {
		log.Fatalf("Failed to initialize palette store: %v", err)
	}
	defer store.Close()
	log.Printf("Palette store: sqlite=%s", cfg.Store.SQLitePath)

	swatchService := service.NewSwatchService(service.SwatchServiceConfig{
		Registry: registry,
		Store:    store,
		Cache:    cacheManager,
		Renderer: swatchRenderer,
	})

	// Set up HTTP router
	router := api.NewRouter(api.RouterConfig{
		Service:         swatchService,
		Cache:           cacheManager,
		CORSOrigins:     cfg.Server.CORSOrigins,
		Title:           cfg.Server.Title,
		DefaultColormap: cfg.Render.DefaultColormap,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server listening on http://localhost:%d", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
