// Package main provides the HTTP server for browsing events, rankings and participants.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mmpstats/internal/config"
	"mmpstats/internal/loader"
	"mmpstats/internal/logger"
	"mmpstats/internal/web"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file (default: configs/mmpstats.yaml if present)")
	listen := flag.String("listen", "", "Listen address (overrides config)")
	dataBase := flag.String("data", "", "Directory or URL holding mmp.json, people.json and locations.json (overrides config)")
	mediaRoot := flag.String("media", "", "Media root served under /img/ (overrides config)")

	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *listen != "" {
		cfg.Server.Listen = *listen
	}

	if *dataBase != "" {
		cfg.SetDataBase(*dataBase)
	}

	if *mediaRoot != "" {
		cfg.Server.MediaRoot = *mediaRoot
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)

	client := loader.NewClient(&cfg.Data, log)

	srv, err := web.NewServer(client, web.Options{
		MediaRoot:      cfg.Server.MediaRoot,
		CalendarDomain: cfg.Server.CalendarDomain,
		Collation:      cfg.Display.CollationTag(),
	}, log)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Failed to create server: %v", err))
		os.Exit(1)
	}

	httpServer := &http.Server{
		Addr:              cfg.Server.Listen,
		Handler:           srv,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			log.Warn(fmt.Sprintf("⚠️  Shutdown: %v", err))
		}
	}()

	log.Info("🚀 Starting MMP stats server", "listen", cfg.Server.Listen)
	log.Info(fmt.Sprintf("📍 Sources: %s", cfg))

	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error(fmt.Sprintf("❌ Server failed: %v", err))
		os.Exit(1)
	}

	log.Info("👋 Server stopped")
}
