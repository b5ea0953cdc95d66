// Package main provides the checkdata command that loads and validates the three collections.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"mmpstats/internal/config"
	"mmpstats/internal/loader"
	"mmpstats/internal/logger"
	"mmpstats/internal/stats"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	dataBase := flag.String("data", "", "Directory or URL holding the three collections (overrides config)")
	strict := flag.Bool("strict", false, "Exit non-zero when events reference unknown people or locations")

	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *dataBase != "" {
		cfg.SetDataBase(*dataBase)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)

	log.Info("🔍 Checking data sources")
	client := loader.NewClient(&cfg.Data, log)
	sources := client.Sources()
	log.Info(fmt.Sprintf("📍 events: %s", sources.Events))
	log.Info(fmt.Sprintf("📍 people: %s", sources.People))
	log.Info(fmt.Sprintf("📍 locations: %s", sources.Locations))

	ds, meta, err := client.LoadAll(context.Background())
	if err != nil {
		log.Error(fmt.Sprintf("❌ %v", err))
		os.Exit(1)
	}

	log.Info(fmt.Sprintf("✅ Loaded %d events, %d people, %d locations", len(ds.Events), len(ds.People), len(ds.Locations)))
	log.Info(fmt.Sprintf("🔑 Fingerprint: %s", meta.ETag()))

	refs := stats.UnresolvedReferences(ds)
	for _, ref := range refs {
		log.Warn(fmt.Sprintf("⚠️  Event %d references unknown %s %d", ref.EventID, ref.Kind, ref.ID))
	}

	if len(refs) > 0 && *strict {
		log.Error(fmt.Sprintf("❌ %d unresolved references", len(refs)))
		os.Exit(1)
	}

	log.Info("🎉 Data is valid")
}
