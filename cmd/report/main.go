// Package main provides the report command that prints the stats views as Markdown or JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"mmpstats/internal/config"
	"mmpstats/internal/formatter"
	"mmpstats/internal/loader"
	"mmpstats/internal/logger"
	"mmpstats/internal/media"
	"mmpstats/internal/models"
	"mmpstats/internal/stats"
)

func main() {
	configFile := flag.String("config", "", "Path to YAML configuration file")
	dataBase := flag.String("data", "", "Directory or URL holding the three collections (overrides config)")
	view := flag.String("view", "hall", "View to print: hall, roster, person, timeline")
	personID := flag.Int("id", 0, "Person id for -view person")
	format := flag.String("format", "markdown", "Output format: markdown or json")
	output := flag.String("output", "", "Write to file instead of stdout")
	titleWidth := flag.Int("title-width", formatter.DefaultTitleWidth, "Maximum title width in the timeline table (0 for no limit)")
	help := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *help {
		printUsage()
		os.Exit(0)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "❌ Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if *dataBase != "" {
		cfg.SetDataBase(*dataBase)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format, os.Stderr)

	ds, _, err := loader.NewClient(&cfg.Data, log).LoadAll(context.Background())
	if err != nil {
		log.Error(fmt.Sprintf("❌ Could not load data: %v", err))
		os.Exit(1)
	}

	result, markdown, err := render(ds, cfg, *view, *personID, *titleWidth)
	if err != nil {
		log.Error(fmt.Sprintf("❌ %v", err))
		os.Exit(1)
	}

	out := []byte(formatter.FormatMarkdown(markdown))

	if *format == "json" {
		out, err = json.MarshalIndent(result, "", "  ")
		if err != nil {
			log.Error(fmt.Sprintf("❌ Failed to encode JSON: %v", err))
			os.Exit(1)
		}

		out = append(out, '\n')
	} else if *format != "markdown" {
		log.Error(fmt.Sprintf("❌ Unknown format %q", *format))
		os.Exit(1)
	}

	if *output == "" {
		_, _ = os.Stdout.Write(out)

		return
	}

	if err := os.WriteFile(*output, out, 0o644); err != nil {
		log.Error(fmt.Sprintf("❌ Failed to write %s: %v", *output, err))
		os.Exit(1)
	}

	log.Info(fmt.Sprintf("✅ Wrote %s (%d bytes)", *output, len(out)))
}

// render computes the requested view, returning both its model and its Markdown rendering.
func render(ds *models.Dataset, cfg *config.Config, view string, personID, titleWidth int) (any, string, error) {
	switch view {
	case "hall":
		hall := stats.ComputeHall(ds)

		return hall, formatter.Hall(hall), nil
	case "roster":
		roster := stats.Roster(ds, cfg.Display.CollationTag())

		return roster, formatter.Roster(roster), nil
	case "person":
		ps, err := stats.PersonHistory(ds, personID)
		if err != nil {
			return nil, "", err
		}

		return ps, formatter.Person(ps), nil
	case "timeline":
		entries := stats.Timeline(ds, media.NewResolver(cfg.Server.MediaRoot).Gallery)

		return entries, formatter.Timeline(entries, titleWidth), nil
	default:
		return nil, "", fmt.Errorf("unknown view %q (want hall, roster, person or timeline)", view)
	}
}

func printUsage() {
	fmt.Println("Usage: ./bin/report [OPTIONS]")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ./bin/report -view hall")
	fmt.Println("  ./bin/report -view person -id 3 -format json")
	fmt.Println("  ./bin/report -data https://example.org/data -view timeline -output events.md")
}
