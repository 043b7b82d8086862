package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/tatianab/edge-trail/internal/config"
	"github.com/tatianab/edge-trail/internal/content"
	"github.com/tatianab/edge-trail/internal/engine"
	"github.com/tatianab/edge-trail/internal/logger"
	"github.com/tatianab/edge-trail/internal/telemetry"
	"github.com/tatianab/edge-trail/internal/tui"
)

func main() {
	seed := flag.Int64("seed", 0, "fix all randomness (overrides TRAIL_SEED)")
	logFile := flag.String("log", "", "log file (overrides TRAIL_LOG_FILE, default trail.log)")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	if *seed != 0 {
		cfg.Seed = *seed
	}
	if *logFile != "" {
		cfg.LogFile = *logFile
	}
	if cfg.LogFile == "" {
		cfg.LogFile = "trail.log"
	}

	log, err := logger.New(logger.Config{Level: cfg.LogLevel, Encoding: cfg.LogEncoding, OutputPath: cfg.LogFile})
	if err != nil {
		fmt.Printf("Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if cfg.Telemetry {
		shutdown, err := telemetry.Setup(context.Background(), "tui")
		if err != nil {
			fmt.Printf("Error setting up telemetry: %v\n", err)
			os.Exit(1)
		}
		defer shutdown(context.Background())
	}

	tbl, err := content.Load()
	if err != nil {
		fmt.Printf("Error loading trail: %v\n", err)
		os.Exit(1)
	}
	eng := engine.NewEngine(tbl,
		engine.WithRules(cfg.Rules()),
		engine.WithSeed(cfg.Seed),
		engine.WithLogger(log),
	)

	if err := tui.Run(eng, log); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
