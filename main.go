package main

import (
	"log"

	"github.com/joho/godotenv"

	"extfin/adapters/names"
	"extfin/adapters/tabular"
	"extfin/app"
	"extfin/internal"
	"extfin/internal/config"
	"extfin/ui"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("loaded configuration from .env")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	logger := internal.NewDefaultLogger()

	resolver, err := names.Load(cfg.Paths.MappingFile)
	if err != nil {
		log.Fatalf("friendly-name mapping error: %v", err)
	}
	logger.Info("friendly-name resolver ready (%d mapped codes)", resolver.Known())

	dashboard := app.NewDashboardService(resolver, logger)

	// A missing default file is not fatal: the API simply has no dataset
	// until one is uploaded. A present but malformed file is fatal, since
	// starting with silently unusable data helps nobody.
	reader := tabular.NewDataReader(cfg.Paths.DataFile)
	if err := dashboard.LoadDataset(reader); err != nil {
		logger.Warn("default dataset not loaded: %v", err)
		logger.Warn("upload a CSV via POST /api/dataset, or place one at %s", cfg.Paths.DataFile)
	}

	if cfg.Ops.Enabled {
		ops := ui.NewOpsServer(logger)
		go func() {
			if err := ops.Run(cfg.Ops.Port); err != nil {
				logger.Error("ops server failed: %v", err)
			}
		}()
	}

	server := ui.NewServer(dashboard, cfg.Server.GinMode, logger)
	if err := server.Run(cfg.Server.Port); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
