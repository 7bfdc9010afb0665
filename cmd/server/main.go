package main

import (
	"fmt"
	"log"

	"grnflow/internal/config"
	"grnflow/internal/handler"
	"grnflow/internal/pdftext"
	"grnflow/internal/port"
	"grnflow/internal/router"
	"grnflow/internal/service"
	s3storage "grnflow/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize storage; optional, the upload workflow works without it
	var storage port.ObjectStorage
	if cfg.S3.Enabled {
		storage, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("failed to initialize S3 client: %w", err)
		}
	} else {
		log.Printf("server: object storage disabled, storage batches unavailable")
	}

	// Initialize services
	store := service.NewResultStore(cfg.Batch.ResultCapacity)
	processSvc := service.NewProcessService(pdftext.NewExtractor(), storage, store, cfg.Batch, cfg.Archive)
	exportSvc := service.NewExportService(store, cfg.Export)

	// Initialize handlers
	batchH := handler.NewBatchHandler(processSvc, store, cfg.S3.MaxFileSizeMB)
	exportH := handler.NewExportHandler(exportSvc)
	healthH := handler.NewHealthHandler(store)

	// Setup router
	r := router.Setup(batchH, exportH, healthH, cfg.CORS.AllowedOrigins)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}
