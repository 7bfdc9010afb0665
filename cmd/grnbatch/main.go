// Command grnbatch processes a batch of GRN PDFs without the HTTP server and
// writes the extracted records to an export file.
//
// Usage:
//
//	grnbatch -dir ./pdfs -format xlsx -out ./exports
//	grnbatch -storage -prefix incoming/ -days 7 -max 50 -format csv
//	grnbatch -dir ./pdfs -append
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"grnflow/internal/config"
	"grnflow/internal/domain"
	"grnflow/internal/pdftext"
	"grnflow/internal/port"
	"grnflow/internal/service"
	s3storage "grnflow/internal/storage/s3"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var (
		dir         = flag.String("dir", "", "directory of local PDF files to process")
		fromStorage = flag.Bool("storage", false, "pull PDFs from object storage instead of a local directory")
		prefix      = flag.String("prefix", "", "object storage key prefix")
		days        = flag.Int("days", 0, "only storage objects newer than this many days (0 = no cutoff)")
		maxFiles    = flag.Int("max", 0, "cap the number of storage objects (0 = no cap)")
		format      = flag.String("format", "csv", "export format: csv, xlsx, or json")
		outDir      = flag.String("out", ".", "directory to write the export file into")
		appendFlag  = flag.Bool("append", false, "also append records to the master workbook")
	)
	flag.Parse()

	if *dir == "" && !*fromStorage {
		return fmt.Errorf("either -dir or -storage is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	exportFormat, err := domain.ParseExportFormat(*format)
	if err != nil {
		return fmt.Errorf("invalid -format %q: %w", *format, err)
	}

	var storage port.ObjectStorage
	if *fromStorage {
		if !cfg.S3.Enabled {
			return fmt.Errorf("-storage requires object storage to be configured")
		}
		storage, err = s3storage.NewS3Client(&cfg.S3)
		if err != nil {
			return fmt.Errorf("initializing S3 client: %w", err)
		}
	}

	store := service.NewResultStore(cfg.Batch.ResultCapacity)
	processSvc := service.NewProcessService(pdftext.NewExtractor(), storage, store, cfg.Batch, cfg.Archive)
	exportSvc := service.NewExportService(store, cfg.Export)

	ctx := context.Background()

	var result *domain.BatchResult
	if *fromStorage {
		result, err = processSvc.ProcessStorage(ctx, service.StorageRequest{
			Prefix:   *prefix,
			DaysBack: *days,
			MaxFiles: *maxFiles,
		})
	} else {
		docs, derr := readLocalPDFs(*dir)
		if derr != nil {
			return derr
		}
		result, err = processSvc.ProcessUpload(ctx, docs)
	}
	if err != nil {
		return fmt.Errorf("processing batch: %w", err)
	}

	log.Printf("grnbatch: processed %d files into %d records (%d unique GRNs)",
		result.TotalFiles(), result.TotalRecords(), result.UniqueGRNs())
	for _, f := range result.Files {
		if f.NoData {
			log.Printf("WARN: no data extracted from %s", f.FileName)
		}
	}

	out, err := exportSvc.Export(ctx, result.ID, exportFormat)
	if err != nil {
		return fmt.Errorf("encoding export: %w", err)
	}
	path := filepath.Join(*outDir, out.Filename)
	if err := os.WriteFile(path, out.Data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	log.Printf("grnbatch: wrote %s (%d bytes)", path, len(out.Data))

	if *appendFlag {
		appended, err := exportSvc.AppendToMaster(ctx, result.ID)
		if err != nil {
			return fmt.Errorf("appending to master workbook: %w", err)
		}
		log.Printf("grnbatch: appended %d rows to %s", appended, cfg.Export.MasterWorkbook)
	}

	return nil
}

// readLocalPDFs loads every .pdf file in dir, non-recursively.
func readLocalPDFs(dir string) ([]service.InputDocument, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}

	var docs []service.InputDocument
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".pdf") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", e.Name(), err)
		}
		docs = append(docs, service.InputDocument{Name: e.Name(), Data: data})
	}
	if len(docs) == 0 {
		return nil, fmt.Errorf("no PDF files found in %s", dir)
	}
	return docs, nil
}
