package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"path"
	"sync"
	"time"

	"github.com/google/uuid"

	"grnflow/internal/config"
	"grnflow/internal/domain"
	"grnflow/internal/grn"
	"grnflow/internal/port"
)

// InputDocument is one locally uploaded PDF.
type InputDocument struct {
	Name string
	Data []byte
}

// StorageRequest selects documents to pull from object storage.
type StorageRequest struct {
	Prefix   string
	DaysBack int
	MaxFiles int
}

// ProcessService turns batches of GRN PDFs into flat record sets. Extraction
// of each document is a pure function of its bytes, so documents are fanned
// out to workers without any cross-document coordination; results come back
// in input order.
type ProcessService interface {
	ProcessUpload(ctx context.Context, docs []InputDocument) (*domain.BatchResult, error)
	ProcessStorage(ctx context.Context, req StorageRequest) (*domain.BatchResult, error)
}

type processService struct {
	extractor port.TextExtractor
	storage   port.ObjectStorage
	store     *ResultStore
	cfg       config.BatchConfig
	archive   config.ArchiveConfig
}

// NewProcessService creates a ProcessService. storage may be nil when no
// object store is configured; ProcessStorage then fails and upload archiving
// is disabled.
func NewProcessService(
	extractor port.TextExtractor,
	storage port.ObjectStorage,
	store *ResultStore,
	cfg config.BatchConfig,
	archive config.ArchiveConfig,
) ProcessService {
	return &processService{
		extractor: extractor,
		storage:   storage,
		store:     store,
		cfg:       cfg,
		archive:   archive,
	}
}

// inputDoc is the internal per-document unit of work.
type inputDoc struct {
	name       string
	data       []byte
	source     domain.Source
	storageKey string
}

func (s *processService) ProcessUpload(ctx context.Context, docs []InputDocument) (*domain.BatchResult, error) {
	if len(docs) == 0 {
		return nil, domain.ErrNoFiles
	}

	inputs := make([]inputDoc, len(docs))
	for i, d := range docs {
		inputs[i] = inputDoc{name: d.Name, data: d.Data, source: domain.SourceLocal}
	}

	if s.archive.Enabled && s.storage != nil {
		s.archiveUploads(ctx, docs)
	}

	result := s.processAll(inputs)
	s.store.Put(result)
	log.Printf("processService.ProcessUpload: batch %s: %d files, %d records",
		result.ID, result.TotalFiles(), result.TotalRecords())
	return result, nil
}

func (s *processService) ProcessStorage(ctx context.Context, req StorageRequest) (*domain.BatchResult, error) {
	if s.storage == nil {
		return nil, domain.ErrStorageList
	}

	listInput := port.ListInput{
		Prefix:   req.Prefix,
		MaxFiles: req.MaxFiles,
	}
	if listInput.MaxFiles <= 0 {
		listInput.MaxFiles = s.cfg.MaxFiles
	}
	daysBack := req.DaysBack
	if daysBack <= 0 {
		daysBack = s.cfg.DaysBack
	}
	if daysBack > 0 {
		listInput.Since = time.Now().UTC().AddDate(0, 0, -daysBack)
	}

	objects, err := s.storage.List(ctx, listInput)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorageList, err)
	}
	if len(objects) == 0 {
		return nil, domain.ErrNoFiles
	}
	log.Printf("processService.ProcessStorage: %d pdf objects under %q", len(objects), req.Prefix)

	inputs := make([]inputDoc, len(objects))
	for i, obj := range objects {
		data, err := s.storage.Download(ctx, obj.Key)
		if err != nil {
			// A failed download degrades to empty bytes: the document still
			// gets its metadata-only row and a NoData outcome, and the batch
			// carries on.
			log.Printf("processService.ProcessStorage: download %s: %v", obj.Key, err)
			data = nil
		}
		inputs[i] = inputDoc{
			name:       obj.Name,
			data:       data,
			source:     domain.SourceStorage,
			storageKey: obj.Key,
		}
	}

	result := s.processAll(inputs)
	s.store.Put(result)
	log.Printf("processService.ProcessStorage: batch %s: %d files, %d records",
		result.ID, result.TotalFiles(), result.TotalRecords())
	return result, nil
}

// processAll fans documents out to at most cfg.Concurrency workers and
// reassembles outcomes and records in input order.
func (s *processService) processAll(inputs []inputDoc) *domain.BatchResult {
	concurrency := s.cfg.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

	outcomes := make([]domain.FileOutcome, len(inputs))
	perFile := make([][]domain.Record, len(inputs))

	for i := range inputs {
		sem <- struct{}{}
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			outcomes[i], perFile[i] = s.processOne(inputs[i])
		}(i)
	}
	wg.Wait()

	result := &domain.BatchResult{
		ID:          uuid.New(),
		ProcessedAt: time.Now().UTC(),
		Files:       outcomes,
	}
	for _, records := range perFile {
		result.Records = append(result.Records, records...)
	}
	return result
}

func (s *processService) processOne(in inputDoc) (domain.FileOutcome, []domain.Record) {
	text := s.extractor.Text(in.data, in.name)
	meta, items := grn.Extract(text, in.name)
	records := domain.JoinRecords(meta, items, in.source, in.storageKey)

	return domain.FileOutcome{
		FileName:    in.name,
		Source:      in.source,
		StorageKey:  in.storageKey,
		SizeBytes:   int64(len(in.data)),
		RecordCount: len(records),
		ItemCount:   len(items),
		NoData:      !meta.HasData() && len(items) == 0,
		TextPreview: preview(grn.CleanText(text)),
	}, records
}

// archiveUploads copies locally uploaded PDFs into the configured storage
// prefix. Best effort: archive failures never fail the batch.
func (s *processService) archiveUploads(ctx context.Context, docs []InputDocument) {
	for _, d := range docs {
		key := path.Join(s.archive.Prefix, d.Name)
		err := s.storage.Upload(ctx, port.UploadInput{
			Key:         key,
			Body:        bytes.NewReader(d.Data),
			ContentType: "application/pdf",
			Size:        int64(len(d.Data)),
		})
		if err != nil {
			log.Printf("processService.archiveUploads: %s: %v", key, err)
		}
	}
}

const previewLen = 160

func preview(s string) string {
	if len(s) <= previewLen {
		return s
	}
	return s[:previewLen]
}
