package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"grnflow/internal/config"
	"grnflow/internal/domain"
	"grnflow/internal/export"
	"grnflow/internal/sheetappend"
)

// ExportOutput is an encoded export ready to hand to the client.
type ExportOutput struct {
	Filename    string
	ContentType string
	Data        []byte
}

// ExportService encodes stored batch results and appends them to the master
// workbook.
type ExportService interface {
	Export(ctx context.Context, batchID uuid.UUID, format domain.ExportFormat) (*ExportOutput, error)
	AppendToMaster(ctx context.Context, batchID uuid.UUID) (int, error)
}

type exportService struct {
	store *ResultStore
	cfg   config.ExportConfig
}

// NewExportService creates an ExportService over the result store.
func NewExportService(store *ResultStore, cfg config.ExportConfig) ExportService {
	return &exportService{store: store, cfg: cfg}
}

func (s *exportService) Export(_ context.Context, batchID uuid.UUID, format domain.ExportFormat) (*ExportOutput, error) {
	result, err := s.store.Get(batchID)
	if err != nil {
		return nil, err
	}

	var data []byte
	switch format {
	case domain.FormatCSV:
		data, err = export.EncodeCSV(result.Records)
	case domain.FormatXLSX:
		data, err = export.EncodeXLSX(result)
	case domain.FormatJSON:
		data, err = export.EncodeJSON(result.Records)
	default:
		return nil, domain.ErrUnsupportedFormat
	}
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}

	return &ExportOutput{
		Filename:    export.BuildFilename("", format),
		ContentType: domain.ContentType[format],
		Data:        data,
	}, nil
}

// AppendToMaster appends the batch's records to the configured master
// workbook sheet and returns the number of appended rows.
func (s *exportService) AppendToMaster(ctx context.Context, batchID uuid.UUID) (int, error) {
	result, err := s.store.Get(batchID)
	if err != nil {
		return 0, err
	}
	if len(result.Records) == 0 {
		return 0, domain.ErrNoRecords
	}

	records := make([]map[string]string, 0, len(result.Records))
	for i := range result.Records {
		records = append(records, export.RecordStringMap(&result.Records[i]))
	}

	wb := sheetappend.NewWorkbookClient(s.cfg.MasterWorkbook)
	defer wb.Close()

	appender := sheetappend.NewAppender(wb)
	if err := appender.Append(ctx, s.cfg.MasterSheet, records); err != nil {
		return 0, fmt.Errorf("append to master: %w", err)
	}
	if err := wb.Save(); err != nil {
		return 0, fmt.Errorf("save master workbook: %w", err)
	}

	log.Printf("exportService.AppendToMaster: batch %s: appended %d rows to %s",
		batchID, len(records), s.cfg.MasterWorkbook)
	return len(records), nil
}
