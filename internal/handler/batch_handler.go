package handler

import (
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"grnflow/internal/domain"
	"grnflow/internal/service"
)

// BatchHandler handles batch processing and inspection endpoints.
type BatchHandler struct {
	processService service.ProcessService
	store          *service.ResultStore
	maxFileBytes   int64
}

// NewBatchHandler creates a new BatchHandler. maxFileSizeMB bounds the size of
// a single uploaded PDF; zero means no limit.
func NewBatchHandler(processService service.ProcessService, store *service.ResultStore, maxFileSizeMB int64) *BatchHandler {
	return &BatchHandler{
		processService: processService,
		store:          store,
		maxFileBytes:   maxFileSizeMB * 1024 * 1024,
	}
}

// storageRequestBody is the JSON body for POST /batches/storage.
type storageRequestBody struct {
	Prefix   string `json:"prefix"`
	DaysBack int    `json:"days_back"`
	MaxFiles int    `json:"max_files"`
}

// batchSummary is the read model for a processed batch without its rows.
type batchSummary struct {
	ID             uuid.UUID            `json:"id"`
	ProcessedAt    time.Time            `json:"processed_at"`
	TotalFiles     int                  `json:"total_files"`
	TotalRecords   int                  `json:"total_records"`
	UniqueGRNs     int                  `json:"unique_grns"`
	LocalRecords   int                  `json:"local_records"`
	StorageRecords int                  `json:"storage_records"`
	Files          []domain.FileOutcome `json:"files"`
}

func summarize(result *domain.BatchResult) batchSummary {
	return batchSummary{
		ID:             result.ID,
		ProcessedAt:    result.ProcessedAt,
		TotalFiles:     result.TotalFiles(),
		TotalRecords:   result.TotalRecords(),
		UniqueGRNs:     result.UniqueGRNs(),
		LocalRecords:   result.CountBySource(domain.SourceLocal),
		StorageRecords: result.CountBySource(domain.SourceStorage),
		Files:          result.Files,
	}
}

// Upload handles POST /api/v1/batches/upload.
// Accepts multipart form data with one or more PDF files under the "files"
// field and processes them synchronously.
func (h *BatchHandler) Upload(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_MULTIPART", "request is not valid multipart form data")
		return
	}
	headers := form.File["files"]
	if len(headers) == 0 {
		RespondError(c, http.StatusBadRequest, "NO_FILES", "at least one file is required under the 'files' field")
		return
	}

	docs := make([]service.InputDocument, 0, len(headers))
	for _, fh := range headers {
		if !strings.HasSuffix(strings.ToLower(fh.Filename), ".pdf") {
			RespondDomainError(c, domain.ErrUnsupportedFileType)
			return
		}
		if h.maxFileBytes > 0 && fh.Size > h.maxFileBytes {
			RespondDomainError(c, domain.ErrFileTooLarge)
			return
		}

		f, err := fh.Open()
		if err != nil {
			RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read uploaded file "+fh.Filename)
			return
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			RespondError(c, http.StatusBadRequest, "UNREADABLE_FILE", "could not read uploaded file "+fh.Filename)
			return
		}
		docs = append(docs, service.InputDocument{Name: fh.Filename, Data: data})
	}

	result, err := h.processService.ProcessUpload(c.Request.Context(), docs)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondCreated(c, summarize(result))
}

// ProcessStorage handles POST /api/v1/batches/storage.
// Pulls recent PDFs from object storage under the given prefix and processes
// them as one batch.
func (h *BatchHandler) ProcessStorage(c *gin.Context) {
	var body storageRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "invalid JSON request body")
		return
	}
	if body.DaysBack < 0 || body.MaxFiles < 0 {
		RespondError(c, http.StatusBadRequest, "INVALID_BODY", "days_back and max_files must not be negative")
		return
	}

	result, err := h.processService.ProcessStorage(c.Request.Context(), service.StorageRequest{
		Prefix:   body.Prefix,
		DaysBack: body.DaysBack,
		MaxFiles: body.MaxFiles,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondCreated(c, summarize(result))
}

// GetByID handles GET /api/v1/batches/:id.
func (h *BatchHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "batch id must be a valid UUID")
		return
	}

	result, err := h.store.Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, summarize(result))
}

// GetRecords handles GET /api/v1/batches/:id/records with optional offset and
// limit query parameters.
func (h *BatchHandler) GetRecords(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "batch id must be a valid UUID")
		return
	}

	result, err := h.store.Get(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if limit <= 0 {
		limit = len(result.Records)
	}
	if offset < 0 {
		offset = 0
	}

	total := len(result.Records)
	if offset > total {
		offset = total
	}
	end := offset + limit
	if end > total {
		end = total
	}

	RespondPaginated(c, result.Records[offset:end], PagMeta{Total: total, Offset: offset, Limit: limit})
}
