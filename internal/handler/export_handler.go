package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"grnflow/internal/domain"
	"grnflow/internal/service"
)

// ExportHandler handles batch export and master workbook endpoints.
type ExportHandler struct {
	exportService service.ExportService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(exportService service.ExportService) *ExportHandler {
	return &ExportHandler{exportService: exportService}
}

// Export handles GET /api/v1/batches/:id/export?format=csv|xlsx|json.
// Streams the encoded batch back as a file download.
func (h *ExportHandler) Export(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "batch id must be a valid UUID")
		return
	}

	format, err := domain.ParseExportFormat(c.DefaultQuery("format", "csv"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	out, err := h.exportService.Export(c.Request.Context(), id, format)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+out.Filename+`"`)
	c.Data(http.StatusOK, out.ContentType, out.Data)
}

// AppendToMaster handles POST /api/v1/batches/:id/append.
// Appends the batch's records to the configured master workbook.
func (h *ExportHandler) AppendToMaster(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "batch id must be a valid UUID")
		return
	}

	appended, err := h.exportService.AppendToMaster(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"appended": appended})
}
