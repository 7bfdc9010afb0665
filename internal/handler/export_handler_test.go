package handler_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"grnflow/internal/domain"
	"grnflow/internal/handler"
	"grnflow/internal/service"
	"grnflow/mocks"
)

func TestExportHandler_Export_CSV(t *testing.T) {
	mockExport := new(mocks.MockExportService)
	h := handler.NewExportHandler(mockExport)

	id := uuid.New()
	out := &service.ExportOutput{
		Filename:    "grn_data_20240115_093000.csv",
		ContentType: "text/csv",
		Data:        []byte("header\nrow\n"),
	}
	mockExport.On("Export", mock.Anything, id, domain.FormatCSV).Return(out, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/batches/"+id.String()+"/export?format=csv", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), out.Filename)
	assert.Equal(t, out.Data, w.Body.Bytes())
	mockExport.AssertExpectations(t)
}

func TestExportHandler_Export_DefaultsToCSV(t *testing.T) {
	mockExport := new(mocks.MockExportService)
	h := handler.NewExportHandler(mockExport)

	id := uuid.New()
	out := &service.ExportOutput{Filename: "grn_data_20240115_093000.csv", ContentType: "text/csv", Data: []byte("x")}
	mockExport.On("Export", mock.Anything, id, domain.FormatCSV).Return(out, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/batches/"+id.String()+"/export", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Export(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockExport.AssertExpectations(t)
}

func TestExportHandler_Export_UnsupportedFormat(t *testing.T) {
	mockExport := new(mocks.MockExportService)
	h := handler.NewExportHandler(mockExport)

	id := uuid.New()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/batches/"+id.String()+"/export?format=docx", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Export(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "UNSUPPORTED_FORMAT", resp.Error.Code)
	mockExport.AssertNotCalled(t, "Export")
}

func TestExportHandler_Export_BatchNotFound(t *testing.T) {
	mockExport := new(mocks.MockExportService)
	h := handler.NewExportHandler(mockExport)

	id := uuid.New()
	mockExport.On("Export", mock.Anything, id, domain.FormatXLSX).Return(nil, domain.ErrBatchNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/batches/"+id.String()+"/export?format=xlsx", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.Export(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestExportHandler_AppendToMaster_Success(t *testing.T) {
	mockExport := new(mocks.MockExportService)
	h := handler.NewExportHandler(mockExport)

	id := uuid.New()
	mockExport.On("AppendToMaster", mock.Anything, id).Return(7, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/batches/"+id.String()+"/append", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.AppendToMaster(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, float64(7), data["appended"])
	mockExport.AssertExpectations(t)
}

func TestExportHandler_AppendToMaster_EmptyBatch(t *testing.T) {
	mockExport := new(mocks.MockExportService)
	h := handler.NewExportHandler(mockExport)

	id := uuid.New()
	mockExport.On("AppendToMaster", mock.Anything, id).Return(0, domain.ErrNoRecords)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/batches/"+id.String()+"/append", nil)
	c.Params = gin.Params{{Key: "id", Value: id.String()}}

	h.AppendToMaster(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "NO_RECORDS", resp.Error.Code)
}
