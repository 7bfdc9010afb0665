package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"grnflow/internal/domain"
)

func strPtr(s string) *string { return &s }

func sampleMetadata() domain.Metadata {
	return domain.Metadata{
		GRNNo:           strPtr("GRN12345"),
		GRNDate:         strPtr("01.02.2024"),
		VendorInvoiceNo: strPtr("INV999"),
		ChallanNo:       strPtr("INV999"),
		SourceFile:      "grn_1.pdf",
		ProcessedAt:     time.Date(2024, 2, 1, 10, 30, 0, 0, time.UTC),
	}
}

func sampleItem() domain.Item {
	return domain.Item{
		SNo:         "1",
		Article:     "100",
		Description: "Widget Blue",
		EAN:         "1234567890123",
		UoM:         "PCS",
		ChallanQty:  "10",
		ReceivedQty: "10",
		AcceptedQty: "10",
		MRP:         "99.50",
	}
}

func sampleRecords() []domain.Record {
	item := sampleItem()
	return []domain.Record{
		{
			Metadata: sampleMetadata(),
			Item:     &item,
			FileName: "grn_1.pdf",
			Source:   domain.SourceLocal,
		},
		{
			Metadata:   sampleMetadata(),
			FileName:   "grn_1.pdf",
			Source:     domain.SourceStorage,
			StorageKey: "inbox/grn_1.pdf",
		},
	}
}

func TestEncodeCSV(t *testing.T) {
	data, err := EncodeCSV(sampleRecords())
	require.NoError(t, err)

	require.True(t, bytes.HasPrefix(data, BOM))

	r := csv.NewReader(bytes.NewReader(data[len(BOM):]))
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, Columns, rows[0])
	assert.Equal(t, "GRN12345", rows[1][0])
	assert.Equal(t, "Widget Blue", rows[1][12])
	assert.Equal(t, "local", rows[1][20])

	// Metadata-only row: item cells empty, provenance filled.
	assert.Equal(t, "GRN12345", rows[2][0])
	assert.Equal(t, "", rows[2][12])
	assert.Equal(t, "inbox/grn_1.pdf", rows[2][21])
}

func TestEncodeCSV_Empty(t *testing.T) {
	data, err := EncodeCSV(nil)
	require.NoError(t, err)

	r := csv.NewReader(bytes.NewReader(data[len(BOM):]))
	rows, err := r.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Columns, rows[0])
}

func TestEncodeXLSX(t *testing.T) {
	result := &domain.BatchResult{
		ID:          uuid.New(),
		ProcessedAt: time.Now().UTC(),
		Records:     sampleRecords(),
	}

	data, err := EncodeXLSX(result)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(DataSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "GRN No", rows[0][0])
	assert.Equal(t, "GRN12345", rows[1][0])
	assert.Equal(t, "1234567890123", rows[1][13])

	// Mixed-source batch gets a summary sheet.
	sRows, err := f.GetRows(SummarySheet)
	require.NoError(t, err)
	require.Len(t, sRows, 5)
	assert.Equal(t, []string{"Total Records", "2"}, sRows[1])
	assert.Equal(t, []string{"Local Files", "1"}, sRows[2])
	assert.Equal(t, []string{"Storage Files", "1"}, sRows[3])
	assert.Equal(t, []string{"Unique GRNs", "1"}, sRows[4])
}

func TestEncodeXLSX_SingleSourceHasNoSummary(t *testing.T) {
	records := sampleRecords()[:1]
	result := &domain.BatchResult{ID: uuid.New(), Records: records}

	data, err := EncodeXLSX(result)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	_, err = f.GetRows(SummarySheet)
	assert.Error(t, err)
}

func TestEncodeJSON_PreservesNulls(t *testing.T) {
	records := []domain.Record{{
		Metadata: domain.Metadata{
			SourceFile:  "empty.pdf",
			ProcessedAt: time.Date(2024, 2, 1, 10, 30, 0, 0, time.UTC),
		},
		FileName: "empty.pdf",
		Source:   domain.SourceLocal,
	}}

	data, err := EncodeJSON(records)
	require.NoError(t, err)

	var out []map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	require.Len(t, out, 1)

	v, ok := out[0]["GRN No"]
	require.True(t, ok)
	assert.Nil(t, v)
	assert.Equal(t, "empty.pdf", out[0]["Source File"])

	// Metadata-only records carry no item keys at all.
	_, ok = out[0]["EAN Number"]
	assert.False(t, ok)
}

func TestRecordRow_Alignment(t *testing.T) {
	records := sampleRecords()
	row := RecordRow(&records[0])
	require.Len(t, row, len(Columns))
	assert.Equal(t, "2024-02-01T10:30:00Z", row[9])
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "My_Batch_2024", SanitizeFilename("My Batch (2024)!"))
	assert.Equal(t, "a_b", SanitizeFilename("__a___b__"))
}

func TestBuildFilename(t *testing.T) {
	name := BuildFilename("", domain.FormatCSV)
	assert.Regexp(t, `^grn_data_\d{8}_\d{6}\.csv$`, name)

	name = BuildFilename("My Batch", domain.FormatXLSX)
	assert.Regexp(t, `^My_Batch_\d{8}_\d{6}\.xlsx$`, name)
}
