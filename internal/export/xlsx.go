package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/xuri/excelize/v2"

	"grnflow/internal/domain"
)

// DataSheet is the workbook sheet holding the flat record set.
const DataSheet = "GRN_Data"

// SummarySheet tallies source counts; it is only added when the batch mixes
// local and storage inputs.
const SummarySheet = "Summary"

// EncodeXLSX renders a batch as a spreadsheet workbook.
func EncodeXLSX(result *domain.BatchResult) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", DataSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	for col, h := range Columns {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(DataSheet, cell, h); err != nil {
			return nil, err
		}
	}

	for i := range result.Records {
		row := RecordRow(&result.Records[i])
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, i+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(DataSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	// Widen the description and location columns for readability.
	_ = f.SetColWidth(DataSheet, "F", "F", 28)
	_ = f.SetColWidth(DataSheet, "M", "M", 36)

	if result.MixedSources() {
		if err := writeSummary(f, result); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func writeSummary(f *excelize.File, result *domain.BatchResult) error {
	if _, err := f.NewSheet(SummarySheet); err != nil {
		return err
	}

	rows := [][]string{
		{"Metric", "Value"},
		{"Total Records", strconv.Itoa(result.TotalRecords())},
		{"Local Files", strconv.Itoa(result.CountBySource(domain.SourceLocal))},
		{"Storage Files", strconv.Itoa(result.CountBySource(domain.SourceStorage))},
		{"Unique GRNs", strconv.Itoa(result.UniqueGRNs())},
	}
	for r, row := range rows {
		for c, v := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(SummarySheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}
