package sheetappend

import (
	"context"
	"fmt"
	"os"

	"github.com/xuri/excelize/v2"
)

// WorkbookClient implements SheetClient over a local xlsx workbook, used as
// the master-sheet backend when no hosted spreadsheet service is wired in.
type WorkbookClient struct {
	path string
	f    *excelize.File
}

// NewWorkbookClient creates a client for the workbook at path. The file is
// created on first save if it does not exist.
func NewWorkbookClient(path string) *WorkbookClient {
	return &WorkbookClient{path: path}
}

func (c *WorkbookClient) open() (*excelize.File, error) {
	if c.f != nil {
		return c.f, nil
	}
	if _, err := os.Stat(c.path); os.IsNotExist(err) {
		c.f = excelize.NewFile()
		return c.f, nil
	}
	f, err := excelize.OpenFile(c.path)
	if err != nil {
		return nil, fmt.Errorf("open workbook %s: %w", c.path, err)
	}
	c.f = f
	return c.f, nil
}

func (c *WorkbookClient) ensureSheet(f *excelize.File, sheet string) error {
	idx, err := f.GetSheetIndex(sheet)
	if err != nil {
		return err
	}
	if idx == -1 {
		if _, err := f.NewSheet(sheet); err != nil {
			return err
		}
	}
	return nil
}

// Header returns the sheet's first row, or nil for a blank or missing sheet.
func (c *WorkbookClient) Header(_ context.Context, sheet string) ([]string, error) {
	f, err := c.open()
	if err != nil {
		return nil, err
	}
	idx, err := f.GetSheetIndex(sheet)
	if err != nil || idx == -1 {
		return nil, nil
	}
	rows, err := f.GetRows(sheet)
	if err != nil || len(rows) == 0 {
		return nil, nil
	}
	return rows[0], nil
}

// SetHeader replaces the sheet's first row.
func (c *WorkbookClient) SetHeader(_ context.Context, sheet string, header []string) error {
	f, err := c.open()
	if err != nil {
		return err
	}
	if err := c.ensureSheet(f, sheet); err != nil {
		return err
	}
	for col, h := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}
	return nil
}

// AppendRows appends rows after the sheet's last populated row.
func (c *WorkbookClient) AppendRows(_ context.Context, sheet string, rows [][]string) error {
	f, err := c.open()
	if err != nil {
		return err
	}
	if err := c.ensureSheet(f, sheet); err != nil {
		return err
	}
	existing, err := f.GetRows(sheet)
	if err != nil {
		return err
	}
	next := len(existing) + 1
	for i, row := range rows {
		for col, v := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, next+i)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return err
			}
		}
	}
	return nil
}

// Save persists the workbook to disk.
func (c *WorkbookClient) Save() error {
	if c.f == nil {
		return nil
	}
	return c.f.SaveAs(c.path)
}

// Close releases the underlying workbook.
func (c *WorkbookClient) Close() error {
	if c.f == nil {
		return nil
	}
	err := c.f.Close()
	c.f = nil
	return err
}
