// Package sheetappend appends flat record sets to a hosted spreadsheet. The
// hosted service itself stays behind the SheetClient port; this package owns
// the column-alignment contract: rows are aligned to the sheet's existing
// header row, and record keys absent from the header become new columns at
// the end.
package sheetappend

import (
	"context"
	"fmt"
	"sort"

	"grnflow/internal/export"
)

// SheetClient is the minimal surface of a spreadsheet backend.
type SheetClient interface {
	// Header returns the sheet's first row, or an empty slice when the
	// sheet is blank or does not exist yet.
	Header(ctx context.Context, sheet string) ([]string, error)
	// SetHeader replaces the sheet's first row.
	SetHeader(ctx context.Context, sheet string, header []string) error
	// AppendRows appends rows after the sheet's last populated row.
	AppendRows(ctx context.Context, sheet string, rows [][]string) error
}

// Appender aligns records to a sheet's header and appends them.
type Appender struct {
	client SheetClient
}

// NewAppender creates an Appender over a spreadsheet backend.
func NewAppender(client SheetClient) *Appender {
	return &Appender{client: client}
}

// Append writes one row per record to the target sheet. Missing record keys
// render as empty cells; keys the header does not know yet are added as new
// trailing columns (canonical export columns first, then any remaining keys
// in sorted order).
func (a *Appender) Append(ctx context.Context, sheet string, records []map[string]string) error {
	if len(records) == 0 {
		return nil
	}

	header, err := a.client.Header(ctx, sheet)
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, h := range header {
		index[h] = i
	}

	extended := false
	add := func(name string) {
		header = append(header, name)
		index[name] = len(header) - 1
		extended = true
	}

	for _, c := range export.Columns {
		if _, ok := index[c]; ok {
			continue
		}
		if anyRecordHas(records, c) {
			add(c)
		}
	}
	for _, k := range extraKeys(records, index) {
		add(k)
	}

	if extended {
		if err := a.client.SetHeader(ctx, sheet, header); err != nil {
			return fmt.Errorf("extend header: %w", err)
		}
	}

	rows := make([][]string, 0, len(records))
	for _, r := range records {
		row := make([]string, len(header))
		for k, v := range r {
			row[index[k]] = v
		}
		rows = append(rows, row)
	}

	if err := a.client.AppendRows(ctx, sheet, rows); err != nil {
		return fmt.Errorf("append rows: %w", err)
	}
	return nil
}

func anyRecordHas(records []map[string]string, key string) bool {
	for _, r := range records {
		if _, ok := r[key]; ok {
			return true
		}
	}
	return false
}

func extraKeys(records []map[string]string, index map[string]int) []string {
	seen := map[string]struct{}{}
	var keys []string
	for _, r := range records {
		for k := range r {
			if _, ok := index[k]; ok {
				continue
			}
			if _, ok := seen[k]; ok {
				continue
			}
			seen[k] = struct{}{}
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}
