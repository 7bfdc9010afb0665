package export

import (
	"bytes"
	"encoding/csv"
	"io"

	"grnflow/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// Writer wraps csv.Writer for exporting GRN records as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the column header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(Columns)
}

// WriteRecords converts a batch of records to CSV rows and writes them.
func (w *Writer) WriteRecords(records []domain.Record) error {
	for i := range records {
		if err := w.csv.Write(RecordRow(&records[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// EncodeCSV renders the record set as a BOM-prefixed CSV document.
func EncodeCSV(records []domain.Record) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(BOM)

	w := NewWriter(&buf)
	if err := w.WriteHeader(); err != nil {
		return nil, err
	}
	if err := w.WriteRecords(records); err != nil {
		return nil, err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
