package domain

import (
	"time"

	"github.com/google/uuid"
)

// Metadata holds the document-level header fields extracted once per GRN.
// Every extractable field is a typed null: nil means the pattern did not
// match, which is an expected outcome, not an error. SourceFile and
// ProcessedAt are always set.
type Metadata struct {
	GRNNo             *string   `json:"grn_no"`
	GRNDate           *string   `json:"grn_date"`
	VendorInvoiceNo   *string   `json:"vendor_invoice_no"`
	PONo              *string   `json:"po_no"`
	PODate            *string   `json:"po_date"`
	ConsigneeLocation *string   `json:"consignee_location"`
	TruckNo           *string   `json:"truck_no"`
	ChallanNo         *string   `json:"challan_no"`
	SourceFile        string    `json:"source_file"`
	ProcessedAt       time.Time `json:"processed_at"`
}

// HasData reports whether any of the seven extractable header fields matched.
// ChallanNo is derived from VendorInvoiceNo and carries no extra signal.
// A false result means the document yielded nothing ("no data extracted").
func (m *Metadata) HasData() bool {
	return m.GRNNo != nil ||
		m.GRNDate != nil ||
		m.VendorInvoiceNo != nil ||
		m.PONo != nil ||
		m.PODate != nil ||
		m.ConsigneeLocation != nil ||
		m.TruckNo != nil
}

// Item is one line-item row from the goods table. A row either matches the
// full nine-field grammar or it does not exist, so the fields are plain
// strings, kept exactly as extracted (no numeric coercion).
type Item struct {
	SNo         string `json:"s_no"`
	Article     string `json:"article"`
	Description string `json:"item_description"`
	EAN         string `json:"ean_number"`
	UoM         string `json:"uom"`
	ChallanQty  string `json:"challan_qty"`
	ReceivedQty string `json:"received_qty"`
	AcceptedQty string `json:"accepted_qty"`
	MRP         string `json:"mrp"`
}

// Record is one flat output row: document metadata joined with a single line
// item, or metadata alone when the document had no items (Item is nil then).
type Record struct {
	Metadata
	Item       *Item  `json:"item,omitempty"`
	FileName   string `json:"file_name"`
	Source     Source `json:"source"`
	StorageKey string `json:"storage_key,omitempty"`
}

// JoinRecords flattens one document's extraction result into output rows:
// one row per item, or a single metadata-only row when there are no items.
func JoinRecords(meta Metadata, items []Item, source Source, storageKey string) []Record {
	base := Record{
		Metadata:   meta,
		FileName:   meta.SourceFile,
		Source:     source,
		StorageKey: storageKey,
	}
	if len(items) == 0 {
		return []Record{base}
	}
	records := make([]Record, 0, len(items))
	for i := range items {
		r := base
		r.Item = &items[i]
		records = append(records, r)
	}
	return records
}

// FileOutcome summarizes the processing of a single input document.
type FileOutcome struct {
	FileName    string `json:"file_name"`
	Source      Source `json:"source"`
	StorageKey  string `json:"storage_key,omitempty"`
	SizeBytes   int64  `json:"size_bytes"`
	RecordCount int    `json:"record_count"`
	ItemCount   int    `json:"item_count"`
	NoData      bool   `json:"no_data"`
	TextPreview string `json:"text_preview,omitempty"`
}

// BatchResult is the caller-held outcome of one processing run. It is built
// once by the processing service and never mutated afterwards; the result
// store hands out the same value to later export and append requests.
type BatchResult struct {
	ID          uuid.UUID     `json:"id"`
	ProcessedAt time.Time     `json:"processed_at"`
	Files       []FileOutcome `json:"files"`
	Records     []Record      `json:"records"`
}

// TotalFiles returns the number of input documents in the batch.
func (b *BatchResult) TotalFiles() int { return len(b.Files) }

// TotalRecords returns the number of flat output rows in the batch.
func (b *BatchResult) TotalRecords() int { return len(b.Records) }

// UniqueGRNs counts distinct non-null GRN numbers across the batch.
func (b *BatchResult) UniqueGRNs() int {
	seen := map[string]struct{}{}
	for i := range b.Records {
		if b.Records[i].GRNNo != nil {
			seen[*b.Records[i].GRNNo] = struct{}{}
		}
	}
	return len(seen)
}

// CountBySource returns the number of records per input source.
func (b *BatchResult) CountBySource(src Source) int {
	n := 0
	for i := range b.Records {
		if b.Records[i].Source == src {
			n++
		}
	}
	return n
}

// MixedSources reports whether the batch contains records from more than one
// input source. The workbook export adds a summary sheet in that case.
func (b *BatchResult) MixedSources() bool {
	if len(b.Records) == 0 {
		return false
	}
	first := b.Records[0].Source
	for i := range b.Records {
		if b.Records[i].Source != first {
			return true
		}
	}
	return false
}
