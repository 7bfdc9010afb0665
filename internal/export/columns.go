// Package export serializes flat GRN record sets to the supported tabular
// formats: delimited text, spreadsheet workbook, and structured-record dump.
// All encoders are straight serializations of the joined record set; no
// extraction logic lives here.
package export

import (
	"time"

	"grnflow/internal/domain"
)

// Columns defines the output column set (22 columns): document metadata,
// line-item fields, and batch provenance.
var Columns = []string{
	"GRN No",
	"GRN Date",
	"Vendor Invoice No",
	"PO No",
	"PO Date",
	"Consignee Location",
	"Truck No",
	"Challan No",
	"Source File",
	"Processing Date",
	"S No",
	"Article",
	"Item Description",
	"EAN Number",
	"UoM",
	"Challan Qty",
	"Received Qty",
	"Accepted Qty",
	"MRP",
	"file_name",
	"source",
	"storage_key",
}

// RecordRow converts a record to a 22-element string slice aligned with
// Columns. Null metadata fields and a missing line item render as empty
// cells.
func RecordRow(r *domain.Record) []string {
	row := make([]string, len(Columns))

	row[0] = deref(r.GRNNo)
	row[1] = deref(r.GRNDate)
	row[2] = deref(r.VendorInvoiceNo)
	row[3] = deref(r.PONo)
	row[4] = deref(r.PODate)
	row[5] = deref(r.ConsigneeLocation)
	row[6] = deref(r.TruckNo)
	row[7] = deref(r.ChallanNo)
	row[8] = r.SourceFile
	row[9] = r.ProcessedAt.Format(time.RFC3339)

	if r.Item != nil {
		row[10] = r.Item.SNo
		row[11] = r.Item.Article
		row[12] = r.Item.Description
		row[13] = r.Item.EAN
		row[14] = r.Item.UoM
		row[15] = r.Item.ChallanQty
		row[16] = r.Item.ReceivedQty
		row[17] = r.Item.AcceptedQty
		row[18] = r.Item.MRP
	}

	row[19] = r.FileName
	row[20] = string(r.Source)
	row[21] = r.StorageKey

	return row
}

// RecordMap converts a record to a column-name-keyed map. Null metadata
// fields stay nil so the structured-record dump preserves typed nulls.
func RecordMap(r *domain.Record) map[string]any {
	m := map[string]any{
		"GRN No":             nullable(r.GRNNo),
		"GRN Date":           nullable(r.GRNDate),
		"Vendor Invoice No":  nullable(r.VendorInvoiceNo),
		"PO No":              nullable(r.PONo),
		"PO Date":            nullable(r.PODate),
		"Consignee Location": nullable(r.ConsigneeLocation),
		"Truck No":           nullable(r.TruckNo),
		"Challan No":         nullable(r.ChallanNo),
		"Source File":        r.SourceFile,
		"Processing Date":    r.ProcessedAt.Format(time.RFC3339),
		"file_name":          r.FileName,
		"source":             string(r.Source),
		"storage_key":        r.StorageKey,
	}
	if r.Item != nil {
		m["S No"] = r.Item.SNo
		m["Article"] = r.Item.Article
		m["Item Description"] = r.Item.Description
		m["EAN Number"] = r.Item.EAN
		m["UoM"] = r.Item.UoM
		m["Challan Qty"] = r.Item.ChallanQty
		m["Received Qty"] = r.Item.ReceivedQty
		m["Accepted Qty"] = r.Item.AcceptedQty
		m["MRP"] = r.Item.MRP
	}
	return m
}

// RecordStringMap converts a record to a column-name-keyed map of plain
// strings (nulls as ""), the shape the spreadsheet-append contract consumes.
func RecordStringMap(r *domain.Record) map[string]string {
	row := RecordRow(r)
	m := make(map[string]string, len(Columns))
	for i, c := range Columns {
		m[c] = row[i]
	}
	return m
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func nullable(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}
