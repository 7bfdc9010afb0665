package grn

import (
	"regexp"
	"strings"
	"time"

	"grnflow/internal/domain"
)

// Header field patterns. Each is searched case-insensitively for its first
// occurrence; the first non-empty capture group wins, otherwise the field
// stays nil. No loosened retries on partial matches.
var (
	grnNoRe     = regexp.MustCompile(`(?i)GOODS RECEIPT NOTE No\.\s*:\s*(\S+)`)
	grnDateRe   = regexp.MustCompile(`(?i)Date:\s*(\d{2}\.\d{2}\.\d{4})`)
	vendorInvRe = regexp.MustCompile(`(?i)Vendor invoice no\s*:\s*(\S+)`)
	consigneeRe = regexp.MustCompile(`(?i)Consignee\s*:\s*([^\n]+)\n`)
	poNoRe      = regexp.MustCompile(`(?i)PO Number\s*:\s*(\S+)`)
	truckNoRe   = regexp.MustCompile(`(?i)Truck/ Lorry/ Carrier No:\s*(\S+)`)

	// PO Date prefers a date in a "PO Number ... Date:" span and falls back
	// to any standalone "Date:". GRN Date above shares the same generic
	// "Date:" anchor, so documents with several dated fields can attribute a
	// date to the wrong field depending on which occurrence comes first.
	// That ambiguity is inherent to the source layout and deliberately kept.
	// RE2 has no lookbehind; (?:^|\s) stands in for the original (?<!\S).
	poDateRe = regexp.MustCompile(`(?i)PO Number.*?Date\s*:\s*(\d{2}\.\d{2}\.\d{4})|(?:^|\s)Date\s*:\s*(\d{2}\.\d{2}\.\d{4})`)
)

// Item table patterns. The table starts at the first "S No  Article" header
// marker; rows are matched left to right, non-overlapping, with the
// description captured lazily so embedded digit runs shorter than the
// 13-digit EAN do not terminate the match early.
var (
	tableMarkerRe = regexp.MustCompile(`(?i)S No\s+Article`)
	itemRowRe     = regexp.MustCompile(`(\d+)\s+(\d+)\s+([\w\s.\-%#]+?)\s+(\d{13})\s+(\w+)\s+(\d+)\s+(\d+)\s+(\d+)\s+([\d.]+)\b`)
	whitespaceRe  = regexp.MustCompile(`\s+`)
)

// Extract locates the header metadata block and the line-item table in one
// document's raw text. It must be fed text that still carries line breaks:
// the Consignee capture runs up to the next newline. Empty input (the
// upstream signal for an unreadable PDF) yields an all-nil metadata record
// and no items; the caller recognizes that via Metadata.HasData.
func Extract(text, sourceFile string) (domain.Metadata, []domain.Item) {
	meta := domain.Metadata{
		SourceFile:  sourceFile,
		ProcessedAt: time.Now().UTC(),
	}

	meta.GRNNo = capture(grnNoRe, text)
	meta.GRNDate = capture(grnDateRe, text)
	meta.VendorInvoiceNo = capture(vendorInvRe, text)
	meta.ConsigneeLocation = capture(consigneeRe, text)
	meta.PONo = capture(poNoRe, text)
	meta.PODate = capture(poDateRe, text)
	meta.TruckNo = capture(truckNoRe, text)

	// Challan No mirrors the vendor invoice number, resolved after all
	// header fields so it never depends on pattern order.
	if meta.VendorInvoiceNo != nil {
		challan := *meta.VendorInvoiceNo
		meta.ChallanNo = &challan
	}

	return meta, extractItems(text)
}

// capture returns the first non-empty capture group of the first match,
// or nil when the pattern does not occur.
func capture(re *regexp.Regexp, text string) *string {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return nil
	}
	for _, g := range m[1:] {
		if g != "" {
			return &g
		}
	}
	return nil
}

// extractItems matches the 9-field row grammar from the table marker to the
// end of text. A missing marker or zero matching rows is an ordinary result;
// there is no partial item record and no limit on row count.
func extractItems(text string) []domain.Item {
	loc := tableMarkerRe.FindStringIndex(text)
	if loc == nil {
		return nil
	}
	table := text[loc[0]:]

	var items []domain.Item
	for _, m := range itemRowRe.FindAllStringSubmatch(table, -1) {
		items = append(items, domain.Item{
			SNo:         m[1],
			Article:     m[2],
			Description: collapseSpaces(m[3]),
			EAN:         m[4],
			UoM:         m[5],
			ChallanQty:  m[6],
			ReceivedQty: m[7],
			AcceptedQty: m[8],
			MRP:         m[9],
		})
	}
	return items
}

// collapseSpaces trims a captured description and squeezes internal
// whitespace runs to single spaces.
func collapseSpaces(s string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(s), " ")
}
