// Package grn turns raw GRN document text into a normalized metadata record
// plus zero or more line-item records. Extraction is a pure function of the
// input text: no I/O, no shared state between documents, never an error —
// unmatched fields are nil and unparseable tables yield no items.
package grn

import "strings"

// CleanText flattens raw page text into a single-line-tending blob: trims
// leading/trailing whitespace and replaces line breaks with spaces, then
// collapses literal double spaces in one left-to-right pass. Runs of more
// than two spaces are only partially collapsed; that single pass is the
// documented contract, not an oversight.
//
// Note CleanText does NOT feed Extract: the Consignee pattern needs the
// original line boundaries, so extraction always runs on raw text and this
// normalizer serves the per-document text preview instead.
func CleanText(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return strings.ReplaceAll(s, "  ", " ")
}
