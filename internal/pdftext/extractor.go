// Package pdftext is the PDF-to-text collaborator: given raw PDF bytes it
// returns the concatenated plain text of all pages in page order, with no
// page boundary markers. Every failure mode (corrupt file, encrypted file,
// unreadable page) degrades to an empty string — the extraction core treats
// that as an ordinary degenerate input.
package pdftext

import (
	"bytes"
	"log"

	ledongthuc "github.com/ledongthuc/pdf"
	pdfcpuapi "github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Extractor extracts plain text from PDF bytes.
type Extractor struct{}

// NewExtractor creates a PDF text extractor.
func NewExtractor() *Extractor { return &Extractor{} }

// Text returns the concatenated text of all pages, or "" when the document
// cannot be read. The name argument is only used for log messages.
func (e *Extractor) Text(data []byte, name string) string {
	if len(data) == 0 {
		return ""
	}

	// Relaxed structural pre-check. Rejects corrupt and encrypted documents
	// before the text pass so they surface as a clean "no data" outcome.
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	ctx, err := pdfcpuapi.ReadContext(bytes.NewReader(data), conf)
	if err != nil {
		log.Printf("pdftext.Text: %s: unreadable pdf: %v", name, err)
		return ""
	}
	if err := ctx.EnsurePageCount(); err != nil {
		log.Printf("pdftext.Text: %s: page count: %v", name, err)
		return ""
	}

	r, err := ledongthuc.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		log.Printf("pdftext.Text: %s: open pdf: %v", name, err)
		return ""
	}

	var text bytes.Buffer
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			log.Printf("pdftext.Text: %s: page %d: %v", name, i, err)
			continue
		}
		text.WriteString(pageText)
	}
	return text.String()
}
