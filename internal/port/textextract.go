package port

// TextExtractor abstracts PDF-to-text extraction. Implementations return the
// concatenated page text in page order, or "" when the document cannot be
// read; they never return an error to the caller.
type TextExtractor interface {
	Text(data []byte, name string) string
}
