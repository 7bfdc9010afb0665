package domain

// Source identifies where an input document came from.
type Source string

const (
	SourceLocal   Source = "local"
	SourceStorage Source = "storage"
)

// ExportFormat enumerates the supported export encodings.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatXLSX ExportFormat = "xlsx"
	FormatJSON ExportFormat = "json"
)

// ContentType maps an export format to its MIME content type.
var ContentType = map[ExportFormat]string{
	FormatCSV:  "text/csv",
	FormatXLSX: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	FormatJSON: "application/json",
}

// FileExtension maps an export format to its file extension (without dot).
var FileExtension = map[ExportFormat]string{
	FormatCSV:  "csv",
	FormatXLSX: "xlsx",
	FormatJSON: "json",
}

// ParseExportFormat validates a format string from a request.
func ParseExportFormat(s string) (ExportFormat, error) {
	switch ExportFormat(s) {
	case FormatCSV, FormatXLSX, FormatJSON:
		return ExportFormat(s), nil
	}
	return "", ErrUnsupportedFormat
}
