package export

import (
	"encoding/json"

	"grnflow/internal/domain"
)

// EncodeJSON renders the record set as an indented array of objects keyed by
// column name. Unmatched metadata fields are emitted as JSON null, not "".
func EncodeJSON(records []domain.Record) ([]byte, error) {
	out := make([]map[string]any, 0, len(records))
	for i := range records {
		out = append(out, RecordMap(&records[i]))
	}
	return json.MarshalIndent(out, "", "  ")
}
