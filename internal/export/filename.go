package export

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"grnflow/internal/domain"
)

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a name for use in Content-Disposition. Replaces
// non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns a sanitized download filename for an export.
// Format: grn_data_{YYYYMMDD_HHMMSS}.{ext}; a non-empty base replaces the
// grn_data prefix.
func BuildFilename(base string, format domain.ExportFormat) string {
	prefix := "grn_data"
	if s := SanitizeFilename(base); s != "" {
		prefix = s
	}
	stamp := time.Now().Format("20060102_150405")
	return fmt.Sprintf("%s_%s.%s", prefix, stamp, domain.FileExtension[format])
}
