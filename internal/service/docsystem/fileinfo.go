package docsystem

import (
	"fmt"
	"strings"
	"time"
)

const bytesPerMiB = 1024 * 1024

// SizeLabel renders a byte count as mebibytes with one decimal: 1048576 -> "1.0 MB"
func SizeLabel(sizeBytes int64) string {
	if sizeBytes < 0 {
		sizeBytes = 0
	}
	return fmt.Sprintf("%.1f MB", float64(sizeBytes)/bytesPerMiB)
}

// DeriveExtension returns the provided extension when set, otherwise the
// suffix after the name's last dot. Lower-cased, without the leading dot.
func DeriveExtension(name, provided string) string {
	if ext := strings.TrimSpace(provided); ext != "" {
		return strings.ToLower(strings.TrimLeft(ext, "."))
	}
	i := strings.LastIndex(name, ".")
	if i < 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}

// ModifiedDate formats t as an ISO calendar date in UTC
func ModifiedDate(t time.Time) string {
	return t.UTC().Format(time.DateOnly)
}
