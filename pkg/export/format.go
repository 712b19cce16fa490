package export

import (
	"path/filepath"
	"strings"

	"vizex/pkg/common"
)

// Encoding is the record encoding of an export file.
type Encoding string

const (
	CSV  Encoding = "csv"
	JSON Encoding = "json"
)

// Format is the encoding of a destination plus whether it is
// zstd-compressed.
type Format struct {
	Encoding   Encoding
	Compressed bool
}

// Suffixes returns the destination suffixes the exporter accepts.
func Suffixes() []string {
	return []string{".csv", ".json", ".csv.zst", ".json.zst"}
}

// FormatFor picks the format from the destination's suffix, ignoring case.
// An unknown suffix is a configuration error naming the extension.
func FormatFor(dest string) (Format, error) {
	name := strings.ToLower(filepath.Base(dest))

	var f Format
	if trimmed, ok := strings.CutSuffix(name, ".zst"); ok {
		f.Compressed = true
		name = trimmed
	}
	switch {
	case strings.HasSuffix(name, ".csv"):
		f.Encoding = CSV
	case strings.HasSuffix(name, ".json"):
		f.Encoding = JSON
	default:
		ext := filepath.Ext(dest)
		if ext == "" {
			ext = dest
		}
		return Format{}, &common.ConfigError{
			Field:  "export format",
			Value:  ext,
			Reason: "expected " + strings.Join(Suffixes(), ", "),
		}
	}
	return f, nil
}

func (f Format) String() string {
	if f.Compressed {
		return string(f.Encoding) + "+zstd"
	}
	return string(f.Encoding)
}
