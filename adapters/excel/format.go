package excel

import (
	"path/filepath"
	"strings"

	"datacleaner/internal/errors"
)

// Format is the closed set of file families the cleaner reads and writes
type Format int

const (
	FormatUnknown Format = iota
	FormatCSV
	FormatSpreadsheet
)

func (f Format) String() string {
	switch f {
	case FormatCSV:
		return "csv"
	case FormatSpreadsheet:
		return "spreadsheet"
	}
	return "unknown"
}

var formatsByExt = map[string]Format{
	".csv":  FormatCSV,
	".xlsx": FormatSpreadsheet,
	".xls":  FormatSpreadsheet,
}

// FormatFromPath resolves the format from the file extension, case-insensitively
func FormatFromPath(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if f, ok := formatsByExt[ext]; ok {
		return f, nil
	}
	return FormatUnknown, errors.UnsupportedFormat(path, ext)
}

// isLegacyWorkbook reports a .xls path, which is only readable when the
// file is really an OOXML workbook.
func isLegacyWorkbook(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xls")
}
