package excel

import (
	"datacleaner/adapters/datareadiness/coercer"
)

// DefaultSheetName is the sheet written to new workbooks
const DefaultSheetName = "Sheet1"

// ReaderConfig holds configuration for loading tabular files
type ReaderConfig struct {
	SheetName      string                 `json:"sheet_name"` // empty reads the first sheet
	CoercionConfig coercer.CoercionConfig `json:"coercion_config"`
}

// WriterConfig holds configuration for saving tabular files
type WriterConfig struct {
	SheetName string `json:"sheet_name"`
}

// DefaultReaderConfig returns sensible defaults for reading
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{
		CoercionConfig: coercer.DefaultCoercionConfig(),
	}
}

// DefaultWriterConfig returns sensible defaults for writing
func DefaultWriterConfig() WriterConfig {
	return WriterConfig{SheetName: DefaultSheetName}
}
