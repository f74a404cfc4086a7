package excel

import (
	"gocorr/adapters/datareadiness/coercer"
)

// DefaultSheet is read when no sheet name is configured.
const DefaultSheet = "Sheet1"

// ReaderConfig holds configuration for a tabular data source
type ReaderConfig struct {
	Sheet    string                 `json:"sheet"`
	Coercion coercer.CoercionConfig `json:"coercion"`
}

// DefaultReaderConfig returns sensible defaults for spreadsheet processing
func DefaultReaderConfig() ReaderConfig {
	return ReaderConfig{
		Sheet:    DefaultSheet,
		Coercion: coercer.DefaultCoercionConfig(),
	}
}
