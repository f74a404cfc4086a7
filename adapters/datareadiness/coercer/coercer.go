package coercer

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"gocorr/domain/dataset"
)

// TypeCoercer turns raw spreadsheet values into tagged dataset cells
type TypeCoercer struct {
	config CoercionConfig
}

// CoercionConfig defines the parsing rules
type CoercionConfig struct {
	DecimalComma     bool `json:"decimal_comma"`     // a lone comma is a decimal separator ("3,5" = 3.5)
	StripCurrency    bool `json:"strip_currency"`    // drop $, €, £, ¥ and ISO codes before parsing
	NormalizeStrings bool `json:"normalize_strings"` // collapse whitespace and lower-case text cells
}

// DefaultCoercionConfig returns sensible defaults
func DefaultCoercionConfig() CoercionConfig {
	return CoercionConfig{
		DecimalComma:     true,
		StripCurrency:    true,
		NormalizeStrings: false,
	}
}

// NewTypeCoercer creates a coercer with the given config
func NewTypeCoercer(config CoercionConfig) *TypeCoercer {
	return &TypeCoercer{config: config}
}

// CoerceValue deterministically converts an unknown value to a Cell.
// Numbers that are not finite become parse failures rather than numbers.
func (c *TypeCoercer) CoerceValue(raw interface{}) dataset.Cell {
	switch v := raw.(type) {
	case nil:
		return dataset.MissingCell()
	case float64:
		return dataset.NumberCell(v)
	case float32:
		return dataset.NumberCell(float64(v))
	case int:
		return dataset.NumberCell(float64(v))
	case int8:
		return dataset.NumberCell(float64(v))
	case int16:
		return dataset.NumberCell(float64(v))
	case int32:
		return dataset.NumberCell(float64(v))
	case int64:
		return dataset.NumberCell(float64(v))
	case uint:
		return dataset.NumberCell(float64(v))
	case uint8:
		return dataset.NumberCell(float64(v))
	case uint16:
		return dataset.NumberCell(float64(v))
	case uint32:
		return dataset.NumberCell(float64(v))
	case uint64:
		return dataset.NumberCell(float64(v))
	case bool:
		return dataset.TextCell(strconv.FormatBool(v))
	case string:
		return c.CoerceString(v)
	default:
		return c.CoerceString(fmt.Sprintf("%v", v))
	}
}

// CoerceString parses one textual cell.
func (c *TypeCoercer) CoerceString(s string) dataset.Cell {
	s = strings.TrimSpace(s)
	if s == "" {
		return dataset.MissingCell()
	}

	value, ok, overflow := c.tryParseNumeric(s)
	switch {
	case overflow:
		return dataset.ParseFailureCell(s)
	case ok:
		return dataset.NumberCell(value)
	}

	if c.config.NormalizeStrings {
		s = normalizeString(s)
	}
	return dataset.TextCell(s)
}

// tryParseNumeric attempts to parse as numeric with strict rules.
// Handles parentheses for negatives, currency symbols, percent signs and
// European decimals. overflow reports text that is numeric in form but not
// a finite float64 (NaN, Inf, 1e999).
func (c *TypeCoercer) tryParseNumeric(s string) (value float64, ok, overflow bool) {
	clean := s

	negative := false
	if strings.HasPrefix(clean, "(") && strings.HasSuffix(clean, ")") {
		clean = strings.TrimSuffix(strings.TrimPrefix(clean, "("), ")")
		negative = true
	}

	if c.config.StripCurrency {
		for _, symbol := range []string{"$", "€", "£", "¥", "USD", "EUR", "GBP", "JPY"} {
			clean = strings.ReplaceAll(clean, symbol, "")
		}
	}
	clean = strings.TrimSpace(strings.ReplaceAll(clean, "%", ""))

	hasComma := strings.Contains(clean, ",")
	hasPeriod := strings.Contains(clean, ".")
	hasSpace := strings.Contains(clean, " ")

	switch {
	case hasComma && (hasPeriod || hasSpace):
		// 1.234,56 and 1 234,56 use the comma as decimal separator
		commaIdx := strings.LastIndex(clean, ",")
		if len(clean[commaIdx+1:]) <= 3 && strings.LastIndex(clean, ".") < commaIdx {
			clean = strings.ReplaceAll(clean, ".", "")
			clean = strings.ReplaceAll(clean, " ", "")
			clean = strings.ReplaceAll(clean, ",", ".")
		} else {
			clean = strings.ReplaceAll(clean, ",", "")
			clean = strings.ReplaceAll(clean, " ", "")
		}
	case hasComma && c.config.DecimalComma && strings.Count(clean, ",") == 1:
		clean = strings.ReplaceAll(clean, ",", ".")
	default:
		clean = strings.ReplaceAll(clean, ",", "")
		clean = strings.ReplaceAll(clean, " ", "")
	}

	if negative {
		clean = "-" + clean
	}

	v, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return 0, false, true
		}
		return 0, false, false
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, false, true
	}
	return v, true, false
}

var whitespace = regexp.MustCompile(`\s+`)

// normalizeString applies deterministic string normalization
func normalizeString(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = whitespace.ReplaceAllString(s, " ")
	return strings.Map(func(r rune) rune {
		if r < 32 || r == 127 {
			return -1
		}
		return r
	}, s)
}

// TableFromRows builds a table from a header row and string records.
// Headers are trimmed; records shorter than the header leave cells missing
// and extra fields are dropped.
func (c *TypeCoercer) TableFromRows(header []string, records [][]string) *dataset.Table {
	columns := make([]string, len(header))
	for i, h := range header {
		columns[i] = strings.TrimSpace(h)
	}

	table := &dataset.Table{Columns: columns, Rows: make([]dataset.Row, 0, len(records))}
	for _, record := range records {
		row := make(dataset.Row, len(columns))
		for j, col := range columns {
			if j < len(record) {
				row[col] = c.CoerceString(record[j])
			} else {
				row[col] = dataset.MissingCell()
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

// TableFromRecords builds a table from decoded JSON-like records. Columns come
// from the keys of the first record, sorted so the order is reproducible.
func (c *TypeCoercer) TableFromRecords(records []map[string]interface{}) *dataset.Table {
	table := &dataset.Table{}
	if len(records) == 0 {
		return table
	}

	for key := range records[0] {
		table.Columns = append(table.Columns, key)
	}
	sort.Strings(table.Columns)

	table.Rows = make([]dataset.Row, 0, len(records))
	for _, record := range records {
		row := make(dataset.Row, len(record))
		for key, raw := range record {
			row[key] = c.CoerceValue(raw)
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}
