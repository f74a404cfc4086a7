// Package profiler summarizes how cleanly each dataset column parsed, so
// callers can spot columns that will silently lose rows in an analysis.
package profiler

import (
	"math"

	"gocorr/domain/dataset"
)

// InferredType is the dominant kind of a column's non-missing cells
type InferredType string

const (
	TypeNumeric InferredType = "numeric"
	TypeText    InferredType = "text"
	TypeMixed   InferredType = "mixed"
	TypeEmpty   InferredType = "empty"
)

// numericThreshold is the share of non-missing cells that must be numbers
// for a column to count as numeric.
const numericThreshold = 0.8

// ColumnProfile counts the cell kinds of one column
type ColumnProfile struct {
	Column        string       `json:"column"`
	Rows          int          `json:"rows"`
	Numeric       int          `json:"numeric"`
	Text          int          `json:"text"`
	Missing       int          `json:"missing"`
	ParseFailures int          `json:"parse_failures"`
	InferredType  InferredType `json:"inferred_type"`
	Completeness  float64      `json:"completeness"`
}

// Usable is the number of rows an analysis of this column can use
func (p ColumnProfile) Usable() int {
	return p.Numeric
}

// ProfileTable profiles every column in header order
func ProfileTable(table *dataset.Table) []ColumnProfile {
	profiles := make([]ColumnProfile, len(table.Columns))
	for i, column := range table.Columns {
		profiles[i] = profileColumn(table, column)
	}
	return profiles
}

func profileColumn(table *dataset.Table, column string) ColumnProfile {
	p := ColumnProfile{Column: column, Rows: len(table.Rows)}
	for _, row := range table.Rows {
		cell, ok := row[column]
		if !ok {
			p.Missing++
			continue
		}
		switch cell.Kind {
		case dataset.CellNumber:
			p.Numeric++
		case dataset.CellText:
			p.Text++
		case dataset.CellParseFailure:
			p.ParseFailures++
		default:
			p.Missing++
		}
	}

	p.InferredType = inferType(p)
	if p.Rows > 0 {
		p.Completeness = math.Max(0, 1-float64(p.Missing)/float64(p.Rows))
	}
	return p
}

func inferType(p ColumnProfile) InferredType {
	present := p.Numeric + p.Text + p.ParseFailures
	if present == 0 {
		return TypeEmpty
	}
	share := float64(p.Numeric) / float64(present)
	switch {
	case share > numericThreshold:
		return TypeNumeric
	case p.Numeric == 0:
		return TypeText
	default:
		return TypeMixed
	}
}
