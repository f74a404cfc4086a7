package dataset

import (
	"math"
)

// CellKind tags the outcome of parsing one raw cell.
type CellKind string

const (
	CellNumber       CellKind = "number"
	CellText         CellKind = "text"
	CellParseFailure CellKind = "parse_failure" // looked numeric but was NaN, ±Inf or out of range
	CellMissing      CellKind = "missing"
)

// Cell is a typed value in a dataset. Number is only meaningful when Kind is CellNumber.
type Cell struct {
	Kind   CellKind `json:"kind"`
	Number float64  `json:"number,omitempty"`
	Raw    string   `json:"raw,omitempty"`
}

// NumberCell creates a numeric cell. Non-finite input becomes a parse failure.
func NumberCell(v float64) Cell {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Cell{Kind: CellParseFailure}
	}
	return Cell{Kind: CellNumber, Number: v}
}

func TextCell(s string) Cell {
	if s == "" {
		return MissingCell()
	}
	return Cell{Kind: CellText, Raw: s}
}

func ParseFailureCell(raw string) Cell {
	return Cell{Kind: CellParseFailure, Raw: raw}
}

func MissingCell() Cell {
	return Cell{Kind: CellMissing}
}

// Float returns the numeric value and whether the cell holds one.
func (c Cell) Float() (float64, bool) {
	if c.Kind != CellNumber {
		return 0, false
	}
	return c.Number, true
}

// Row maps column name to cell.
type Row map[string]Cell

// Table is a loaded dataset. Columns keeps header order; every row may omit columns.
type Table struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
}

// HasColumn reports whether name is one of the table's columns.
func (t *Table) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// NumericColumn returns the numeric cells of a column in row order,
// silently dropping text, missing and unparseable cells.
func (t *Table) NumericColumn(name string) []float64 {
	values := make([]float64, 0, len(t.Rows))
	for _, row := range t.Rows {
		if v, ok := row[name].Float(); ok {
			values = append(values, v)
		}
	}
	return values
}

// NumericColumns lists the columns with at least one numeric cell, in header order.
func (t *Table) NumericColumns() []string {
	var out []string
	for _, c := range t.Columns {
		for _, row := range t.Rows {
			if _, ok := row[c].Float(); ok {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// ItemColumn returns one value per row for a questionnaire item. Cells that
// are missing or not numeric contribute 0 so the result always has len(Rows).
func (t *Table) ItemColumn(name string) []float64 {
	values := make([]float64, len(t.Rows))
	for i, row := range t.Rows {
		if v, ok := row[name].Float(); ok {
			values[i] = v
		}
	}
	return values
}
