package dataset

import (
	"strconv"
	"strings"

	"gocorr/domain/core"
)

// Fingerprint hashes the header and every cell in header order, so two
// tables with the same content share a fingerprint regardless of how they
// were loaded. Reports carry it to tie results to the data they came from.
func (t *Table) Fingerprint() core.Hash {
	var b strings.Builder
	b.WriteString(strings.Join(t.Columns, "\x1f"))
	b.WriteByte('\n')
	for _, row := range t.Rows {
		for i, column := range t.Columns {
			if i > 0 {
				b.WriteByte('\x1f')
			}
			cell, ok := row[column]
			if !ok {
				cell = MissingCell()
			}
			b.WriteString(string(cell.Kind))
			b.WriteByte(':')
			if cell.Kind == CellNumber {
				b.WriteString(strconv.FormatFloat(cell.Number, 'g', -1, 64))
			} else {
				b.WriteString(cell.Raw)
			}
		}
		b.WriteByte('\n')
	}
	return core.NewHash([]byte(b.String()))
}
