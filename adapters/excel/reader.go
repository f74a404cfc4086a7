package excel

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gocorr/adapters/datareadiness/coercer"
	"gocorr/domain/core"
	"gocorr/domain/dataset"
	"gocorr/internal"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	config   ReaderConfig
	coercer  *coercer.TypeCoercer
	logger   *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string, config ReaderConfig) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" || ext == ".txt" {
		fileType = "csv"
	}
	if config.Sheet == "" {
		config.Sheet = DefaultSheet
	}
	return &DataReader{
		filePath: filePath,
		fileType: fileType,
		config:   config,
		coercer:  coercer.NewTypeCoercer(config.Coercion),
		logger:   internal.DefaultLogger,
	}
}

// ReadTable reads the whole file into a typed table
func (r *DataReader) ReadTable() (*dataset.Table, error) {
	r.logger.Info("[DataReader] Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, fmt.Errorf("%s file not found: %s", strings.ToUpper(r.fileType), r.filePath)
	}

	switch r.fileType {
	case "csv":
		file, err := os.Open(r.filePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open CSV file: %w", err)
		}
		defer file.Close()
		return ReadCSV(file, r.config.Coercion)
	default:
		return r.readExcelData()
	}
}

// readExcelData reads the configured sheet. Short rows are padded with
// missing cells since excelize drops trailing empty cells.
func (r *DataReader) readExcelData() (*dataset.Table, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(r.config.Sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", r.config.Sheet, err)
	}
	r.logger.Debug("[DataReader] %s read in %.2fms (%d rows)",
		r.config.Sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))

	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: Excel file must have a header row and at least one data row", core.ErrEmptyDataset)
	}

	table := r.coercer.TableFromRows(rows[0], rows[1:])
	r.logger.Info("[DataReader] XLSX file processed (%d columns, %d rows)", len(table.Columns), len(table.Rows))
	return table, nil
}

// DetectDelimiter returns ';' when the header line contains one, ',' otherwise.
func DetectDelimiter(headerLine string) rune {
	if strings.Contains(headerLine, ";") {
		return ';'
	}
	return ','
}

// ReadCSV parses CSV text with a header row. The delimiter is detected from
// the header; quoted fields follow RFC 4180. Records whose field count differs
// from the header are skipped.
func ReadCSV(src io.Reader, config coercer.CoercionConfig) (*dataset.Table, error) {
	data, err := io.ReadAll(src)
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV data: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	header := string(data)
	if idx := strings.IndexByte(header, '\n'); idx >= 0 {
		header = header[:idx]
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = DetectDelimiter(header)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV data: %w", err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%w: CSV must have a header row and at least one data row", core.ErrEmptyDataset)
	}

	records := make([][]string, 0, len(rows)-1)
	skipped := 0
	for _, row := range rows[1:] {
		if len(row) != len(rows[0]) {
			skipped++
			continue
		}
		records = append(records, row)
	}
	if skipped > 0 {
		internal.DefaultLogger.Warn("[DataReader] skipped %d CSV rows with a field count different from the header", skipped)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no CSV row matches the header", core.ErrEmptyDataset)
	}

	table := coercer.NewTypeCoercer(config).TableFromRows(rows[0], records)
	internal.DefaultLogger.Info("[DataReader] CSV data processed (%d columns, %d rows)", len(table.Columns), len(table.Rows))
	return table, nil
}
