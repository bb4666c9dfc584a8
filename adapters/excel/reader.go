package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"datacleaner/adapters/datareadiness/coercer"
	"datacleaner/domain/table"
	"datacleaner/internal"
	"datacleaner/internal/errors"

	"github.com/xuri/excelize/v2"
)

// DataReader handles reading Excel and CSV files
type DataReader struct {
	config  ReaderConfig
	coercer *coercer.TypeCoercer
	logger  *internal.Logger
}

// NewDataReader creates a reader that handles both Excel and CSV files
func NewDataReader(config ReaderConfig, logger *internal.Logger) *DataReader {
	return &DataReader{
		config:  config,
		coercer: coercer.NewTypeCoercer(config.CoercionConfig),
		logger:  logger,
	}
}

// ReadTable loads the file at path into a typed table
func (r *DataReader) ReadTable(ctx context.Context, path string) (*table.Table, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.ReadError(path, err)
	}

	format, err := FormatFromPath(path)
	if err != nil {
		r.logger.Error("Cannot read %s: %v", path, err)
		return nil, err
	}

	raw, err := r.ReadData(path, format)
	if err != nil {
		r.logger.Error("Failed to read file: %v", err)
		return nil, errors.ReadError(path, err)
	}

	t := table.New()
	for j, header := range raw.Headers {
		values := make([]string, len(raw.Rows))
		for i, row := range raw.Rows {
			values[i] = row[j]
		}
		typ, cells, analysis := r.coercer.BuildColumn(values)
		r.logger.Debug("[DataReader] column %q typed %s (%d nulls, %d numeric of %d)",
			header, typ, analysis.NullCount, analysis.NumericCount, analysis.TotalCount)
		if err := t.AddColumn(header, typ, cells); err != nil {
			return nil, errors.ReadError(path, err)
		}
	}
	return t, nil
}

// ReadData reads the raw header and rows of a file
func (r *DataReader) ReadData(path string, format Format) (*RawData, error) {
	r.logger.Debug("[DataReader] Starting to read %s file: %s", format, path)

	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%s file not accessible: %w", strings.ToUpper(format.String()), err)
	}

	switch format {
	case FormatCSV:
		return r.readCSVData(path)
	case FormatSpreadsheet:
		return r.readExcelData(path)
	default:
		return nil, fmt.Errorf("unsupported file type: %s", format)
	}
}

// readExcelData reads the configured sheet, or the first one
func (r *DataReader) readExcelData(path string) (*RawData, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(path)
	if err != nil {
		if isLegacyWorkbook(path) {
			return nil, fmt.Errorf("failed to open Excel file (legacy binary .xls is not supported): %w", err)
		}
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	defer f.Close()
	r.logger.Debug("[DataReader] Excel file opened in %.2fms", float64(time.Since(startTime).Nanoseconds())/1e6)

	sheet := r.config.SheetName
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("workbook has no sheets")
		}
		sheet = sheets[0]
	}

	readStart := time.Now()
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	stored, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	if err := useStoredNumbers(f, sheet, rows, stored); err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheet, err)
	}
	r.logger.Debug("[DataReader] sheet %q read in %.2fms (%d rows)",
		sheet, float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	// Blank rows carry no data; the CSV reader skips them too.
	nonEmpty := rows[:0]
	for _, row := range rows {
		if !isBlankRow(row) {
			nonEmpty = append(nonEmpty, row)
		}
	}
	if len(nonEmpty) == 0 {
		return nil, fmt.Errorf("sheet %q has no header row", sheet)
	}

	width := 0
	for _, row := range nonEmpty {
		if len(row) > width {
			width = len(row)
		}
	}
	return r.processRows(nonEmpty, width)
}

// readCSVData reads CSV data into structured format
func (r *DataReader) readCSVData(path string) (*RawData, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	readStart := time.Now()
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV file: %w", err)
	}
	r.logger.Debug("[DataReader] CSV file read in %.2fms (%d rows)",
		float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))

	if len(rows) == 0 {
		return nil, fmt.Errorf("CSV file has no header row")
	}
	rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")

	width := len(rows[0])
	for i, row := range rows[1:] {
		if len(row) > width {
			return nil, fmt.Errorf("CSV line %d: expected %d fields, saw %d", i+2, width, len(row))
		}
	}
	return r.processRows(rows, width)
}

// processRows builds unique headers and pads every data row to width
func (r *DataReader) processRows(rows [][]string, width int) (*RawData, error) {
	headers := uniqueHeaders(rows[0], width)

	dataRows := make([][]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		padded := make([]string, width)
		copy(padded, row)
		dataRows = append(dataRows, padded)
	}

	r.logger.Debug("[DataReader] file processed (%d columns, %d rows)", len(headers), len(dataRows))

	return &RawData{
		Headers: headers,
		Rows:    dataRows,
	}, nil
}

// uniqueHeaders trims names, names blanks "Unnamed: i" and suffixes
// repeats with ".1", ".2", ...
func uniqueHeaders(headerRow []string, width int) []string {
	headers := make([]string, width)
	seen := make(map[string]bool, width)
	for i := 0; i < width; i++ {
		name := ""
		if i < len(headerRow) {
			name = strings.TrimSpace(headerRow[i])
		}
		if name == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		candidate := name
		for n := 1; seen[candidate]; n++ {
			candidate = name + "." + strconv.Itoa(n)
		}
		seen[candidate] = true
		headers[i] = candidate
	}
	return headers
}

// useStoredNumbers replaces the display text of numeric cells with the
// stored value, which keeps full precision. Date-formatted cells keep their
// display text.
func useStoredNumbers(f *excelize.File, sheet string, rows, stored [][]string) error {
	dateStyles := make(map[int]bool)
	for i, row := range rows {
		if i >= len(stored) {
			break
		}
		for j, shown := range row {
			if j >= len(stored[i]) {
				break
			}
			value := stored[i][j]
			if value == shown {
				continue
			}
			if _, err := strconv.ParseFloat(value, 64); err != nil {
				continue
			}

			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			typ, err := f.GetCellType(sheet, cell)
			if err != nil {
				return err
			}
			if typ != excelize.CellTypeUnset && typ != excelize.CellTypeNumber {
				continue
			}
			styleID, err := f.GetCellStyle(sheet, cell)
			if err != nil {
				return err
			}
			isDate, seen := dateStyles[styleID]
			if !seen {
				if isDate, err = isDateStyle(f, styleID); err != nil {
					return err
				}
				dateStyles[styleID] = isDate
			}
			if !isDate {
				row[j] = value
			}
		}
	}
	return nil
}

// builtinDateFormats are the built-in number format ids that render dates or times
var builtinDateFormats = map[int]bool{
	14: true, 15: true, 16: true, 17: true, 18: true, 19: true, 20: true, 21: true, 22: true,
	27: true, 28: true, 29: true, 30: true, 31: true, 32: true, 33: true, 34: true, 35: true, 36: true,
	45: true, 46: true, 47: true,
	50: true, 51: true, 52: true, 53: true, 54: true, 55: true, 56: true, 57: true, 58: true,
}

func isDateStyle(f *excelize.File, styleID int) (bool, error) {
	style, err := f.GetStyle(styleID)
	if err != nil {
		return false, err
	}
	if style.CustomNumFmt != nil {
		return isDateFormatCode(*style.CustomNumFmt), nil
	}
	return builtinDateFormats[style.NumFmt], nil
}

// isDateFormatCode reports whether a format code has date or time tokens
// outside quoted literals, escapes and bracketed colors or locales.
func isDateFormatCode(code string) bool {
	code = strings.ToLower(code)
	for i := 0; i < len(code); i++ {
		switch ch := code[i]; ch {
		case '\\':
			i++
		case '"':
			for i++; i < len(code) && code[i] != '"'; i++ {
			}
		case '[':
			end := strings.IndexByte(code[i:], ']')
			if end < 0 {
				return false
			}
			// [h], [mm], [ss] are elapsed-time tokens
			if inner := code[i+1 : i+end]; inner != "" && strings.Trim(inner, "hms") == "" {
				return true
			}
			i += end
		case 'y', 'm', 'd', 'h', 's':
			return true
		}
	}
	return false
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
