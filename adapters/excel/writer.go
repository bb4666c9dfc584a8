package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"datacleaner/domain/table"
	"datacleaner/internal"
	"datacleaner/internal/errors"

	"github.com/xuri/excelize/v2"
)

// Spreadsheet number formats matching table.DateLayout and table.DateTimeLayout
const (
	excelDateFormat     = "yyyy-mm-dd"
	excelDateTimeFormat = "yyyy-mm-dd hh:mm:ss"
)

// DataWriter serializes tables to CSV or Excel files
type DataWriter struct {
	config WriterConfig
	logger *internal.Logger
}

// NewDataWriter creates a writer for both formats
func NewDataWriter(config WriterConfig, logger *internal.Logger) *DataWriter {
	if config.SheetName == "" {
		config.SheetName = DefaultSheetName
	}
	return &DataWriter{config: config, logger: logger}
}

// CheckPath fails with UNSUPPORTED_FORMAT when path has no writable format
func (w *DataWriter) CheckPath(path string) error {
	_, err := FormatFromPath(path)
	return err
}

// WriteTable writes t to path. The file is staged next to the destination
// and renamed into place, so a failed write leaves nothing behind.
func (w *DataWriter) WriteTable(ctx context.Context, path string, t *table.Table) error {
	format, err := FormatFromPath(path)
	if err != nil {
		w.logger.Error("Cannot write %s: %v", path, err)
		return err
	}
	if err := ctx.Err(); err != nil {
		return errors.WriteError(path, err)
	}
	if format == FormatSpreadsheet && isLegacyWorkbook(path) {
		w.logger.Warn("Writing an OOXML workbook to legacy extension: %s", path)
	}

	if err := w.writeAtomic(path, func(out io.Writer) error {
		switch format {
		case FormatCSV:
			return writeCSV(out, t)
		case FormatSpreadsheet:
			return w.writeExcel(out, t)
		}
		return fmt.Errorf("unsupported file type: %s", format)
	}); err != nil {
		w.logger.Error("Failed to save data: %v", err)
		return errors.WriteError(path, err)
	}

	w.logger.Debug("[DataWriter] wrote %s file %s (%d columns, %d rows)", format, path, t.NumColumns(), t.NumRows())
	return nil
}

func (w *DataWriter) writeAtomic(path string, write func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary file: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	return nil
}

func writeCSV(out io.Writer, t *table.Table) error {
	cw := csv.NewWriter(out)
	if err := cw.Write(t.ColumnNames()); err != nil {
		return err
	}

	columns := t.Columns()
	layouts := make([]string, len(columns))
	for j, col := range columns {
		layouts[j] = table.DateLayoutFor(col.Cells)
	}

	record := make([]string, len(columns))
	for i := 0; i < t.NumRows(); i++ {
		for j, col := range columns {
			record[j] = col.Cells[i].Format(layouts[j])
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (w *DataWriter) writeExcel(out io.Writer, t *table.Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := w.config.SheetName
	if sheet != DefaultSheetName {
		if err := f.SetSheetName(DefaultSheetName, sheet); err != nil {
			return fmt.Errorf("failed to name sheet %q: %w", sheet, err)
		}
	}

	header := make([]interface{}, t.NumColumns())
	for j, name := range t.ColumnNames() {
		header[j] = name
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return err
	}

	columns := t.Columns()
	for i := 0; i < t.NumRows(); i++ {
		values := make([]interface{}, len(columns))
		for j, col := range columns {
			values[j] = excelValue(col.Cells[i])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return err
		}
	}

	if t.NumRows() > 0 {
		for j, col := range columns {
			if col.Type != table.TypeDateTime {
				continue
			}
			if err := styleDateColumn(f, sheet, j+1, t.NumRows(), col.Cells); err != nil {
				return err
			}
		}
	}

	_, err := f.WriteTo(out)
	return err
}

func excelValue(c table.Cell) interface{} {
	if c.IsNull() {
		return nil
	}
	switch c.Type {
	case table.CellNumber:
		return c.Number
	case table.CellDateTime:
		return c.Time.UTC()
	}
	return c.Text
}

func styleDateColumn(f *excelize.File, sheet string, col, rows int, cells []table.Cell) error {
	numFmt := excelDateFormat
	if table.DateLayoutFor(cells) == table.DateTimeLayout {
		numFmt = excelDateTimeFormat
	}
	style, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		return err
	}
	top, err := excelize.CoordinatesToCellName(col, 2)
	if err != nil {
		return err
	}
	bottom, err := excelize.CoordinatesToCellName(col, rows+1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, top, bottom, style)
}
