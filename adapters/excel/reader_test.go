package excel

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"datacleaner/domain/table"
	"datacleaner/internal"
	"datacleaner/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestReader() *DataReader {
	return NewDataReader(DefaultReaderConfig(), internal.NopLogger())
}

func TestReadCSV(t *testing.T) {
	path := writeFile(t, "in.csv", "\ufeffid,name, score \n1,a,2.5\n1,a,\n2,,NA\n")

	tbl, err := newTestReader().ReadTable(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "name", "score"}, tbl.ColumnNames())
	assert.Equal(t, 3, tbl.NumRows())

	id, _ := tbl.Column("id")
	assert.Equal(t, table.TypeNumeric, id.Type)

	name, _ := tbl.Column("name")
	assert.Equal(t, table.TypeText, name.Type)
	assert.True(t, name.Cells[2].IsNull())

	score, _ := tbl.Column("score")
	assert.Equal(t, table.TypeNumeric, score.Type)
	assert.Equal(t, 2, score.NullCount())
}

func TestReadCSVPadsShortRowsAndMangleHeaders(t *testing.T) {
	path := writeFile(t, "in.csv", "a,a,,b\n1,2\n")

	tbl, err := newTestReader().ReadTable(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "a.1", "Unnamed: 2", "b"}, tbl.ColumnNames())

	b, _ := tbl.Column("b")
	assert.True(t, b.Cells[0].IsNull())
}

func TestReadCSVHeaderOnly(t *testing.T) {
	path := writeFile(t, "in.csv", "id,name\n")

	tbl, err := newTestReader().ReadTable(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 0, tbl.NumRows())
	assert.Equal(t, 2, tbl.NumColumns())
}

func TestReadErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		path string
		code string
	}{
		{"missing file", filepath.Join(dir, "absent.csv"), errors.CodeReadError},
		{"empty csv", writeFile(t, "empty.csv", ""), errors.CodeReadError},
		{"row wider than header", writeFile(t, "wide.csv", "a,b\n1,2,3\n"), errors.CodeReadError},
		{"bad quoting", writeFile(t, "quote.csv", "a,b\n\"1,2\n3\"x,4\n"), errors.CodeReadError},
		{"not a workbook", writeFile(t, "fake.xlsx", "plain text"), errors.CodeReadError},
		{"legacy xls", writeFile(t, "old.xls", "\xd0\xcf\x11\xe0"), errors.CodeReadError},
		{"unsupported extension", writeFile(t, "notes.txt", "a,b\n"), errors.CodeUnsupportedFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestReader().ReadTable(context.Background(), tt.path)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err))
		})
	}
}

func TestReadCanceledContext(t *testing.T) {
	path := writeFile(t, "in.csv", "a\n1\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestReader().ReadTable(ctx, path)
	assert.True(t, errors.HasCode(err, errors.CodeReadError))
}

func TestReadExcelFirstSheetAndBlankRows(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetName("Sheet1", "Orders"))
	require.NoError(t, f.SetSheetRow("Orders", "A1", &[]interface{}{"id", "city"}))
	require.NoError(t, f.SetSheetRow("Orders", "A2", &[]interface{}{1, "Paris"}))
	require.NoError(t, f.SetSheetRow("Orders", "A4", &[]interface{}{2}))
	_, err := f.NewSheet("Other")
	require.NoError(t, err)
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	tbl, err := newTestReader().ReadTable(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "city"}, tbl.ColumnNames())
	assert.Equal(t, 2, tbl.NumRows())

	city, _ := tbl.Column("city")
	assert.True(t, city.Cells[0].Equal(table.NewTextCell("Paris")))
	assert.True(t, city.Cells[1].IsNull())
}

func TestReadExcelNamedSheet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.xlsx")
	f := excelize.NewFile()
	_, err := f.NewSheet("Second")
	require.NoError(t, err)
	require.NoError(t, f.SetSheetRow("Second", "A1", &[]interface{}{"v"}))
	require.NoError(t, f.SetSheetRow("Second", "A2", &[]interface{}{"x"}))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	cfg := DefaultReaderConfig()
	cfg.SheetName = "Second"
	tbl, err := NewDataReader(cfg, internal.NopLogger()).ReadTable(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, []string{"v"}, tbl.ColumnNames())

	cfg.SheetName = "Missing"
	_, err = NewDataReader(cfg, internal.NopLogger()).ReadTable(context.Background(), path)
	assert.True(t, errors.HasCode(err, errors.CodeReadError))
}

func TestReadExcelStyledCells(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.xlsx")
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"rate", "due"}))
	require.NoError(t, f.SetCellValue("Sheet1", "A2", 0.125))
	require.NoError(t, f.SetCellValue("Sheet1", "B2", 45292))
	percent, err := f.NewStyle(&excelize.Style{NumFmt: 10})
	require.NoError(t, err)
	dateFmt := "dd/mm/yyyy"
	date, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
	require.NoError(t, err)
	require.NoError(t, f.SetCellStyle("Sheet1", "A2", "A2", percent))
	require.NoError(t, f.SetCellStyle("Sheet1", "B2", "B2", date))
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	tbl, err := newTestReader().ReadTable(context.Background(), path)
	require.NoError(t, err)
	rate, _ := tbl.Column("rate")
	assert.True(t, rate.Cells[0].Equal(table.NewNumberCell(0.125)), "got %v", rate.Cells[0])
	due, _ := tbl.Column("due")
	assert.True(t, due.Cells[0].Equal(table.NewTextCell("01/01/2024")), "got %v", due.Cells[0])
}

func TestIsDateFormatCode(t *testing.T) {
	tests := []struct {
		code string
		want bool
	}{
		{"yyyy-mm-dd", true},
		{"hh:mm:ss", true},
		{"[h]:mm", true},
		{"[$-409]mmm d", true},
		{"0.00%", false},
		{"#,##0.00", false},
		{"[Red]#,##0", false},
		{`0 "days"`, false},
		{`0\d`, false},
		{"General", false},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, isDateFormatCode(tt.code))
		})
	}
}
