package services

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/extrame/xls"
	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

// maxXLSRows bounds legacy .xls reads; practical report inputs are far
// smaller.
const maxXLSRows = 100000

// RawRow is one spreadsheet row before typing, keyed by column name. Values
// stay text so leading zeros in identifiers survive until normalization.
type RawRow map[string]string

// RawTable is the first sheet of an uploaded workbook: ordered headers plus
// untyped rows.
type RawTable struct {
	Columns []string
	Rows    []RawRow
}

// HasColumn reports whether the sheet carried the named column.
func (t *RawTable) HasColumn(name string) bool {
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// ReadWorkbook parses the first sheet of an uploaded spreadsheet into a
// RawTable. The format is chosen by file extension: .xls goes through the
// legacy BIFF reader, everything else through excelize.
func ReadWorkbook(r io.Reader, filename string) (*RawTable, error) {
	var (
		grid [][]string
		err  error
	)
	if strings.EqualFold(filepath.Ext(filename), ".xls") {
		grid, err = readXLS(r)
	} else {
		grid, err = readXLSX(r)
	}
	if err != nil {
		return nil, NewParseError("unable to read spreadsheet").
			WithDetail("file", filename).
			WithDetail("cause", err.Error())
	}

	table := gridToTable(grid)
	logrus.WithFields(logrus.Fields{
		"file":    filename,
		"columns": len(table.Columns),
		"rows":    len(table.Rows),
	}).Info("spreadsheet read")
	return table, nil
}

func readXLSX(r io.Reader) ([][]string, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := f.GetSheetName(0)
	return f.GetRows(sheet)
}

func readXLS(r io.Reader) ([][]string, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	wb, err := xls.OpenReader(bytes.NewReader(raw), "utf-8")
	if err != nil {
		return nil, err
	}
	return wb.ReadAllCells(maxXLSRows), nil
}

// gridToTable turns the header row plus data rows into a RawTable. Header
// names are trimmed of surrounding whitespace; short rows are padded with
// empty cells.
func gridToTable(grid [][]string) *RawTable {
	if len(grid) == 0 {
		return &RawTable{}
	}

	headers := make([]string, len(grid[0]))
	for i, h := range grid[0] {
		headers[i] = strings.TrimSpace(h)
	}

	rows := make([]RawRow, 0, len(grid)-1)
	for _, line := range grid[1:] {
		row := make(RawRow, len(headers))
		for i, name := range headers {
			if name == "" {
				continue
			}
			if i < len(line) {
				row[name] = line[i]
			} else {
				row[name] = ""
			}
		}
		rows = append(rows, row)
	}
	return &RawTable{Columns: headers, Rows: rows}
}
