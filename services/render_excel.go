package services

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"
)

// RenderExcel writes a Layout to a spreadsheet, mirroring the PDF's
// alignment and emphasis rules. Offered as an alternative download for the
// summary report.
func RenderExcel(l *Layout, sheetName string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if len(sheetName) > 31 {
		sheetName = sheetName[:31]
	}
	if sheetName == "" {
		sheetName = "Report"
	}
	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return nil, NewRenderError("set sheet name", err)
	}

	colCount := len(l.GridWidths)
	for i, w := range l.GridWidths {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return nil, NewRenderError("column name", err)
		}
		// Grid units are twelfths of the page; 4 characters per unit reads
		// well for these tables.
		if err := f.SetColWidth(sheetName, name, name, float64(w)*4+6); err != nil {
			return nil, NewRenderError("set column width", err)
		}
	}

	styles, err := newExcelStyles(f)
	if err != nil {
		return nil, err
	}

	rowNum := 0
	for _, b := range l.Blocks {
		rowNum++
		if b.Kind == BlockSpacer || len(b.Cells) == 0 {
			continue
		}

		// Full-width blocks merge across the table.
		if len(b.Cells) != colCount {
			if err := writeMergedRow(f, sheetName, rowNum, colCount, b, styles); err != nil {
				return nil, err
			}
			continue
		}

		for i, c := range b.Cells {
			cellRef, err := excelize.CoordinatesToCellName(i+1, rowNum)
			if err != nil {
				return nil, NewRenderError("cell reference", err)
			}
			if err := f.SetCellValue(sheetName, cellRef, c.Text); err != nil {
				return nil, NewRenderError("set cell value", err)
			}
			if err := f.SetCellStyle(sheetName, cellRef, cellRef, styles.pick(c)); err != nil {
				return nil, NewRenderError("set cell style", err)
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, NewRenderError("write workbook", err)
	}
	return buf.Bytes(), nil
}

func writeMergedRow(f *excelize.File, sheet string, rowNum, colCount int, b Block, styles excelStyles) error {
	first, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return NewRenderError("cell reference", err)
	}
	last, err := excelize.CoordinatesToCellName(colCount, rowNum)
	if err != nil {
		return NewRenderError("cell reference", err)
	}
	if err := f.MergeCell(sheet, first, last); err != nil {
		return NewRenderError("merge cells", err)
	}

	// Merged blocks keep only their first cell's text; multi-cell banners
	// are joined so nothing is dropped.
	text := b.Cells[0].Text
	for _, c := range b.Cells[1:] {
		if c.Text != "" {
			text = fmt.Sprintf("%s    %s", text, c.Text)
		}
	}
	if err := f.SetCellValue(sheet, first, text); err != nil {
		return NewRenderError("set cell value", err)
	}

	style := styles.pick(b.Cells[0])
	if b.Kind == BlockTitle {
		style = styles.title
	}
	if err := f.SetCellStyle(sheet, first, last, style); err != nil {
		return NewRenderError("set cell style", err)
	}
	return nil
}

type excelStyles struct {
	title     int
	left      int
	right     int
	boldLeft  int
	boldRight int
}

func (s excelStyles) pick(c Cell) int {
	switch {
	case c.Bold && c.Align == AlignRight:
		return s.boldRight
	case c.Bold:
		return s.boldLeft
	case c.Align == AlignRight:
		return s.right
	default:
		return s.left
	}
}

func newExcelStyles(f *excelize.File) (excelStyles, error) {
	var s excelStyles
	var err error

	s.title, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 16},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return s, NewRenderError("create style", err)
	}
	s.left, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left"},
	})
	if err != nil {
		return s, NewRenderError("create style", err)
	}
	s.right, err = f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return s, NewRenderError("create style", err)
	}
	s.boldLeft, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "left"},
	})
	if err != nil {
		return s, NewRenderError("create style", err)
	}
	s.boldRight, err = f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true},
		Alignment: &excelize.Alignment{Horizontal: "right"},
	})
	if err != nil {
		return s, NewRenderError("create style", err)
	}
	return s, nil
}
