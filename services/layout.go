package services

import (
	"fmt"
	"sort"
	"time"
)

// Alignment of one cell's text.
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignRight  Alignment = "right"
	AlignCenter Alignment = "center"
)

// BlockKind tags each layout block so the renderer can pick heights and
// styling without re-deriving report semantics.
type BlockKind string

const (
	BlockTitle        BlockKind = "title"
	BlockFilterBanner BlockKind = "filterBanner"
	BlockHeader       BlockKind = "header"
	BlockGroupHeader  BlockKind = "groupHeader"
	BlockDataRow      BlockKind = "dataRow"
	BlockTotalRow     BlockKind = "totalRow"
	BlockGrandTotal   BlockKind = "grandTotal"
	BlockSpacer       BlockKind = "spacer"
)

// Cell is one formatted table cell.
type Cell struct {
	Text  string
	Align Alignment
	Bold  bool
}

// Block is one abstract report row. A block whose cell count differs from
// the column count (typically a single cell) spans the full page width.
type Block struct {
	Kind  BlockKind
	Cells []Cell
}

// Layout is the engine-agnostic description of a paginated report: the
// ordered block sequence plus the geometry the renderer needs. The first
// RepeatBlocks blocks form the header that repeats on every page.
type Layout struct {
	PageSize     string
	GridWidths   []int
	RepeatBlocks int
	Blocks       []Block
}

// SummaryMeta is the scalar metadata echoed in the summary report header.
type SummaryMeta struct {
	CompanyTitle  string
	ProjectNumber string
	AsOf          time.Time
}

// BuildSummaryLayout converts an aggregated summary into the block sequence
// of the grouped report: a six-row repeated header, per-group sections
// ordered by minimum cost code, and one grand-total block. Deterministic for
// identical inputs.
func BuildSummaryLayout(s *Summary, meta SummaryMeta, v ReportVariant) *Layout {
	l := &Layout{
		PageSize:     v.PageSize,
		GridWidths:   v.GridWidths,
		RepeatBlocks: 6,
	}

	l.add(BlockTitle, Cell{Text: meta.CompanyTitle, Align: AlignCenter, Bold: true})
	l.add(BlockSpacer)
	l.add(BlockFilterBanner,
		Cell{Text: "Project Number: " + meta.ProjectNumber, Align: AlignLeft, Bold: true},
		Cell{Text: "As of: " + meta.AsOf.Format("02-Jan-2006"), Align: AlignRight, Bold: true},
	)
	l.add(BlockSpacer)
	l.add(BlockHeader, headerCells(v)...)
	l.add(BlockSpacer)

	groups := make([]SummaryGroup, len(s.Groups))
	copy(groups, s.Groups)
	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].MinCostCode() < groups[j].MinCostCode()
	})

	for _, g := range groups {
		l.add(BlockGroupHeader, Cell{Text: g.Name, Align: AlignLeft, Bold: true})
		for _, row := range g.Rows {
			l.add(BlockDataRow, summaryRowCells(row, false)...)
		}
		l.add(BlockTotalRow, summaryRowCells(g.Total, true)...)
		l.add(BlockSpacer)
	}

	grand := []Cell{
		{Text: "", Align: AlignLeft},
		{Text: "Grand Total", Align: AlignLeft, Bold: true},
	}
	for _, m := range s.GrandTotal {
		grand = append(grand, Cell{Text: FormatAmount(m), Align: AlignRight, Bold: true})
	}
	l.add(BlockGrandTotal, grand...)
	return l
}

// BuildDetailsLayout converts filtered detail rows into the block sequence
// of the transaction listing: repeated title/banner/header, one row per
// record in filtered order, a trailing total row and a summary line.
func BuildDetailsLayout(rows []NormalizedRow, p FilterParams, v ReportVariant) *Layout {
	l := &Layout{
		PageSize:   v.PageSize,
		GridWidths: v.GridWidths,
	}

	l.add(BlockTitle, Cell{Text: v.Title, Align: AlignCenter, Bold: true})
	if desc := p.Describe(); desc != "" {
		l.add(BlockFilterBanner, Cell{Text: desc, Align: AlignLeft})
	}
	l.add(BlockHeader, headerCells(v)...)
	l.RepeatBlocks = len(l.Blocks)

	for _, r := range rows {
		l.add(BlockDataRow, detailRowCells(r, v)...)
	}

	total := DetailsTotal(rows)
	totalCells := make([]Cell, len(v.Columns))
	for i := range totalCells {
		totalCells[i] = Cell{Text: "", Align: AlignLeft}
	}
	amount := FormatAmount(total)
	if n := len(totalCells); n >= 2 {
		totalCells[n-2] = Cell{Text: "Total:", Align: AlignRight, Bold: true}
		totalCells[n-1] = Cell{Text: amount, Align: AlignRight, Bold: true}
	} else {
		// Single-column variants fold the label into the amount cell.
		totalCells[0] = Cell{Text: "Total: " + amount, Align: AlignRight, Bold: true}
	}
	l.add(BlockTotalRow, totalCells...)

	summary := fmt.Sprintf("Summary: Total Records: %d | Total Amount: %s",
		len(rows), FormatAmount(total))
	l.add(BlockGrandTotal, Cell{Text: summary, Align: AlignLeft, Bold: true})
	return l
}

func (l *Layout) add(kind BlockKind, cells ...Cell) {
	l.Blocks = append(l.Blocks, Block{Kind: kind, Cells: cells})
}

func headerCells(v ReportVariant) []Cell {
	cells := make([]Cell, len(v.Columns))
	for i, name := range v.Columns {
		align := AlignLeft
		if v.IsNumericColumn(name) {
			align = AlignRight
		}
		cells[i] = Cell{Text: v.Label(name), Align: align, Bold: true}
	}
	return cells
}

func summaryRowCells(row SummaryRow, bold bool) []Cell {
	cells := []Cell{
		{Text: row.CostCode, Align: AlignLeft, Bold: bold},
		{Text: row.Description, Align: AlignLeft, Bold: bold},
	}
	for _, m := range row.Measures {
		cells = append(cells, Cell{Text: FormatAmount(m), Align: AlignRight, Bold: bold})
	}
	return cells
}

func detailRowCells(r NormalizedRow, v ReportVariant) []Cell {
	cells := make([]Cell, 0, len(v.Columns))
	measureIdx := 0
	for _, name := range v.Columns {
		switch {
		case name == v.DateColumn:
			text := ""
			if r.Date != nil {
				text = r.Date.Format("01/02/2006")
			}
			cells = append(cells, Cell{Text: text, Align: AlignLeft})
		case name == v.CodeColumn:
			cells = append(cells, Cell{Text: r.CostCode, Align: AlignLeft})
		case name == v.DescColumn:
			cells = append(cells, Cell{Text: r.Description, Align: AlignLeft})
		case v.IsNumericColumn(name):
			text := ""
			if measureIdx < len(r.Measures) {
				text = FormatAmount(r.Measures[measureIdx])
			}
			measureIdx++
			cells = append(cells, Cell{Text: text, Align: AlignRight})
		default:
			cells = append(cells, Cell{Text: r.Carry[name], Align: AlignLeft})
		}
	}
	return cells
}
