package services

import (
	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

// RenderPDF turns a Layout into PDF bytes using maroto/v2. The leading
// RepeatBlocks blocks are registered as the page header so they repeat on
// every page; everything else flows below with automatic page breaks.
func RenderPDF(l *Layout) ([]byte, error) {
	cfg := config.NewBuilder().
		WithOrientation(orientation.Horizontal).
		WithPageSize(pageSizeFor(l.PageSize)).
		WithLeftMargin(10).
		WithTopMargin(10).
		WithRightMargin(10).
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
			Size:    7,
			Color:   &props.Color{Red: 120, Green: 120, Blue: 120},
		}).
		Build()

	m := maroto.New(cfg)

	repeat := l.RepeatBlocks
	if repeat > len(l.Blocks) {
		repeat = len(l.Blocks)
	}

	header := make([]core.Row, 0, repeat)
	for _, b := range l.Blocks[:repeat] {
		header = append(header, blockToRow(b, l.GridWidths))
	}
	if len(header) > 0 {
		if err := m.RegisterHeader(header...); err != nil {
			return nil, NewRenderError("register page header", err)
		}
	}

	for _, b := range l.Blocks[repeat:] {
		m.AddRows(blockToRow(b, l.GridWidths))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, NewRenderError("generate PDF", err)
	}
	return doc.GetBytes(), nil
}

func pageSizeFor(size string) pagesize.Type {
	if size == "A3" {
		return pagesize.A3
	}
	return pagesize.A4
}

// blockHeights in maroto units per block kind.
var blockHeights = map[BlockKind]float64{
	BlockTitle:        12,
	BlockFilterBanner: 7,
	BlockHeader:       8,
	BlockGroupHeader:  8,
	BlockDataRow:      6,
	BlockTotalRow:     7,
	BlockGrandTotal:   8,
	BlockSpacer:       3,
}

func blockToRow(b Block, gridWidths []int) core.Row {
	height := blockHeights[b.Kind]
	if height == 0 {
		height = 6
	}
	if len(b.Cells) == 0 {
		return row.New(height)
	}

	// Blocks that match the table shape use the configured grid; anything
	// else (title, banners) spans evenly across the page.
	widths := gridWidths
	if len(b.Cells) != len(gridWidths) {
		widths = spanWidths(len(b.Cells))
	}

	cols := make([]core.Col, 0, len(b.Cells))
	for i, c := range b.Cells {
		cols = append(cols, col.New(widths[i]).Add(
			text.New(c.Text, textProps(b.Kind, c)),
		))
	}
	return row.New(height).Add(cols...)
}

// spanWidths distributes the 12-column grid across n cells, with the
// remainder going to the last cell.
func spanWidths(n int) []int {
	widths := make([]int, n)
	each := 12 / n
	for i := range widths {
		widths[i] = each
	}
	widths[n-1] += 12 - each*n
	return widths
}

func textProps(kind BlockKind, c Cell) props.Text {
	p := props.Text{
		Size:  7,
		Align: alignFor(c.Align),
	}
	switch kind {
	case BlockTitle:
		p.Size = 16
	case BlockGroupHeader:
		p.Size = 10
	case BlockHeader, BlockFilterBanner, BlockTotalRow, BlockGrandTotal:
		p.Size = 8
	}
	if c.Bold {
		p.Style = fontstyle.Bold
	}
	return p
}

func alignFor(a Alignment) align.Type {
	switch a {
	case AlignRight:
		return align.Right
	case AlignCenter:
		return align.Center
	default:
		return align.Left
	}
}
