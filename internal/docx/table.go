package docx

import "fmt"

// Table is a grid of single-paragraph text cells. Row and column indexes are
// zero based.
type Table struct {
	doc        *Document
	cells      [][]string
	widths     []int
	align      Alignment
	borders    bool
	headerRows int
}

func newTable(doc *Document, rows, cols int) *Table {
	cells := make([][]string, rows)
	for i := range cells {
		cells[i] = make([]string, cols)
	}
	return &Table{
		doc:    doc,
		cells:  cells,
		widths: make([]int, cols),
	}
}

// Rows returns the number of rows.
func (t *Table) Rows() int {
	return len(t.cells)
}

// Cols returns the number of columns.
func (t *Table) Cols() int {
	return len(t.widths)
}

// SetText replaces the text of one cell.
func (t *Table) SetText(row, col int, text string) error {
	t.doc.mu.Lock()
	defer t.doc.mu.Unlock()
	if t.doc.closed {
		return ErrClosed
	}
	if row < 0 || row >= len(t.cells) || col < 0 || col >= len(t.widths) {
		return fmt.Errorf("set text (%d,%d) in %dx%d table: %w", row, col, len(t.cells), len(t.widths), ErrCellOutOfRange)
	}
	t.cells[row][col] = text
	return nil
}

// SetRow fills a row left to right. Extra values are rejected.
func (t *Table) SetRow(row int, values ...string) error {
	if len(values) > t.Cols() {
		return fmt.Errorf("set row %d: %d values for %d columns: %w", row, len(values), t.Cols(), ErrCellOutOfRange)
	}
	for col, v := range values {
		if err := t.SetText(row, col, v); err != nil {
			return err
		}
	}
	return nil
}

// SetColumnWidth fixes the width of a column in points.
func (t *Table) SetColumnWidth(col int, points float64) error {
	t.doc.mu.Lock()
	defer t.doc.mu.Unlock()
	if t.doc.closed {
		return ErrClosed
	}
	if col < 0 || col >= len(t.widths) {
		return fmt.Errorf("set width of column %d in %d-column table: %w", col, len(t.widths), ErrCellOutOfRange)
	}
	if points < 0 {
		return fmt.Errorf("set width of column %d: negative width %v", col, points)
	}
	t.widths[col] = PointsToTwips(points)
	return nil
}

// SetAlignment positions the table rows on the page.
func (t *Table) SetAlignment(align Alignment) {
	t.doc.mu.Lock()
	defer t.doc.mu.Unlock()
	t.align = align
}

// SetBorders toggles single-line borders around and between all cells.
func (t *Table) SetBorders(enabled bool) {
	t.doc.mu.Lock()
	defer t.doc.mu.Unlock()
	t.borders = enabled
}

// SetHeaderRows marks the first n rows as a header repeated on every page.
func (t *Table) SetHeaderRows(n int) {
	t.doc.mu.Lock()
	defer t.doc.mu.Unlock()
	t.headerRows = max(0, min(n, len(t.cells)))
}

func (t *Table) element() any {
	tbl := xmlTable{
		Props: xmlTableProp{
			Width:  xmlWidth{W: 0, Type: "auto"},
			Layout: xmlLayout{Type: "autofit"},
		},
	}
	if t.align != "" {
		tbl.Props.Justify = &xmlVal{Val: string(t.align)}
	}
	if t.borders {
		line := xmlBorder{Val: "single", Size: 4, Color: "auto"}
		tbl.Props.Borders = &xmlBorders{
			Top: line, Left: line, Bottom: line, Right: line, InsideH: line, InsideV: line,
		}
	}
	fixed := true
	for _, w := range t.widths {
		tbl.Grid.Cols = append(tbl.Grid.Cols, xmlGridCol{W: w})
		if w == 0 {
			fixed = false
		}
	}
	if fixed {
		tbl.Props.Layout.Type = "fixed"
	}

	for r, row := range t.cells {
		xr := xmlRow{}
		if r < t.headerRows {
			xr.Props = &xmlRowProp{Header: &struct{}{}}
		}
		for c, text := range row {
			width := xmlWidth{W: t.widths[c], Type: "dxa"}
			if t.widths[c] == 0 {
				width.Type = "auto"
			}
			xr.Cells = append(xr.Cells, xmlCell{
				Props:      xmlCellProp{Width: width},
				Paragraphs: []xmlParagraph{newParagraph(text, "")},
			})
		}
		tbl.Rows = append(tbl.Rows, xr)
	}
	return tbl
}
