// Package report lays out the regulatory body summary as a Word document:
// a dated preamble with totals, one count line per type and a five-column
// table of the selected bodies.
package report

import (
	"bytes"
	"fmt"
	"strconv"
	"time"

	"github.com/JakeFAU/cus-report/internal/cus"
	"github.com/JakeFAU/cus-report/internal/docx"
)

// TimestampLayout renders the generation time as dd.MM.yyyy HH:mm:ss.
const TimestampLayout = "02.01.2006 15:04:05"

// Column headers of the data table.
var Headers = []string{"№", "Тип", "Код", "Имя", "ИНН"}

// ColumnWidths are the table column widths in points.
var ColumnWidths = []float64{50, 50, 70, 200, 80}

// Data is everything the renderer writes.
type Data struct {
	RunID       string
	RegionCode  string
	GeneratedAt time.Time
	Bodies      []cus.RegulatoryBody
	Counts      []cus.TypeCount
}

// NewData selects, orders and counts bodies for region.
func NewData(runID, region string, generatedAt time.Time, all []cus.RegulatoryBody) Data {
	selected := cus.Select(all, region)
	return Data{
		RunID:       runID,
		RegionCode:  region,
		GeneratedAt: generatedAt,
		Bodies:      selected,
		Counts:      cus.CountByType(selected),
	}
}

// Preamble returns the text lines written above the table.
func (d Data) Preamble() []string {
	lines := []string{
		"Дата выполнения: " + d.GeneratedAt.Format(TimestampLayout),
		"Количество контролирующих органов:",
		fmt.Sprintf("Общее - %d", len(d.Bodies)),
	}
	for _, c := range d.Counts {
		lines = append(lines, fmt.Sprintf("%s - %d", c.Type, c.Count))
	}
	return lines
}

// Row returns the table cells for the i-th selected body (zero based).
func (d Data) Row(i int) []string {
	body := d.Bodies[i]
	return []string{
		strconv.Itoa(i + 1),
		body.Type,
		body.Code,
		body.Name,
		body.Authority.INN,
	}
}

// Render builds the document for d and returns the serialized package. The
// document session is closed before Render returns, on every path.
func Render(d Data, application string) (data []byte, err error) {
	doc := docx.New(docx.Properties{
		Title:       fmt.Sprintf("Контролирующие органы региона %s", d.RegionCode),
		Creator:     application,
		Identifier:  d.RunID,
		Application: application,
		Created:     d.GeneratedAt,
	})
	defer func() {
		if cerr := doc.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close document: %w", cerr)
		}
	}()

	for _, line := range d.Preamble() {
		if err := doc.AddParagraph(line); err != nil {
			return nil, fmt.Errorf("write preamble: %w", err)
		}
	}
	if err := writeTable(doc, d); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if _, err := doc.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("serialize document: %w", err)
	}
	return buf.Bytes(), nil
}

func writeTable(doc *docx.Document, d Data) error {
	table, err := doc.AddTable(len(d.Bodies)+1, len(Headers))
	if err != nil {
		return fmt.Errorf("add table: %w", err)
	}
	table.SetAlignment(docx.AlignCenter)
	table.SetBorders(true)
	table.SetHeaderRows(1)
	for col, width := range ColumnWidths {
		if err := table.SetColumnWidth(col, width); err != nil {
			return fmt.Errorf("set column width: %w", err)
		}
	}
	if err := table.SetRow(0, Headers...); err != nil {
		return fmt.Errorf("write header row: %w", err)
	}
	for i := range d.Bodies {
		if err := table.SetRow(i+1, d.Row(i)...); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	return nil
}
