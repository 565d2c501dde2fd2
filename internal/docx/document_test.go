package docx

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, d *Document) []byte {
	t.Helper()
	var buf bytes.Buffer
	n, err := d.WriteTo(&buf)
	require.NoError(t, err)
	require.Equal(t, int64(buf.Len()), n)
	return buf.Bytes()
}

func TestWriteToProducesPackageParts(t *testing.T) {
	t.Parallel()

	d := New(Properties{Title: "Report", Creator: "tester", Identifier: "run-1", Created: time.Unix(1700000000, 0)})
	defer d.Close()
	require.NoError(t, d.AddParagraph("hello"))

	data := render(t, d)
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)

	var names []string
	for _, f := range reader.File {
		names = append(names, f.Name)
	}
	assert.ElementsMatch(t, []string{
		"[Content_Types].xml",
		"_rels/.rels",
		"word/document.xml",
		"word/_rels/document.xml.rels",
		"docProps/core.xml",
		"docProps/app.xml",
	}, names)

	documentXML, err := readPart(reader, partDocument)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(documentXML), `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, string(documentXML), `<w:document xmlns:w="`+nsWordprocessing+`"`)
	assert.Contains(t, string(documentXML), `<w:t>hello</w:t>`)
	assert.Contains(t, string(documentXML), `<w:pgSz w:w="11906" w:h="16838">`)

	coreXML, err := readPart(reader, partCore)
	require.NoError(t, err)
	assert.Contains(t, string(coreXML), `<dcterms:created xsi:type="dcterms:W3CDTF">2023-11-14T22:13:20Z</dcterms:created>`)
}

func TestTableLayout(t *testing.T) {
	t.Parallel()

	d := New(Properties{})
	defer d.Close()
	tbl, err := d.AddTable(2, 3)
	require.NoError(t, err)
	assert.Equal(t, 2, tbl.Rows())
	assert.Equal(t, 3, tbl.Cols())

	tbl.SetAlignment(AlignCenter)
	tbl.SetBorders(true)
	tbl.SetHeaderRows(1)
	for i, w := range []float64{50, 70, 200} {
		require.NoError(t, tbl.SetColumnWidth(i, w))
	}
	require.NoError(t, tbl.SetRow(0, "a", "b", "c"))
	require.NoError(t, tbl.SetRow(1, " x ", "y & z", "<w>"))

	data := render(t, d)
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	documentXML, err := readPart(reader, partDocument)
	require.NoError(t, err)
	xml := string(documentXML)

	assert.Contains(t, xml, `<w:jc w:val="center">`)
	assert.Contains(t, xml, `<w:insideV w:val="single" w:sz="4" w:space="0" w:color="auto">`)
	assert.Contains(t, xml, `<w:tblLayout w:type="fixed">`)
	assert.Contains(t, xml, `<w:gridCol w:w="1000"></w:gridCol><w:gridCol w:w="1400"></w:gridCol><w:gridCol w:w="4000"></w:gridCol>`)
	assert.Contains(t, xml, `<w:tcW w:w="4000" w:type="dxa">`)
	assert.Contains(t, xml, `<w:tblHeader>`)
	assert.Contains(t, xml, `<w:t xml:space="preserve"> x </w:t>`)
	assert.Contains(t, xml, `y &amp; z`)
	assert.Contains(t, xml, `&lt;w&gt;`)
	assert.Equal(t, 1, strings.Count(xml, "<w:tblHeader>"))

	got, err := Extract(data)
	require.NoError(t, err)
	require.Len(t, got.Tables, 1)
	assert.Equal(t, [][]string{{"a", "b", "c"}, {" x ", "y & z", "<w>"}}, got.Tables[0])
	// A trailing empty paragraph follows the table.
	assert.Equal(t, []string{""}, got.Paragraphs)
}

func TestTableWithoutWidthsIsAutofit(t *testing.T) {
	t.Parallel()

	d := New(Properties{})
	defer d.Close()
	_, err := d.AddTable(1, 1)
	require.NoError(t, err)

	data := render(t, d)
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	require.NoError(t, err)
	documentXML, err := readPart(reader, partDocument)
	require.NoError(t, err)
	assert.Contains(t, string(documentXML), `<w:tblLayout w:type="autofit">`)
	assert.NotContains(t, string(documentXML), `<w:tblBorders>`)
}

func TestTableBounds(t *testing.T) {
	t.Parallel()

	d := New(Properties{})
	defer d.Close()
	tbl, err := d.AddTable(1, 5)
	require.NoError(t, err)

	assert.ErrorIs(t, tbl.SetText(1, 0, "x"), ErrCellOutOfRange)
	assert.ErrorIs(t, tbl.SetText(0, 5, "x"), ErrCellOutOfRange)
	assert.ErrorIs(t, tbl.SetText(-1, 0, "x"), ErrCellOutOfRange)
	assert.ErrorIs(t, tbl.SetColumnWidth(5, 10), ErrCellOutOfRange)
	assert.Error(t, tbl.SetColumnWidth(0, -1))
	assert.ErrorIs(t, tbl.SetRow(0, "1", "2", "3", "4", "5", "6"), ErrCellOutOfRange)

	_, err = d.AddTable(0, 5)
	assert.Error(t, err)
	_, err = d.AddTable(1, 0)
	assert.Error(t, err)
}

func TestClosedDocumentRejectsUse(t *testing.T) {
	t.Parallel()

	d := New(Properties{})
	tbl, err := d.AddTable(1, 1)
	require.NoError(t, err)
	require.NoError(t, d.Close())
	require.NoError(t, d.Close(), "close is idempotent")

	assert.ErrorIs(t, d.AddParagraph("x"), ErrClosed)
	_, err = d.AddTable(1, 1)
	assert.ErrorIs(t, err, ErrClosed)
	assert.ErrorIs(t, tbl.SetText(0, 0, "x"), ErrClosed)
	assert.ErrorIs(t, tbl.SetColumnWidth(0, 1), ErrClosed)
	_, err = d.WriteTo(&bytes.Buffer{})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestWriteToPropagatesWriterErrors(t *testing.T) {
	t.Parallel()

	d := New(Properties{})
	defer d.Close()
	require.NoError(t, d.AddParagraph(strings.Repeat("x", 1<<16)))

	_, err := d.WriteTo(failingWriter{})
	require.Error(t, err)
}

func TestExtractRejectsNonZip(t *testing.T) {
	t.Parallel()

	_, err := Extract([]byte("not a zip"))
	require.Error(t, err)
}

func TestExtractReadsCoreProperties(t *testing.T) {
	t.Parallel()

	d := New(Properties{Title: "Контролирующие органы", Identifier: "run-42"})
	defer d.Close()
	require.NoError(t, d.AddAlignedParagraph("Дата", AlignRight))

	got, err := Extract(render(t, d))
	require.NoError(t, err)
	assert.Equal(t, "Контролирующие органы", got.Title)
	assert.Equal(t, "run-42", got.Identifier)
	assert.Equal(t, []string{"Дата"}, got.Paragraphs)
	assert.Empty(t, got.Tables)
}

func TestExtractKeepsBlockOrder(t *testing.T) {
	t.Parallel()

	d := New(Properties{})
	defer d.Close()
	require.NoError(t, d.AddParagraph("before"))
	table, err := d.AddTable(1, 2)
	require.NoError(t, err)
	require.NoError(t, table.SetRow(0, "a", "b"))
	require.NoError(t, d.AddParagraph("after"))

	got, err := Extract(render(t, d))
	require.NoError(t, err)
	assert.Equal(t, []Block{
		{Text: "before"},
		{IsTable: true, Rows: [][]string{{"a", "b"}}},
		{Text: "after"},
	}, got.Blocks)
	assert.Equal(t, []string{"before", "after"}, got.Paragraphs)
	assert.Equal(t, [][][]string{{{"a", "b"}}}, got.Tables)
}

func TestPointsToTwips(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1000, PointsToTwips(50))
	assert.Equal(t, 1600, PointsToTwips(80))
	assert.Equal(t, 11, PointsToTwips(0.55))
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}
