package docx

import (
	"archive/zip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"sync"
	"time"
)

// ContentType is the MIME type of a .docx package.
const ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Package part names.
const (
	partContentTypes = "[Content_Types].xml"
	partPackageRels  = "_rels/.rels"
	partDocument     = "word/document.xml"
	partDocumentRels = "word/_rels/document.xml.rels"
	partCore         = "docProps/core.xml"
	partApp          = "docProps/app.xml"
)

// A4 portrait with the default Word margins, in twentieths of a point.
const (
	pageWidth    = 11906
	pageHeight   = 16838
	marginTop    = 1134
	marginRight  = 850
	marginBottom = 1134
	marginLeft   = 1701
	marginHeader = 708
)

var (
	// ErrClosed is returned when a closed Document is used.
	ErrClosed = errors.New("document is closed")
	// ErrCellOutOfRange is returned for row or column indexes outside a table.
	ErrCellOutOfRange = errors.New("cell out of range")
)

// Alignment positions a paragraph or a table horizontally.
type Alignment string

// Supported alignments.
const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Properties are written to docProps/core.xml and docProps/app.xml.
type Properties struct {
	Title       string
	Creator     string
	Identifier  string
	Application string
	Created     time.Time
}

// Document is an open, in-memory WordprocessingML document.
type Document struct {
	mu     sync.Mutex
	props  Properties
	blocks []block
	closed bool
}

type block interface {
	element() any
}

type paragraph struct {
	text  string
	align Alignment
}

func (p *paragraph) element() any {
	return newParagraph(p.text, p.align)
}

// New opens an empty document.
func New(props Properties) *Document {
	return &Document{props: props}
}

// AddParagraph appends a paragraph containing text.
func (d *Document) AddParagraph(text string) error {
	return d.AddAlignedParagraph(text, "")
}

// AddAlignedParagraph appends a paragraph with an explicit alignment.
func (d *Document) AddAlignedParagraph(text string, align Alignment) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrClosed
	}
	d.blocks = append(d.blocks, &paragraph{text: text, align: align})
	return nil
}

// AddTable appends an empty table with the given dimensions.
func (d *Document) AddTable(rows, cols int) (*Table, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("add table %dx%d: dimensions must be positive", rows, cols)
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, ErrClosed
	}
	t := newTable(d, rows, cols)
	d.blocks = append(d.blocks, t)
	return t, nil
}

// Close releases the document content. It is safe to call more than once.
func (d *Document) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	d.blocks = nil
	return nil
}

// WriteTo serializes the document as a .docx package.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return 0, ErrClosed
	}

	cw := &countingWriter{w: w}
	zw := zip.NewWriter(cw)
	modified := d.props.Created
	if modified.IsZero() {
		modified = time.Now()
	}

	documentXML, err := d.marshalDocument()
	if err != nil {
		return cw.n, err
	}
	coreXML, err := d.marshalCore()
	if err != nil {
		return cw.n, err
	}
	appXML, err := marshalPart(xmlAppProperties{
		NS:          "http://schemas.openxmlformats.org/officeDocument/2006/extended-properties",
		Application: d.props.Application,
	})
	if err != nil {
		return cw.n, err
	}

	parts := []struct {
		name string
		data []byte
	}{
		{partContentTypes, []byte(contentTypesXML)},
		{partPackageRels, []byte(packageRelsXML)},
		{partDocument, documentXML},
		{partDocumentRels, []byte(documentRelsXML)},
		{partCore, coreXML},
		{partApp, appXML},
	}
	for _, part := range parts {
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     part.name,
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return cw.n, fmt.Errorf("create part %s: %w", part.name, err)
		}
		if _, err := fw.Write(part.data); err != nil {
			return cw.n, fmt.Errorf("write part %s: %w", part.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return cw.n, fmt.Errorf("close package: %w", err)
	}
	return cw.n, nil
}

func (d *Document) marshalDocument() ([]byte, error) {
	doc := xmlDocument{
		NSW: nsWordprocessing,
		NSR: nsRelationships,
		Body: xmlBody{
			Sect: xmlSection{
				Size: xmlPageSize{W: pageWidth, H: pageHeight},
				Margin: xmlPageMargin{
					Top:    marginTop,
					Right:  marginRight,
					Bottom: marginBottom,
					Left:   marginLeft,
					Header: marginHeader,
					Footer: marginHeader,
				},
			},
		},
	}
	for _, b := range d.blocks {
		doc.Body.Blocks = append(doc.Body.Blocks, b.element())
	}
	// Word expects the body to end with a paragraph, not a table.
	if len(d.blocks) > 0 {
		if _, ok := d.blocks[len(d.blocks)-1].(*Table); ok {
			doc.Body.Blocks = append(doc.Body.Blocks, newParagraph("", ""))
		}
	}
	return marshalPart(doc)
}

func (d *Document) marshalCore() ([]byte, error) {
	core := xmlCoreProperties{
		NSCP:       "http://schemas.openxmlformats.org/package/2006/metadata/core-properties",
		NSDC:       "http://purl.org/dc/elements/1.1/",
		NSDCTerms:  "http://purl.org/dc/terms/",
		NSXSI:      "http://www.w3.org/2001/XMLSchema-instance",
		Title:      d.props.Title,
		Creator:    d.props.Creator,
		Identifier: d.props.Identifier,
	}
	if !d.props.Created.IsZero() {
		core.Created = &xmlW3CDTF{
			Type:  "dcterms:W3CDTF",
			Value: d.props.Created.UTC().Format(time.RFC3339),
		}
	}
	return marshalPart(core)
}

func marshalPart(v any) ([]byte, error) {
	data, err := xml.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal xml: %w", err)
	}
	return append([]byte(xml.Header), data...), nil
}

func newParagraph(text string, align Alignment) xmlParagraph {
	p := xmlParagraph{}
	if align != "" {
		p.Props = &xmlParagraphProp{Justify: &xmlVal{Val: string(align)}}
	}
	if text != "" {
		p.Runs = []xmlRun{newRun(text)}
	}
	return p
}

func newRun(text string) xmlRun {
	t := xmlText{Value: text}
	if strings.TrimSpace(text) != text {
		t.Space = "preserve"
	}
	return xmlRun{Text: t}
}

// PointsToTwips converts typographic points to twentieths of a point, the
// unit Word stores widths in.
func PointsToTwips(points float64) int {
	return int(math.Round(points * 20))
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
