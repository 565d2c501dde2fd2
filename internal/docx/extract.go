package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"strings"
)

// Contents is the plain-text view of a .docx package body. Blocks keeps the
// top-level paragraphs and tables in document order; Paragraphs and Tables
// are the same elements split by kind.
type Contents struct {
	Title      string
	Identifier string
	Blocks     []Block
	Paragraphs []string
	Tables     [][][]string
}

// Block is one top-level body element: a paragraph (Text) or, when IsTable
// is set, a table (Rows).
type Block struct {
	IsTable bool
	Text    string
	Rows    [][]string
}

type extractTable struct {
	Rows []struct {
		Cells []struct {
			Paragraphs []extractParagraph `xml:"p"`
		} `xml:"tc"`
	} `xml:"tr"`
}

func (t extractTable) rows() [][]string {
	rows := make([][]string, 0, len(t.Rows))
	for _, row := range t.Rows {
		cells := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			texts := make([]string, 0, len(cell.Paragraphs))
			for _, p := range cell.Paragraphs {
				texts = append(texts, p.text())
			}
			cells = append(cells, strings.Join(texts, "\n"))
		}
		rows = append(rows, cells)
	}
	return rows
}

// Extract reads the top-level paragraphs, tables and core properties of a
// .docx package.
func Extract(data []byte) (Contents, error) {
	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return Contents{}, fmt.Errorf("open package: %w", err)
	}

	documentXML, err := readPart(reader, partDocument)
	if err != nil {
		return Contents{}, err
	}
	blocks, err := readBody(documentXML)
	if err != nil {
		return Contents{}, fmt.Errorf("parse %s: %w", partDocument, err)
	}

	out := Contents{Blocks: blocks}
	for _, block := range blocks {
		if block.IsTable {
			out.Tables = append(out.Tables, block.Rows)
			continue
		}
		out.Paragraphs = append(out.Paragraphs, block.Text)
	}

	if coreXML, err := readPart(reader, partCore); err == nil {
		var core struct {
			Title      string `xml:"title"`
			Identifier string `xml:"identifier"`
		}
		if err := xml.Unmarshal(coreXML, &core); err == nil {
			out.Title = strings.TrimSpace(core.Title)
			out.Identifier = strings.TrimSpace(core.Identifier)
		}
	}
	return out, nil
}

type extractParagraph struct {
	Runs []struct {
		Text []struct {
			Content string `xml:",chardata"`
		} `xml:"t"`
	} `xml:"r"`
}

func (p extractParagraph) text() string {
	var b strings.Builder
	for _, run := range p.Runs {
		for _, t := range run.Text {
			b.WriteString(t.Content)
		}
	}
	return b.String()
}

// readBody walks the children of w:body in order, decoding paragraphs and
// tables and skipping everything else (section properties, bookmarks).
func readBody(documentXML []byte) ([]Block, error) {
	dec := xml.NewDecoder(bytes.NewReader(documentXML))
	var (
		blocks []Block
		inBody bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch el := tok.(type) {
		case xml.StartElement:
			if !inBody {
				inBody = el.Name.Local == "body"
				continue
			}
			switch el.Name.Local {
			case "p":
				var p extractParagraph
				if err := dec.DecodeElement(&p, &el); err != nil {
					return nil, err
				}
				blocks = append(blocks, Block{Text: p.text()})
			case "tbl":
				var t extractTable
				if err := dec.DecodeElement(&t, &el); err != nil {
					return nil, err
				}
				blocks = append(blocks, Block{IsTable: true, Rows: t.rows()})
			default:
				if err := dec.Skip(); err != nil {
					return nil, err
				}
			}
		case xml.EndElement:
			if inBody && el.Name.Local == "body" {
				return blocks, nil
			}
		}
	}
	if !inBody {
		return nil, fmt.Errorf("document has no body")
	}
	return blocks, nil
}

func readPart(reader *zip.Reader, name string) ([]byte, error) {
	for _, file := range reader.File {
		if file.Name != name {
			continue
		}
		rc, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		return content, nil
	}
	return nil, fmt.Errorf("part %s not found", name)
}
