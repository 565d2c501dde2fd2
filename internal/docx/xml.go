package docx

import "encoding/xml"

const (
	nsWordprocessing = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsRelationships  = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

type xmlDocument struct {
	XMLName xml.Name `xml:"w:document"`
	NSW     string   `xml:"xmlns:w,attr"`
	NSR     string   `xml:"xmlns:r,attr"`
	Body    xmlBody  `xml:"w:body"`
}

type xmlBody struct {
	Blocks []any      `xml:",any"`
	Sect   xmlSection `xml:"w:sectPr"`
}

type xmlSection struct {
	Size   xmlPageSize   `xml:"w:pgSz"`
	Margin xmlPageMargin `xml:"w:pgMar"`
}

type xmlPageSize struct {
	W int `xml:"w:w,attr"`
	H int `xml:"w:h,attr"`
}

type xmlPageMargin struct {
	Top    int `xml:"w:top,attr"`
	Right  int `xml:"w:right,attr"`
	Bottom int `xml:"w:bottom,attr"`
	Left   int `xml:"w:left,attr"`
	Header int `xml:"w:header,attr"`
	Footer int `xml:"w:footer,attr"`
	Gutter int `xml:"w:gutter,attr"`
}

type xmlParagraph struct {
	XMLName xml.Name          `xml:"w:p"`
	Props   *xmlParagraphProp `xml:"w:pPr,omitempty"`
	Runs    []xmlRun          `xml:"w:r"`
}

type xmlParagraphProp struct {
	Justify *xmlVal `xml:"w:jc,omitempty"`
}

type xmlRun struct {
	Text xmlText `xml:"w:t"`
}

type xmlText struct {
	Space string `xml:"xml:space,attr,omitempty"`
	Value string `xml:",chardata"`
}

type xmlVal struct {
	Val string `xml:"w:val,attr"`
}

type xmlTable struct {
	XMLName xml.Name     `xml:"w:tbl"`
	Props   xmlTableProp `xml:"w:tblPr"`
	Grid    xmlTableGrid `xml:"w:tblGrid"`
	Rows    []xmlRow     `xml:"w:tr"`
}

type xmlTableProp struct {
	Width   xmlWidth    `xml:"w:tblW"`
	Justify *xmlVal     `xml:"w:jc,omitempty"`
	Borders *xmlBorders `xml:"w:tblBorders,omitempty"`
	Layout  xmlLayout   `xml:"w:tblLayout"`
}

type xmlWidth struct {
	W    int    `xml:"w:w,attr"`
	Type string `xml:"w:type,attr"`
}

type xmlLayout struct {
	Type string `xml:"w:type,attr"`
}

type xmlBorders struct {
	Top     xmlBorder `xml:"w:top"`
	Left    xmlBorder `xml:"w:left"`
	Bottom  xmlBorder `xml:"w:bottom"`
	Right   xmlBorder `xml:"w:right"`
	InsideH xmlBorder `xml:"w:insideH"`
	InsideV xmlBorder `xml:"w:insideV"`
}

type xmlBorder struct {
	Val   string `xml:"w:val,attr"`
	Size  int    `xml:"w:sz,attr"`
	Space int    `xml:"w:space,attr"`
	Color string `xml:"w:color,attr"`
}

type xmlTableGrid struct {
	Cols []xmlGridCol `xml:"w:gridCol"`
}

type xmlGridCol struct {
	W int `xml:"w:w,attr"`
}

type xmlRow struct {
	Props *xmlRowProp `xml:"w:trPr,omitempty"`
	Cells []xmlCell   `xml:"w:tc"`
}

type xmlRowProp struct {
	Header *struct{} `xml:"w:tblHeader,omitempty"`
}

type xmlCell struct {
	Props      xmlCellProp    `xml:"w:tcPr"`
	Paragraphs []xmlParagraph `xml:"w:p"`
}

type xmlCellProp struct {
	Width xmlWidth `xml:"w:tcW"`
}

type xmlCoreProperties struct {
	XMLName    xml.Name   `xml:"cp:coreProperties"`
	NSCP       string     `xml:"xmlns:cp,attr"`
	NSDC       string     `xml:"xmlns:dc,attr"`
	NSDCTerms  string     `xml:"xmlns:dcterms,attr"`
	NSXSI      string     `xml:"xmlns:xsi,attr"`
	Title      string     `xml:"dc:title,omitempty"`
	Creator    string     `xml:"dc:creator,omitempty"`
	Identifier string     `xml:"dc:identifier,omitempty"`
	Created    *xmlW3CDTF `xml:"dcterms:created,omitempty"`
}

type xmlW3CDTF struct {
	Type  string `xml:"xsi:type,attr"`
	Value string `xml:",chardata"`
}

type xmlAppProperties struct {
	XMLName     xml.Name `xml:"Properties"`
	NS          string   `xml:"xmlns,attr"`
	Application string   `xml:"Application,omitempty"`
}

const contentTypesXML = xml.Header +
	`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
	`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
	`<Default Extension="xml" ContentType="application/xml"/>` +
	`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
	`<Override PartName="/docProps/core.xml" ContentType="application/vnd.openxmlformats-package.core-properties+xml"/>` +
	`<Override PartName="/docProps/app.xml" ContentType="application/vnd.openxmlformats-officedocument.extended-properties+xml"/>` +
	`</Types>`

const packageRelsXML = xml.Header +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
	`<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>` +
	`<Relationship Id="rId2" Type="http://schemas.openxmlformats.org/package/2006/relationships/metadata/core-properties" Target="docProps/core.xml"/>` +
	`<Relationship Id="rId3" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/extended-properties" Target="docProps/app.xml"/>` +
	`</Relationships>`

const documentRelsXML = xml.Header +
	`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships"></Relationships>`
