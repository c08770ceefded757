// Package docx populates a Word (.docx) template from report data. The
// template is treated as an abstract document tree of paragraphs, tables,
// rows and cells indexed by byte offset into word/document.xml, so edits
// splice the original XML and every untouched run keeps its formatting.
//
// Population happens in two separate passes: a global placeholder
// substitution over every text region (free paragraphs and table cells),
// then repeating-row expansion for the tables carrying bracketed markers.
package docx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"sort"
	"strings"
)

// ErrMissingTemplate reports that the template file is absent. Callers
// surface it as a user-facing message, not a server crash.
var ErrMissingTemplate = errors.New("report template not found")

const wordMLNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

const documentEntry = "word/document.xml"

// textSpan is one <w:t> character-data region.
type textSpan struct {
	start, end int64 // raw (entity-encoded) byte range in document.xml
	text       string
	writable   bool // false for self-closing <w:t/>, which has no interior
}

// Paragraph is a <w:p> element, free-standing or inside a table cell.
type Paragraph struct {
	start, end int64
	texts      []*textSpan
}

// Text is the paragraph's aggregated run text.
func (p *Paragraph) Text() string {
	var b strings.Builder
	for _, t := range p.texts {
		b.WriteString(t.text)
	}
	return b.String()
}

// Cell is a <w:tc> element.
type Cell struct {
	start, end int64
	Paragraphs []*Paragraph
}

// Text is the cell's aggregated text across its paragraphs.
func (c *Cell) Text() string {
	var b strings.Builder
	for _, p := range c.Paragraphs {
		b.WriteString(p.Text())
	}
	return b.String()
}

// Row is a <w:tr> element.
type Row struct {
	start, end int64
	Cells      []*Cell
}

// Table is a <w:tbl> element.
type Table struct {
	start, end int64
	Rows       []*Row
}

type zipEntry struct {
	name string
	data []byte
}

type edit struct {
	start, end int64
	repl       []byte
}

// Document is an opened template plus the edit set accumulated against it.
type Document struct {
	entries    []zipEntry
	docXML     []byte
	paragraphs []*Paragraph // every paragraph, body and cell alike
	tables     []*Table

	edits    []edit
	removals []edit // removed template rows; drop text edits inside them
}

// Open loads a .docx template from disk. A missing file yields
// ErrMissingTemplate.
func Open(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrMissingTemplate
		}
		return nil, err
	}
	return OpenBytes(data)
}

// OpenBytes parses a .docx archive held in memory.
func OpenBytes(data []byte) (*Document, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, err
	}

	d := &Document{}
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
		d.entries = append(d.entries, zipEntry{name: f.Name, data: content})
		if f.Name == documentEntry {
			d.docXML = content
		}
	}
	if d.docXML == nil {
		return nil, errors.New("docx: archive has no word/document.xml")
	}
	if err := d.parse(); err != nil {
		return nil, err
	}
	return d, nil
}

// parse walks document.xml once and indexes paragraphs, tables, rows,
// cells and text runs by byte offset.
func (d *Document) parse() error {
	dec := xml.NewDecoder(bytes.NewReader(d.docXML))

	var (
		paraStack  []*Paragraph
		tableStack []*Table
		rowStack   []*Row
		cellStack  []*Cell
		curText    *textSpan
		inText     bool
	)

	for {
		off := dec.InputOffset()
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		cur := dec.InputOffset()

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordMLNS {
				continue
			}
			switch t.Name.Local {
			case "p":
				paraStack = append(paraStack, &Paragraph{start: off})
			case "tbl":
				tableStack = append(tableStack, &Table{start: off})
			case "tr":
				if len(tableStack) > 0 {
					rowStack = append(rowStack, &Row{start: off})
				}
			case "tc":
				if len(rowStack) > 0 {
					cellStack = append(cellStack, &Cell{start: off})
				}
			case "t":
				if len(paraStack) > 0 {
					inText = true
					raw := bytes.TrimRight(d.docXML[off:cur], " \t\r\n")
					selfClosing := bytes.HasSuffix(raw, []byte("/>"))
					curText = &textSpan{start: cur, end: cur, writable: !selfClosing}
				}
			}

		case xml.CharData:
			if inText && curText != nil {
				if curText.text == "" {
					curText.start = off
				}
				curText.end = cur
				curText.text += string(t)
			}

		case xml.EndElement:
			if t.Name.Space != wordMLNS {
				continue
			}
			switch t.Name.Local {
			case "t":
				if inText && len(paraStack) > 0 {
					p := paraStack[len(paraStack)-1]
					p.texts = append(p.texts, curText)
				}
				inText = false
				curText = nil
			case "p":
				if len(paraStack) == 0 {
					continue
				}
				p := paraStack[len(paraStack)-1]
				paraStack = paraStack[:len(paraStack)-1]
				p.end = cur
				d.paragraphs = append(d.paragraphs, p)
				if len(cellStack) > 0 {
					c := cellStack[len(cellStack)-1]
					c.Paragraphs = append(c.Paragraphs, p)
				}
			case "tc":
				if len(cellStack) == 0 {
					continue
				}
				c := cellStack[len(cellStack)-1]
				cellStack = cellStack[:len(cellStack)-1]
				c.end = cur
				r := rowStack[len(rowStack)-1]
				r.Cells = append(r.Cells, c)
			case "tr":
				if len(rowStack) == 0 {
					continue
				}
				r := rowStack[len(rowStack)-1]
				rowStack = rowStack[:len(rowStack)-1]
				r.end = cur
				tb := tableStack[len(tableStack)-1]
				tb.Rows = append(tb.Rows, r)
			case "tbl":
				if len(tableStack) == 0 {
					continue
				}
				tb := tableStack[len(tableStack)-1]
				tableStack = tableStack[:len(tableStack)-1]
				tb.end = cur
				d.tables = append(d.tables, tb)
			}
		}
	}
	return nil
}

// Tables exposes the parsed tables in document order.
func (d *Document) Tables() []*Table {
	return d.tables
}

// Save applies the accumulated edits and writes the populated archive.
// Text edits that fall inside a removed template row are discarded.
func (d *Document) Save(w io.Writer) error {
	final := d.spliceEdits()

	zw := zip.NewWriter(w)
	for _, e := range d.entries {
		fw, err := zw.Create(e.name)
		if err != nil {
			return err
		}
		content := e.data
		if e.name == documentEntry {
			content = final
		}
		if _, err := fw.Write(content); err != nil {
			return err
		}
	}
	return zw.Close()
}

func (d *Document) spliceEdits() []byte {
	edits := make([]edit, 0, len(d.edits)+len(d.removals))
	for _, e := range d.edits {
		if d.insideRemoval(e) {
			continue
		}
		edits = append(edits, e)
	}
	edits = append(edits, d.removals...)

	sort.Slice(edits, func(i, j int) bool {
		if edits[i].start != edits[j].start {
			return edits[i].start < edits[j].start
		}
		return edits[i].end < edits[j].end
	})

	var out bytes.Buffer
	pos := int64(0)
	for _, e := range edits {
		if e.start < pos {
			continue // overlapping edit, first one wins
		}
		out.Write(d.docXML[pos:e.start])
		out.Write(e.repl)
		pos = e.end
	}
	out.Write(d.docXML[pos:])
	return out.Bytes()
}

func (d *Document) insideRemoval(e edit) bool {
	for _, r := range d.removals {
		// e.start < r.end keeps zero-width insertions sitting exactly at
		// the removal's end, such as clones appended after a template row
		// that is also the table's last row.
		if e.start >= r.start && e.end <= r.end && e.start < r.end {
			return true
		}
	}
	return false
}

func escapeXML(s string) []byte {
	var b bytes.Buffer
	xml.EscapeText(&b, []byte(s)) //nolint:errcheck // bytes.Buffer cannot fail
	return b.Bytes()
}

// normalizeQuotes folds word-processor curly quotes to straight ones so
// bracketed markers match however autoformat mangled them.
func normalizeQuotes(s string) string {
	return strings.NewReplacer("“", `"`, "”", `"`).Replace(s)
}
