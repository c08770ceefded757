package docx

import (
	"bytes"
	"regexp"
	"sort"
	"strings"
)

// ReplaceAll substitutes every placeholder token across all text regions:
// free-standing paragraphs and every table-cell paragraph alike, since the
// template interleaves narrative text with tabular layout. Substitution
// works on the paragraph's aggregated run text, so tokens split across
// formatting runs still match.
func (d *Document) ReplaceAll(replacements map[string]string) {
	for _, p := range d.paragraphs {
		combined := p.Text()
		replaced := combined
		for token, value := range replacements {
			replaced = strings.ReplaceAll(replaced, token, value)
		}
		if replaced == combined {
			continue
		}
		d.rewriteTexts(p.texts, replaced)
	}
}

// rewriteTexts writes newText into the first writable run and blanks the
// rest, collapsing the region's runs the way the substitution pass must.
func (d *Document) rewriteTexts(texts []*textSpan, newText string) {
	wrote := false
	for _, t := range texts {
		if !t.writable {
			continue
		}
		if !wrote {
			d.edits = append(d.edits, edit{start: t.start, end: t.end, repl: escapeXML(newText)})
			wrote = true
		} else {
			d.edits = append(d.edits, edit{start: t.start, end: t.end, repl: nil})
		}
	}
}

// markerPattern matches a bracketed tag with optional straight or curly
// quotes left around it by word-processor autoformatting.
func markerPattern(tag string) *regexp.Regexp {
	return regexp.MustCompile(`["“”]?` + regexp.QuoteMeta(tag) + `["“”]?`)
}

// findTable returns the first table whose cells mention the distinguishing
// marker, tolerating typographic quote variants.
func (d *Document) findTable(marker string) *Table {
	for _, tb := range d.tables {
		for _, row := range tb.Rows {
			for _, cell := range row.Cells {
				if strings.Contains(normalizeQuotes(cell.Text()), marker) {
					return tb
				}
			}
		}
	}
	return nil
}

// PopulateTable expands the repeating table identified by marker: the
// template row (the first row mentioning any of the tags) is cloned once
// per record, each clone's bracketed tags replaced with that record's
// values, clones appended in record order, and the template row removed.
//
// When records is empty the template row is left in place untouched, so
// the document stays reviewable rather than silently losing its layout.
// Returns false when no table carries the marker.
func (d *Document) PopulateTable(marker string, tags []string, records []map[string]string) bool {
	tb := d.findTable(marker)
	if tb == nil {
		return false
	}
	if len(records) == 0 {
		return true
	}

	template := d.findTemplateRow(tb, tags)
	if template == nil {
		return true
	}

	var clones bytes.Buffer
	for _, record := range records {
		clones.Write(d.cloneRow(template, record))
	}

	// Clones land after the table's last row, then the template row goes.
	last := tb.Rows[len(tb.Rows)-1]
	d.edits = append(d.edits, edit{start: last.end, end: last.end, repl: clones.Bytes()})
	d.removals = append(d.removals, edit{start: template.start, end: template.end, repl: nil})
	return true
}

func (d *Document) findTemplateRow(tb *Table, tags []string) *Row {
	for _, row := range tb.Rows {
		for _, cell := range row.Cells {
			text := normalizeQuotes(cell.Text())
			for _, tag := range tags {
				if strings.Contains(text, tag) {
					return row
				}
			}
		}
	}
	return nil
}

// cloneRow copies the template row's raw XML and substitutes the record's
// values into its cell text, preserving formatting of untouched runs.
func (d *Document) cloneRow(row *Row, record map[string]string) []byte {
	type relEdit struct {
		start, end int64
		repl       []byte
	}
	var rel []relEdit

	for _, cell := range row.Cells {
		combined := cell.Text()
		replaced := combined
		for tag, value := range record {
			replaced = markerPattern(tag).ReplaceAllLiteralString(replaced, value)
		}
		if replaced == combined {
			continue
		}
		wrote := false
		for _, p := range cell.Paragraphs {
			for _, t := range p.texts {
				if !t.writable {
					continue
				}
				if !wrote {
					rel = append(rel, relEdit{start: t.start - row.start, end: t.end - row.start, repl: escapeXML(replaced)})
					wrote = true
				} else {
					rel = append(rel, relEdit{start: t.start - row.start, end: t.end - row.start})
				}
			}
		}
	}

	raw := d.docXML[row.start:row.end]
	if len(rel) == 0 {
		return append([]byte(nil), raw...)
	}
	sort.Slice(rel, func(i, j int) bool { return rel[i].start < rel[j].start })

	var out bytes.Buffer
	pos := int64(0)
	for _, e := range rel {
		out.Write(raw[pos:e.start])
		out.Write(e.repl)
		pos = e.end
	}
	out.Write(raw[pos:])
	return out.Bytes()
}
