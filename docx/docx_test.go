package docx

import (
	"archive/zip"
	"bytes"
	"strings"
	"testing"
)

const testDocumentXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
	`<w:p><w:r><w:t>Project: {{PRO</w:t></w:r><w:r><w:t>JECT}}</w:t></w:r></w:p>` +
	`<w:p><w:r><w:t>Date: {{START_DATE}}</w:t></w:r></w:p>` +
	`<w:tbl>` +
	`<w:tr><w:tc><w:p><w:r><w:t>Test</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>Result</w:t></w:r></w:p></w:tc></w:tr>` +
	`<w:tr><w:tc><w:p><w:r><w:t>` + "“" + `[TEST]` + "”" + `</w:t></w:r></w:p></w:tc><w:tc><w:p><w:r><w:t>[RESULT]</w:t></w:r></w:p></w:tc></w:tr>` +
	`</w:tbl>` +
	`</w:body></w:document>`

func buildTestDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	fw, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte(documentXML)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func roundTrip(t *testing.T, d *Document) *Document {
	t.Helper()
	var buf bytes.Buffer
	if err := d.Save(&buf); err != nil {
		t.Fatalf("Save: %v", err)
	}
	out, err := OpenBytes(buf.Bytes())
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	return out
}

func documentText(d *Document) string {
	var b strings.Builder
	for _, p := range d.paragraphs {
		b.WriteString(p.Text())
		b.WriteString("\n")
	}
	return b.String()
}

func TestOpenMissingTemplate(t *testing.T) {
	_, err := Open("testdata/does_not_exist.docx")
	if err != ErrMissingTemplate {
		t.Fatalf("Open missing file: got %v, want ErrMissingTemplate", err)
	}
}

func TestParseIndexesStructure(t *testing.T) {
	d, err := OpenBytes(buildTestDocx(t, testDocumentXML))
	if err != nil {
		t.Fatal(err)
	}

	// 2 body paragraphs + 4 cell paragraphs
	if got := len(d.paragraphs); got != 6 {
		t.Errorf("paragraph count = %d, want 6", got)
	}
	if got := len(d.Tables()); got != 1 {
		t.Fatalf("table count = %d, want 1", got)
	}
	tb := d.Tables()[0]
	if got := len(tb.Rows); got != 2 {
		t.Fatalf("row count = %d, want 2", got)
	}
	if got := tb.Rows[0].Cells[0].Text(); got != "Test" {
		t.Errorf("header cell text = %q, want %q", got, "Test")
	}
}

func TestReplaceAllAcrossRuns(t *testing.T) {
	d, err := OpenBytes(buildTestDocx(t, testDocumentXML))
	if err != nil {
		t.Fatal(err)
	}

	// {{PROJECT}} is split across two runs in the template.
	d.ReplaceAll(map[string]string{
		"{{PROJECT}}":    "Runway 9L Rehabilitation",
		"{{START_DATE}}": "03/14/2026",
	})
	out := roundTrip(t, d)

	text := documentText(out)
	if !strings.Contains(text, "Project: Runway 9L Rehabilitation") {
		t.Errorf("split-run placeholder not replaced, text:\n%s", text)
	}
	if !strings.Contains(text, "Date: 03/14/2026") {
		t.Errorf("single-run placeholder not replaced, text:\n%s", text)
	}
	if strings.Contains(text, "{{") {
		t.Errorf("unreplaced placeholder remains, text:\n%s", text)
	}
}

func TestReplaceAllEscapesXML(t *testing.T) {
	d, err := OpenBytes(buildTestDocx(t, testDocumentXML))
	if err != nil {
		t.Fatal(err)
	}
	d.ReplaceAll(map[string]string{"{{START_DATE}}": "A < B & C"})
	out := roundTrip(t, d)

	if !strings.Contains(documentText(out), "Date: A < B & C") {
		t.Errorf("escaped value did not survive the round trip:\n%s", documentText(out))
	}
}

func TestPopulateTable(t *testing.T) {
	d, err := OpenBytes(buildTestDocx(t, testDocumentXML))
	if err != nil {
		t.Fatal(err)
	}

	records := []map[string]string{
		{"[TEST]": "Density", "[RESULT]": "Pass"},
		{"[TEST]": "Gradation", "[RESULT]": "Pending"},
		{"[TEST]": "Thickness", "[RESULT]": "Fail"},
	}
	if !d.PopulateTable("[TEST]", []string{"[TEST]", "[RESULT]"}, records) {
		t.Fatal("PopulateTable did not find the marked table")
	}
	out := roundTrip(t, d)

	tb := out.Tables()[0]
	// header + one clone per record, template row removed
	if got := len(tb.Rows); got != 4 {
		t.Fatalf("row count = %d, want 4", got)
	}
	wantFirst := []string{"Density", "Gradation", "Thickness"}
	wantSecond := []string{"Pass", "Pending", "Fail"}
	for i, row := range tb.Rows[1:] {
		if got := row.Cells[0].Text(); got != wantFirst[i] {
			t.Errorf("row %d cell 0 = %q, want %q", i+1, got, wantFirst[i])
		}
		if got := row.Cells[1].Text(); got != wantSecond[i] {
			t.Errorf("row %d cell 1 = %q, want %q", i+1, got, wantSecond[i])
		}
	}
	if strings.Contains(documentText(out), "[TEST]") {
		t.Error("template row survived population")
	}
}

func TestPopulateTableSmartQuotesStripped(t *testing.T) {
	// The template's marker cell is wrapped in curly quotes; the clone
	// must not keep them around the substituted value.
	d, err := OpenBytes(buildTestDocx(t, testDocumentXML))
	if err != nil {
		t.Fatal(err)
	}
	d.PopulateTable("[TEST]", []string{"[TEST]", "[RESULT]"}, []map[string]string{
		{"[TEST]": "Density", "[RESULT]": "Pass"},
	})
	out := roundTrip(t, d)

	if got := out.Tables()[0].Rows[1].Cells[0].Text(); got != "Density" {
		t.Errorf("quoted marker cell = %q, want %q", got, "Density")
	}
}

func TestPopulateTableEmptyRecordsLeavesTemplate(t *testing.T) {
	d, err := OpenBytes(buildTestDocx(t, testDocumentXML))
	if err != nil {
		t.Fatal(err)
	}
	if !d.PopulateTable("[TEST]", []string{"[TEST]", "[RESULT]"}, nil) {
		t.Fatal("PopulateTable did not find the marked table")
	}
	out := roundTrip(t, d)

	tb := out.Tables()[0]
	if got := len(tb.Rows); got != 2 {
		t.Fatalf("row count = %d, want 2 (template row kept)", got)
	}
	if !strings.Contains(normalizeQuotes(tb.Rows[1].Cells[0].Text()), "[TEST]") {
		t.Error("template row content was altered despite empty records")
	}
}

func TestPopulateTableUnknownMarker(t *testing.T) {
	d, err := OpenBytes(buildTestDocx(t, testDocumentXML))
	if err != nil {
		t.Fatal(err)
	}
	if d.PopulateTable("[EQUIPMENT]", []string{"[EQUIPMENT]"}, []map[string]string{{"[EQUIPMENT]": "Dozer"}}) {
		t.Error("PopulateTable reported success for a marker the template lacks")
	}
}

func TestReplaceInsideRemovedRowIsDropped(t *testing.T) {
	// A placeholder edit landing inside a removed template row must not
	// corrupt the spliced XML.
	d, err := OpenBytes(buildTestDocx(t, testDocumentXML))
	if err != nil {
		t.Fatal(err)
	}
	d.ReplaceAll(map[string]string{"[RESULT]": "should vanish"})
	d.PopulateTable("[TEST]", []string{"[TEST]", "[RESULT]"}, []map[string]string{
		{"[TEST]": "Density", "[RESULT]": "Pass"},
	})
	out := roundTrip(t, d)

	if strings.Contains(documentText(out), "should vanish") {
		t.Error("edit inside a removed row leaked into the output")
	}
	if got := len(out.Tables()[0].Rows); got != 2 {
		t.Errorf("row count = %d, want 2", got)
	}
}
