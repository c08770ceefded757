package handlers

import (
	"testing"
	"time"

	"p9e.in/dirtrack/models"
)

func testReport(t *testing.T) models.Report {
	t.Helper()
	start, err := time.Parse("2006-01-02", "2026-03-14")
	if err != nil {
		t.Fatal(err)
	}
	temp1, temp3 := 72, 70
	return models.Report{
		DirNumber:  "DIR-0042",
		StartDate:  &start,
		ShiftStart: "0700",
		ShiftEnd:   "1730",
		Status:     models.StatusQCReview,
		Temp1:      &temp1,
		Temp3:      &temp3,
		Wind1:      "5 mph NW",
		Wind2:      "10 mph W",
		Contractor: "Acme Paving",
		Commentary: "No work performed, weather day",
		User:       &models.User{Name: "J. Doe"},
		Project:    &models.Project{Name: "Runway 9L Rehab"},
		Phase:      &models.Phase{Name: "Phase 2"},
	}
}

func TestBuildMasterLogRowsWithQuantities(t *testing.T) {
	r := testReport(t)
	r.PlacedQuantities = []models.PlacedQuantity{
		{
			Quantity: 250.5,
			Location: "Sta 10+00 to 12+50",
			Notes:    "north half",
			BidItem:  &models.BidItem{Code: "P-401-1", Description: "HMA Surface Course", Unit: "TON"},
		},
		{
			Quantity: 80,
			BidItem:  &models.BidItem{Code: "P-152-2", Description: "Unclassified Excavation", Unit: "CY"},
		},
	}

	rows := BuildMasterLogRows([]models.Report{r})
	if len(rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(rows))
	}
	first := rows[0]
	if len(first) != len(masterLogHeaders) {
		t.Fatalf("row width = %d, want %d", len(first), len(masterLogHeaders))
	}
	// Weather slots join across all three readings, blanks skipped, and
	// the status renders as its label rather than the stored tag.
	want := []string{
		"DIR-0042", "2026-03-14", "", "J. Doe", "Runway 9L Rehab", "Phase 2",
		"Qc review", "0700-1730", "72 / 70", "5 mph NW / 10 mph W", "Acme Paving",
		"P-401-1", "HMA Surface Course", "250.5", "TON", "Sta 10+00 to 12+50", "north half",
	}
	for i, v := range want {
		if first[i] != v {
			t.Errorf("col %d (%s) = %q, want %q", i, masterLogHeaders[i], first[i], v)
		}
	}
	if rows[1][11] != "P-152-2" || rows[1][13] != "80" {
		t.Errorf("second row = %v", rows[1])
	}
}

func TestBuildMasterLogRowsNoActivityPlaceholder(t *testing.T) {
	r := testReport(t)

	rows := BuildMasterLogRows([]models.Report{r})
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1 placeholder row", len(rows))
	}
	row := rows[0]
	if row[11] != "---" || row[12] != "No Activity" || row[13] != "0" || row[14] != "---" || row[15] != "---" {
		t.Errorf("placeholder columns = %v", row[11:16])
	}
	if row[16] != "No work performed, weather day" {
		t.Errorf("notes column = %q, want the commentary", row[16])
	}
}

func TestBuildMasterLogRowsEmpty(t *testing.T) {
	if rows := BuildMasterLogRows(nil); len(rows) != 0 {
		t.Errorf("got %d rows for no reports", len(rows))
	}
}

func TestJoinNonBlank(t *testing.T) {
	tests := []struct {
		name     string
		values   []string
		expected string
	}{
		{"all present", []string{"72F", "75F", "70F"}, "72F / 75F / 70F"},
		{"middle blank", []string{"72F", "", "70F"}, "72F / 70F"},
		{"only first", []string{"72F", "", ""}, "72F"},
		{"all blank", []string{"", " ", ""}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := joinNonBlank(" / ", tt.values...); got != tt.expected {
				t.Errorf("joinNonBlank = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestOrNone(t *testing.T) {
	if got := orNone(""); got != "None" {
		t.Errorf("orNone(\"\") = %q", got)
	}
	if got := orNone("  "); got != "None" {
		t.Errorf("orNone(blank) = %q", got)
	}
	if got := orNone("minor spall at Sta 11+00"); got != "minor spall at Sta 11+00" {
		t.Errorf("orNone(text) = %q", got)
	}
}

func TestWordReplacements(t *testing.T) {
	r := testReport(t)
	r.SafetyIncident = models.SafetyIncidentNo
	r.TrafficControl = models.TrafficControlNA
	r.DeficiencyStatus = models.NoDeficiency

	m := wordReplacements(&r)

	if got := m["{{START_DATE}}"]; got != "03/14/2026" {
		t.Errorf("{{START_DATE}} = %q", got)
	}
	if got := m["{{START_SHIFT}}"]; got != "0700" {
		t.Errorf("{{START_SHIFT}} = %q", got)
	}
	if got := m["{{END_SHIFT}}"]; got != "1730" {
		t.Errorf("{{END_SHIFT}} = %q", got)
	}
	if got := m["{{TEMP}}"]; got != "72F / 70F" {
		t.Errorf("{{TEMP}} = %q, blank slots must be skipped", got)
	}
	if got := m["{{SAF_STATUS}}"]; got != "No" {
		t.Errorf("{{SAF_STATUS}} = %q", got)
	}
	if got := m["{{TC_STATUS}}"]; got != "N/A" {
		t.Errorf("{{TC_STATUS}} = %q", got)
	}
	if got := m["{{SAF_DESCRIPTION}}"]; got != "None" {
		t.Errorf("{{SAF_DESCRIPTION}} = %q", got)
	}
	if got := m["{{DEF_STATUS}}"]; got != "No deficiency" {
		t.Errorf("{{DEF_STATUS}} = %q", got)
	}
	if got := m["{{PROJECT}}"]; got != "Runway 9L Rehab" {
		t.Errorf("{{PROJECT}} = %q", got)
	}
}

func TestWordReplacementsCoverTemplateTokens(t *testing.T) {
	// Every token an inspection template may carry must have a map entry;
	// a missing key would leave raw {{...}} text in the exported document.
	tokens := []string{
		"{{PROJECT}}", "{{START_DATE}}", "{{START_SHIFT}}", "{{END_DATE}}",
		"{{END_SHIFT}}", "{{INSPECTOR}}", "{{TEMP}}", "{{WEATHER}}",
		"{{WIND}}", "{{PRECIP}}", "{{VIS}}", "{{SURFACE}}",
		"{{WEATHER_EVENT}}", "{{SEC_STATUS}}", "{{TC_STATUS}}",
		"{{AIR_OPS}}", "{{SWPPP}}", "{{ENV_STATUS}}", "{{SAF_STATUS}}",
		"{{SAF_DESCRIPTION}}", "{{DEF_STATUS}}", "{{DEF_DESC}}",
		"{{COMMENTARY}}", "{{ADD_ACTIVITY}}", "{{ADD_INFO}}", "{{DIR_NUM}}",
	}

	r := testReport(t)
	m := wordReplacements(&r)
	for _, token := range tokens {
		if _, ok := m[token]; !ok {
			t.Errorf("replacement map is missing %s", token)
		}
	}
}
