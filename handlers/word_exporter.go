package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"p9e.in/dirtrack/docx"
	"p9e.in/dirtrack/models"
)

const defaultTemplatePath = "assets/documents/inspection_template.docx"

func templatePath() string {
	if p := os.Getenv("TEMPLATE_PATH"); p != "" {
		return p
	}
	return defaultTemplatePath
}

// ExportReportToWord renders a report into the Word template: placeholder
// substitution plus one duplicated table row per child record.
func ExportReportToWord(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)

	var report models.Report
	if err := loadFullReport(&report, params["id"]); err != nil {
		respondError(w, http.StatusNotFound, "report not found")
		return
	}

	doc, err := docx.Open(templatePath())
	if errors.Is(err, docx.ErrMissingTemplate) {
		respondError(w, http.StatusNotFound, "report template not found; place the template at "+templatePath())
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	doc.ReplaceAll(wordReplacements(&report))
	populateWordTables(doc, &report)

	var buf bytes.Buffer
	if err := doc.Save(&buf); err != nil {
		http.Error(w, "Failed to generate Word document", http.StatusInternalServerError)
		return
	}

	filename := fmt.Sprintf("DIR_%s_%s.docx", report.DirNumber, formatLogDate(report.StartDate))
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.wordprocessingml.document")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// wordReplacements builds the placeholder map for the template body. The
// token names are the ones inspection templates are authored against, so
// they stay fixed even where a shorter name would read better.
func wordReplacements(r *models.Report) map[string]string {
	return map[string]string{
		"{{DIR_NUM}}":         r.DirNumber,
		"{{PROJECT}}":         reportProjectName(r),
		"{{INSPECTOR}}":       r.InspectorName(),
		"{{START_DATE}}":      formatDocDate(r.StartDate),
		"{{END_DATE}}":        formatDocDate(r.EndDate),
		"{{START_SHIFT}}":     r.ShiftStart,
		"{{END_SHIFT}}":       r.ShiftEnd,
		"{{TEMP}}":            joinNonBlank(" / ", tempString(r.Temp1), tempString(r.Temp2), tempString(r.Temp3)),
		"{{WIND}}":            joinNonBlank(" / ", r.Wind1, r.Wind2, r.Wind3),
		"{{PRECIP}}":          joinNonBlank(" / ", r.Precip1, r.Precip2, r.Precip3),
		"{{WEATHER}}":         joinNonBlank(" / ", r.WeatherSummary1, r.WeatherSummary2, r.WeatherSummary3),
		"{{VIS}}":             joinNonBlank(" / ", r.Visibility1, r.Visibility2, r.Visibility3),
		"{{SURFACE}}":         r.SurfaceConditions,
		"{{WEATHER_EVENT}}":   "N/A",
		"{{TC_STATUS}}":       models.Humanize(string(r.TrafficControl)),
		"{{ENV_STATUS}}":      models.Humanize(string(r.Environmental)),
		"{{SEC_STATUS}}":      models.Humanize(string(r.Security)),
		"{{SAF_STATUS}}":      models.Humanize(string(r.SafetyIncident)),
		"{{SAF_DESCRIPTION}}": orNone(r.SafetyDesc),
		"{{AIR_OPS}}":         models.Humanize(string(r.AirOpsCoordination)),
		"{{SWPPP}}":           models.Humanize(string(r.SwpppControls)),
		"{{DEF_STATUS}}":      models.StatusLabel(string(r.DeficiencyStatus)),
		"{{DEF_DESC}}":        orNone(r.DeficiencyDesc),
		"{{COMMENTARY}}":      r.Commentary,
		"{{ADD_ACTIVITY}}":    r.AdditionalActivities,
		"{{ADD_INFO}}":        r.AdditionalInfo,
	}
}

// populateWordTables fills the four dynamic tables. A missing marker or an
// empty collection leaves the template table untouched.
func populateWordTables(doc *docx.Document, r *models.Report) {
	qaRecords := make([]map[string]string, 0, len(r.QaEntries))
	for _, qa := range r.QaEntries {
		qaRecords = append(qaRecords, map[string]string{
			"[CODE]":     string(qa.QaType),
			"[TEST]":     string(qa.QaType),
			"[LOCATION]": qa.Location,
			"[RESULT]":   models.HumanizeQaResult(qa.Result),
			"[REMARKS]":  qa.Remarks,
		})
	}
	doc.PopulateTable("[TEST]", []string{"[CODE]", "[TEST]", "[LOCATION]", "[RESULT]", "[REMARKS]"}, qaRecords)

	pqRecords := make([]map[string]string, 0, len(r.PlacedQuantities))
	for _, pq := range r.PlacedQuantities {
		code, desc, unit := "", "", ""
		if pq.BidItem != nil {
			code = pq.BidItem.Code
			desc = pq.BidItem.Description
			unit = pq.BidItem.Unit
		}
		pqRecords = append(pqRecords, map[string]string{
			"[CODE]":  code,
			"[DESC]":  desc,
			"[QTY]":   joinNonBlank(" ", strconv.FormatFloat(pq.Quantity, 'f', -1, 64), unit),
			"[NOTES]": joinNonBlank("; ", pq.Location, pq.Notes),
		})
	}
	doc.PopulateTable("[DESC]", []string{"[CODE]", "[DESC]", "[QTY]", "[NOTES]"}, pqRecords)

	crewRecords := make([]map[string]string, 0, len(r.CrewEntries))
	for _, crew := range r.CrewEntries {
		crewRecords = append(crewRecords, map[string]string{
			"[CONTRACTOR]":  crew.Contractor,
			"[SURVEY]":      strconv.Itoa(crew.SurveyCount),
			"[SUPER]":       strconv.Itoa(crew.SuperintendentCount),
			"[FOREMAN]":     strconv.Itoa(crew.ForemanCount),
			"[OPERATOR]":    strconv.Itoa(crew.OperatorCount),
			"[LABORER]":     strconv.Itoa(crew.LaborerCount),
			"[ELECTRICIAN]": strconv.Itoa(crew.ElectricianCount),
		})
	}
	doc.PopulateTable("[CONTRACTOR]",
		[]string{"[CONTRACTOR]", "[SURVEY]", "[SUPER]", "[FOREMAN]", "[OPERATOR]", "[LABORER]", "[ELECTRICIAN]"},
		crewRecords)

	eqRecords := make([]map[string]string, 0, len(r.EquipmentEntries))
	for _, eq := range r.EquipmentEntries {
		eqRecords = append(eqRecords, map[string]string{
			"[EQUIPMENT]": eq.MakeModel,
			"[QTY]":       strconv.Itoa(eq.Quantity),
			"[HOURS]":     strconv.FormatFloat(eq.Hours, 'f', -1, 64),
		})
	}
	doc.PopulateTable("[EQUIPMENT]", []string{"[EQUIPMENT]", "[QTY]", "[HOURS]"}, eqRecords)
}

// formatDocDate renders dates the way the printed form expects them.
func formatDocDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("01/02/2006")
}

func tempString(t *int) string {
	if t == nil {
		return ""
	}
	return strconv.Itoa(*t) + "F"
}

// joinNonBlank joins the non-empty values with sep, so a report with one
// weather reading renders "72F" rather than "72F / / ".
func joinNonBlank(sep string, values ...string) string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			out = append(out, v)
		}
	}
	return strings.Join(out, sep)
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "None"
	}
	return s
}
