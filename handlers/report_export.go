package handlers

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
	"p9e.in/dirtrack/models"
)

var masterLogHeaders = []string{
	"DIR #", "Start Date", "End Date", "Inspector", "Project", "Phase",
	"Status", "Shift", "Temp (F)", "Wind", "Contractor",
	"Item Code", "Item Description", "Quantity", "Unit", "Location", "Notes",
}

// BuildMasterLogRows flattens reports into master-log rows, one per placed
// quantity. A report with no quantities still appears, as a single "No
// Activity" placeholder row carrying its commentary.
func BuildMasterLogRows(reports []models.Report) [][]string {
	rows := make([][]string, 0, len(reports))
	for i := range reports {
		rows = append(rows, reportLogRows(&reports[i])...)
	}
	return rows
}

func reportLogRows(r *models.Report) [][]string {
	base := []string{
		r.DirNumber,
		formatLogDate(r.StartDate),
		formatLogDate(r.EndDate),
		r.InspectorName(),
		reportProjectName(r),
		reportPhaseName(r),
		models.StatusLabel(string(r.Status)),
		r.Shift(),
		joinNonBlank(" / ", formatTemp(r.Temp1), formatTemp(r.Temp2), formatTemp(r.Temp3)),
		joinNonBlank(" / ", r.Wind1, r.Wind2, r.Wind3),
		r.Contractor,
	}

	if len(r.PlacedQuantities) == 0 {
		row := append(append([]string{}, base...),
			"---", "No Activity", "0", "---", "---", r.Commentary)
		return [][]string{row}
	}

	rows := make([][]string, 0, len(r.PlacedQuantities))
	for _, pq := range r.PlacedQuantities {
		code, desc, unit := "---", "---", "---"
		if pq.BidItem != nil {
			code = pq.BidItem.Code
			desc = pq.BidItem.Description
			unit = pq.BidItem.Unit
		}
		row := append(append([]string{}, base...),
			code, desc, strconv.FormatFloat(pq.Quantity, 'f', -1, 64), unit, pq.Location, pq.Notes)
		rows = append(rows, row)
	}
	return rows
}

func reportProjectName(r *models.Report) string {
	if r.Project == nil {
		return ""
	}
	return r.Project.Name
}

func reportPhaseName(r *models.Report) string {
	if r.Phase == nil {
		return ""
	}
	return r.Phase.Name
}

func formatLogDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

func formatTemp(t *int) string {
	if t == nil {
		return ""
	}
	return strconv.Itoa(*t)
}

func masterLogFilename(ext string) string {
	return fmt.Sprintf("Project_Master_Log_%s.%s", time.Now().Format("2006-01-02"), ext)
}

func exportMasterLogCSV(w http.ResponseWriter, reports []models.Report) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	writer.Write(masterLogHeaders)
	for _, row := range BuildMasterLogRows(reports) {
		writer.Write(row)
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		http.Error(w, "Failed to generate CSV file", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", masterLogFilename("csv")))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func exportMasterLogExcel(w http.ResponseWriter, reports []models.Report) {
	f := excelize.NewFile()
	sheetName := "Master Log"

	index, err := f.NewSheet(sheetName)
	if err != nil {
		http.Error(w, "Failed to generate Excel file", http.StatusInternalServerError)
		return
	}
	f.SetActiveSheet(index)

	titleStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
			Size: 16,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "left",
			Vertical:   "center",
		},
	})
	f.SetCellValue(sheetName, "A1", "Daily Inspection Report Master Log")
	f.SetCellStyle(sheetName, "A1", "A1", titleStyle)
	f.SetRowHeight(sheetName, 1, 30)
	f.SetCellValue(sheetName, "A2", fmt.Sprintf("Generated: %s", time.Now().Format("2006-01-02 15:04:05")))

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#4472C4"},
			Pattern: 1,
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
		},
	})
	for colIdx, header := range masterLogHeaders {
		cell, _ := excelize.CoordinatesToCellName(colIdx+1, 4)
		f.SetCellValue(sheetName, cell, header)
		f.SetCellStyle(sheetName, cell, cell, headerStyle)
		col, _ := excelize.ColumnNumberToName(colIdx + 1)
		f.SetColWidth(sheetName, col, col, 18)
	}

	dataStyle, _ := f.NewStyle(&excelize.Style{
		Border: []excelize.Border{
			{Type: "left", Color: "CCCCCC", Style: 1},
			{Type: "right", Color: "CCCCCC", Style: 1},
			{Type: "top", Color: "CCCCCC", Style: 1},
			{Type: "bottom", Color: "CCCCCC", Style: 1},
		},
	})
	for rowIdx, row := range BuildMasterLogRows(reports) {
		for colIdx, value := range row {
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+5)
			f.SetCellValue(sheetName, cell, value)
			f.SetCellStyle(sheetName, cell, cell, dataStyle)
		}
	}

	f.DeleteSheet("Sheet1")

	buffer, err := f.WriteToBuffer()
	if err != nil {
		http.Error(w, "Failed to write Excel file", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s", masterLogFilename("xlsx")))
	w.Header().Set("Content-Length", strconv.Itoa(buffer.Len()))
	w.WriteHeader(http.StatusOK)
	w.Write(buffer.Bytes())
}
