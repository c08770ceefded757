package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"p9e.in/dirtrack/config"
	"p9e.in/dirtrack/models"
)

type attachmentReq struct {
	Caption  string `json:"caption"`
	FileName string `json:"file_name"`
	FileURL  string `json:"file_url"`
}

// CreateReportAttachment records metadata for an already-uploaded file.
// The upload endpoint returns the URL; this ties it to the report.
func CreateReportAttachment(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)

	reportID, err := uuid.Parse(params["id"])
	if err != nil {
		respondError(w, http.StatusNotFound, "report not found")
		return
	}
	var report models.Report
	if err := config.DB.First(&report, "id = ?", reportID).Error; err != nil {
		respondError(w, http.StatusNotFound, "report not found")
		return
	}

	var req attachmentReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if req.FileName == "" || req.FileURL == "" {
		respondValidation(w, models.ValidationErrors{
			{Field: "file_name", Message: "can't be blank"},
			{Field: "file_url", Message: "can't be blank"},
		})
		return
	}

	att := models.ReportAttachment{
		ReportID: report.ID,
		Caption:  req.Caption,
		FileName: req.FileName,
		FileURL:  req.FileURL,
	}
	if err := config.DB.Create(&att).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, att)
}

func GetReportAttachments(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)

	var atts []models.ReportAttachment
	if err := config.DB.Where("report_id = ?", params["id"]).
		Order("created_at").Find(&atts).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, atts)
}

func DeleteReportAttachment(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)

	var att models.ReportAttachment
	if err := config.DB.First(&att, "id = ?", params["attachmentId"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "attachment not found")
		return
	}
	if err := config.DB.Delete(&att).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
