package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/datatypes"
	"p9e.in/dirtrack/config"
	"p9e.in/dirtrack/models"
)

type checklistEntryReq struct {
	SpecItemID uuid.UUID         `json:"spec_item_id"`
	Answers    map[string]string `json:"answers"`
}

// UpsertChecklistEntry creates or updates the single checklist entry for a
// (report, spec item) pair. Answers replace the stored map wholesale.
func UpsertChecklistEntry(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)

	var report models.Report
	if err := config.DB.First(&report, "id = ?", params["id"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "report not found")
		return
	}

	var req checklistEntryReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	var spec models.SpecItem
	if err := config.DB.First(&spec, "id = ?", req.SpecItemID).Error; err != nil {
		respondError(w, http.StatusUnprocessableEntity, "spec item must exist")
		return
	}

	raw, err := json.Marshal(req.Answers)
	if err != nil {
		http.Error(w, "invalid answers", http.StatusBadRequest)
		return
	}

	var entry models.ChecklistEntry
	err = config.DB.Where("report_id = ? AND spec_item_id = ?", report.ID, spec.ID).
		First(&entry).Error
	if err != nil {
		entry = models.ChecklistEntry{ReportID: report.ID, SpecItemID: spec.ID}
	}
	entry.ChecklistAnswers = datatypes.JSON(raw)

	if errs := entry.ValidateAnswers(); len(errs) > 0 {
		respondError(w, http.StatusUnprocessableEntity, errs.Error())
		return
	}

	if err := config.DB.Save(&entry).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":      "ok",
		"id":          entry.ID,
		"code":        spec.Code,
		"description": spec.Description,
	})
}

// GetChecklistEntries lists a report's spec-item checklists with the
// question sets resolved, so the client renders questions and answers from
// one payload.
func GetChecklistEntries(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)

	var entries []models.ChecklistEntry
	if err := config.DB.Preload("SpecItem").
		Where("report_id = ?", params["id"]).
		Find(&entries).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	out := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		item := map[string]interface{}{
			"id":           e.ID,
			"spec_item_id": e.SpecItemID,
			"answers":      e.Answers(),
		}
		if e.SpecItem != nil {
			item["code"] = e.SpecItem.Code
			item["description"] = e.SpecItem.Description
			item["questions"] = []string(e.SpecItem.ChecklistQuestions)
		}
		out = append(out, item)
	}
	respondJSON(w, http.StatusOK, out)
}

func DeleteChecklistEntry(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)

	var entry models.ChecklistEntry
	if err := config.DB.First(&entry, "id = ?", params["entryId"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "checklist entry not found")
		return
	}
	if err := config.DB.Delete(&entry).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
