package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/mux"
	"p9e.in/dirtrack/config"
	"p9e.in/dirtrack/models"
)

func GetAllSpecItems(w http.ResponseWriter, r *http.Request) {
	q := config.DB.Order("code")
	if division := r.URL.Query().Get("division"); division != "" {
		q = q.Where("division = ?", division)
	}
	var specs []models.SpecItem
	if err := q.Find(&specs).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, specs)
}

func GetSpecItem(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)

	var spec models.SpecItem
	if err := config.DB.First(&spec, "id = ?", params["id"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "spec item not found")
		return
	}
	respondJSON(w, http.StatusOK, spec)
}

// specItemReq accepts the checklist either as a list or as newline text
// from the editing form.
type specItemReq struct {
	Code               string   `json:"code"`
	Description        string   `json:"description"`
	Division           string   `json:"division"`
	ChecklistQuestions []string `json:"checklist_questions"`
	QuestionsText      *string  `json:"questions_text"`
}

func (req *specItemReq) apply(spec *models.SpecItem) {
	spec.Code = req.Code
	spec.Description = req.Description
	spec.Division = req.Division
	if req.QuestionsText != nil {
		spec.ChecklistQuestions = models.ParseQuestionsText(*req.QuestionsText)
	} else if req.ChecklistQuestions != nil {
		spec.ChecklistQuestions = req.ChecklistQuestions
	}
}

func CreateSpecItem(w http.ResponseWriter, r *http.Request) {
	var req specItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	var spec models.SpecItem
	req.apply(&spec)
	if errs := spec.Validate(); len(errs) > 0 {
		respondValidation(w, errs)
		return
	}
	if err := config.DB.Create(&spec).Error; err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			respondValidation(w, models.ValidationErrors{{Field: "code", Message: "has already been taken"}})
		} else {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}
	respondJSON(w, http.StatusCreated, spec)
}

func UpdateSpecItem(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)

	var spec models.SpecItem
	if err := config.DB.First(&spec, "id = ?", params["id"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "spec item not found")
		return
	}
	var req specItemReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	req.apply(&spec)
	if errs := spec.Validate(); len(errs) > 0 {
		respondValidation(w, errs)
		return
	}
	if err := config.DB.Save(&spec).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, spec)
}

func DeleteSpecItem(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)

	var spec models.SpecItem
	if err := config.DB.First(&spec, "id = ?", params["id"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "spec item not found")
		return
	}

	var count int64
	config.DB.Model(&models.BidItem{}).Where("spec_item_id = ?", spec.ID).Count(&count)
	if count > 0 {
		respondError(w, http.StatusConflict, "cannot delete spec item: bid items still reference it")
		return
	}

	if err := config.DB.Delete(&spec).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
