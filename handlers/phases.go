package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"p9e.in/dirtrack/config"
	"p9e.in/dirtrack/models"
)

func GetAllPhases(w http.ResponseWriter, r *http.Request) {
	var phases []models.Phase
	if err := config.DB.Order("name").Find(&phases).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, phases)
}

func CreatePhase(w http.ResponseWriter, r *http.Request) {
	var phase models.Phase
	if err := json.NewDecoder(r.Body).Decode(&phase); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if errs := phase.Validate(); len(errs) > 0 {
		respondValidation(w, errs)
		return
	}
	if err := config.DB.Create(&phase).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, phase)
}

func UpdatePhase(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)

	var phase models.Phase
	if err := config.DB.First(&phase, "id = ?", params["id"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "phase not found")
		return
	}
	if err := json.NewDecoder(r.Body).Decode(&phase); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if errs := phase.Validate(); len(errs) > 0 {
		respondValidation(w, errs)
		return
	}
	if err := config.DB.Save(&phase).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, phase)
}

// DeletePhase rejects deletion while any report still references the
// phase, leaving both records intact.
func DeletePhase(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)

	var phase models.Phase
	if err := config.DB.First(&phase, "id = ?", params["id"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "phase not found")
		return
	}

	var count int64
	config.DB.Model(&models.Report{}).Where("phase_id = ?", phase.ID).Count(&count)
	if count > 0 {
		respondError(w, http.StatusConflict, "cannot delete phase: reports still reference it")
		return
	}

	if err := config.DB.Delete(&phase).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
