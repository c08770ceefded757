package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"p9e.in/dirtrack/config"
	"p9e.in/dirtrack/models"
	"p9e.in/dirtrack/utils"
)

func GetAllProjects(w http.ResponseWriter, r *http.Request) {
	var projects []models.Project
	if err := config.DB.Order("name").Find(&projects).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, projects)
}

func GetProject(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)

	var project models.Project
	if err := config.DB.Preload("BidItems").Preload("BidItems.SpecItem").
		First(&project, "id = ?", params["id"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "project not found")
		return
	}
	respondJSON(w, http.StatusOK, project)
}

func CreateProject(w http.ResponseWriter, r *http.Request) {
	var project models.Project
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if errs := project.Validate(); len(errs) > 0 {
		respondValidation(w, errs)
		return
	}
	if err := utils.ValidateBoundary(project.SiteBoundary); err != nil {
		respondValidation(w, models.ValidationErrors{{Field: "site_boundary", Message: err.Error()}})
		return
	}
	if err := config.DB.Create(&project).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, project)
}

func UpdateProject(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)

	var project models.Project
	if err := config.DB.First(&project, "id = ?", params["id"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "project not found")
		return
	}
	if err := json.NewDecoder(r.Body).Decode(&project); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if errs := project.Validate(); len(errs) > 0 {
		respondValidation(w, errs)
		return
	}
	if err := utils.ValidateBoundary(project.SiteBoundary); err != nil {
		respondValidation(w, models.ValidationErrors{{Field: "site_boundary", Message: err.Error()}})
		return
	}
	if err := config.DB.Save(&project).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, project)
}

func DeleteProject(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)

	var project models.Project
	if err := config.DB.First(&project, "id = ?", params["id"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "project not found")
		return
	}

	var reportCount int64
	config.DB.Model(&models.Report{}).Where("project_id = ?", project.ID).Count(&reportCount)
	if reportCount > 0 {
		respondError(w, http.StatusConflict, "cannot delete project with existing reports")
		return
	}

	if err := config.DB.Delete(&project).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
