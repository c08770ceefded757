package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"p9e.in/dirtrack/config"
	"p9e.in/dirtrack/middleware"
	"p9e.in/dirtrack/models"
	"p9e.in/dirtrack/utils"
)

// GetAllReports lists reports through the search filter. ?format=csv or
// ?format=xlsx streams the master log instead of JSON.
func GetAllReports(w http.ResponseWriter, r *http.Request) {
	requesterID, _ := uuid.Parse(middleware.GetUserID(r))
	filter := models.ParseReportFilter(r, requesterID)

	q := filter.Apply(config.DB).
		Preload("Project").
		Preload("Phase").
		Preload("User").
		Preload("PlacedQuantities").
		Preload("PlacedQuantities.BidItem").
		Order("reports.start_date DESC, reports.created_at DESC")

	var reports []models.Report
	if err := q.Find(&reports).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	switch r.URL.Query().Get("format") {
	case "csv":
		exportMasterLogCSV(w, reports)
	case "xlsx":
		exportMasterLogExcel(w, reports)
	default:
		respondJSON(w, http.StatusOK, reports)
	}
}

func GetReport(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)

	var report models.Report
	if err := loadFullReport(&report, params["id"]); err != nil {
		respondError(w, http.StatusNotFound, "report not found")
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func loadFullReport(report *models.Report, id string) error {
	return config.DB.
		Preload("Project").
		Preload("Phase").
		Preload("User").
		Preload("PlacedQuantities").
		Preload("PlacedQuantities.BidItem").
		Preload("PlacedQuantities.BidItem.SpecItem").
		Preload("EquipmentEntries").
		Preload("CrewEntries").
		Preload("QaEntries").
		Preload("ChecklistEntries").
		Preload("ChecklistEntries.SpecItem").
		Preload("ReportAttachments").
		Preload("ActivityLogs").
		Preload("ActivityLogs.User").
		First(report, "id = ?", id).Error
}

func CreateReport(w http.ResponseWriter, r *http.Request) {
	var report models.Report
	if err := json.NewDecoder(r.Body).Decode(&report); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	userID, err := uuid.Parse(middleware.GetUserID(r))
	if err != nil {
		http.Error(w, "not authenticated", http.StatusUnauthorized)
		return
	}
	report.UserID = userID
	report.ID = uuid.Nil
	report.SetDefaults()

	if errs := report.Validate(); len(errs) > 0 {
		respondValidation(w, errs)
		return
	}
	if errs := checkBoundary(&report); len(errs) > 0 {
		respondValidation(w, errs)
		return
	}

	pruneBlankRows(&report)
	if errs := validateQuantityAnswers(report.PlacedQuantities); len(errs) > 0 {
		respondValidation(w, errs)
		return
	}

	if err := config.DB.Create(&report).Error; err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var created models.Report
	if err := loadFullReport(&created, report.ID.String()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// UpdateReport saves the whole aggregate: scalar fields plus the full
// replacement set of each child collection, in one transaction.
func UpdateReport(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)

	var report models.Report
	if err := config.DB.First(&report, "id = ?", params["id"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "report not found")
		return
	}

	var incoming models.Report
	if err := json.NewDecoder(r.Body).Decode(&incoming); err != nil {
		http.Error(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	// Identity and authorship never change on update.
	incoming.ID = report.ID
	incoming.UserID = report.UserID
	incoming.Status = report.Status
	incoming.CreatedAt = report.CreatedAt

	if errs := incoming.Validate(); len(errs) > 0 {
		respondValidation(w, errs)
		return
	}
	if errs := checkBoundary(&incoming); len(errs) > 0 {
		respondValidation(w, errs)
		return
	}

	pruneBlankRows(&incoming)
	if errs := validateQuantityAnswers(incoming.PlacedQuantities); len(errs) > 0 {
		respondValidation(w, errs)
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		for _, spec := range []struct {
			assoc string
			rows  interface{}
		}{
			{"PlacedQuantities", childRows(incoming.PlacedQuantities)},
			{"EquipmentEntries", childRows(incoming.EquipmentEntries)},
			{"CrewEntries", childRows(incoming.CrewEntries)},
			{"QaEntries", childRows(incoming.QaEntries)},
		} {
			if err := tx.Model(&incoming).Association(spec.assoc).Unscoped().Replace(spec.rows); err != nil {
				return err
			}
		}
		// QA entries just changed, reload them so the derivation hook sees
		// the saved set.
		if err := tx.Where("report_id = ?", incoming.ID).Find(&incoming.QaEntries).Error; err != nil {
			return err
		}
		return tx.Omit("PlacedQuantities", "EquipmentEntries", "CrewEntries", "QaEntries",
			"ChecklistEntries", "ReportAttachments", "ActivityLogs").
			Save(&incoming).Error
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	var updated models.Report
	if err := loadFullReport(&updated, report.ID.String()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

func DeleteReport(w http.ResponseWriter, r *http.Request) {
	params := mux.Vars(r)

	var report models.Report
	if err := config.DB.First(&report, "id = ?", params["id"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "report not found")
		return
	}

	err := config.DB.Transaction(func(tx *gorm.DB) error {
		for _, child := range []interface{}{
			&models.PlacedQuantity{}, &models.EquipmentEntry{}, &models.CrewEntry{},
			&models.QaEntry{}, &models.ChecklistEntry{}, &models.ReportAttachment{},
			&models.ActivityLog{},
		} {
			if err := tx.Where("report_id = ?", report.ID).Delete(child).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&report).Error
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// pruneBlankRows drops child rows that carry no data before the aggregate
// is saved. Clients post the full edit grid including untouched blank rows.
func pruneBlankRows(report *models.Report) {
	pqs := report.PlacedQuantities[:0]
	for i := range report.PlacedQuantities {
		if report.PlacedQuantities[i].Meaningful() {
			pqs = append(pqs, report.PlacedQuantities[i])
		}
	}
	report.PlacedQuantities = pqs

	eqs := report.EquipmentEntries[:0]
	for i := range report.EquipmentEntries {
		if report.EquipmentEntries[i].Meaningful() {
			eqs = append(eqs, report.EquipmentEntries[i])
		}
	}
	report.EquipmentEntries = eqs

	crews := report.CrewEntries[:0]
	for i := range report.CrewEntries {
		if report.CrewEntries[i].Meaningful() {
			crews = append(crews, report.CrewEntries[i])
		}
	}
	report.CrewEntries = crews

	qas := report.QaEntries[:0]
	for i := range report.QaEntries {
		if report.QaEntries[i].Meaningful() {
			qas = append(qas, report.QaEntries[i])
		}
	}
	report.QaEntries = qas
}

// validateQuantityAnswers applies the checklist answer rule to every
// surviving placed-quantity row before the aggregate persists.
func validateQuantityAnswers(pqs []models.PlacedQuantity) models.ValidationErrors {
	var errs models.ValidationErrors
	for i := range pqs {
		errs = append(errs, pqs[i].ValidateAnswers()...)
	}
	return errs
}

// childRows strips stale report references so Replace re-parents cleanly.
func childRows[T any](rows []T) []T {
	if rows == nil {
		return []T{}
	}
	return rows
}

// checkBoundary verifies the report's GPS fix falls inside the project's
// site boundary, when both are present.
func checkBoundary(report *models.Report) models.ValidationErrors {
	if report.Latitude == nil || report.Longitude == nil || report.ProjectID == nil {
		return nil
	}
	var project models.Project
	if err := config.DB.First(&project, "id = ?", *report.ProjectID).Error; err != nil {
		return nil
	}
	if len(project.SiteBoundary) == 0 {
		return nil
	}
	inside, err := utils.PointInBoundary(project.SiteBoundary, *report.Latitude, *report.Longitude)
	if err != nil || inside {
		return nil
	}
	return models.ValidationErrors{{Field: "location", Message: "is outside the project site boundary"}}
}
