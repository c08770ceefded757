package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"gorm.io/gorm"
	"p9e.in/dirtrack/config"
	"p9e.in/dirtrack/middleware"
	"p9e.in/dirtrack/models"
)

var errUnknownActor = errors.New("revision actor could not be resolved")

// ReportWorkflow drives the review state machine. Transitions persist with
// UpdateColumns so the save hooks never re-derive over a forced outcome,
// in memory or in the row.
type ReportWorkflow struct {
	db *gorm.DB
}

func NewReportWorkflow(db *gorm.DB) *ReportWorkflow {
	return &ReportWorkflow{db: db}
}

// SubmitForQC moves a draft into the review queue.
func (wf *ReportWorkflow) SubmitForQC(report *models.Report) error {
	report.BeginQCReview()
	return wf.db.Model(report).UpdateColumn("status", report.Status).Error
}

// Approve finalizes the report with an unconditional pass.
func (wf *ReportWorkflow) Approve(report *models.Report) error {
	report.Authorize()
	return wf.db.Model(report).UpdateColumns(map[string]interface{}{
		"status": report.Status,
		"result": report.Result,
	}).Error
}

// RequestRevision sends the report back to its author with a forced fail
// and an audit entry. The status change and the log entry commit together
// or not at all, and the acting reviewer must be a real user.
func (wf *ReportWorkflow) RequestRevision(report *models.Report, actorID uuid.UUID, note string) error {
	if actorID == uuid.Nil {
		return errUnknownActor
	}
	var actor models.User
	if err := wf.db.First(&actor, "id = ?", actorID).Error; err != nil {
		return errUnknownActor
	}

	return wf.db.Transaction(func(tx *gorm.DB) error {
		report.SendBack()
		if err := tx.Model(report).UpdateColumns(map[string]interface{}{
			"status": report.Status,
			"result": report.Result,
		}).Error; err != nil {
			return err
		}
		entry := models.ActivityLog{
			ReportID: report.ID,
			UserID:   actor.ID,
			Note:     note,
		}
		return tx.Create(&entry).Error
	})
}

func findWorkflowReport(w http.ResponseWriter, r *http.Request) (*models.Report, bool) {
	params := mux.Vars(r)
	var report models.Report
	if err := config.DB.First(&report, "id = ?", params["id"]).Error; err != nil {
		respondError(w, http.StatusNotFound, "report not found")
		return nil, false
	}
	return &report, true
}

func SubmitReportForQC(w http.ResponseWriter, r *http.Request) {
	report, ok := findWorkflowReport(w, r)
	if !ok {
		return
	}
	if err := NewReportWorkflow(config.DB).SubmitForQC(report); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func ApproveReport(w http.ResponseWriter, r *http.Request) {
	report, ok := findWorkflowReport(w, r)
	if !ok {
		return
	}
	if err := NewReportWorkflow(config.DB).Approve(report); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, report)
}

func RequestReportRevision(w http.ResponseWriter, r *http.Request) {
	report, ok := findWorkflowReport(w, r)
	if !ok {
		return
	}

	var body struct {
		Note string `json:"note"`
	}
	// A missing or empty body is fine; the note is optional.
	_ = json.NewDecoder(r.Body).Decode(&body)

	actor := middleware.GetUser(r)
	err := NewReportWorkflow(config.DB).RequestRevision(report, actor.ID, body.Note)
	if errors.Is(err, errUnknownActor) {
		respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, report)
}
