package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ChecklistEntry holds a per-report checklist instance answered directly
// against a spec item (the spec drilldown), not tied to a bid item line.
// One entry per (report, spec item).
type ChecklistEntry struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ReportID   uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_checklist_report_spec" json:"report_id"`
	Report     *Report   `gorm:"foreignKey:ReportID" json:"report,omitempty"`
	SpecItemID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_checklist_report_spec" json:"spec_item_id"`
	SpecItem   *SpecItem `gorm:"foreignKey:SpecItemID" json:"spec_item,omitempty"`

	ChecklistAnswers datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"checklist_answers"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ChecklistEntry) TableName() string {
	return "checklist_entries"
}

// Answers returns the answer map through the same read-repair parser used
// by placed quantities.
func (c *ChecklistEntry) Answers() map[string]string {
	return ParseAnswerMap(c.ChecklistAnswers)
}

// ValidateAnswers rejects answer values outside Yes/No/N/A. Stale question
// keys are allowed; they are ignored on render rather than treated as an
// error.
func (c *ChecklistEntry) ValidateAnswers() ValidationErrors {
	var errs ValidationErrors
	for q, v := range c.Answers() {
		if v != "" && !ValidAnswer(v) {
			errs = append(errs, FieldError{Field: q, Message: "answer must be Yes, No or N/A"})
		}
	}
	return errs
}
