package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// PlacedQuantity is one line of work performed against a bid item, with a
// sparse checklist answer map keyed by question text.
type PlacedQuantity struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ReportID  uuid.UUID `gorm:"type:uuid;not null;index" json:"report_id"`
	Report    *Report   `gorm:"foreignKey:ReportID" json:"report,omitempty"`
	BidItemID uuid.UUID `gorm:"type:uuid;not null;index" json:"bid_item_id"`
	BidItem   *BidItem  `gorm:"foreignKey:BidItemID" json:"bid_item,omitempty"`

	Quantity float64 `gorm:"type:decimal(12,2)" json:"quantity"`
	Location string  `gorm:"size:255" json:"location,omitempty"`
	Notes    string  `gorm:"type:text" json:"notes,omitempty"`

	ChecklistAnswers datatypes.JSON `gorm:"type:jsonb;default:'{}'" json:"checklist_answers"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (PlacedQuantity) TableName() string {
	return "placed_quantities"
}

// Answers returns the checklist answer map through the read-repair parser,
// so corrupt or legacy-encoded blobs degrade to empty instead of erroring.
func (p *PlacedQuantity) Answers() map[string]string {
	return ParseAnswerMap(p.ChecklistAnswers)
}

// Meaningful reports whether this row carries data worth saving. Rows
// without a bid item are dropped at the aggregate-save boundary.
func (p *PlacedQuantity) Meaningful() bool {
	return p.BidItemID != uuid.Nil
}

// ValidateAnswers rejects answer values outside Yes/No/N/A, the same rule
// checklist entries apply. Blank values and stale question keys pass.
func (p *PlacedQuantity) ValidateAnswers() ValidationErrors {
	var errs ValidationErrors
	for q, v := range p.Answers() {
		if v != "" && !ValidAnswer(v) {
			errs = append(errs, FieldError{Field: q, Message: "answer must be Yes, No or N/A"})
		}
	}
	return errs
}
