package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// SpecItem is a universal specification code (e.g. "P-401") with a default
// ordered checklist. Bid items reference it and may override the checklist
// per project.
type SpecItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Code        string    `gorm:"size:50;uniqueIndex;not null" json:"code"`
	Description string    `gorm:"size:255" json:"description,omitempty"`
	Division    string    `gorm:"size:100" json:"division,omitempty"`

	ChecklistQuestions pq.StringArray `gorm:"type:text[]" json:"checklist_questions"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	BidItems []BidItem `gorm:"foreignKey:SpecItemID" json:"bid_items,omitempty"`
}

func (SpecItem) TableName() string {
	return "spec_items"
}

func (s *SpecItem) Validate() ValidationErrors {
	var errs ValidationErrors
	if s.Code == "" {
		errs = append(errs, FieldError{Field: "code", Message: "can't be blank"})
	}
	return errs
}
