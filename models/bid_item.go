package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// BidItem translates a universal SpecItem into one project's contract pay
// item. Its code is unique within the project only, so two projects can
// both carry a "P-401".
type BidItem struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProjectID   uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_bid_items_project_code" json:"project_id"`
	Project     *Project  `gorm:"foreignKey:ProjectID" json:"project,omitempty"`
	SpecItemID  uuid.UUID `gorm:"type:uuid;not null;index" json:"spec_item_id"`
	SpecItem    *SpecItem `gorm:"foreignKey:SpecItemID" json:"spec_item,omitempty"`
	Code        string    `gorm:"size:50;not null;uniqueIndex:idx_bid_items_project_code" json:"code"`
	Description string    `gorm:"size:255" json:"description,omitempty"`
	Unit        string    `gorm:"size:50" json:"unit,omitempty"`

	// Project-specific checklist override. Empty means inherit from the
	// linked spec item.
	ChecklistQuestions pq.StringArray `gorm:"type:text[]" json:"checklist_questions"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	PlacedQuantities []PlacedQuantity `gorm:"foreignKey:BidItemID" json:"placed_quantities,omitempty"`
}

func (BidItem) TableName() string {
	return "bid_items"
}

func (b *BidItem) Validate() ValidationErrors {
	var errs ValidationErrors
	if b.Code == "" {
		errs = append(errs, FieldError{Field: "code", Message: "can't be blank"})
	}
	if b.ProjectID == uuid.Nil {
		errs = append(errs, FieldError{Field: "project_id", Message: "can't be blank"})
	}
	if b.SpecItemID == uuid.Nil {
		errs = append(errs, FieldError{Field: "spec_item_id", Message: "can't be blank"})
	}
	return errs
}

// ActiveQuestions decides which checklist applies to this bid item: the
// item's own override when non-empty, otherwise the linked spec item's
// default list, otherwise nothing. Pure over the loaded association so the
// form builder and the client resolve the same set.
func (b *BidItem) ActiveQuestions() []string {
	if len(b.ChecklistQuestions) > 0 {
		return b.ChecklistQuestions
	}
	if b.SpecItem != nil && len(b.SpecItem.ChecklistQuestions) > 0 {
		return b.SpecItem.ChecklistQuestions
	}
	return []string{}
}

// QuestionsText renders the active checklist as newline-separated text for
// editing UIs.
func (b *BidItem) QuestionsText() string {
	return strings.Join(b.ActiveQuestions(), "\n")
}

// ParseQuestionsText is the inverse mapping used on save: one question per
// line, trimmed, blanks dropped. Writes always land on the bid item's own
// override, never on the spec item.
func ParseQuestionsText(text string) []string {
	lines := strings.Split(text, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		q := strings.TrimSpace(line)
		if q != "" {
			out = append(out, q)
		}
	}
	return out
}

// SetQuestionsText applies the text form of the checklist override.
func (b *BidItem) SetQuestionsText(text string) {
	b.ChecklistQuestions = ParseQuestionsText(text)
}
