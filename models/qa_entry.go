package models

import (
	"time"

	"github.com/google/uuid"
)

// QaEntry is one discrete QA test result. Failing or pending entries drive
// the report's automatic result.
type QaEntry struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ReportID uuid.UUID `gorm:"type:uuid;not null;index" json:"report_id"`
	Report   *Report   `gorm:"foreignKey:ReportID" json:"report,omitempty"`

	QaType   QaType   `gorm:"size:30" json:"qa_type"`
	Location string   `gorm:"size:255" json:"location,omitempty"`
	Result   QaResult `gorm:"size:15" json:"result"`
	Remarks  string   `gorm:"size:255" json:"remarks,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (QaEntry) TableName() string {
	return "qa_entries"
}

// Meaningful drops fully blank QA form rows.
func (q *QaEntry) Meaningful() bool {
	return q.QaType != "" || q.Result != "" || q.Location != "" || q.Remarks != ""
}
