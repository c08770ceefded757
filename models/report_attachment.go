package models

import (
	"time"

	"github.com/google/uuid"
)

// ReportAttachment is attachment metadata on a report. The bytes live in
// the configured storage backend; only the URL is recorded here.
type ReportAttachment struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ReportID uuid.UUID `gorm:"type:uuid;not null;index" json:"report_id"`
	Report   *Report   `gorm:"foreignKey:ReportID" json:"report,omitempty"`

	Caption  string `gorm:"size:255" json:"caption,omitempty"`
	FileName string `gorm:"size:255;not null" json:"file_name"`
	FileURL  string `gorm:"size:500;not null" json:"file_url"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ReportAttachment) TableName() string {
	return "report_attachments"
}
