package models

import (
	"time"

	"github.com/google/uuid"
)

// ActivityLog is the revision audit trail on a report. The actor is a
// foreign key to users, never free text, so every revision request stays
// attributable.
type ActivityLog struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ReportID uuid.UUID `gorm:"type:uuid;not null;index" json:"report_id"`
	Report   *Report   `gorm:"foreignKey:ReportID" json:"report,omitempty"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User     *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`

	Note string `gorm:"type:text" json:"note,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
