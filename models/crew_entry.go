package models

import (
	"time"

	"github.com/google/uuid"
)

// CrewEntry is one contractor's workforce count row on a report.
type CrewEntry struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ReportID uuid.UUID `gorm:"type:uuid;not null;index" json:"report_id"`
	Report   *Report   `gorm:"foreignKey:ReportID" json:"report,omitempty"`

	Contractor          string `gorm:"size:255" json:"contractor"`
	ForemanCount        int    `gorm:"default:0" json:"foreman_count"`
	SuperintendentCount int    `gorm:"default:0" json:"superintendent_count"`
	LaborerCount        int    `json:"laborer_count"`
	OperatorCount       int    `json:"operator_count"`
	SurveyCount         int    `json:"survey_count"`
	ElectricianCount    int    `json:"electrician_count"`
	Notes               string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (CrewEntry) TableName() string {
	return "crew_entries"
}

// Meaningful keeps the row when any crew field was entered.
func (c *CrewEntry) Meaningful() bool {
	return c.Contractor != "" || c.ForemanCount > 0 || c.SuperintendentCount > 0 ||
		c.LaborerCount > 0 || c.OperatorCount > 0 || c.SurveyCount > 0 || c.ElectricianCount > 0
}
