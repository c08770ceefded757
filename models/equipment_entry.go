package models

import (
	"time"

	"github.com/google/uuid"
)

// EquipmentEntry is one equipment-usage row on a report.
type EquipmentEntry struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ReportID uuid.UUID `gorm:"type:uuid;not null;index" json:"report_id"`
	Report   *Report   `gorm:"foreignKey:ReportID" json:"report,omitempty"`

	Contractor string  `gorm:"size:255" json:"contractor,omitempty"`
	MakeModel  string  `gorm:"size:255" json:"make_model"`
	Quantity   int     `gorm:"default:1" json:"quantity"`
	Hours      float64 `gorm:"type:decimal(8,2)" json:"hours"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (EquipmentEntry) TableName() string {
	return "equipment_entries"
}

// Meaningful drops blank form rows: equipment without a make/model is noise.
func (e *EquipmentEntry) Meaningful() bool {
	return e.MakeModel != ""
}
