package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Project is the contract container. Bid items live under it and translate
// universal spec items into this contract's pay items.
type Project struct {
	ID                  uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name                string     `gorm:"size:255;not null" json:"name"`
	ContractNumber      string     `gorm:"size:100;not null" json:"contract_number"`
	ProjectManager      string     `gorm:"size:255" json:"project_manager,omitempty"`
	ConstructionManager string     `gorm:"size:255" json:"construction_manager,omitempty"`
	ContractDays        int        `json:"contract_days,omitempty"`
	ContractStartDate   *time.Time `json:"contract_start_date,omitempty"`
	PrimeContractor     string     `gorm:"size:255" json:"prime_contractor,omitempty"`

	// Optional site boundary as a GeoJSON polygon. When present, report
	// coordinates are checked against it on save.
	SiteBoundary datatypes.JSON `gorm:"type:jsonb" json:"site_boundary,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	BidItems []BidItem `gorm:"foreignKey:ProjectID" json:"bid_items,omitempty"`
	Reports  []Report  `gorm:"foreignKey:ProjectID" json:"reports,omitempty"`
}

func (Project) TableName() string {
	return "projects"
}

// Validate enforces the required contract header fields.
func (p *Project) Validate() ValidationErrors {
	var errs ValidationErrors
	if p.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "can't be blank"})
	}
	if p.ContractNumber == "" {
		errs = append(errs, FieldError{Field: "contract_number", Message: "can't be blank"})
	}
	return errs
}
