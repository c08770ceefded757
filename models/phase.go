package models

import (
	"time"

	"github.com/google/uuid"
)

// Phase is a named construction phase. Reports reference it, and a phase
// cannot be deleted while any report does.
type Phase struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name      string    `gorm:"size:255;uniqueIndex;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Reports []Report `gorm:"foreignKey:PhaseID" json:"reports,omitempty"`
}

func (Phase) TableName() string {
	return "phases"
}

func (p *Phase) Validate() ValidationErrors {
	var errs ValidationErrors
	if p.Name == "" {
		errs = append(errs, FieldError{Field: "name", Message: "can't be blank"})
	}
	return errs
}
