package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Report struct {
	ID             uuid.UUID `json:"id" gorm:"primaryKey"`
	OrganizationID uuid.UUID `json:"organizationId" gorm:"not null;index"`
	JobID          *int64    `json:"jobId,omitempty" gorm:"index"`
	Title          string    `json:"title" gorm:"size:250;not null" validate:"required,max=250" search:"true" sanitize:"strict"`
	Category       string    `json:"category" gorm:"size:100" validate:"max=100" search:"true"`
	Body           string    `json:"body" sanitize:"ugc"`
	Published      bool      `json:"published"`
	Audit
}

func (r Report) GetID() uuid.UUID { return r.ID }

func (r *Report) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}

	return nil
}
