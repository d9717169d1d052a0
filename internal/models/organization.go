package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Organization struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey"`
	Code        string    `json:"code" gorm:"size:50;uniqueIndex;not null" validate:"required,min=2,max=50,alphanum" search:"true"`
	Name        string    `json:"name" gorm:"size:200;not null" validate:"required,max=200" search:"true" sanitize:"strict"`
	Description string    `json:"description" sanitize:"ugc"`
	Active      bool      `json:"active"`
	Audit
}

func (o Organization) GetID() uuid.UUID { return o.ID }

func (o *Organization) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}

	return nil
}
