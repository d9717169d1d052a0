package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Area struct {
	ID          uuid.UUID  `json:"id" gorm:"primaryKey"`
	ParentID    *uuid.UUID `json:"parentId,omitempty" gorm:"index"`
	Name        string     `json:"name" gorm:"size:200;not null" validate:"required,max=200" search:"true" sanitize:"strict"`
	Description string     `json:"description" sanitize:"ugc"`
	Audit
}

func (a Area) GetID() uuid.UUID { return a.ID }

func (a *Area) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	return nil
}

// AreaXEntity links an area to any other record by resource name and id.
type AreaXEntity struct {
	ID         uuid.UUID `json:"id" gorm:"primaryKey"`
	AreaID     uuid.UUID `json:"areaId" gorm:"not null;index"`
	EntityName string    `json:"entityName" gorm:"size:100;not null" validate:"required,max=100" search:"true"`
	EntityID   string    `json:"entityId" gorm:"size:64;not null" validate:"required,max=64"`
	Audit
}

func (AreaXEntity) TableName() string { return "area_x_entity" }

func (a AreaXEntity) GetID() uuid.UUID { return a.ID }

func (a *AreaXEntity) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	return nil
}
