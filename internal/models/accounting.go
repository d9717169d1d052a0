package models

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Accounting struct {
	ID      uuid.UUID `json:"id" gorm:"primaryKey"`
	Code    string    `json:"code" gorm:"size:50;uniqueIndex;not null" validate:"required,max=50" search:"true"`
	Name    string    `json:"name" gorm:"size:200;not null" validate:"required,max=200" search:"true" sanitize:"strict"`
	Type    string    `json:"type" gorm:"size:20;not null" validate:"required,oneof=asset liability equity revenue expense"`
	Balance float64   `json:"balance"`
	Audit
}

func (a Accounting) GetID() uuid.UUID { return a.ID }

func (a *Accounting) BeforeCreate(*gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	return nil
}

// AccountingXAccounting relates a parent account to one of its children.
type AccountingXAccounting struct {
	ID                 int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	ParentAccountingID uuid.UUID `json:"parentAccountingId" gorm:"not null;index"`
	ChildAccountingID  uuid.UUID `json:"childAccountingId" gorm:"not null;index"`
	Weight             float64   `json:"weight" validate:"gte=0,lte=1"`
	Audit
}

func (AccountingXAccounting) TableName() string { return "accounting_x_accounting" }

func (a AccountingXAccounting) GetID() int64 { return a.ID }
