package models

import (
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusPending   JobStatus = "pending"
	JobStatusRunning   JobStatus = "running"
	JobStatusSucceeded JobStatus = "succeeded"
	JobStatusFailed    JobStatus = "failed"
)

type Job struct {
	ID             int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	OrganizationID uuid.UUID  `json:"organizationId" gorm:"not null;index"`
	Name           string     `json:"name" gorm:"size:200;not null" validate:"required,min=1,max=200" search:"true" sanitize:"strict"`
	Description    string     `json:"description" search:"true" sanitize:"ugc"`
	Status         JobStatus  `json:"status" gorm:"size:20;not null;default:pending" validate:"omitempty,oneof=pending running succeeded failed"`
	Priority       int        `json:"priority" validate:"gte=0,lte=100"`
	ScheduledAt    *time.Time `json:"scheduledAt,omitempty"`
	Audit
}

func (j Job) GetID() int64 { return j.ID }
