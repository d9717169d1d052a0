package models

import "time"

// Audit is embedded in every entity; gorm maintains both columns.
type Audit struct {
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
