package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Entitlement is the capability checked against a resource before a handler runs.
type Entitlement string

const (
	EntitlementCreate Entitlement = "create"
	EntitlementRead   Entitlement = "read"
	EntitlementUpdate Entitlement = "update"
	EntitlementDelete Entitlement = "delete"
)

// JWT claims structure
type Claims struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Roles  []string  `json:"roles"`
	jwt.RegisteredClaims
}
