// Package authz decides whether a caller's roles grant an entitlement on a resource.
//
// Decisions come from a casbin RBAC model: subject is a role, object is the
// resource name used in routes and action is the entitlement.
package authz

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/aaravmahajanofficial/entity-api/internal/config"
	"github.com/aaravmahajanofficial/entity-api/internal/models"
	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	"github.com/casbin/casbin/v2/persist"
	fileadapter "github.com/casbin/casbin/v2/persist/file-adapter"
	stringadapter "github.com/casbin/casbin/v2/persist/string-adapter"
)

//go:embed model.conf
var embeddedModel string

//go:embed policy.csv
var embeddedPolicy string

type DecisionProvider interface {
	Allowed(roles []string, resource string, entitlement models.Entitlement) (bool, error)
}

type Enforcer struct {
	enforcer *casbin.SyncedEnforcer
}

// NewEnforcer loads the model and policy from cfg, falling back to the embedded defaults.
func NewEnforcer(cfg *config.AuthzConfig) (*Enforcer, error) {

	var (
		m   model.Model
		err error
	)

	if cfg != nil && cfg.ModelPath != "" && fileExists(cfg.ModelPath) {
		m, err = model.NewModelFromFile(cfg.ModelPath)
	} else {
		m, err = model.NewModelFromString(embeddedModel)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load casbin model: %w", err)
	}

	var adapter persist.Adapter = stringadapter.NewAdapter(embeddedPolicy)
	if cfg != nil && cfg.PolicyPath != "" && fileExists(cfg.PolicyPath) {
		adapter = fileadapter.NewAdapter(cfg.PolicyPath)
	}

	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("failed to create casbin enforcer: %w", err)
	}

	return &Enforcer{enforcer: enforcer}, nil
}

// Allowed reports whether any of roles grants entitlement on resource.
func (e *Enforcer) Allowed(roles []string, resource string, entitlement models.Entitlement) (bool, error) {

	for _, role := range roles {
		allowed, err := e.enforcer.Enforce(role, resource, string(entitlement))
		if err != nil {
			return false, fmt.Errorf("enforcement failed: %w", err)
		}

		if allowed {
			return true, nil
		}
	}

	return false, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
