package health

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/aaravmahajanofficial/entity-api/internal/config"
	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
)

const componentName = "entity-api"

type Endpoints struct {
	DB *sql.DB
}

func NewHealthHandler(cfg *config.Config, endpoints *Endpoints, version string) (*health.Health, error) {

	checks := []health.Config{
		{
			Name:      "database",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check: postgres.New(postgres.Config{
				DSN: cfg.Database.GetDSN(),
			}),
		},
		{
			// the cache degrades to the database when redis is down
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: true,
			Check: healthRedis.New(
				healthRedis.Config{
					DSN: cfg.RedisConnect.GetDSN(),
				},
			),
		},
	}

	if endpoints != nil && endpoints.DB != nil {
		checks = append(checks, health.Config{
			Name:      "schema",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check:     SchemaCheck(endpoints.DB),
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    componentName,
			Version: version,
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)

	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

// SchemaCheck fails when golang-migrate left the schema in a dirty state or never ran.
func SchemaCheck(db *sql.DB) func(ctx context.Context) error {
	return func(ctx context.Context) error {

		var (
			version int64
			dirty   bool
		)

		err := db.QueryRowContext(ctx, `SELECT version, dirty FROM schema_migrations LIMIT 1`).Scan(&version, &dirty)
		if errors.Is(err, sql.ErrNoRows) {
			return errors.New("no schema migration has been applied")
		}
		if err != nil {
			return fmt.Errorf("failed to read schema version: %w", err)
		}

		if dirty {
			return fmt.Errorf("schema migration %d is dirty", version)
		}

		return nil
	}
}
