package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/XSAM/otelsql"
	"github.com/aaravmahajanofficial/entity-api/internal/config"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	_ "github.com/lib/pq"
)

type Database struct {
	SQL  *sql.DB
	Gorm *gorm.DB
}

func New(cfg *config.Config) (*Database, error) {

	db, err := otelsql.Open("postgres", cfg.Database.GetDSN(),
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.Database.ConnMaxIdleTime)

	// Test the connection to make sure DB is reachable
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if !cfg.Database.SkipMigrations {
		if err := RunMigrations(db); err != nil {
			db.Close()
			return nil, err
		}
	}

	gormDB, err := OpenGorm(postgres.New(postgres.Config{Conn: db}))
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Database{SQL: db, Gorm: gormDB}, nil
}

// OpenGorm wraps a dialector in the gorm settings every repository relies on.
func OpenGorm(dialector gorm.Dialector) (*gorm.DB, error) {

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true,
		Logger: logger.New(slogWriter{logger: slog.Default()}, logger.Config{
			SlowThreshold:             500 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialise gorm: %w", err)
	}

	return gormDB, nil
}

func (d *Database) Close() error {
	return d.SQL.Close()
}

// slogWriter routes gorm's printf-style logger into slog.
type slogWriter struct {
	logger *slog.Logger
}

func (w slogWriter) Printf(format string, args ...any) {
	w.logger.Warn(fmt.Sprintf(format, args...), slog.String("component", "gorm"))
}
