package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/aaravmahajanofficial/entity-api/internal/models"
	"github.com/aaravmahajanofficial/entity-api/internal/utils"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

var (
	ErrNotFound     = errors.New("record not found")
	ErrDuplicateKey = errors.New("duplicate key")
	ErrInvalidQuery = errors.New("invalid query")
)

const uniqueViolation = "23505"

type EntityRepository[T models.Entity[K], K models.Key] interface {
	Create(ctx context.Context, entity *T) error
	List(ctx context.Context, query *models.ListQuery) ([]T, int64, error)
	GetByID(ctx context.Context, id K) (*T, error)
	Update(ctx context.Context, entity *T) error
	// Modify loads the row under a lock, hands it to mutate and saves the result
	// in the same transaction. An error from mutate rolls everything back.
	Modify(ctx context.Context, id K, mutate func(entity *T) error) (*T, error)
	Delete(ctx context.Context, id K) error
}

type entityRepository[T models.Entity[K], K models.Key] struct {
	db     *gorm.DB
	schema *schema.Schema
}

func NewEntityRepository[T models.Entity[K], K models.Key](db *gorm.DB) (EntityRepository[T, K], error) {

	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(new(T)); err != nil {
		return nil, fmt.Errorf("failed to parse schema for %T: %w", *new(T), err)
	}

	if stmt.Schema.PrioritizedPrimaryField == nil {
		return nil, fmt.Errorf("%s has no primary key", stmt.Schema.Name)
	}

	return &entityRepository[T, K]{db: db, schema: stmt.Schema}, nil
}

func (r *entityRepository[T, K]) Create(ctx context.Context, entity *T) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	return translateError(r.db.WithContext(dbCtx).Create(entity).Error)
}

func (r *entityRepository[T, K]) List(ctx context.Context, query *models.ListQuery) ([]T, int64, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	conditions, err := r.conditions(query)
	if err != nil {
		return nil, 0, err
	}

	order, err := r.orderBy(query)
	if err != nil {
		return nil, 0, err
	}

	base := r.db.WithContext(dbCtx).Model(new(T))
	if len(conditions) > 0 {
		base = base.Clauses(clause.Where{Exprs: conditions})
	}
	base = base.Session(&gorm.Session{})

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, translateError(err)
	}

	find := base.Clauses(order)
	if query.PageSize > 0 {
		find = find.Offset(query.Offset()).Limit(query.PageSize)
	}

	var items []T
	if err := find.Find(&items).Error; err != nil {
		return nil, 0, translateError(err)
	}

	return items, total, nil
}

func (r *entityRepository[T, K]) GetByID(ctx context.Context, id K) (*T, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var entity T
	if err := r.db.WithContext(dbCtx).Where(r.keyEquals(id)).Take(&entity).Error; err != nil {
		return nil, translateError(err)
	}

	return &entity, nil
}

func (r *entityRepository[T, K]) Update(ctx context.Context, entity *T) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result := r.save(r.db.WithContext(dbCtx), entity)
	if result.Error != nil {
		return translateError(result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *entityRepository[T, K]) Modify(ctx context.Context, id K, mutate func(entity *T) error) (*T, error) {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	var entity T

	err := r.db.WithContext(dbCtx).Transaction(func(tx *gorm.DB) error {

		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).Where(r.keyEquals(id)).Take(&entity).Error; err != nil {
			return err
		}

		if err := mutate(&entity); err != nil {
			return err
		}

		return r.save(tx, &entity).Error
	})
	if err != nil {
		return nil, translateError(err)
	}

	return &entity, nil
}

func (r *entityRepository[T, K]) Delete(ctx context.Context, id K) error {

	dbCtx, cancel := utils.WithDBTimeout(ctx)
	defer cancel()

	result := r.db.WithContext(dbCtx).Where(r.keyEquals(id)).Delete(new(T))
	if result.Error != nil {
		return translateError(result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// save writes every column except the key and the creation time.
func (r *entityRepository[T, K]) save(tx *gorm.DB, entity *T) *gorm.DB {
	pk := r.schema.PrioritizedPrimaryField.DBName

	return tx.Model(entity).Select("*").Omit(pk, "created_at").Updates(entity)
}

func (r *entityRepository[T, K]) keyEquals(id K) clause.Expression {
	return clause.Eq{
		Column: clause.Column{Table: clause.CurrentTable, Name: r.schema.PrioritizedPrimaryField.DBName},
		Value:  id,
	}
}

func translateError(err error) error {

	if err == nil {
		return nil
	}

	if errors.Is(err, ErrNotFound) || errors.Is(err, ErrDuplicateKey) || errors.Is(err, ErrInvalidQuery) {
		return err
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrDuplicateKey, err)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicateKey, pqErr.Detail)
	}

	return err
}
