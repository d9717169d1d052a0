package repository_test

import (
	"errors"
	"testing"
	"time"

	"github.com/aaravmahajanofficial/entity-api/internal/models"
	repository "github.com/aaravmahajanofficial/entity-api/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := repository.OpenGorm(sqlite.Open(":memory:"))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// every connection would get its own in-memory database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&models.Job{}, &models.Organization{}))

	return db
}

func seedJobs(t *testing.T, repo repository.EntityRepository[models.Job, int64], orgID uuid.UUID) []models.Job {
	t.Helper()

	scheduled := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	jobs := []models.Job{
		{OrganizationID: orgID, Name: "Nightly Backup", Description: "copies the warehouse", Status: models.JobStatusPending, Priority: 10, ScheduledAt: &scheduled},
		{OrganizationID: orgID, Name: "Invoice Export", Description: "monthly invoices", Status: models.JobStatusRunning, Priority: 50},
		{OrganizationID: orgID, Name: "Backup Verify", Description: "checks 100%_done flags", Status: models.JobStatusFailed, Priority: 90},
	}

	for i := range jobs {
		require.NoError(t, repo.Create(t.Context(), &jobs[i]))
	}

	return jobs
}

func TestNewEntityRepository(t *testing.T) {
	db := newTestDB(t)

	repo, err := repository.NewEntityRepository[models.Job, int64](db)
	require.NoError(t, err)
	assert.NotNil(t, repo, "NewEntityRepository should return a non-nil repository")
}

func TestEntityRepository_Create(t *testing.T) {
	db := newTestDB(t)
	ctx := t.Context()

	t.Run("Success - Integer Key Assigned", func(t *testing.T) {
		// Arrange
		repo, err := repository.NewEntityRepository[models.Job, int64](db)
		require.NoError(t, err)
		job := &models.Job{OrganizationID: uuid.New(), Name: "Reindex", Status: models.JobStatusPending}

		// Act
		err = repo.Create(ctx, job)

		// Assert
		require.NoError(t, err)
		assert.NotZero(t, job.ID, "Create should assign an id")
		assert.False(t, job.CreatedAt.IsZero(), "CreatedAt should be set")
	})

	t.Run("Success - UUID Key Generated", func(t *testing.T) {
		// Arrange
		repo, err := repository.NewEntityRepository[models.Organization, uuid.UUID](db)
		require.NoError(t, err)
		org := &models.Organization{Code: "ACME", Name: "Acme"}

		// Act
		err = repo.Create(ctx, org)

		// Assert
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, org.ID, "BeforeCreate should generate a uuid")

		stored, err := repo.GetByID(ctx, org.ID)
		require.NoError(t, err)
		assert.Equal(t, "Acme", stored.Name)
	})
}

func TestEntityRepository_GetByID(t *testing.T) {
	db := newTestDB(t)
	ctx := t.Context()
	repo, err := repository.NewEntityRepository[models.Job, int64](db)
	require.NoError(t, err)
	jobs := seedJobs(t, repo, uuid.New())

	t.Run("Success", func(t *testing.T) {
		// Act
		job, err := repo.GetByID(ctx, jobs[1].ID)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, "Invoice Export", job.Name)
		assert.Equal(t, jobs[1].OrganizationID, job.OrganizationID)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Act
		job, err := repo.GetByID(ctx, 9999)

		// Assert
		assert.Nil(t, job)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestEntityRepository_List(t *testing.T) {
	db := newTestDB(t)
	ctx := t.Context()
	repo, err := repository.NewEntityRepository[models.Job, int64](db)
	require.NoError(t, err)
	seedJobs(t, repo, uuid.New())

	names := func(jobs []models.Job) []string {
		out := make([]string, 0, len(jobs))
		for _, j := range jobs {
			out = append(out, j.Name)
		}
		return out
	}

	tests := []struct {
		name          string
		query         models.ListQuery
		expectedNames []string
		expectedTotal int64
	}{
		{
			name:          "No Criteria - Ordered By Key",
			query:         models.ListQuery{},
			expectedNames: []string{"Nightly Backup", "Invoice Export", "Backup Verify"},
			expectedTotal: 3,
		},
		{
			name:          "Equal On JSON Name",
			query:         models.ListQuery{Filters: []models.FilterCriteria{{PropertyName: "status", Operator: models.OperatorEqual, Value: "running"}}},
			expectedNames: []string{"Invoice Export"},
			expectedTotal: 1,
		},
		{
			name:          "Contains Is Case Insensitive",
			query:         models.ListQuery{Filters: []models.FilterCriteria{{PropertyName: "Name", Operator: models.OperatorContains, Value: "BACKUP"}}},
			expectedNames: []string{"Nightly Backup", "Backup Verify"},
			expectedTotal: 2,
		},
		{
			name:          "StartsWith",
			query:         models.ListQuery{Filters: []models.FilterCriteria{{PropertyName: "name", Operator: models.OperatorStartsWith, Value: "backup"}}},
			expectedNames: []string{"Backup Verify"},
			expectedTotal: 1,
		},
		{
			name:          "EndsWith",
			query:         models.ListQuery{Filters: []models.FilterCriteria{{PropertyName: "name", Operator: models.OperatorEndsWith, Value: "export"}}},
			expectedNames: []string{"Invoice Export"},
			expectedTotal: 1,
		},
		{
			name:          "Wildcards In Value Are Literal",
			query:         models.ListQuery{Filters: []models.FilterCriteria{{PropertyName: "description", Operator: models.OperatorContains, Value: "%_"}}},
			expectedNames: []string{"Backup Verify"},
			expectedTotal: 1,
		},
		{
			name: "Criteria Combine With And",
			query: models.ListQuery{Filters: []models.FilterCriteria{
				{PropertyName: "priority", Operator: models.OperatorGreaterThan, Value: "10"},
				{PropertyName: "priority", Operator: models.OperatorLessThanOrEqual, Value: "50"},
			}},
			expectedNames: []string{"Invoice Export"},
			expectedTotal: 1,
		},
		{
			name:          "In",
			query:         models.ListQuery{Filters: []models.FilterCriteria{{PropertyName: "status", Operator: models.OperatorIn, Value: "pending, failed"}}},
			expectedNames: []string{"Nightly Backup", "Backup Verify"},
			expectedTotal: 2,
		},
		{
			name:          "IsNull",
			query:         models.ListQuery{Filters: []models.FilterCriteria{{PropertyName: "scheduledAt", Operator: models.OperatorIsNull}}},
			expectedNames: []string{"Invoice Export", "Backup Verify"},
			expectedTotal: 2,
		},
		{
			name:          "IsNotNull On Column Name",
			query:         models.ListQuery{Filters: []models.FilterCriteria{{PropertyName: "scheduled_at", Operator: models.OperatorIsNotNull}}},
			expectedNames: []string{"Nightly Backup"},
			expectedTotal: 1,
		},
		{
			name:          "Search Term Across Searchable Columns",
			query:         models.ListQuery{SearchTerm: "INVOICES"},
			expectedNames: []string{"Invoice Export"},
			expectedTotal: 1,
		},
		{
			name:          "Sort Descending",
			query:         models.ListQuery{SortField: "priority", SortOrder: models.SortOrderDesc},
			expectedNames: []string{"Backup Verify", "Invoice Export", "Nightly Backup"},
			expectedTotal: 3,
		},
		{
			name:          "Paging Keeps Total",
			query:         models.ListQuery{PageNumber: 2, PageSize: 2},
			expectedNames: []string{"Backup Verify"},
			expectedTotal: 3,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			jobs, total, err := repo.List(ctx, &tc.query)

			// Assert
			require.NoError(t, err)
			assert.Equal(t, tc.expectedTotal, total)
			assert.Equal(t, tc.expectedNames, names(jobs))
		})
	}

	invalid := []struct {
		name  string
		query models.ListQuery
	}{
		{name: "Unknown Property", query: models.ListQuery{Filters: []models.FilterCriteria{{PropertyName: "colour", Operator: models.OperatorEqual, Value: "red"}}}},
		{name: "Value Of Wrong Type", query: models.ListQuery{Filters: []models.FilterCriteria{{PropertyName: "priority", Operator: models.OperatorEqual, Value: "high"}}}},
		{name: "Text Operator On Number", query: models.ListQuery{Filters: []models.FilterCriteria{{PropertyName: "priority", Operator: models.OperatorContains, Value: "1"}}}},
		{name: "Unknown Operator", query: models.ListQuery{Filters: []models.FilterCriteria{{PropertyName: "priority", Operator: "Between", Value: "1"}}}},
		{name: "Unknown Sort Field", query: models.ListQuery{SortField: "colour"}},
	}

	for _, tc := range invalid {
		t.Run("Failure - "+tc.name, func(t *testing.T) {
			// Act
			jobs, total, err := repo.List(ctx, &tc.query)

			// Assert
			assert.ErrorIs(t, err, repository.ErrInvalidQuery)
			assert.Nil(t, jobs)
			assert.Zero(t, total)
		})
	}
}

func TestEntityRepository_Update(t *testing.T) {
	db := newTestDB(t)
	ctx := t.Context()
	repo, err := repository.NewEntityRepository[models.Job, int64](db)
	require.NoError(t, err)
	jobs := seedJobs(t, repo, uuid.New())

	t.Run("Success", func(t *testing.T) {
		// Arrange
		job := jobs[0]
		job.Name = "Weekly Backup"
		job.ScheduledAt = nil

		// Act
		err := repo.Update(ctx, &job)

		// Assert
		require.NoError(t, err)
		stored, err := repo.GetByID(ctx, job.ID)
		require.NoError(t, err)
		assert.Equal(t, "Weekly Backup", stored.Name)
		assert.Nil(t, stored.ScheduledAt, "zero values should be written too")
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		job := models.Job{ID: 4242, OrganizationID: uuid.New(), Name: "Ghost"}

		// Act
		err := repo.Update(ctx, &job)

		// Assert
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestEntityRepository_Modify(t *testing.T) {
	db := newTestDB(t)
	ctx := t.Context()
	repo, err := repository.NewEntityRepository[models.Job, int64](db)
	require.NoError(t, err)
	jobs := seedJobs(t, repo, uuid.New())

	t.Run("Success", func(t *testing.T) {
		// Act
		job, err := repo.Modify(ctx, jobs[1].ID, func(job *models.Job) error {
			job.Priority = 75
			return nil
		})

		// Assert
		require.NoError(t, err)
		assert.Equal(t, 75, job.Priority)

		stored, err := repo.GetByID(ctx, jobs[1].ID)
		require.NoError(t, err)
		assert.Equal(t, 75, stored.Priority)
	})

	t.Run("Failure - Mutation Error Rolls Back", func(t *testing.T) {
		// Arrange
		mutationErr := errors.New("rejected")

		// Act
		job, err := repo.Modify(ctx, jobs[2].ID, func(job *models.Job) error {
			job.Priority = 1
			return mutationErr
		})

		// Assert
		assert.ErrorIs(t, err, mutationErr)
		assert.Nil(t, job)

		stored, err := repo.GetByID(ctx, jobs[2].ID)
		require.NoError(t, err)
		assert.Equal(t, 90, stored.Priority, "nothing should be persisted")
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Arrange
		called := false

		// Act
		job, err := repo.Modify(ctx, 9999, func(*models.Job) error {
			called = true
			return nil
		})

		// Assert
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, job)
		assert.False(t, called, "mutate should not run for a missing row")
	})
}

func TestEntityRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	ctx := t.Context()
	repo, err := repository.NewEntityRepository[models.Job, int64](db)
	require.NoError(t, err)
	jobs := seedJobs(t, repo, uuid.New())

	t.Run("Success", func(t *testing.T) {
		// Act
		err := repo.Delete(ctx, jobs[0].ID)

		// Assert
		require.NoError(t, err)
		_, err = repo.GetByID(ctx, jobs[0].ID)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("Failure - Not Found", func(t *testing.T) {
		// Act
		err := repo.Delete(ctx, jobs[0].ID)

		// Assert
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
