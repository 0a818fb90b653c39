package postgres

import (
	"context"
	"errors"

	"nextcareer-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type jobRepo struct {
	db *pgxpool.Pool
}

// NewJobRepository creates a new job repository
func NewJobRepository(db *pgxpool.Pool) domain.JobRepository {
	return &jobRepo{db: db}
}

// GetByID retrieves a job posting by ID
func (r *jobRepo) GetByID(ctx context.Context, id int64) (*domain.Job, error) {
	query := `
		SELECT id, title, category, posted_by, deadline, view_count, recruited,
		       COALESCE(completed_stages, '{}'), company_name, company_logo, created_at
		FROM jobs
		WHERE id = $1`

	var job domain.Job
	err := r.db.QueryRow(ctx, query, id).Scan(
		&job.ID, &job.Title, &job.Category, &job.PostedBy, &job.Deadline,
		&job.ViewCount, &job.Recruited, pq.Array(&job.CompletedStages),
		&job.CompanyName, &job.CompanyLogo, &job.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &job, nil
}

// IncrementView bumps the view counter and returns the new count
func (r *jobRepo) IncrementView(ctx context.Context, id int64) (int64, error) {
	query := `UPDATE jobs SET view_count = view_count + 1 WHERE id = $1 RETURNING view_count`

	var count int64
	err := r.db.QueryRow(ctx, query, id).Scan(&count)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, err
	}
	return count, nil
}

// AddCompletedStage adds a stage to the job's aggregate stage set.
// Re-adding an existing stage is a no-op, so retries are safe.
func (r *jobRepo) AddCompletedStage(ctx context.Context, id int64, stage string) error {
	query := `
		UPDATE jobs
		SET completed_stages = array_append(COALESCE(completed_stages, '{}'), $2)
		WHERE id = $1 AND NOT (COALESCE(completed_stages, '{}') @> ARRAY[$2])`

	_, err := r.db.Exec(ctx, query, id, stage)
	return err
}

// IncrementRecruited bumps the hired counter
func (r *jobRepo) IncrementRecruited(ctx context.Context, id int64) error {
	query := `UPDATE jobs SET recruited = recruited + 1 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
