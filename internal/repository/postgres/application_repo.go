package postgres

import (
	"context"
	"time"

	"nextcareer-backend/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type applicationRepo struct {
	db *pgxpool.Pool
}

// NewApplicationRepository creates a new application ledger repository
func NewApplicationRepository(db *pgxpool.Pool) domain.ApplicationRepository {
	return &applicationRepo{db: db}
}

// Insert appends an applicant to the job's ledger. The primary key on
// (job_id, user_id) makes concurrent duplicate submissions collapse to a
// single row; the loser sees ErrDuplicate instead of a racy pre-read.
func (r *applicationRepo) Insert(ctx context.Context, jobID int64, userID string, appliedOn time.Time) error {
	query := `
		INSERT INTO applications (job_id, user_id, applied_on, progress_stages)
		VALUES ($1, $2, $3, '{}')
		ON CONFLICT (job_id, user_id) DO NOTHING`

	result, err := r.db.Exec(ctx, query, jobID, userID, appliedOn)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrDuplicate
	}
	return nil
}

// Exists checks whether a user has applied to a job
func (r *applicationRepo) Exists(ctx context.Context, jobID int64, userID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM applications WHERE job_id = $1 AND user_id = $2)`
	var exists bool
	err := r.db.QueryRow(ctx, query, jobID, userID).Scan(&exists)
	return exists, err
}

// ListByJob returns a job's applicants in append order
func (r *applicationRepo) ListByJob(ctx context.Context, jobID int64) ([]domain.AppliedUser, error) {
	query := `
		SELECT user_id, applied_on, COALESCE(progress_stages, '{}')
		FROM applications
		WHERE job_id = $1
		ORDER BY applied_on ASC`

	rows, err := r.db.Query(ctx, query, jobID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var applicants []domain.AppliedUser
	for rows.Next() {
		var a domain.AppliedUser
		if err := rows.Scan(&a.UserID, &a.AppliedOn, pq.Array(&a.ProgressStages)); err != nil {
			return nil, err
		}
		applicants = append(applicants, a)
	}
	return applicants, rows.Err()
}

// CountByJob returns the number of applicants on a job
func (r *applicationRepo) CountByJob(ctx context.Context, jobID int64) (int64, error) {
	query := `SELECT COUNT(*) FROM applications WHERE job_id = $1`
	var count int64
	err := r.db.QueryRow(ctx, query, jobID).Scan(&count)
	return count, err
}

// AddProgressStage adds a stage to one applicant's progress set. The
// guarded update only matches when the stage is absent, so the row count
// distinguishes a new transition from an idempotent repeat.
func (r *applicationRepo) AddProgressStage(ctx context.Context, jobID int64, userID, stage string) (bool, error) {
	query := `
		UPDATE applications
		SET progress_stages = array_append(COALESCE(progress_stages, '{}'), $3)
		WHERE job_id = $1 AND user_id = $2
		  AND NOT (COALESCE(progress_stages, '{}') @> ARRAY[$3])`

	result, err := r.db.Exec(ctx, query, jobID, userID, stage)
	if err != nil {
		return false, err
	}
	if result.RowsAffected() == 1 {
		return true, nil
	}

	// No row matched: either the stage was already present (no-op) or the
	// pair never applied at all.
	exists, err := r.Exists(ctx, jobID, userID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, domain.ErrNotFound
	}
	return false, nil
}
