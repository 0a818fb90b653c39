package postgres

import (
	"context"
	"errors"

	"nextcareer-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type scheduleRepo struct {
	db *pgxpool.Pool
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(db *pgxpool.Pool) domain.ScheduleRepository {
	return &scheduleRepo{db: db}
}

const scheduleColumns = `id, job_id, recruiter_id, candidate_id, stage_name,
	scheduled_date, start_time, end_time, note, status, created_at, updated_at`

// Replace deletes any schedule for (job_id, candidate_id) and inserts the
// new one in a single transaction. This is a hard overwrite: a second
// recruiter scheduling the same candidate silently replaces the first.
func (r *scheduleRepo) Replace(ctx context.Context, s *domain.Schedule) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	deleteQuery := `DELETE FROM schedules WHERE job_id = $1 AND candidate_id = $2`
	if _, err := tx.Exec(ctx, deleteQuery, s.JobID, s.CandidateID); err != nil {
		return err
	}

	insertQuery := `
		INSERT INTO schedules (job_id, recruiter_id, candidate_id, stage_name,
			scheduled_date, start_time, end_time, note, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id`

	if err := tx.QueryRow(ctx, insertQuery,
		s.JobID, s.RecruiterID, s.CandidateID, s.StageName,
		s.ScheduledDate, s.StartTime, s.EndTime, s.Note, s.Status,
		s.CreatedAt, s.UpdatedAt,
	).Scan(&s.ID); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// GetByJobAndCandidate retrieves the active schedule for a pair, if any
func (r *scheduleRepo) GetByJobAndCandidate(ctx context.Context, jobID int64, candidateID string) (*domain.Schedule, error) {
	query := `SELECT ` + scheduleColumns + ` FROM schedules WHERE job_id = $1 AND candidate_id = $2`

	var s domain.Schedule
	err := r.db.QueryRow(ctx, query, jobID, candidateID).Scan(
		&s.ID, &s.JobID, &s.RecruiterID, &s.CandidateID, &s.StageName,
		&s.ScheduledDate, &s.StartTime, &s.EndTime, &s.Note, &s.Status,
		&s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// ListByCandidate returns a candidate's schedules from the given date onwards
func (r *scheduleRepo) ListByCandidate(ctx context.Context, candidateID, fromDate string) ([]domain.Schedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules
		WHERE candidate_id = $1 AND scheduled_date >= $2
		ORDER BY scheduled_date ASC, start_time ASC`

	return r.list(ctx, query, candidateID, fromDate)
}

// ListByRecruiter returns a recruiter's schedules from the given date onwards
func (r *scheduleRepo) ListByRecruiter(ctx context.Context, recruiterID, fromDate string) ([]domain.Schedule, error) {
	query := `
		SELECT ` + scheduleColumns + `
		FROM schedules
		WHERE recruiter_id = $1 AND scheduled_date >= $2
		ORDER BY scheduled_date ASC, start_time ASC`

	return r.list(ctx, query, recruiterID, fromDate)
}

func (r *scheduleRepo) list(ctx context.Context, query string, args ...any) ([]domain.Schedule, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []domain.Schedule
	for rows.Next() {
		var s domain.Schedule
		if err := rows.Scan(
			&s.ID, &s.JobID, &s.RecruiterID, &s.CandidateID, &s.StageName,
			&s.ScheduledDate, &s.StartTime, &s.EndTime, &s.Note, &s.Status,
			&s.CreatedAt, &s.UpdatedAt,
		); err != nil {
			return nil, err
		}
		schedules = append(schedules, s)
	}
	return schedules, rows.Err()
}
