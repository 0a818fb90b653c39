package usecase

import (
	"context"
	"errors"

	"nextcareer-backend/internal/domain"
	"nextcareer-backend/pkg/apperror"
)

type jobUsecase struct {
	jobRepo  domain.JobRepository
	presence domain.Presence
}

// NewJobUsecase creates the job-side usecase owned by this service
func NewJobUsecase(jobRepo domain.JobRepository, presence domain.Presence) domain.JobUsecase {
	return &jobUsecase{
		jobRepo:  jobRepo,
		presence: presence,
	}
}

// IncrementView bumps a job's view counter and broadcasts the new count
// to every live connection. The broadcast is best-effort; the counter
// update is what matters.
func (uc *jobUsecase) IncrementView(ctx context.Context, id int64) (int64, error) {
	if id <= 0 {
		return 0, apperror.BadRequest("Invalid job ID")
	}

	count, err := uc.jobRepo.IncrementView(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, apperror.NotFound("Job not found")
		}
		return 0, apperror.Internal(err)
	}

	uc.presence.Broadcast(domain.EventJobViewIncremented, map[string]any{
		"jobId":        id,
		"newViewCount": count,
	})

	return count, nil
}
