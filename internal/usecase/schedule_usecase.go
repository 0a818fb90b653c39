package usecase

import (
	"context"
	"strings"
	"time"

	"nextcareer-backend/internal/domain"
	"nextcareer-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

type scheduleUsecase struct {
	scheduleRepo domain.ScheduleRepository
	validate     *validator.Validate
}

// NewScheduleUsecase creates the interview scheduling usecase
func NewScheduleUsecase(scheduleRepo domain.ScheduleRepository, validate *validator.Validate) domain.ScheduleUsecase {
	return &scheduleUsecase{
		scheduleRepo: scheduleRepo,
		validate:     validate,
	}
}

// Replace creates the schedule for (job, candidate), removing any
// previous one. A hard overwrite: no merge, no conflict check — a second
// recruiter scheduling the same candidate silently replaces the first.
func (uc *scheduleUsecase) Replace(ctx context.Context, in domain.ScheduleInput) (*domain.Schedule, error) {
	// 1. Every field except the note is required
	if err := uc.validate.Struct(in); err != nil {
		var missing []string
		if errs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range errs {
				missing = append(missing, fe.Field())
			}
		}
		if len(missing) > 0 {
			return nil, apperror.BadRequest("Missing required fields: " + strings.Join(missing, ", "))
		}
		return nil, apperror.BadRequest("Missing required fields")
	}

	// 2. Delete-then-insert keyed on (job, candidate), transactional
	now := time.Now()
	schedule := &domain.Schedule{
		JobID:         in.JobID,
		RecruiterID:   in.RecruiterID,
		CandidateID:   in.CandidateID,
		StageName:     in.StageName,
		ScheduledDate: in.ScheduledDate,
		StartTime:     in.StartTime,
		EndTime:       in.EndTime,
		Note:          in.Note,
		Status:        domain.ScheduleStatusScheduled,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := uc.scheduleRepo.Replace(ctx, schedule); err != nil {
		return nil, apperror.Internal(err)
	}
	return schedule, nil
}

// ListForCandidate returns a candidate's upcoming schedules, soonest first
func (uc *scheduleUsecase) ListForCandidate(ctx context.Context, candidateID string) ([]domain.Schedule, error) {
	if candidateID == "" {
		return nil, apperror.BadRequest("Missing candidateId")
	}

	schedules, err := uc.scheduleRepo.ListByCandidate(ctx, candidateID, todayDate())
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return schedules, nil
}

// ListForRecruiter returns a recruiter's upcoming schedules, soonest first
func (uc *scheduleUsecase) ListForRecruiter(ctx context.Context, recruiterID string) ([]domain.Schedule, error) {
	if recruiterID == "" {
		return nil, apperror.BadRequest("Missing recruiterId")
	}

	schedules, err := uc.scheduleRepo.ListByRecruiter(ctx, recruiterID, todayDate())
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return schedules, nil
}

// todayDate is the ISO date-only string schedules are filtered against;
// the comparison downstream is string-lexicographic.
func todayDate() string {
	return time.Now().Format("2006-01-02")
}
