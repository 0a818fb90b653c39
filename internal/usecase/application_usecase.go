package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"nextcareer-backend/internal/domain"
	"nextcareer-backend/pkg/apperror"

	"github.com/google/uuid"
)

type applicationUsecase struct {
	applicationRepo domain.ApplicationRepository
	jobRepo         domain.JobRepository
	scheduleRepo    domain.ScheduleRepository
	userRepo        domain.UserRepository
	dispatcher      *notificationDispatcher
}

// NewApplicationUsecase creates the application lifecycle usecase
func NewApplicationUsecase(
	applicationRepo domain.ApplicationRepository,
	jobRepo domain.JobRepository,
	scheduleRepo domain.ScheduleRepository,
	userRepo domain.UserRepository,
	notificationRepo domain.NotificationRepository,
	presence domain.Presence,
) domain.ApplicationUsecase {
	return &applicationUsecase{
		applicationRepo: applicationRepo,
		jobRepo:         jobRepo,
		scheduleRepo:    scheduleRepo,
		userRepo:        userRepo,
		dispatcher:      newNotificationDispatcher(notificationRepo, presence),
	}
}

// Apply submits a job application. The ledger write is authoritative;
// the job-poster notification and realtime push that follow are side
// effects whose failure never rolls the application back.
func (uc *applicationUsecase) Apply(ctx context.Context, in domain.ApplyInput) error {
	// 1. Validate identifiers before touching the store
	if err := validateIDs(in.JobID, in.UserID); err != nil {
		return err
	}

	// 2. Resolve the job; also yields the notification recipient
	job, err := uc.jobRepo.GetByID(ctx, in.JobID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Job not found")
		}
		return apperror.Internal(err)
	}

	// 3. Append to the ledger; the store enforces one entry per (job, user)
	if err := uc.applicationRepo.Insert(ctx, in.JobID, in.UserID, time.Now()); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return apperror.Conflict("You have already applied to this job")
		}
		return apperror.Internal(err)
	}

	// 4. Notify the job poster and attempt realtime delivery
	message := fmt.Sprintf("%s has been submitted a new application for your job %s",
		in.ApplicantName, in.JobTitle)

	uc.dispatcher.Dispatch(ctx, &domain.Notification{
		UserID:  job.PostedBy,
		Type:    domain.NotificationTypeJobApplication,
		Message: message,
		Data: map[string]any{
			"jobId":       in.JobID,
			"applicantId": in.UserID,
		},
	}, domain.NotificationTypeJobApplication, map[string]any{
		"message":     message,
		"jobId":       in.JobID,
		"applicantId": in.UserID,
	})

	return nil
}

// CheckApplication reports whether a user applied to a job and whether
// an interview is scheduled for the pair.
func (uc *applicationUsecase) CheckApplication(ctx context.Context, jobID int64, userID string) (*domain.ApplicationStatus, error) {
	if err := validateIDs(jobID, userID); err != nil {
		return nil, err
	}

	applied, err := uc.applicationRepo.Exists(ctx, jobID, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if !applied {
		return &domain.ApplicationStatus{HasApplied: false}, nil
	}

	status := &domain.ApplicationStatus{HasApplied: true}

	schedule, err := uc.scheduleRepo.GetByJobAndCandidate(ctx, jobID, userID)
	switch {
	case err == nil:
		status.HasSchedule = true
		status.Schedule = schedule
	case errors.Is(err, domain.ErrNotFound):
		// applied but nothing scheduled yet
	default:
		return nil, apperror.Internal(err)
	}

	return status, nil
}

// ListApplicants returns a job's applicants in append order, joined with
// their user records for the recruiter view.
func (uc *applicationUsecase) ListApplicants(ctx context.Context, jobID int64) ([]domain.Applicant, error) {
	if jobID <= 0 {
		return nil, apperror.BadRequest("Invalid job ID")
	}

	entries, err := uc.applicationRepo.ListByJob(ctx, jobID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if len(entries) == 0 {
		return nil, apperror.NotFound("No applications found for this job")
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.UserID)
	}

	users, err := uc.userRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	byID := make(map[string]domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	applicants := make([]domain.Applicant, 0, len(entries))
	for _, e := range entries {
		a := domain.Applicant{AppliedUser: e}
		if u, ok := byID[e.UserID]; ok {
			a.Name = u.Name
			a.Email = u.Email
			a.Avatar = u.AvatarKey
		}
		applicants = append(applicants, a)
	}
	return applicants, nil
}

// CountApplicants returns how many users applied to a job
func (uc *applicationUsecase) CountApplicants(ctx context.Context, jobID int64) (int64, error) {
	if jobID <= 0 {
		return 0, apperror.BadRequest("Invalid job ID")
	}

	count, err := uc.applicationRepo.CountByJob(ctx, jobID)
	if err != nil {
		return 0, apperror.Internal(err)
	}
	if count == 0 {
		return 0, apperror.NotFound("No applications found for this job")
	}
	return count, nil
}

// AdvanceStage moves a candidate to the given recruiting stage on a job.
// Stage names are caller-defined; both the applicant's progress set and
// the job's aggregate stage set grow idempotently, so retries are safe.
// Reaching the hire stage bumps the job's recruited counter, but only
// when the stage is new for that applicant, keeping the counter equal to
// the number of distinct hires.
func (uc *applicationUsecase) AdvanceStage(ctx context.Context, jobID int64, userID, stage string) error {
	if err := validateIDs(jobID, userID); err != nil {
		return err
	}
	if stage == "" {
		return apperror.BadRequest("Stage is required")
	}

	// 1. Add the stage to this applicant's progress set (exactly this
	// applicant, nobody else on the job)
	newForApplicant, err := uc.applicationRepo.AddProgressStage(ctx, jobID, userID, stage)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return apperror.NotFound("Application not found")
		}
		return apperror.Internal(err)
	}

	// 2. Union the stage into the job's aggregate stage set
	if err := uc.jobRepo.AddCompletedStage(ctx, jobID, stage); err != nil {
		return apperror.Internal(err)
	}

	// 3. Guarded counter: one increment per hired candidate
	isHired := strings.EqualFold(stage, domain.StageHire)
	if isHired && newForApplicant {
		if err := uc.jobRepo.IncrementRecruited(ctx, jobID); err != nil {
			return apperror.Internal(err)
		}
	}

	// 4. Notify the candidate and attempt realtime delivery
	message := fmt.Sprintf("🎯 You've been selected for the %s stage", stage)
	if isHired {
		message = "🎉 Congratulations! You have been hired for the position."
	}

	uc.dispatcher.Dispatch(ctx, &domain.Notification{
		UserID:  userID,
		Type:    domain.NotificationTypeStageProgress,
		Message: message,
		Data: map[string]any{
			"jobId": jobID,
			"stage": stage,
		},
	}, domain.NotificationTypeStageProgress, map[string]any{
		"message": message,
		"jobId":   jobID,
		"stage":   stage,
	})

	return nil
}

// validateIDs rejects malformed identifiers before any store access
func validateIDs(jobID int64, userID string) error {
	if jobID <= 0 {
		return apperror.BadRequest("Invalid job ID")
	}
	if uuid.Validate(userID) != nil {
		return apperror.BadRequest("Invalid user ID")
	}
	return nil
}
