package domain

import (
	"context"
	"time"
)

// AppliedUser is one applicant's entry in a job's application ledger.
// ProgressStages only ever grows; stages are added idempotently, never removed.
type AppliedUser struct {
	UserID         string    `json:"user_id"`
	AppliedOn      time.Time `json:"applied_on"`
	ProgressStages []string  `json:"progress_stages"`
}

// Applicant is an AppliedUser joined with the user record, for recruiter views.
type Applicant struct {
	AppliedUser
	Name   string  `json:"name"`
	Email  string  `json:"email"`
	Avatar *string `json:"avatar,omitempty"`
}

// ApplicationStatus is the combined apply/schedule state for one candidate on one job.
type ApplicationStatus struct {
	HasApplied  bool      `json:"hasApplied"`
	HasSchedule bool      `json:"hasSchedule"`
	Schedule    *Schedule `json:"schedule"`
}

// ApplicationRepository is the per-job application ledger. At most one
// entry exists per (jobID, userID) pair; the store enforces uniqueness
// atomically so concurrent duplicate submissions cannot both land.
type ApplicationRepository interface {
	// Insert appends an applicant to the job's ledger.
	// Returns ErrDuplicate if the pair already applied.
	Insert(ctx context.Context, jobID int64, userID string, appliedOn time.Time) error
	Exists(ctx context.Context, jobID int64, userID string) (bool, error)
	// ListByJob returns applicants in append order.
	ListByJob(ctx context.Context, jobID int64) ([]AppliedUser, error)
	CountByJob(ctx context.Context, jobID int64) (int64, error)
	// AddProgressStage adds a stage to one applicant's progress set.
	// Reports whether the stage was newly added (false on idempotent repeat);
	// returns ErrNotFound when the pair never applied.
	AddProgressStage(ctx context.Context, jobID int64, userID, stage string) (bool, error)
}

// ApplyInput carries a job application submission.
type ApplyInput struct {
	JobID         int64  `json:"jobId"`
	UserID        string `json:"userId"`
	JobTitle      string `json:"jobTitle"`
	ApplicantName string `json:"applicantName"`
}

// ApplicationUsecase is the application lifecycle: submission, status
// checks, applicant listings and stage progression.
type ApplicationUsecase interface {
	Apply(ctx context.Context, in ApplyInput) error
	CheckApplication(ctx context.Context, jobID int64, userID string) (*ApplicationStatus, error)
	ListApplicants(ctx context.Context, jobID int64) ([]Applicant, error)
	CountApplicants(ctx context.Context, jobID int64) (int64, error)
	AdvanceStage(ctx context.Context, jobID int64, userID, stage string) error
}
