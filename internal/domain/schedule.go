package domain

import (
	"context"
	"time"
)

// ScheduleStatusScheduled is the status every newly created schedule gets.
const ScheduleStatusScheduled = "scheduled"

// Schedule is an interview slot between a recruiter and a candidate for
// a job. At most one active schedule exists per (jobID, candidateID);
// rescheduling fully replaces the previous record. ScheduledDate is an
// ISO date-only string (YYYY-MM-DD); date filters compare it
// lexicographically.
type Schedule struct {
	ID            int64     `json:"id"`
	JobID         int64     `json:"job_id"`
	RecruiterID   string    `json:"recruiter_id"`
	CandidateID   string    `json:"candidate_id"`
	StageName     string    `json:"stage_name"`
	ScheduledDate string    `json:"scheduled_date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	Note          string    `json:"note"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// ScheduleInput carries a create-or-replace schedule request.
type ScheduleInput struct {
	JobID         int64  `json:"jobId" validate:"required"`
	RecruiterID   string `json:"recruiterId" validate:"required"`
	CandidateID   string `json:"candidateId" validate:"required"`
	StageName     string `json:"stageName" validate:"required"`
	ScheduledDate string `json:"scheduledDate" validate:"required"`
	StartTime     string `json:"startTime" validate:"required"`
	EndTime       string `json:"endTime" validate:"required"`
	Note          string `json:"note"`
}

// ScheduleRepository defines data access for interview schedules.
type ScheduleRepository interface {
	// Replace removes any schedule for (jobID, candidateID) and inserts
	// the given one, atomically.
	Replace(ctx context.Context, s *Schedule) error
	GetByJobAndCandidate(ctx context.Context, jobID int64, candidateID string) (*Schedule, error)
	// ListByCandidate / ListByRecruiter return schedules with
	// scheduled_date >= fromDate, sorted by date then start time.
	ListByCandidate(ctx context.Context, candidateID, fromDate string) ([]Schedule, error)
	ListByRecruiter(ctx context.Context, recruiterID, fromDate string) ([]Schedule, error)
}

// ScheduleUsecase manages interview slots with overwrite-on-reschedule semantics.
type ScheduleUsecase interface {
	Replace(ctx context.Context, in ScheduleInput) (*Schedule, error)
	ListForCandidate(ctx context.Context, candidateID string) ([]Schedule, error)
	ListForRecruiter(ctx context.Context, recruiterID string) ([]Schedule, error)
}
