package domain

import (
	"context"
	"time"
)

// StageHire is the terminal recruiting stage. Matching is case-insensitive.
const StageHire = "hire"

// Job is the posting record. Creation and editing are handled elsewhere;
// this service mutates the counters and the aggregate stage set only.
type Job struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Category        string    `json:"category"`
	PostedBy        string    `json:"posted_by"`
	Deadline        time.Time `json:"deadline"`
	ViewCount       int64     `json:"view_count"`
	Recruited       int64     `json:"recruited"`
	CompletedStages []string  `json:"completed_stages"`
	CompanyName     string    `json:"company_name"`
	CompanyLogo     *string   `json:"company_logo,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// JobRepository defines data access for job postings.
type JobRepository interface {
	GetByID(ctx context.Context, id int64) (*Job, error)
	// IncrementView bumps view_count and returns the new value.
	IncrementView(ctx context.Context, id int64) (int64, error)
	// AddCompletedStage adds a stage to the job's aggregate stage set (idempotent).
	AddCompletedStage(ctx context.Context, id int64, stage string) error
	IncrementRecruited(ctx context.Context, id int64) error
}

// JobUsecase covers the job-side operations owned by this service.
type JobUsecase interface {
	IncrementView(ctx context.Context, id int64) (int64, error)
}
