package domain

import (
	"context"
	"time"
)

// User roles
const (
	RoleSeeker    = "seeker"
	RoleRecruiter = "recruiter"
	RoleAdmin     = "admin"
)

// User file kinds stored in the blob store
const (
	FileKindResume = "resume"
	FileKindAvatar = "avatar"
)

// User is the account record. Profile CRUD lives outside this service;
// the repository here only covers what the core flows need.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	ResumeKey *string   `json:"resume_key,omitempty"`
	AvatarKey *string   `json:"avatar_key,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// UserRepository defines the read surface the core flows depend on.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*User, error)
	GetByIDs(ctx context.Context, ids []string) ([]User, error)
	UpdateFileKey(ctx context.Context, id, kind, key string) error
}
