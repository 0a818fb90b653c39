package postgres

import (
	"context"
	"errors"

	"nextcareer-backend/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type userRepo struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) domain.UserRepository {
	return &userRepo{db: db}
}

// GetByID retrieves a user by ID
func (r *userRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
		SELECT id, name, email, role, resume_key, avatar_key, created_at
		FROM users
		WHERE id = $1`

	var u domain.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&u.ID, &u.Name, &u.Email, &u.Role, &u.ResumeKey, &u.AvatarKey, &u.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByIDs retrieves users for a set of IDs; missing IDs are skipped
func (r *userRepo) GetByIDs(ctx context.Context, ids []string) ([]domain.User, error) {
	query := `
		SELECT id, name, email, role, resume_key, avatar_key, created_at
		FROM users
		WHERE id = ANY($1)`

	rows, err := r.db.Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(
			&u.ID, &u.Name, &u.Email, &u.Role, &u.ResumeKey, &u.AvatarKey, &u.CreatedAt,
		); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateFileKey stores the blob store key of a user's resume or avatar
func (r *userRepo) UpdateFileKey(ctx context.Context, id, kind, key string) error {
	column := "resume_key"
	if kind == domain.FileKindAvatar {
		column = "avatar_key"
	}

	query := `UPDATE users SET ` + column + ` = $2 WHERE id = $1`
	result, err := r.db.Exec(ctx, query, id, key)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
