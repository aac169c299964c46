package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"repurpose-backend/internal/domain"
	"repurpose-backend/internal/infra"
)

// UserRepositoryPG implements domain.UserRepository.
type UserRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a user repository backed by PostgreSQL.
func NewUserRepository(pool *pgxpool.Pool) *UserRepositoryPG {
	return &UserRepositoryPG{pool: pool}
}

// GetByID fetches a user for ownership and role checks.
func (r *UserRepositoryPG) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `
SELECT id, username, email, role, preferences, created_at
FROM users
WHERE id = $1;
`
	row := r.pool.QueryRow(ctx, query, id)
	var user domain.User
	var prefs []byte
	if err := row.Scan(&user.ID, &user.Username, &user.Email, &user.Role, &prefs, &user.CreatedAt); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	user.Preferences = json.RawMessage(prefs)
	return &user, nil
}

// SetPreferences overwrites a user's preferences document.
func (r *UserRepositoryPG) SetPreferences(ctx context.Context, id uuid.UUID, preferences json.RawMessage) error {
	query := `
UPDATE users
SET preferences = $2
WHERE id = $1;
`
	tag, err := r.pool.Exec(ctx, query, id, []byte(preferences))
	if err != nil {
		return fmt.Errorf("set preferences: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

var _ domain.UserRepository = (*UserRepositoryPG)(nil)
