package repo

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"repurpose-backend/internal/domain"
	"repurpose-backend/internal/infra"
)

// SettingsRepositoryPG implements domain.SettingsRepository over the
// app_settings key/value store.
type SettingsRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewSettingsRepository creates a settings repository backed by PostgreSQL.
func NewSettingsRepository(pool *pgxpool.Pool) *SettingsRepositoryPG {
	return &SettingsRepositoryPG{pool: pool}
}

// Get fetches one rule by key; absent keys return domain.ErrNotFound.
func (r *SettingsRepositoryPG) Get(ctx context.Context, key string) (*domain.AppSetting, error) {
	query := `
SELECT rule_key, rule_value, COALESCE(description, ''), updated_at
FROM app_settings
WHERE rule_key = $1;
`
	row := r.pool.QueryRow(ctx, query, key)
	var setting domain.AppSetting
	var value []byte
	if err := row.Scan(&setting.RuleKey, &value, &setting.Description, &setting.UpdatedAt); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	setting.RuleValue = json.RawMessage(value)
	return &setting, nil
}

// Set upserts a rule document.
func (r *SettingsRepositoryPG) Set(ctx context.Context, key string, value json.RawMessage, description string) error {
	query := `
INSERT INTO app_settings (rule_key, rule_value, description)
VALUES ($1, $2, NULLIF($3, ''))
ON CONFLICT (rule_key) DO UPDATE
SET rule_value = EXCLUDED.rule_value,
    description = COALESCE(EXCLUDED.description, app_settings.description),
    updated_at = NOW();
`
	if _, err := r.pool.Exec(ctx, query, key, []byte(value), description); err != nil {
		return fmt.Errorf("set rule %q: %w", key, err)
	}
	return nil
}

// List returns every stored rule.
func (r *SettingsRepositoryPG) List(ctx context.Context) ([]domain.AppSetting, error) {
	query := `
SELECT rule_key, rule_value, COALESCE(description, ''), updated_at
FROM app_settings
ORDER BY rule_key ASC;
`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []domain.AppSetting
	for rows.Next() {
		var setting domain.AppSetting
		var value []byte
		if err := rows.Scan(&setting.RuleKey, &value, &setting.Description, &setting.UpdatedAt); err != nil {
			return nil, err
		}
		setting.RuleValue = json.RawMessage(value)
		settings = append(settings, setting)
	}
	return settings, rows.Err()
}

var _ domain.SettingsRepository = (*SettingsRepositoryPG)(nil)
