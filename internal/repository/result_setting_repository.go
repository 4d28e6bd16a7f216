package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/scolarite-api/internal/models"
)

// ResultSettingRepository stores the single active-session setting. The table carries a unique
// index on a constant expression so a second row cannot be inserted.
type ResultSettingRepository struct {
	db *sqlx.DB
}

// NewResultSettingRepository constructs the repository.
func NewResultSettingRepository(db *sqlx.DB) *ResultSettingRepository {
	return &ResultSettingRepository{db: db}
}

// Get returns the setting or sql.ErrNoRows when none is configured.
func (r *ResultSettingRepository) Get(ctx context.Context) (*models.ResultSetting, error) {
	const query = `SELECT id, session_id, created_at, updated_at FROM result_settings ORDER BY created_at ASC LIMIT 1`
	var setting models.ResultSetting
	if err := r.db.GetContext(ctx, &setting, query); err != nil {
		return nil, err
	}
	return &setting, nil
}

// Count returns the number of stored settings.
func (r *ResultSettingRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM result_settings`); err != nil {
		return 0, fmt.Errorf("count result settings: %w", err)
	}
	return count, nil
}

// Create inserts the setting.
func (r *ResultSettingRepository) Create(ctx context.Context, setting *models.ResultSetting) error {
	if setting.ID == "" {
		setting.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	setting.CreatedAt = now
	setting.UpdatedAt = now
	const query = `INSERT INTO result_settings (id, session_id, created_at, updated_at) VALUES (:id, :session_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, setting); err != nil {
		return fmt.Errorf("create result setting: %w", err)
	}
	return nil
}

// UpdateSession points the setting at another session.
func (r *ResultSettingRepository) UpdateSession(ctx context.Context, id, sessionID string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE result_settings SET session_id = $2, updated_at = $3 WHERE id = $1`, id, sessionID, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update result setting: %w", err)
	}
	return expectAffected(res)
}
