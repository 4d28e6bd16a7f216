package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/scolarite-api/internal/models"
)

const sessionColumns = "id, title, school_year, code, created_at, updated_at"

// SessionRepository persists exam sessions.
type SessionRepository struct {
	db *sqlx.DB
}

// NewSessionRepository instantiates a session repository.
func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

// List returns sessions, newest school year first.
func (r *SessionRepository) List(ctx context.Context, filter models.SessionFilter) ([]models.ExamSession, error) {
	conditions := []string{"1=1"}
	var args []interface{}
	if filter.SchoolYear != "" {
		conditions = append(conditions, fmt.Sprintf("school_year = $%d", len(args)+1))
		args = append(args, filter.SchoolYear)
	}
	if filter.Title != "" {
		conditions = append(conditions, fmt.Sprintf("title = $%d", len(args)+1))
		args = append(args, filter.Title)
	}
	query := fmt.Sprintf("SELECT %s FROM exam_sessions WHERE %s ORDER BY school_year DESC, title ASC", sessionColumns, strings.Join(conditions, " AND "))
	var sessions []models.ExamSession
	if err := r.db.SelectContext(ctx, &sessions, query, args...); err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// FindByID returns a session by id.
func (r *SessionRepository) FindByID(ctx context.Context, id string) (*models.ExamSession, error) {
	var session models.ExamSession
	if err := r.db.GetContext(ctx, &session, "SELECT "+sessionColumns+" FROM exam_sessions WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &session, nil
}

// ExistsByTitleYear checks the (title, school year) uniqueness.
func (r *SessionRepository) ExistsByTitleYear(ctx context.Context, title models.SessionTitle, schoolYear string) (bool, error) {
	return r.exists(ctx, "SELECT 1 FROM exam_sessions WHERE title = $1 AND school_year = $2 LIMIT 1", title, schoolYear)
}

// ExistsByCode checks whether a generated code is already taken.
func (r *SessionRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	return r.exists(ctx, "SELECT 1 FROM exam_sessions WHERE code = $1 LIMIT 1", code)
}

func (r *SessionRepository) exists(ctx context.Context, query string, args ...interface{}) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check session: %w", err)
	}
	return true, nil
}

// Create inserts a session.
func (r *SessionRepository) Create(ctx context.Context, session *models.ExamSession) error {
	if session.ID == "" {
		session.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	session.CreatedAt = now
	session.UpdatedAt = now
	const query = `INSERT INTO exam_sessions (id, title, school_year, code, created_at, updated_at)
        VALUES (:id, :title, :school_year, :code, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, session); err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// Delete removes a session.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM exam_sessions WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return expectAffected(res)
}
