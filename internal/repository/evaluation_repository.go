package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/scolarite-api/internal/models"
)

const evaluationDetailSelect = `SELECT e.id, e.kind, e.session_id, e.subject_id, e.title, e.held_on, e.created_at, e.updated_at,
        sub.name AS subject_name, sub.class_id, ses.title AS session_title, ses.school_year
        FROM evaluations e
        JOIN subjects sub ON sub.id = e.subject_id
        JOIN exam_sessions ses ON ses.id = e.session_id`

// EvaluationRepository persists coursework assignments and exams.
type EvaluationRepository struct {
	db *sqlx.DB
}

// NewEvaluationRepository constructs an EvaluationRepository.
func NewEvaluationRepository(db *sqlx.DB) *EvaluationRepository {
	return &EvaluationRepository{db: db}
}

// List returns evaluations matching the filter.
func (r *EvaluationRepository) List(ctx context.Context, filter models.EvaluationFilter) ([]models.EvaluationDetail, error) {
	conditions := []string{"1=1"}
	var args []interface{}
	add := func(column string, value interface{}) {
		conditions = append(conditions, fmt.Sprintf("%s = $%d", column, len(args)+1))
		args = append(args, value)
	}
	if filter.Kind != "" {
		add("e.kind", filter.Kind)
	}
	if filter.SessionID != "" {
		add("e.session_id", filter.SessionID)
	}
	if filter.SubjectID != "" {
		add("e.subject_id", filter.SubjectID)
	}
	if filter.ClassID != "" {
		add("sub.class_id", filter.ClassID)
	}
	query := fmt.Sprintf("%s WHERE %s ORDER BY ses.school_year DESC, sub.name ASC, e.kind ASC", evaluationDetailSelect, strings.Join(conditions, " AND "))

	var evaluations []models.EvaluationDetail
	if err := r.db.SelectContext(ctx, &evaluations, query, args...); err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	return evaluations, nil
}

// FindByID returns an evaluation with subject and session context.
func (r *EvaluationRepository) FindByID(ctx context.Context, id string) (*models.EvaluationDetail, error) {
	var evaluation models.EvaluationDetail
	if err := r.db.GetContext(ctx, &evaluation, evaluationDetailSelect+" WHERE e.id = $1", id); err != nil {
		return nil, err
	}
	return &evaluation, nil
}

// FindByKey returns the evaluation of a kind for (session, subject).
func (r *EvaluationRepository) FindByKey(ctx context.Context, kind models.EvaluationKind, sessionID, subjectID string) (*models.EvaluationDetail, error) {
	var evaluation models.EvaluationDetail
	query := evaluationDetailSelect + " WHERE e.kind = $1 AND e.session_id = $2 AND e.subject_id = $3"
	if err := r.db.GetContext(ctx, &evaluation, query, kind, sessionID, subjectID); err != nil {
		return nil, err
	}
	return &evaluation, nil
}

// Create inserts an evaluation.
func (r *EvaluationRepository) Create(ctx context.Context, evaluation *models.Evaluation) error {
	if evaluation.ID == "" {
		evaluation.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	evaluation.CreatedAt = now
	evaluation.UpdatedAt = now
	const query = `INSERT INTO evaluations (id, kind, session_id, subject_id, title, held_on, created_at, updated_at)
        VALUES (:id, :kind, :session_id, :subject_id, :title, :held_on, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, evaluation); err != nil {
		return fmt.Errorf("create evaluation: %w", err)
	}
	return nil
}

// Delete removes an evaluation and, through the foreign key, its scores.
func (r *EvaluationRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM evaluations WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete evaluation: %w", err)
	}
	return expectAffected(res)
}
