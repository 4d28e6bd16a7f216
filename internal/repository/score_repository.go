package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/scolarite-api/internal/models"
)

// ScoreRepository is the scoring record store.
type ScoreRepository struct {
	db *sqlx.DB
}

// NewScoreRepository creates a new ScoreRepository.
func NewScoreRepository(db *sqlx.DB) *ScoreRepository {
	return &ScoreRepository{db: db}
}

// Upsert records the score of a student for an evaluation, overwriting any previous value.
// It reports whether a new row was inserted.
func (r *ScoreRepository) Upsert(ctx context.Context, score *models.Score) (bool, error) {
	now := time.Now().UTC()
	if score.ID == "" {
		score.ID = uuid.NewString()
	}
	const query = `INSERT INTO scores (id, evaluation_id, student_id, value, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $5)
        ON CONFLICT (evaluation_id, student_id)
        DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
        RETURNING id, created_at, updated_at, (xmax = 0) AS inserted`

	var row struct {
		ID        string    `db:"id"`
		CreatedAt time.Time `db:"created_at"`
		UpdatedAt time.Time `db:"updated_at"`
		Inserted  bool      `db:"inserted"`
	}
	if err := r.db.QueryRowxContext(ctx, query, score.ID, score.EvaluationID, score.StudentID, score.Value, now).StructScan(&row); err != nil {
		return false, fmt.Errorf("upsert score: %w", err)
	}
	score.ID = row.ID
	score.CreatedAt = row.CreatedAt
	score.UpdatedAt = row.UpdatedAt
	return row.Inserted, nil
}

// FindScore looks up the score of a student for the evaluation of a kind in (subject, session).
// It returns sql.ErrNoRows when no score is recorded.
func (r *ScoreRepository) FindScore(ctx context.Context, kind models.EvaluationKind, subjectID, sessionID, studentID string) (*models.Score, error) {
	const query = `SELECT s.id, s.evaluation_id, s.student_id, s.value, s.created_at, s.updated_at
        FROM scores s
        JOIN evaluations e ON e.id = s.evaluation_id
        WHERE e.kind = $1 AND e.subject_id = $2 AND e.session_id = $3 AND s.student_id = $4`
	var score models.Score
	if err := r.db.GetContext(ctx, &score, query, kind, subjectID, sessionID, studentID); err != nil {
		return nil, err
	}
	return &score, nil
}

// ListSessionScores returns every score of a student in a session keyed by subject and kind.
func (r *ScoreRepository) ListSessionScores(ctx context.Context, studentID, sessionID string) ([]models.SessionScore, error) {
	const query = `SELECT e.subject_id, e.kind, s.value
        FROM scores s
        JOIN evaluations e ON e.id = s.evaluation_id
        WHERE s.student_id = $1 AND e.session_id = $2`
	var scores []models.SessionScore
	if err := r.db.SelectContext(ctx, &scores, query, studentID, sessionID); err != nil {
		return nil, fmt.Errorf("list session scores: %w", err)
	}
	return scores, nil
}

// ListByEvaluation returns the scores of an evaluation with student identity.
func (r *ScoreRepository) ListByEvaluation(ctx context.Context, evaluationID string) ([]models.ScoreDetail, error) {
	const query = `SELECT s.id, s.evaluation_id, s.student_id, s.value, s.created_at, s.updated_at,
        st.full_name AS student_name, st.matricule
        FROM scores s
        JOIN students st ON st.id = s.student_id
        WHERE s.evaluation_id = $1
        ORDER BY st.full_name ASC`
	var scores []models.ScoreDetail
	if err := r.db.SelectContext(ctx, &scores, query, evaluationID); err != nil {
		return nil, fmt.Errorf("list evaluation scores: %w", err)
	}
	return scores, nil
}

// FindByID returns a score.
func (r *ScoreRepository) FindByID(ctx context.Context, id string) (*models.Score, error) {
	const query = `SELECT id, evaluation_id, student_id, value, created_at, updated_at FROM scores WHERE id = $1`
	var score models.Score
	if err := r.db.GetContext(ctx, &score, query, id); err != nil {
		return nil, err
	}
	return &score, nil
}

// Delete removes a score.
func (r *ScoreRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM scores WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete score: %w", err)
	}
	return expectAffected(res)
}
