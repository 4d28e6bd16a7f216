package dto

import "github.com/noah-isme/scolarite-api/internal/models"

// ScoreAction tells whether a write inserted or overwrote a score.
type ScoreAction string

const (
	ScoreCreated ScoreAction = "created"
	ScoreUpdated ScoreAction = "updated"
)

// RecordScoreRequest writes the score of one student.
type RecordScoreRequest struct {
	EvaluationID string   `json:"evaluation_id" validate:"required"`
	StudentID    string   `json:"student_id" validate:"required"`
	Value        *float64 `json:"value" validate:"required,min=0,max=20"`
}

// RecordScoreResponse returns the stored score and the applied action.
type RecordScoreResponse struct {
	Score  models.Score `json:"score"`
	Action ScoreAction  `json:"action"`
}

// BulkScoreItem is one line of a bulk entry.
type BulkScoreItem struct {
	StudentID string   `json:"student_id"`
	Value     *float64 `json:"value"`
}

// BulkScoreRequest targets an evaluation either by id or by (kind, session, subject).
type BulkScoreRequest struct {
	EvaluationID string          `json:"evaluation_id"`
	Kind         string          `json:"kind" validate:"omitempty,evaluation_kind"`
	SessionID    string          `json:"session_id"`
	SubjectID    string          `json:"subject_id"`
	Scores       []BulkScoreItem `json:"scores" validate:"required,min=1,max=500"`
}

// BulkScoreSuccess reports a persisted line.
type BulkScoreSuccess struct {
	StudentID   string      `json:"student_id"`
	StudentName string      `json:"student_name"`
	Value       float64     `json:"value"`
	Action      ScoreAction `json:"action"`
}

// BulkScoreFailure reports a rejected line.
type BulkScoreFailure struct {
	StudentID      string   `json:"student_id"`
	Reason         string   `json:"reason"`
	AttemptedValue *float64 `json:"attempted_value"`
}

// BulkScoreResult enumerates per-line outcomes. Success is true only when no line failed.
type BulkScoreResult struct {
	Success      bool               `json:"success"`
	EvaluationID string             `json:"evaluation_id"`
	Total        int                `json:"total"`
	Created      int                `json:"created"`
	Updated      int                `json:"updated"`
	Errors       int                `json:"errors"`
	Successes    []BulkScoreSuccess `json:"successes"`
	Failures     []BulkScoreFailure `json:"failures"`
}
