package models

import "time"

// Score is the single recorded mark of a student for an evaluation.
type Score struct {
	ID           string    `db:"id" json:"id"`
	EvaluationID string    `db:"evaluation_id" json:"evaluation_id"`
	StudentID    string    `db:"student_id" json:"student_id"`
	Value        float64   `db:"value" json:"value"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// ScoreDetail adds student identity to a score.
type ScoreDetail struct {
	Score
	StudentName string `db:"student_name" json:"student_name"`
	Matricule   string `db:"matricule" json:"matricule"`
}

// SessionScore is a score flattened with the subject and kind of its evaluation.
type SessionScore struct {
	SubjectID string         `db:"subject_id"`
	Kind      EvaluationKind `db:"kind"`
	Value     float64        `db:"value"`
}
