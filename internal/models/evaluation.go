package models

import "time"

// EvaluationKind distinguishes coursework assignments from exams.
type EvaluationKind string

const (
	EvaluationCoursework EvaluationKind = "coursework"
	EvaluationExam       EvaluationKind = "exam"
)

// Valid reports whether the kind is supported.
func (k EvaluationKind) Valid() bool {
	return k == EvaluationCoursework || k == EvaluationExam
}

// Evaluation ties one subject to one session. At most one evaluation of each kind exists per
// (session, subject).
type Evaluation struct {
	ID        string         `db:"id" json:"id"`
	Kind      EvaluationKind `db:"kind" json:"kind"`
	SessionID string         `db:"session_id" json:"session_id"`
	SubjectID string         `db:"subject_id" json:"subject_id"`
	Title     string         `db:"title" json:"title"`
	HeldOn    *time.Time     `db:"held_on" json:"held_on,omitempty"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt time.Time      `db:"updated_at" json:"updated_at"`
}

// EvaluationDetail adds subject and session context.
type EvaluationDetail struct {
	Evaluation
	SubjectName  string       `db:"subject_name" json:"subject_name"`
	ClassID      string       `db:"class_id" json:"class_id"`
	SessionTitle SessionTitle `db:"session_title" json:"session_title"`
	SchoolYear   string       `db:"school_year" json:"school_year"`
}

// EvaluationFilter narrows evaluation listings.
type EvaluationFilter struct {
	Kind      EvaluationKind
	SessionID string
	SubjectID string
	ClassID   string
}
