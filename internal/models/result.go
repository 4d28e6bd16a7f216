package models

import "time"

// Mention is the honours level derived from a general average.
type Mention string

const (
	MentionVeryGood   Mention = "Très Bien"
	MentionGood       Mention = "Bien"
	MentionFairlyGood Mention = "Assez Bien"
	MentionPass       Mention = "Passable"
	MentionFail       Mention = "Échec"
	// MentionPending is used while no subject is gradable.
	MentionPending Mention = "En cours"
)

// SubjectResult is the computed average of one subject for one student and session.
type SubjectResult struct {
	SubjectID       string  `json:"subject_id"`
	SubjectName     string  `json:"subject_name"`
	Abbreviation    string  `json:"abbreviation"`
	CourseworkScore float64 `json:"coursework_score"`
	ExamScore       float64 `json:"exam_score"`
	RawAverage      float64 `json:"raw_average"`
	Coefficient     int     `json:"coefficient"`
	WeightedAverage float64 `json:"weighted_average"`
	Validated       bool    `json:"validated"`
}

// StudentResult aggregates every gradable subject of a student's class for a session.
// GeneralAverage is nil when no subject could be graded.
type StudentResult struct {
	Student          StudentDetail   `json:"student"`
	Session          ExamSession     `json:"session"`
	Subjects         []SubjectResult `json:"subjects"`
	Validated        []SubjectResult `json:"validated"`
	NonValidated     []SubjectResult `json:"non_validated"`
	PendingSubjects  []string        `json:"pending_subjects"`
	TotalCoefficient int             `json:"total_coefficient"`
	WeightedSum      float64         `json:"weighted_sum"`
	GeneralAverage   *float64        `json:"general_average"`
	Mention          Mention         `json:"mention"`
	ComputedAt       time.Time       `json:"computed_at"`
}

// ClassStatistics summarises the results of a class for a session.
type ClassStatistics struct {
	Students     int             `json:"students"`
	Graded       int             `json:"graded"`
	ClassAverage *float64        `json:"class_average"`
	Highest      *float64        `json:"highest"`
	Lowest       *float64        `json:"lowest"`
	Passed       int             `json:"passed"`
	PassRate     float64         `json:"pass_rate"`
	Mentions     map[Mention]int `json:"mentions"`
}

// ClassResult lists every student result of a class with summary statistics.
type ClassResult struct {
	Class      ClassDetail     `json:"class"`
	Session    ExamSession     `json:"session"`
	Results    []StudentResult `json:"results"`
	Statistics ClassStatistics `json:"statistics"`
}

// ResultSetting selects the session whose results are authoritative for snapshots.
// Only one row may exist.
type ResultSetting struct {
	ID        string    `db:"id" json:"id"`
	SessionID string    `db:"session_id" json:"session_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ResultSnapshot is the persisted general average and mention of a student. It is only
// refreshed by an explicit regeneration and may lag behind newer scores.
type ResultSnapshot struct {
	ID             string    `db:"id" json:"id"`
	StudentID      string    `db:"student_id" json:"student_id"`
	SessionID      string    `db:"session_id" json:"session_id"`
	GeneralAverage *float64  `db:"general_average" json:"general_average"`
	Mention        Mention   `db:"mention" json:"mention"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// ResultSnapshotDetail adds student identity to a snapshot.
type ResultSnapshotDetail struct {
	ResultSnapshot
	StudentName string `db:"student_name" json:"student_name"`
	Matricule   string `db:"matricule" json:"matricule"`
	ClassID     string `db:"class_id" json:"class_id"`
}
