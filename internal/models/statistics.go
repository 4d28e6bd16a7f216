package models

import "time"

// ClassHeadcount counts students of a class.
type ClassHeadcount struct {
	ClassID          string  `db:"class_id" json:"class_id"`
	ClassName        string  `db:"class_name" json:"class_name"`
	ProgramName      string  `db:"program_name" json:"program_name"`
	Total            int     `db:"total" json:"total"`
	Active           int     `db:"active" json:"active"`
	Inactive         int     `db:"inactive" json:"inactive"`
	ActivePercentage float64 `db:"-" json:"active_percentage"`
}

// GeneralStatistics gives institution wide totals.
type GeneralStatistics struct {
	Programs        int       `db:"programs" json:"programs"`
	Classes         int       `db:"classes" json:"classes"`
	Subjects        int       `db:"subjects" json:"subjects"`
	Students        int       `db:"students" json:"students"`
	ActiveStudents  int       `db:"active_students" json:"active_students"`
	Sessions        int       `db:"sessions" json:"sessions"`
	PendingRequests int       `db:"pending_registrations" json:"pending_registrations"`
	FeesCollected   float64   `db:"fees_collected" json:"fees_collected"`
	GeneratedAt     time.Time `db:"-" json:"generated_at"`
}
