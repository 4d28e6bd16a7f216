package models

import "time"

// Subject is a course taught to exactly one class, weighted by its coefficient.
type Subject struct {
	ID           string    `db:"id" json:"id"`
	ClassID      string    `db:"class_id" json:"class_id"`
	Name         string    `db:"name" json:"name"`
	Abbreviation string    `db:"abbreviation" json:"abbreviation"`
	Coefficient  int       `db:"coefficient" json:"coefficient"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// SubjectFilter supports listing subjects.
type SubjectFilter struct {
	ClassID string
	Search  string
}
