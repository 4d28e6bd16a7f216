package models

import "time"

// SessionTitle names an evaluation period of a school year.
type SessionTitle string

const (
	SessionSemesterOne SessionTitle = "Semestre 1"
	SessionSemesterTwo SessionTitle = "Semestre 2"
	SessionRemedial    SessionTitle = "Rattrapage"
)

// Valid reports whether the title is a known session title.
func (t SessionTitle) Valid() bool {
	switch t {
	case SessionSemesterOne, SessionSemesterTwo, SessionRemedial:
		return true
	}
	return false
}

// ExamSession is an academic evaluation period, unique per (title, school year).
type ExamSession struct {
	ID         string       `db:"id" json:"id"`
	Title      SessionTitle `db:"title" json:"title"`
	SchoolYear string       `db:"school_year" json:"school_year"`
	Code       string       `db:"code" json:"code"`
	CreatedAt  time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time    `db:"updated_at" json:"updated_at"`
}

// SessionFilter narrows session listings.
type SessionFilter struct {
	SchoolYear string
	Title      SessionTitle
}
