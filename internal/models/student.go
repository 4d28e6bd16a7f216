package models

import "time"

// Student represents a learner enrolled in a class. Matricule never changes once assigned.
type Student struct {
	ID         string     `db:"id" json:"id"`
	Matricule  string     `db:"matricule" json:"matricule"`
	FullName   string     `db:"full_name" json:"full_name"`
	ClassID    string     `db:"class_id" json:"class_id"`
	BirthDate  *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	BirthPlace string     `db:"birth_place" json:"birth_place"`
	Active     bool       `db:"active" json:"active"`
	SchoolYear string     `db:"school_year" json:"school_year"`
	CreatedAt  time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at"`
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	Search    string
	ClassID   string
	Active    *bool
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

// StudentDetail contains student information with class context.
type StudentDetail struct {
	Student
	ClassName string `db:"class_name" json:"class_name"`
}
