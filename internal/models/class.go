package models

import "time"

// Class groups students of one program at one level.
type Class struct {
	ID        string     `db:"id" json:"id"`
	ProgramID string     `db:"program_id" json:"program_id"`
	Level     ClassLevel `db:"level" json:"level"`
	Name      string     `db:"name" json:"name"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// ClassDetail extends Class with its program name.
type ClassDetail struct {
	Class
	ProgramName string `db:"program_name" json:"program_name"`
}

// ClassFilter defines filter criteria for listing classes.
type ClassFilter struct {
	ProgramID string
	Level     ClassLevel
	Search    string
	Page      int
	PageSize  int
}
