package models

import "time"

// RegistrationStatus tracks the lifecycle of an application.
type RegistrationStatus string

const (
	RegistrationPending   RegistrationStatus = "pending"
	RegistrationValidated RegistrationStatus = "validated"
	RegistrationRejected  RegistrationStatus = "rejected"
)

// Registration is an application that becomes a Student once validated.
type Registration struct {
	ID         string             `db:"id" json:"id"`
	LastName   string             `db:"last_name" json:"last_name"`
	FirstName  string             `db:"first_name" json:"first_name"`
	BirthDate  *time.Time         `db:"birth_date" json:"birth_date,omitempty"`
	BirthPlace string             `db:"birth_place" json:"birth_place"`
	ProgramID  string             `db:"program_id" json:"program_id"`
	Level      ClassLevel         `db:"level" json:"level"`
	SchoolYear string             `db:"school_year" json:"school_year"`
	Status     RegistrationStatus `db:"status" json:"status"`
	StudentID  *string            `db:"student_id" json:"student_id,omitempty"`
	CreatedAt  time.Time          `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `db:"updated_at" json:"updated_at"`
}

// RegistrationFilter narrows registration listings.
type RegistrationFilter struct {
	Status    RegistrationStatus
	ProgramID string
	Page      int
	PageSize  int
}
