package models

import "time"

// CertificateType is the kind of attestation issued to a student.
type CertificateType string

const (
	CertificateEnrollment CertificateType = "inscription"
	CertificateAttendance CertificateType = "frequentation"
)

// Valid reports whether the type is supported.
func (t CertificateType) Valid() bool {
	return t == CertificateEnrollment || t == CertificateAttendance
}

// Title returns the printed document title.
func (t CertificateType) Title() string {
	if t == CertificateAttendance {
		return "Attestation de fréquentation"
	}
	return "Attestation d'inscription"
}

// Certificate records an issued attestation. Number is unique.
type Certificate struct {
	ID        string          `db:"id" json:"id"`
	StudentID string          `db:"student_id" json:"student_id"`
	Type      CertificateType `db:"type" json:"type"`
	Number    string          `db:"number" json:"number"`
	Valid     bool            `db:"valid" json:"valid"`
	FilePath  string          `db:"file_path" json:"-"`
	CreatedAt time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt time.Time       `db:"updated_at" json:"updated_at"`
}

// CertificateDetail adds student identity to a certificate.
type CertificateDetail struct {
	Certificate
	StudentName string `db:"student_name" json:"student_name"`
	Matricule   string `db:"matricule" json:"matricule"`
}

// CertificateFilter narrows certificate listings.
type CertificateFilter struct {
	StudentID string
	Type      CertificateType
	Valid     *bool
}
