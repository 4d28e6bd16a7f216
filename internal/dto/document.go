package dto

import (
	"time"

	"github.com/noah-isme/scolarite-api/internal/models"
)

// IssueCertificateRequest asks for an attestation of a student.
type IssueCertificateRequest struct {
	StudentID string `json:"student_id" validate:"required"`
	Type      string `json:"type" validate:"required,certificate_type"`
}

// CertificateResponse carries a certificate with a signed, expiring download link.
type CertificateResponse struct {
	models.CertificateDetail
	DownloadURL string    `json:"download_url,omitempty"`
	ExpiresAt   time.Time `json:"expires_at,omitempty"`
}

// CertificateVerification is the public answer to a QR code scan.
type CertificateVerification struct {
	Number      string                 `json:"number"`
	Valid       bool                   `json:"valid"`
	Type        models.CertificateType `json:"type"`
	StudentName string                 `json:"student_name"`
	Matricule   string                 `json:"matricule"`
	IssuedAt    time.Time              `json:"issued_at"`
}
