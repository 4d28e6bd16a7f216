package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/scolarite-api/internal/models"
)

const certificateDetailSelect = `SELECT c.id, c.student_id, c.type, c.number, c.valid, c.file_path, c.created_at, c.updated_at,
        s.full_name AS student_name, s.matricule
        FROM certificates c
        JOIN students s ON s.id = c.student_id`

// CertificateRepository persists issued attestations.
type CertificateRepository struct {
	db *sqlx.DB
}

// NewCertificateRepository constructs a CertificateRepository.
func NewCertificateRepository(db *sqlx.DB) *CertificateRepository {
	return &CertificateRepository{db: db}
}

// Create inserts a certificate.
func (r *CertificateRepository) Create(ctx context.Context, cert *models.Certificate) error {
	if cert.ID == "" {
		cert.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	cert.CreatedAt = now
	cert.UpdatedAt = now
	const query = `INSERT INTO certificates (id, student_id, type, number, valid, file_path, created_at, updated_at)
        VALUES (:id, :student_id, :type, :number, :valid, :file_path, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, cert); err != nil {
		return fmt.Errorf("create certificate: %w", err)
	}
	return nil
}

// FindByID returns a certificate with its student.
func (r *CertificateRepository) FindByID(ctx context.Context, id string) (*models.CertificateDetail, error) {
	var cert models.CertificateDetail
	if err := r.db.GetContext(ctx, &cert, certificateDetailSelect+" WHERE c.id = $1", id); err != nil {
		return nil, err
	}
	return &cert, nil
}

// FindByNumber returns a certificate by its printed number.
func (r *CertificateRepository) FindByNumber(ctx context.Context, number string) (*models.CertificateDetail, error) {
	var cert models.CertificateDetail
	if err := r.db.GetContext(ctx, &cert, certificateDetailSelect+" WHERE c.number = $1", number); err != nil {
		return nil, err
	}
	return &cert, nil
}

// List returns certificates matching the filter, newest first.
func (r *CertificateRepository) List(ctx context.Context, filter models.CertificateFilter) ([]models.CertificateDetail, error) {
	conditions := []string{"1=1"}
	var args []interface{}
	if filter.StudentID != "" {
		conditions = append(conditions, fmt.Sprintf("c.student_id = $%d", len(args)+1))
		args = append(args, filter.StudentID)
	}
	if filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("c.type = $%d", len(args)+1))
		args = append(args, filter.Type)
	}
	if filter.Valid != nil {
		conditions = append(conditions, fmt.Sprintf("c.valid = $%d", len(args)+1))
		args = append(args, *filter.Valid)
	}
	query := fmt.Sprintf("%s WHERE %s ORDER BY c.created_at DESC", certificateDetailSelect, strings.Join(conditions, " AND "))
	var certs []models.CertificateDetail
	if err := r.db.SelectContext(ctx, &certs, query, args...); err != nil {
		return nil, fmt.Errorf("list certificates: %w", err)
	}
	return certs, nil
}

// UpdateFile records the stored document path.
func (r *CertificateRepository) UpdateFile(ctx context.Context, id, path string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE certificates SET file_path = $2, updated_at = $3 WHERE id = $1`, id, path, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update certificate file: %w", err)
	}
	return expectAffected(res)
}

// SetValid flags a certificate as valid or revoked.
func (r *CertificateRepository) SetValid(ctx context.Context, id string, valid bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE certificates SET valid = $2, updated_at = $3 WHERE id = $1`, id, valid, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update certificate validity: %w", err)
	}
	return expectAffected(res)
}
