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

const feeDetailSelect = `SELECT f.id, f.student_id, f.month, f.amount, f.paid_at, f.is_complete, f.created_at, f.updated_at,
        s.full_name AS student_name, s.matricule, s.class_id
        FROM tuition_fees f
        JOIN students s ON s.id = f.student_id`

// FeeRepository persists tuition fee payments.
type FeeRepository struct {
	db *sqlx.DB
}

// NewFeeRepository constructs a FeeRepository.
func NewFeeRepository(db *sqlx.DB) *FeeRepository {
	return &FeeRepository{db: db}
}

// Create inserts a payment.
func (r *FeeRepository) Create(ctx context.Context, fee *models.TuitionFee) error {
	if fee.ID == "" {
		fee.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	fee.CreatedAt = now
	fee.UpdatedAt = now
	const query = `INSERT INTO tuition_fees (id, student_id, month, amount, paid_at, is_complete, created_at, updated_at)
        VALUES (:id, :student_id, :month, :amount, :paid_at, :is_complete, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, fee); err != nil {
		return fmt.Errorf("create tuition fee: %w", err)
	}
	return nil
}

// Update modifies a payment.
func (r *FeeRepository) Update(ctx context.Context, fee *models.TuitionFee) error {
	fee.UpdatedAt = time.Now().UTC()
	const query = `UPDATE tuition_fees SET month = :month, amount = :amount, paid_at = :paid_at, is_complete = :is_complete, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, fee); err != nil {
		return fmt.Errorf("update tuition fee: %w", err)
	}
	return nil
}

// Delete removes a payment.
func (r *FeeRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM tuition_fees WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete tuition fee: %w", err)
	}
	return expectAffected(res)
}

// FindByID returns a payment with its student.
func (r *FeeRepository) FindByID(ctx context.Context, id string) (*models.TuitionFeeDetail, error) {
	var fee models.TuitionFeeDetail
	if err := r.db.GetContext(ctx, &fee, feeDetailSelect+" WHERE f.id = $1", id); err != nil {
		return nil, err
	}
	return &fee, nil
}

// ExistsForMonth checks the (student, month) uniqueness, optionally excluding a payment.
func (r *FeeRepository) ExistsForMonth(ctx context.Context, studentID string, month models.Month, excludeID string) (bool, error) {
	query := "SELECT COUNT(*) FROM tuition_fees WHERE student_id = $1 AND month = $2"
	args := []interface{}{studentID, month}
	if excludeID != "" {
		query += " AND id <> $3"
		args = append(args, excludeID)
	}
	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return false, fmt.Errorf("check tuition fee month: %w", err)
	}
	return count > 0, nil
}

// List returns payments matching the filter.
func (r *FeeRepository) List(ctx context.Context, filter models.FeeFilter) ([]models.TuitionFeeDetail, int, error) {
	conditions := []string{"1=1"}
	var args []interface{}
	if filter.StudentID != "" {
		conditions = append(conditions, fmt.Sprintf("f.student_id = $%d", len(args)+1))
		args = append(args, filter.StudentID)
	}
	if filter.ClassID != "" {
		conditions = append(conditions, fmt.Sprintf("s.class_id = $%d", len(args)+1))
		args = append(args, filter.ClassID)
	}
	if filter.Month != "" {
		conditions = append(conditions, fmt.Sprintf("f.month = $%d", len(args)+1))
		args = append(args, filter.Month)
	}
	where := " WHERE " + strings.Join(conditions, " AND ")
	limit, offset := pageBounds(filter.Page, filter.PageSize)

	var fees []models.TuitionFeeDetail
	query := fmt.Sprintf("%s%s ORDER BY f.paid_at DESC LIMIT %d OFFSET %d", feeDetailSelect, where, limit, offset)
	if err := r.db.SelectContext(ctx, &fees, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list tuition fees: %w", err)
	}
	var total int
	countQuery := "SELECT COUNT(*) FROM tuition_fees f JOIN students s ON s.id = f.student_id" + where
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count tuition fees: %w", err)
	}
	return fees, total, nil
}

// ListByStudent returns every payment of a student.
func (r *FeeRepository) ListByStudent(ctx context.Context, studentID string) ([]models.TuitionFee, error) {
	const query = `SELECT id, student_id, month, amount, paid_at, is_complete, created_at, updated_at FROM tuition_fees WHERE student_id = $1 ORDER BY paid_at ASC`
	var fees []models.TuitionFee
	if err := r.db.SelectContext(ctx, &fees, query, studentID); err != nil {
		return nil, fmt.Errorf("list student tuition fees: %w", err)
	}
	return fees, nil
}

// ListByClass returns every payment of the students of a class.
func (r *FeeRepository) ListByClass(ctx context.Context, classID string) ([]models.TuitionFeeDetail, error) {
	var fees []models.TuitionFeeDetail
	if err := r.db.SelectContext(ctx, &fees, feeDetailSelect+" WHERE s.class_id = $1 ORDER BY s.full_name ASC, f.paid_at ASC", classID); err != nil {
		return nil, fmt.Errorf("list class tuition fees: %w", err)
	}
	return fees, nil
}
