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

const registrationColumns = "id, last_name, first_name, birth_date, birth_place, program_id, level, school_year, status, student_id, created_at, updated_at"

// RegistrationRepository persists registration requests.
type RegistrationRepository struct {
	db *sqlx.DB
}

// NewRegistrationRepository constructs a RegistrationRepository.
func NewRegistrationRepository(db *sqlx.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

// Create inserts a pending registration.
func (r *RegistrationRepository) Create(ctx context.Context, reg *models.Registration) error {
	if reg.ID == "" {
		reg.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	reg.CreatedAt = now
	reg.UpdatedAt = now
	if reg.Status == "" {
		reg.Status = models.RegistrationPending
	}
	const query = `INSERT INTO registrations (id, last_name, first_name, birth_date, birth_place, program_id, level, school_year, status, student_id, created_at, updated_at)
        VALUES (:id, :last_name, :first_name, :birth_date, :birth_place, :program_id, :level, :school_year, :status, :student_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, reg); err != nil {
		return fmt.Errorf("create registration: %w", err)
	}
	return nil
}

// FindByID fetches a registration.
func (r *RegistrationRepository) FindByID(ctx context.Context, id string) (*models.Registration, error) {
	var reg models.Registration
	if err := r.db.GetContext(ctx, &reg, "SELECT "+registrationColumns+" FROM registrations WHERE id = $1", id); err != nil {
		return nil, err
	}
	return &reg, nil
}

// List returns registrations ordered from newest.
func (r *RegistrationRepository) List(ctx context.Context, filter models.RegistrationFilter) ([]models.Registration, int, error) {
	conditions := []string{"1=1"}
	var args []interface{}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.ProgramID != "" {
		conditions = append(conditions, fmt.Sprintf("program_id = $%d", len(args)+1))
		args = append(args, filter.ProgramID)
	}
	where := " FROM registrations WHERE " + strings.Join(conditions, " AND ")
	limit, offset := pageBounds(filter.Page, filter.PageSize)

	var regs []models.Registration
	query := fmt.Sprintf("SELECT %s%s ORDER BY created_at DESC LIMIT %d OFFSET %d", registrationColumns, where, limit, offset)
	if err := r.db.SelectContext(ctx, &regs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list registrations: %w", err)
	}
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*)"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count registrations: %w", err)
	}
	return regs, total, nil
}

// Validate creates the student and links it to the registration atomically.
func (r *RegistrationRepository) Validate(ctx context.Context, registrationID string, student *models.Student) (err error) {
	prepareStudent(student)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin validate registration: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.NamedExecContext(ctx, insertStudentQuery, student); err != nil {
		return fmt.Errorf("insert registered student: %w", err)
	}
	const update = `UPDATE registrations SET status = $2, student_id = $3, updated_at = $4 WHERE id = $1 AND status = $5`
	res, err := tx.ExecContext(ctx, update, registrationID, models.RegistrationValidated, student.ID, student.UpdatedAt, models.RegistrationPending)
	if err != nil {
		return fmt.Errorf("mark registration validated: %w", err)
	}
	if err = expectAffected(res); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit validate registration: %w", err)
	}
	return nil
}

// Reject marks a pending registration as rejected.
func (r *RegistrationRepository) Reject(ctx context.Context, id string) error {
	const query = `UPDATE registrations SET status = $2, updated_at = $3 WHERE id = $1 AND status = $4`
	res, err := r.db.ExecContext(ctx, query, id, models.RegistrationRejected, time.Now().UTC(), models.RegistrationPending)
	if err != nil {
		return fmt.Errorf("reject registration: %w", err)
	}
	return expectAffected(res)
}
