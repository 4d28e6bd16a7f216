package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/scolarite-api/internal/models"
)

const insertClassQuery = `INSERT INTO classes (id, program_id, level, name, created_at, updated_at)
        VALUES (:id, :program_id, :level, :name, :created_at, :updated_at)`

// ClassRepository handles class persistence.
type ClassRepository struct {
	db *sqlx.DB
}

// NewClassRepository creates a new ClassRepository.
func NewClassRepository(db *sqlx.DB) *ClassRepository {
	return &ClassRepository{db: db}
}

// List returns classes with their program names.
func (r *ClassRepository) List(ctx context.Context, filter models.ClassFilter) ([]models.ClassDetail, int, error) {
	base := "FROM classes c JOIN programs p ON p.id = c.program_id"
	conditions := []string{"1=1"}
	var args []interface{}

	if filter.ProgramID != "" {
		conditions = append(conditions, fmt.Sprintf("c.program_id = $%d", len(args)+1))
		args = append(args, filter.ProgramID)
	}
	if filter.Level != 0 {
		conditions = append(conditions, fmt.Sprintf("c.level = $%d", len(args)+1))
		args = append(args, filter.Level)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(c.name) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	limit, offset := pageBounds(filter.Page, filter.PageSize)
	query := fmt.Sprintf(`SELECT c.id, c.program_id, c.level, c.name, c.created_at, c.updated_at, p.name AS program_name
        %s ORDER BY p.name ASC, c.level ASC LIMIT %d OFFSET %d`, base, limit, offset)

	var classes []models.ClassDetail
	if err := r.db.SelectContext(ctx, &classes, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list classes: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count classes: %w", err)
	}
	return classes, total, nil
}

// ListByProgram returns the classes of a program by level.
func (r *ClassRepository) ListByProgram(ctx context.Context, programID string) ([]models.Class, error) {
	const query = `SELECT id, program_id, level, name, created_at, updated_at FROM classes WHERE program_id = $1 ORDER BY level ASC`
	var classes []models.Class
	if err := r.db.SelectContext(ctx, &classes, query, programID); err != nil {
		return nil, fmt.Errorf("list program classes: %w", err)
	}
	return classes, nil
}

// FindByID fetches a class with its program name.
func (r *ClassRepository) FindByID(ctx context.Context, id string) (*models.ClassDetail, error) {
	const query = `SELECT c.id, c.program_id, c.level, c.name, c.created_at, c.updated_at, p.name AS program_name
        FROM classes c JOIN programs p ON p.id = c.program_id WHERE c.id = $1`
	var class models.ClassDetail
	if err := r.db.GetContext(ctx, &class, query, id); err != nil {
		return nil, err
	}
	return &class, nil
}

// FindByProgramLevel resolves the class of a program at a level.
func (r *ClassRepository) FindByProgramLevel(ctx context.Context, programID string, level models.ClassLevel) (*models.Class, error) {
	const query = `SELECT id, program_id, level, name, created_at, updated_at FROM classes WHERE program_id = $1 AND level = $2`
	var class models.Class
	if err := r.db.GetContext(ctx, &class, query, programID, level); err != nil {
		return nil, err
	}
	return &class, nil
}

// ExistsByProgramLevel checks the (program, level) uniqueness, optionally excluding a class.
func (r *ClassRepository) ExistsByProgramLevel(ctx context.Context, programID string, level models.ClassLevel, excludeID string) (bool, error) {
	query := "SELECT 1 FROM classes WHERE program_id = $1 AND level = $2"
	args := []interface{}{programID, level}
	if excludeID != "" {
		query += " AND id <> $3"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check class level: %w", err)
	}
	return true, nil
}

// Create inserts a class.
func (r *ClassRepository) Create(ctx context.Context, class *models.Class) error {
	if class.ID == "" {
		class.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	class.CreatedAt = now
	class.UpdatedAt = now
	if _, err := r.db.NamedExecContext(ctx, insertClassQuery, class); err != nil {
		return fmt.Errorf("create class: %w", err)
	}
	return nil
}

// Update persists level and derived name changes.
func (r *ClassRepository) Update(ctx context.Context, class *models.Class) error {
	class.UpdatedAt = time.Now().UTC()
	const query = `UPDATE classes SET program_id = :program_id, level = :level, name = :name, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, class); err != nil {
		return fmt.Errorf("update class: %w", err)
	}
	return nil
}

// Delete removes a class.
func (r *ClassRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM classes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete class: %w", err)
	}
	return expectAffected(res)
}
