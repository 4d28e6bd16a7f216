package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/scolarite-api/internal/models"
)

// ProgramRepository persists programs (filières).
type ProgramRepository struct {
	db *sqlx.DB
}

// NewProgramRepository constructs a ProgramRepository.
func NewProgramRepository(db *sqlx.DB) *ProgramRepository {
	return &ProgramRepository{db: db}
}

// List returns every program ordered by name.
func (r *ProgramRepository) List(ctx context.Context) ([]models.Program, error) {
	const query = `SELECT id, name, created_at, updated_at FROM programs ORDER BY name ASC`
	var programs []models.Program
	if err := r.db.SelectContext(ctx, &programs, query); err != nil {
		return nil, fmt.Errorf("list programs: %w", err)
	}
	return programs, nil
}

// FindByID fetches a program.
func (r *ProgramRepository) FindByID(ctx context.Context, id string) (*models.Program, error) {
	const query = `SELECT id, name, created_at, updated_at FROM programs WHERE id = $1`
	var program models.Program
	if err := r.db.GetContext(ctx, &program, query, id); err != nil {
		return nil, err
	}
	return &program, nil
}

// ExistsByName checks for a program name, case-insensitively.
func (r *ProgramRepository) ExistsByName(ctx context.Context, name string) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, `SELECT 1 FROM programs WHERE LOWER(name) = LOWER($1) LIMIT 1`, name); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check program name: %w", err)
	}
	return true, nil
}

// CreateWithClasses inserts the program and its initial classes in one transaction.
func (r *ProgramRepository) CreateWithClasses(ctx context.Context, program *models.Program, classes []models.Class) (err error) {
	now := time.Now().UTC()
	if program.ID == "" {
		program.ID = uuid.NewString()
	}
	program.CreatedAt = now
	program.UpdatedAt = now

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create program: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	const programQuery = `INSERT INTO programs (id, name, created_at, updated_at) VALUES (:id, :name, :created_at, :updated_at)`
	if _, err = tx.NamedExecContext(ctx, programQuery, program); err != nil {
		return fmt.Errorf("insert program: %w", err)
	}

	for i := range classes {
		class := &classes[i]
		if class.ID == "" {
			class.ID = uuid.NewString()
		}
		class.ProgramID = program.ID
		class.CreatedAt = now
		class.UpdatedAt = now
		if _, err = tx.NamedExecContext(ctx, insertClassQuery, class); err != nil {
			return fmt.Errorf("insert class %s: %w", class.Name, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit create program: %w", err)
	}
	return nil
}

// Delete removes a program. Classes cascade at the database level.
func (r *ProgramRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM programs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete program: %w", err)
	}
	return expectAffected(res)
}

// expectAffected converts a zero-row write into sql.ErrNoRows.
func expectAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
