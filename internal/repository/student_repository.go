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

const studentDetailColumns = `s.id, s.matricule, s.full_name, s.class_id, s.birth_date, s.birth_place, s.active, s.school_year, s.created_at, s.updated_at,
        c.name AS class_name`

const insertStudentQuery = `INSERT INTO students (id, matricule, full_name, class_id, birth_date, birth_place, active, school_year, created_at, updated_at)
        VALUES (:id, :matricule, :full_name, :class_id, :birth_date, :birth_place, :active, :school_year, :created_at, :updated_at)`

// StudentRepository manages persistence for student records.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository constructs a StudentRepository.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List returns students matching the provided filters.
func (r *StudentRepository) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, int, error) {
	base := "FROM students s JOIN classes c ON c.id = s.class_id"
	var args []interface{}
	conditions := []string{"1=1"}

	if filter.ClassID != "" {
		conditions = append(conditions, fmt.Sprintf("s.class_id = $%d", len(args)+1))
		args = append(args, filter.ClassID)
	}
	if filter.Active != nil {
		conditions = append(conditions, fmt.Sprintf("s.active = $%d", len(args)+1))
		args = append(args, *filter.Active)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(s.full_name) LIKE $%d OR s.matricule LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	allowedSorts := map[string]string{
		"full_name":  "s.full_name",
		"matricule":  "s.matricule",
		"created_at": "s.created_at",
	}
	column, ok := allowedSorts[filter.SortBy]
	if !ok {
		column = "s.full_name"
	}
	order := strings.ToUpper(filter.SortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}
	limit, offset := pageBounds(filter.Page, filter.PageSize)

	query := fmt.Sprintf(`SELECT %s
        %s ORDER BY %s %s LIMIT %d OFFSET %d`, studentDetailColumns, base, column, order, limit, offset)

	var students []models.StudentDetail
	if err := r.db.SelectContext(ctx, &students, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list students: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) "+base, args...); err != nil {
		return nil, 0, fmt.Errorf("count students: %w", err)
	}
	return students, total, nil
}

// ListByClass returns every student of a class ordered by name.
func (r *StudentRepository) ListByClass(ctx context.Context, classID string) ([]models.StudentDetail, error) {
	query := `SELECT ` + studentDetailColumns + `
        FROM students s JOIN classes c ON c.id = s.class_id
        WHERE s.class_id = $1 ORDER BY s.full_name ASC`
	var students []models.StudentDetail
	if err := r.db.SelectContext(ctx, &students, query, classID); err != nil {
		return nil, fmt.Errorf("list class students: %w", err)
	}
	return students, nil
}

// FindByID fetches a student detail by ID.
func (r *StudentRepository) FindByID(ctx context.Context, id string) (*models.StudentDetail, error) {
	return r.findOne(ctx, "s.id = $1", id)
}

// FindByMatricule fetches a student detail by matricule.
func (r *StudentRepository) FindByMatricule(ctx context.Context, matricule string) (*models.StudentDetail, error) {
	return r.findOne(ctx, "s.matricule = $1", matricule)
}

func (r *StudentRepository) findOne(ctx context.Context, condition string, arg interface{}) (*models.StudentDetail, error) {
	query := `SELECT ` + studentDetailColumns + `
        FROM students s JOIN classes c ON c.id = s.class_id
        WHERE ` + condition
	var detail models.StudentDetail
	if err := r.db.GetContext(ctx, &detail, query, arg); err != nil {
		return nil, err
	}
	return &detail, nil
}

// ExistsByMatricule reports whether a matricule is already assigned.
func (r *StudentRepository) ExistsByMatricule(ctx context.Context, matricule string) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM students WHERE matricule = $1 LIMIT 1", matricule); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check matricule: %w", err)
	}
	return true, nil
}

// ExistsByNameInClass checks the (full name, class) uniqueness, optionally excluding a student.
func (r *StudentRepository) ExistsByNameInClass(ctx context.Context, fullName, classID, excludeID string) (bool, error) {
	query := "SELECT 1 FROM students WHERE LOWER(full_name) = LOWER($1) AND class_id = $2"
	args := []interface{}{fullName, classID}
	if excludeID != "" {
		query += " AND id <> $3"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check student name: %w", err)
	}
	return true, nil
}

// Create inserts a new student record.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	prepareStudent(student)
	if _, err := r.db.NamedExecContext(ctx, insertStudentQuery, student); err != nil {
		return fmt.Errorf("create student: %w", err)
	}
	return nil
}

// Update modifies an existing student. The matricule column is never written.
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	student.UpdatedAt = time.Now().UTC()
	const query = `UPDATE students SET full_name = :full_name, class_id = :class_id, birth_date = :birth_date, birth_place = :birth_place,
        active = :active, school_year = :school_year, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, student); err != nil {
		return fmt.Errorf("update student: %w", err)
	}
	return nil
}

// SetActive toggles the active flag.
func (r *StudentRepository) SetActive(ctx context.Context, id string, active bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE students SET active = $2, updated_at = $3 WHERE id = $1`, id, active, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set student active: %w", err)
	}
	return expectAffected(res)
}

// Delete removes a student.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM students WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete student: %w", err)
	}
	return expectAffected(res)
}

func prepareStudent(student *models.Student) {
	if student.ID == "" {
		student.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if student.CreatedAt.IsZero() {
		student.CreatedAt = now
	}
	student.UpdatedAt = now
}
