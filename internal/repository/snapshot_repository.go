package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/scolarite-api/internal/models"
)

const snapshotDetailSelect = `SELECT rs.id, rs.student_id, rs.session_id, rs.general_average, rs.mention, rs.created_at, rs.updated_at,
        s.full_name AS student_name, s.matricule, s.class_id
        FROM result_snapshots rs
        JOIN students s ON s.id = rs.student_id`

// SnapshotRepository persists result snapshots, one per student.
type SnapshotRepository struct {
	db *sqlx.DB
}

// NewSnapshotRepository constructs a SnapshotRepository.
func NewSnapshotRepository(db *sqlx.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// Upsert overwrites the snapshot of the student. Last writer wins.
func (r *SnapshotRepository) Upsert(ctx context.Context, snapshot *models.ResultSnapshot) error {
	now := time.Now().UTC()
	if snapshot.ID == "" {
		snapshot.ID = uuid.NewString()
	}
	const query = `INSERT INTO result_snapshots (id, student_id, session_id, general_average, mention, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $6)
        ON CONFLICT (student_id)
        DO UPDATE SET session_id = EXCLUDED.session_id, general_average = EXCLUDED.general_average,
            mention = EXCLUDED.mention, updated_at = EXCLUDED.updated_at
        RETURNING id, created_at, updated_at`
	var row struct {
		ID        string    `db:"id"`
		CreatedAt time.Time `db:"created_at"`
		UpdatedAt time.Time `db:"updated_at"`
	}
	err := r.db.QueryRowxContext(ctx, query, snapshot.ID, snapshot.StudentID, snapshot.SessionID, snapshot.GeneralAverage, snapshot.Mention, now).StructScan(&row)
	if err != nil {
		return fmt.Errorf("upsert result snapshot: %w", err)
	}
	snapshot.ID = row.ID
	snapshot.CreatedAt = row.CreatedAt
	snapshot.UpdatedAt = row.UpdatedAt
	return nil
}

// FindByStudent returns the snapshot of a student.
func (r *SnapshotRepository) FindByStudent(ctx context.Context, studentID string) (*models.ResultSnapshotDetail, error) {
	var snapshot models.ResultSnapshotDetail
	if err := r.db.GetContext(ctx, &snapshot, snapshotDetailSelect+" WHERE rs.student_id = $1", studentID); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// List returns snapshots, optionally limited to a class.
func (r *SnapshotRepository) List(ctx context.Context, classID string) ([]models.ResultSnapshotDetail, error) {
	query := snapshotDetailSelect
	var args []interface{}
	if classID != "" {
		query += " WHERE s.class_id = $1"
		args = append(args, classID)
	}
	query += " ORDER BY rs.general_average DESC NULLS LAST, s.full_name ASC"
	var snapshots []models.ResultSnapshotDetail
	if err := r.db.SelectContext(ctx, &snapshots, query, args...); err != nil {
		return nil, fmt.Errorf("list result snapshots: %w", err)
	}
	return snapshots, nil
}
