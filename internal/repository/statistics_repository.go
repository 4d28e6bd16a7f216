package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/scolarite-api/internal/models"
)

// StatisticsRepository runs aggregate queries for dashboards.
type StatisticsRepository struct {
	db *sqlx.DB
}

// NewStatisticsRepository constructs a StatisticsRepository.
func NewStatisticsRepository(db *sqlx.DB) *StatisticsRepository {
	return &StatisticsRepository{db: db}
}

// ClassHeadcounts counts active and inactive students per class.
func (r *StatisticsRepository) ClassHeadcounts(ctx context.Context) ([]models.ClassHeadcount, error) {
	const query = `SELECT c.id AS class_id, c.name AS class_name, p.name AS program_name,
        COUNT(s.id) AS total,
        COUNT(s.id) FILTER (WHERE s.active) AS active,
        COUNT(s.id) FILTER (WHERE NOT s.active) AS inactive
        FROM classes c
        JOIN programs p ON p.id = c.program_id
        LEFT JOIN students s ON s.class_id = c.id
        GROUP BY c.id, c.name, p.name
        ORDER BY p.name ASC, c.level ASC`
	var rows []models.ClassHeadcount
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("class headcounts: %w", err)
	}
	return rows, nil
}

// General returns institution wide totals.
func (r *StatisticsRepository) General(ctx context.Context) (*models.GeneralStatistics, error) {
	const query = `SELECT
        (SELECT COUNT(*) FROM programs) AS programs,
        (SELECT COUNT(*) FROM classes) AS classes,
        (SELECT COUNT(*) FROM subjects) AS subjects,
        (SELECT COUNT(*) FROM students) AS students,
        (SELECT COUNT(*) FROM students WHERE active) AS active_students,
        (SELECT COUNT(*) FROM exam_sessions) AS sessions,
        (SELECT COUNT(*) FROM registrations WHERE status = 'pending') AS pending_registrations,
        (SELECT COALESCE(SUM(amount), 0) FROM tuition_fees) AS fees_collected`
	var stats models.GeneralStatistics
	if err := r.db.GetContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("general statistics: %w", err)
	}
	return &stats, nil
}
