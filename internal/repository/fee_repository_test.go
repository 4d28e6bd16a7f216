package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scolarite-api/internal/models"
)

func TestFeeRepositoryExistsForMonth(t *testing.T) {
	db, mock, cleanup := newSQLMock(t)
	defer cleanup()
	repo := NewFeeRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM tuition_fees WHERE student_id = $1 AND month = $2 AND id <> $3")).
		WithArgs("stu-1", models.MonthOctober, "fee-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	exists, err := repo.ExistsForMonth(context.Background(), "stu-1", models.MonthOctober, "fee-1")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFeeRepositoryListByStudent(t *testing.T) {
	db, mock, cleanup := newSQLMock(t)
	defer cleanup()
	repo := NewFeeRepository(db)

	rows := sqlmock.NewRows([]string{"id", "student_id", "month", "amount", "paid_at", "is_complete", "created_at", "updated_at"}).
		AddRow("fee-1", "stu-1", "Octobre", 25000.0, time.Now(), true, time.Now(), time.Now()).
		AddRow("fee-2", "stu-1", "Novembre", 10000.0, time.Now(), false, time.Now(), time.Now())
	mock.ExpectQuery("FROM tuition_fees WHERE student_id = \\$1").WithArgs("stu-1").WillReturnRows(rows)

	fees, err := repo.ListByStudent(context.Background(), "stu-1")
	require.NoError(t, err)
	require.Len(t, fees, 2)
	assert.Equal(t, models.MonthNovember, fees[1].Month)
	assert.Equal(t, 10000.0, fees[1].Remaining())
	assert.Zero(t, fees[0].Remaining())
}

func TestFeeRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newSQLMock(t)
	defer cleanup()
	repo := NewFeeRepository(db)

	mock.ExpectExec("INSERT INTO tuition_fees").
		WithArgs(sqlmock.AnyArg(), "stu-1", models.MonthMarch, 25000.0, sqlmock.AnyArg(), true, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	fee := &models.TuitionFee{StudentID: "stu-1", Month: models.MonthMarch, Amount: 25000, PaidAt: time.Now(), IsComplete: true}
	require.NoError(t, repo.Create(context.Background(), fee))
	assert.NotEmpty(t, fee.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStatisticsRepositoryGeneral(t *testing.T) {
	db, mock, cleanup := newSQLMock(t)
	defer cleanup()
	repo := NewStatisticsRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("(SELECT COUNT(*) FROM programs) AS programs")).
		WillReturnRows(sqlmock.NewRows([]string{"programs", "classes", "subjects", "students", "active_students", "sessions", "pending_registrations", "fees_collected"}).
			AddRow(2, 6, 30, 120, 110, 3, 4, 1500000.0))

	stats, err := repo.General(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, stats.Classes)
	assert.Equal(t, 110, stats.ActiveStudents)
	assert.Equal(t, 1500000.0, stats.FeesCollected)
}
