package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scolarite-api/internal/models"
)

var evaluationDetailRowColumns = []string{"id", "kind", "session_id", "subject_id", "title", "held_on", "created_at", "updated_at", "subject_name", "class_id", "session_title", "school_year"}

func TestEvaluationRepositoryFindByKey(t *testing.T) {
	db, mock, cleanup := newSQLMock(t)
	defer cleanup()
	repo := NewEvaluationRepository(db)

	rows := sqlmock.NewRows(evaluationDetailRowColumns).
		AddRow("eval-1", "exam", "ses-1", "sub-1", "Examen Algorithmique", nil, time.Now(), time.Now(), "Algorithmique", "class-1", "Semestre 1", "2024-2025")
	mock.ExpectQuery(regexp.QuoteMeta("WHERE e.kind = $1 AND e.session_id = $2 AND e.subject_id = $3")).
		WithArgs(models.EvaluationExam, "ses-1", "sub-1").
		WillReturnRows(rows)

	evaluation, err := repo.FindByKey(context.Background(), models.EvaluationExam, "ses-1", "sub-1")
	require.NoError(t, err)
	assert.Equal(t, models.SessionSemesterOne, evaluation.SessionTitle)
	assert.Equal(t, "class-1", evaluation.ClassID)
	assert.Nil(t, evaluation.HeldOn)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE e.kind = $1")).
		WithArgs(models.EvaluationCoursework, "ses-1", "sub-1").
		WillReturnError(sql.ErrNoRows)
	_, err = repo.FindByKey(context.Background(), models.EvaluationCoursework, "ses-1", "sub-1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEvaluationRepositoryListFilters(t *testing.T) {
	db, mock, cleanup := newSQLMock(t)
	defer cleanup()
	repo := NewEvaluationRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("WHERE 1=1 AND e.session_id = $1 AND sub.class_id = $2 ORDER BY")).
		WithArgs("ses-1", "class-1").
		WillReturnRows(sqlmock.NewRows(evaluationDetailRowColumns))

	evaluations, err := repo.List(context.Background(), models.EvaluationFilter{SessionID: "ses-1", ClassID: "class-1"})
	require.NoError(t, err)
	assert.Empty(t, evaluations)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSessionRepositoryCreateAndExists(t *testing.T) {
	db, mock, cleanup := newSQLMock(t)
	defer cleanup()
	repo := NewSessionRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM exam_sessions WHERE title = $1 AND school_year = $2 LIMIT 1")).
		WithArgs(models.SessionSemesterOne, "2024-2025").
		WillReturnError(sql.ErrNoRows)
	exists, err := repo.ExistsByTitleYear(context.Background(), models.SessionSemesterOne, "2024-2025")
	require.NoError(t, err)
	assert.False(t, exists)

	mock.ExpectExec("INSERT INTO exam_sessions").
		WithArgs(sqlmock.AnyArg(), models.SessionSemesterOne, "2024-2025", "SEM-20242025-K7QX", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	session := &models.ExamSession{Title: models.SessionSemesterOne, SchoolYear: "2024-2025", Code: "SEM-20242025-K7QX"}
	require.NoError(t, repo.Create(context.Background(), session))
	assert.NotEmpty(t, session.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectRepositoryExistsByNameExcludesSelf(t *testing.T) {
	db, mock, cleanup := newSQLMock(t)
	defer cleanup()
	repo := NewSubjectRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM subjects WHERE class_id = $1 AND LOWER(name) = LOWER($2) AND id <> $3 LIMIT 1")).
		WithArgs("class-1", "Réseaux", "sub-1").
		WillReturnError(sql.ErrNoRows)

	exists, err := repo.ExistsByName(context.Background(), "class-1", "Réseaux", "sub-1")
	require.NoError(t, err)
	assert.False(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCertificateRepositoryFindByNumberAndRevoke(t *testing.T) {
	db, mock, cleanup := newSQLMock(t)
	defer cleanup()
	repo := NewCertificateRepository(db)

	rows := sqlmock.NewRows([]string{"id", "student_id", "type", "number", "valid", "file_path", "created_at", "updated_at", "student_name", "matricule"}).
		AddRow("cert-1", "stu-1", "inscription", "4821/ESTIM/DG/2024-2025", true, "certificates/cert-1.pdf", time.Now(), time.Now(), "DIALLO Awa", "4821")
	mock.ExpectQuery(regexp.QuoteMeta("WHERE c.number = $1")).
		WithArgs("4821/ESTIM/DG/2024-2025").
		WillReturnRows(rows)

	cert, err := repo.FindByNumber(context.Background(), "4821/ESTIM/DG/2024-2025")
	require.NoError(t, err)
	assert.Equal(t, models.CertificateEnrollment, cert.Type)
	assert.True(t, cert.Valid)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE certificates SET valid = $2")).
		WithArgs("cert-1", false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.SetValid(context.Background(), "cert-1", false))
	assert.NoError(t, mock.ExpectationsWereMet())
}
