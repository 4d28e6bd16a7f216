package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scolarite-api/internal/models"
)

func TestProgramRepositoryCreateWithClasses(t *testing.T) {
	db, mock, cleanup := newSQLMock(t)
	defer cleanup()
	repo := NewProgramRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO programs").
		WithArgs(sqlmock.AnyArg(), "Génie Informatique", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	for _, name := range []string{"GI-1", "GI-2", "GI-3"} {
		mock.ExpectExec("INSERT INTO classes").
			WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), name, sqlmock.AnyArg(), sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(1, 1))
	}
	mock.ExpectCommit()

	program := &models.Program{Name: "Génie Informatique"}
	classes := []models.Class{{Level: 1, Name: "GI-1"}, {Level: 2, Name: "GI-2"}, {Level: 3, Name: "GI-3"}}
	require.NoError(t, repo.CreateWithClasses(context.Background(), program, classes))
	for _, class := range classes {
		assert.Equal(t, program.ID, class.ProgramID)
		assert.NotEmpty(t, class.ID)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProgramRepositoryCreateRollsBack(t *testing.T) {
	db, mock, cleanup := newSQLMock(t)
	defer cleanup()
	repo := NewProgramRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO programs").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO classes").WillReturnError(errors.New("duplicate"))
	mock.ExpectRollback()

	err := repo.CreateWithClasses(context.Background(), &models.Program{Name: "Gestion"}, []models.Class{{Level: 1, Name: "G-1"}})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClassRepositoryList(t *testing.T) {
	db, mock, cleanup := newSQLMock(t)
	defer cleanup()
	repo := NewClassRepository(db)

	rows := sqlmock.NewRows([]string{"id", "program_id", "level", "name", "created_at", "updated_at", "program_name"}).
		AddRow("class-1", "prog-1", 2, "GI-2", time.Now(), time.Now(), "Génie Informatique")
	mock.ExpectQuery(regexp.QuoteMeta("WHERE 1=1 AND c.program_id = $1 AND c.level = $2 ORDER BY p.name ASC, c.level ASC LIMIT 20 OFFSET 0")).
		WithArgs("prog-1", models.LevelTwo).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM classes c")).
		WithArgs("prog-1", models.LevelTwo).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	classes, total, err := repo.List(context.Background(), models.ClassFilter{ProgramID: "prog-1", Level: models.LevelTwo})
	require.NoError(t, err)
	require.Len(t, classes, 1)
	assert.Equal(t, models.LevelTwo, classes[0].Level)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepositoryValidate(t *testing.T) {
	db, mock, cleanup := newSQLMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO students").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE registrations SET status").
		WithArgs("reg-1", models.RegistrationValidated, sqlmock.AnyArg(), sqlmock.AnyArg(), models.RegistrationPending).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	student := &models.Student{Matricule: "1234", FullName: "NDIAYE Moussa", ClassID: "class-1", Active: true}
	require.NoError(t, repo.Validate(context.Background(), "reg-1", student))
	assert.NotEmpty(t, student.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistrationRepositoryValidateAlreadyProcessed(t *testing.T) {
	db, mock, cleanup := newSQLMock(t)
	defer cleanup()
	repo := NewRegistrationRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO students").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("UPDATE registrations SET status").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Validate(context.Background(), "reg-1", &models.Student{FullName: "X"})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
