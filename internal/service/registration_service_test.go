package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scolarite-api/internal/models"
	appErrors "github.com/noah-isme/scolarite-api/pkg/errors"
)

type memoryRegistrations struct {
	items    map[string]models.Registration
	students *fakeStudents
}

func (m *memoryRegistrations) Create(ctx context.Context, reg *models.Registration) error {
	reg.ID = uuid.NewString()
	m.items[reg.ID] = *reg
	return nil
}

func (m *memoryRegistrations) FindByID(ctx context.Context, id string) (*models.Registration, error) {
	reg, ok := m.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &reg, nil
}

func (m *memoryRegistrations) List(ctx context.Context, filter models.RegistrationFilter) ([]models.Registration, int, error) {
	var out []models.Registration
	for _, reg := range m.items {
		if filter.Status == "" || reg.Status == filter.Status {
			out = append(out, reg)
		}
	}
	return out, len(out), nil
}

func (m *memoryRegistrations) Validate(ctx context.Context, registrationID string, student *models.Student) error {
	reg, ok := m.items[registrationID]
	if !ok || reg.Status != models.RegistrationPending {
		return sql.ErrNoRows
	}
	if err := m.students.Create(ctx, student); err != nil {
		return err
	}
	reg.Status = models.RegistrationValidated
	reg.StudentID = &student.ID
	m.items[registrationID] = reg
	return nil
}

func (m *memoryRegistrations) Reject(ctx context.Context, id string) error {
	reg, ok := m.items[id]
	if !ok || reg.Status != models.RegistrationPending {
		return sql.ErrNoRows
	}
	reg.Status = models.RegistrationRejected
	m.items[id] = reg
	return nil
}

type memoryPrograms struct {
	items map[string]models.Program
}

func (m *memoryPrograms) FindByID(ctx context.Context, id string) (*models.Program, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &p, nil
}

func newRegistrationFixture() (*RegistrationService, *memoryRegistrations, *fakeStudents) {
	students := newFakeStudents()
	regs := &memoryRegistrations{items: map[string]models.Registration{}, students: students}
	programs := &memoryPrograms{items: map[string]models.Program{"prog-1": {ID: "prog-1", Name: "Génie Informatique"}}}
	classes := newFakeClasses(models.ClassDetail{Class: models.Class{ID: "class-2", ProgramID: "prog-1", Level: models.LevelTwo, Name: "GI-2"}})
	svc := NewRegistrationService(regs, programs, classes, students, nil, nil)
	svc.rnd = &sequenceRandom{values: []int{1234}}
	svc.now = func() time.Time { return time.Date(2024, time.September, 15, 0, 0, 0, 0, time.UTC) }
	return svc, regs, students
}

func TestRegistrationFullName(t *testing.T) {
	assert.Equal(t, "KONE Aminata", RegistrationFullName(" Kone", "Aminata "))
}

func TestCurrentSchoolYear(t *testing.T) {
	assert.Equal(t, "2025-2026", CurrentSchoolYear(time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)))
}

func TestRegistrationServiceValidateIsIdempotent(t *testing.T) {
	svc, regs, students := newRegistrationFixture()
	ctx := context.Background()

	reg, err := svc.Create(ctx, CreateRegistrationRequest{LastName: "Kone", FirstName: "Aminata", ProgramID: "prog-1", Level: 2})
	require.NoError(t, err)
	assert.Equal(t, models.RegistrationPending, reg.Status)
	assert.Equal(t, "2024-2025", reg.SchoolYear)

	student, err := svc.Validate(ctx, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, "KONE Aminata", student.FullName)
	assert.Equal(t, "class-2", student.ClassID)
	assert.Equal(t, "2234", student.Matricule)
	assert.Equal(t, models.RegistrationValidated, regs.items[reg.ID].Status)

	again, err := svc.Validate(ctx, reg.ID)
	require.NoError(t, err)
	assert.Equal(t, student.ID, again.ID)
	assert.Len(t, students.created, 1)
}

func TestRegistrationServiceValidateFailures(t *testing.T) {
	svc, _, _ := newRegistrationFixture()
	ctx := context.Background()

	_, err := svc.Validate(ctx, "missing")
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))

	noClass, err := svc.Create(ctx, CreateRegistrationRequest{LastName: "Kone", FirstName: "Ali", ProgramID: "prog-1", Level: 3})
	require.NoError(t, err)
	_, err = svc.Validate(ctx, noClass.ID)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))

	rejected, err := svc.Create(ctx, CreateRegistrationRequest{LastName: "Diallo", FirstName: "Fatou", ProgramID: "prog-1", Level: 2})
	require.NoError(t, err)
	require.NoError(t, svc.Reject(ctx, rejected.ID))
	_, err = svc.Validate(ctx, rejected.ID)
	assert.True(t, appErrors.Is(err, appErrors.ErrConflict))
	assert.True(t, appErrors.Is(svc.Reject(ctx, rejected.ID), appErrors.ErrNotFound))
}

func TestRegistrationServiceCreateValidation(t *testing.T) {
	svc, _, _ := newRegistrationFixture()
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateRegistrationRequest{LastName: "Kone", FirstName: "Ali", ProgramID: "prog-1", Level: 4})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	_, err = svc.Create(ctx, CreateRegistrationRequest{LastName: "Kone", FirstName: "Ali", ProgramID: "missing", Level: 1})
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}
