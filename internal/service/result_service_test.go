package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scolarite-api/internal/models"
	appErrors "github.com/noah-isme/scolarite-api/pkg/errors"
)

type resultFixture struct {
	students *fakeStudents
	subjects *fakeSubjects
	sessions *fakeSessions
	classes  *fakeClasses
	scores   *fakeScoreStore
	cache    *memoryCacheRepo
	service  *ResultService
}

func newResultFixture(t *testing.T) *resultFixture {
	t.Helper()
	f := &resultFixture{
		students: newFakeStudents(
			models.StudentDetail{Student: models.Student{ID: "stu-1", FullName: "KOUASSI Awa", Matricule: "4821", ClassID: "class-1", Active: true}},
			models.StudentDetail{Student: models.Student{ID: "stu-2", FullName: "YAO Marc", Matricule: "1933", ClassID: "class-1", Active: true}},
			models.StudentDetail{Student: models.Student{ID: "stu-3", FullName: "TRAORE Issa", Matricule: "7010", ClassID: "class-2", Active: true}},
		),
		subjects: newFakeSubjects(
			models.Subject{ID: "math", ClassID: "class-1", Name: "Mathématiques", Coefficient: 3},
			models.Subject{ID: "phys", ClassID: "class-1", Name: "Physique", Coefficient: 2},
			models.Subject{ID: "info", ClassID: "class-1", Name: "Informatique", Coefficient: 1},
			models.Subject{ID: "other", ClassID: "class-2", Name: "Droit", Coefficient: 1},
		),
		sessions: newFakeSessions(models.ExamSession{ID: "sem-1", Title: models.SessionSemesterOne, SchoolYear: "2024-2025", Code: "SEM-20242025-AB12"}),
		classes:  newFakeClasses(models.ClassDetail{Class: models.Class{ID: "class-1", Name: "GI-1"}, ProgramName: "Génie Informatique"}),
		scores:   newFakeScoreStore(),
		cache:    newMemoryCacheRepo(),
	}
	cache := NewCacheService(f.cache, nil, time.Minute, nil, true)
	f.service = NewResultService(f.students, f.subjects, f.sessions, f.classes, f.scores, cache, time.Minute, nil)
	return f
}

func TestResultServiceSubjectResult(t *testing.T) {
	f := newResultFixture(t)
	f.scores.put(models.EvaluationCoursework, "math", "sem-1", "stu-1", 12)
	f.scores.put(models.EvaluationExam, "math", "sem-1", "stu-1", 15)

	result, err := f.service.SubjectResult(context.Background(), "stu-1", "math", "sem-1")
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.Equal(t, 14.1, result.RawAverage)
	assert.Equal(t, 42.3, result.WeightedAverage)
	assert.True(t, result.Validated)
}

func TestResultServiceSubjectResultIncomplete(t *testing.T) {
	f := newResultFixture(t)
	f.scores.put(models.EvaluationCoursework, "math", "sem-1", "stu-1", 12)

	result, err := f.service.SubjectResult(context.Background(), "stu-1", "math", "sem-1")
	require.NoError(t, err)
	assert.Nil(t, result)
}

func TestResultServiceSubjectResultErrors(t *testing.T) {
	f := newResultFixture(t)
	ctx := context.Background()

	_, err := f.service.SubjectResult(ctx, "missing", "math", "sem-1")
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))

	_, err = f.service.SubjectResult(ctx, "stu-1", "math", "missing")
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))

	_, err = f.service.SubjectResult(ctx, "stu-1", "other", "sem-1")
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestResultServiceStudentResult(t *testing.T) {
	f := newResultFixture(t)
	f.scores.put(models.EvaluationCoursework, "math", "sem-1", "stu-1", 12)
	f.scores.put(models.EvaluationExam, "math", "sem-1", "stu-1", 15)
	f.scores.put(models.EvaluationCoursework, "phys", "sem-1", "stu-1", 8)
	f.scores.put(models.EvaluationExam, "phys", "sem-1", "stu-1", 9)
	f.scores.put(models.EvaluationExam, "info", "sem-1", "stu-1", 18)

	result, err := f.service.StudentResult(context.Background(), "stu-1", "sem-1")
	require.NoError(t, err)
	require.NotNil(t, result.GeneralAverage)
	assert.Equal(t, 5, result.TotalCoefficient)
	assert.Equal(t, 59.7, result.WeightedSum)
	assert.Equal(t, 11.94, *result.GeneralAverage)
	assert.Equal(t, models.MentionPass, result.Mention)
	assert.Len(t, result.Validated, 1)
	assert.Len(t, result.NonValidated, 1)
	assert.Equal(t, []string{"Informatique"}, result.PendingSubjects)
}

func TestResultServiceStudentResultIsCached(t *testing.T) {
	f := newResultFixture(t)
	f.scores.put(models.EvaluationCoursework, "math", "sem-1", "stu-1", 10)
	f.scores.put(models.EvaluationExam, "math", "sem-1", "stu-1", 10)
	ctx := context.Background()

	first, err := f.service.StudentResult(ctx, "stu-1", "sem-1")
	require.NoError(t, err)
	second, err := f.service.StudentResult(ctx, "stu-1", "sem-1")
	require.NoError(t, err)

	assert.Equal(t, 1, f.scores.listCalls)
	assert.Equal(t, *first.GeneralAverage, *second.GeneralAverage)
	assert.Contains(t, f.cache.values, studentResultCacheKey("stu-1", "sem-1"))

	_, err = f.service.ComputeStudentResult(ctx, "stu-1", "sem-1")
	require.NoError(t, err)
	assert.Equal(t, 2, f.scores.listCalls)
}

func TestResultServiceStudentResultWithoutScores(t *testing.T) {
	f := newResultFixture(t)

	result, err := f.service.StudentResult(context.Background(), "stu-2", "sem-1")
	require.NoError(t, err)
	assert.Nil(t, result.GeneralAverage)
	assert.Equal(t, models.MentionPending, result.Mention)
	assert.Empty(t, result.Subjects)
	assert.Len(t, result.PendingSubjects, 3)
}

func TestResultServiceClassResults(t *testing.T) {
	f := newResultFixture(t)
	f.scores.put(models.EvaluationCoursework, "math", "sem-1", "stu-1", 16)
	f.scores.put(models.EvaluationExam, "math", "sem-1", "stu-1", 17)
	f.scores.put(models.EvaluationCoursework, "math", "sem-1", "stu-2", 5)
	f.scores.put(models.EvaluationExam, "math", "sem-1", "stu-2", 6)

	result, err := f.service.ClassResults(context.Background(), "class-1", "sem-1")
	require.NoError(t, err)
	assert.Len(t, result.Results, 2)
	assert.Equal(t, 2, result.Statistics.Students)
	assert.Equal(t, 2, result.Statistics.Graded)
	assert.Equal(t, 1, result.Statistics.Passed)
	assert.Equal(t, 1, result.Statistics.Mentions[models.MentionVeryGood])
	assert.Equal(t, 1, result.Statistics.Mentions[models.MentionFail])
}

func TestResultServiceInvalidateStudent(t *testing.T) {
	f := newResultFixture(t)
	f.service.InvalidateStudent(context.Background(), "stu-1")
	assert.Equal(t, []string{studentResultCachePattern("stu-1")}, f.cache.patterns)
}

func TestResultServiceInvalidateClass(t *testing.T) {
	f := newResultFixture(t)
	f.service.InvalidateClass(context.Background(), "class-1")
	assert.ElementsMatch(t, []string{studentResultCachePattern("stu-1"), studentResultCachePattern("stu-2")}, f.cache.patterns)
}

func TestResultServiceReflectsSubjectChanges(t *testing.T) {
	f := newResultFixture(t)
	f.scores.put(models.EvaluationCoursework, "math", "sem-1", "stu-1", 20)
	f.scores.put(models.EvaluationExam, "math", "sem-1", "stu-1", 20)
	f.scores.put(models.EvaluationCoursework, "phys", "sem-1", "stu-1", 0)
	f.scores.put(models.EvaluationExam, "phys", "sem-1", "stu-1", 0)
	subjects := NewSubjectService(memorySubjectRepo{f.subjects}, f.classes, f.service, nil, nil)
	ctx := context.Background()

	before, err := f.service.StudentResult(ctx, "stu-1", "sem-1")
	require.NoError(t, err)
	require.NotNil(t, before.GeneralAverage)
	assert.Equal(t, 12.0, *before.GeneralAverage)
	assert.Equal(t, models.MentionFairlyGood, before.Mention)

	_, err = subjects.Update(ctx, "phys", SubjectRequest{ClassID: "class-1", Name: "Physique", Coefficient: intPtr(10)})
	require.NoError(t, err)
	require.NoError(t, subjects.Delete(ctx, "math"))

	after, err := f.service.StudentResult(ctx, "stu-1", "sem-1")
	require.NoError(t, err)
	require.NotNil(t, after.GeneralAverage)
	assert.Equal(t, 0.0, *after.GeneralAverage)
	assert.Equal(t, models.MentionFail, after.Mention)
	assert.Equal(t, 10, after.TotalCoefficient)
}

func TestBuildStudentResultIgnoresForeignSubjects(t *testing.T) {
	subjects := []models.Subject{{ID: "math", Name: "Mathématiques", Coefficient: 2}}
	scores := []models.SessionScore{
		{SubjectID: "math", Kind: models.EvaluationCoursework, Value: 10},
		{SubjectID: "math", Kind: models.EvaluationExam, Value: 20},
		{SubjectID: "other", Kind: models.EvaluationExam, Value: 0},
	}

	result := BuildStudentResult(models.StudentDetail{}, models.ExamSession{}, subjects, scores)
	require.NotNil(t, result.GeneralAverage)
	assert.Equal(t, 17.0, *result.GeneralAverage)
	assert.Equal(t, models.MentionVeryGood, result.Mention)
	assert.Empty(t, result.PendingSubjects)
}
