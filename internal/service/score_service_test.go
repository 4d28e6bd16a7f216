package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scolarite-api/internal/dto"
	"github.com/noah-isme/scolarite-api/internal/models"
	appErrors "github.com/noah-isme/scolarite-api/pkg/errors"
)

type fakeEvaluationResolver struct {
	items   map[string]models.EvaluationDetail
	ensured []EnsureEvaluationRequest
}

func (f *fakeEvaluationResolver) Get(ctx context.Context, id string) (*models.EvaluationDetail, error) {
	evaluation, ok := f.items[id]
	if !ok {
		return nil, lookupError(sql.ErrNoRows, "evaluation not found", "failed to load evaluation")
	}
	return &evaluation, nil
}

func (f *fakeEvaluationResolver) Ensure(ctx context.Context, req EnsureEvaluationRequest) (*models.EvaluationDetail, bool, error) {
	f.ensured = append(f.ensured, req)
	for _, evaluation := range f.items {
		if string(evaluation.Kind) == req.Kind && evaluation.SessionID == req.SessionID && evaluation.SubjectID == req.SubjectID {
			return &evaluation, false, nil
		}
	}
	evaluation := models.EvaluationDetail{
		Evaluation: models.Evaluation{ID: "eval-new", Kind: models.EvaluationKind(req.Kind), SessionID: req.SessionID, SubjectID: req.SubjectID},
		ClassID:    "class-1",
	}
	f.items[evaluation.ID] = evaluation
	return &evaluation, true, nil
}

func newScoreFixture() (*ScoreService, *fakeScoreStore, *recordingInvalidator, *MetricsService) {
	evaluations := &fakeEvaluationResolver{items: map[string]models.EvaluationDetail{
		"eval-1": {Evaluation: models.Evaluation{ID: "eval-1", Kind: models.EvaluationCoursework, SessionID: "sem-1", SubjectID: "math"}, ClassID: "class-1"},
	}}
	students := newFakeStudents(
		models.StudentDetail{Student: models.Student{ID: "stu-1", FullName: "KOUASSI Awa", ClassID: "class-1"}},
		models.StudentDetail{Student: models.Student{ID: "stu-2", FullName: "YAO Marc", ClassID: "class-1"}},
		models.StudentDetail{Student: models.Student{ID: "stu-3", FullName: "BAMBA Sita", ClassID: "class-1"}},
		models.StudentDetail{Student: models.Student{ID: "stu-9", FullName: "TRAORE Issa", ClassID: "class-2"}},
	)
	store := newFakeScoreStore()
	invalidator := &recordingInvalidator{}
	metrics := NewMetricsService()
	return NewScoreService(store, evaluations, students, invalidator, metrics, nil, nil), store, invalidator, metrics
}

func TestScoreServiceRecordCreatesThenUpdates(t *testing.T) {
	svc, store, invalidator, _ := newScoreFixture()
	ctx := context.Background()

	first, err := svc.Record(ctx, dto.RecordScoreRequest{EvaluationID: "eval-1", StudentID: "stu-1", Value: floatPtr(12)})
	require.NoError(t, err)
	assert.Equal(t, dto.ScoreCreated, first.Action)

	second, err := svc.Record(ctx, dto.RecordScoreRequest{EvaluationID: "eval-1", StudentID: "stu-1", Value: floatPtr(15.5)})
	require.NoError(t, err)
	assert.Equal(t, dto.ScoreUpdated, second.Action)
	assert.Equal(t, first.Score.ID, second.Score.ID)

	assert.Len(t, store.byEval["eval-1"], 1)
	assert.Equal(t, 15.5, store.byEval["eval-1"]["stu-1"].Value)
	assert.Equal(t, []string{"stu-1", "stu-1"}, invalidator.students)
}

func TestScoreServiceRecordRejections(t *testing.T) {
	svc, store, invalidator, _ := newScoreFixture()
	ctx := context.Background()

	_, err := svc.Record(ctx, dto.RecordScoreRequest{EvaluationID: "eval-1", StudentID: "stu-1", Value: floatPtr(20.5)})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	_, err = svc.Record(ctx, dto.RecordScoreRequest{EvaluationID: "eval-1", StudentID: "stu-1"})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	_, err = svc.Record(ctx, dto.RecordScoreRequest{EvaluationID: "eval-1", StudentID: "stu-9", Value: floatPtr(10)})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	_, err = svc.Record(ctx, dto.RecordScoreRequest{EvaluationID: "missing", StudentID: "stu-1", Value: floatPtr(10)})
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))

	assert.Empty(t, store.byEval)
	assert.Empty(t, invalidator.students)
}

func TestScoreServiceRecordBoundaryValues(t *testing.T) {
	svc, _, _, _ := newScoreFixture()
	for _, value := range []float64{0, 20} {
		_, err := svc.Record(context.Background(), dto.RecordScoreRequest{EvaluationID: "eval-1", StudentID: "stu-1", Value: floatPtr(value)})
		assert.NoError(t, err)
	}
}

func TestScoreServiceBulkRecordPartialFailure(t *testing.T) {
	svc, store, _, metrics := newScoreFixture()
	ctx := context.Background()
	_, err := svc.Record(ctx, dto.RecordScoreRequest{EvaluationID: "eval-1", StudentID: "stu-2", Value: floatPtr(9)})
	require.NoError(t, err)

	result, err := svc.BulkRecord(ctx, dto.BulkScoreRequest{
		EvaluationID: "eval-1",
		Scores: []dto.BulkScoreItem{
			{StudentID: "stu-1", Value: floatPtr(14)},
			{StudentID: "stu-2", Value: floatPtr(11)},
			{StudentID: "stu-3", Value: floatPtr(7.25)},
			{StudentID: "ghost", Value: floatPtr(10)},
		},
	})
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, 4, result.Total)
	assert.Equal(t, 2, result.Created)
	assert.Equal(t, 1, result.Updated)
	assert.Equal(t, 1, result.Errors)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, "ghost", result.Failures[0].StudentID)
	assert.Equal(t, "student not found", result.Failures[0].Reason)
	assert.Equal(t, 10.0, *result.Failures[0].AttemptedValue)
	assert.Len(t, result.Successes, 3)
	assert.Len(t, store.byEval["eval-1"], 3)

	snapshot := metrics.Snapshot()
	assert.Equal(t, uint64(4), snapshot.ScoresWritten)
}

func TestScoreServiceBulkRecordLineValidation(t *testing.T) {
	svc, _, _, _ := newScoreFixture()

	result, err := svc.BulkRecord(context.Background(), dto.BulkScoreRequest{
		EvaluationID: "eval-1",
		Scores: []dto.BulkScoreItem{
			{StudentID: "stu-1", Value: floatPtr(-1)},
			{StudentID: "", Value: floatPtr(10)},
			{StudentID: "stu-2"},
			{StudentID: "stu-3", Value: floatPtr(10)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.Errors)
	assert.Equal(t, 1, result.Created)
	assert.Equal(t, "value must be between 0 and 20", result.Failures[0].Reason)
}

func TestScoreServiceBulkRecordByKey(t *testing.T) {
	svc, store, _, _ := newScoreFixture()

	result, err := svc.BulkRecord(context.Background(), dto.BulkScoreRequest{
		Kind:      string(models.EvaluationExam),
		SessionID: "sem-1",
		SubjectID: "math",
		Scores:    []dto.BulkScoreItem{{StudentID: "stu-1", Value: floatPtr(13)}},
	})
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, "eval-new", result.EvaluationID)
	assert.Len(t, store.byEval["eval-new"], 1)
}

func TestScoreServiceBulkRecordRequiresTarget(t *testing.T) {
	svc, _, _, _ := newScoreFixture()

	_, err := svc.BulkRecord(context.Background(), dto.BulkScoreRequest{
		SessionID: "sem-1",
		Scores:    []dto.BulkScoreItem{{StudentID: "stu-1", Value: floatPtr(13)}},
	})
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
}

func TestScoreServiceDeleteInvalidatesResults(t *testing.T) {
	svc, _, invalidator, _ := newScoreFixture()
	ctx := context.Background()
	recorded, err := svc.Record(ctx, dto.RecordScoreRequest{EvaluationID: "eval-1", StudentID: "stu-1", Value: floatPtr(12)})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, recorded.Score.ID))
	assert.Equal(t, []string{"stu-1", "stu-1"}, invalidator.students)

	err = svc.Delete(ctx, recorded.Score.ID)
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}
