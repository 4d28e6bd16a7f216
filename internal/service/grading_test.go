package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scolarite-api/internal/models"
)

func TestComputeSubjectAverage(t *testing.T) {
	subject := models.Subject{ID: "sub-1", Name: "Algorithmique", Coefficient: 3}

	result := ComputeSubjectAverage(subject, floatPtr(12), floatPtr(16))
	require.NotNil(t, result)
	assert.Equal(t, 14.80, result.RawAverage)
	assert.Equal(t, 44.40, result.WeightedAverage)
	assert.Equal(t, 3, result.Coefficient)
	assert.True(t, result.Validated)
	assert.Equal(t, "Algorithmique", result.SubjectName)
}

func TestComputeSubjectAverageMissingScore(t *testing.T) {
	subject := models.Subject{ID: "sub-1", Coefficient: 2}

	assert.Nil(t, ComputeSubjectAverage(subject, nil, floatPtr(15)))
	assert.Nil(t, ComputeSubjectAverage(subject, floatPtr(15), nil))
	assert.Nil(t, ComputeSubjectAverage(subject, nil, nil))
}

func TestComputeSubjectAverageZeroScoresAreGradable(t *testing.T) {
	result := ComputeSubjectAverage(models.Subject{Coefficient: 1}, floatPtr(0), floatPtr(0))
	require.NotNil(t, result)
	assert.Equal(t, 0.0, result.RawAverage)
	assert.False(t, result.Validated)
}

func TestAggregateResults(t *testing.T) {
	results := []models.SubjectResult{
		{SubjectID: "a", Coefficient: 2, WeightedAverage: 20.0, RawAverage: 10},
		{SubjectID: "b", Coefficient: 4, WeightedAverage: 48.0, RawAverage: 12},
	}

	sum, coef, general := AggregateResults(results)
	require.NotNil(t, general)
	assert.Equal(t, 68.0, sum)
	assert.Equal(t, 6, coef)
	assert.Equal(t, 11.33, *general)

	reversed := []models.SubjectResult{results[1], results[0]}
	_, _, again := AggregateResults(reversed)
	require.NotNil(t, again)
	assert.Equal(t, *general, *again)
}

func TestAggregateResultsUndefined(t *testing.T) {
	sum, coef, general := AggregateResults(nil)
	assert.Nil(t, general)
	assert.Zero(t, sum)
	assert.Zero(t, coef)
	assert.Equal(t, models.MentionPending, MentionFor(general))
}

func TestClassifySubjects(t *testing.T) {
	results := []models.SubjectResult{
		{SubjectID: "a", RawAverage: 10},
		{SubjectID: "b", RawAverage: 9.99},
		{SubjectID: "c", RawAverage: 15.5},
	}
	validated, nonValidated := ClassifySubjects(results)
	require.Len(t, validated, 2)
	require.Len(t, nonValidated, 1)
	assert.Equal(t, "a", validated[0].SubjectID)
	assert.Equal(t, "c", validated[1].SubjectID)
	assert.Equal(t, "b", nonValidated[0].SubjectID)

	validated, nonValidated = ClassifySubjects(nil)
	assert.Empty(t, validated)
	assert.Empty(t, nonValidated)
}

func TestMentionFor(t *testing.T) {
	cases := []struct {
		avg  float64
		want models.Mention
	}{
		{20, models.MentionVeryGood},
		{16, models.MentionVeryGood},
		{15.99, models.MentionGood},
		{14, models.MentionGood},
		{12, models.MentionFairlyGood},
		{11.99, models.MentionPass},
		{10, models.MentionPass},
		{9.99, models.MentionFail},
		{0, models.MentionFail},
	}
	for _, tc := range cases {
		avg := tc.avg
		assert.Equal(t, tc.want, MentionFor(&avg), "average %.2f", tc.avg)
	}
	assert.Equal(t, models.MentionPending, MentionFor(nil))
}

func TestComputeClassStatistics(t *testing.T) {
	results := []models.StudentResult{
		{GeneralAverage: floatPtr(16.5), Mention: models.MentionVeryGood},
		{GeneralAverage: floatPtr(9), Mention: models.MentionFail},
		{GeneralAverage: floatPtr(12.5), Mention: models.MentionFairlyGood},
		{GeneralAverage: nil, Mention: models.MentionPending},
	}

	stats := ComputeClassStatistics(results)
	assert.Equal(t, 4, stats.Students)
	assert.Equal(t, 3, stats.Graded)
	assert.Equal(t, 2, stats.Passed)
	require.NotNil(t, stats.ClassAverage)
	assert.Equal(t, 12.67, *stats.ClassAverage)
	assert.Equal(t, 16.5, *stats.Highest)
	assert.Equal(t, 9.0, *stats.Lowest)
	assert.Equal(t, 66.67, stats.PassRate)
	assert.Equal(t, 1, stats.Mentions[models.MentionPending])
	assert.Equal(t, 1, stats.Mentions[models.MentionFail])
}

func TestComputeClassStatisticsWithoutGrades(t *testing.T) {
	stats := ComputeClassStatistics([]models.StudentResult{{Mention: models.MentionPending}})
	assert.Equal(t, 0, stats.Graded)
	assert.Nil(t, stats.ClassAverage)
	assert.Nil(t, stats.Highest)
	assert.Zero(t, stats.PassRate)
}
