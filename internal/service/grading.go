package service

import (
	"math"
	"sort"

	"github.com/noah-isme/scolarite-api/internal/models"
)

// Weighting of the two evaluations of a subject and the pass mark of a subject.
const (
	CourseworkWeight    = 0.3
	ExamWeight          = 0.7
	ValidationThreshold = 10.0
)

var mentionThresholds = []struct {
	min     float64
	mention models.Mention
}{
	{16, models.MentionVeryGood},
	{14, models.MentionGood},
	{12, models.MentionFairlyGood},
	{10, models.MentionPass},
}

// round2 rounds half away from zero to two decimals.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ComputeSubjectAverage blends the coursework and exam scores of a subject. It returns nil when
// either score is absent: the subject is not gradable yet and must not be counted as zero.
func ComputeSubjectAverage(subject models.Subject, coursework, exam *float64) *models.SubjectResult {
	if coursework == nil || exam == nil {
		return nil
	}
	raw := *coursework*CourseworkWeight + *exam*ExamWeight
	rounded := round2(raw)
	return &models.SubjectResult{
		SubjectID:       subject.ID,
		SubjectName:     subject.Name,
		Abbreviation:    subject.Abbreviation,
		CourseworkScore: *coursework,
		ExamScore:       *exam,
		RawAverage:      rounded,
		Coefficient:     subject.Coefficient,
		WeightedAverage: round2(raw * float64(subject.Coefficient)),
		Validated:       rounded >= ValidationThreshold,
	}
}

// AggregateResults sums the weighted averages and coefficients of gradable subjects. The general
// average is nil when the coefficient sum is zero.
func AggregateResults(results []models.SubjectResult) (weightedSum float64, totalCoefficient int, general *float64) {
	for _, result := range results {
		weightedSum += result.WeightedAverage
		totalCoefficient += result.Coefficient
	}
	weightedSum = round2(weightedSum)
	if totalCoefficient <= 0 {
		return weightedSum, totalCoefficient, nil
	}
	avg := round2(weightedSum / float64(totalCoefficient))
	return weightedSum, totalCoefficient, &avg
}

// ClassifySubjects partitions gradable subjects on the validation threshold.
func ClassifySubjects(results []models.SubjectResult) (validated, nonValidated []models.SubjectResult) {
	validated = make([]models.SubjectResult, 0, len(results))
	nonValidated = make([]models.SubjectResult, 0)
	for _, result := range results {
		if result.RawAverage >= ValidationThreshold {
			validated = append(validated, result)
			continue
		}
		nonValidated = append(nonValidated, result)
	}
	return validated, nonValidated
}

// MentionFor maps a general average to its mention. Thresholds are inclusive.
func MentionFor(general *float64) models.Mention {
	if general == nil {
		return models.MentionPending
	}
	for _, threshold := range mentionThresholds {
		if *general >= threshold.min {
			return threshold.mention
		}
	}
	return models.MentionFail
}

// ComputeClassStatistics summarises student results. Students without a general average are
// counted under the pending mention and excluded from the numeric aggregates.
func ComputeClassStatistics(results []models.StudentResult) models.ClassStatistics {
	stats := models.ClassStatistics{
		Students: len(results),
		Mentions: map[models.Mention]int{
			models.MentionVeryGood:   0,
			models.MentionGood:       0,
			models.MentionFairlyGood: 0,
			models.MentionPass:       0,
			models.MentionFail:       0,
			models.MentionPending:    0,
		},
	}

	averages := make([]float64, 0, len(results))
	for _, result := range results {
		stats.Mentions[result.Mention]++
		if result.GeneralAverage == nil {
			continue
		}
		averages = append(averages, *result.GeneralAverage)
		if *result.GeneralAverage >= ValidationThreshold {
			stats.Passed++
		}
	}

	stats.Graded = len(averages)
	if stats.Graded == 0 {
		return stats
	}

	sort.Float64s(averages)
	var sum float64
	for _, avg := range averages {
		sum += avg
	}
	classAvg := round2(sum / float64(stats.Graded))
	highest := averages[len(averages)-1]
	lowest := averages[0]
	stats.ClassAverage = &classAvg
	stats.Highest = &highest
	stats.Lowest = &lowest
	stats.PassRate = round2(float64(stats.Passed) * 100 / float64(stats.Graded))
	return stats
}
