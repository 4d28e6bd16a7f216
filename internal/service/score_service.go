package service

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/scolarite-api/internal/dto"
	"github.com/noah-isme/scolarite-api/internal/models"
	appErrors "github.com/noah-isme/scolarite-api/pkg/errors"
)

const (
	minScore = 0.0
	maxScore = 20.0
)

type scoreRepository interface {
	Upsert(ctx context.Context, score *models.Score) (bool, error)
	ListByEvaluation(ctx context.Context, evaluationID string) ([]models.ScoreDetail, error)
	FindByID(ctx context.Context, id string) (*models.Score, error)
	Delete(ctx context.Context, id string) error
}

type scoreStudentReader interface {
	FindByID(ctx context.Context, id string) (*models.StudentDetail, error)
}

type evaluationResolver interface {
	Get(ctx context.Context, id string) (*models.EvaluationDetail, error)
	Ensure(ctx context.Context, req EnsureEvaluationRequest) (*models.EvaluationDetail, bool, error)
}

// ScoreService records coursework and exam scores.
type ScoreService struct {
	repo        scoreRepository
	evaluations evaluationResolver
	students    scoreStudentReader
	results     studentResultInvalidator
	metrics     *MetricsService
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewScoreService constructs a ScoreService. results and metrics may be nil.
func NewScoreService(repo scoreRepository, evaluations evaluationResolver, students scoreStudentReader, results studentResultInvalidator, metrics *MetricsService, validate *validator.Validate, logger *zap.Logger) *ScoreService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScoreService{
		repo:        repo,
		evaluations: evaluations,
		students:    students,
		results:     results,
		metrics:     metrics,
		validator:   validate,
		logger:      logger,
	}
}

// Record writes one score, overwriting any previous value for (evaluation, student).
func (s *ScoreService) Record(ctx context.Context, req dto.RecordScoreRequest) (*dto.RecordScoreResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid score payload")
	}
	evaluation, err := s.evaluations.Get(ctx, req.EvaluationID)
	if err != nil {
		return nil, err
	}
	score, _, created, err := s.write(ctx, evaluation, req.StudentID, *req.Value)
	if err != nil {
		s.metrics.RecordScoreWrite("failed")
		return nil, err
	}
	return &dto.RecordScoreResponse{Score: *score, Action: scoreAction(created)}, nil
}

// BulkRecord writes many scores of one evaluation. Lines succeed or fail independently and
// successful lines are kept whatever happens to the others.
func (s *ScoreService) BulkRecord(ctx context.Context, req dto.BulkScoreRequest) (*dto.BulkScoreResult, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveBulkScores(time.Since(start)) }()

	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid bulk score payload")
	}
	evaluation, err := s.resolveEvaluation(ctx, req)
	if err != nil {
		return nil, err
	}

	result := &dto.BulkScoreResult{
		EvaluationID: evaluation.ID,
		Total:        len(req.Scores),
		Successes:    make([]dto.BulkScoreSuccess, 0, len(req.Scores)),
		Failures:     make([]dto.BulkScoreFailure, 0),
	}
	for _, item := range req.Scores {
		if reason := checkBulkItem(item); reason != "" {
			result.Failures = append(result.Failures, dto.BulkScoreFailure{StudentID: item.StudentID, Reason: reason, AttemptedValue: item.Value})
			s.metrics.RecordScoreWrite("failed")
			continue
		}
		score, student, created, err := s.write(ctx, evaluation, item.StudentID, *item.Value)
		if err != nil {
			result.Failures = append(result.Failures, dto.BulkScoreFailure{StudentID: item.StudentID, Reason: failureReason(err), AttemptedValue: item.Value})
			s.metrics.RecordScoreWrite("failed")
			continue
		}
		if created {
			result.Created++
		} else {
			result.Updated++
		}
		result.Successes = append(result.Successes, dto.BulkScoreSuccess{
			StudentID:   student.ID,
			StudentName: student.FullName,
			Value:       score.Value,
			Action:      scoreAction(created),
		})
	}
	result.Errors = len(result.Failures)
	result.Success = result.Errors == 0

	s.logger.Info("bulk scores recorded",
		zap.String("evaluation_id", evaluation.ID),
		zap.Int("total", result.Total),
		zap.Int("created", result.Created),
		zap.Int("updated", result.Updated),
		zap.Int("errors", result.Errors),
	)
	return result, nil
}

// ListByEvaluation returns the scores of an evaluation.
func (s *ScoreService) ListByEvaluation(ctx context.Context, evaluationID string) ([]models.ScoreDetail, error) {
	if _, err := s.evaluations.Get(ctx, evaluationID); err != nil {
		return nil, err
	}
	scores, err := s.repo.ListByEvaluation(ctx, evaluationID)
	if err != nil {
		return nil, internalError(err, "failed to list scores")
	}
	return scores, nil
}

// Delete removes a score.
func (s *ScoreService) Delete(ctx context.Context, id string) error {
	score, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return lookupError(err, "score not found", "failed to load score")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, "score not found", "failed to delete score")
	}
	s.invalidate(ctx, score.StudentID)
	return nil
}

func (s *ScoreService) resolveEvaluation(ctx context.Context, req dto.BulkScoreRequest) (*models.EvaluationDetail, error) {
	if req.EvaluationID != "" {
		return s.evaluations.Get(ctx, req.EvaluationID)
	}
	if req.Kind == "" || req.SessionID == "" || req.SubjectID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "evaluation_id or kind, session_id and subject_id are required")
	}
	evaluation, _, err := s.evaluations.Ensure(ctx, EnsureEvaluationRequest{Kind: req.Kind, SessionID: req.SessionID, SubjectID: req.SubjectID})
	return evaluation, err
}

func (s *ScoreService) write(ctx context.Context, evaluation *models.EvaluationDetail, studentID string, value float64) (*models.Score, *models.StudentDetail, bool, error) {
	if value < minScore || value > maxScore {
		return nil, nil, false, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("value must be between %.0f and %.0f", minScore, maxScore))
	}
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		return nil, nil, false, lookupError(err, "student not found", "failed to load student")
	}
	if student.ClassID != evaluation.ClassID {
		return nil, nil, false, appErrors.Clone(appErrors.ErrValidation, "student is not enrolled in the subject's class")
	}

	score := &models.Score{EvaluationID: evaluation.ID, StudentID: student.ID, Value: value}
	created, err := s.repo.Upsert(ctx, score)
	if err != nil {
		return nil, nil, false, internalError(err, "failed to record score")
	}
	s.metrics.RecordScoreWrite(string(scoreAction(created)))
	s.invalidate(ctx, student.ID)
	return score, student, created, nil
}

func (s *ScoreService) invalidate(ctx context.Context, studentID string) {
	if s.results != nil {
		s.results.InvalidateStudent(ctx, studentID)
	}
}

func checkBulkItem(item dto.BulkScoreItem) string {
	switch {
	case item.StudentID == "":
		return "student_id is required"
	case item.Value == nil:
		return "value is required"
	case *item.Value < minScore || *item.Value > maxScore:
		return fmt.Sprintf("value must be between %.0f and %.0f", minScore, maxScore)
	}
	return ""
}

func failureReason(err error) string {
	if appErr := appErrors.FromError(err); appErr != nil {
		return appErr.Message
	}
	return err.Error()
}

func scoreAction(created bool) dto.ScoreAction {
	if created {
		return dto.ScoreCreated
	}
	return dto.ScoreUpdated
}
