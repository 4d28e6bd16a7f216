package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/noah-isme/scolarite-api/internal/dto"
	"github.com/noah-isme/scolarite-api/internal/models"
	appErrors "github.com/noah-isme/scolarite-api/pkg/errors"
)

type snapshotRepository interface {
	Upsert(ctx context.Context, snapshot *models.ResultSnapshot) error
	FindByStudent(ctx context.Context, studentID string) (*models.ResultSnapshotDetail, error)
	List(ctx context.Context, classID string) ([]models.ResultSnapshotDetail, error)
}

type activeSessionReader interface {
	Get(ctx context.Context) (*models.ResultSetting, error)
}

type studentResultComputer interface {
	ComputeStudentResult(ctx context.Context, studentID, sessionID string) (*models.StudentResult, error)
}

type classStudentLister interface {
	ListByClass(ctx context.Context, classID string) ([]models.StudentDetail, error)
}

// SnapshotService materialises the general average and mention of students for the active
// session. Snapshots change only when regenerated: recording a score leaves them stale.
type SnapshotService struct {
	repo     snapshotRepository
	settings activeSessionReader
	results  studentResultComputer
	classes  classReader
	students classStudentLister
	metrics  *MetricsService
	logger   *zap.Logger
}

// NewSnapshotService constructs a SnapshotService.
func NewSnapshotService(repo snapshotRepository, settings activeSessionReader, results studentResultComputer, classes classReader, students classStudentLister, metrics *MetricsService, logger *zap.Logger) *SnapshotService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SnapshotService{repo: repo, settings: settings, results: results, classes: classes, students: students, metrics: metrics, logger: logger}
}

// Regenerate recomputes and overwrites the snapshot of a student.
func (s *SnapshotService) Regenerate(ctx context.Context, studentID string) (*models.ResultSnapshot, error) {
	sessionID, err := s.activeSession(ctx)
	if err != nil {
		return nil, err
	}
	return s.regenerate(ctx, studentID, sessionID)
}

// RegenerateClass regenerates every student of a class. Students fail independently.
func (s *SnapshotService) RegenerateClass(ctx context.Context, classID string) (*dto.ClassSnapshotResult, error) {
	sessionID, err := s.activeSession(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := s.classes.FindByID(ctx, classID); err != nil {
		return nil, lookupError(err, "class not found", "failed to load class")
	}
	students, err := s.students.ListByClass(ctx, classID)
	if err != nil {
		return nil, internalError(err, "failed to list class students")
	}

	result := &dto.ClassSnapshotResult{
		ClassID:   classID,
		SessionID: sessionID,
		Total:     len(students),
		Snapshots: make([]models.ResultSnapshot, 0, len(students)),
		Failures:  make([]dto.SnapshotFailure, 0),
	}
	for _, student := range students {
		snapshot, err := s.regenerate(ctx, student.ID, sessionID)
		if err != nil {
			result.Failures = append(result.Failures, dto.SnapshotFailure{StudentID: student.ID, Reason: failureReason(err)})
			continue
		}
		result.Snapshots = append(result.Snapshots, *snapshot)
	}
	s.logger.Info("class snapshots regenerated",
		zap.String("class_id", classID),
		zap.String("session_id", sessionID),
		zap.Int("regenerated", len(result.Snapshots)),
		zap.Int("failed", len(result.Failures)),
	)
	return result, nil
}

// Get returns the stored snapshot of a student.
func (s *SnapshotService) Get(ctx context.Context, studentID string) (*models.ResultSnapshotDetail, error) {
	snapshot, err := s.repo.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, lookupError(err, "snapshot not found", "failed to load snapshot")
	}
	return snapshot, nil
}

// List returns stored snapshots, optionally for one class.
func (s *SnapshotService) List(ctx context.Context, classID string) ([]models.ResultSnapshotDetail, error) {
	snapshots, err := s.repo.List(ctx, classID)
	if err != nil {
		return nil, internalError(err, "failed to list snapshots")
	}
	return snapshots, nil
}

func (s *SnapshotService) activeSession(ctx context.Context) (string, error) {
	setting, err := s.settings.Get(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", appErrors.Clone(appErrors.ErrPreconditionFailed, "no active session configured")
		}
		return "", internalError(err, "failed to load result setting")
	}
	return setting.SessionID, nil
}

func (s *SnapshotService) regenerate(ctx context.Context, studentID, sessionID string) (*models.ResultSnapshot, error) {
	result, err := s.results.ComputeStudentResult(ctx, studentID, sessionID)
	if err != nil {
		s.metrics.RecordSnapshot(false)
		return nil, err
	}
	snapshot := &models.ResultSnapshot{
		StudentID:      studentID,
		SessionID:      sessionID,
		GeneralAverage: result.GeneralAverage,
		Mention:        result.Mention,
	}
	if err := s.repo.Upsert(ctx, snapshot); err != nil {
		s.metrics.RecordSnapshot(false)
		return nil, internalError(err, "failed to store snapshot")
	}
	s.metrics.RecordSnapshot(true)
	return snapshot, nil
}
