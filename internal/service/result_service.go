package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/scolarite-api/internal/models"
	appErrors "github.com/noah-isme/scolarite-api/pkg/errors"
)

type resultStudentReader interface {
	FindByID(ctx context.Context, id string) (*models.StudentDetail, error)
	ListByClass(ctx context.Context, classID string) ([]models.StudentDetail, error)
}

type resultSubjectLister interface {
	FindByID(ctx context.Context, id string) (*models.Subject, error)
	ListByClass(ctx context.Context, classID string) ([]models.Subject, error)
}

type scoreLookup interface {
	FindScore(ctx context.Context, kind models.EvaluationKind, subjectID, sessionID, studentID string) (*models.Score, error)
	ListSessionScores(ctx context.Context, studentID, sessionID string) ([]models.SessionScore, error)
}

// ResultService computes subject, student and class results from recorded scores.
type ResultService struct {
	students resultStudentReader
	subjects resultSubjectLister
	sessions sessionReader
	classes  classReader
	scores   scoreLookup
	cache    *CacheService
	cacheTTL time.Duration
	logger   *zap.Logger
	now      func() time.Time
}

// NewResultService constructs a ResultService. cache may be nil.
func NewResultService(students resultStudentReader, subjects resultSubjectLister, sessions sessionReader, classes classReader, scores scoreLookup, cache *CacheService, cacheTTL time.Duration, logger *zap.Logger) *ResultService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResultService{
		students: students,
		subjects: subjects,
		sessions: sessions,
		classes:  classes,
		scores:   scores,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
		now:      time.Now,
	}
}

// LookupScore returns the recorded score value, or nil when the student has no score for the
// evaluation of that kind.
func (s *ResultService) LookupScore(ctx context.Context, kind models.EvaluationKind, subjectID, sessionID, studentID string) (*float64, error) {
	score, err := s.scores.FindScore(ctx, kind, subjectID, sessionID, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, internalError(err, "failed to load score")
	}
	value := score.Value
	return &value, nil
}

// SubjectResult computes the average of one subject. It returns nil without error when the
// coursework or the exam score is missing.
func (s *ResultService) SubjectResult(ctx context.Context, studentID, subjectID, sessionID string) (*models.SubjectResult, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		return nil, lookupError(err, "student not found", "failed to load student")
	}
	subject, err := s.subjects.FindByID(ctx, subjectID)
	if err != nil {
		return nil, lookupError(err, "subject not found", "failed to load subject")
	}
	if _, err := s.sessions.FindByID(ctx, sessionID); err != nil {
		return nil, lookupError(err, "session not found", "failed to load session")
	}
	if subject.ClassID != student.ClassID {
		return nil, appErrors.Clone(appErrors.ErrValidation, "subject is not taught in the student's class")
	}

	coursework, err := s.LookupScore(ctx, models.EvaluationCoursework, subject.ID, sessionID, student.ID)
	if err != nil {
		return nil, err
	}
	exam, err := s.LookupScore(ctx, models.EvaluationExam, subject.ID, sessionID, student.ID)
	if err != nil {
		return nil, err
	}
	return ComputeSubjectAverage(*subject, coursework, exam), nil
}

// StudentResult returns the aggregated result of a student for a session, served from cache
// when available.
func (s *ResultService) StudentResult(ctx context.Context, studentID, sessionID string) (*models.StudentResult, error) {
	key := studentResultCacheKey(studentID, sessionID)
	var cached models.StudentResult
	if hit, err := s.cache.Get(ctx, key, &cached); err == nil && hit {
		return &cached, nil
	}

	result, err := s.ComputeStudentResult(ctx, studentID, sessionID)
	if err != nil {
		return nil, err
	}
	// Set already logs failures.
	s.cache.Set(ctx, key, result, s.cacheTTL) //nolint:errcheck
	return result, nil
}

// ComputeStudentResult recomputes a student result from the store, bypassing the cache.
func (s *ResultService) ComputeStudentResult(ctx context.Context, studentID, sessionID string) (*models.StudentResult, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		return nil, lookupError(err, "student not found", "failed to load student")
	}
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, lookupError(err, "session not found", "failed to load session")
	}
	subjects, err := s.subjects.ListByClass(ctx, student.ClassID)
	if err != nil {
		return nil, internalError(err, "failed to list class subjects")
	}
	return s.computeFor(ctx, *student, *session, subjects)
}

// ClassResults computes the result of every student of a class with class statistics.
func (s *ResultService) ClassResults(ctx context.Context, classID, sessionID string) (*models.ClassResult, error) {
	class, err := s.classes.FindByID(ctx, classID)
	if err != nil {
		return nil, lookupError(err, "class not found", "failed to load class")
	}
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, lookupError(err, "session not found", "failed to load session")
	}
	subjects, err := s.subjects.ListByClass(ctx, classID)
	if err != nil {
		return nil, internalError(err, "failed to list class subjects")
	}
	students, err := s.students.ListByClass(ctx, classID)
	if err != nil {
		return nil, internalError(err, "failed to list class students")
	}

	results := make([]models.StudentResult, 0, len(students))
	for _, student := range students {
		result, err := s.computeFor(ctx, student, *session, subjects)
		if err != nil {
			return nil, err
		}
		results = append(results, *result)
	}
	return &models.ClassResult{
		Class:      *class,
		Session:    *session,
		Results:    results,
		Statistics: ComputeClassStatistics(results),
	}, nil
}

// InvalidateStudent drops every cached result of a student. Failures are logged only.
func (s *ResultService) InvalidateStudent(ctx context.Context, studentID string) {
	if err := s.cache.Invalidate(ctx, studentResultCachePattern(studentID)); err != nil {
		s.logger.Warn("failed to invalidate student results", zap.String("student_id", studentID), zap.Error(err))
	}
}

// InvalidateClass drops the cached results of every student of a class. Subject and evaluation
// writes change results without touching any score, so they go through here.
func (s *ResultService) InvalidateClass(ctx context.Context, classID string) {
	students, err := s.students.ListByClass(ctx, classID)
	if err != nil {
		s.logger.Warn("failed to list class students for invalidation", zap.String("class_id", classID), zap.Error(err))
		return
	}
	for _, student := range students {
		s.InvalidateStudent(ctx, student.ID)
	}
}

func (s *ResultService) computeFor(ctx context.Context, student models.StudentDetail, session models.ExamSession, subjects []models.Subject) (*models.StudentResult, error) {
	scores, err := s.scores.ListSessionScores(ctx, student.ID, session.ID)
	if err != nil {
		return nil, internalError(err, "failed to load student scores")
	}
	result := BuildStudentResult(student, session, subjects, scores)
	result.ComputedAt = s.now().UTC()
	return result, nil
}

// BuildStudentResult aggregates the scores of a student over the subjects of their class.
// Scores of subjects outside the list are ignored.
func BuildStudentResult(student models.StudentDetail, session models.ExamSession, subjects []models.Subject, scores []models.SessionScore) *models.StudentResult {
	type pair struct{ coursework, exam *float64 }
	bySubject := make(map[string]*pair, len(subjects))
	for _, score := range scores {
		entry, ok := bySubject[score.SubjectID]
		if !ok {
			entry = &pair{}
			bySubject[score.SubjectID] = entry
		}
		value := score.Value
		switch score.Kind {
		case models.EvaluationCoursework:
			entry.coursework = &value
		case models.EvaluationExam:
			entry.exam = &value
		}
	}

	subjectResults := make([]models.SubjectResult, 0, len(subjects))
	pending := make([]string, 0)
	for _, subject := range subjects {
		var coursework, exam *float64
		if entry, ok := bySubject[subject.ID]; ok {
			coursework, exam = entry.coursework, entry.exam
		}
		computed := ComputeSubjectAverage(subject, coursework, exam)
		if computed == nil {
			pending = append(pending, subject.Name)
			continue
		}
		subjectResults = append(subjectResults, *computed)
	}

	weightedSum, totalCoefficient, general := AggregateResults(subjectResults)
	validated, nonValidated := ClassifySubjects(subjectResults)
	return &models.StudentResult{
		Student:          student,
		Session:          session,
		Subjects:         subjectResults,
		Validated:        validated,
		NonValidated:     nonValidated,
		PendingSubjects:  pending,
		TotalCoefficient: totalCoefficient,
		WeightedSum:      weightedSum,
		GeneralAverage:   general,
		Mention:          MentionFor(general),
	}
}
