package service

import (
	"context"
	"database/sql"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/noah-isme/scolarite-api/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }

type fakeStudents struct {
	items     map[string]models.StudentDetail
	created   []models.Student
	updated   []models.Student
	activeSet map[string]bool
	createErr error
}

func newFakeStudents(students ...models.StudentDetail) *fakeStudents {
	f := &fakeStudents{items: map[string]models.StudentDetail{}, activeSet: map[string]bool{}}
	for _, s := range students {
		f.items[s.ID] = s
	}
	return f
}

func (f *fakeStudents) List(ctx context.Context, filter models.StudentFilter) ([]models.StudentDetail, int, error) {
	out := make([]models.StudentDetail, 0, len(f.items))
	for _, s := range f.items {
		if filter.ClassID != "" && s.ClassID != filter.ClassID {
			continue
		}
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].FullName < out[j].FullName })
	return out, len(out), nil
}

func (f *fakeStudents) ListByClass(ctx context.Context, classID string) ([]models.StudentDetail, error) {
	out, _, err := f.List(ctx, models.StudentFilter{ClassID: classID})
	return out, err
}

func (f *fakeStudents) FindByID(ctx context.Context, id string) (*models.StudentDetail, error) {
	s, ok := f.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &s, nil
}

func (f *fakeStudents) FindByMatricule(ctx context.Context, matricule string) (*models.StudentDetail, error) {
	for _, s := range f.items {
		if s.Matricule == matricule {
			s := s
			return &s, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeStudents) ExistsByMatricule(ctx context.Context, matricule string) (bool, error) {
	_, err := f.FindByMatricule(ctx, matricule)
	return err == nil, nil
}

func (f *fakeStudents) ExistsByNameInClass(ctx context.Context, fullName, classID, excludeID string) (bool, error) {
	for _, s := range f.items {
		if s.ID != excludeID && s.ClassID == classID && strings.EqualFold(s.FullName, fullName) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeStudents) Create(ctx context.Context, student *models.Student) error {
	if f.createErr != nil {
		return f.createErr
	}
	student.ID = uuid.NewString()
	f.created = append(f.created, *student)
	f.items[student.ID] = models.StudentDetail{Student: *student}
	return nil
}

func (f *fakeStudents) Update(ctx context.Context, student *models.Student) error {
	if _, ok := f.items[student.ID]; !ok {
		return sql.ErrNoRows
	}
	f.updated = append(f.updated, *student)
	f.items[student.ID] = models.StudentDetail{Student: *student}
	return nil
}

func (f *fakeStudents) SetActive(ctx context.Context, id string, active bool) error {
	s, ok := f.items[id]
	if !ok {
		return sql.ErrNoRows
	}
	s.Active = active
	f.items[id] = s
	f.activeSet[id] = active
	return nil
}

func (f *fakeStudents) Delete(ctx context.Context, id string) error {
	if _, ok := f.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(f.items, id)
	return nil
}

type fakeClasses struct {
	items map[string]models.ClassDetail
}

func newFakeClasses(classes ...models.ClassDetail) *fakeClasses {
	f := &fakeClasses{items: map[string]models.ClassDetail{}}
	for _, c := range classes {
		f.items[c.ID] = c
	}
	return f
}

func (f *fakeClasses) FindByID(ctx context.Context, id string) (*models.ClassDetail, error) {
	c, ok := f.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &c, nil
}

func (f *fakeClasses) FindByProgramLevel(ctx context.Context, programID string, level models.ClassLevel) (*models.Class, error) {
	for _, c := range f.items {
		if c.ProgramID == programID && c.Level == level {
			class := c.Class
			return &class, nil
		}
	}
	return nil, sql.ErrNoRows
}

type fakeSubjects struct {
	items map[string]models.Subject
}

func newFakeSubjects(subjects ...models.Subject) *fakeSubjects {
	f := &fakeSubjects{items: map[string]models.Subject{}}
	for _, s := range subjects {
		f.items[s.ID] = s
	}
	return f
}

func (f *fakeSubjects) FindByID(ctx context.Context, id string) (*models.Subject, error) {
	s, ok := f.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &s, nil
}

func (f *fakeSubjects) ListByClass(ctx context.Context, classID string) ([]models.Subject, error) {
	out := make([]models.Subject, 0)
	for _, s := range f.items {
		if s.ClassID == classID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

type fakeSessions struct {
	items map[string]models.ExamSession
}

func newFakeSessions(sessions ...models.ExamSession) *fakeSessions {
	f := &fakeSessions{items: map[string]models.ExamSession{}}
	for _, s := range sessions {
		f.items[s.ID] = s
	}
	return f
}

func (f *fakeSessions) FindByID(ctx context.Context, id string) (*models.ExamSession, error) {
	s, ok := f.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &s, nil
}

type scoreKey struct {
	kind      models.EvaluationKind
	subjectID string
	sessionID string
	studentID string
}

// fakeScoreStore serves both the result lookups and the score write path.
type fakeScoreStore struct {
	byKey     map[scoreKey]float64
	byEval    map[string]map[string]models.Score
	listCalls int
	upsertErr error
}

func newFakeScoreStore() *fakeScoreStore {
	return &fakeScoreStore{byKey: map[scoreKey]float64{}, byEval: map[string]map[string]models.Score{}}
}

func (f *fakeScoreStore) put(kind models.EvaluationKind, subjectID, sessionID, studentID string, value float64) {
	f.byKey[scoreKey{kind, subjectID, sessionID, studentID}] = value
}

func (f *fakeScoreStore) FindScore(ctx context.Context, kind models.EvaluationKind, subjectID, sessionID, studentID string) (*models.Score, error) {
	value, ok := f.byKey[scoreKey{kind, subjectID, sessionID, studentID}]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &models.Score{StudentID: studentID, Value: value}, nil
}

func (f *fakeScoreStore) ListSessionScores(ctx context.Context, studentID, sessionID string) ([]models.SessionScore, error) {
	f.listCalls++
	var out []models.SessionScore
	for key, value := range f.byKey {
		if key.studentID == studentID && key.sessionID == sessionID {
			out = append(out, models.SessionScore{SubjectID: key.subjectID, Kind: key.kind, Value: value})
		}
	}
	return out, nil
}

func (f *fakeScoreStore) Upsert(ctx context.Context, score *models.Score) (bool, error) {
	if f.upsertErr != nil {
		return false, f.upsertErr
	}
	scores, ok := f.byEval[score.EvaluationID]
	if !ok {
		scores = map[string]models.Score{}
		f.byEval[score.EvaluationID] = scores
	}
	existing, found := scores[score.StudentID]
	if found {
		score.ID = existing.ID
	} else {
		score.ID = uuid.NewString()
	}
	score.UpdatedAt = time.Now()
	scores[score.StudentID] = *score
	return !found, nil
}

func (f *fakeScoreStore) ListByEvaluation(ctx context.Context, evaluationID string) ([]models.ScoreDetail, error) {
	var out []models.ScoreDetail
	for _, score := range f.byEval[evaluationID] {
		out = append(out, models.ScoreDetail{Score: score})
	}
	return out, nil
}

func (f *fakeScoreStore) FindByID(ctx context.Context, id string) (*models.Score, error) {
	for _, scores := range f.byEval {
		for _, score := range scores {
			if score.ID == id {
				score := score
				return &score, nil
			}
		}
	}
	return nil, sql.ErrNoRows
}

func (f *fakeScoreStore) Delete(ctx context.Context, id string) error {
	for _, scores := range f.byEval {
		for student, score := range scores {
			if score.ID == id {
				delete(scores, student)
				return nil
			}
		}
	}
	return sql.ErrNoRows
}

type recordingInvalidator struct {
	students []string
	classes  []string
}

func (r *recordingInvalidator) InvalidateStudent(ctx context.Context, studentID string) {
	r.students = append(r.students, studentID)
}

func (r *recordingInvalidator) InvalidateClass(ctx context.Context, classID string) {
	r.classes = append(r.classes, classID)
}

type sequenceRandom struct {
	values []int
	pos    int
}

func (s *sequenceRandom) Intn(n int) int {
	v := s.values[s.pos%len(s.values)]
	s.pos++
	return v % n
}
