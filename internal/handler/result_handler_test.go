package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/scolarite-api/internal/models"
	appErrors "github.com/noah-isme/scolarite-api/pkg/errors"
)

type resultServiceMock struct {
	subject    *models.SubjectResult
	student    *models.StudentResult
	studentErr error
	lastArgs   []string
}

func (m *resultServiceMock) SubjectResult(_ context.Context, studentID, subjectID, sessionID string) (*models.SubjectResult, error) {
	m.lastArgs = []string{studentID, subjectID, sessionID}
	return m.subject, nil
}

func (m *resultServiceMock) StudentResult(_ context.Context, studentID, sessionID string) (*models.StudentResult, error) {
	m.lastArgs = []string{studentID, sessionID}
	return m.student, m.studentErr
}

func (m *resultServiceMock) ClassResults(_ context.Context, classID, sessionID string) (*models.ClassResult, error) {
	m.lastArgs = []string{classID, sessionID}
	return &models.ClassResult{}, nil
}

func TestResultHandlerRequiresSession(t *testing.T) {
	handler := NewResultHandler(&resultServiceMock{})

	c, w := newGinContext(http.MethodGet, "/results/students/stu-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "stu-1"}}
	handler.Student(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "session_id is required", decodeEnvelope(t, w).Error["message"])
}

func TestResultHandlerStudentUndefinedAverage(t *testing.T) {
	mock := &resultServiceMock{student: &models.StudentResult{Mention: models.MentionPending}}
	handler := NewResultHandler(mock)

	c, w := newGinContext(http.MethodGet, "/results/students/stu-1?session_id=sem-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "stu-1"}}
	handler.Student(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"stu-1", "sem-1"}, mock.lastArgs)
	envelope := decodeEnvelope(t, w)
	assert.Nil(t, envelope.Data["general_average"])
	assert.Contains(t, envelope.Data, "general_average")
	assert.Equal(t, "En cours", envelope.Data["mention"])
}

func TestResultHandlerStudentNotFound(t *testing.T) {
	handler := NewResultHandler(&resultServiceMock{studentErr: appErrors.Clone(appErrors.ErrNotFound, "student not found")})

	c, w := newGinContext(http.MethodGet, "/results/students/ghost?session_id=sem-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "ghost"}}
	handler.Student(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestResultHandlerIncompleteSubjectIsNull(t *testing.T) {
	mock := &resultServiceMock{}
	handler := NewResultHandler(mock)

	c, w := newGinContext(http.MethodGet, "/results/students/stu-1/subjects/math?session_id=sem-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "stu-1"}, {Key: "subject_id", Value: "math"}}
	handler.Subject(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"stu-1", "math", "sem-1"}, mock.lastArgs)
	envelope := decodeEnvelope(t, w)
	assert.Nil(t, envelope.Data)
	assert.Equal(t, false, envelope.Meta["complete"])
}

func TestResultHandlerClassPassesParams(t *testing.T) {
	mock := &resultServiceMock{}
	handler := NewResultHandler(mock)

	c, w := newGinContext(http.MethodGet, "/results/classes/class-1?session_id=sem-2", nil)
	c.Params = gin.Params{{Key: "id", Value: "class-1"}}
	handler.Class(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"class-1", "sem-2"}, mock.lastArgs)
}
