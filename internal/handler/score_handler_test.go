package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/scolarite-api/internal/dto"
	"github.com/noah-isme/scolarite-api/internal/models"
	appErrors "github.com/noah-isme/scolarite-api/pkg/errors"
)

type scoreServiceMock struct {
	recordResp *dto.RecordScoreResponse
	recordErr  error
	bulkResp   *dto.BulkScoreResult
	bulkReq    dto.BulkScoreRequest
	listed     string
	deleteErr  error
}

func (m *scoreServiceMock) Record(context.Context, dto.RecordScoreRequest) (*dto.RecordScoreResponse, error) {
	return m.recordResp, m.recordErr
}

func (m *scoreServiceMock) BulkRecord(_ context.Context, req dto.BulkScoreRequest) (*dto.BulkScoreResult, error) {
	m.bulkReq = req
	return m.bulkResp, nil
}

func (m *scoreServiceMock) ListByEvaluation(_ context.Context, evaluationID string) ([]models.ScoreDetail, error) {
	m.listed = evaluationID
	return []models.ScoreDetail{}, nil
}

func (m *scoreServiceMock) Delete(context.Context, string) error {
	return m.deleteErr
}

func TestScoreHandlerRecordStatusFollowsAction(t *testing.T) {
	mock := &scoreServiceMock{recordResp: &dto.RecordScoreResponse{Action: dto.ScoreCreated}}
	handler := NewScoreHandler(mock)

	c, w := newGinContext(http.MethodPost, "/scores", []byte(`{"evaluation_id":"ev-1","student_id":"stu-1","value":12.5}`))
	handler.Record(c)
	assert.Equal(t, http.StatusCreated, w.Code)

	mock.recordResp = &dto.RecordScoreResponse{Action: dto.ScoreUpdated}
	c, w = newGinContext(http.MethodPost, "/scores", []byte(`{"evaluation_id":"ev-1","student_id":"stu-1","value":14}`))
	handler.Record(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "updated", decodeEnvelope(t, w).Data["action"])
}

func TestScoreHandlerRecordInvalidJSON(t *testing.T) {
	handler := NewScoreHandler(&scoreServiceMock{})

	c, w := newGinContext(http.MethodPost, "/scores", []byte(`{"value":`))
	handler.Record(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeEnvelope(t, w).Error["code"])
}

func TestScoreHandlerRecordPropagatesServiceError(t *testing.T) {
	handler := NewScoreHandler(&scoreServiceMock{recordErr: appErrors.Clone(appErrors.ErrValidation, "student does not belong to the subject class")})

	c, w := newGinContext(http.MethodPost, "/scores", []byte(`{"evaluation_id":"ev-1","student_id":"stu-9","value":10}`))
	handler.Record(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "student does not belong to the subject class", decodeEnvelope(t, w).Error["message"])
}

func TestScoreHandlerBulkReturnsOutcomes(t *testing.T) {
	value := 25.0
	mock := &scoreServiceMock{bulkResp: &dto.BulkScoreResult{
		Success: false,
		Total:   2,
		Created: 1,
		Errors:  1,
		Successes: []dto.BulkScoreSuccess{
			{StudentID: "stu-1", StudentName: "RAKOTO Jean", Value: 12, Action: dto.ScoreCreated},
		},
		Failures: []dto.BulkScoreFailure{
			{StudentID: "stu-2", Reason: "value must be between 0 and 20", AttemptedValue: &value},
		},
	}}
	handler := NewScoreHandler(mock)

	body := []byte(`{"kind":"exam","session_id":"sem-1","subject_id":"math","scores":[{"student_id":"stu-1","value":12},{"student_id":"stu-2","value":25}]}`)
	c, w := newGinContext(http.MethodPost, "/scores/bulk", body)
	handler.Bulk(c)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "exam", mock.bulkReq.Kind)
	assert.Len(t, mock.bulkReq.Scores, 2)

	var envelope struct {
		Data dto.BulkScoreResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	assert.False(t, envelope.Data.Success)
	assert.Equal(t, 1, envelope.Data.Errors)
	require.Len(t, envelope.Data.Failures, 1)
	assert.Equal(t, 25.0, *envelope.Data.Failures[0].AttemptedValue)
}

func TestScoreHandlerListAndDelete(t *testing.T) {
	mock := &scoreServiceMock{}
	handler := NewScoreHandler(mock)

	c, w := newGinContext(http.MethodGet, "/evaluations/ev-7/scores", nil)
	c.Params = gin.Params{{Key: "id", Value: "ev-7"}}
	handler.ListByEvaluation(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ev-7", mock.listed)

	mock.deleteErr = appErrors.ErrNotFound
	c, w = newGinContext(http.MethodDelete, "/scores/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	handler.Delete(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
