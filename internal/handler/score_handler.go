package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scolarite-api/internal/dto"
	"github.com/noah-isme/scolarite-api/internal/models"
	"github.com/noah-isme/scolarite-api/pkg/response"
)

type scoreService interface {
	Record(ctx context.Context, req dto.RecordScoreRequest) (*dto.RecordScoreResponse, error)
	BulkRecord(ctx context.Context, req dto.BulkScoreRequest) (*dto.BulkScoreResult, error)
	ListByEvaluation(ctx context.Context, evaluationID string) ([]models.ScoreDetail, error)
	Delete(ctx context.Context, id string) error
}

// ScoreHandler exposes score entry endpoints.
type ScoreHandler struct {
	scores scoreService
}

// NewScoreHandler constructs ScoreHandler.
func NewScoreHandler(scores scoreService) *ScoreHandler {
	return &ScoreHandler{scores: scores}
}

// Record godoc
// @Summary Record a single score
// @Description Creates the score or overwrites the existing one for the same evaluation and student.
// @Tags Scores
// @Accept json
// @Produce json
// @Param payload body dto.RecordScoreRequest true "Score payload"
// @Success 200 {object} response.Envelope
// @Success 201 {object} response.Envelope
// @Router /scores [post]
func (h *ScoreHandler) Record(c *gin.Context) {
	var req dto.RecordScoreRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.scores.Record(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	status := http.StatusOK
	if result.Action == dto.ScoreCreated {
		status = http.StatusCreated
	}
	response.JSON(c, status, result, nil)
}

// Bulk godoc
// @Summary Record scores for many students
// @Description Each line succeeds or fails on its own; failures are listed with a reason.
// @Tags Scores
// @Accept json
// @Produce json
// @Param payload body dto.BulkScoreRequest true "Bulk payload"
// @Success 200 {object} response.Envelope
// @Router /scores/bulk [post]
func (h *ScoreHandler) Bulk(c *gin.Context) {
	var req dto.BulkScoreRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.scores.BulkRecord(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// ListByEvaluation godoc
// @Summary List scores of an evaluation
// @Tags Scores
// @Produce json
// @Param id path string true "Evaluation ID"
// @Success 200 {object} response.Envelope
// @Router /evaluations/{id}/scores [get]
func (h *ScoreHandler) ListByEvaluation(c *gin.Context) {
	scores, err := h.scores.ListByEvaluation(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, scores, nil)
}

// Delete godoc
// @Summary Delete a score
// @Tags Scores
// @Param id path string true "Score ID"
// @Success 204
// @Router /scores/{id} [delete]
func (h *ScoreHandler) Delete(c *gin.Context) {
	if err := h.scores.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
