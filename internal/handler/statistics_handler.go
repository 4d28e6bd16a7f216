package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scolarite-api/internal/models"
	"github.com/noah-isme/scolarite-api/pkg/response"
)

type statisticsService interface {
	General(ctx context.Context) (*models.GeneralStatistics, error)
	ClassHeadcounts(ctx context.Context) ([]models.ClassHeadcount, error)
}

// StatisticsHandler exposes headcount statistics.
type StatisticsHandler struct {
	statistics statisticsService
}

// NewStatisticsHandler constructs StatisticsHandler.
func NewStatisticsHandler(statistics statisticsService) *StatisticsHandler {
	return &StatisticsHandler{statistics: statistics}
}

// General godoc
// @Summary Totals across classes, programs and sessions
// @Tags Statistics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /statistics [get]
func (h *StatisticsHandler) General(c *gin.Context) {
	stats, err := h.statistics.General(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// Classes godoc
// @Summary Active and inactive students per class
// @Tags Statistics
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /statistics/classes [get]
func (h *StatisticsHandler) Classes(c *gin.Context) {
	headcounts, err := h.statistics.ClassHeadcounts(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, headcounts, nil)
}
