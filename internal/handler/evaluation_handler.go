package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scolarite-api/internal/models"
	"github.com/noah-isme/scolarite-api/internal/service"
	"github.com/noah-isme/scolarite-api/pkg/response"
)

// EvaluationHandler exposes coursework and exam endpoints.
type EvaluationHandler struct {
	evaluations *service.EvaluationService
}

// NewEvaluationHandler constructs EvaluationHandler.
func NewEvaluationHandler(evaluations *service.EvaluationService) *EvaluationHandler {
	return &EvaluationHandler{evaluations: evaluations}
}

// List godoc
// @Summary List evaluations
// @Tags Evaluations
// @Produce json
// @Param kind query string false "coursework or exam"
// @Param session_id query string false "Filter by session"
// @Param subject_id query string false "Filter by subject"
// @Param class_id query string false "Filter by class"
// @Success 200 {object} response.Envelope
// @Router /evaluations [get]
func (h *EvaluationHandler) List(c *gin.Context) {
	evaluations, err := h.evaluations.List(c.Request.Context(), models.EvaluationFilter{
		Kind:      models.EvaluationKind(c.Query("kind")),
		SessionID: c.Query("session_id"),
		SubjectID: c.Query("subject_id"),
		ClassID:   c.Query("class_id"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, evaluations, nil)
}

// Get godoc
// @Summary Get evaluation
// @Tags Evaluations
// @Produce json
// @Param id path string true "Evaluation ID"
// @Success 200 {object} response.Envelope
// @Router /evaluations/{id} [get]
func (h *EvaluationHandler) Get(c *gin.Context) {
	evaluation, err := h.evaluations.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, evaluation, nil)
}

// Create godoc
// @Summary Create evaluation
// @Description A coursework created with with_exam=true also creates the matching exam.
// @Tags Evaluations
// @Accept json
// @Produce json
// @Param payload body service.CreateEvaluationRequest true "Evaluation payload"
// @Success 201 {object} response.Envelope
// @Router /evaluations [post]
func (h *EvaluationHandler) Create(c *gin.Context) {
	var req service.CreateEvaluationRequest
	if !bindJSON(c, &req) {
		return
	}
	result, err := h.evaluations.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

// Ensure godoc
// @Summary Get or create an evaluation
// @Tags Evaluations
// @Accept json
// @Produce json
// @Param payload body service.EnsureEvaluationRequest true "Evaluation key"
// @Success 200 {object} response.Envelope
// @Success 201 {object} response.Envelope
// @Router /evaluations/ensure [post]
func (h *EvaluationHandler) Ensure(c *gin.Context) {
	var req service.EnsureEvaluationRequest
	if !bindJSON(c, &req) {
		return
	}
	evaluation, created, err := h.evaluations.Ensure(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	response.JSON(c, status, evaluation, nil, map[string]interface{}{"created": created})
}

// Delete godoc
// @Summary Delete evaluation and its scores
// @Tags Evaluations
// @Param id path string true "Evaluation ID"
// @Success 204
// @Router /evaluations/{id} [delete]
func (h *EvaluationHandler) Delete(c *gin.Context) {
	if err := h.evaluations.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
