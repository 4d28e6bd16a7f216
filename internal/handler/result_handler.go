package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scolarite-api/internal/models"
	"github.com/noah-isme/scolarite-api/pkg/response"
)

type resultService interface {
	SubjectResult(ctx context.Context, studentID, subjectID, sessionID string) (*models.SubjectResult, error)
	StudentResult(ctx context.Context, studentID, sessionID string) (*models.StudentResult, error)
	ClassResults(ctx context.Context, classID, sessionID string) (*models.ClassResult, error)
}

// ResultHandler exposes computed averages, validations and mentions.
type ResultHandler struct {
	results resultService
}

// NewResultHandler constructs ResultHandler.
func NewResultHandler(results resultService) *ResultHandler {
	return &ResultHandler{results: results}
}

// Student godoc
// @Summary Result of a student for a session
// @Tags Results
// @Produce json
// @Param id path string true "Student ID"
// @Param session_id query string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /results/students/{id} [get]
func (h *ResultHandler) Student(c *gin.Context) {
	sessionID, ok := requiredQuery(c, "session_id")
	if !ok {
		return
	}
	result, err := h.results.StudentResult(c.Request.Context(), c.Param("id"), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Subject godoc
// @Summary Average of a student in one subject
// @Description data is null while the coursework or exam score is missing.
// @Tags Results
// @Produce json
// @Param id path string true "Student ID"
// @Param subject_id path string true "Subject ID"
// @Param session_id query string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /results/students/{id}/subjects/{subject_id} [get]
func (h *ResultHandler) Subject(c *gin.Context) {
	sessionID, ok := requiredQuery(c, "session_id")
	if !ok {
		return
	}
	result, err := h.results.SubjectResult(c.Request.Context(), c.Param("id"), c.Param("subject_id"), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil, map[string]interface{}{"complete": result != nil})
}

// Class godoc
// @Summary Results of every student of a class
// @Tags Results
// @Produce json
// @Param id path string true "Class ID"
// @Param session_id query string true "Session ID"
// @Success 200 {object} response.Envelope
// @Router /results/classes/{id} [get]
func (h *ResultHandler) Class(c *gin.Context) {
	sessionID, ok := requiredQuery(c, "session_id")
	if !ok {
		return
	}
	result, err := h.results.ClassResults(c.Request.Context(), c.Param("id"), sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
