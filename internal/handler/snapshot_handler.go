package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scolarite-api/internal/dto"
	"github.com/noah-isme/scolarite-api/internal/models"
	"github.com/noah-isme/scolarite-api/internal/service"
	"github.com/noah-isme/scolarite-api/pkg/response"
)

type snapshotService interface {
	Regenerate(ctx context.Context, studentID string) (*models.ResultSnapshot, error)
	RegenerateClass(ctx context.Context, classID string) (*dto.ClassSnapshotResult, error)
	Get(ctx context.Context, studentID string) (*models.ResultSnapshotDetail, error)
	List(ctx context.Context, classID string) ([]models.ResultSnapshotDetail, error)
}

type resultSettingService interface {
	Get(ctx context.Context) (*models.ResultSetting, error)
	Create(ctx context.Context, req service.ResultSettingRequest) (*models.ResultSetting, error)
	Update(ctx context.Context, req service.ResultSettingRequest) (*models.ResultSetting, error)
}

// SnapshotHandler exposes persisted result snapshots and the active session setting.
type SnapshotHandler struct {
	snapshots snapshotService
	settings  resultSettingService
}

// NewSnapshotHandler constructs SnapshotHandler.
func NewSnapshotHandler(snapshots snapshotService, settings resultSettingService) *SnapshotHandler {
	return &SnapshotHandler{snapshots: snapshots, settings: settings}
}

// GetSetting godoc
// @Summary Get the active result session
// @Tags Snapshots
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /result-settings [get]
func (h *SnapshotHandler) GetSetting(c *gin.Context) {
	setting, err := h.settings.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, setting, nil)
}

// CreateSetting godoc
// @Summary Select the active result session
// @Description Only one setting may exist; use PUT to change it.
// @Tags Snapshots
// @Accept json
// @Produce json
// @Param payload body service.ResultSettingRequest true "Session selection"
// @Success 201 {object} response.Envelope
// @Router /result-settings [post]
func (h *SnapshotHandler) CreateSetting(c *gin.Context) {
	var req service.ResultSettingRequest
	if !bindJSON(c, &req) {
		return
	}
	setting, err := h.settings.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, setting)
}

// UpdateSetting godoc
// @Summary Change the active result session
// @Tags Snapshots
// @Accept json
// @Produce json
// @Param payload body service.ResultSettingRequest true "Session selection"
// @Success 200 {object} response.Envelope
// @Router /result-settings [put]
func (h *SnapshotHandler) UpdateSetting(c *gin.Context) {
	var req service.ResultSettingRequest
	if !bindJSON(c, &req) {
		return
	}
	setting, err := h.settings.Update(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, setting, nil)
}

// RegenerateStudent godoc
// @Summary Recompute the snapshot of a student for the active session
// @Tags Snapshots
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /snapshots/students/{id} [post]
func (h *SnapshotHandler) RegenerateStudent(c *gin.Context) {
	snapshot, err := h.snapshots.Regenerate(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snapshot, nil)
}

// RegenerateClass godoc
// @Summary Recompute the snapshots of a class
// @Tags Snapshots
// @Produce json
// @Param id path string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /snapshots/classes/{id} [post]
func (h *SnapshotHandler) RegenerateClass(c *gin.Context) {
	result, err := h.snapshots.RegenerateClass(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// GetStudent godoc
// @Summary Get the stored snapshot of a student
// @Tags Snapshots
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /snapshots/students/{id} [get]
func (h *SnapshotHandler) GetStudent(c *gin.Context) {
	snapshot, err := h.snapshots.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snapshot, nil)
}

// List godoc
// @Summary List stored snapshots of a class
// @Tags Snapshots
// @Produce json
// @Param class_id query string true "Class ID"
// @Success 200 {object} response.Envelope
// @Router /snapshots [get]
func (h *SnapshotHandler) List(c *gin.Context) {
	classID, ok := requiredQuery(c, "class_id")
	if !ok {
		return
	}
	snapshots, err := h.snapshots.List(c.Request.Context(), classID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snapshots, nil)
}
