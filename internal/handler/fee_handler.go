package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scolarite-api/internal/models"
	"github.com/noah-isme/scolarite-api/internal/service"
	"github.com/noah-isme/scolarite-api/pkg/response"
)

type feeService interface {
	List(ctx context.Context, filter models.FeeFilter) ([]models.TuitionFeeDetail, *models.Pagination, error)
	Create(ctx context.Context, req service.CreateFeeRequest) (*models.TuitionFeeDetail, error)
	Update(ctx context.Context, id string, req service.UpdateFeeRequest) (*models.TuitionFeeDetail, error)
	Delete(ctx context.Context, id string) error
	StudentFinance(ctx context.Context, studentID string) (*models.StudentFinance, error)
	ClassFinance(ctx context.Context, classID string, month models.Month) (*models.ClassFinance, error)
}

// FeeHandler exposes tuition fee (écolage) endpoints.
type FeeHandler struct {
	fees feeService
}

// NewFeeHandler constructs FeeHandler.
func NewFeeHandler(fees feeService) *FeeHandler {
	return &FeeHandler{fees: fees}
}

// List godoc
// @Summary List tuition payments
// @Tags Fees
// @Produce json
// @Param student_id query string false "Filter by student"
// @Param class_id query string false "Filter by class"
// @Param month query string false "Month name, e.g. Octobre"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /fees [get]
func (h *FeeHandler) List(c *gin.Context) {
	filter := models.FeeFilter{
		StudentID: c.Query("student_id"),
		ClassID:   c.Query("class_id"),
		Month:     models.Month(c.Query("month")),
	}
	filter.Page, filter.PageSize = pageParams(c)

	fees, pagination, err := h.fees.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, fees, pagination)
}

// Create godoc
// @Summary Record a tuition payment
// @Tags Fees
// @Accept json
// @Produce json
// @Param payload body service.CreateFeeRequest true "Fee payload"
// @Success 201 {object} response.Envelope
// @Router /fees [post]
func (h *FeeHandler) Create(c *gin.Context) {
	var req service.CreateFeeRequest
	if !bindJSON(c, &req) {
		return
	}
	fee, err := h.fees.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, fee)
}

// Update godoc
// @Summary Update a tuition payment
// @Tags Fees
// @Accept json
// @Produce json
// @Param id path string true "Fee ID"
// @Param payload body service.UpdateFeeRequest true "Fee payload"
// @Success 200 {object} response.Envelope
// @Router /fees/{id} [put]
func (h *FeeHandler) Update(c *gin.Context) {
	var req service.UpdateFeeRequest
	if !bindJSON(c, &req) {
		return
	}
	fee, err := h.fees.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, fee, nil)
}

// Delete godoc
// @Summary Delete a tuition payment
// @Tags Fees
// @Param id path string true "Fee ID"
// @Success 204
// @Router /fees/{id} [delete]
func (h *FeeHandler) Delete(c *gin.Context) {
	if err := h.fees.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// StudentSummary godoc
// @Summary Paid, due and unpaid months of a student
// @Tags Fees
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /fees/students/{id}/summary [get]
func (h *FeeHandler) StudentSummary(c *gin.Context) {
	summary, err := h.fees.StudentFinance(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// ClassSummary godoc
// @Summary Finance status of every active student of a class
// @Tags Fees
// @Produce json
// @Param id path string true "Class ID"
// @Param month query string false "Restrict to one month"
// @Success 200 {object} response.Envelope
// @Router /fees/classes/{id} [get]
func (h *FeeHandler) ClassSummary(c *gin.Context) {
	summary, err := h.fees.ClassFinance(c.Request.Context(), c.Param("id"), models.Month(c.Query("month")))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}
