package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/scolarite-api/internal/dto"
	"github.com/noah-isme/scolarite-api/internal/models"
	"github.com/noah-isme/scolarite-api/internal/service"
	appErrors "github.com/noah-isme/scolarite-api/pkg/errors"
	"github.com/noah-isme/scolarite-api/pkg/response"
)

const pdfContentType = "application/pdf"

type documentService interface {
	Transcript(ctx context.Context, studentID, sessionID string) (*service.RenderedDocument, error)
	TranscriptLink(ctx context.Context, studentID, sessionID string) (*service.DocumentLink, error)
	IssueCertificate(ctx context.Context, req dto.IssueCertificateRequest) (*dto.CertificateResponse, error)
	GetCertificate(ctx context.Context, id string) (*dto.CertificateResponse, error)
	ListCertificates(ctx context.Context, filter models.CertificateFilter) ([]models.CertificateDetail, error)
	RevokeCertificate(ctx context.Context, id string) error
	VerifyCertificate(ctx context.Context, number string) (*dto.CertificateVerification, error)
	Download(ctx context.Context, token string) (*service.RenderedDocument, error)
}

// DocumentHandler exposes transcripts, certificates and signed downloads.
type DocumentHandler struct {
	documents documentService
}

// NewDocumentHandler constructs DocumentHandler.
func NewDocumentHandler(documents documentService) *DocumentHandler {
	return &DocumentHandler{documents: documents}
}

// Transcript godoc
// @Summary Transcript (relevé de notes) of a student
// @Description Streams the PDF, or returns a signed download link when link=true.
// @Tags Documents
// @Produce application/pdf
// @Produce json
// @Param student_id path string true "Student ID"
// @Param session_id query string true "Session ID"
// @Param link query bool false "Return a signed link instead of the file"
// @Success 200 {file} file
// @Router /documents/transcripts/{student_id} [get]
func (h *DocumentHandler) Transcript(c *gin.Context) {
	sessionID, ok := requiredQuery(c, "session_id")
	if !ok {
		return
	}
	studentID := c.Param("student_id")
	if asLink := queryBool(c, "link"); asLink != nil && *asLink {
		link, err := h.documents.TranscriptLink(c.Request.Context(), studentID, sessionID)
		if err != nil {
			response.Error(c, err)
			return
		}
		response.JSON(c, http.StatusOK, link, nil)
		return
	}

	doc, err := h.documents.Transcript(c.Request.Context(), studentID, sessionID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, doc.Filename, pdfContentType, doc.Data)
}

// Download godoc
// @Summary Download a document through a signed token
// @Tags Documents
// @Produce application/pdf
// @Param token query string true "Signed token"
// @Success 200 {file} file
// @Router /documents/download [get]
func (h *DocumentHandler) Download(c *gin.Context) {
	token, ok := requiredQuery(c, "token")
	if !ok {
		return
	}
	doc, err := h.documents.Download(c.Request.Context(), token)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, doc.Filename, pdfContentType, doc.Data)
}

// IssueCertificate godoc
// @Summary Issue an attestation for a student
// @Description Issuing twice for the same student and year returns the existing certificate.
// @Tags Certificates
// @Accept json
// @Produce json
// @Param payload body dto.IssueCertificateRequest true "Certificate payload"
// @Success 201 {object} response.Envelope
// @Router /certificates [post]
func (h *DocumentHandler) IssueCertificate(c *gin.Context) {
	var req dto.IssueCertificateRequest
	if !bindJSON(c, &req) {
		return
	}
	cert, err := h.documents.IssueCertificate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, cert)
}

// ListCertificates godoc
// @Summary List certificates
// @Tags Certificates
// @Produce json
// @Param student_id query string false "Filter by student"
// @Param type query string false "inscription or frequentation"
// @Param valid query bool false "Filter by validity"
// @Success 200 {object} response.Envelope
// @Router /certificates [get]
func (h *DocumentHandler) ListCertificates(c *gin.Context) {
	certificates, err := h.documents.ListCertificates(c.Request.Context(), models.CertificateFilter{
		StudentID: c.Query("student_id"),
		Type:      models.CertificateType(c.Query("type")),
		Valid:     queryBool(c, "valid"),
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, certificates, nil)
}

// GetCertificate godoc
// @Summary Get certificate with a fresh download link
// @Tags Certificates
// @Produce json
// @Param id path string true "Certificate ID"
// @Success 200 {object} response.Envelope
// @Router /certificates/{id} [get]
func (h *DocumentHandler) GetCertificate(c *gin.Context) {
	cert, err := h.documents.GetCertificate(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, cert, nil)
}

// RevokeCertificate godoc
// @Summary Revoke a certificate
// @Tags Certificates
// @Param id path string true "Certificate ID"
// @Success 204
// @Router /certificates/{id}/revoke [post]
func (h *DocumentHandler) RevokeCertificate(c *gin.Context) {
	if err := h.documents.RevokeCertificate(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// VerifyCertificate godoc
// @Summary Verify a certificate number read from its QR code
// @Tags Certificates
// @Produce json
// @Param number path string true "Certificate number, e.g. 4821/ESTIM/DG/2024-2025"
// @Success 200 {object} response.Envelope
// @Router /certificates/verify/{number} [get]
func (h *DocumentHandler) VerifyCertificate(c *gin.Context) {
	// registered as a catch-all since numbers contain slashes
	number := strings.TrimPrefix(c.Param("number"), "/")
	if number == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "number is required"))
		return
	}
	verification, err := h.documents.VerifyCertificate(c.Request.Context(), number)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, verification, nil)
}
