package handler

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/scolarite-api/internal/dto"
	"github.com/noah-isme/scolarite-api/internal/models"
	"github.com/noah-isme/scolarite-api/internal/service"
	appErrors "github.com/noah-isme/scolarite-api/pkg/errors"
)

type documentServiceMock struct {
	transcript   *service.RenderedDocument
	link         *service.DocumentLink
	download     *service.RenderedDocument
	downloadErr  error
	verification *dto.CertificateVerification
	verified     string
	issued       dto.IssueCertificateRequest
}

func (m *documentServiceMock) Transcript(context.Context, string, string) (*service.RenderedDocument, error) {
	return m.transcript, nil
}

func (m *documentServiceMock) TranscriptLink(context.Context, string, string) (*service.DocumentLink, error) {
	return m.link, nil
}

func (m *documentServiceMock) IssueCertificate(_ context.Context, req dto.IssueCertificateRequest) (*dto.CertificateResponse, error) {
	m.issued = req
	return &dto.CertificateResponse{DownloadURL: "http://localhost/api/v1/documents/download?token=t"}, nil
}

func (m *documentServiceMock) GetCertificate(context.Context, string) (*dto.CertificateResponse, error) {
	return nil, appErrors.ErrNotFound
}

func (m *documentServiceMock) ListCertificates(context.Context, models.CertificateFilter) ([]models.CertificateDetail, error) {
	return nil, nil
}

func (m *documentServiceMock) RevokeCertificate(context.Context, string) error {
	return nil
}

func (m *documentServiceMock) VerifyCertificate(_ context.Context, number string) (*dto.CertificateVerification, error) {
	m.verified = number
	return m.verification, nil
}

func (m *documentServiceMock) Download(context.Context, string) (*service.RenderedDocument, error) {
	return m.download, m.downloadErr
}

func TestDocumentHandlerTranscriptStreamsPDF(t *testing.T) {
	handler := NewDocumentHandler(&documentServiceMock{
		transcript: &service.RenderedDocument{Filename: "releve_4821_SEM-20242025-AB12.pdf", Data: []byte("%PDF-1.3")},
	})

	c, w := newGinContext(http.MethodGet, "/documents/transcripts/stu-1?session_id=sem-1", nil)
	c.Params = gin.Params{{Key: "student_id", Value: "stu-1"}}
	handler.Transcript(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "releve_4821_SEM-20242025-AB12.pdf")
	assert.Equal(t, "%PDF-1.3", w.Body.String())
}

func TestDocumentHandlerTranscriptLink(t *testing.T) {
	expires := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	handler := NewDocumentHandler(&documentServiceMock{
		link: &service.DocumentLink{URL: "http://localhost/api/v1/documents/download?token=abc", ExpiresAt: expires},
	})

	c, w := newGinContext(http.MethodGet, "/documents/transcripts/stu-1?session_id=sem-1&link=true", nil)
	c.Params = gin.Params{{Key: "student_id", Value: "stu-1"}}
	handler.Transcript(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost/api/v1/documents/download?token=abc", decodeEnvelope(t, w).Data["url"])
}

func TestDocumentHandlerDownloadRejectsBadToken(t *testing.T) {
	handler := NewDocumentHandler(&documentServiceMock{downloadErr: appErrors.Clone(appErrors.ErrForbidden, "invalid or expired link")})

	c, w := newGinContext(http.MethodGet, "/documents/download?token=forged", nil)
	handler.Download(c)
	assert.Equal(t, http.StatusForbidden, w.Code)

	c, w = newGinContext(http.MethodGet, "/documents/download", nil)
	handler.Download(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDocumentHandlerVerifyCertificateNumberWithSlashes(t *testing.T) {
	mock := &documentServiceMock{verification: &dto.CertificateVerification{Number: "4821/ESTIM/DG/2024-2025", Valid: true}}
	handler := NewDocumentHandler(mock)

	c, w := newGinContext(http.MethodGet, "/certificates/verify/4821/ESTIM/DG/2024-2025", nil)
	c.Params = gin.Params{{Key: "number", Value: "/4821/ESTIM/DG/2024-2025"}}
	handler.VerifyCertificate(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "4821/ESTIM/DG/2024-2025", mock.verified)
	assert.Equal(t, true, decodeEnvelope(t, w).Data["valid"])
}

func TestDocumentHandlerIssueCertificate(t *testing.T) {
	mock := &documentServiceMock{}
	handler := NewDocumentHandler(mock)

	c, w := newGinContext(http.MethodPost, "/certificates", []byte(`{"student_id":"stu-1","type":"frequentation"}`))
	handler.IssueCertificate(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "frequentation", mock.issued.Type)

	c, w = newGinContext(http.MethodGet, "/certificates/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}
	handler.GetCertificate(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
