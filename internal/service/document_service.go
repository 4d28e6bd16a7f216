package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	qrcode "github.com/skip2/go-qrcode"
	"go.uber.org/zap"

	"github.com/noah-isme/scolarite-api/internal/dto"
	"github.com/noah-isme/scolarite-api/internal/models"
	appErrors "github.com/noah-isme/scolarite-api/pkg/errors"
	"github.com/noah-isme/scolarite-api/pkg/export"
)

const (
	transcriptPrefix  = "transcripts/"
	certificatePrefix = "certificates/"
	undefinedAverage  = "—"
)

type documentStorage interface {
	Save(filename string, data []byte) (string, error)
	Read(filename string) ([]byte, error)
	Exists(filename string) bool
	CleanupOlderThan(prefix string, ttl time.Duration) ([]string, error)
}

type documentSigner interface {
	Generate(documentID, relPath string) (string, time.Time, error)
	Parse(token string, allowExpired bool) (documentID, relPath string, expiresAt time.Time, err error)
}

type documentRenderer interface {
	RenderDocument(doc export.Document) ([]byte, error)
}

type studentResultProvider interface {
	StudentResult(ctx context.Context, studentID, sessionID string) (*models.StudentResult, error)
}

type certificateRepository interface {
	Create(ctx context.Context, cert *models.Certificate) error
	FindByID(ctx context.Context, id string) (*models.CertificateDetail, error)
	FindByNumber(ctx context.Context, number string) (*models.CertificateDetail, error)
	List(ctx context.Context, filter models.CertificateFilter) ([]models.CertificateDetail, error)
	UpdateFile(ctx context.Context, id, path string) error
	SetValid(ctx context.Context, id string, valid bool) error
}

// DocumentConfig holds the printed identity of the school and link settings.
type DocumentConfig struct {
	SchoolName        string
	CertificateSuffix string
	// DownloadURL is the absolute address of the public download route.
	DownloadURL string
	// TranscriptTTL bounds how long a stored transcript is kept for its download link.
	TranscriptTTL time.Duration
}

// RenderedDocument is a generated file ready to be streamed.
type RenderedDocument struct {
	Filename string
	Data     []byte
}

// DocumentLink points at a stored document through a signed URL.
type DocumentLink struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expires_at"`
}

// DocumentService renders transcripts and certificates from computed results.
type DocumentService struct {
	results      studentResultProvider
	students     scoreStudentReader
	classes      classReader
	certificates certificateRepository
	storage      documentStorage
	signer       documentSigner
	renderer     documentRenderer
	metrics      *MetricsService
	config       DocumentConfig
	validator    *validator.Validate
	logger       *zap.Logger
	now          func() time.Time
}

// NewDocumentService constructs a DocumentService.
func NewDocumentService(results studentResultProvider, students scoreStudentReader, classes classReader, certificates certificateRepository, storage documentStorage, signer documentSigner, renderer documentRenderer, metrics *MetricsService, config DocumentConfig, validate *validator.Validate, logger *zap.Logger) *DocumentService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.TranscriptTTL <= 0 {
		config.TranscriptTTL = time.Hour
	}
	return &DocumentService{
		results:      results,
		students:     students,
		classes:      classes,
		certificates: certificates,
		storage:      storage,
		signer:       signer,
		renderer:     renderer,
		metrics:      metrics,
		config:       config,
		validator:    validate,
		logger:       logger,
		now:          time.Now,
	}
}

// Transcript renders the transcript of a student for a session.
func (s *DocumentService) Transcript(ctx context.Context, studentID, sessionID string) (*RenderedDocument, error) {
	result, err := s.results.StudentResult(ctx, studentID, sessionID)
	if err != nil {
		return nil, err
	}
	data, err := s.renderer.RenderDocument(s.transcriptDocument(result))
	if err != nil {
		return nil, internalError(err, "failed to render transcript")
	}
	s.metrics.RecordDocument("transcript")
	filename := fmt.Sprintf("releve_%s_%s.pdf", result.Student.Matricule, result.Session.Code)
	return &RenderedDocument{Filename: filename, Data: data}, nil
}

// TranscriptLink renders and stores a transcript and returns a signed download link.
func (s *DocumentService) TranscriptLink(ctx context.Context, studentID, sessionID string) (*DocumentLink, error) {
	doc, err := s.Transcript(ctx, studentID, sessionID)
	if err != nil {
		return nil, err
	}
	stored, err := s.storage.Save(transcriptPrefix+doc.Filename, doc.Data)
	if err != nil {
		return nil, internalError(err, "failed to store transcript")
	}
	return s.link(studentID+":"+sessionID, stored)
}

// IssueCertificate creates (or returns the existing) certificate of a student and a fresh link.
func (s *DocumentService) IssueCertificate(ctx context.Context, req dto.IssueCertificateRequest) (*dto.CertificateResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid certificate payload")
	}
	certType := models.CertificateType(req.Type)
	student, err := s.students.FindByID(ctx, req.StudentID)
	if err != nil {
		return nil, lookupError(err, "student not found", "failed to load student")
	}
	number := CertificateNumber(student.Matricule, s.config.CertificateSuffix, student.SchoolYear)

	existing, err := s.certificates.FindByNumber(ctx, number)
	switch {
	case err == nil:
		if existing.Type != certType {
			return nil, appErrors.Clone(appErrors.ErrConflict, fmt.Sprintf("certificate %s was issued as %s", number, existing.Type))
		}
		return s.withLink(existing)
	case !errors.Is(err, sql.ErrNoRows):
		return nil, internalError(err, "failed to check certificate")
	}

	class, err := s.classes.FindByID(ctx, student.ClassID)
	if err != nil {
		return nil, lookupError(err, "class not found", "failed to load class")
	}

	cert := &models.Certificate{StudentID: student.ID, Type: certType, Number: number, Valid: true}
	if err := s.certificates.Create(ctx, cert); err != nil {
		return nil, internalError(err, "failed to create certificate")
	}

	pdf, err := s.renderCertificate(cert, student, class)
	if err != nil {
		return nil, err
	}
	stored, err := s.storage.Save(certificatePrefix+cert.ID+".pdf", pdf)
	if err != nil {
		return nil, internalError(err, "failed to store certificate")
	}
	if err := s.certificates.UpdateFile(ctx, cert.ID, stored); err != nil {
		return nil, internalError(err, "failed to record certificate file")
	}
	cert.FilePath = stored
	s.metrics.RecordDocument(string(certType))
	s.logger.Info("certificate issued", zap.String("certificate_id", cert.ID), zap.String("number", number))

	return s.withLink(&models.CertificateDetail{Certificate: *cert, StudentName: student.FullName, Matricule: student.Matricule})
}

// GetCertificate returns a certificate with a fresh download link.
func (s *DocumentService) GetCertificate(ctx context.Context, id string) (*dto.CertificateResponse, error) {
	cert, err := s.certificates.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "certificate not found", "failed to load certificate")
	}
	return s.withLink(cert)
}

// ListCertificates returns certificates matching the filter.
func (s *DocumentService) ListCertificates(ctx context.Context, filter models.CertificateFilter) ([]models.CertificateDetail, error) {
	certs, err := s.certificates.List(ctx, filter)
	if err != nil {
		return nil, internalError(err, "failed to list certificates")
	}
	return certs, nil
}

// RevokeCertificate marks a certificate invalid. Verification then reports it as revoked.
func (s *DocumentService) RevokeCertificate(ctx context.Context, id string) error {
	if err := s.certificates.SetValid(ctx, id, false); err != nil {
		return lookupError(err, "certificate not found", "failed to revoke certificate")
	}
	s.logger.Info("certificate revoked", zap.String("certificate_id", id))
	return nil
}

// VerifyCertificate answers a QR code scan.
func (s *DocumentService) VerifyCertificate(ctx context.Context, number string) (*dto.CertificateVerification, error) {
	cert, err := s.certificates.FindByNumber(ctx, number)
	if err != nil {
		return nil, lookupError(err, "certificate not found", "failed to load certificate")
	}
	return &dto.CertificateVerification{
		Number:      cert.Number,
		Valid:       cert.Valid,
		Type:        cert.Type,
		StudentName: cert.StudentName,
		Matricule:   cert.Matricule,
		IssuedAt:    cert.CreatedAt,
	}, nil
}

// Download resolves a signed token to the stored document.
func (s *DocumentService) Download(ctx context.Context, token string) (*RenderedDocument, error) {
	_, relPath, _, err := s.signer.Parse(token, false)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrForbidden.Code, appErrors.ErrForbidden.Status, "invalid or expired download link")
	}
	if !s.storage.Exists(relPath) {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "document no longer available")
	}
	data, err := s.storage.Read(relPath)
	if err != nil {
		return nil, internalError(err, "failed to read document")
	}
	return &RenderedDocument{Filename: path.Base(relPath), Data: data}, nil
}

// StartCleanup removes expired stored transcripts on every tick until ctx is done.
func (s *DocumentService) StartCleanup(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				removed, err := s.storage.CleanupOlderThan(transcriptPrefix, s.config.TranscriptTTL)
				if err != nil {
					s.logger.Warn("transcript cleanup failed", zap.Error(err))
					continue
				}
				if len(removed) > 0 {
					s.logger.Info("expired transcripts removed", zap.Int("count", len(removed)))
				}
			}
		}
	}()
}

// CertificateNumber formats the printed number of a certificate.
func CertificateNumber(matricule, suffix, schoolYear string) string {
	return fmt.Sprintf("%s/%s/%s", matricule, suffix, schoolYear)
}

func (s *DocumentService) withLink(cert *models.CertificateDetail) (*dto.CertificateResponse, error) {
	resp := &dto.CertificateResponse{CertificateDetail: *cert}
	if cert.FilePath == "" || !cert.Valid {
		return resp, nil
	}
	link, err := s.link(cert.ID, cert.FilePath)
	if err != nil {
		return nil, err
	}
	resp.DownloadURL = link.URL
	resp.ExpiresAt = link.ExpiresAt
	return resp, nil
}

func (s *DocumentService) link(documentID, relPath string) (*DocumentLink, error) {
	token, expiresAt, err := s.signer.Generate(documentID, relPath)
	if err != nil {
		return nil, internalError(err, "failed to sign download link")
	}
	return &DocumentLink{URL: s.config.DownloadURL + "?token=" + url.QueryEscape(token), ExpiresAt: expiresAt}, nil
}

func (s *DocumentService) renderCertificate(cert *models.Certificate, student *models.StudentDetail, class *models.ClassDetail) ([]byte, error) {
	issued := s.now()
	qr, err := qrcode.Encode(fmt.Sprintf("N° : %s\nNom et Prénoms : %s\nFait le : %s",
		cert.Number, student.FullName, issued.Format("02/01/2006")), qrcode.High, 256)
	if err != nil {
		return nil, internalError(err, "failed to encode verification code")
	}

	birthDate := "Non renseignée"
	if student.BirthDate != nil {
		birthDate = student.BirthDate.Format("02/01/2006")
	}
	birthPlace := student.BirthPlace
	if birthPlace == "" {
		birthPlace = "Non renseigné"
	}
	statement := "est régulièrement inscrit(e) dans notre établissement pour l'année académique " + student.SchoolYear + "."
	if cert.Type == models.CertificateAttendance {
		statement = "fréquente régulièrement les cours de notre établissement au titre de l'année académique " + student.SchoolYear + "."
	}

	doc := export.Document{
		Issuer:   s.config.SchoolName,
		Title:    cert.Type.Title(),
		Subtitle: "N° " + cert.Number,
		Fields: []export.Field{
			{Label: "Nom et prénoms", Value: student.FullName},
			{Label: "Matricule", Value: student.Matricule},
			{Label: "Né(e) le", Value: birthDate},
			{Label: "À", Value: birthPlace},
			{Label: "Option", Value: class.ProgramName},
			{Label: "Niveau", Value: class.Level.Label()},
		},
		Footer: []string{
			"Le Directeur Général certifie que l'étudiant(e) désigné(e) ci-dessus " + statement,
			"En foi de quoi, la présente attestation lui est délivrée pour servir et valoir ce que de droit.",
			"Fait le " + issued.Format("02/01/2006"),
		},
		QRCode: qr,
	}
	data, err := s.renderer.RenderDocument(doc)
	if err != nil {
		return nil, internalError(err, "failed to render certificate")
	}
	return data, nil
}

func (s *DocumentService) transcriptDocument(result *models.StudentResult) export.Document {
	general := undefinedAverage
	if result.GeneralAverage != nil {
		general = formatScore(*result.GeneralAverage)
	}
	doc := export.Document{
		Issuer:   s.config.SchoolName,
		Title:    "Relevé de notes",
		Subtitle: fmt.Sprintf("%s %s", result.Session.Title, result.Session.SchoolYear),
		Fields: []export.Field{
			{Label: "Nom et prénoms", Value: result.Student.FullName},
			{Label: "Matricule", Value: result.Student.Matricule},
			{Label: "Classe", Value: result.Student.ClassName},
			{Label: "Année scolaire", Value: result.Student.SchoolYear},
		},
		Sections: []export.Section{
			{Heading: "Matières validées", Data: subjectDataset(result.Validated), Empty: "Aucune matière validée"},
			{Heading: "Matières non validées", Data: subjectDataset(result.NonValidated), Empty: "Aucune matière non validée"},
		},
		Summary: []export.Field{
			{Label: "Total des coefficients", Value: strconv.Itoa(result.TotalCoefficient)},
			{Label: "Total pondéré", Value: formatScore(result.WeightedSum)},
			{Label: "Moyenne générale", Value: general},
			{Label: "Mention", Value: string(result.Mention)},
		},
	}
	if len(result.PendingSubjects) > 0 {
		doc.Footer = append(doc.Footer, "Matières en attente de notes : "+strings.Join(result.PendingSubjects, ", "))
	}
	return doc
}

var transcriptHeaders = []string{"Matière", "Coef.", "Devoir", "Examen", "Moyenne", "Moy. pondérée"}

func subjectDataset(results []models.SubjectResult) export.Dataset {
	rows := make([]map[string]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, map[string]string{
			"Matière":       r.SubjectName,
			"Coef.":         strconv.Itoa(r.Coefficient),
			"Devoir":        formatScore(r.CourseworkScore),
			"Examen":        formatScore(r.ExamScore),
			"Moyenne":       formatScore(r.RawAverage),
			"Moy. pondérée": formatScore(r.WeightedAverage),
		})
	}
	return export.Dataset{Headers: transcriptHeaders, Rows: rows}
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
