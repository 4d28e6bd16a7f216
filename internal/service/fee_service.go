package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/scolarite-api/internal/models"
	"github.com/noah-isme/scolarite-api/pkg/database"
	appErrors "github.com/noah-isme/scolarite-api/pkg/errors"
)

type feeRepository interface {
	Create(ctx context.Context, fee *models.TuitionFee) error
	Update(ctx context.Context, fee *models.TuitionFee) error
	Delete(ctx context.Context, id string) error
	FindByID(ctx context.Context, id string) (*models.TuitionFeeDetail, error)
	ExistsForMonth(ctx context.Context, studentID string, month models.Month, excludeID string) (bool, error)
	List(ctx context.Context, filter models.FeeFilter) ([]models.TuitionFeeDetail, int, error)
	ListByStudent(ctx context.Context, studentID string) ([]models.TuitionFee, error)
	ListByClass(ctx context.Context, classID string) ([]models.TuitionFeeDetail, error)
}

type feeEventPublisher interface {
	Publish(event models.FeeEvent)
}

// CreateFeeRequest records a monthly payment.
type CreateFeeRequest struct {
	StudentID  string     `json:"student_id" validate:"required"`
	Month      string     `json:"month" validate:"required,fee_month"`
	Amount     float64    `json:"amount" validate:"gt=0"`
	PaidAt     *time.Time `json:"paid_at"`
	IsComplete *bool      `json:"is_complete"`
}

// UpdateFeeRequest modifies a payment. The student cannot change.
type UpdateFeeRequest struct {
	Month      string     `json:"month" validate:"required,fee_month"`
	Amount     float64    `json:"amount" validate:"gt=0"`
	PaidAt     *time.Time `json:"paid_at"`
	IsComplete *bool      `json:"is_complete"`
}

// FeeConfig holds tuition thresholds.
type FeeConfig struct {
	// MonthlyAmount is the expected instalment. Zero means only recorded fees are due.
	MonthlyAmount float64
	LateThreshold float64
}

// FeeService manages tuition payments and balances.
type FeeService struct {
	repo      feeRepository
	students  resultStudentReader
	classes   classReader
	events    feeEventPublisher
	config    FeeConfig
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewFeeService constructs a FeeService.
func NewFeeService(repo feeRepository, students resultStudentReader, classes classReader, events feeEventPublisher, config FeeConfig, validate *validator.Validate, logger *zap.Logger) *FeeService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if config.LateThreshold <= 0 {
		config.LateThreshold = 10000
	}
	return &FeeService{
		repo:      repo,
		students:  students,
		classes:   classes,
		events:    events,
		config:    config,
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// List returns payments matching the filter.
func (s *FeeService) List(ctx context.Context, filter models.FeeFilter) ([]models.TuitionFeeDetail, *models.Pagination, error) {
	if filter.Month != "" && !filter.Month.Valid() {
		return nil, nil, appErrors.Clone(appErrors.ErrValidation, "invalid month")
	}
	fees, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, internalError(err, "failed to list tuition fees")
	}
	return fees, newPagination(filter.Page, filter.PageSize, total), nil
}

// Get returns a payment.
func (s *FeeService) Get(ctx context.Context, id string) (*models.TuitionFeeDetail, error) {
	fee, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "tuition fee not found", "failed to load tuition fee")
	}
	return fee, nil
}

// Create records a payment, rejecting a second payment for the same month.
func (s *FeeService) Create(ctx context.Context, req CreateFeeRequest) (*models.TuitionFeeDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid tuition fee payload")
	}
	student, err := s.students.FindByID(ctx, req.StudentID)
	if err != nil {
		return nil, lookupError(err, "student not found", "failed to load student")
	}
	month := models.Month(req.Month)
	if err := s.ensureMonthFree(ctx, student.ID, month, ""); err != nil {
		return nil, err
	}

	fee := &models.TuitionFee{
		StudentID:  student.ID,
		Month:      month,
		Amount:     req.Amount,
		PaidAt:     s.paidAt(req.PaidAt),
		IsComplete: req.IsComplete == nil || *req.IsComplete,
	}
	if err := s.repo.Create(ctx, fee); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "a payment already exists for this month")
		}
		return nil, internalError(err, "failed to create tuition fee")
	}
	s.logger.Info("tuition fee recorded", zap.String("fee_id", fee.ID), zap.String("student_id", student.ID), zap.String("month", string(month)))
	s.publish(models.FeeCreated, *fee, student)
	return &models.TuitionFeeDetail{TuitionFee: *fee, StudentName: student.FullName, Matricule: student.Matricule, ClassID: student.ClassID}, nil
}

// Update modifies a payment.
func (s *FeeService) Update(ctx context.Context, id string, req UpdateFeeRequest) (*models.TuitionFeeDetail, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid tuition fee payload")
	}
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, lookupError(err, "tuition fee not found", "failed to load tuition fee")
	}
	month := models.Month(req.Month)
	if month != existing.Month {
		if err := s.ensureMonthFree(ctx, existing.StudentID, month, id); err != nil {
			return nil, err
		}
	}

	fee := existing.TuitionFee
	fee.Month = month
	fee.Amount = req.Amount
	if req.PaidAt != nil {
		fee.PaidAt = req.PaidAt.UTC()
	}
	if req.IsComplete != nil {
		fee.IsComplete = *req.IsComplete
	}
	if err := s.repo.Update(ctx, &fee); err != nil {
		if database.IsUniqueViolation(err) {
			return nil, appErrors.Clone(appErrors.ErrConflict, "a payment already exists for this month")
		}
		return nil, internalError(err, "failed to update tuition fee")
	}
	s.publish(models.FeeUpdated, fee, &models.StudentDetail{Student: models.Student{ID: existing.StudentID, FullName: existing.StudentName, Matricule: existing.Matricule}})
	return &models.TuitionFeeDetail{TuitionFee: fee, StudentName: existing.StudentName, Matricule: existing.Matricule, ClassID: existing.ClassID}, nil
}

// Delete removes a payment.
func (s *FeeService) Delete(ctx context.Context, id string) error {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return lookupError(err, "tuition fee not found", "failed to load tuition fee")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return lookupError(err, "tuition fee not found", "failed to delete tuition fee")
	}
	s.publish(models.FeeDeleted, existing.TuitionFee, &models.StudentDetail{Student: models.Student{ID: existing.StudentID, FullName: existing.StudentName, Matricule: existing.Matricule}})
	return nil
}

// StudentFinance summarises the payments of a student over the school year.
func (s *FeeService) StudentFinance(ctx context.Context, studentID string) (*models.StudentFinance, error) {
	student, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		return nil, lookupError(err, "student not found", "failed to load student")
	}
	fees, err := s.repo.ListByStudent(ctx, student.ID)
	if err != nil {
		return nil, internalError(err, "failed to load tuition fees")
	}
	summary := s.summarise(student, fees, "")
	return &summary, nil
}

// ClassFinance summarises the payments of every active student of a class, optionally for one month.
func (s *FeeService) ClassFinance(ctx context.Context, classID string, month models.Month) (*models.ClassFinance, error) {
	if month != "" && !month.Valid() {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid month")
	}
	class, err := s.classes.FindByID(ctx, classID)
	if err != nil {
		return nil, lookupError(err, "class not found", "failed to load class")
	}
	students, err := s.students.ListByClass(ctx, class.ID)
	if err != nil {
		return nil, internalError(err, "failed to list students")
	}
	fees, err := s.repo.ListByClass(ctx, class.ID)
	if err != nil {
		return nil, internalError(err, "failed to load tuition fees")
	}
	byStudent := make(map[string][]models.TuitionFee, len(students))
	for _, fee := range fees {
		byStudent[fee.StudentID] = append(byStudent[fee.StudentID], fee.TuitionFee)
	}

	result := &models.ClassFinance{ClassID: class.ID, ClassName: class.Name, Students: make([]models.StudentFinance, 0, len(students))}
	for i := range students {
		if !students[i].Active {
			continue
		}
		summary := s.summarise(&students[i], byStudent[students[i].ID], month)
		result.Students = append(result.Students, summary)
		result.TotalPaid += summary.TotalPaid
		result.TotalDue += summary.TotalDue
	}
	return result, nil
}

// FinanceStatusFor classifies a balance against the late threshold.
func FinanceStatusFor(balance, lateThreshold float64) models.FinanceStatus {
	switch {
	case balance >= 0:
		return models.FinanceUpToDate
	case balance > -lateThreshold:
		return models.FinanceWarning
	default:
		return models.FinanceLate
	}
}

func (s *FeeService) summarise(student *models.StudentDetail, fees []models.TuitionFee, month models.Month) models.StudentFinance {
	months := models.AcademicMonths
	if month != "" {
		months = []models.Month{month}
	}
	recorded := make(map[models.Month]models.TuitionFee, len(fees))
	for _, fee := range fees {
		if month != "" && fee.Month != month {
			continue
		}
		recorded[fee.Month] = fee
	}

	summary := models.StudentFinance{
		StudentID:    student.ID,
		StudentName:  student.FullName,
		Matricule:    student.Matricule,
		UnpaidMonths: []models.Month{},
	}
	var recordedDue float64
	for _, m := range months {
		fee, ok := recorded[m]
		if !ok {
			if s.config.MonthlyAmount > 0 {
				summary.UnpaidMonths = append(summary.UnpaidMonths, m)
			}
			continue
		}
		recordedDue += fee.Amount
		summary.TotalPaid += fee.Amount - fee.Remaining()
		if fee.Remaining() > 0 {
			summary.UnpaidMonths = append(summary.UnpaidMonths, m)
		}
	}
	summary.TotalDue = recordedDue
	if s.config.MonthlyAmount > 0 {
		summary.TotalDue = s.config.MonthlyAmount * float64(len(months))
	}
	summary.TotalPaid = round2(summary.TotalPaid)
	summary.TotalDue = round2(summary.TotalDue)
	summary.Balance = round2(summary.TotalPaid - summary.TotalDue)
	summary.Status = FinanceStatusFor(summary.Balance, s.config.LateThreshold)
	return summary
}

func (s *FeeService) ensureMonthFree(ctx context.Context, studentID string, month models.Month, excludeID string) error {
	exists, err := s.repo.ExistsForMonth(ctx, studentID, month, excludeID)
	if err != nil {
		return internalError(err, "failed to check tuition fee month")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "a payment already exists for this month")
	}
	return nil
}

func (s *FeeService) paidAt(value *time.Time) time.Time {
	if value != nil {
		return value.UTC()
	}
	return s.now().UTC()
}

func (s *FeeService) publish(action models.FeeAction, fee models.TuitionFee, student *models.StudentDetail) {
	if s.events == nil {
		return
	}
	s.events.Publish(models.FeeEvent{
		Action:     action,
		Fee:        fee,
		StudentID:  student.ID,
		Student:    student.FullName,
		Matricule:  student.Matricule,
		OccurredAt: s.now().UTC(),
	})
}
