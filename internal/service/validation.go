package service

import (
	"regexp"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/scolarite-api/internal/models"
)

var schoolYearPattern = regexp.MustCompile(`^\d{4}-\d{4}$`)

// NewValidator returns a validator with the domain tags registered:
// session_title, evaluation_kind, certificate_type, fee_month, class_level and school_year.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("session_title", func(fl validator.FieldLevel) bool {
		return models.SessionTitle(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("evaluation_kind", func(fl validator.FieldLevel) bool {
		return models.EvaluationKind(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("certificate_type", func(fl validator.FieldLevel) bool {
		return models.CertificateType(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("fee_month", func(fl validator.FieldLevel) bool {
		return models.Month(fl.Field().String()).Valid()
	})
	_ = v.RegisterValidation("class_level", func(fl validator.FieldLevel) bool {
		return models.ClassLevel(fl.Field().Int()).Valid()
	})
	_ = v.RegisterValidation("school_year", func(fl validator.FieldLevel) bool {
		return isSchoolYear(fl.Field().String())
	})
	return v
}

// isSchoolYear accepts "YYYY-YYYY" where the second year follows the first.
func isSchoolYear(value string) bool {
	if !schoolYearPattern.MatchString(value) {
		return false
	}
	first, _ := strconv.Atoi(value[:4])
	second, _ := strconv.Atoi(value[5:])
	return second == first+1
}

func newPagination(page, size, total int) *models.Pagination {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	return &models.Pagination{Page: page, PageSize: size, TotalCount: total}
}
