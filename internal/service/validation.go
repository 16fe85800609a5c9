package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/admission-planner-api/internal/models"
	appErrors "github.com/noah-isme/admission-planner-api/pkg/errors"
)

// programReader loads a single catalog program.
type programReader interface {
	FindByID(ctx context.Context, id string) (*models.Program, error)
}

// NewValidator reports field errors under their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// englishScoreMax bounds each accepted English test: IELTS bands run 0-9, TOEFL iBT 0-120.
var englishScoreMax = map[models.EnglishTest]float64{
	models.EnglishTestIELTS: 9,
	models.EnglishTestTOEFL: 120,
}

func failure(base *appErrors.Error, text models.LocalizedText) *appErrors.Error {
	return appErrors.Localize(base, text.EN, text.TR)
}

// validationError converts validator output into a VALIDATION_ERROR carrying one message pair per field.
func validationError(err error, message models.LocalizedText) error {
	wrapped := appErrors.LocalizeWrap(err, appErrors.ErrValidation, message.EN, message.TR)
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return wrapped
	}
	fields := make(map[string]string, len(fieldErrs))
	fieldsTR := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		text := describeRule(fe.Tag(), fe.Param())
		fields[fieldPath(fe)] = text.EN
		fieldsTR[fieldPath(fe)] = text.TR
	}
	return appErrors.WithFields(wrapped, fields, fieldsTR)
}

// fieldPath drops the root struct name from the namespace: "StudentProfile.english.score" becomes "english.score".
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func describeRule(tag, param string) models.LocalizedText {
	switch tag {
	case "required":
		return models.Text("is required", "zorunludur")
	case "oneof":
		return models.Text(fmt.Sprintf("must be one of: %s", param), fmt.Sprintf("şunlardan biri olmalıdır: %s", param))
	case "gte":
		return models.Text(fmt.Sprintf("must be at least %s", param), fmt.Sprintf("en az %s olmalıdır", param))
	case "lte":
		return models.Text(fmt.Sprintf("must be at most %s", param), fmt.Sprintf("en fazla %s olmalıdır", param))
	case "max":
		return models.Text(fmt.Sprintf("must not exceed %s", param), fmt.Sprintf("%s değerini aşmamalıdır", param))
	default:
		return models.Text(fmt.Sprintf("failed %s validation", tag), fmt.Sprintf("%s doğrulaması başarısız", tag))
	}
}

var (
	invalidProfileText = models.Text("invalid student profile", "geçersiz öğrenci profili")
	invalidFiltersText = models.Text("invalid search filters", "geçersiz arama filtreleri")
)

func validateProfile(v *validator.Validate, profile models.StudentProfile) error {
	if err := v.Struct(profile); err != nil {
		return validationError(err, invalidProfileText)
	}
	if score := profile.EnglishScore; score != nil {
		if limit, ok := englishScoreMax[score.Test]; ok && score.Score > limit {
			text := describeRule("lte", strconv.FormatFloat(limit, 'f', -1, 64))
			return appErrors.WithFields(failure(appErrors.ErrValidation, invalidProfileText),
				map[string]string{"english_score.score": text.EN},
				map[string]string{"english_score.score": text.TR})
		}
	}
	if profile.BudgetMin != nil && profile.BudgetMax != nil && *profile.BudgetMin > *profile.BudgetMax {
		return failure(appErrors.ErrValidation, models.Text(
			"budget_min must not exceed budget_max",
			"budget_min, budget_max değerini aşmamalıdır",
		))
	}
	return nil
}

func validateFilters(v *validator.Validate, filters models.SearchFilters) error {
	if err := v.Struct(filters); err != nil {
		return validationError(err, invalidFiltersText)
	}
	if filters.TuitionMin != nil && filters.TuitionMax != nil && *filters.TuitionMin > *filters.TuitionMax {
		return failure(appErrors.ErrValidation, models.Text(
			"tuition_min must not exceed tuition_max",
			"tuition_min, tuition_max değerini aşmamalıdır",
		))
	}
	return nil
}

var programNotFoundText = models.Text("program not found", "program bulunamadı")

// loadProgram maps a missing row to NOT_FOUND and storage failures to INTERNAL_ERROR.
func loadProgram(ctx context.Context, repo programReader, id string) (*models.Program, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, failure(appErrors.ErrValidation, models.Text("program id is required", "program kimliği zorunludur"))
	}
	program, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, failure(appErrors.ErrNotFound, programNotFoundText)
		}
		return nil, appErrors.LocalizeWrap(err, appErrors.ErrInternal, "failed to load program", "program yüklenemedi")
	}
	if program == nil {
		return nil, failure(appErrors.ErrNotFound, programNotFoundText)
	}
	return program, nil
}
