package server

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"connectrpc.com/connect"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"google.golang.org/genproto/googleapis/rpc/errdetails"

	"github.com/at-ishikawa/verbdrill/internal/conjugation"
)

type requestValidator struct {
	validate   *validator.Validate
	translator ut.Translator
}

func newRequestValidator() (*requestValidator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	if err := validate.RegisterValidation("tense", isTense); err != nil {
		return nil, fmt.Errorf("failed to register tense validation: %w", err)
	}
	if err := validate.RegisterTranslation("tense", trans, func(ut ut.Translator) error {
		return ut.Add("tense", "{0} must be one of the practiced tenses", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("tense", fieldPath(fe.Namespace()))
		return t
	}); err != nil {
		return nil, fmt.Errorf("failed to register tense translation: %w", err)
	}
	return &requestValidator{validate: validate, translator: trans}, nil
}

func isTense(fl validator.FieldLevel) bool {
	_, err := conjugation.ParseTense(fl.Field().String())
	return err == nil
}

// validateRequest returns an InvalidArgument error with a BadRequest detail listing every violation.
func (v *requestValidator) validateRequest(msg any) *connect.Error {
	err := v.validate.Struct(msg)
	if err == nil {
		return nil
	}

	connectErr := connect.NewError(connect.CodeInvalidArgument, err)
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return connectErr
	}

	descriptions := make([]string, 0, len(validationErrors))
	fieldViolations := make([]*errdetails.BadRequest_FieldViolation, 0, len(validationErrors))
	for _, e := range validationErrors {
		description := e.Translate(v.translator)
		descriptions = append(descriptions, description)
		fieldViolations = append(fieldViolations, &errdetails.BadRequest_FieldViolation{
			Field:       fieldPath(e.Namespace()),
			Description: description,
		})
	}
	connectErr = connect.NewError(connect.CodeInvalidArgument, errors.New(strings.Join(descriptions, ", ")))
	if detail, detailErr := connect.NewErrorDetail(&errdetails.BadRequest{
		FieldViolations: fieldViolations,
	}); detailErr == nil {
		connectErr.AddDetail(detail)
	}
	return connectErr
}

// fieldPath drops the struct name from a namespace such as "StartRoundRequest.tenses[0]".
func fieldPath(namespace string) string {
	if _, path, ok := strings.Cut(namespace, "."); ok {
		return path
	}
	return namespace
}
