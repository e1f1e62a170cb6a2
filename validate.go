package wortlex

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
)

type queryValidator struct {
	validate   *validator.Validate
	translator ut.Translator
}

var loadValidator = sync.OnceValues(newQueryValidator)

func newQueryValidator() (*queryValidator, error) {
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
	if err := validate.RegisterValidation("direction", func(fl validator.FieldLevel) bool {
		return Direction(fl.Field().String()).Valid()
	}); err != nil {
		return nil, fmt.Errorf("failed to register direction validation: %w", err)
	}
	if err := validate.RegisterTranslation("direction", trans, func(ut ut.Translator) error {
		return ut.Add("direction", "{0} must be a supported language pair", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("direction", fe.Field())
		return t
	}); err != nil {
		return nil, fmt.Errorf("failed to register direction translation: %w", err)
	}

	return &queryValidator{validate: validate, translator: trans}, nil
}

// ValidateQuery trims q.Text and checks the query. Violations are returned as
// *ValidationError; nothing here performs I/O.
func ValidateQuery(q LookupQuery) (LookupQuery, error) {
	q.Text = strings.TrimSpace(q.Text)

	v, err := loadValidator()
	if err != nil {
		return q, &ConfigurationError{Field: "validator", Message: "could not build validator", Cause: err}
	}

	if err := v.validate.Struct(q); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) || len(validationErrors) == 0 {
			return q, &ValidationError{Message: err.Error()}
		}
		first := validationErrors[0]
		return q, &ValidationError{Field: first.Field(), Message: first.Translate(v.translator)}
	}
	return q, nil
}
