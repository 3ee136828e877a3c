// Package validators owns the shared validator instance, its custom tags and
// the English translations used in error responses.
package validators

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/turrs/bank-skd/internal/pkg/apperrors"
)

// custom tags
const (
	SkdCategoryTag = "skdcategory"
	OptionKeyTag   = "optionkey"
	VoucherCodeTag = "vouchercode"
)

var (
	voucherCodeRegex = regexp.MustCompile(`^[A-Z0-9-]{3,32}$`)

	once       sync.Once
	validate   *validator.Validate
	translator ut.Translator
)

// ValidationError carries a translated message per offending field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return apperrors.ErrInvalid }

// Get returns the process wide validator, building it on first use.
func Get() (*validator.Validate, ut.Translator) {
	once.Do(func() {
		validate = validator.New()
		locale := en.New()
		translator, _ = ut.New(locale, locale).GetTranslator("en")
		_ = en_translations.RegisterDefaultTranslations(validate, translator)

		// json names read better in API responses than Go field names
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})

		register(SkdCategoryTag, skdCategoryValidation, "{0} must be one of TWK, TIU or TKP")
		register(OptionKeyTag, optionKeyValidation, "{0} must be an option key between A and E")
		register(VoucherCodeTag, voucherCodeValidation, "{0} must be 3 to 32 upper-case letters, digits or dashes")
		overrideTranslation("required", "{0} is required")
	})
	return validate, translator
}

// Struct validates s and converts validator failures into a *ValidationError.
func Struct(s interface{}) error {
	v, trans := Get()

	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		fields := make(map[string]string, len(validationErrors))
		for _, fieldErr := range validationErrors {
			fields[fieldErr.Field()] = fieldErr.Translate(trans)
		}
		return &ValidationError{Fields: fields}
	}
	return fmt.Errorf("validation error: %w", err)
}

// Field builds a single field ValidationError for rules that span several fields.
func Field(name, msg string) error {
	return &ValidationError{Fields: map[string]string{name: msg}}
}

func register(tag string, fn validator.Func, text string) {
	_ = validate.RegisterValidation(tag, fn)
	overrideTranslation(tag, text)
}

func overrideTranslation(tag, text string) {
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

func skdCategoryValidation(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "TWK", "TIU", "TKP":
		return true
	}
	return false
}

func optionKeyValidation(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return len(s) == 1 && s[0] >= 'A' && s[0] <= 'E'
}

func voucherCodeValidation(fl validator.FieldLevel) bool {
	return voucherCodeRegex.MatchString(fl.Field().String())
}
