package validation

import (
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	errors "github.com/frahmantamala/interview-dashboard/internal"
	"github.com/frahmantamala/interview-dashboard/internal/rbac"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	// custom validation tags
	notBlankTag = "notblank"
	minTrimTag  = "mintrim"
	roleTag     = "role"
)

// MessageOverrider lets a form replace the generic translated message for a
// field/tag pair, keyed as "field.tag" using JSON field names.
type MessageOverrider interface {
	ValidationMessages() map[string]string
}

func init() {
	Validate = validator.New()

	_en := en.New()
	uni := ut.New(_en, _en)
	Translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(Validate, Translator)

	// Use JSON tag names for errors instead of Go struct names.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = Validate.RegisterValidation(notBlankTag, notBlankValidation)
	_ = Validate.RegisterValidation(minTrimTag, minTrimValidation)
	_ = Validate.RegisterValidation(roleTag, roleValidation)

	registerCustomValidationsTranslations(notBlankTag, minTrimTag, roleTag)
}

// the translator needs a registration func; defaults are already in place so a noop is passed.
func registerCustomValidationsTranslations(tags ...string) {
	registerFn := func(ut.Translator) error { return nil }
	for _, tag := range tags {
		_ = Validate.RegisterTranslation(tag, Translator, registerFn, translateCustomValidationErrs)
	}
}

func translateCustomValidationErrs(_ ut.Translator, fe validator.FieldError) string {
	switch fe.Tag() {
	case notBlankTag:
		return fe.Field() + " is required"
	case minTrimTag:
		return fe.Field() + " must be at least " + fe.Param() + " characters"
	case roleTag:
		return fe.Field() + " is not a known role"
	default:
		return ""
	}
}

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

func minTrimValidation(fl validator.FieldLevel) bool {
	str, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	min, err := strconv.Atoi(fl.Param())
	if err != nil {
		return false
	}
	return utf8.RuneCountInString(strings.TrimSpace(str)) >= min
}

func roleValidation(fl validator.FieldLevel) bool {
	str, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	_, known := rbac.ParseRole(str)
	return known
}

// Struct validates v and folds every failure into one validation AppError
// whose details list each field. It returns nil when v is valid.
func Struct(v interface{}) *errors.AppError {
	err := Validate.Struct(v)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.NewValidationError(err.Error(), errors.ErrCodeValidationFailed)
	}

	var overrides map[string]string
	if o, ok := v.(MessageOverrider); ok {
		overrides = o.ValidationMessages()
	}

	out := make([]errors.ValidationError, 0, len(fieldErrs))
	seen := make(map[string]bool, len(fieldErrs))
	for _, fe := range fieldErrs {
		// first failure per field wins, matching what a form shows inline
		if seen[fe.Field()] {
			continue
		}
		seen[fe.Field()] = true

		message, ok := overrides[fe.Field()+"."+fe.Tag()]
		if !ok {
			message = fe.Translate(Translator)
		}
		out = append(out, errors.ValidationError{
			Field:   fe.Field(),
			Message: message,
			Code:    codeFor(fe.Tag()),
		})
	}

	return errors.NewFieldErrors(out)
}

func codeFor(tag string) string {
	switch tag {
	case "required", notBlankTag:
		return string(errors.ErrCodeValidationFailed)
	case minTrimTag:
		return string(errors.ErrCodeTooShort)
	case roleTag:
		return string(errors.ErrCodeInvalidRole)
	case "min", "max", "gte", "lte":
		return string(errors.ErrCodeInvalidScore)
	default:
		return string(errors.ErrCodeValidationFailed)
	}
}
