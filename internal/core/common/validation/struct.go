package validation

import (
	"reflect"
	"strings"

	"github.com/go-playground/locales/fa"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	fa_translations "github.com/go-playground/validator/v10/translations/fa"

	errors "github.com/frahmantamala/kpi-portal/internal"
)

// Persian year bounds accepted for evaluation periods.
const (
	MinYear = 1400
	MaxYear = 1500
)

var (
	Validate   *validator.Validate
	Translator ut.Translator

	notBlankTag = "notblank"
	scoreTag    = "score"
	ratingTag   = "rating"
	yearTag     = "pyear"
	monthTag    = "pmonth"
	roleTag     = "member_role"
)

var customMessages = map[string]string{
	notBlankTag: "این فیلد نمی‌تواند خالی باشد",
	scoreTag:    "امتیاز باید بین ۱ تا ۱۰ باشد",
	ratingTag:   "امتیاز باید بین ۱ تا ۵ باشد",
	yearTag:     "سال نامعتبر است",
	monthTag:    "ماه باید بین ۱ تا ۱۲ باشد",
	roleTag:     "نقش باید STRATEGIST یا WRITER باشد",
}

var tagCodes = map[string]errors.ErrorCode{
	scoreTag:  errors.ErrCodeInvalidScore,
	ratingTag: errors.ErrCodeInvalidScore,
	yearTag:   errors.ErrCodeInvalidPeriod,
	monthTag:  errors.ErrCodeInvalidPeriod,
}

func init() {
	Validate = validator.New(validator.WithRequiredStructEnabled())

	locale := fa.New()
	uni := ut.New(locale, locale)
	Translator, _ = uni.GetTranslator("fa")
	_ = fa_translations.RegisterDefaultTranslations(Validate, Translator)

	// Use JSON tag names for errors instead of Go struct names.
	Validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = Validate.RegisterValidation(notBlankTag, notBlankValidation)
	_ = Validate.RegisterValidation(scoreTag, intRange(1, 10))
	_ = Validate.RegisterValidation(ratingTag, intRange(1, 5))
	_ = Validate.RegisterValidation(yearTag, intRange(MinYear, MaxYear))
	_ = Validate.RegisterValidation(monthTag, intRange(1, 12))
	_ = Validate.RegisterValidation(roleTag, memberRoleValidation)

	registerFn := func(ut.Translator) error { return nil }
	for tag := range customMessages {
		_ = Validate.RegisterTranslation(tag, Translator, registerFn, translateCustom)
	}
}

func translateCustom(_ ut.Translator, fe validator.FieldError) string {
	return customMessages[fe.Tag()]
}

func notBlankValidation(fl validator.FieldLevel) bool {
	if str, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(str) != ""
	}
	return false
}

func memberRoleValidation(fl validator.FieldLevel) bool {
	role := fl.Field().String()
	return role == "STRATEGIST" || role == "WRITER"
}

func intRange(min, max int64) validator.Func {
	return func(fl validator.FieldLevel) bool {
		switch fl.Field().Kind() {
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			v := fl.Field().Int()
			return v >= min && v <= max
		}
		return false
	}
}

// Struct validates a DTO against its `validate` tags and returns a localized
// validation error listing every failing field.
func Struct(s interface{}) *errors.AppError {
	err := Validate.Struct(s)
	if err == nil {
		return nil
	}

	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errors.NewValidationError(errors.MsgValidation, errors.ErrCodeValidationFailed).WithCause(err)
	}

	details := make([]errors.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		code, ok := tagCodes[fe.Tag()]
		if !ok {
			code = errors.ErrCodeValidationFailed
		}
		details = append(details, errors.ValidationError{
			Field:   fe.Field(),
			Message: fe.Translate(Translator),
			Code:    string(code),
		})
	}

	return errors.NewValidationError(errors.MsgValidation, errorCodeOf(details)).
		WithDetails(errors.ValidationErrors{Errors: details})
}
