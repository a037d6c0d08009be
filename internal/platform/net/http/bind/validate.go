// Package bind decodes request bodies and validates them with go-playground/validator.
// Validation failures come back as perr errors with the offending json field attached
package bind

import (
	"errors"
	"reflect"
	"slices"
	"strings"
	"sync"

	perr "chatstats/internal/platform/errors"
	"chatstats/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

type (
	FieldLevel = validator.FieldLevel
	FieldError = validator.FieldError
)

// ValidatorSvc pairs the validator with its english translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

// DateOrders are the values the date_order tag accepts
var DateOrders = []string{"dmy", "mdy"}

// messages replace the stock english text for these tags
var messages = map[string]string{
	"min":        "{0} must be at least {1}",
	"max":        "{0} must be at most {1}",
	"date_order": "{0} must be one of " + strings.Join(DateOrders, " "),
}

var (
	once sync.Once
	svc  *ValidatorSvc
)

// Init builds the validator on first call and returns it afterwards
func Init() *ValidatorSvc {
	once.Do(func() {
		loc := en.New()
		trans, _ := ut.New(loc, loc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonName)
		_ = en_translations.RegisterDefaultTranslations(v, trans)
		_ = v.RegisterValidation("date_order", validDateOrder)
		for tag, text := range messages {
			translate(v, trans, tag, text)
		}

		svc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return svc
}

// Get is Init under the name call sites read better with
func Get() *ValidatorSvc { return Init() }

// RegisterValidation adds a custom tag to the shared validator
func RegisterValidation(tag string, fn validator.Func) error {
	return Get().Validator.RegisterValidation(tag, fn)
}

// Validate checks v's struct tags. The first failing field becomes a validation error
func Validate(v any) error {
	err := Get().Validator.Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		logger.Named("bind").Error().Err(inv).Msg("validate called on a non struct")
		return perr.JSONErrf("validation error")
	}
	field, msg := ValidationFieldAndMessage(err)
	return perr.WithField(perr.Validationf("%s", msg), field)
}

// ValidationFieldAndMessage returns the first failing field and its english message
func ValidationFieldAndMessage(err error) (field, message string) {
	var (
		inv  *validator.InvalidValidationError
		errs validator.ValidationErrors
	)
	switch {
	case err == nil:
		return "", ""
	case errors.As(err, &inv):
		return "", inv.Error()
	case errors.As(err, &errs) && len(errs) > 0:
		return errs[0].Field(), errs[0].Translate(Get().Translator)
	}
	return "", err.Error()
}

// jsonName reports fields by their json key
func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

// validDateOrder accepts an empty value or a DateOrders entry in any case
func validDateOrder(fl FieldLevel) bool {
	s := strings.ToLower(strings.TrimSpace(fl.Field().String()))
	return s == "" || slices.Contains(DateOrders, s)
}

func translate(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}
