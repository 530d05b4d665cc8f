// Package bind decodes request payloads and validates them with go-playground/validator
package bind

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"unicode"

	perr "labelit/internal/platform/errors"
	"labelit/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// MaxLabelLen bounds one label as accepted by the label tag
const MaxLabelLen = 256

// Validator bundles the validator and its english translator
type Validator struct {
	V     *validator.Validate
	Trans ut.Translator
}

var (
	once sync.Once
	vs   *Validator
)

// Get returns the process validator, built on first use
// messages use json tag names and the min, max and label tags have short texts
func Get() *Validator {
	once.Do(func() {
		loc := en.New()
		trans, _ := ut.New(loc, loc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonName)
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		short(v, trans, "min", "{0} must be at least {1}")
		short(v, trans, "max", "{0} must be at most {1}")
		_ = v.RegisterValidation("label", isLabel)
		short(v, trans, "label", "{0} must be a single line label")

		vs = &Validator{V: v, Trans: trans}
	})
	return vs
}

func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

func short(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			msg, _ := t.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}

// isLabel accepts non blank strings up to MaxLabelLen runes without control characters
func isLabel(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if strings.TrimSpace(s) == "" || len([]rune(s)) > MaxLabelLen {
		return false
	}
	return strings.IndexFunc(s, unicode.IsControl) < 0
}

// Options tunes ParseJSON
type Options struct {
	MaxBytes     int64 // 0 means 1MB
	AllowUnknown bool
}

// ParseJSON decodes one JSON value into T and validates it
// decode failures are ErrorCodeJSON, validation failures ErrorCodeValidation with the field set
func ParseJSON[T any](r *http.Request, opts ...Options) (T, error) {
	var zero T
	var o Options
	if len(opts) > 0 {
		o = opts[0]
	}
	if o.MaxBytes <= 0 {
		o.MaxBytes = 1 << 20
	}
	defer func() {
		if err := r.Body.Close(); err != nil {
			logger.C(r.Context()).Warn().Err(err).Msg("close request body")
		}
	}()

	br := bufio.NewReader(io.LimitReader(r.Body, o.MaxBytes))
	if _, err := br.Peek(1); err != nil {
		return zero, perr.JSONErrf("empty body")
	}

	dec := json.NewDecoder(br)
	if !o.AllowUnknown {
		dec.DisallowUnknownFields()
	}
	var dst T
	if err := dec.Decode(&dst); err != nil {
		return zero, perr.JSONErrf("invalid JSON: %v", err)
	}
	if dec.More() {
		return zero, perr.JSONErrf("unexpected trailing data")
	}
	if err := Validate(dst); err != nil {
		return zero, err
	}
	return dst, nil
}

// Validate runs struct validation and returns the first failure as a field error
func Validate(v any) error {
	err := Get().V.Struct(v)
	if err == nil {
		return nil
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		logger.Get().Error().Err(inv).Msg("validator misuse")
		return perr.Internalf("validation error")
	}
	field, msg := FirstError(err)
	return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s", msg), field)
}

// FirstError returns the field and translated message of the first validation failure
func FirstError(err error) (field, message string) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field(), verrs[0].Translate(Get().Trans)
	}
	if err == nil {
		return "", ""
	}
	return "", err.Error()
}
