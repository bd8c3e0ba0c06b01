package core

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

var (
	// custom validation tags & texts
	colorTag   = "color"
	colorText  = "must be a hex color like #3B82F6"
	colorRegex = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

	uuidOrEmptyTag  = "uuid_"
	uuidOrEmptyText = "must be a valid id"

	requiredTag     = "required"
	requiredWithTag = "required_with"
	requiredText    = "this field is required"
)

// NewTranslator returns the english translator used for validation messages.
func NewTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

// InitValidators instantiates the validator for use.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	// Use JSON tag names for errors instead of Go struct names.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	// register custom validators
	_ = validate.RegisterValidation(colorTag, colorValidation)
	RegisterCustomTranslation(validate, translator, colorTag, colorText)

	_ = validate.RegisterValidation(uuidOrEmptyTag, uuidOrEmptyValidation)
	RegisterCustomTranslation(validate, translator, uuidOrEmptyTag, uuidOrEmptyText)

	RegisterCustomTranslation(validate, translator, requiredTag, requiredText, true)
	RegisterCustomTranslation(validate, translator, requiredWithTag, requiredText, true)
}

// RegisterCustomTranslation registers a custom translation for the specified validation tag.
func RegisterCustomTranslation(validate *validator.Validate, translator ut.Translator, tag, text string, override ...bool) {
	var ovrd bool
	if len(override) > 0 {
		ovrd = override[0]
	}
	_ = validate.RegisterTranslation(
		tag, translator,
		func(t ut.Translator) error { return t.Add(tag, text, ovrd) },
		func(t ut.Translator, fe validator.FieldError) string {
			s, _ := t.T(tag, fe.Field())
			return s
		},
	)
}

// RegisterOneOf registers `tag` as a validator accepting only the given string values.
func RegisterOneOf(validate *validator.Validate, translator ut.Translator, tag string, values ...string) {
	allowed := make(map[string]struct{}, len(values))
	for _, v := range values {
		allowed[v] = struct{}{}
	}
	_ = validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		_, ok := allowed[fl.Field().String()]
		return ok
	})
	RegisterCustomTranslation(validate, translator, tag, "must be one of: "+strings.Join(values, ", "))
}

// Custom Global Validators

// colorValidation only allows #RRGGBB hex colors.
func colorValidation(fl validator.FieldLevel) bool {
	return colorRegex.MatchString(fl.Field().String())
}

var uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

// uuidOrEmptyValidation allows empty values or UUIDs; it accepts string and *string fields.
func uuidOrEmptyValidation(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || uuidRegex.MatchString(s)
}
