package project

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/NicoleRU22/Studynest/core"
)

var projectStatusTag = "projectstatus"

// InitValidators registers the project validation tags.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	core.RegisterOneOf(validate, translator, projectStatusTag, Statuses...)
}
