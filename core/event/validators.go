package event

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/NicoleRU22/Studynest/core"
)

var (
	eventTypeTag = "eventtype"

	endBeforeStartTag  = "endbeforestart"
	endBeforeStartText = "must not be before start_time"
)

func InitValidators(validate *validator.Validate, translator ut.Translator) {
	core.RegisterOneOf(validate, translator, eventTypeTag, Types...)

	validate.RegisterStructValidation(eventStructValidation, NewEvent{}, UpdateEvent{})
	core.RegisterCustomTranslation(validate, translator, endBeforeStartTag, endBeforeStartText)
}

func eventStructValidation(sl validator.StructLevel) {
	var ne NewEvent
	switch v := sl.Current().Interface().(type) {
	case NewEvent:
		ne = v
	case UpdateEvent:
		ne = NewEvent(v)
	default:
		return
	}
	if ne.EndTime != nil && ne.EndTime.Before(ne.StartTime) {
		sl.ReportError(ne.EndTime, "end_time", "EndTime", endBeforeStartTag, "")
	}
}
