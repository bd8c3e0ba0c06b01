package task

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/NicoleRU22/Studynest/core"
)

var (
	taskTypeTag  = "tasktype"
	frequencyTag = "frequency"

	dueRequiredTag  = "duerequired"
	dueRequiredText = "a due date is required for this task type"

	noDueTag  = "nodue"
	noDueText = "only deadline and recurring tasks have a due date"

	freqRequiredTag  = "freqrequired"
	freqRequiredText = "recurring tasks need a frequency"

	noFreqTag  = "nofreq"
	noFreqText = "only recurring tasks have a frequency"
)

// InitValidators registers the task validation tags and translations.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	core.RegisterOneOf(validate, translator, taskTypeTag, Types...)
	core.RegisterOneOf(validate, translator, frequencyTag, Frequencies...)

	validate.RegisterStructValidation(taskStructValidation, NewTask{}, UpdateTask{})
	core.RegisterCustomTranslation(validate, translator, dueRequiredTag, dueRequiredText)
	core.RegisterCustomTranslation(validate, translator, noDueTag, noDueText)
	core.RegisterCustomTranslation(validate, translator, freqRequiredTag, freqRequiredText)
	core.RegisterCustomTranslation(validate, translator, noFreqTag, noFreqText)
}

// taskStructValidation keeps the type, due date and frequency of a request consistent.
func taskStructValidation(sl validator.StructLevel) {
	switch req := sl.Current().Interface().(type) {
	case NewTask:
		validateKind(req.Type, req.DueDate, req.RecurringFrequency, sl)
	case UpdateTask:
		validateKind(req.Type, req.DueDate, req.RecurringFrequency, sl)
	}
}

func validateKind(typ Type, due *time.Time, freq *Frequency, sl validator.StructLevel) {
	switch typ {
	case TypeDeadline, TypeRecurring:
		if due == nil {
			sl.ReportError(due, "due_date", "DueDate", dueRequiredTag, "")
		}
	default:
		if due != nil {
			sl.ReportError(due, "due_date", "DueDate", noDueTag, "")
		}
	}

	if typ == TypeRecurring {
		if freq == nil {
			sl.ReportError(freq, "recurring_frequency", "RecurringFrequency", freqRequiredTag, "")
		}
	} else if freq != nil {
		sl.ReportError(freq, "recurring_frequency", "RecurringFrequency", noFreqTag, "")
	}
}
