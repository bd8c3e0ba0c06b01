package grade

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/NicoleRU22/Studynest/core"
)

var (
	evalTypeTag = "evaltype"

	gradeAboveMaxTag  = "gradeabovemax"
	gradeAboveMaxText = "grade cannot exceed max_grade"
)

// InitValidators registers the grade validation rules.
func InitValidators(validate *validator.Validate, translator ut.Translator) {
	core.RegisterOneOf(validate, translator, evalTypeTag, EvaluationTypes...)

	validate.RegisterStructValidation(gradeStructValidation, NewGrade{}, UpdateGrade{})
	core.RegisterCustomTranslation(validate, translator, gradeAboveMaxTag, gradeAboveMaxText)
}

// gradeStructValidation keeps grade <= max_grade.
func gradeStructValidation(sl validator.StructLevel) {
	var grade float64
	var maxGrade *float64

	switch g := sl.Current().Interface().(type) {
	case NewGrade:
		grade, maxGrade = g.Grade, g.MaxGrade
	case UpdateGrade:
		if g.Grade == nil {
			return
		}
		grade, maxGrade = *g.Grade, g.MaxGrade
	}
	if maxGrade != nil && grade > *maxGrade {
		sl.ReportError(grade, "grade", "Grade", gradeAboveMaxTag, "")
	}
}
