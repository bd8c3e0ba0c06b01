package grade

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/NicoleRU22/Studynest/core"
)

type EvaluationType string

const (
	EvalExam          EvaluationType = "exam"
	EvalHomework      EvaluationType = "homework"
	EvalProject       EvaluationType = "project"
	EvalParticipation EvaluationType = "participation"
	EvalQuiz          EvaluationType = "quiz"
	EvalOther         EvaluationType = "other"
)

const (
	// Scale is the top of the grading scale averages are expressed on.
	Scale = 20.0

	DefaultMaxGrade = 20.0
	DefaultWeight   = 1.0
)

var EvaluationTypes = []string{
	string(EvalExam), string(EvalHomework), string(EvalProject),
	string(EvalParticipation), string(EvalQuiz), string(EvalOther),
}

type Grade struct {
	ID             string         `json:"id"`
	UserID         string         `json:"-"`
	SubjectID      *string        `json:"subject_id"`
	Name           string         `json:"name"`
	Grade          float64        `json:"grade"`
	MaxGrade       float64        `json:"max_grade"`
	Weight         float64        `json:"weight"` // 0..100
	EvaluationType EvaluationType `json:"evaluation_type"`
	Date           time.Time      `json:"date"`
	Notes          *string        `json:"notes"`
	CreatedAt      time.Time      `json:"created_at"` // UTC
	UpdatedAt      time.Time      `json:"updated_at"` // UTC
}

// Percentage is the grade relative to its maximum, 0..100.
func (g Grade) Percentage() float64 {
	return g.Grade / g.MaxGrade * 100
}

// NewGrade contains information needed to record a Grade. MaxGrade and Weight default to 20 and 1.
type NewGrade struct {
	SubjectID      string         `json:"subject_id" validate:"required,uuid_"`
	Name           string         `json:"name" validate:"required,max=255"`
	Grade          float64        `json:"grade" validate:"gte=0,lte=20"`
	MaxGrade       *float64       `json:"max_grade" validate:"omitempty,gt=0"`
	Weight         *float64       `json:"weight" validate:"omitempty,gte=0,lte=100"`
	EvaluationType EvaluationType `json:"evaluation_type" validate:"omitempty,evaltype"`
	Date           time.Time      `json:"date"`
	Notes          *string        `json:"notes"`
}

func (ng *NewGrade) Validate(validate *validator.Validate) error {
	ng.SubjectID = core.CleanString(ng.SubjectID)
	ng.Name = core.CleanString(ng.Name)
	ng.Notes = core.CleanStringPtr(ng.Notes)
	if ng.MaxGrade == nil {
		maxGrade := DefaultMaxGrade
		ng.MaxGrade = &maxGrade
	}
	if ng.Weight == nil {
		w := DefaultWeight
		ng.Weight = &w
	}
	if ng.EvaluationType == "" {
		ng.EvaluationType = EvalExam
	}
	if ng.Date.IsZero() {
		ng.Date = nowFunc()
	}
	ng.Date = core.StartOfDay(ng.Date)
	return validate.Struct(ng)
}

// UpdateGrade replaces the editable fields of a Grade; omitted fields keep their current value.
type UpdateGrade struct {
	SubjectID      string         `json:"subject_id" validate:"omitempty,uuid_"`
	Name           string         `json:"name" validate:"max=255"`
	Grade          *float64       `json:"grade" validate:"omitempty,gte=0,lte=20"`
	MaxGrade       *float64       `json:"max_grade" validate:"omitempty,gt=0"`
	Weight         *float64       `json:"weight" validate:"omitempty,gte=0,lte=100"`
	EvaluationType EvaluationType `json:"evaluation_type" validate:"omitempty,evaltype"`
	Date           *time.Time     `json:"date"`
	Notes          *string        `json:"notes"`
}

func (ug *UpdateGrade) Validate(orig Grade, validate *validator.Validate) error {
	if id := core.CleanString(ug.SubjectID); id != "" {
		ug.SubjectID = id
	} else if orig.SubjectID != nil {
		ug.SubjectID = *orig.SubjectID
	}
	if name := core.CleanString(ug.Name); name != "" {
		ug.Name = name
	} else {
		ug.Name = orig.Name
	}
	if ug.Grade == nil {
		ug.Grade = &orig.Grade
	}
	if ug.MaxGrade == nil {
		ug.MaxGrade = &orig.MaxGrade
	}
	if ug.Weight == nil {
		ug.Weight = &orig.Weight
	}
	if ug.EvaluationType == "" {
		ug.EvaluationType = orig.EvaluationType
	}
	if ug.Date == nil {
		ug.Date = &orig.Date
	}
	d := core.StartOfDay(*ug.Date)
	ug.Date = &d
	ug.Notes = core.CleanStringPtr(ug.Notes)
	return validate.Struct(ug)
}

type QueryFilter struct {
	SubjectID string `query:"subject"`
}

func (qf *QueryFilter) Clean() {
	qf.SubjectID = core.CleanString(qf.SubjectID)
}
