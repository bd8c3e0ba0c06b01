package grade

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NicoleRU22/Studynest/core"
	"github.com/NicoleRU22/Studynest/core/subject"
)

func g(subjectID string, grade, maxGrade, weight float64) Grade {
	var sid *string
	if subjectID != "" {
		sid = &subjectID
	}
	return Grade{SubjectID: sid, Name: "eval", Grade: grade, MaxGrade: maxGrade, Weight: weight}
}

func TestSubjectAverage(t *testing.T) {
	tests := []struct {
		name   string
		grades []Grade
		want   float64
		wantOk bool
	}{
		{name: "no grades"},
		{name: "zero weights", grades: []Grade{g("a", 15, 20, 0), g("a", 10, 20, 0)}},
		{name: "single perfect grade", grades: []Grade{g("a", 20, 20, 100)}, want: 20, wantOk: true},
		{name: "calculus", grades: []Grade{g("a", 18, 20, 30), g("a", 16, 20, 20)}, want: 17.2, wantOk: true},
		{name: "other max grade", grades: []Grade{g("a", 5, 10, 50), g("a", 100, 100, 50)}, want: 15, wantOk: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SubjectAverage(tt.grades)
			assert.Equal(t, tt.wantOk, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestGPA(t *testing.T) {
	grades := []Grade{
		g("a", 10, 20, 100),
		g("c", 16, 20, 0), // undefined average
		g("", 20, 20, 100),
	}

	got, ok := GPA([]string{"a", "b"}, grades)
	require.True(t, ok)
	assert.InDelta(t, 10, got, 1e-9, "subjects without grades are excluded, not zero")

	got, ok = GPA([]string{"a", "d"}, append(grades, g("d", 20, 20, 50)))
	require.True(t, ok)
	assert.InDelta(t, 15, got, 1e-9)

	_, ok = GPA([]string{"b", "c"}, grades)
	assert.False(t, ok)

	_, ok = GPA(nil, grades)
	assert.False(t, ok)
}

func TestPredictFinal(t *testing.T) {
	// average 15 with a current weight of 40
	partial := []Grade{g("a", 15, 20, 25), g("a", 15, 20, 15)}
	got, ok := PredictFinal("a", partial)
	require.True(t, ok)
	assert.InDelta(t, 15, got, 1e-9)

	complete := []Grade{g("b", 18, 20, 60), g("b", 12, 20, 60)}
	got, ok = PredictFinal("b", complete)
	require.True(t, ok)
	avg, _ := SubjectAverage(complete)
	assert.Equal(t, avg, got)

	_, ok = PredictFinal("missing", partial)
	assert.False(t, ok)

	_, ok = PredictFinal("z", []Grade{g("z", 10, 20, 0)})
	assert.False(t, ok)
}

func TestSummarize(t *testing.T) {
	subjects := []subject.Subject{
		{ID: "calc", Name: "Calculus", Color: "#111111"},
		{ID: "phys", Name: "Physics", Color: "#222222"},
	}
	grades := []Grade{g("calc", 18, 20, 30), g("calc", 16, 20, 20)}

	s := Summarize(subjects, grades)
	assert.Equal(t, 2, s.GradeCount)
	require.NotNil(t, s.GPA)
	assert.InDelta(t, 17.2, *s.GPA, 1e-9)
	require.Len(t, s.Subjects, 2)

	calc := s.Subjects[0]
	assert.Equal(t, "Calculus", calc.SubjectName)
	assert.Equal(t, 2, calc.GradeCount)
	assert.Equal(t, 50.0, calc.TotalWeight)
	require.NotNil(t, calc.Average)
	assert.InDelta(t, 17.2, *calc.Average, 1e-9)
	require.NotNil(t, calc.Prediction)
	assert.InDelta(t, 17.2, *calc.Prediction, 1e-9)

	phys := s.Subjects[1]
	assert.Nil(t, phys.Average)
	assert.Nil(t, phys.Prediction)
}

func TestNewGrade_Validate(t *testing.T) {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	InitValidators(validate, translator)

	nowFunc = func() time.Time { return time.Date(2024, time.March, 13, 10, 0, 0, 0, time.UTC) }
	defer func() { nowFunc = time.Now }()

	subjectID := "6f1c1f4e-3b1a-4c5e-9f51-3a8a6b0a9d11"
	ten := 10.0

	ng := NewGrade{SubjectID: subjectID, Name: " Midterm ", Grade: 18}
	require.NoError(t, ng.Validate(validate))
	assert.Equal(t, "Midterm", ng.Name)
	assert.Equal(t, DefaultMaxGrade, *ng.MaxGrade)
	assert.Equal(t, DefaultWeight, *ng.Weight)
	assert.Equal(t, EvalExam, ng.EvaluationType)
	assert.Equal(t, time.Date(2024, time.March, 13, 0, 0, 0, 0, time.UTC), ng.Date)

	fields := func(err error) []string {
		var vErrs validator.ValidationErrors
		require.ErrorAs(t, err, &vErrs)
		out := make([]string, 0, len(vErrs))
		for _, fe := range vErrs {
			out = append(out, fe.Field())
		}
		return out
	}

	ng = NewGrade{SubjectID: subjectID, Name: "Quiz", Grade: 12, MaxGrade: &ten}
	assert.Equal(t, []string{"grade"}, fields(ng.Validate(validate)))

	heavy := 101.0
	ng = NewGrade{Name: "Quiz", Weight: &heavy, EvaluationType: "essay"}
	assert.ElementsMatch(t, []string{"subject_id", "weight", "evaluation_type"}, fields(ng.Validate(validate)))

	orig := Grade{SubjectID: &subjectID, Name: "Final", Grade: 14, MaxGrade: 20, Weight: 40, EvaluationType: EvalExam}
	ug := UpdateGrade{MaxGrade: &ten}
	assert.Equal(t, []string{"grade"}, fields(ug.Validate(orig, validate)))

	ug = UpdateGrade{Name: "Final exam"}
	require.NoError(t, ug.Validate(orig, validate))
	assert.Equal(t, 14.0, *ug.Grade)
	assert.Equal(t, subjectID, ug.SubjectID)
}
