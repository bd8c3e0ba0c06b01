package note

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NicoleRU22/Studynest/core"
)

func TestNote_Matches(t *testing.T) {
	n := Note{Title: "Integrals", Content: "Riemann sums and bounds", Tags: []string{"Exam-Prep", "math"}}
	tests := []struct {
		query string
		want  bool
	}{
		{"", true},
		{"integ", true},
		{"RIEMANN", true},
		{"exam", true},
		{"physics", false},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Matches(tt.query))
		})
	}
}

func TestNewNote_Validate(t *testing.T) {
	validate := validator.New()
	core.InitValidators(validate, core.NewTranslator())

	nn := NewNote{Title: " Lecture 1 ", Tags: []string{" math ", "", "math", "calculus"}}
	require.NoError(t, nn.Validate(validate))
	assert.Equal(t, "Lecture 1", nn.Title)
	assert.Equal(t, []string{"math", "calculus"}, nn.Tags)

	nn = NewNote{Title: ""}
	require.Error(t, nn.Validate(validate))

	orig := Note{Title: "Orig", Content: "body", IsFavorite: true, Tags: []string{"a"}}
	un := UpdateNote{Tags: []string{"b"}}
	require.NoError(t, un.Validate(orig, validate))
	assert.Equal(t, "Orig", un.Title)
	assert.Equal(t, "body", *un.Content)
	assert.True(t, *un.IsFavorite)
	assert.Equal(t, []string{"b"}, un.Tags)
}
