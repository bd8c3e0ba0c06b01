package echoapi

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/NicoleRU22/Studynest/core/subject"
)

func Test_appHTTPErrorHandler_fieldErrors(t *testing.T) {
	app := setup(t)
	_, token := app.newUser("Ada", "ada@test.io")
	math := expect[subject.Subject](t, app.do(http.MethodPost, "/v1/subjects", token, map[string]string{"name": "Math"}), http.StatusCreated)

	tests := []struct {
		name    string
		path    string
		body    interface{}
		wantErr map[string]string
	}{
		{
			name:    "deadline task without due date",
			path:    "/v1/tasks",
			body:    map[string]string{"title": "Essay", "type": "deadline"},
			wantErr: map[string]string{"due_date": "a due date is required for this task type"},
		},
		{
			name:    "recurring task without frequency",
			path:    "/v1/tasks",
			body:    map[string]string{"title": "Gym", "type": "recurring", "due_date": "2024-03-13T12:00:00Z"},
			wantErr: map[string]string{"recurring_frequency": "recurring tasks need a frequency"},
		},
		{
			name:    "grade above max grade",
			path:    "/v1/grades",
			body:    map[string]interface{}{"subject_id": math.ID, "name": "Quiz", "grade": 15, "max_grade": 10},
			wantErr: map[string]string{"grade": "grade cannot exceed max_grade"},
		},
		{
			name:    "event without start time",
			path:    "/v1/events",
			body:    map[string]string{"title": "Exam"},
			wantErr: map[string]string{"start_time": "this field is required"},
		},
		{
			name:    "subject with a bad color",
			path:    "/v1/subjects",
			body:    map[string]string{"name": "Art", "color": "blue"},
			wantErr: map[string]string{"color": "must be a hex color like #3B82F6"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := expect[map[string]string](t, app.do(http.MethodPost, tt.path, token, tt.body), http.StatusBadRequest)
			assert.Equal(t, tt.wantErr, got)
		})
	}

	t.Run("not found still maps to 404", func(t *testing.T) {
		got := expect[httpErr](t, app.do(http.MethodGet, "/v1/tasks/00000000-0000-0000-0000-000000000000", token, nil), http.StatusNotFound)
		assert.NotEmpty(t, got.Error)
	})
}
