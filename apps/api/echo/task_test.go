package echoapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NicoleRU22/Studynest/core/ordering"
	"github.com/NicoleRU22/Studynest/core/task"
)

func Test_taskApi_crud(t *testing.T) {
	app := setup(t)
	_, token := app.newUser("Ada", "ada@test.io")
	_, otherToken := app.newUser("Eve", "eve@test.io")

	checkCode(t, app.do(http.MethodGet, "/v1/tasks", "", nil), http.StatusUnauthorized)

	due := time.Date(2024, 3, 13, 12, 0, 0, 0, time.UTC)
	created := expect[task.Task](t, app.do(http.MethodPost, "/v1/tasks", token, map[string]interface{}{
		"title": "  Essay draft ", "type": "deadline", "due_date": due,
	}), http.StatusCreated)
	assert.Equal(t, "Essay draft", created.Title)
	assert.Equal(t, task.Deadline{Due: due}, created.Kind)
	assert.Equal(t, 0, created.Position)

	quick := expect[task.Task](t, app.do(http.MethodPost, "/v1/tasks/quick", token, QuickAddRequest{Title: "Buy pens"}), http.StatusCreated)
	assert.Equal(t, task.TypeSimple, quick.Type())
	assert.Equal(t, 1, quick.Position)

	t.Run("validation", func(t *testing.T) {
		checkCode(t, app.do(http.MethodPost, "/v1/tasks", token, map[string]string{"title": " "}), http.StatusBadRequest)
		checkCode(t, app.do(http.MethodPost, "/v1/tasks", token, map[string]string{"title": "x", "type": "urgent"}), http.StatusBadRequest)
		checkCode(t, app.do(http.MethodPost, "/v1/tasks", token, map[string]string{"title": "x", "type": "deadline"}), http.StatusBadRequest)
		checkCode(t, app.do(http.MethodPost, "/v1/tasks", token, `{"title":"x","priority":1}`), http.StatusBadRequest)
		checkCode(t, app.do(http.MethodPost, "/v1/tasks", token, `{"title":`), http.StatusBadRequest)
	})

	t.Run("owner scoping", func(t *testing.T) {
		path := "/v1/tasks/" + created.ID
		checkCode(t, app.do(http.MethodGet, path, otherToken, nil), http.StatusNotFound)
		checkCode(t, app.do(http.MethodPut, path, otherToken, map[string]string{"title": "mine"}), http.StatusNotFound)
		checkCode(t, app.do(http.MethodDelete, path, otherToken, nil), http.StatusNotFound)
		checkCode(t, app.do(http.MethodPost, path+"/toggle", otherToken, nil), http.StatusNotFound)
		assert.Empty(t, expect[[]task.Task](t, app.do(http.MethodGet, "/v1/tasks", otherToken, nil), http.StatusOK))
	})

	t.Run("update keeps the kind when type is omitted", func(t *testing.T) {
		kept := expect[task.Task](t, app.do(http.MethodPut, "/v1/tasks/"+created.ID, token, map[string]string{}), http.StatusOK)
		assert.Equal(t, task.Deadline{Due: due}, kept.Kind)

		later := due.Add(24 * time.Hour)
		moved := expect[task.Task](t, app.do(http.MethodPut, "/v1/tasks/"+created.ID, token, map[string]interface{}{"due_date": later}), http.StatusOK)
		assert.Equal(t, task.Deadline{Due: later}, moved.Kind)
	})

	t.Run("update", func(t *testing.T) {
		updated := expect[task.Task](t, app.do(http.MethodPut, "/v1/tasks/"+created.ID, token, map[string]string{"type": "simple"}), http.StatusOK)
		assert.Equal(t, "Essay draft", updated.Title)
		assert.Equal(t, task.Simple{}, updated.Kind)
	})

	t.Run("delete", func(t *testing.T) {
		checkCode(t, app.do(http.MethodDelete, "/v1/tasks/"+quick.ID, token, nil), http.StatusNoContent)
		checkCode(t, app.do(http.MethodGet, "/v1/tasks/"+quick.ID, token, nil), http.StatusNotFound)
		checkCode(t, app.do(http.MethodDelete, "/v1/tasks/"+quick.ID, token, nil), http.StatusNotFound)
	})
}

func Test_taskApi_toggle(t *testing.T) {
	app := setup(t)
	_, token := app.newUser("Ada", "ada@test.io")

	now := time.Now().UTC()
	recurring := expect[task.Task](t, app.do(http.MethodPost, "/v1/tasks", token, map[string]interface{}{
		"title": "Flashcards", "type": "recurring", "due_date": now.AddDate(0, 0, -3), "recurring_frequency": "weekly",
	}), http.StatusCreated)
	simple := expect[task.Task](t, app.do(http.MethodPost, "/v1/tasks", token, map[string]string{"title": "Call mum"}), http.StatusCreated)

	res := expect[ToggleResponse](t, app.do(http.MethodPost, "/v1/tasks/"+recurring.ID+"/toggle", token, nil), http.StatusOK)
	require.NotNil(t, res.Task.CompletedAt)
	completedAt := *res.Task.CompletedAt
	assert.WithinDuration(t, now, completedAt, time.Minute)
	require.NotNil(t, res.Next)
	assert.Equal(t, "Flashcards", res.Next.Title)
	assert.Nil(t, res.Next.CompletedAt)
	// the next due date drifts from the completion time, not from the previous due date
	next, ok := res.Next.Kind.(task.Recurring)
	require.True(t, ok)
	assert.Equal(t, task.Weekly, next.Frequency)
	assert.WithinDuration(t, completedAt.AddDate(0, 0, 7), next.Due, time.Second)
	assert.Equal(t, 2, res.Next.Position)

	// reopening never spawns nor removes occurrences
	res = expect[ToggleResponse](t, app.do(http.MethodPost, "/v1/tasks/"+recurring.ID+"/toggle", token, nil), http.StatusOK)
	assert.Nil(t, res.Task.CompletedAt)
	assert.Nil(t, res.Next)

	res = expect[ToggleResponse](t, app.do(http.MethodPost, "/v1/tasks/"+simple.ID+"/toggle", token, nil), http.StatusOK)
	assert.NotNil(t, res.Task.CompletedAt)
	assert.Nil(t, res.Next)

	tasks := expect[[]task.Task](t, app.do(http.MethodGet, "/v1/tasks", token, nil), http.StatusOK)
	assert.Len(t, tasks, 3)
}

func Test_taskApi_reorderAndFilters(t *testing.T) {
	app := setup(t)
	_, token := app.newUser("Ada", "ada@test.io")

	now := time.Now().UTC()
	titles := []string{"A", "B", "C", "D"}
	ids := make(map[string]string, len(titles))
	for _, title := range titles {
		body := map[string]interface{}{"title": title}
		if title == "B" {
			body["type"], body["due_date"] = "deadline", now
		}
		if title == "D" {
			body["type"] = "team"
		}
		ids[title] = expect[task.Task](t, app.do(http.MethodPost, "/v1/tasks", token, body), http.StatusCreated).ID
	}

	keys := func(tasks []task.Task) (out []string) {
		for _, tk := range tasks {
			out = append(out, tk.Title)
		}
		return out
	}

	reordered := expect[[]task.Task](t, app.do(http.MethodPost, "/v1/tasks/reorder", token, ordering.Request{
		Active: ids["D"], Over: ids["A"],
	}), http.StatusOK)
	assert.Equal(t, []string{"D", "A", "B", "C"}, keys(reordered))

	listed := expect[[]task.Task](t, app.do(http.MethodGet, "/v1/tasks", token, nil), http.StatusOK)
	assert.Equal(t, []string{"D", "A", "B", "C"}, keys(listed))
	for i, tk := range listed {
		assert.Equal(t, i, tk.Position)
	}

	checkCode(t, app.do(http.MethodPost, "/v1/tasks/reorder", token, ordering.Request{Active: ids["D"]}), http.StatusBadRequest)
	checkCode(t, app.do(http.MethodPost, "/v1/tasks/reorder", token, ordering.Request{
		Active: ids["D"], Over: "5b0c9a64-7a4e-4d8e-9a3d-1f00dd0c0ffe",
	}), http.StatusNotFound)

	tests := []struct {
		filter string
		want   []string
	}{
		{filter: "all", want: []string{"D", "A", "B", "C"}},
		{filter: "today", want: []string{"B"}},
		{filter: "week", want: []string{"B"}},
		{filter: "no-date", want: []string{"D", "A", "C"}},
		{filter: "team", want: []string{"D"}},
	}
	for _, tt := range tests {
		t.Run(tt.filter, func(t *testing.T) {
			got := expect[[]task.Task](t, app.do(http.MethodGet, "/v1/tasks?filter="+tt.filter, token, nil), http.StatusOK)
			assert.Equal(t, tt.want, keys(got))
		})
	}
}
