package echoapi

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NicoleRU22/Studynest/core/event"
)

func Test_eventApi_calendar(t *testing.T) {
	app := setup(t)
	_, token := app.newUser("Ada", "ada@test.io")
	_, otherToken := app.newUser("Eve", "eve@test.io")

	// Wednesday 13 March 2024
	wed := time.Date(2024, 3, 13, 14, 0, 0, 0, time.UTC)
	exam := expect[event.Event](t, app.do(http.MethodPost, "/v1/events", token, map[string]interface{}{
		"title": "Physics exam", "type": "exam", "start_time": wed,
	}), http.StatusCreated)
	expect[event.Event](t, app.do(http.MethodPost, "/v1/events", token, map[string]interface{}{
		"title": "Next week", "start_time": wed.AddDate(0, 0, 7),
	}), http.StatusCreated)
	expect[map[string]interface{}](t, app.do(http.MethodPost, "/v1/tasks", token, map[string]interface{}{
		"title": "Hand in lab", "type": "deadline", "due_date": wed.Add(-5 * time.Hour),
	}), http.StatusCreated)

	checkCode(t, app.do(http.MethodPost, "/v1/events", token, map[string]interface{}{"title": "No start"}), http.StatusBadRequest)
	checkCode(t, app.do(http.MethodPost, "/v1/events", token, map[string]interface{}{"title": "Party", "type": "party", "start_time": wed}), http.StatusBadRequest)

	week := expect[event.Week](t, app.do(http.MethodGet, "/v1/calendar?date=2024-03-13", token, nil), http.StatusOK)
	assert.Equal(t, time.Date(2024, 3, 11, 0, 0, 0, 0, time.UTC), week.Start)
	assert.Equal(t, time.Date(2024, 3, 17, 0, 0, 0, 0, time.UTC), week.End)
	require.Len(t, week.Days, 7)

	wednesday := week.Days[2]
	assert.Equal(t, time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC), wednesday.Date)
	require.Len(t, wednesday.Entries, 2)
	assert.Equal(t, event.SourceTask, wednesday.Entries[0].Source)
	assert.Equal(t, "Hand in lab", wednesday.Entries[0].Title)
	assert.Equal(t, event.SourceEvent, wednesday.Entries[1].Source)
	assert.Equal(t, exam.ID, wednesday.Entries[1].ID)
	for i, day := range week.Days {
		if i != 2 {
			assert.Empty(t, day.Entries)
		}
	}

	// RFC 3339 dates work too
	sunday := expect[event.Week](t, app.do(http.MethodGet, "/v1/calendar?date=2024-03-17T23:00:00Z", token, nil), http.StatusOK)
	assert.Equal(t, week.Start, sunday.Start)

	checkCode(t, app.do(http.MethodGet, "/v1/calendar?date=13/03/2024", token, nil), http.StatusBadRequest)
	other := expect[event.Week](t, app.do(http.MethodGet, "/v1/calendar?date=2024-03-13", otherToken, nil), http.StatusOK)
	for _, day := range other.Days {
		assert.Empty(t, day.Entries)
	}

	t.Run("range", func(t *testing.T) {
		events := expect[[]event.Event](t, app.do(http.MethodGet, "/v1/events?from=2024-03-11&to=2024-03-18", token, nil), http.StatusOK)
		require.Len(t, events, 1)
		assert.Equal(t, exam.ID, events[0].ID)

		all := expect[[]event.Event](t, app.do(http.MethodGet, "/v1/events", token, nil), http.StatusOK)
		assert.Len(t, all, 2)
	})

	t.Run("update and delete", func(t *testing.T) {
		moved := expect[event.Event](t, app.do(http.MethodPut, "/v1/events/"+exam.ID, token, map[string]interface{}{"start_time": wed.AddDate(0, 0, 1)}), http.StatusOK)
		assert.Equal(t, "Physics exam", moved.Title)
		assert.Equal(t, event.TypeExam, moved.Type)
		assert.True(t, moved.StartTime.Equal(wed.AddDate(0, 0, 1)))

		checkCode(t, app.do(http.MethodDelete, "/v1/events/"+exam.ID, otherToken, nil), http.StatusNotFound)
		checkCode(t, app.do(http.MethodDelete, "/v1/events/"+exam.ID, token, nil), http.StatusNoContent)
	})
}
