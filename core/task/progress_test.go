package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var refNow = time.Date(2024, time.March, 13, 10, 0, 0, 0, time.UTC) // a Wednesday

func done(t Task) Task {
	ts := refNow.Add(-time.Hour)
	t.CompletedAt = &ts
	return t
}

func deadline(title string, due time.Time) Task {
	return Task{ID: title, Title: title, Kind: Deadline{Due: due}}
}

func TestProgress(t *testing.T) {
	simple := Task{Title: "s", Kind: Simple{}}
	tests := []struct {
		name  string
		tasks []Task
		want  int
	}{
		{name: "empty", want: 0},
		{name: "none completed", tasks: []Task{simple, simple}, want: 0},
		{name: "one of four", tasks: []Task{done(simple), simple, simple, simple}, want: 25},
		{name: "one of three rounds down", tasks: []Task{done(simple), simple, simple}, want: 33},
		{name: "two of three rounds up", tasks: []Task{done(simple), done(simple), simple}, want: 67},
		{name: "one of two", tasks: []Task{done(simple), simple}, want: 50},
		{name: "all", tasks: []Task{done(simple), done(simple)}, want: 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Progress(tt.tasks)
			assert.Equal(t, tt.want, got)
			assert.True(t, got >= 0 && got <= 100)
		})
	}
}

func TestNextDeadline(t *testing.T) {
	soon := refNow.Add(24 * time.Hour)
	later := refNow.Add(72 * time.Hour)
	earliest := refNow.Add(2 * time.Hour)

	_, ok := NextDeadline(nil)
	assert.False(t, ok)

	_, ok = NextDeadline([]Task{{Kind: Simple{}}, done(deadline("a", soon))})
	assert.False(t, ok, "completed and undated tasks are ignored")

	got, ok := NextDeadline([]Task{
		deadline("later", later),
		done(deadline("done", earliest)),
		{Title: "recurring", Kind: Recurring{Due: soon, Frequency: Daily}},
		{Title: "team", Kind: Team{}},
	})
	assert.True(t, ok)
	assert.Equal(t, soon, got)
}

func TestIsDeadlineNear(t *testing.T) {
	tests := []struct {
		name string
		due  time.Time
		want bool
	}{
		{name: "now", due: refNow, want: true},
		{name: "in 48h", due: refNow.Add(48 * time.Hour), want: true},
		{name: "in 48h59m", due: refNow.Add(48*time.Hour + 59*time.Minute), want: true},
		{name: "in 49h", due: refNow.Add(49 * time.Hour), want: false},
		{name: "30 minutes ago", due: refNow.Add(-30 * time.Minute), want: true},
		{name: "1h ago", due: refNow.Add(-time.Hour), want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDeadlineNear(tt.due, refNow))
		})
	}
}
