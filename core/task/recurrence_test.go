package task

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextOccurrence(t *testing.T) {
	origDue := refNow.Add(-5 * 24 * time.Hour) // completed late
	subj, proj := "subject-id", "project-id"

	tests := []struct {
		name    string
		task    Task
		wantOk  bool
		wantDue time.Time
	}{
		{name: "simple", task: Task{Title: "s", Kind: Simple{}}},
		{name: "deadline", task: Task{Title: "d", Kind: Deadline{Due: origDue}}},
		{name: "team", task: Task{Title: "t", Kind: Team{}}},
		{
			name:    "daily",
			task:    Task{Title: "Read", Kind: Recurring{Due: origDue, Frequency: Daily}, SubjectID: &subj, ProjectID: &proj, Position: 2},
			wantOk:  true,
			wantDue: refNow.Add(24 * time.Hour),
		},
		{
			name:    "weekly",
			task:    Task{Title: "Review", Kind: Recurring{Due: origDue, Frequency: Weekly}},
			wantOk:  true,
			wantDue: refNow.Add(7 * 24 * time.Hour),
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.task.UserID = "owner"
			next, ok := NextOccurrence(tt.task, refNow)
			assert.Equal(t, tt.wantOk, ok)
			if !ok {
				return
			}
			assert.Equal(t, tt.task.Title, next.Title)
			assert.Equal(t, "owner", next.UserID)
			assert.Equal(t, TypeRecurring, next.Type())
			assert.Nil(t, next.CompletedAt)
			assert.Nil(t, next.SubjectID)
			assert.Nil(t, next.ProjectID)
			due, hasDue := next.DueDate()
			assert.True(t, hasDue)
			assert.Equal(t, tt.wantDue, due)
			assert.Equal(t, tt.task.Kind.(Recurring).Frequency, next.Kind.(Recurring).Frequency)
		})
	}
}
