package dashboard

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NicoleRU22/Studynest/core"
	"github.com/NicoleRU22/Studynest/core/event"
	"github.com/NicoleRU22/Studynest/core/grade"
	"github.com/NicoleRU22/Studynest/core/subject"
	"github.com/NicoleRU22/Studynest/core/task"
	"github.com/NicoleRU22/Studynest/core/user"
)

// Wednesday
var refNow = time.Date(2024, 3, 13, 10, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func sampleTasks() []task.Task {
	done := refNow.Add(-time.Hour)
	return []task.Task{
		{ID: "t1", Title: "Essay", Kind: task.Deadline{Due: refNow.Add(5 * time.Hour)}, SubjectID: strPtr("s1")},
		{ID: "t2", Title: "Lab", Kind: task.Deadline{Due: refNow.Add(24 * time.Hour)}},
		{ID: "t3", Title: "Far away", Kind: task.Deadline{Due: refNow.Add(72 * time.Hour)}},
		{ID: "t4", Title: "Overdue", Kind: task.Deadline{Due: refNow.Add(-2 * time.Hour)}},
		{ID: "t5", Title: "Done", Kind: task.Deadline{Due: refNow.Add(2 * time.Hour)}, CompletedAt: &done},
		{ID: "t6", Title: "Undated", Kind: task.Simple{}},
	}
}

func TestNearDeadlines(t *testing.T) {
	deadlines := NearDeadlines(sampleTasks(), refNow)
	require.Len(t, deadlines, 2)
	assert.Equal(t, "t1", deadlines[0].TaskID)
	assert.Equal(t, 5, deadlines[0].HoursLeft)
	assert.Equal(t, "5 hours from now", deadlines[0].Label)
	assert.Equal(t, "t2", deadlines[1].TaskID)
	assert.Equal(t, "1 day from now", deadlines[1].Label)
}

func TestNewSummary(t *testing.T) {
	convenio := refNow.AddDate(0, 0, 2)
	subjects := []subject.Subject{
		{ID: "s1", Name: "Calculus", DeadlineConvenio: &convenio},
		{ID: "s2", Name: "Physics"},
	}
	grades := []grade.Grade{
		{SubjectID: strPtr("s1"), Grade: 16, MaxGrade: 20, Weight: 50},
	}
	events := []event.Event{
		{ID: "e1", StartTime: refNow.Add(-time.Hour)},
		{ID: "e2", StartTime: refNow.AddDate(0, 0, 3)},
		{ID: "e3", StartTime: refNow.AddDate(0, 0, 10)},
	}

	s := NewSummary(sampleTasks(), subjects, grades, events, refNow)

	assert.Len(t, s.Deadlines, 2)
	assert.Equal(t, 17, s.Progress) // 1 of 6
	assert.Equal(t, 5, s.PendingCount)
	require.NotNil(t, s.GPA)
	assert.InDelta(t, 16.0, *s.GPA, 1e-9)
	require.Len(t, s.ConvenioAlerts, 1)
	assert.Equal(t, "s1", s.ConvenioAlerts[0].SubjectID)
	require.Len(t, s.UpcomingEvents, 1)
	assert.Equal(t, "e2", s.UpcomingEvents[0].ID)
	assert.Len(t, s.SubjectsOverviews, 2)

	var today []string
	for _, tk := range s.TodayTasks {
		today = append(today, tk.ID)
	}
	assert.ElementsMatch(t, []string{"t1", "t4", "t5"}, today)
}

func TestNewDigest(t *testing.T) {
	convenio := refNow
	subjects := []subject.Subject{{ID: "s1", Name: "Calculus", DeadlineConvenio: &convenio}}

	d := NewDigest("Ana", sampleTasks(), subjects, refNow)
	assert.False(t, d.IsEmpty())
	require.Len(t, d.Deadlines, 2)
	assert.Equal(t, "Mar 13 at 15:00, 5 hours from now", d.Deadlines[0].Due)
	require.Len(t, d.Convenios, 1)
	assert.Equal(t, DigestConvenio{Subject: "Calculus", Label: "closes today"}, d.Convenios[0])

	assert.True(t, NewDigest("Ana", nil, nil, refNow).IsEmpty())
}

type (
	stubLister struct {
		tasks    map[string][]task.Task
		subjects map[string][]subject.Subject
		users    []user.User
	}
	mailStub   struct{ sent []*core.EmailMessage }
	loggerStub struct{}
)

func (s stubLister) QueryTasks(_ context.Context, userID string, _ task.QueryFilter) ([]task.Task, error) {
	return s.tasks[userID], nil
}

func (s stubLister) QuerySubjects(_ context.Context, userID string) ([]subject.Subject, error) {
	return s.subjects[userID], nil
}

func (s stubLister) QueryGrades(context.Context, string, grade.QueryFilter) ([]grade.Grade, error) {
	return nil, nil
}

func (s stubLister) QueryEvents(context.Context, string, event.QueryFilter) ([]event.Event, error) {
	return nil, nil
}

func (s stubLister) QueryActiveUsers(context.Context) ([]user.User, error) { return s.users, nil }

func (m *mailStub) SendMessages(messages ...*core.EmailMessage) { m.sent = append(m.sent, messages...) }

func (loggerStub) Debug(string, ...interface{}) {}
func (loggerStub) Info(string, ...interface{})  {}
func (loggerStub) Warn(string, ...interface{})  {}
func (loggerStub) Error(string, ...interface{}) {}
func (loggerStub) Fatal(string, ...interface{}) {}

func TestService_SendDigests(t *testing.T) {
	nowFunc = func() time.Time { return refNow }
	defer func() { nowFunc = time.Now }()

	lister := stubLister{
		tasks: map[string][]task.Task{"u1": sampleTasks()},
		users: []user.User{
			{ID: "u1", Name: "Ana", Email: "ana@test.test", IsActive: true},
			{ID: "u2", Name: "Ben", Email: "ben@test.test", IsActive: true},
		},
	}
	mails := new(mailStub)
	svc := NewService(lister, lister, lister, lister, lister, mails, loggerStub{}, &core.Config{FrontendBaseURL: "http://localhost"})

	n, err := svc.SendDigests(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.Len(t, mails.sent, 1)
	assert.Equal(t, "ana@test.test", mails.sent[0].To[0].Address)
	assert.Equal(t, "deadline_digest", mails.sent[0].TemplateName)

	summary, err := svc.Summary(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, summary.Deadlines, 2)
	assert.Nil(t, summary.GPA)
}
