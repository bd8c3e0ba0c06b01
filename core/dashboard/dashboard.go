// Package dashboard assembles the landing page data and the deadline digest emails.
package dashboard

import (
	"sort"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/NicoleRU22/Studynest/core/event"
	"github.com/NicoleRU22/Studynest/core/grade"
	"github.com/NicoleRU22/Studynest/core/subject"
	"github.com/NicoleRU22/Studynest/core/task"
)

// UpcomingEventDays is how far ahead the dashboard lists events.
const UpcomingEventDays = 7

type (
	Deadline struct {
		TaskID    string    `json:"task_id"`
		Title     string    `json:"title"`
		SubjectID *string   `json:"subject_id"`
		Due       time.Time `json:"due"`
		HoursLeft int       `json:"hours_left"`
		Label     string    `json:"label"` // eg. "1 day from now"
	}

	Summary struct {
		TodayTasks        []task.Task             `json:"today_tasks"`
		Deadlines         []Deadline              `json:"deadlines"`
		Progress          int                     `json:"progress"`
		PendingCount      int                     `json:"pending_count"`
		GPA               *float64                `json:"gpa"` // nil: N/A
		ConvenioAlerts    []subject.ConvenioAlert `json:"convenio_alerts"`
		UpcomingEvents    []event.Event           `json:"upcoming_events"`
		SubjectsOverviews []subject.Overview      `json:"subjects"`
	}
)

// NearDeadlines lists the incomplete tasks due within the near-deadline window, soonest first.
func NearDeadlines(tasks []task.Task, now time.Time) []Deadline {
	deadlines := make([]Deadline, 0)
	for _, t := range tasks {
		if t.IsCompleted() {
			continue
		}
		due, ok := t.DueDate()
		if !ok || !task.IsDeadlineNear(due, now) {
			continue
		}
		deadlines = append(deadlines, Deadline{
			TaskID:    t.ID,
			Title:     t.Title,
			SubjectID: t.SubjectID,
			Due:       due,
			HoursLeft: task.HoursUntil(due, now),
			Label:     humanize.RelTime(due, now, "ago", "from now"),
		})
	}
	sort.SliceStable(deadlines, func(i, j int) bool { return deadlines[i].Due.Before(deadlines[j].Due) })
	return deadlines
}

// NewSummary builds the dashboard from snapshots of the user's data.
func NewSummary(tasks []task.Task, subjects []subject.Subject, grades []grade.Grade, events []event.Event, now time.Time) Summary {
	s := Summary{
		TodayTasks:        make([]task.Task, 0),
		Deadlines:         NearDeadlines(tasks, now),
		Progress:          task.Progress(tasks),
		ConvenioAlerts:    subject.ConvenioAlerts(subjects, now),
		UpcomingEvents:    make([]event.Event, 0),
		SubjectsOverviews: subject.Overviews(subjects, tasks, now),
	}
	for _, t := range tasks {
		if !t.IsCompleted() {
			s.PendingCount++
		}
		if task.ViewToday.Match(t, now) {
			s.TodayTasks = append(s.TodayTasks, t)
		}
	}

	ids := make([]string, 0, len(subjects))
	for _, sub := range subjects {
		ids = append(ids, sub.ID)
	}
	if gpa, ok := grade.GPA(ids, grades); ok {
		s.GPA = &gpa
	}

	horizon := now.AddDate(0, 0, UpcomingEventDays)
	for _, e := range events {
		if !e.StartTime.Before(now) && e.StartTime.Before(horizon) {
			s.UpcomingEvents = append(s.UpcomingEvents, e)
		}
	}
	return s
}
