package subject

import (
	"time"

	"github.com/NicoleRU22/Studynest/core/task"
)

// Overview is a Subject along with the statistics derived from its tasks.
type Overview struct {
	Subject
	Progress      int            `json:"progress"`
	TaskCount     int            `json:"task_count"`
	NextDeadline  *time.Time     `json:"next_deadline"`
	DeadlineNear  bool           `json:"deadline_near"`
	ConvenioAlert *ConvenioAlert `json:"convenio_alert"`
}

// NewOverview computes the overview of s from the tasks linked to it.
func NewOverview(s Subject, tasks []task.Task, now time.Time) Overview {
	ov := Overview{
		Subject:   s,
		Progress:  task.Progress(tasks),
		TaskCount: len(tasks),
	}
	if next, ok := task.NextDeadline(tasks); ok {
		ov.NextDeadline = &next
		ov.DeadlineNear = task.IsDeadlineNear(next, now)
	}
	if alert, ok := ConvenioAlertFor(s, now); ok {
		ov.ConvenioAlert = &alert
	}
	return ov
}

// Overviews joins the subjects with a snapshot of the owner's tasks.
func Overviews(subjects []Subject, tasks []task.Task, now time.Time) []Overview {
	bySubject := make(map[string][]task.Task, len(subjects))
	for _, t := range tasks {
		if t.SubjectID != nil {
			bySubject[*t.SubjectID] = append(bySubject[*t.SubjectID], t)
		}
	}

	overviews := make([]Overview, 0, len(subjects))
	for _, s := range subjects {
		overviews = append(overviews, NewOverview(s, bySubject[s.ID], now))
	}
	return overviews
}
