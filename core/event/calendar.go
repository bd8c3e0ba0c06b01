package event

import (
	"sort"
	"time"

	"github.com/NicoleRU22/Studynest/core"
	"github.com/NicoleRU22/Studynest/core/subject"
	"github.com/NicoleRU22/Studynest/core/task"
)

type Source string

const (
	SourceEvent Source = "event"
	SourceTask  Source = "task"
)

type (
	// Entry is a single item shown on a calendar day: a stored event or a task due that day.
	Entry struct {
		ID        string     `json:"id"`
		Source    Source     `json:"source"`
		Title     string     `json:"title"`
		Type      Type       `json:"type"`
		StartTime time.Time  `json:"start_time"`
		EndTime   *time.Time `json:"end_time"`
		SubjectID *string    `json:"subject_id"`
		Completed bool       `json:"completed"`
	}

	Day struct {
		Date    time.Time `json:"date"`
		Entries []Entry   `json:"entries"`
	}

	Week struct {
		Start          time.Time               `json:"start"` // Monday, midnight UTC
		End            time.Time               `json:"end"`   // Sunday, midnight UTC
		Days           []Day                   `json:"days"`
		ConvenioAlerts []subject.ConvenioAlert `json:"convenio_alerts"`
	}
)

// WeekRange returns the [Monday, next Monday) interval of the week containing date.
func WeekRange(date time.Time) (time.Time, time.Time) {
	start := core.StartOfWeek(date)
	return start, start.AddDate(0, 0, 7)
}

// NewWeek lays out the week containing date. Events go on the day they start, tasks on the
// day they are due, both sorted by time. Convenio alerts are relative to now, not to the week shown.
func NewWeek(date time.Time, events []Event, tasks []task.Task, subjects []subject.Subject, now time.Time) Week {
	start, end := WeekRange(date)
	w := Week{
		Start:          start,
		End:            end.AddDate(0, 0, -1),
		Days:           make([]Day, 7),
		ConvenioAlerts: subject.ConvenioAlerts(subjects, now),
	}
	for i := range w.Days {
		w.Days[i] = Day{Date: start.AddDate(0, 0, i), Entries: []Entry{}}
	}

	place := func(at time.Time, e Entry) {
		at = at.UTC()
		if at.Before(start) || !at.Before(end) {
			return
		}
		i := int(core.StartOfDay(at).Sub(start).Hours() / 24)
		w.Days[i].Entries = append(w.Days[i].Entries, e)
	}

	for _, ev := range events {
		place(ev.StartTime, Entry{
			ID:        ev.ID,
			Source:    SourceEvent,
			Title:     ev.Title,
			Type:      ev.Type,
			StartTime: ev.StartTime.UTC(),
			EndTime:   ev.EndTime,
			SubjectID: ev.SubjectID,
		})
	}
	for _, t := range tasks {
		due, ok := t.DueDate()
		if !ok {
			continue
		}
		place(due, Entry{
			ID:        t.ID,
			Source:    SourceTask,
			Title:     t.Title,
			Type:      TypeDeadline,
			StartTime: due.UTC(),
			SubjectID: t.SubjectID,
			Completed: t.IsCompleted(),
		})
	}

	for i := range w.Days {
		entries := w.Days[i].Entries
		sort.SliceStable(entries, func(a, b int) bool { return entries[a].StartTime.Before(entries[b].StartTime) })
	}
	return w
}
