package task

import "time"

// NextOccurrence derives the task that follows t once t is completed at `now`.
// The due date drifts from the completion time, not from t's own due date.
// Only Recurring tasks have a next occurrence.
func NextOccurrence(t Task, now time.Time) (Task, bool) {
	r, ok := t.Kind.(Recurring)
	if !ok {
		return Task{}, false
	}

	now = now.UTC()
	var due time.Time
	switch r.Frequency {
	case Daily:
		due = now.AddDate(0, 0, 1)
	case Weekly:
		due = now.AddDate(0, 0, 7)
	default:
		return Task{}, false
	}

	return Task{
		UserID:    t.UserID,
		Title:     t.Title,
		Kind:      Recurring{Due: due, Frequency: r.Frequency},
		CreatedAt: now,
		UpdatedAt: now,
	}, true
}
