package task

import (
	"math"
	"time"
)

// NearDeadlineHours is the window, in whole hours, in which an upcoming due date is "near".
const NearDeadlineHours = 48

// Progress returns the rounded percentage of completed tasks, 0 when there are none.
func Progress(tasks []Task) int {
	if len(tasks) == 0 {
		return 0
	}
	var completed int
	for _, t := range tasks {
		if t.IsCompleted() {
			completed++
		}
	}
	return int(math.Round(100 * float64(completed) / float64(len(tasks))))
}

// NextDeadline returns the earliest due date among incomplete tasks.
func NextDeadline(tasks []Task) (time.Time, bool) {
	var (
		next  time.Time
		found bool
	)
	for _, t := range tasks {
		if t.IsCompleted() {
			continue
		}
		if due, ok := t.DueDate(); ok && (!found || due.Before(next)) {
			next, found = due, true
		}
	}
	return next, found
}

// HoursUntil counts the whole hours from now to due, truncated toward zero.
func HoursUntil(due, now time.Time) int {
	return int(due.Sub(now).Hours())
}

// IsDeadlineNear reports whether due is at most NearDeadlineHours ahead of now.
func IsDeadlineNear(due, now time.Time) bool {
	h := HoursUntil(due, now)
	return h >= 0 && h <= NearDeadlineHours
}
