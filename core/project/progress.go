package project

import "math"

// ChecklistProgress returns the rounded percentage of completed items.
// It is undefined for an empty checklist: the stored progress is then left as is.
func ChecklistProgress(items []ChecklistItem) (int, bool) {
	if len(items) == 0 {
		return 0, false
	}
	var completed int
	for _, i := range items {
		if i.IsComplete {
			completed++
		}
	}
	return int(math.Round(100 * float64(completed) / float64(len(items)))), true
}
