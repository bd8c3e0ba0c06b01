package subject

import (
	"fmt"
	"sort"
	"time"

	"github.com/NicoleRU22/Studynest/core"
)

// ConvenioAlertDays is the inclusive window, in days, in which a convenio deadline raises an alert.
const ConvenioAlertDays = 7

type ConvenioAlert struct {
	SubjectID   string    `json:"subject_id"`
	SubjectName string    `json:"subject_name"`
	Color       string    `json:"color"`
	Deadline    time.Time `json:"deadline"`
	DaysLeft    int       `json:"days_left"`
	Label       string    `json:"label"`
}

// DaysUntil counts calendar days (UTC) from now to t. A deadline later today is 0.
func DaysUntil(t, now time.Time) int {
	return int(core.StartOfDay(t).Sub(core.StartOfDay(now)).Hours() / 24)
}

// DaysLabel renders a days count; day zero reads "today".
func DaysLabel(days int) string {
	switch days {
	case 0:
		return "today"
	case 1:
		return "1 day"
	default:
		return fmt.Sprintf("%d days", days)
	}
}

// ConvenioAlertFor returns the alert for s when its convenio deadline is 0 to 7 days away.
func ConvenioAlertFor(s Subject, now time.Time) (ConvenioAlert, bool) {
	if s.DeadlineConvenio == nil {
		return ConvenioAlert{}, false
	}
	days := DaysUntil(*s.DeadlineConvenio, now)
	if days < 0 || days > ConvenioAlertDays {
		return ConvenioAlert{}, false
	}
	return ConvenioAlert{
		SubjectID:   s.ID,
		SubjectName: s.Name,
		Color:       s.Color,
		Deadline:    *s.DeadlineConvenio,
		DaysLeft:    days,
		Label:       DaysLabel(days),
	}, true
}

// ConvenioAlerts lists the alerts of all subjects, soonest first.
func ConvenioAlerts(subjects []Subject, now time.Time) []ConvenioAlert {
	alerts := make([]ConvenioAlert, 0)
	for _, s := range subjects {
		if alert, ok := ConvenioAlertFor(s, now); ok {
			alerts = append(alerts, alert)
		}
	}
	sort.SliceStable(alerts, func(i, j int) bool { return alerts[i].DaysLeft < alerts[j].DaysLeft })
	return alerts
}
