package dashboard

import (
	"time"

	"github.com/dustin/go-humanize"

	"github.com/NicoleRU22/Studynest/core/subject"
	"github.com/NicoleRU22/Studynest/core/task"
)

type (
	DigestDeadline struct {
		Title string
		Due   string // eg. "Mar 14 at 15:00, 1 day from now"
	}

	DigestConvenio struct {
		Subject string
		Label   string
	}

	// Digest is the data of the `deadline_digest` email template.
	Digest struct {
		Name      string
		Deadlines []DigestDeadline
		Convenios []DigestConvenio
	}
)

func (d Digest) IsEmpty() bool {
	return len(d.Deadlines) == 0 && len(d.Convenios) == 0
}

// NewDigest gathers the near deadlines and convenio alerts of a user.
func NewDigest(name string, tasks []task.Task, subjects []subject.Subject, now time.Time) Digest {
	d := Digest{Name: name}
	for _, dl := range NearDeadlines(tasks, now) {
		d.Deadlines = append(d.Deadlines, DigestDeadline{
			Title: dl.Title,
			Due:   dl.Due.Format("Jan 2 at 15:04") + ", " + humanize.RelTime(dl.Due, now, "ago", "from now"),
		})
	}
	for _, alert := range subject.ConvenioAlerts(subjects, now) {
		label := "closes " + alert.Label
		if alert.DaysLeft > 0 {
			label = "closes in " + alert.Label
		}
		d.Convenios = append(d.Convenios, DigestConvenio{Subject: alert.SubjectName, Label: label})
	}
	return d
}
