package subject

import (
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NicoleRU22/Studynest/core"
	"github.com/NicoleRU22/Studynest/core/task"
)

var refNow = time.Date(2024, time.March, 13, 10, 0, 0, 0, time.UTC)

func date(days int) *time.Time {
	d := core.StartOfDay(refNow).AddDate(0, 0, days)
	return &d
}

func TestConvenioAlertFor(t *testing.T) {
	laterToday := time.Date(2024, time.March, 13, 23, 0, 0, 0, time.UTC)
	tests := []struct {
		name      string
		deadline  *time.Time
		wantOk    bool
		wantDays  int
		wantLabel string
	}{
		{name: "no deadline"},
		{name: "yesterday", deadline: date(-1)},
		{name: "today", deadline: date(0), wantOk: true, wantDays: 0, wantLabel: "today"},
		{name: "later today", deadline: &laterToday, wantOk: true, wantDays: 0, wantLabel: "today"},
		{name: "tomorrow", deadline: date(1), wantOk: true, wantDays: 1, wantLabel: "1 day"},
		{name: "in 7 days", deadline: date(7), wantOk: true, wantDays: 7, wantLabel: "7 days"},
		{name: "in 8 days", deadline: date(8)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Subject{ID: "s1", Name: "Calculus", DeadlineConvenio: tt.deadline}
			alert, ok := ConvenioAlertFor(s, refNow)
			assert.Equal(t, tt.wantOk, ok)
			if ok {
				assert.Equal(t, tt.wantDays, alert.DaysLeft)
				assert.Equal(t, tt.wantLabel, alert.Label)
				assert.Equal(t, "Calculus", alert.SubjectName)
			}
		})
	}
}

func TestConvenioAlerts_sorted(t *testing.T) {
	subjects := []Subject{
		{ID: "a", Name: "A", DeadlineConvenio: date(5)},
		{ID: "b", Name: "B"},
		{ID: "c", Name: "C", DeadlineConvenio: date(0)},
		{ID: "d", Name: "D", DeadlineConvenio: date(30)},
	}
	alerts := ConvenioAlerts(subjects, refNow)
	require.Len(t, alerts, 2)
	assert.Equal(t, "c", alerts[0].SubjectID)
	assert.Equal(t, "a", alerts[1].SubjectID)
}

func TestOverviews(t *testing.T) {
	calculus, physics := "calc", "phys"
	completed := refNow.Add(-time.Hour)
	due := refNow.Add(30 * time.Hour)
	farDue := refNow.Add(100 * time.Hour)

	tasks := []task.Task{
		{Title: "1", Kind: task.Simple{}, SubjectID: &calculus, CompletedAt: &completed},
		{Title: "2", Kind: task.Deadline{Due: farDue}, SubjectID: &calculus},
		{Title: "3", Kind: task.Deadline{Due: due}, SubjectID: &calculus},
		{Title: "4", Kind: task.Simple{}, SubjectID: &calculus},
		{Title: "5", Kind: task.Deadline{Due: due}, SubjectID: &physics, CompletedAt: &completed},
		{Title: "unlinked", Kind: task.Simple{}},
	}
	subjects := []Subject{
		{ID: calculus, Name: "Calculus", DeadlineConvenio: date(3)},
		{ID: physics, Name: "Physics"},
		{ID: "empty", Name: "Empty"},
	}

	ovs := Overviews(subjects, tasks, refNow)
	require.Len(t, ovs, 3)

	calc := ovs[0]
	assert.Equal(t, 25, calc.Progress)
	assert.Equal(t, 4, calc.TaskCount)
	require.NotNil(t, calc.NextDeadline)
	assert.Equal(t, due, *calc.NextDeadline)
	assert.True(t, calc.DeadlineNear)
	require.NotNil(t, calc.ConvenioAlert)
	assert.Equal(t, 3, calc.ConvenioAlert.DaysLeft)

	phys := ovs[1]
	assert.Equal(t, 100, phys.Progress)
	assert.Nil(t, phys.NextDeadline, "completed tasks have no upcoming deadline")
	assert.False(t, phys.DeadlineNear)
	assert.Nil(t, phys.ConvenioAlert)

	empty := ovs[2]
	assert.Equal(t, 0, empty.Progress)
	assert.Equal(t, 0, empty.TaskCount)
}

func TestNewSubject_Validate(t *testing.T) {
	validate := validator.New()
	core.InitValidators(validate, core.NewTranslator())

	ns := NewSubject{Name: "  Calculus ", Professor: strPtr("  "), DeadlineConvenio: &refNow}
	require.NoError(t, ns.Validate(validate))
	assert.Equal(t, "Calculus", ns.Name)
	assert.Equal(t, DefaultColor, ns.Color)
	assert.Nil(t, ns.Professor)
	assert.Equal(t, core.StartOfDay(refNow), *ns.DeadlineConvenio)

	ns = NewSubject{Name: "Physics", Color: "blue"}
	err := ns.Validate(validate)
	var vErrs validator.ValidationErrors
	require.ErrorAs(t, err, &vErrs)
	assert.Equal(t, "color", vErrs[0].Field())

	us := UpdateSubject{Color: "#00ff00"}
	require.NoError(t, us.Validate(Subject{Name: "Orig", Color: DefaultColor}, validate))
	assert.Equal(t, "Orig", us.Name)
	assert.Equal(t, "#00ff00", us.Color)
}

func strPtr(s string) *string { return &s }
