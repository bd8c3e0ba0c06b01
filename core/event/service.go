package event

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/NicoleRU22/Studynest/core/subject"
	"github.com/NicoleRU22/Studynest/core/task"
)

var (
	nowFunc = time.Now // mockable

	// errors
	ErrNotFound = errors.New("event not found")
)

type (
	Repository interface {
		CreateEvent(ctx context.Context, e Event) (Event, error)
		// QueryEvents returns the user's events sorted by start time, within [filter.From, filter.To) when set.
		QueryEvents(ctx context.Context, userID string, filter QueryFilter) ([]Event, error)
		GetEvent(ctx context.Context, userID, id string) (Event, error)
		UpdateEvent(ctx context.Context, e Event) (Event, error)
		DeleteEvent(ctx context.Context, userID, id string) error
	}

	TaskLister interface {
		QueryTasks(ctx context.Context, userID string, filter task.QueryFilter) ([]task.Task, error)
	}

	SubjectLister interface {
		QuerySubjects(ctx context.Context, userID string) ([]subject.Subject, error)
	}

	Service struct {
		repo     Repository
		tasks    TaskLister
		subjects SubjectLister
	}
)

func NewService(repo Repository, tasks TaskLister, subjects SubjectLister) *Service {
	return &Service{repo: repo, tasks: tasks, subjects: subjects}
}

func (svc *Service) Create(ctx context.Context, userID string, ne NewEvent) (Event, error) {
	return svc.repo.CreateEvent(ctx, Event{
		UserID:    userID,
		Title:     ne.Title,
		Type:      ne.Type,
		StartTime: ne.StartTime,
		EndTime:   ne.EndTime,
		SubjectID: ne.SubjectID,
		CreatedAt: nowFunc().UTC(),
	})
}

func (svc *Service) Query(ctx context.Context, userID string, filter QueryFilter) ([]Event, error) {
	return svc.repo.QueryEvents(ctx, userID, filter)
}

func (svc *Service) GetByID(ctx context.Context, userID, id string) (Event, error) {
	return svc.repo.GetEvent(ctx, userID, id)
}

func (svc *Service) Update(ctx context.Context, orig Event, ue UpdateEvent) (Event, error) {
	e := orig
	e.Title = ue.Title
	e.Type = ue.Type
	e.StartTime = ue.StartTime
	e.EndTime = ue.EndTime
	e.SubjectID = ue.SubjectID
	return svc.repo.UpdateEvent(ctx, e)
}

func (svc *Service) Delete(ctx context.Context, userID, id string) error {
	return svc.repo.DeleteEvent(ctx, userID, id)
}

// Week returns the calendar week containing date. A zero date means the current week.
func (svc *Service) Week(ctx context.Context, userID string, date time.Time) (Week, error) {
	now := nowFunc()
	if date.IsZero() {
		date = now
	}
	start, end := WeekRange(date)

	events, err := svc.repo.QueryEvents(ctx, userID, QueryFilter{From: start, To: end})
	if err != nil {
		return Week{}, errors.Wrap(err, "querying events")
	}
	tasks, err := svc.tasks.QueryTasks(ctx, userID, task.QueryFilter{})
	if err != nil {
		return Week{}, errors.Wrap(err, "querying tasks")
	}
	subjects, err := svc.subjects.QuerySubjects(ctx, userID)
	if err != nil {
		return Week{}, errors.Wrap(err, "querying subjects")
	}
	return NewWeek(date, events, tasks, subjects, now), nil
}
