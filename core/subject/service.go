package subject

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/NicoleRU22/Studynest/core/task"
)

var (
	nowFunc = time.Now // mockable

	// errors
	ErrNotFound = errors.New("subject not found")
)

type (
	Repository interface {
		CreateSubject(ctx context.Context, s Subject) (Subject, error)
		// QuerySubjects returns the user's subjects sorted by name.
		QuerySubjects(ctx context.Context, userID string) ([]Subject, error)
		GetSubject(ctx context.Context, userID, id string) (Subject, error)
		UpdateSubject(ctx context.Context, s Subject) (Subject, error)
		// DeleteSubject unlinks every task, grade, note, event and project referencing the subject, then deletes it.
		DeleteSubject(ctx context.Context, userID, id string) error
	}

	TaskLister interface {
		QueryTasks(ctx context.Context, userID string, filter task.QueryFilter) ([]task.Task, error)
	}

	Service struct {
		repo  Repository
		tasks TaskLister
	}
)

func NewService(repo Repository, tasks TaskLister) *Service {
	return &Service{repo: repo, tasks: tasks}
}

func (svc *Service) Create(ctx context.Context, userID string, ns NewSubject) (Subject, error) {
	now := nowFunc().UTC()
	return svc.repo.CreateSubject(ctx, Subject{
		UserID:           userID,
		Name:             ns.Name,
		Color:            ns.Color,
		Professor:        ns.Professor,
		Schedule:         ns.Schedule,
		Notes:            ns.Notes,
		DeadlineConvenio: ns.DeadlineConvenio,
		CreatedAt:        now,
		UpdatedAt:        now,
	})
}

func (svc *Service) Query(ctx context.Context, userID string) ([]Subject, error) {
	return svc.repo.QuerySubjects(ctx, userID)
}

// QueryOverviews lists the user's subjects with their progress, next deadline and convenio alert.
func (svc *Service) QueryOverviews(ctx context.Context, userID string) ([]Overview, error) {
	subjects, err := svc.repo.QuerySubjects(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "querying subjects")
	}
	tasks, err := svc.tasks.QueryTasks(ctx, userID, task.QueryFilter{})
	if err != nil {
		return nil, errors.Wrap(err, "querying tasks")
	}
	return Overviews(subjects, tasks, nowFunc()), nil
}

func (svc *Service) GetByID(ctx context.Context, userID, id string) (Subject, error) {
	return svc.repo.GetSubject(ctx, userID, id)
}

// GetOverview returns a single subject with its statistics.
func (svc *Service) GetOverview(ctx context.Context, userID, id string) (Overview, error) {
	s, err := svc.repo.GetSubject(ctx, userID, id)
	if err != nil {
		return Overview{}, err
	}
	tasks, err := svc.tasks.QueryTasks(ctx, userID, task.QueryFilter{SubjectID: s.ID})
	if err != nil {
		return Overview{}, errors.Wrap(err, "querying tasks")
	}
	return NewOverview(s, tasks, nowFunc()), nil
}

func (svc *Service) Update(ctx context.Context, orig Subject, us UpdateSubject) (Subject, error) {
	s := orig
	s.Name = us.Name
	s.Color = us.Color
	s.Professor = us.Professor
	s.Schedule = us.Schedule
	s.Notes = us.Notes
	s.DeadlineConvenio = us.DeadlineConvenio
	s.UpdatedAt = nowFunc().UTC()
	return svc.repo.UpdateSubject(ctx, s)
}

func (svc *Service) Delete(ctx context.Context, userID, id string) error {
	return svc.repo.DeleteSubject(ctx, userID, id)
}
