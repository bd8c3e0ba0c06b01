package task

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/NicoleRU22/Studynest/core/ordering"
)

var (
	nowFunc = time.Now // mockable

	// errors
	ErrNotFound = errors.New("task not found")
)

type (
	Repository interface {
		CreateTask(ctx context.Context, t Task) (Task, error)
		// QueryTasks returns the user's tasks sorted by position, narrowed by filter.SubjectID and filter.ProjectID.
		QueryTasks(ctx context.Context, userID string, filter QueryFilter) ([]Task, error)
		GetTask(ctx context.Context, userID, id string) (Task, error)
		CountTasks(ctx context.Context, userID string) (int, error)
		UpdateTask(ctx context.Context, t Task) (Task, error)
		// SetTaskPositions writes all position changes in a single transaction.
		SetTaskPositions(ctx context.Context, userID string, changes []ordering.Change) error
		DeleteTask(ctx context.Context, userID, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Create appends a new task at the end of the user's list, whatever view the client is showing.
func (svc *Service) Create(ctx context.Context, userID string, nt NewTask) (Task, error) {
	count, err := svc.repo.CountTasks(ctx, userID)
	if err != nil {
		return Task{}, errors.Wrap(err, "counting tasks")
	}

	now := nowFunc().UTC()
	return svc.repo.CreateTask(ctx, Task{
		UserID:    userID,
		Title:     nt.Title,
		Kind:      nt.Kind(),
		Position:  ordering.Append(count),
		SubjectID: nt.SubjectID,
		ProjectID: nt.ProjectID,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

// QuickAdd creates a simple task from a title only.
func (svc *Service) QuickAdd(ctx context.Context, userID, title string) (Task, error) {
	return svc.Create(ctx, userID, NewTask{Title: title, Type: TypeSimple})
}

// Query lists the user's tasks by position. filter.View is applied after the store query.
func (svc *Service) Query(ctx context.Context, userID string, filter QueryFilter) ([]Task, error) {
	tasks, err := svc.repo.QueryTasks(ctx, userID, filter)
	if err != nil {
		return nil, errors.Wrap(err, "querying tasks")
	}
	if filter.View == "" || filter.View == ViewAll {
		return tasks, nil
	}

	now := nowFunc()
	filtered := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if filter.View.Match(t, now) {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

func (svc *Service) GetByID(ctx context.Context, userID, id string) (Task, error) {
	return svc.repo.GetTask(ctx, userID, id)
}

func (svc *Service) Update(ctx context.Context, orig Task, ut UpdateTask) (Task, error) {
	t := orig
	t.Title = ut.Title
	t.Kind = ut.Kind()
	t.SubjectID = ut.SubjectID
	t.ProjectID = ut.ProjectID
	t.UpdatedAt = nowFunc().UTC()
	return svc.repo.UpdateTask(ctx, t)
}

// Toggle flips the completion of a task. Completing a recurring task also creates its next occurrence,
// appended at the end of the list and returned as the second value.
// Un-completing a task never touches an occurrence spawned earlier.
func (svc *Service) Toggle(ctx context.Context, userID, id string) (Task, *Task, error) {
	t, err := svc.repo.GetTask(ctx, userID, id)
	if err != nil {
		return Task{}, nil, err
	}

	now := nowFunc().UTC()
	t.UpdatedAt = now
	if t.IsCompleted() {
		t.CompletedAt = nil
		t, err = svc.repo.UpdateTask(ctx, t)
		return t, nil, errors.Wrap(err, "reopening task")
	}

	t.CompletedAt = &now
	if t, err = svc.repo.UpdateTask(ctx, t); err != nil {
		return Task{}, nil, errors.Wrap(err, "completing task")
	}

	next, ok := NextOccurrence(t, now)
	if !ok {
		return t, nil, nil
	}
	count, err := svc.repo.CountTasks(ctx, userID)
	if err != nil {
		return t, nil, errors.Wrap(err, "counting tasks")
	}
	next.Position = ordering.Append(count)
	if next, err = svc.repo.CreateTask(ctx, next); err != nil {
		return t, nil, errors.Wrap(err, "creating next occurrence")
	}
	return t, &next, nil
}

// Reorder moves the dragged task onto the position of the task it was dropped over.
// Indexes refer to the full list, never to a filtered view.
func (svc *Service) Reorder(ctx context.Context, userID string, req ordering.Request) ([]Task, error) {
	tasks, err := svc.repo.QueryTasks(ctx, userID, QueryFilter{})
	if err != nil {
		return nil, errors.Wrap(err, "querying tasks")
	}
	from, to, err := ordering.Indexes(tasks, req)
	if err != nil {
		return nil, ErrNotFound
	}
	tasks, changes, err := ordering.Reorder(tasks, from, to)
	if err != nil {
		return nil, err
	}
	if len(changes) == 0 {
		return tasks, nil
	}
	if err = svc.repo.SetTaskPositions(ctx, userID, changes); err != nil {
		return nil, errors.Wrap(err, "saving task positions")
	}
	return tasks, nil
}

func (svc *Service) Delete(ctx context.Context, userID, id string) error {
	return svc.repo.DeleteTask(ctx, userID, id)
}
