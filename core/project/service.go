package project

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/NicoleRU22/Studynest/core/ordering"
)

var (
	nowFunc = time.Now // mockable

	// errors
	ErrNotFound          = errors.New("project not found")
	ErrChecklistNotFound = errors.New("checklist item not found")
	ErrMilestoneNotFound = errors.New("milestone not found")
)

type (
	Repository interface {
		CreateProject(ctx context.Context, p Project) (Project, error)
		// QueryProjects returns the user's projects, newest first.
		QueryProjects(ctx context.Context, userID string, filter QueryFilter) ([]Project, error)
		GetProject(ctx context.Context, userID, id string) (Project, error)
		UpdateProject(ctx context.Context, p Project) (Project, error)
		// DeleteProject deletes the project with its checklist and milestones and unlinks its tasks.
		DeleteProject(ctx context.Context, userID, id string) error

		// Checklist items and milestones are sorted by position.
		QueryChecklist(ctx context.Context, projectID string) ([]ChecklistItem, error)
		CreateChecklistItem(ctx context.Context, item ChecklistItem) (ChecklistItem, error)
		UpdateChecklistItem(ctx context.Context, item ChecklistItem) (ChecklistItem, error)
		DeleteChecklistItem(ctx context.Context, projectID, id string) error
		SetChecklistPositions(ctx context.Context, projectID string, changes []ordering.Change) error

		QueryMilestones(ctx context.Context, projectID string) ([]Milestone, error)
		CreateMilestone(ctx context.Context, m Milestone) (Milestone, error)
		DeleteMilestone(ctx context.Context, projectID, id string) error
		SetMilestonePositions(ctx context.Context, projectID string, changes []ordering.Change) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, userID string, np NewProject) (Project, error) {
	now := nowFunc().UTC()
	return svc.repo.CreateProject(ctx, Project{
		UserID:      userID,
		Title:       np.Title,
		Description: np.Description,
		Status:      np.Status,
		Deadline:    np.Deadline,
		ConvenioID:  np.ConvenioID,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (svc *Service) Query(ctx context.Context, userID string, filter QueryFilter) ([]Project, error) {
	return svc.repo.QueryProjects(ctx, userID, filter)
}

// QueryBoard returns the user's projects grouped by kanban column.
func (svc *Service) QueryBoard(ctx context.Context, userID string) (Board, error) {
	projects, err := svc.repo.QueryProjects(ctx, userID, QueryFilter{})
	if err != nil {
		return nil, errors.Wrap(err, "querying projects")
	}
	return NewBoard(projects), nil
}

func (svc *Service) GetByID(ctx context.Context, userID, id string) (Project, error) {
	return svc.repo.GetProject(ctx, userID, id)
}

// GetDetail returns p along with its checklist and milestones.
func (svc *Service) GetDetail(ctx context.Context, p Project) (Detail, error) {
	checklist, err := svc.repo.QueryChecklist(ctx, p.ID)
	if err != nil {
		return Detail{}, errors.Wrap(err, "querying checklist")
	}
	milestones, err := svc.repo.QueryMilestones(ctx, p.ID)
	if err != nil {
		return Detail{}, errors.Wrap(err, "querying milestones")
	}
	return Detail{Project: p, Checklist: checklist, Milestones: milestones}, nil
}

func (svc *Service) Update(ctx context.Context, orig Project, up UpdateProject) (Project, error) {
	p := orig
	p.Title = up.Title
	p.Description = up.Description
	p.Status = up.Status
	p.Deadline = up.Deadline
	p.ConvenioID = up.ConvenioID
	p.UpdatedAt = nowFunc().UTC()
	return svc.repo.UpdateProject(ctx, p)
}

// Move changes the kanban column of a project.
func (svc *Service) Move(ctx context.Context, p Project, mp MoveProject) (Project, error) {
	p.Status = mp.Status
	p.UpdatedAt = nowFunc().UTC()
	return svc.repo.UpdateProject(ctx, p)
}

func (svc *Service) Delete(ctx context.Context, userID, id string) error {
	return svc.repo.DeleteProject(ctx, userID, id)
}

// refreshProgress recomputes the progress of p from its checklist and persists it when it changed.
// An empty checklist leaves the stored progress untouched.
func (svc *Service) refreshProgress(ctx context.Context, p Project) (Detail, error) {
	d, err := svc.GetDetail(ctx, p)
	if err != nil {
		return Detail{}, err
	}
	progress, ok := ChecklistProgress(d.Checklist)
	if !ok || progress == p.Progress {
		return d, nil
	}

	p.Progress = progress
	p.UpdatedAt = nowFunc().UTC()
	if d.Project, err = svc.repo.UpdateProject(ctx, p); err != nil {
		return Detail{}, errors.Wrap(err, "saving project progress")
	}
	return d, nil
}

// AddChecklistItem appends an item to the checklist of p.
func (svc *Service) AddChecklistItem(ctx context.Context, p Project, ni NewChecklistItem) (Detail, error) {
	items, err := svc.repo.QueryChecklist(ctx, p.ID)
	if err != nil {
		return Detail{}, errors.Wrap(err, "querying checklist")
	}
	_, err = svc.repo.CreateChecklistItem(ctx, ChecklistItem{
		ProjectID: p.ID,
		Text:      ni.Text,
		Position:  ordering.Append(len(items)),
		CreatedAt: nowFunc().UTC(),
	})
	if err != nil {
		return Detail{}, errors.Wrap(err, "creating checklist item")
	}
	return svc.refreshProgress(ctx, p)
}

// ToggleChecklistItem flips the completion of an item of p.
func (svc *Service) ToggleChecklistItem(ctx context.Context, p Project, itemID string) (Detail, error) {
	items, err := svc.repo.QueryChecklist(ctx, p.ID)
	if err != nil {
		return Detail{}, errors.Wrap(err, "querying checklist")
	}
	idx := ordering.IndexOf(items, itemID)
	if idx < 0 {
		return Detail{}, ErrChecklistNotFound
	}

	item := items[idx]
	item.IsComplete = !item.IsComplete
	if _, err = svc.repo.UpdateChecklistItem(ctx, item); err != nil {
		return Detail{}, errors.Wrap(err, "updating checklist item")
	}
	return svc.refreshProgress(ctx, p)
}

func (svc *Service) DeleteChecklistItem(ctx context.Context, p Project, itemID string) (Detail, error) {
	if err := svc.repo.DeleteChecklistItem(ctx, p.ID, itemID); err != nil {
		return Detail{}, err
	}
	return svc.refreshProgress(ctx, p)
}

func (svc *Service) ReorderChecklist(ctx context.Context, p Project, req ordering.Request) (Detail, error) {
	items, err := svc.repo.QueryChecklist(ctx, p.ID)
	if err != nil {
		return Detail{}, errors.Wrap(err, "querying checklist")
	}
	from, to, err := ordering.Indexes(items, req)
	if err != nil {
		return Detail{}, ErrChecklistNotFound
	}
	_, changes, err := ordering.Reorder(items, from, to)
	if err != nil {
		return Detail{}, err
	}
	if len(changes) > 0 {
		if err = svc.repo.SetChecklistPositions(ctx, p.ID, changes); err != nil {
			return Detail{}, errors.Wrap(err, "saving checklist positions")
		}
	}
	return svc.GetDetail(ctx, p)
}

// AddMilestone appends a milestone to p.
func (svc *Service) AddMilestone(ctx context.Context, p Project, nm NewMilestone) (Detail, error) {
	milestones, err := svc.repo.QueryMilestones(ctx, p.ID)
	if err != nil {
		return Detail{}, errors.Wrap(err, "querying milestones")
	}
	var date *time.Time
	if nm.Date != nil {
		d := nm.Date.UTC()
		date = &d
	}
	_, err = svc.repo.CreateMilestone(ctx, Milestone{
		ProjectID: p.ID,
		Name:      nm.Name,
		Date:      date,
		Position:  ordering.Append(len(milestones)),
		CreatedAt: nowFunc().UTC(),
	})
	if err != nil {
		return Detail{}, errors.Wrap(err, "creating milestone")
	}
	return svc.GetDetail(ctx, p)
}

func (svc *Service) DeleteMilestone(ctx context.Context, p Project, milestoneID string) (Detail, error) {
	if err := svc.repo.DeleteMilestone(ctx, p.ID, milestoneID); err != nil {
		return Detail{}, err
	}
	return svc.GetDetail(ctx, p)
}

func (svc *Service) ReorderMilestones(ctx context.Context, p Project, req ordering.Request) (Detail, error) {
	milestones, err := svc.repo.QueryMilestones(ctx, p.ID)
	if err != nil {
		return Detail{}, errors.Wrap(err, "querying milestones")
	}
	from, to, err := ordering.Indexes(milestones, req)
	if err != nil {
		return Detail{}, ErrMilestoneNotFound
	}
	_, changes, err := ordering.Reorder(milestones, from, to)
	if err != nil {
		return Detail{}, err
	}
	if len(changes) > 0 {
		if err = svc.repo.SetMilestonePositions(ctx, p.ID, changes); err != nil {
			return Detail{}, errors.Wrap(err, "saving milestone positions")
		}
	}
	return svc.GetDetail(ctx, p)
}
