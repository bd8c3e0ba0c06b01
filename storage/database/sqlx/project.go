package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/NicoleRU22/Studynest/core/ordering"
	"github.com/NicoleRU22/Studynest/core/project"
)

const (
	projectColumns   = "id, user_id, title, description, status, progress, deadline, convenio_id, created_at, updated_at"
	checklistColumns = "id, project_id, text, is_complete, position, created_at"
	milestoneColumns = "id, project_id, name, date, position, created_at"
)

type projectRow struct {
	ID          string      `db:"id"`
	UserID      string      `db:"user_id"`
	Title       string      `db:"title"`
	Description null.String `db:"description"`
	Status      string      `db:"status"`
	Progress    int         `db:"progress"`
	Deadline    null.Time   `db:"deadline"`
	ConvenioID  null.String `db:"convenio_id"`
	CreatedAt   time.Time   `db:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at"`
}

func (r projectRow) model() project.Project {
	return project.Project{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Description: r.Description.Ptr(),
		Status:      project.Status(r.Status),
		Progress:    r.Progress,
		Deadline:    timePtr(r.Deadline),
		ConvenioID:  r.ConvenioID.Ptr(),
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}
}

type checklistRow struct {
	ID         string    `db:"id"`
	ProjectID  string    `db:"project_id"`
	Text       string    `db:"text"`
	IsComplete bool      `db:"is_complete"`
	Position   int       `db:"position"`
	CreatedAt  time.Time `db:"created_at"`
}

func (r checklistRow) model() project.ChecklistItem {
	return project.ChecklistItem{
		ID:         r.ID,
		ProjectID:  r.ProjectID,
		Text:       r.Text,
		IsComplete: r.IsComplete,
		Position:   r.Position,
		CreatedAt:  r.CreatedAt.UTC(),
	}
}

type milestoneRow struct {
	ID        string    `db:"id"`
	ProjectID string    `db:"project_id"`
	Name      string    `db:"name"`
	Date      null.Time `db:"date"`
	Position  int       `db:"position"`
	CreatedAt time.Time `db:"created_at"`
}

func (r milestoneRow) model() project.Milestone {
	return project.Milestone{
		ID:        r.ID,
		ProjectID: r.ProjectID,
		Name:      r.Name,
		Date:      timePtr(r.Date),
		Position:  r.Position,
		CreatedAt: r.CreatedAt.UTC(),
	}
}

type projectRepository struct {
	db *sqlx.DB
}

var _ project.Repository = (*projectRepository)(nil) // interface compliance check

func NewProjectRepository(db *sqlx.DB) *projectRepository {
	return &projectRepository{db: db}
}

func (repo projectRepository) CreateProject(ctx context.Context, p project.Project) (project.Project, error) {
	p.ID = uuid.New().String()
	q := repo.db.Rebind("INSERT INTO projects (" + projectColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
	_, err := repo.db.ExecContext(ctx, q,
		p.ID, p.UserID, p.Title, nullString(p.Description), string(p.Status), p.Progress,
		nullTime(p.Deadline), nullString(p.ConvenioID), p.CreatedAt.UTC(), p.UpdatedAt.UTC())
	if err != nil {
		return project.Project{}, errors.Wrap(err, "inserting project")
	}
	return p, nil
}

func (repo projectRepository) QueryProjects(ctx context.Context, userID string, filter project.QueryFilter) ([]project.Project, error) {
	q := "SELECT " + projectColumns + " FROM projects WHERE user_id = ?"
	args := []interface{}{userID}
	if filter.Status != "" {
		q += " AND status = ?"
		args = append(args, string(filter.Status))
	}
	q += " ORDER BY created_at DESC"

	var rows []projectRow
	if err := repo.db.SelectContext(ctx, &rows, repo.db.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "querying projects")
	}
	projects := make([]project.Project, 0, len(rows))
	for _, r := range rows {
		projects = append(projects, r.model())
	}
	return projects, nil
}

func (repo projectRepository) GetProject(ctx context.Context, userID, id string) (project.Project, error) {
	if _, err := uuid.Parse(id); err != nil {
		return project.Project{}, project.ErrNotFound
	}
	var row projectRow
	q := repo.db.Rebind("SELECT " + projectColumns + " FROM projects WHERE id = ? AND user_id = ?")
	if err := repo.db.GetContext(ctx, &row, q, id, userID); err != nil {
		return project.Project{}, trapNoRowsErr(err, project.ErrNotFound, "getting project")
	}
	return row.model(), nil
}

func (repo projectRepository) UpdateProject(ctx context.Context, p project.Project) (project.Project, error) {
	q := repo.db.Rebind(`UPDATE projects
		SET title = ?, description = ?, status = ?, progress = ?, deadline = ?, convenio_id = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`)
	res, err := repo.db.ExecContext(ctx, q,
		p.Title, nullString(p.Description), string(p.Status), p.Progress, nullTime(p.Deadline),
		nullString(p.ConvenioID), p.UpdatedAt.UTC(), p.ID, p.UserID)
	if err := checkAffected(res, err, project.ErrNotFound, "updating project"); err != nil {
		return project.Project{}, err
	}
	return p, nil
}

func (repo projectRepository) DeleteProject(ctx context.Context, userID, id string) error {
	return inTx(ctx, repo.db, func(tx *sqlx.Tx) error {
		q := tx.Rebind("UPDATE tasks SET project_id = NULL WHERE project_id = ? AND user_id = ?")
		if _, err := tx.ExecContext(ctx, q, id, userID); err != nil {
			return errors.Wrap(err, "unlinking tasks")
		}
		for _, table := range []string{"project_checklist", "project_milestones"} {
			q = tx.Rebind("DELETE FROM " + table + " WHERE project_id IN (SELECT id FROM projects WHERE id = ? AND user_id = ?)")
			if _, err := tx.ExecContext(ctx, q, id, userID); err != nil {
				return errors.Wrapf(err, "deleting %s", table)
			}
		}
		res, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM projects WHERE id = ? AND user_id = ?"), id, userID)
		return checkAffected(res, err, project.ErrNotFound, "deleting project")
	})
}

// Checklist

func (repo projectRepository) QueryChecklist(ctx context.Context, projectID string) ([]project.ChecklistItem, error) {
	var rows []checklistRow
	q := repo.db.Rebind("SELECT " + checklistColumns + " FROM project_checklist WHERE project_id = ? ORDER BY position, created_at")
	if err := repo.db.SelectContext(ctx, &rows, q, projectID); err != nil {
		return nil, errors.Wrap(err, "querying checklist")
	}
	items := make([]project.ChecklistItem, 0, len(rows))
	for _, r := range rows {
		items = append(items, r.model())
	}
	return items, nil
}

func (repo projectRepository) CreateChecklistItem(ctx context.Context, item project.ChecklistItem) (project.ChecklistItem, error) {
	item.ID = uuid.New().String()
	q := repo.db.Rebind("INSERT INTO project_checklist (" + checklistColumns + ") VALUES (?, ?, ?, ?, ?, ?)")
	_, err := repo.db.ExecContext(ctx, q, item.ID, item.ProjectID, item.Text, item.IsComplete, item.Position, item.CreatedAt.UTC())
	if err != nil {
		return project.ChecklistItem{}, errors.Wrap(err, "inserting checklist item")
	}
	return item, nil
}

func (repo projectRepository) UpdateChecklistItem(ctx context.Context, item project.ChecklistItem) (project.ChecklistItem, error) {
	q := repo.db.Rebind("UPDATE project_checklist SET text = ?, is_complete = ?, position = ? WHERE id = ? AND project_id = ?")
	res, err := repo.db.ExecContext(ctx, q, item.Text, item.IsComplete, item.Position, item.ID, item.ProjectID)
	if err := checkAffected(res, err, project.ErrChecklistNotFound, "updating checklist item"); err != nil {
		return project.ChecklistItem{}, err
	}
	return item, nil
}

func (repo projectRepository) DeleteChecklistItem(ctx context.Context, projectID, id string) error {
	q := repo.db.Rebind("DELETE FROM project_checklist WHERE id = ? AND project_id = ?")
	res, err := repo.db.ExecContext(ctx, q, id, projectID)
	return checkAffected(res, err, project.ErrChecklistNotFound, "deleting checklist item")
}

func (repo projectRepository) SetChecklistPositions(ctx context.Context, projectID string, changes []ordering.Change) error {
	return setPositions(ctx, repo.db, "project_checklist", "project_id", projectID, changes)
}

// Milestones

func (repo projectRepository) QueryMilestones(ctx context.Context, projectID string) ([]project.Milestone, error) {
	var rows []milestoneRow
	q := repo.db.Rebind("SELECT " + milestoneColumns + " FROM project_milestones WHERE project_id = ? ORDER BY position, created_at")
	if err := repo.db.SelectContext(ctx, &rows, q, projectID); err != nil {
		return nil, errors.Wrap(err, "querying milestones")
	}
	milestones := make([]project.Milestone, 0, len(rows))
	for _, r := range rows {
		milestones = append(milestones, r.model())
	}
	return milestones, nil
}

func (repo projectRepository) CreateMilestone(ctx context.Context, m project.Milestone) (project.Milestone, error) {
	m.ID = uuid.New().String()
	q := repo.db.Rebind("INSERT INTO project_milestones (" + milestoneColumns + ") VALUES (?, ?, ?, ?, ?, ?)")
	_, err := repo.db.ExecContext(ctx, q, m.ID, m.ProjectID, m.Name, nullTime(m.Date), m.Position, m.CreatedAt.UTC())
	if err != nil {
		return project.Milestone{}, errors.Wrap(err, "inserting milestone")
	}
	return m, nil
}

func (repo projectRepository) DeleteMilestone(ctx context.Context, projectID, id string) error {
	q := repo.db.Rebind("DELETE FROM project_milestones WHERE id = ? AND project_id = ?")
	res, err := repo.db.ExecContext(ctx, q, id, projectID)
	return checkAffected(res, err, project.ErrMilestoneNotFound, "deleting milestone")
}

func (repo projectRepository) SetMilestonePositions(ctx context.Context, projectID string, changes []ordering.Change) error {
	return setPositions(ctx, repo.db, "project_milestones", "project_id", projectID, changes)
}
