package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/NicoleRU22/Studynest/core/ordering"
	"github.com/NicoleRU22/Studynest/core/task"
)

const taskColumns = "id, user_id, title, type, due_date, is_recurring, recurring_frequency, completed_at, position, " +
	"subject_id, project_id, created_at, updated_at"

type taskRow struct {
	ID                 string      `db:"id"`
	UserID             string      `db:"user_id"`
	Title              string      `db:"title"`
	Type               string      `db:"type"`
	DueDate            null.Time   `db:"due_date"`
	IsRecurring        bool        `db:"is_recurring"`
	RecurringFrequency null.String `db:"recurring_frequency"`
	CompletedAt        null.Time   `db:"completed_at"`
	Position           int         `db:"position"`
	SubjectID          null.String `db:"subject_id"`
	ProjectID          null.String `db:"project_id"`
	CreatedAt          time.Time   `db:"created_at"`
	UpdatedAt          time.Time   `db:"updated_at"`
}

func newTaskRow(t task.Task) taskRow {
	f := task.FieldsOf(t.Kind)
	var freq null.String
	if f.Frequency != nil {
		freq = null.StringFrom(string(*f.Frequency))
	}
	return taskRow{
		ID:                 t.ID,
		UserID:             t.UserID,
		Title:              t.Title,
		Type:               string(f.Type),
		DueDate:            nullTime(f.DueDate),
		IsRecurring:        f.IsRecurring,
		RecurringFrequency: freq,
		CompletedAt:        nullTime(t.CompletedAt),
		Position:           t.Position,
		SubjectID:          nullString(t.SubjectID),
		ProjectID:          nullString(t.ProjectID),
		CreatedAt:          t.CreatedAt.UTC(),
		UpdatedAt:          t.UpdatedAt.UTC(),
	}
}

func (r taskRow) model() (task.Task, error) {
	f := task.Fields{
		Type:        task.Type(r.Type),
		DueDate:     timePtr(r.DueDate),
		IsRecurring: r.IsRecurring,
	}
	if r.RecurringFrequency.Valid {
		freq := task.Frequency(r.RecurringFrequency.String)
		f.Frequency = &freq
	}
	kind, err := f.Kind()
	if err != nil {
		return task.Task{}, errors.Wrapf(err, "task %s", r.ID)
	}
	return task.Task{
		ID:          r.ID,
		UserID:      r.UserID,
		Title:       r.Title,
		Kind:        kind,
		CompletedAt: timePtr(r.CompletedAt),
		Position:    r.Position,
		SubjectID:   r.SubjectID.Ptr(),
		ProjectID:   r.ProjectID.Ptr(),
		CreatedAt:   r.CreatedAt.UTC(),
		UpdatedAt:   r.UpdatedAt.UTC(),
	}, nil
}

type taskRepository struct {
	db *sqlx.DB
}

var _ task.Repository = (*taskRepository)(nil) // interface compliance check

func NewTaskRepository(db *sqlx.DB) *taskRepository {
	return &taskRepository{db: db}
}

func (repo taskRepository) CreateTask(ctx context.Context, t task.Task) (task.Task, error) {
	t.ID = uuid.New().String()
	r := newTaskRow(t)
	q := repo.db.Rebind("INSERT INTO tasks (" + taskColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
	_, err := repo.db.ExecContext(ctx, q,
		r.ID, r.UserID, r.Title, r.Type, r.DueDate, r.IsRecurring, r.RecurringFrequency, r.CompletedAt, r.Position,
		r.SubjectID, r.ProjectID, r.CreatedAt, r.UpdatedAt)
	if err != nil {
		return task.Task{}, errors.Wrap(err, "inserting task")
	}
	return r.model()
}

func (repo taskRepository) QueryTasks(ctx context.Context, userID string, filter task.QueryFilter) ([]task.Task, error) {
	q := "SELECT " + taskColumns + " FROM tasks WHERE user_id = ?"
	args := []interface{}{userID}
	if filter.SubjectID != "" {
		q += " AND subject_id = ?"
		args = append(args, filter.SubjectID)
	}
	if filter.ProjectID != "" {
		q += " AND project_id = ?"
		args = append(args, filter.ProjectID)
	}
	q += " ORDER BY position, created_at"

	var rows []taskRow
	if err := repo.db.SelectContext(ctx, &rows, repo.db.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "querying tasks")
	}
	tasks := make([]task.Task, 0, len(rows))
	for _, r := range rows {
		t, err := r.model()
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func (repo taskRepository) GetTask(ctx context.Context, userID, id string) (task.Task, error) {
	if _, err := uuid.Parse(id); err != nil {
		return task.Task{}, task.ErrNotFound
	}
	var row taskRow
	q := repo.db.Rebind("SELECT " + taskColumns + " FROM tasks WHERE id = ? AND user_id = ?")
	if err := repo.db.GetContext(ctx, &row, q, id, userID); err != nil {
		return task.Task{}, trapNoRowsErr(err, task.ErrNotFound, "getting task")
	}
	return row.model()
}

func (repo taskRepository) CountTasks(ctx context.Context, userID string) (int, error) {
	var count int
	if err := repo.db.GetContext(ctx, &count, repo.db.Rebind("SELECT COUNT(*) FROM tasks WHERE user_id = ?"), userID); err != nil {
		return 0, errors.Wrap(err, "counting tasks")
	}
	return count, nil
}

func (repo taskRepository) UpdateTask(ctx context.Context, t task.Task) (task.Task, error) {
	r := newTaskRow(t)
	q := repo.db.Rebind(`UPDATE tasks
		SET title = ?, type = ?, due_date = ?, is_recurring = ?, recurring_frequency = ?, completed_at = ?,
			position = ?, subject_id = ?, project_id = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`)
	res, err := repo.db.ExecContext(ctx, q,
		r.Title, r.Type, r.DueDate, r.IsRecurring, r.RecurringFrequency, r.CompletedAt,
		r.Position, r.SubjectID, r.ProjectID, r.UpdatedAt, r.ID, r.UserID)
	if err := checkAffected(res, err, task.ErrNotFound, "updating task"); err != nil {
		return task.Task{}, err
	}
	return r.model()
}

func (repo taskRepository) SetTaskPositions(ctx context.Context, userID string, changes []ordering.Change) error {
	return setPositions(ctx, repo.db, "tasks", "user_id", userID, changes)
}

func (repo taskRepository) DeleteTask(ctx context.Context, userID, id string) error {
	res, err := repo.db.ExecContext(ctx, repo.db.Rebind("DELETE FROM tasks WHERE id = ? AND user_id = ?"), id, userID)
	return checkAffected(res, err, task.ErrNotFound, "deleting task")
}
