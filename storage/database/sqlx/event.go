package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/NicoleRU22/Studynest/core/event"
)

const eventColumns = "id, user_id, title, type, start_time, end_time, subject_id, created_at"

type eventRow struct {
	ID        string      `db:"id"`
	UserID    string      `db:"user_id"`
	Title     string      `db:"title"`
	Type      string      `db:"type"`
	StartTime time.Time   `db:"start_time"`
	EndTime   null.Time   `db:"end_time"`
	SubjectID null.String `db:"subject_id"`
	CreatedAt time.Time   `db:"created_at"`
}

func (r eventRow) model() event.Event {
	return event.Event{
		ID:        r.ID,
		UserID:    r.UserID,
		Title:     r.Title,
		Type:      event.Type(r.Type),
		StartTime: r.StartTime.UTC(),
		EndTime:   timePtr(r.EndTime),
		SubjectID: r.SubjectID.Ptr(),
		CreatedAt: r.CreatedAt.UTC(),
	}
}

type eventRepository struct {
	db *sqlx.DB
}

var _ event.Repository = (*eventRepository)(nil) // interface compliance check

func NewEventRepository(db *sqlx.DB) *eventRepository {
	return &eventRepository{db: db}
}

func (repo eventRepository) CreateEvent(ctx context.Context, e event.Event) (event.Event, error) {
	e.ID = uuid.New().String()
	q := repo.db.Rebind("INSERT INTO events (" + eventColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	_, err := repo.db.ExecContext(ctx, q,
		e.ID, e.UserID, e.Title, string(e.Type), e.StartTime.UTC(), nullTime(e.EndTime), nullString(e.SubjectID), e.CreatedAt.UTC())
	if err != nil {
		return event.Event{}, errors.Wrap(err, "inserting event")
	}
	return e, nil
}

func (repo eventRepository) QueryEvents(ctx context.Context, userID string, filter event.QueryFilter) ([]event.Event, error) {
	q := "SELECT " + eventColumns + " FROM events WHERE user_id = ?"
	args := []interface{}{userID}
	if !filter.From.IsZero() {
		q += " AND start_time >= ?"
		args = append(args, filter.From.UTC())
	}
	if !filter.To.IsZero() {
		q += " AND start_time < ?"
		args = append(args, filter.To.UTC())
	}
	q += " ORDER BY start_time"

	var rows []eventRow
	if err := repo.db.SelectContext(ctx, &rows, repo.db.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "querying events")
	}
	events := make([]event.Event, 0, len(rows))
	for _, r := range rows {
		events = append(events, r.model())
	}
	return events, nil
}

func (repo eventRepository) GetEvent(ctx context.Context, userID, id string) (event.Event, error) {
	if _, err := uuid.Parse(id); err != nil {
		return event.Event{}, event.ErrNotFound
	}
	var row eventRow
	q := repo.db.Rebind("SELECT " + eventColumns + " FROM events WHERE id = ? AND user_id = ?")
	if err := repo.db.GetContext(ctx, &row, q, id, userID); err != nil {
		return event.Event{}, trapNoRowsErr(err, event.ErrNotFound, "getting event")
	}
	return row.model(), nil
}

func (repo eventRepository) UpdateEvent(ctx context.Context, e event.Event) (event.Event, error) {
	q := repo.db.Rebind("UPDATE events SET title = ?, type = ?, start_time = ?, end_time = ?, subject_id = ? WHERE id = ? AND user_id = ?")
	res, err := repo.db.ExecContext(ctx, q,
		e.Title, string(e.Type), e.StartTime.UTC(), nullTime(e.EndTime), nullString(e.SubjectID), e.ID, e.UserID)
	if err := checkAffected(res, err, event.ErrNotFound, "updating event"); err != nil {
		return event.Event{}, err
	}
	return e, nil
}

func (repo eventRepository) DeleteEvent(ctx context.Context, userID, id string) error {
	res, err := repo.db.ExecContext(ctx, repo.db.Rebind("DELETE FROM events WHERE id = ? AND user_id = ?"), id, userID)
	return checkAffected(res, err, event.ErrNotFound, "deleting event")
}
