package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/NicoleRU22/Studynest/core/subject"
)

const subjectColumns = "id, user_id, name, color, professor, schedule, notes, deadline_convenio, created_at, updated_at"

type subjectRow struct {
	ID               string      `db:"id"`
	UserID           string      `db:"user_id"`
	Name             string      `db:"name"`
	Color            string      `db:"color"`
	Professor        null.String `db:"professor"`
	Schedule         null.String `db:"schedule"`
	Notes            null.String `db:"notes"`
	DeadlineConvenio null.Time   `db:"deadline_convenio"`
	CreatedAt        time.Time   `db:"created_at"`
	UpdatedAt        time.Time   `db:"updated_at"`
}

func (r subjectRow) model() subject.Subject {
	return subject.Subject{
		ID:               r.ID,
		UserID:           r.UserID,
		Name:             r.Name,
		Color:            r.Color,
		Professor:        r.Professor.Ptr(),
		Schedule:         r.Schedule.Ptr(),
		Notes:            r.Notes.Ptr(),
		DeadlineConvenio: timePtr(r.DeadlineConvenio),
		CreatedAt:        r.CreatedAt.UTC(),
		UpdatedAt:        r.UpdatedAt.UTC(),
	}
}

type subjectRepository struct {
	db *sqlx.DB
}

var _ subject.Repository = (*subjectRepository)(nil) // interface compliance check

func NewSubjectRepository(db *sqlx.DB) *subjectRepository {
	return &subjectRepository{db: db}
}

func (repo subjectRepository) CreateSubject(ctx context.Context, s subject.Subject) (subject.Subject, error) {
	s.ID = uuid.New().String()
	q := repo.db.Rebind("INSERT INTO subjects (" + subjectColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
	_, err := repo.db.ExecContext(ctx, q,
		s.ID, s.UserID, s.Name, s.Color, nullString(s.Professor), nullString(s.Schedule), nullString(s.Notes),
		nullTime(s.DeadlineConvenio), s.CreatedAt.UTC(), s.UpdatedAt.UTC())
	if err != nil {
		return subject.Subject{}, errors.Wrap(err, "inserting subject")
	}
	return s, nil
}

func (repo subjectRepository) QuerySubjects(ctx context.Context, userID string) ([]subject.Subject, error) {
	var rows []subjectRow
	q := repo.db.Rebind("SELECT " + subjectColumns + " FROM subjects WHERE user_id = ? ORDER BY name, created_at")
	if err := repo.db.SelectContext(ctx, &rows, q, userID); err != nil {
		return nil, errors.Wrap(err, "querying subjects")
	}
	subjects := make([]subject.Subject, 0, len(rows))
	for _, r := range rows {
		subjects = append(subjects, r.model())
	}
	return subjects, nil
}

func (repo subjectRepository) GetSubject(ctx context.Context, userID, id string) (subject.Subject, error) {
	if _, err := uuid.Parse(id); err != nil {
		return subject.Subject{}, subject.ErrNotFound
	}
	var row subjectRow
	q := repo.db.Rebind("SELECT " + subjectColumns + " FROM subjects WHERE id = ? AND user_id = ?")
	if err := repo.db.GetContext(ctx, &row, q, id, userID); err != nil {
		return subject.Subject{}, trapNoRowsErr(err, subject.ErrNotFound, "getting subject")
	}
	return row.model(), nil
}

func (repo subjectRepository) UpdateSubject(ctx context.Context, s subject.Subject) (subject.Subject, error) {
	q := repo.db.Rebind(`UPDATE subjects
		SET name = ?, color = ?, professor = ?, schedule = ?, notes = ?, deadline_convenio = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`)
	res, err := repo.db.ExecContext(ctx, q,
		s.Name, s.Color, nullString(s.Professor), nullString(s.Schedule), nullString(s.Notes),
		nullTime(s.DeadlineConvenio), s.UpdatedAt.UTC(), s.ID, s.UserID)
	if err := checkAffected(res, err, subject.ErrNotFound, "updating subject"); err != nil {
		return subject.Subject{}, err
	}
	return s, nil
}

// subjectRefs are the columns pointing at a subject; they are unlinked before it is deleted.
var subjectRefs = []struct{ table, column string }{
	{"tasks", "subject_id"},
	{"grades", "subject_id"},
	{"notes", "subject_id"},
	{"events", "subject_id"},
	{"projects", "convenio_id"},
}

func (repo subjectRepository) DeleteSubject(ctx context.Context, userID, id string) error {
	return inTx(ctx, repo.db, func(tx *sqlx.Tx) error {
		for _, ref := range subjectRefs {
			q := tx.Rebind("UPDATE " + ref.table + " SET " + ref.column + " = NULL WHERE " + ref.column + " = ? AND user_id = ?")
			if _, err := tx.ExecContext(ctx, q, id, userID); err != nil {
				return errors.Wrapf(err, "unlinking %s", ref.table)
			}
		}
		res, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM subjects WHERE id = ? AND user_id = ?"), id, userID)
		return checkAffected(res, err, subject.ErrNotFound, "deleting subject")
	})
}
