package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/NicoleRU22/Studynest/core"
	"github.com/NicoleRU22/Studynest/core/note"
)

const noteColumns = "id, user_id, title, content, subject_id, tags, is_favorite, created_at, updated_at"

type noteRow struct {
	ID         string         `db:"id"`
	UserID     string         `db:"user_id"`
	Title      string         `db:"title"`
	Content    string         `db:"content"`
	SubjectID  null.String    `db:"subject_id"`
	Tags       types.JSONText `db:"tags"`
	IsFavorite bool           `db:"is_favorite"`
	CreatedAt  time.Time      `db:"created_at"`
	UpdatedAt  time.Time      `db:"updated_at"`
}

func (r noteRow) model() (note.Note, error) {
	tags, err := unmarshalJSONText(r.Tags)
	if err != nil {
		return note.Note{}, err
	}
	return note.Note{
		ID:         r.ID,
		UserID:     r.UserID,
		Title:      r.Title,
		Content:    r.Content,
		SubjectID:  r.SubjectID.Ptr(),
		Tags:       tags,
		IsFavorite: r.IsFavorite,
		CreatedAt:  r.CreatedAt.UTC(),
		UpdatedAt:  r.UpdatedAt.UTC(),
	}, nil
}

type noteRepository struct {
	db *sqlx.DB
}

var _ note.Repository = (*noteRepository)(nil) // interface compliance check

func NewNoteRepository(db *sqlx.DB) *noteRepository {
	return &noteRepository{db: db}
}

func (repo noteRepository) CreateNote(ctx context.Context, n note.Note) (note.Note, error) {
	tags, err := marshalJSONText(n.Tags)
	if err != nil {
		return note.Note{}, err
	}
	n.ID = uuid.New().String()
	if n.Tags == nil {
		n.Tags = []string{}
	}
	q := repo.db.Rebind("INSERT INTO notes (" + noteColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)")
	_, err = repo.db.ExecContext(ctx, q,
		n.ID, n.UserID, n.Title, n.Content, nullString(n.SubjectID), tags, n.IsFavorite, n.CreatedAt.UTC(), n.UpdatedAt.UTC())
	if err != nil {
		return note.Note{}, errors.Wrap(err, "inserting note")
	}
	return n, nil
}

func (repo noteRepository) QueryNotes(ctx context.Context, userID string, filter note.QueryFilter, ordering []core.DBOrdering) ([]note.Note, error) {
	q := "SELECT " + noteColumns + " FROM notes WHERE user_id = ?"
	args := []interface{}{userID}
	if filter.SubjectID != "" {
		q += " AND subject_id = ?"
		args = append(args, filter.SubjectID)
	}
	if filter.Favorite != nil {
		q += " AND is_favorite = ?"
		args = append(args, *filter.Favorite)
	}
	q += orderBy(ordering)

	var rows []noteRow
	if err := repo.db.SelectContext(ctx, &rows, repo.db.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "querying notes")
	}
	notes := make([]note.Note, 0, len(rows))
	for _, r := range rows {
		n, err := r.model()
		if err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, nil
}

func (repo noteRepository) GetNote(ctx context.Context, userID, id string) (note.Note, error) {
	if _, err := uuid.Parse(id); err != nil {
		return note.Note{}, note.ErrNotFound
	}
	var row noteRow
	q := repo.db.Rebind("SELECT " + noteColumns + " FROM notes WHERE id = ? AND user_id = ?")
	if err := repo.db.GetContext(ctx, &row, q, id, userID); err != nil {
		return note.Note{}, trapNoRowsErr(err, note.ErrNotFound, "getting note")
	}
	return row.model()
}

func (repo noteRepository) UpdateNote(ctx context.Context, n note.Note) (note.Note, error) {
	tags, err := marshalJSONText(n.Tags)
	if err != nil {
		return note.Note{}, err
	}
	q := repo.db.Rebind(`UPDATE notes
		SET title = ?, content = ?, subject_id = ?, tags = ?, is_favorite = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`)
	res, err := repo.db.ExecContext(ctx, q,
		n.Title, n.Content, nullString(n.SubjectID), tags, n.IsFavorite, n.UpdatedAt.UTC(), n.ID, n.UserID)
	if err := checkAffected(res, err, note.ErrNotFound, "updating note"); err != nil {
		return note.Note{}, err
	}
	if n.Tags == nil {
		n.Tags = []string{}
	}
	return n, nil
}

func (repo noteRepository) DeleteNote(ctx context.Context, userID, id string) error {
	res, err := repo.db.ExecContext(ctx, repo.db.Rebind("DELETE FROM notes WHERE id = ? AND user_id = ?"), id, userID)
	return checkAffected(res, err, note.ErrNotFound, "deleting note")
}
