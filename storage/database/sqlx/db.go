// Package sqlxrepos implements the domain repositories on top of sqlx. Queries are written with `?`
// placeholders and rebound for the driver in use, so the same code serves PostgreSQL and SQLite.
package sqlxrepos

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/NicoleRU22/Studynest/core"
	"github.com/NicoleRU22/Studynest/core/ordering"
)

// inTx runs fn within a transaction, rolled back when fn fails.
func inTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) error {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "beginning transaction")
	}
	if err = fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return errors.Wrap(tx.Commit(), "committing transaction")
}

// trapNoRowsErr maps sql "no rows" err to the domain's notFound error
func trapNoRowsErr(err, notFound error, msg string) error {
	if err == sql.ErrNoRows {
		return notFound
	}
	return errors.Wrap(err, msg)
}

// checkAffected returns notFound when res did not touch any row.
func checkAffected(res sql.Result, err, notFound error, msg string) error {
	if err != nil {
		return errors.Wrap(err, msg)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, msg)
	}
	if n == 0 {
		return notFound
	}
	return nil
}

// setPositions writes each change to `table`, scoped by the `scope` column.
func setPositions(ctx context.Context, db *sqlx.DB, table, scope, scopeID string, changes []ordering.Change) error {
	if len(changes) == 0 {
		return nil
	}
	q := db.Rebind("UPDATE " + table + " SET position = ? WHERE id = ? AND " + scope + " = ?")
	return inTx(ctx, db, func(tx *sqlx.Tx) error {
		stmt, err := tx.PreparexContext(ctx, q)
		if err != nil {
			return errors.Wrap(err, "preparing position update")
		}
		defer func() { _ = stmt.Close() }()

		for _, c := range changes {
			if _, err := stmt.ExecContext(ctx, c.Position, c.ID, scopeID); err != nil {
				return errors.Wrapf(err, "updating position of %s", c.ID)
			}
		}
		return nil
	})
}

func orderBy(orderings []core.DBOrdering) string {
	if len(orderings) == 0 {
		return ""
	}
	terms := make([]string, 0, len(orderings))
	for _, ord := range orderings {
		terms = append(terms, ord.String())
	}
	return " ORDER BY " + strings.Join(terms, ", ")
}

func nullString(s *string) null.String { return null.StringFromPtr(s) }

func nullTime(t *time.Time) null.Time {
	if t == nil {
		return null.Time{}
	}
	return null.TimeFrom(t.UTC())
}

func timePtr(t null.Time) *time.Time {
	if !t.Valid {
		return nil
	}
	u := t.Time.UTC()
	return &u
}

// marshalJSONText encodes a string list for a JSON TEXT column; nil encodes as `[]`.
func marshalJSONText(vals []string) (types.JSONText, error) {
	if vals == nil {
		vals = []string{}
	}
	data, err := json.Marshal(vals)
	if err != nil {
		return nil, errors.Wrap(err, "encoding JSON list")
	}
	return types.JSONText(data), nil
}

// unmarshalJSONText decodes a JSON TEXT column into a string list, never nil.
func unmarshalJSONText(j types.JSONText) ([]string, error) {
	vals := []string{}
	if len(j) == 0 {
		return vals, nil
	}
	if err := j.Unmarshal(&vals); err != nil {
		return nil, errors.Wrap(err, "decoding JSON list")
	}
	return vals, nil
}
