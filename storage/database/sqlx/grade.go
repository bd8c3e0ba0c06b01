package sqlxrepos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/NicoleRU22/Studynest/core/grade"
)

const gradeColumns = "id, user_id, subject_id, name, grade, max_grade, weight, evaluation_type, date, notes, created_at, updated_at"

type gradeRow struct {
	ID             string      `db:"id"`
	UserID         string      `db:"user_id"`
	SubjectID      null.String `db:"subject_id"`
	Name           string      `db:"name"`
	Grade          float64     `db:"grade"`
	MaxGrade       float64     `db:"max_grade"`
	Weight         float64     `db:"weight"`
	EvaluationType string      `db:"evaluation_type"`
	Date           time.Time   `db:"date"`
	Notes          null.String `db:"notes"`
	CreatedAt      time.Time   `db:"created_at"`
	UpdatedAt      time.Time   `db:"updated_at"`
}

func (r gradeRow) model() grade.Grade {
	return grade.Grade{
		ID:             r.ID,
		UserID:         r.UserID,
		SubjectID:      r.SubjectID.Ptr(),
		Name:           r.Name,
		Grade:          r.Grade,
		MaxGrade:       r.MaxGrade,
		Weight:         r.Weight,
		EvaluationType: grade.EvaluationType(r.EvaluationType),
		Date:           r.Date.UTC(),
		Notes:          r.Notes.Ptr(),
		CreatedAt:      r.CreatedAt.UTC(),
		UpdatedAt:      r.UpdatedAt.UTC(),
	}
}

type gradeRepository struct {
	db *sqlx.DB
}

var _ grade.Repository = (*gradeRepository)(nil) // interface compliance check

func NewGradeRepository(db *sqlx.DB) *gradeRepository {
	return &gradeRepository{db: db}
}

func (repo gradeRepository) CreateGrade(ctx context.Context, g grade.Grade) (grade.Grade, error) {
	g.ID = uuid.New().String()
	q := repo.db.Rebind("INSERT INTO grades (" + gradeColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
	_, err := repo.db.ExecContext(ctx, q,
		g.ID, g.UserID, nullString(g.SubjectID), g.Name, g.Grade, g.MaxGrade, g.Weight, string(g.EvaluationType),
		g.Date.UTC(), nullString(g.Notes), g.CreatedAt.UTC(), g.UpdatedAt.UTC())
	if err != nil {
		return grade.Grade{}, errors.Wrap(err, "inserting grade")
	}
	return g, nil
}

func (repo gradeRepository) QueryGrades(ctx context.Context, userID string, filter grade.QueryFilter) ([]grade.Grade, error) {
	q := "SELECT " + gradeColumns + " FROM grades WHERE user_id = ?"
	args := []interface{}{userID}
	if filter.SubjectID != "" {
		q += " AND subject_id = ?"
		args = append(args, filter.SubjectID)
	}
	q += " ORDER BY date DESC, created_at DESC"

	var rows []gradeRow
	if err := repo.db.SelectContext(ctx, &rows, repo.db.Rebind(q), args...); err != nil {
		return nil, errors.Wrap(err, "querying grades")
	}
	grades := make([]grade.Grade, 0, len(rows))
	for _, r := range rows {
		grades = append(grades, r.model())
	}
	return grades, nil
}

func (repo gradeRepository) GetGrade(ctx context.Context, userID, id string) (grade.Grade, error) {
	if _, err := uuid.Parse(id); err != nil {
		return grade.Grade{}, grade.ErrNotFound
	}
	var row gradeRow
	q := repo.db.Rebind("SELECT " + gradeColumns + " FROM grades WHERE id = ? AND user_id = ?")
	if err := repo.db.GetContext(ctx, &row, q, id, userID); err != nil {
		return grade.Grade{}, trapNoRowsErr(err, grade.ErrNotFound, "getting grade")
	}
	return row.model(), nil
}

func (repo gradeRepository) UpdateGrade(ctx context.Context, g grade.Grade) (grade.Grade, error) {
	q := repo.db.Rebind(`UPDATE grades
		SET subject_id = ?, name = ?, grade = ?, max_grade = ?, weight = ?, evaluation_type = ?, date = ?, notes = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`)
	res, err := repo.db.ExecContext(ctx, q,
		nullString(g.SubjectID), g.Name, g.Grade, g.MaxGrade, g.Weight, string(g.EvaluationType), g.Date.UTC(),
		nullString(g.Notes), g.UpdatedAt.UTC(), g.ID, g.UserID)
	if err := checkAffected(res, err, grade.ErrNotFound, "updating grade"); err != nil {
		return grade.Grade{}, err
	}
	return g, nil
}

func (repo gradeRepository) DeleteGrade(ctx context.Context, userID, id string) error {
	res, err := repo.db.ExecContext(ctx, repo.db.Rebind("DELETE FROM grades WHERE id = ? AND user_id = ?"), id, userID)
	return checkAffected(res, err, grade.ErrNotFound, "deleting grade")
}
