package sqlxrepos

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/NicoleRU22/Studynest/core/profile"
	"github.com/NicoleRU22/Studynest/core/user"
)

const userColumns = "id, name, email, is_active, password_hash, created_at, updated_at, last_login"

type userRow struct {
	ID           string    `db:"id"`
	Name         string    `db:"name"`
	Email        string    `db:"email"`
	IsActive     bool      `db:"is_active"`
	PasswordHash []byte    `db:"password_hash"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
	LastLogin    null.Time `db:"last_login"`
}

func (r userRow) model() user.User {
	return user.User{
		ID:           r.ID,
		Name:         r.Name,
		Email:        r.Email,
		IsActive:     r.IsActive,
		PasswordHash: r.PasswordHash,
		CreatedAt:    r.CreatedAt.UTC(),
		UpdatedAt:    r.UpdatedAt.UTC(),
		LastLogin:    timePtr(r.LastLogin),
	}
}

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{db: db}
}

func (repo userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	usr.ID = uuid.New().String()
	usr.Email = strings.ToLower(usr.Email)
	q := repo.db.Rebind("INSERT INTO users (" + userColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?)")
	_, err := repo.db.ExecContext(ctx, q,
		usr.ID, usr.Name, usr.Email, usr.IsActive, usr.PasswordHash,
		usr.CreatedAt.UTC(), usr.UpdatedAt.UTC(), nullTime(usr.LastLogin))
	if err != nil {
		return user.User{}, errors.Wrap(err, "inserting user")
	}
	return usr, nil
}

func (repo userRepository) QueryActiveUsers(ctx context.Context) ([]user.User, error) {
	var rows []userRow
	q := repo.db.Rebind("SELECT " + userColumns + " FROM users WHERE is_active = ? ORDER BY email")
	if err := repo.db.SelectContext(ctx, &rows, q, true); err != nil {
		return nil, errors.Wrap(err, "querying active users")
	}
	users := make([]user.User, 0, len(rows))
	for _, r := range rows {
		users = append(users, r.model())
	}
	return users, nil
}

func (repo userRepository) get(ctx context.Context, where string, arg interface{}) (user.User, error) {
	var row userRow
	q := repo.db.Rebind("SELECT " + userColumns + " FROM users WHERE " + where)
	if err := repo.db.GetContext(ctx, &row, q, arg); err != nil {
		return user.User{}, trapNoRowsErr(err, user.ErrNotFound, "getting user")
	}
	return row.model(), nil
}

func (repo userRepository) GetUserByID(ctx context.Context, id string) (user.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return user.User{}, user.ErrNotFound
	}
	return repo.get(ctx, "id = ?", id)
}

func (repo userRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	return repo.get(ctx, "email = ?", strings.ToLower(email))
}

func (repo userRepository) UpdateUser(ctx context.Context, usr user.User) (user.User, error) {
	q := repo.db.Rebind("UPDATE users SET name = ?, is_active = ?, password_hash = ?, updated_at = ? WHERE id = ?")
	res, err := repo.db.ExecContext(ctx, q, usr.Name, usr.IsActive, usr.PasswordHash, usr.UpdatedAt.UTC(), usr.ID)
	if err := checkAffected(res, err, user.ErrNotFound, "updating user"); err != nil {
		return user.User{}, err
	}
	return usr, nil
}

func (repo userRepository) SetUserLastLogin(ctx context.Context, id string, lastLogin time.Time) error {
	q := repo.db.Rebind("UPDATE users SET last_login = ? WHERE id = ?")
	res, err := repo.db.ExecContext(ctx, q, lastLogin.UTC(), id)
	return checkAffected(res, err, user.ErrNotFound, "setting last login")
}

const profileColumns = "id, user_id, name, email, university, semester_goal, daily_learnings, small_wins, avatar_url, created_at, updated_at"

type profileRow struct {
	ID             string         `db:"id"`
	UserID         string         `db:"user_id"`
	Name           string         `db:"name"`
	Email          string         `db:"email"`
	University     null.String    `db:"university"`
	SemesterGoal   null.String    `db:"semester_goal"`
	DailyLearnings null.String    `db:"daily_learnings"`
	SmallWins      types.JSONText `db:"small_wins"`
	AvatarURL      null.String    `db:"avatar_url"`
	CreatedAt      time.Time      `db:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at"`
}

func (r profileRow) model() (profile.Profile, error) {
	wins, err := unmarshalJSONText(r.SmallWins)
	if err != nil {
		return profile.Profile{}, err
	}
	return profile.Profile{
		ID:             r.ID,
		UserID:         r.UserID,
		Name:           r.Name,
		Email:          r.Email,
		University:     r.University.Ptr(),
		SemesterGoal:   r.SemesterGoal.Ptr(),
		DailyLearnings: r.DailyLearnings.Ptr(),
		SmallWins:      wins,
		AvatarURL:      r.AvatarURL.Ptr(),
		CreatedAt:      r.CreatedAt.UTC(),
		UpdatedAt:      r.UpdatedAt.UTC(),
	}, nil
}

type profileRepository struct {
	db *sqlx.DB
}

var _ profile.Repository = (*profileRepository)(nil) // interface compliance check

func NewProfileRepository(db *sqlx.DB) *profileRepository {
	return &profileRepository{db: db}
}

func (repo profileRepository) CreateProfile(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	wins, err := marshalJSONText(p.SmallWins)
	if err != nil {
		return profile.Profile{}, err
	}
	p.ID = uuid.New().String()
	q := repo.db.Rebind("INSERT INTO profiles (" + profileColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
	_, err = repo.db.ExecContext(ctx, q,
		p.ID, p.UserID, p.Name, p.Email, nullString(p.University), nullString(p.SemesterGoal),
		nullString(p.DailyLearnings), wins, nullString(p.AvatarURL), p.CreatedAt.UTC(), p.UpdatedAt.UTC())
	if err != nil {
		return profile.Profile{}, errors.Wrap(err, "inserting profile")
	}
	return p, nil
}

func (repo profileRepository) GetProfile(ctx context.Context, userID string) (profile.Profile, error) {
	var row profileRow
	q := repo.db.Rebind("SELECT " + profileColumns + " FROM profiles WHERE user_id = ?")
	if err := repo.db.GetContext(ctx, &row, q, userID); err != nil {
		return profile.Profile{}, trapNoRowsErr(err, profile.ErrNotFound, "getting profile")
	}
	return row.model()
}

func (repo profileRepository) UpdateProfile(ctx context.Context, p profile.Profile) (profile.Profile, error) {
	wins, err := marshalJSONText(p.SmallWins)
	if err != nil {
		return profile.Profile{}, err
	}
	q := repo.db.Rebind(`UPDATE profiles
		SET name = ?, university = ?, semester_goal = ?, daily_learnings = ?, small_wins = ?, avatar_url = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`)
	res, err := repo.db.ExecContext(ctx, q,
		p.Name, nullString(p.University), nullString(p.SemesterGoal), nullString(p.DailyLearnings),
		wins, nullString(p.AvatarURL), p.UpdatedAt.UTC(), p.ID, p.UserID)
	if err := checkAffected(res, err, profile.ErrNotFound, "updating profile"); err != nil {
		return profile.Profile{}, err
	}
	return p, nil
}
