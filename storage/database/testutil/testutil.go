// Package testutil prepares migrated SQLite databases and fixtures for tests.
package testutil

import (
	"context"
	"io"
	"log"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pressly/goose/v3"

	"github.com/NicoleRU22/Studynest/core/profile"
	"github.com/NicoleRU22/Studynest/core/user"
	"github.com/NicoleRU22/Studynest/storage/database"
	sqlxrepos "github.com/NicoleRU22/Studynest/storage/database/sqlx"
)

// PrepareDB returns a freshly migrated SQLite database, closed when the test ends.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()
	goose.SetLogger(log.New(io.Discard, "", 0))

	db, err := database.OpenSQLite(filepath.Join(t.TempDir(), "studynest_test.db"))
	if err != nil {
		t.Fatalf("PrepareDB() open failed: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if err = database.Migrate(db); err != nil {
		t.Fatalf("PrepareDB() migrate failed: %v", err)
	}
	return db
}

// CreateUser inserts an active or inactive user along with their profile.
func CreateUser(t *testing.T, db *sqlx.DB, name, email, pwd string, isActive bool, createdAt ...time.Time) user.User {
	t.Helper()
	tstamp := time.Now().UTC()
	if len(createdAt) > 0 {
		tstamp = createdAt[0].UTC()
	}
	usr := user.User{
		Name:      name,
		Email:     email,
		IsActive:  isActive,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	}
	if err := usr.SetPassword(pwd); err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}

	ctx := context.Background()
	usr, err := sqlxrepos.NewUserRepository(db).CreateUser(ctx, usr)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	_, err = sqlxrepos.NewProfileRepository(db).CreateProfile(ctx, profile.Profile{
		UserID:    usr.ID,
		Name:      usr.Name,
		Email:     usr.Email,
		CreatedAt: tstamp,
		UpdatedAt: tstamp,
	})
	if err != nil {
		t.Fatalf("CreateUser() profile failed: %v", err)
	}
	return usr
}
