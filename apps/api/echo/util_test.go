package echoapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/NicoleRU22/Studynest/core"
	"github.com/NicoleRU22/Studynest/core/dashboard"
	"github.com/NicoleRU22/Studynest/core/event"
	"github.com/NicoleRU22/Studynest/core/grade"
	"github.com/NicoleRU22/Studynest/core/note"
	"github.com/NicoleRU22/Studynest/core/profile"
	"github.com/NicoleRU22/Studynest/core/project"
	"github.com/NicoleRU22/Studynest/core/subject"
	"github.com/NicoleRU22/Studynest/core/task"
	"github.com/NicoleRU22/Studynest/core/user"
	emailsvc "github.com/NicoleRU22/Studynest/services/email"
	logsvc "github.com/NicoleRU22/Studynest/services/logger"
	storagesvc "github.com/NicoleRU22/Studynest/services/storage"
	"github.com/NicoleRU22/Studynest/storage/database/testutil"
	sqlxrepos "github.com/NicoleRU22/Studynest/storage/database/sqlx"
)

const (
	testPassword     = "Bl4ckb0ard!Owl"
	testMediaBaseURL = "http://api.test/media"
)

var errMissingToken = httpErr{Error: "missing or malformed jwt"}

type httpErr struct {
	Error string `json:"error"`
}

type testApp struct {
	t     *testing.T
	db    *sqlx.DB
	srv   *Server
	media string // local file storage root
}

func setup(t *testing.T) testApp {
	t.Helper()
	db := testutil.PrepareDB(t)

	conf := &core.Config{
		Env:                       "TEST",
		TestMode:                  true,
		AppName:                   "StudyNest",
		SecretKey:                 "studynest-test-secret",
		FrontendBaseURL:           "http://front.test",
		PasswordResetTimeoutDelta: time.Hour,
		Server: core.ServerConfig{
			JWTExpirationDelta:        time.Hour,
			JWTRefreshExpirationDelta: 24 * time.Hour,
		},
		Storage: core.StorageConfig{MediaRoot: t.TempDir(), MediaBaseURL: testMediaBaseURL},
	}
	logger := logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf)
	mailSvc := emailsvc.NewConsoleServiceMock(conf, logger)

	translator := core.NewTranslator()
	validate := validator.New()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	task.InitValidators(validate, translator)
	project.InitValidators(validate, translator)
	grade.InitValidators(validate, translator)
	event.InitValidators(validate, translator)

	usrRepo := sqlxrepos.NewUserRepository(db)
	subjectRepo := sqlxrepos.NewSubjectRepository(db)
	taskRepo := sqlxrepos.NewTaskRepository(db)
	gradeRepo := sqlxrepos.NewGradeRepository(db)
	eventRepo := sqlxrepos.NewEventRepository(db)

	profileSvc := profile.NewService(sqlxrepos.NewProfileRepository(db), storagesvc.NewLocalStorage(conf, logger))

	srv := NewServer(ServerDeps{
		Conf:         conf,
		Logger:       logger,
		Validate:     validate,
		Translator:   translator,
		UserSvc:      user.NewService(usrRepo, profileSvc, mailSvc, conf),
		ProfileSvc:   profileSvc,
		SubjectSvc:   subject.NewService(subjectRepo, taskRepo),
		TaskSvc:      task.NewService(taskRepo),
		ProjectSvc:   project.NewService(sqlxrepos.NewProjectRepository(db)),
		GradeSvc:     grade.NewService(gradeRepo, subjectRepo),
		NoteSvc:      note.NewService(sqlxrepos.NewNoteRepository(db)),
		EventSvc:     event.NewService(eventRepo, taskRepo, subjectRepo),
		DashboardSvc: dashboard.NewService(taskRepo, subjectRepo, gradeRepo, eventRepo, usrRepo, mailSvc, logger, conf),
	})
	t.Cleanup(func() { _ = srv.Close() })

	return testApp{t: t, db: db, srv: srv, media: conf.Storage.MediaRoot}
}

// newUser creates an active user and returns it along with a valid token.
func (app testApp) newUser(name, email string) (user.User, string) {
	app.t.Helper()
	usr := testutil.CreateUser(app.t, app.db, name, email, testPassword, true)
	token, err := app.srv.auth.userToken(usr)
	require.NoError(app.t, err)
	return usr, token
}

func (app testApp) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	app.t.Helper()
	var data []byte
	switch b := body.(type) {
	case nil:
	case string:
		data = []byte(b)
	default:
		var err error
		data, err = json.Marshal(b)
		require.NoError(app.t, err)
	}

	req := httptest.NewRequest(method, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.srv.ServeHTTP(rec, req)
	return rec
}

// expect checks the response code then decodes the body into a T.
func expect[T any](t *testing.T, rec *httptest.ResponseRecorder, wantCode int) T {
	t.Helper()
	var out T
	require.Equalf(t, wantCode, rec.Code, "body: %s", rec.Body.String())
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return out
}

func checkCode(t *testing.T, rec *httptest.ResponseRecorder, wantCode int) {
	t.Helper()
	if rec.Code != wantCode {
		t.Errorf("failed! code = %v; wantCode %v; body %s", rec.Code, wantCode, rec.Body.String())
	}
}
