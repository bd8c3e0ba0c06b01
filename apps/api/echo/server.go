package echoapi

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

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
)

type (
	ServerDeps struct {
		Conf       *core.Config
		Logger     core.Logger
		Validate   *validator.Validate
		Translator ut.Translator

		UserSvc      user.ServiceInterface
		ProfileSvc   *profile.Service
		SubjectSvc   *subject.Service
		TaskSvc      *task.Service
		ProjectSvc   *project.Service
		GradeSvc     *grade.Service
		NoteSvc      *note.Service
		EventSvc     *event.Service
		DashboardSvc *dashboard.Service
	}

	Server struct {
		*http.Server
		app      *echo.Echo
		auth     *auth
		deps     ServerDeps
		errors   chan error
		shutdown chan os.Signal
	}
)

var _ http.Handler = (*Server)(nil)

func NewServer(deps ServerDeps) *Server {
	conf := deps.Conf
	s := &Server{
		Server: &http.Server{
			Addr:         conf.Server.Address(),
			ReadTimeout:  conf.Server.ReadTimeout,
			WriteTimeout: conf.Server.WriteTimeout,
		},
		app:      echo.New(),
		auth:     newAuth(conf),
		deps:     deps,
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	s.Handler = s.app
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	if !conf.TestMode {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}
	s.app.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{conf.FrontendBaseURL},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	}))

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.SignalShutdown)
	s.app.Binder = new(appBinder)
	s.app.Debug = conf.Debug

	s.app.GET("/", s.home)
	// uploads stored locally are served by the API itself
	if conf.Debug {
		if u, err := url.Parse(conf.Storage.MediaBaseURL); err == nil && u.Path != "" {
			s.app.Static(u.Path, conf.Storage.MediaRoot)
		}
	}

	v1 := s.app.Group("/v1")
	jwt := s.auth.middleware()

	registerUserAPI(v1, jwt, s.auth, s.deps.UserSvc, s.deps.Validate)
	registerDashboardAPI(v1, jwt, s.deps.DashboardSvc)
	registerProfileAPI(v1, jwt, s.deps.ProfileSvc, s.deps.Validate)
	registerSubjectAPI(v1, jwt, s.deps.SubjectSvc, s.deps.Validate)
	registerTaskAPI(v1, jwt, s.deps.TaskSvc, s.deps.Validate)
	registerProjectAPI(v1, jwt, s.deps.ProjectSvc, s.deps.Validate)
	registerGradeAPI(v1, jwt, s.deps.GradeSvc, s.deps.Validate)
	registerNoteAPI(v1, jwt, s.deps.NoteSvc, s.deps.Validate)
	registerEventAPI(v1, jwt, s.deps.EventSvc, s.deps.Validate)
}

// Start listens until the server is shut down. Failures are reported on Errors().
func (s *Server) Start() {
	if err := s.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

// SignalShutdown asks the running process to shut the server down gracefully.
func (s *Server) SignalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // already signaled
	}
}

// Shutdown gracefully stops the server. Any deadline in ctx bounds the wait for outstanding requests.
func (s *Server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.Server.Shutdown(ctx)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.app.ServeHTTP(w, r)
}

func (s *Server) home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to "+s.deps.Conf.AppName+" API!")
}
