package dig_container

import (
	"context"
	"fmt"
	"log"
	"os"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/dig"

	echoapi "github.com/NicoleRU22/Studynest/apps/api/echo"
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
	"github.com/NicoleRU22/Studynest/storage/database"
	sqlxrepos "github.com/NicoleRU22/Studynest/storage/database/sqlx"
)

type DBLoggerParam struct {
	dig.In
	Logger core.Logger `name:"dbLogger"`
}

// ServerParams gathers everything the API server depends on.
type ServerParams struct {
	dig.In

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

func newLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	if conf.Debug {
		logger.Enable(false)
	}
	return logger
}

func newDBLogger(conf *core.Config) core.Logger {
	stdLogger := log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile)
	logger := logsvc.NewRollbarLogger(stdLogger, conf)
	if conf.Debug {
		logger.Enable(false)
	}
	return logger
}

func newDB(conf *core.Config, loggerParam DBLoggerParam) *sqlx.DB {
	setUp := func() (*sqlx.DB, error) {
		if err := database.CreateIfNotExist(conf); err != nil {
			return nil, err
		}

		db, err := database.Open(conf)
		if err != nil {
			return nil, err
		}

		if err = database.Migrate(db); err != nil {
			return nil, err
		}
		return db, nil
	}

	db, err := setUp()
	if err != nil {
		loggerParam.Logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
	}
	return db
}

func newEmailService(conf *core.Config, logger core.Logger) core.EmailService {
	if conf.Debug {
		return emailsvc.NewConsoleService(conf, logger)
	}
	return emailsvc.NewSendgridService(conf, logger)
}

func newFileStorage(conf *core.Config, logger core.Logger) core.FileStorage {
	if conf.Debug {
		return storagesvc.NewLocalStorage(conf, logger)
	}
	files, err := storagesvc.NewB2Storage(context.Background(), conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("connecting to file storage: %v", err), err)
	}
	return files
}

// newValidator returns a validator with every custom tag and translation registered.
func newValidator(translator ut.Translator) *validator.Validate {
	validate := validator.New()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	task.InitValidators(validate, translator)
	project.InitValidators(validate, translator)
	grade.InitValidators(validate, translator)
	event.InitValidators(validate, translator)
	return validate
}

func newServer(p ServerParams) *echoapi.Server {
	return echoapi.NewServer(echoapi.ServerDeps{
		Conf:         p.Conf,
		Logger:       p.Logger,
		Validate:     p.Validate,
		Translator:   p.Translator,
		UserSvc:      p.UserSvc,
		ProfileSvc:   p.ProfileSvc,
		SubjectSvc:   p.SubjectSvc,
		TaskSvc:      p.TaskSvc,
		ProjectSvc:   p.ProjectSvc,
		GradeSvc:     p.GradeSvc,
		NoteSvc:      p.NoteSvc,
		EventSvc:     p.EventSvc,
		DashboardSvc: p.DashboardSvc,
	})
}

// New returns a new dependency injection dig.Container
func New() *dig.Container {
	c := dig.New()

	must(c.Provide(core.NewConfig))
	must(c.Provide(newLogger))
	must(c.Provide(newDBLogger, dig.Name("dbLogger")))
	must(c.Provide(newDB))
	must(c.Provide(newEmailService))
	must(c.Provide(newFileStorage))
	must(c.Provide(core.NewTranslator))
	must(c.Provide(newValidator))

	// repositories
	must(c.Provide(sqlxrepos.NewUserRepository, dig.As(new(user.Repository), new(dashboard.UserLister))))
	must(c.Provide(sqlxrepos.NewProfileRepository, dig.As(new(profile.Repository))))
	must(c.Provide(sqlxrepos.NewSubjectRepository, dig.As(
		new(subject.Repository), new(grade.SubjectRepository), new(event.SubjectLister), new(dashboard.SubjectLister),
	)))
	must(c.Provide(sqlxrepos.NewTaskRepository, dig.As(
		new(task.Repository), new(subject.TaskLister), new(event.TaskLister), new(dashboard.TaskLister),
	)))
	must(c.Provide(sqlxrepos.NewProjectRepository, dig.As(new(project.Repository))))
	must(c.Provide(sqlxrepos.NewGradeRepository, dig.As(new(grade.Repository), new(dashboard.GradeLister))))
	must(c.Provide(sqlxrepos.NewNoteRepository, dig.As(new(note.Repository))))
	must(c.Provide(sqlxrepos.NewEventRepository, dig.As(new(event.Repository), new(dashboard.EventLister))))

	// services
	must(c.Provide(profile.NewService))
	must(c.Provide(func(svc *profile.Service) user.ProfileCreator { return svc }))
	must(c.Provide(user.NewService, dig.As(new(user.ServiceInterface))))
	must(c.Provide(subject.NewService))
	must(c.Provide(task.NewService))
	must(c.Provide(project.NewService))
	must(c.Provide(grade.NewService))
	must(c.Provide(note.NewService))
	must(c.Provide(event.NewService))
	must(c.Provide(dashboard.NewService))

	must(c.Provide(newServer))

	return c
}

// must exits program if err happened
func must(err error) {
	if err != nil {
		log.Fatal(errors.Wrap(err, "failed to provide dependency").Error())
	}
}
