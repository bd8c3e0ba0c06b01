package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/go-playground/validator/v10"

	"github.com/NicoleRU22/Studynest/core"
	"github.com/NicoleRU22/Studynest/core/dashboard"
	"github.com/NicoleRU22/Studynest/core/profile"
	"github.com/NicoleRU22/Studynest/core/user"
	emailsvc "github.com/NicoleRU22/Studynest/services/email"
	logsvc "github.com/NicoleRU22/Studynest/services/logger"
	storagesvc "github.com/NicoleRU22/Studynest/services/storage"
	"github.com/NicoleRU22/Studynest/storage/database"
	sqlxrepos "github.com/NicoleRU22/Studynest/storage/database/sqlx"
)

func main() {
	conf := core.NewConfig()
	logger := logsvc.NewRollbarLogger(log.New(os.Stdout, "ADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile), conf)

	// set up DB
	db, err := database.Open(conf)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening database: %v", err), err)
	}
	defer db.Close()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf, logger)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	core.ParseEmailTemplates(logger, false)

	var files core.FileStorage
	if conf.Debug {
		files = storagesvc.NewLocalStorage(conf, logger)
	} else if files, err = storagesvc.NewB2Storage(context.Background(), conf); err != nil {
		logger.Fatal(fmt.Sprintf("connecting to file storage: %v", err), err)
	}

	translator := core.NewTranslator()
	validate := validator.New()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)

	usrRepo := sqlxrepos.NewUserRepository(db)
	subjectRepo := sqlxrepos.NewSubjectRepository(db)
	taskRepo := sqlxrepos.NewTaskRepository(db)
	profileSvc := profile.NewService(sqlxrepos.NewProfileRepository(db), files)

	cli := &commandLine{
		db:       db,
		validate: validate,
		usrSvc:   user.NewService(usrRepo, profileSvc, mailSvc, conf),
		dashSvc: dashboard.NewService(
			taskRepo, subjectRepo, sqlxrepos.NewGradeRepository(db), sqlxrepos.NewEventRepository(db),
			usrRepo, mailSvc, logger, conf,
		),
	}
	if err := cli.rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
