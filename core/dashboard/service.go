package dashboard

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/NicoleRU22/Studynest/core"
	"github.com/NicoleRU22/Studynest/core/event"
	"github.com/NicoleRU22/Studynest/core/grade"
	"github.com/NicoleRU22/Studynest/core/subject"
	"github.com/NicoleRU22/Studynest/core/task"
	"github.com/NicoleRU22/Studynest/core/user"
)

var nowFunc = time.Now // mockable

type (
	TaskLister interface {
		QueryTasks(ctx context.Context, userID string, filter task.QueryFilter) ([]task.Task, error)
	}

	SubjectLister interface {
		QuerySubjects(ctx context.Context, userID string) ([]subject.Subject, error)
	}

	GradeLister interface {
		QueryGrades(ctx context.Context, userID string, filter grade.QueryFilter) ([]grade.Grade, error)
	}

	EventLister interface {
		QueryEvents(ctx context.Context, userID string, filter event.QueryFilter) ([]event.Event, error)
	}

	UserLister interface {
		QueryActiveUsers(ctx context.Context) ([]user.User, error)
	}

	Service struct {
		tasks    TaskLister
		subjects SubjectLister
		grades   GradeLister
		events   EventLister
		users    UserLister
		mailSvc  core.EmailService
		logger   core.Logger
		conf     *core.Config
	}
)

func NewService(
	tasks TaskLister,
	subjects SubjectLister,
	grades GradeLister,
	events EventLister,
	users UserLister,
	mailSvc core.EmailService,
	logger core.Logger,
	conf *core.Config,
) *Service {
	return &Service{
		tasks:    tasks,
		subjects: subjects,
		grades:   grades,
		events:   events,
		users:    users,
		mailSvc:  mailSvc,
		logger:   logger,
		conf:     conf,
	}
}

func (svc *Service) Summary(ctx context.Context, userID string) (Summary, error) {
	now := nowFunc()
	tasks, err := svc.tasks.QueryTasks(ctx, userID, task.QueryFilter{})
	if err != nil {
		return Summary{}, errors.Wrap(err, "querying tasks")
	}
	subjects, err := svc.subjects.QuerySubjects(ctx, userID)
	if err != nil {
		return Summary{}, errors.Wrap(err, "querying subjects")
	}
	grades, err := svc.grades.QueryGrades(ctx, userID, grade.QueryFilter{})
	if err != nil {
		return Summary{}, errors.Wrap(err, "querying grades")
	}
	events, err := svc.events.QueryEvents(ctx, userID, event.QueryFilter{From: now, To: now.AddDate(0, 0, UpcomingEventDays)})
	if err != nil {
		return Summary{}, errors.Wrap(err, "querying events")
	}
	return NewSummary(tasks, subjects, grades, events, now), nil
}

// SendDigests emails every active user with something coming up. It returns the number of emails queued.
func (svc *Service) SendDigests(ctx context.Context) (int, error) {
	now := nowFunc()
	users, err := svc.users.QueryActiveUsers(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "querying active users")
	}

	messages := make([]*core.EmailMessage, 0, len(users))
	for _, usr := range users {
		tasks, err := svc.tasks.QueryTasks(ctx, usr.ID, task.QueryFilter{})
		if err != nil {
			return 0, errors.Wrapf(err, "querying tasks of %s", usr.Email)
		}
		subjects, err := svc.subjects.QuerySubjects(ctx, usr.ID)
		if err != nil {
			return 0, errors.Wrapf(err, "querying subjects of %s", usr.Email)
		}

		digest := NewDigest(usr.Name, tasks, subjects, now)
		if digest.IsEmpty() {
			continue
		}
		msg := &core.EmailMessage{
			To:           []mail.Address{{Name: usr.Name, Address: usr.Email}},
			Subject:      "Your upcoming deadlines",
			TemplateName: "deadline_digest",
			TemplateData: digest,
		}
		msg.SetFrontendBaseURL(svc.conf.FrontendBaseURL)
		messages = append(messages, msg)
	}

	if len(messages) > 0 {
		svc.mailSvc.SendMessages(messages...)
	}
	svc.logger.Info(fmt.Sprintf("deadline digest: %d/%d users notified", len(messages), len(users)))
	return len(messages), nil
}
