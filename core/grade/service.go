package grade

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/NicoleRU22/Studynest/core"
	"github.com/NicoleRU22/Studynest/core/subject"
)

var (
	nowFunc = time.Now // mockable

	// errors
	ErrNotFound = errors.New("grade not found")
)

type (
	Repository interface {
		CreateGrade(ctx context.Context, g Grade) (Grade, error)
		// QueryGrades returns the user's grades, most recent first.
		QueryGrades(ctx context.Context, userID string, filter QueryFilter) ([]Grade, error)
		GetGrade(ctx context.Context, userID, id string) (Grade, error)
		UpdateGrade(ctx context.Context, g Grade) (Grade, error)
		DeleteGrade(ctx context.Context, userID, id string) error
	}

	SubjectRepository interface {
		QuerySubjects(ctx context.Context, userID string) ([]subject.Subject, error)
		GetSubject(ctx context.Context, userID, id string) (subject.Subject, error)
	}

	Service struct {
		repo     Repository
		subjects SubjectRepository
	}
)

func NewService(repo Repository, subjects SubjectRepository) *Service {
	return &Service{repo: repo, subjects: subjects}
}

// checkSubject makes sure the subject exists and belongs to the user.
func (svc *Service) checkSubject(ctx context.Context, userID, subjectID string) error {
	if _, err := svc.subjects.GetSubject(ctx, userID, subjectID); err != nil {
		if errors.Cause(err) == subject.ErrNotFound {
			return core.NewValidationError(err, core.FieldError{Field: "subject_id", Error: err.Error()})
		}
		return errors.Wrap(err, "finding subject")
	}
	return nil
}

func (svc *Service) Create(ctx context.Context, userID string, ng NewGrade) (Grade, error) {
	if err := svc.checkSubject(ctx, userID, ng.SubjectID); err != nil {
		return Grade{}, err
	}

	now := nowFunc().UTC()
	subjectID := ng.SubjectID
	return svc.repo.CreateGrade(ctx, Grade{
		UserID:         userID,
		SubjectID:      &subjectID,
		Name:           ng.Name,
		Grade:          ng.Grade,
		MaxGrade:       *ng.MaxGrade,
		Weight:         *ng.Weight,
		EvaluationType: ng.EvaluationType,
		Date:           ng.Date,
		Notes:          ng.Notes,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
}

func (svc *Service) Query(ctx context.Context, userID string, filter QueryFilter) ([]Grade, error) {
	return svc.repo.QueryGrades(ctx, userID, filter)
}

func (svc *Service) GetByID(ctx context.Context, userID, id string) (Grade, error) {
	return svc.repo.GetGrade(ctx, userID, id)
}

func (svc *Service) Update(ctx context.Context, orig Grade, ug UpdateGrade) (Grade, error) {
	if ug.SubjectID != "" && (orig.SubjectID == nil || *orig.SubjectID != ug.SubjectID) {
		if err := svc.checkSubject(ctx, orig.UserID, ug.SubjectID); err != nil {
			return Grade{}, err
		}
	}

	g := orig
	if ug.SubjectID != "" {
		subjectID := ug.SubjectID
		g.SubjectID = &subjectID
	}
	g.Name = ug.Name
	g.Grade = *ug.Grade
	g.MaxGrade = *ug.MaxGrade
	g.Weight = *ug.Weight
	g.EvaluationType = ug.EvaluationType
	g.Date = *ug.Date
	g.Notes = ug.Notes
	g.UpdatedAt = nowFunc().UTC()
	return svc.repo.UpdateGrade(ctx, g)
}

func (svc *Service) Delete(ctx context.Context, userID, id string) error {
	return svc.repo.DeleteGrade(ctx, userID, id)
}

// Summary aggregates all the user's grades per subject (ordered by name) along with the GPA.
func (svc *Service) Summary(ctx context.Context, userID string) (Summary, error) {
	subjects, err := svc.subjects.QuerySubjects(ctx, userID)
	if err != nil {
		return Summary{}, errors.Wrap(err, "querying subjects")
	}
	grades, err := svc.repo.QueryGrades(ctx, userID, QueryFilter{})
	if err != nil {
		return Summary{}, errors.Wrap(err, "querying grades")
	}
	return Summarize(subjects, grades), nil
}
