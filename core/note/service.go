package note

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/NicoleRU22/Studynest/core"
)

var (
	nowFunc = time.Now // mockable

	// errors
	ErrNotFound = errors.New("note not found")

	// OrderingFields maps the accepted `ordering` fields to their column.
	OrderingFields = map[string]string{
		"title":      "title",
		"created_at": "created_at",
		"updated_at": "updated_at",
		"favorite":   "is_favorite",
	}
	defaultOrdering = []core.DBOrdering{{Field: "updated_at", Ascending: false}}
)

type (
	Repository interface {
		CreateNote(ctx context.Context, n Note) (Note, error)
		// QueryNotes filters on filter.SubjectID and filter.Favorite; filter.Search is left to the caller.
		QueryNotes(ctx context.Context, userID string, filter QueryFilter, ordering []core.DBOrdering) ([]Note, error)
		GetNote(ctx context.Context, userID, id string) (Note, error)
		UpdateNote(ctx context.Context, n Note) (Note, error)
		DeleteNote(ctx context.Context, userID, id string) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, userID string, nn NewNote) (Note, error) {
	now := nowFunc().UTC()
	return svc.repo.CreateNote(ctx, Note{
		UserID:     userID,
		Title:      nn.Title,
		Content:    nn.Content,
		SubjectID:  nn.SubjectID,
		Tags:       nn.Tags,
		IsFavorite: nn.IsFavorite,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
}

// Query lists the user's notes, most recently updated first unless `ordering` says otherwise.
func (svc *Service) Query(ctx context.Context, userID string, filter QueryFilter, ordering []core.DBOrdering) ([]Note, error) {
	ordering = core.CleanOrderings(ordering, OrderingFields)
	if len(ordering) == 0 {
		ordering = defaultOrdering
	}
	notes, err := svc.repo.QueryNotes(ctx, userID, filter, ordering)
	if err != nil {
		return nil, errors.Wrap(err, "querying notes")
	}
	if filter.Search == "" {
		return notes, nil
	}

	found := make([]Note, 0, len(notes))
	for _, n := range notes {
		if n.Matches(filter.Search) {
			found = append(found, n)
		}
	}
	return found, nil
}

func (svc *Service) GetByID(ctx context.Context, userID, id string) (Note, error) {
	return svc.repo.GetNote(ctx, userID, id)
}

func (svc *Service) Update(ctx context.Context, orig Note, un UpdateNote) (Note, error) {
	n := orig
	n.Title = un.Title
	n.Content = *un.Content
	n.SubjectID = un.SubjectID
	n.Tags = un.Tags
	n.IsFavorite = *un.IsFavorite
	n.UpdatedAt = nowFunc().UTC()
	return svc.repo.UpdateNote(ctx, n)
}

// ToggleFavorite flips the favorite flag of a note.
func (svc *Service) ToggleFavorite(ctx context.Context, n Note) (Note, error) {
	n.IsFavorite = !n.IsFavorite
	n.UpdatedAt = nowFunc().UTC()
	return svc.repo.UpdateNote(ctx, n)
}

func (svc *Service) Delete(ctx context.Context, userID, id string) error {
	return svc.repo.DeleteNote(ctx, userID, id)
}
