package note

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/NicoleRU22/Studynest/core"
)

type Note struct {
	ID         string    `json:"id"`
	UserID     string    `json:"-"`
	Title      string    `json:"title"`
	Content    string    `json:"content"`
	SubjectID  *string   `json:"subject_id"`
	Tags       []string  `json:"tags"`
	IsFavorite bool      `json:"is_favorite"`
	CreatedAt  time.Time `json:"created_at"` // UTC
	UpdatedAt  time.Time `json:"updated_at"` // UTC
}

// Matches does a case-insensitive search of query in the title, the content and the tags.
func (n Note) Matches(query string) bool {
	query = strings.ToLower(query)
	if query == "" {
		return true
	}
	if strings.Contains(strings.ToLower(n.Title), query) || strings.Contains(strings.ToLower(n.Content), query) {
		return true
	}
	for _, tag := range n.Tags {
		if strings.Contains(strings.ToLower(tag), query) {
			return true
		}
	}
	return false
}

// NewNote contains information needed to create a new Note.
type NewNote struct {
	Title      string   `json:"title" validate:"required,max=255"`
	Content    string   `json:"content"`
	SubjectID  *string  `json:"subject_id" validate:"omitempty,uuid_"`
	Tags       []string `json:"tags" validate:"max=20,dive,required,max=50"`
	IsFavorite bool     `json:"is_favorite"`
}

func (nn *NewNote) Validate(validate *validator.Validate) error {
	nn.Title = core.CleanString(nn.Title)
	nn.SubjectID = core.CleanStringPtr(nn.SubjectID)
	nn.Tags = cleanTags(nn.Tags)
	return validate.Struct(nn)
}

// UpdateNote replaces the editable fields of a Note. A blank title keeps the current one.
type UpdateNote struct {
	Title      string   `json:"title" validate:"max=255"`
	Content    *string  `json:"content"`
	SubjectID  *string  `json:"subject_id" validate:"omitempty,uuid_"`
	Tags       []string `json:"tags" validate:"max=20,dive,required,max=50"`
	IsFavorite *bool    `json:"is_favorite"`
}

func (un *UpdateNote) Validate(orig Note, validate *validator.Validate) error {
	if title := core.CleanString(un.Title); title != "" {
		un.Title = title
	} else {
		un.Title = orig.Title
	}
	if un.Content == nil {
		un.Content = &orig.Content
	}
	if un.IsFavorite == nil {
		un.IsFavorite = &orig.IsFavorite
	}
	un.SubjectID = core.CleanStringPtr(un.SubjectID)
	un.Tags = cleanTags(un.Tags)
	return validate.Struct(un)
}

// cleanTags trims tags and drops blanks and duplicates, keeping the first occurrence.
func cleanTags(tags []string) []string {
	cleaned := make([]string, 0, len(tags))
	seen := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tag = core.CleanString(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		cleaned = append(cleaned, tag)
	}
	return cleaned
}

type QueryFilter struct {
	Search    string `query:"search"`
	SubjectID string `query:"subject"`
	Favorite  *bool  `query:"favorite"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.SubjectID = core.CleanString(qf.SubjectID)
}
