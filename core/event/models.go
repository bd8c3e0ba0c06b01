package event

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/NicoleRU22/Studynest/core"
)

type Type string

const (
	TypeExam     Type = "exam"
	TypeDeadline Type = "deadline"
	TypeMeeting  Type = "meeting"
	TypeHoliday  Type = "holiday"
	TypeEvent    Type = "event"
)

var Types = []string{string(TypeExam), string(TypeDeadline), string(TypeMeeting), string(TypeHoliday), string(TypeEvent)}

type Event struct {
	ID        string     `json:"id"`
	UserID    string     `json:"-"`
	Title     string     `json:"title"`
	Type      Type       `json:"type"`
	StartTime time.Time  `json:"start_time"` // UTC
	EndTime   *time.Time `json:"end_time"`   // UTC
	SubjectID *string    `json:"subject_id"`
	CreatedAt time.Time  `json:"created_at"` // UTC
}

// NewEvent contains information needed to create a new Event.
type NewEvent struct {
	Title     string     `json:"title" validate:"required,max=255"`
	Type      Type       `json:"type" validate:"omitempty,eventtype"`
	StartTime time.Time  `json:"start_time" validate:"required"`
	EndTime   *time.Time `json:"end_time"`
	SubjectID *string    `json:"subject_id" validate:"omitempty,uuid_"`
}

func (ne *NewEvent) Validate(validate *validator.Validate) error {
	ne.Title = core.CleanString(ne.Title)
	ne.Type = Type(core.CleanString(string(ne.Type), true))
	if ne.Type == "" {
		ne.Type = TypeEvent
	}
	ne.StartTime = ne.StartTime.UTC()
	ne.EndTime = utcPtr(ne.EndTime)
	ne.SubjectID = core.CleanStringPtr(ne.SubjectID)
	return validate.Struct(ne)
}

// UpdateEvent replaces the editable fields of an Event. Blank values keep the current ones.
type UpdateEvent struct {
	Title     string     `json:"title" validate:"max=255"`
	Type      Type       `json:"type" validate:"omitempty,eventtype"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time"`
	SubjectID *string    `json:"subject_id" validate:"omitempty,uuid_"`
}

func (ue *UpdateEvent) Validate(orig Event, validate *validator.Validate) error {
	if title := core.CleanString(ue.Title); title != "" {
		ue.Title = title
	} else {
		ue.Title = orig.Title
	}
	if typ := Type(core.CleanString(string(ue.Type), true)); typ != "" {
		ue.Type = typ
	} else {
		ue.Type = orig.Type
	}
	if ue.StartTime.IsZero() {
		ue.StartTime = orig.StartTime
	}
	ue.StartTime = ue.StartTime.UTC()
	ue.EndTime = utcPtr(ue.EndTime)
	ue.SubjectID = core.CleanStringPtr(ue.SubjectID)
	return validate.Struct(ue)
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	u := t.UTC()
	return &u
}

type QueryFilter struct {
	From time.Time `query:"from"`
	To   time.Time `query:"to"`
}
