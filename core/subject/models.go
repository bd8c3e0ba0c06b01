package subject

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/NicoleRU22/Studynest/core"
)

const DefaultColor = "#3B82F6"

type Subject struct {
	ID               string     `json:"id"`
	UserID           string     `json:"-"`
	Name             string     `json:"name"`
	Color            string     `json:"color"`
	Professor        *string    `json:"professor"`
	Schedule         *string    `json:"schedule"`
	Notes            *string    `json:"notes"`
	DeadlineConvenio *time.Time `json:"deadline_convenio"` // date, midnight UTC
	CreatedAt        time.Time  `json:"created_at"`        // UTC
	UpdatedAt        time.Time  `json:"updated_at"`        // UTC
}

// NewSubject contains information needed to create a new Subject.
type NewSubject struct {
	Name             string     `json:"name" validate:"required,max=100"`
	Color            string     `json:"color" validate:"omitempty,color"`
	Professor        *string    `json:"professor" validate:"omitempty,max=100"`
	Schedule         *string    `json:"schedule" validate:"omitempty,max=255"`
	Notes            *string    `json:"notes"`
	DeadlineConvenio *time.Time `json:"deadline_convenio"`
}

func (ns *NewSubject) Validate(validate *validator.Validate) error {
	ns.Name = core.CleanString(ns.Name)
	ns.Color = core.CleanString(ns.Color)
	if ns.Color == "" {
		ns.Color = DefaultColor
	}
	ns.Professor = core.CleanStringPtr(ns.Professor)
	ns.Schedule = core.CleanStringPtr(ns.Schedule)
	ns.Notes = core.CleanStringPtr(ns.Notes)
	ns.DeadlineConvenio = datePtr(ns.DeadlineConvenio)
	return validate.Struct(ns)
}

// UpdateSubject replaces the editable fields of a Subject. Blank name or color keep the current ones.
type UpdateSubject struct {
	Name             string     `json:"name" validate:"max=100"`
	Color            string     `json:"color" validate:"omitempty,color"`
	Professor        *string    `json:"professor" validate:"omitempty,max=100"`
	Schedule         *string    `json:"schedule" validate:"omitempty,max=255"`
	Notes            *string    `json:"notes"`
	DeadlineConvenio *time.Time `json:"deadline_convenio"`
}

func (us *UpdateSubject) Validate(orig Subject, validate *validator.Validate) error {
	if name := core.CleanString(us.Name); name != "" {
		us.Name = name
	} else {
		us.Name = orig.Name
	}
	if color := core.CleanString(us.Color); color != "" {
		us.Color = color
	} else {
		us.Color = orig.Color
	}
	us.Professor = core.CleanStringPtr(us.Professor)
	us.Schedule = core.CleanStringPtr(us.Schedule)
	us.Notes = core.CleanStringPtr(us.Notes)
	us.DeadlineConvenio = datePtr(us.DeadlineConvenio)
	return validate.Struct(us)
}

func datePtr(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	d := core.StartOfDay(*t)
	return &d
}
