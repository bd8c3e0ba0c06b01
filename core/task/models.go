package task

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/NicoleRU22/Studynest/core"
)

type (
	Type      string
	Frequency string
)

const (
	TypeSimple    Type = "simple"
	TypeDeadline  Type = "deadline"
	TypeRecurring Type = "recurring"
	TypeTeam      Type = "team"

	Daily  Frequency = "daily"
	Weekly Frequency = "weekly"
)

var (
	Types       = []string{string(TypeSimple), string(TypeDeadline), string(TypeRecurring), string(TypeTeam)}
	Frequencies = []string{string(Daily), string(Weekly)}

	ErrInvalidKind = errors.New("inconsistent task kind")
)

// Kind is one of Simple, Deadline, Recurring or Team.
type Kind interface {
	Type() Type
	isKind()
}

type (
	Simple   struct{}
	Deadline struct{ Due time.Time }
	Team     struct{}

	Recurring struct {
		Due       time.Time
		Frequency Frequency
	}
)

func (Simple) Type() Type    { return TypeSimple }
func (Deadline) Type() Type  { return TypeDeadline }
func (Recurring) Type() Type { return TypeRecurring }
func (Team) Type() Type      { return TypeTeam }

func (Simple) isKind()    {}
func (Deadline) isKind()  {}
func (Recurring) isKind() {}
func (Team) isKind()      {}

// Fields is the flat, persisted form of a Kind.
type Fields struct {
	Type        Type
	DueDate     *time.Time
	IsRecurring bool
	Frequency   *Frequency
}

// FieldsOf flattens k. A nil Kind is a Simple task.
func FieldsOf(k Kind) Fields {
	switch k := k.(type) {
	case Deadline:
		due := k.Due.UTC()
		return Fields{Type: TypeDeadline, DueDate: &due}
	case Recurring:
		due, freq := k.Due.UTC(), k.Frequency
		return Fields{Type: TypeRecurring, DueDate: &due, IsRecurring: true, Frequency: &freq}
	case Team:
		return Fields{Type: TypeTeam}
	default:
		return Fields{Type: TypeSimple}
	}
}

// Kind rebuilds the Kind described by f, rejecting inconsistent combinations.
func (f Fields) Kind() (Kind, error) {
	switch f.Type {
	case TypeSimple, "":
		if f.DueDate != nil || f.IsRecurring || f.Frequency != nil {
			return nil, ErrInvalidKind
		}
		return Simple{}, nil
	case TypeTeam:
		if f.DueDate != nil || f.IsRecurring || f.Frequency != nil {
			return nil, ErrInvalidKind
		}
		return Team{}, nil
	case TypeDeadline:
		if f.DueDate == nil || f.IsRecurring || f.Frequency != nil {
			return nil, ErrInvalidKind
		}
		return Deadline{Due: f.DueDate.UTC()}, nil
	case TypeRecurring:
		if f.DueDate == nil || !f.IsRecurring || f.Frequency == nil {
			return nil, ErrInvalidKind
		}
		switch *f.Frequency {
		case Daily, Weekly:
			return Recurring{Due: f.DueDate.UTC(), Frequency: *f.Frequency}, nil
		}
	}
	return nil, ErrInvalidKind
}

type Task struct {
	ID          string
	UserID      string
	Title       string
	Kind        Kind
	CompletedAt *time.Time // UTC
	Position    int
	SubjectID   *string
	ProjectID   *string
	CreatedAt   time.Time // UTC
	UpdatedAt   time.Time // UTC
}

func (t Task) Key() string      { return t.ID }
func (t Task) Rank() int        { return t.Position }
func (t *Task) SetRank(pos int) { t.Position = pos }

func (t Task) Type() Type {
	if t.Kind == nil {
		return TypeSimple
	}
	return t.Kind.Type()
}

// DueDate is only defined for Deadline and Recurring tasks.
func (t Task) DueDate() (time.Time, bool) {
	switch k := t.Kind.(type) {
	case Deadline:
		return k.Due, true
	case Recurring:
		return k.Due, true
	}
	return time.Time{}, false
}

func (t Task) IsCompleted() bool { return t.CompletedAt != nil }

type taskJSON struct {
	ID                 string     `json:"id"`
	Title              string     `json:"title"`
	Type               Type       `json:"type"`
	DueDate            *time.Time `json:"due_date"`
	IsRecurring        bool       `json:"is_recurring"`
	RecurringFrequency *Frequency `json:"recurring_frequency"`
	CompletedAt        *time.Time `json:"completed_at"`
	Position           int        `json:"position"`
	SubjectID          *string    `json:"subject_id"`
	ProjectID          *string    `json:"project_id"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}

func (t Task) MarshalJSON() ([]byte, error) {
	f := FieldsOf(t.Kind)
	return json.Marshal(taskJSON{
		ID:                 t.ID,
		Title:              t.Title,
		Type:               f.Type,
		DueDate:            f.DueDate,
		IsRecurring:        f.IsRecurring,
		RecurringFrequency: f.Frequency,
		CompletedAt:        t.CompletedAt,
		Position:           t.Position,
		SubjectID:          t.SubjectID,
		ProjectID:          t.ProjectID,
		CreatedAt:          t.CreatedAt,
		UpdatedAt:          t.UpdatedAt,
	})
}

func (t *Task) UnmarshalJSON(data []byte) error {
	var tj taskJSON
	if err := json.Unmarshal(data, &tj); err != nil {
		return err
	}
	kind, err := Fields{
		Type:        tj.Type,
		DueDate:     tj.DueDate,
		IsRecurring: tj.IsRecurring,
		Frequency:   tj.RecurringFrequency,
	}.Kind()
	if err != nil {
		return err
	}
	*t = Task{
		ID:          tj.ID,
		Title:       tj.Title,
		Kind:        kind,
		CompletedAt: tj.CompletedAt,
		Position:    tj.Position,
		SubjectID:   tj.SubjectID,
		ProjectID:   tj.ProjectID,
		CreatedAt:   tj.CreatedAt,
		UpdatedAt:   tj.UpdatedAt,
	}
	return nil
}

// NewTask contains information needed to create a new Task.
type NewTask struct {
	Title              string     `json:"title" validate:"required,max=255"`
	Type               Type       `json:"type" validate:"omitempty,tasktype"`
	DueDate            *time.Time `json:"due_date"`
	RecurringFrequency *Frequency `json:"recurring_frequency" validate:"omitempty,frequency"`
	SubjectID          *string    `json:"subject_id" validate:"omitempty,uuid_"`
	ProjectID          *string    `json:"project_id" validate:"omitempty,uuid_"`
}

func (nt *NewTask) Validate(validate *validator.Validate) error {
	nt.Title = core.CleanString(nt.Title)
	if nt.Type == "" {
		nt.Type = TypeSimple
	}
	nt.SubjectID = core.CleanStringPtr(nt.SubjectID)
	nt.ProjectID = core.CleanStringPtr(nt.ProjectID)
	return validate.Struct(nt)
}

// Kind must only be called on a validated NewTask.
func (nt NewTask) Kind() Kind {
	return kindOf(nt.Type, nt.DueDate, nt.RecurringFrequency)
}

// UpdateTask replaces the editable fields of a Task. A blank title keeps the current one.
// Omitting the type keeps the current kind: due date and frequency then default to the current ones too.
type UpdateTask struct {
	Title              string     `json:"title" validate:"max=255"`
	Type               Type       `json:"type" validate:"omitempty,tasktype"`
	DueDate            *time.Time `json:"due_date"`
	RecurringFrequency *Frequency `json:"recurring_frequency" validate:"omitempty,frequency"`
	SubjectID          *string    `json:"subject_id" validate:"omitempty,uuid_"`
	ProjectID          *string    `json:"project_id" validate:"omitempty,uuid_"`
}

func (ut *UpdateTask) Validate(orig Task, validate *validator.Validate) error {
	if title := core.CleanString(ut.Title); title != "" {
		ut.Title = title
	} else {
		ut.Title = orig.Title
	}
	if ut.Type == "" {
		ut.Type = orig.Type()
		f := FieldsOf(orig.Kind)
		if ut.DueDate == nil {
			ut.DueDate = f.DueDate
		}
		if ut.RecurringFrequency == nil {
			ut.RecurringFrequency = f.Frequency
		}
	}
	ut.SubjectID = core.CleanStringPtr(ut.SubjectID)
	ut.ProjectID = core.CleanStringPtr(ut.ProjectID)
	return validate.Struct(ut)
}

// Kind must only be called on a validated UpdateTask.
func (ut UpdateTask) Kind() Kind {
	return kindOf(ut.Type, ut.DueDate, ut.RecurringFrequency)
}

func kindOf(typ Type, due *time.Time, freq *Frequency) Kind {
	switch typ {
	case TypeDeadline:
		if due != nil {
			return Deadline{Due: due.UTC()}
		}
	case TypeRecurring:
		if due != nil && freq != nil {
			return Recurring{Due: due.UTC(), Frequency: *freq}
		}
	case TypeTeam:
		return Team{}
	}
	return Simple{}
}

// View is one of the task list presets.
type View string

const (
	ViewAll    View = "all"
	ViewToday  View = "today"
	ViewWeek   View = "week"
	ViewNoDate View = "no-date"
	ViewTeam   View = "team"
)

// Match reports whether t belongs to the view. Days and weeks (Monday based) are UTC.
func (v View) Match(t Task, now time.Time) bool {
	due, hasDue := t.DueDate()
	switch v {
	case ViewToday:
		return hasDue && core.StartOfDay(due).Equal(core.StartOfDay(now))
	case ViewWeek:
		return hasDue && core.StartOfWeek(due).Equal(core.StartOfWeek(now))
	case ViewNoDate:
		return !hasDue
	case ViewTeam:
		return t.Type() == TypeTeam
	default:
		return true
	}
}

type QueryFilter struct {
	View      View   `query:"filter"`
	SubjectID string `query:"subject"`
	ProjectID string `query:"project"`
}

func (qf *QueryFilter) Clean() {
	qf.View = View(core.CleanString(string(qf.View), true /* lower */))
	qf.SubjectID = core.CleanString(qf.SubjectID)
	qf.ProjectID = core.CleanString(qf.ProjectID)
}
