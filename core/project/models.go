package project

import (
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/NicoleRU22/Studynest/core"
)

type Status string

const (
	StatusPlanning   Status = "planning"
	StatusInProgress Status = "in_progress"
	StatusReview     Status = "review"
	StatusDelivered  Status = "delivered"
)

// Statuses are the kanban columns, in board order.
var Statuses = []string{string(StatusPlanning), string(StatusInProgress), string(StatusReview), string(StatusDelivered)}

type Project struct {
	ID          string     `json:"id"`
	UserID      string     `json:"-"`
	Title       string     `json:"title"`
	Description *string    `json:"description"`
	Status      Status     `json:"status"`
	Progress    int        `json:"progress"`
	Deadline    *time.Time `json:"deadline"`
	ConvenioID  *string    `json:"convenio_id"` // subject
	CreatedAt   time.Time  `json:"created_at"`  // UTC
	UpdatedAt   time.Time  `json:"updated_at"`  // UTC
}

type ChecklistItem struct {
	ID         string    `json:"id"`
	ProjectID  string    `json:"project_id"`
	Text       string    `json:"text"`
	IsComplete bool      `json:"is_complete"`
	Position   int       `json:"position"`
	CreatedAt  time.Time `json:"created_at"`
}

func (i ChecklistItem) Key() string      { return i.ID }
func (i ChecklistItem) Rank() int        { return i.Position }
func (i *ChecklistItem) SetRank(pos int) { i.Position = pos }

type Milestone struct {
	ID        string     `json:"id"`
	ProjectID string     `json:"project_id"`
	Name      string     `json:"name"`
	Date      *time.Time `json:"date"`
	Position  int        `json:"position"`
	CreatedAt time.Time  `json:"created_at"`
}

func (m Milestone) Key() string      { return m.ID }
func (m Milestone) Rank() int        { return m.Position }
func (m *Milestone) SetRank(pos int) { m.Position = pos }

// Detail is a Project with its checklist and milestones, both sorted by position.
type Detail struct {
	Project
	Checklist  []ChecklistItem `json:"checklist"`
	Milestones []Milestone     `json:"milestones"`
}

// Board groups projects by kanban column.
type Board map[Status][]Project

// NewBoard returns every column, empty ones included.
func NewBoard(projects []Project) Board {
	board := make(Board, len(Statuses))
	for _, s := range Statuses {
		board[Status(s)] = make([]Project, 0)
	}
	for _, p := range projects {
		board[p.Status] = append(board[p.Status], p)
	}
	return board
}

// NewProject contains information needed to create a new Project.
type NewProject struct {
	Title       string     `json:"title" validate:"required,max=255"`
	Description *string    `json:"description"`
	Status      Status     `json:"status" validate:"omitempty,projectstatus"`
	Deadline    *time.Time `json:"deadline"`
	ConvenioID  *string    `json:"convenio_id" validate:"omitempty,uuid_"`
}

func (np *NewProject) Validate(validate *validator.Validate) error {
	np.Title = core.CleanString(np.Title)
	np.Description = core.CleanStringPtr(np.Description)
	np.ConvenioID = core.CleanStringPtr(np.ConvenioID)
	if np.Status == "" {
		np.Status = StatusPlanning
	}
	return validate.Struct(np)
}

// UpdateProject replaces the editable fields of a Project. Blank title or status keep the current ones.
type UpdateProject struct {
	Title       string     `json:"title" validate:"max=255"`
	Description *string    `json:"description"`
	Status      Status     `json:"status" validate:"omitempty,projectstatus"`
	Deadline    *time.Time `json:"deadline"`
	ConvenioID  *string    `json:"convenio_id" validate:"omitempty,uuid_"`
}

func (up *UpdateProject) Validate(orig Project, validate *validator.Validate) error {
	if title := core.CleanString(up.Title); title != "" {
		up.Title = title
	} else {
		up.Title = orig.Title
	}
	if up.Status == "" {
		up.Status = orig.Status
	}
	up.Description = core.CleanStringPtr(up.Description)
	up.ConvenioID = core.CleanStringPtr(up.ConvenioID)
	return validate.Struct(up)
}

// MoveProject moves a project to another kanban column.
type MoveProject struct {
	Status Status `json:"status" validate:"required,projectstatus"`
}

func (mp *MoveProject) Validate(validate *validator.Validate) error {
	return validate.Struct(mp)
}

type NewChecklistItem struct {
	Text string `json:"text" validate:"required,max=255"`
}

func (ni *NewChecklistItem) Validate(validate *validator.Validate) error {
	ni.Text = core.CleanString(ni.Text)
	return validate.Struct(ni)
}

type NewMilestone struct {
	Name string     `json:"name" validate:"required,max=255"`
	Date *time.Time `json:"date"`
}

func (nm *NewMilestone) Validate(validate *validator.Validate) error {
	nm.Name = core.CleanString(nm.Name)
	return validate.Struct(nm)
}

type QueryFilter struct {
	Status Status `query:"status"`
}
