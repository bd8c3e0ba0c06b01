package profile

import (
	"mime"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/NicoleRU22/Studynest/core"
)

type Profile struct {
	ID             string    `json:"id"`
	UserID         string    `json:"user_id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	University     *string   `json:"university"`
	SemesterGoal   *string   `json:"semester_goal"`
	DailyLearnings *string   `json:"daily_learnings"`
	SmallWins      []string  `json:"small_wins"`
	AvatarURL      *string   `json:"avatar_url"`
	CreatedAt      time.Time `json:"created_at"` // UTC
	UpdatedAt      time.Time `json:"updated_at"` // UTC
}

// AddWin appends a small win; blank wins are ignored.
func (p *Profile) AddWin(win string) bool {
	win = core.CleanString(win)
	if win == "" {
		return false
	}
	p.SmallWins = append(p.SmallWins, win)
	return true
}

// RemoveWin drops the win at index. It reports false when index is out of range.
func (p *Profile) RemoveWin(index int) bool {
	if index < 0 || index >= len(p.SmallWins) {
		return false
	}
	wins := make([]string, 0, len(p.SmallWins)-1)
	wins = append(wins, p.SmallWins[:index]...)
	p.SmallWins = append(wins, p.SmallWins[index+1:]...)
	return true
}

// UpdateProfile edits the profile. Omitted fields keep their value; blank optional fields are cleared.
type UpdateProfile struct {
	Name           string  `json:"name" validate:"max=100"`
	University     *string `json:"university" validate:"omitempty,max=255"`
	SemesterGoal   *string `json:"semester_goal" validate:"omitempty,max=1000"`
	DailyLearnings *string `json:"daily_learnings" validate:"omitempty,max=5000"`
}

func (up *UpdateProfile) Validate(orig Profile, validate *validator.Validate) error {
	if name := core.CleanString(up.Name); name != "" {
		up.Name = name
	} else {
		up.Name = orig.Name
	}
	up.University = keepOrClean(up.University, orig.University)
	up.SemesterGoal = keepOrClean(up.SemesterGoal, orig.SemesterGoal)
	up.DailyLearnings = keepOrClean(up.DailyLearnings, orig.DailyLearnings)
	return validate.Struct(up)
}

func keepOrClean(s, orig *string) *string {
	if s == nil {
		return orig
	}
	return core.CleanStringPtr(s)
}

type NewWin struct {
	Text string `json:"text" validate:"required,max=255"`
}

func (nw *NewWin) Validate(validate *validator.Validate) error {
	nw.Text = core.CleanString(nw.Text)
	return validate.Struct(nw)
}

// MaxAvatarSize is the largest accepted avatar upload, in bytes.
const MaxAvatarSize = 5 << 20

// NewAvatar describes an uploaded avatar image.
type NewAvatar struct {
	Filename    string
	ContentType string
	Size        int64
}

func (na *NewAvatar) Validate() error {
	na.ContentType = core.CleanString(na.ContentType, true /* lower */)
	if i := strings.IndexByte(na.ContentType, ';'); i >= 0 {
		na.ContentType = strings.TrimSpace(na.ContentType[:i])
	}
	switch {
	case !strings.HasPrefix(na.ContentType, "image/"):
		return core.NewValidationError(nil, core.FieldError{Field: "avatar", Error: "must be an image"})
	case na.Size <= 0:
		return core.NewValidationError(nil, core.FieldError{Field: "avatar", Error: "this field is required"})
	case na.Size > MaxAvatarSize:
		return core.NewValidationError(nil, core.FieldError{Field: "avatar", Error: "must be smaller than 5MB"})
	}
	return nil
}

// Ext returns the file extension of the avatar, from its name or else its content type.
func (na NewAvatar) Ext() string {
	if ext := strings.ToLower(filepath.Ext(na.Filename)); ext != "" {
		return ext
	}
	if exts, _ := mime.ExtensionsByType(na.ContentType); len(exts) > 0 {
		return exts[0]
	}
	return ""
}
