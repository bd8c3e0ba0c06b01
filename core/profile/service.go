package profile

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"

	"github.com/NicoleRU22/Studynest/core"
)

var (
	nowFunc = time.Now // mockable

	// errors
	ErrNotFound      = errors.New("profile not found")
	ErrWinOutOfRange = errors.New("small win index out of range")
)

type (
	Repository interface {
		CreateProfile(ctx context.Context, p Profile) (Profile, error)
		GetProfile(ctx context.Context, userID string) (Profile, error)
		UpdateProfile(ctx context.Context, p Profile) (Profile, error)
	}

	Service struct {
		repo  Repository
		files core.FileStorage
	}
)

func NewService(repo Repository, files core.FileStorage) *Service {
	return &Service{repo: repo, files: files}
}

// Create makes the empty profile of a newly registered user.
func (svc *Service) Create(ctx context.Context, userID, name, email string) (Profile, error) {
	now := nowFunc().UTC()
	return svc.repo.CreateProfile(ctx, Profile{
		UserID:    userID,
		Name:      name,
		Email:     email,
		SmallWins: []string{},
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func (svc *Service) Get(ctx context.Context, userID string) (Profile, error) {
	return svc.repo.GetProfile(ctx, userID)
}

func (svc *Service) Update(ctx context.Context, orig Profile, up UpdateProfile) (Profile, error) {
	p := orig
	p.Name = up.Name
	p.University = up.University
	p.SemesterGoal = up.SemesterGoal
	p.DailyLearnings = up.DailyLearnings
	p.UpdatedAt = nowFunc().UTC()
	return svc.repo.UpdateProfile(ctx, p)
}

func (svc *Service) AddWin(ctx context.Context, p Profile, nw NewWin) (Profile, error) {
	p.SmallWins = append([]string(nil), p.SmallWins...)
	if !p.AddWin(nw.Text) {
		return p, nil
	}
	p.UpdatedAt = nowFunc().UTC()
	return svc.repo.UpdateProfile(ctx, p)
}

func (svc *Service) RemoveWin(ctx context.Context, p Profile, index int) (Profile, error) {
	if !p.RemoveWin(index) {
		return Profile{}, ErrWinOutOfRange
	}
	p.UpdatedAt = nowFunc().UTC()
	return svc.repo.UpdateProfile(ctx, p)
}

// SetAvatar uploads the image read from r under `avatars/<user id>-<unix ms><ext>` and points the profile at it.
// The previous avatar is deleted once the profile is saved.
func (svc *Service) SetAvatar(ctx context.Context, p Profile, na NewAvatar, r io.Reader) (Profile, error) {
	now := nowFunc().UTC()
	key := fmt.Sprintf("avatars/%s-%d%s", p.UserID, now.UnixMilli(), na.Ext())
	url, err := svc.files.Upload(ctx, key, na.ContentType, io.LimitReader(r, MaxAvatarSize))
	if err != nil {
		return Profile{}, errors.Wrap(err, "uploading avatar")
	}

	prev := p.AvatarURL
	p.AvatarURL = &url
	p.UpdatedAt = now
	if p, err = svc.repo.UpdateProfile(ctx, p); err != nil {
		_ = svc.files.Delete(ctx, key)
		return Profile{}, err
	}

	// a leftover object only wastes space
	_ = svc.deleteAvatarFile(ctx, prev)
	return p, nil
}

// RemoveAvatar deletes the stored image and clears the profile's avatar.
func (svc *Service) RemoveAvatar(ctx context.Context, p Profile) (Profile, error) {
	if p.AvatarURL == nil {
		return p, nil
	}
	if err := svc.deleteAvatarFile(ctx, p.AvatarURL); err != nil {
		return Profile{}, err
	}
	p.AvatarURL = nil
	p.UpdatedAt = nowFunc().UTC()
	return svc.repo.UpdateProfile(ctx, p)
}

func (svc *Service) deleteAvatarFile(ctx context.Context, url *string) error {
	if url == nil {
		return nil
	}
	key, ok := svc.files.KeyFromURL(*url)
	if !ok {
		return nil
	}
	return errors.Wrap(svc.files.Delete(ctx, key), "deleting avatar")
}
