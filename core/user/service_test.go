package user

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NicoleRU22/Studynest/core"
	"github.com/NicoleRU22/Studynest/core/profile"
)

type memRepo struct {
	mu    sync.Mutex
	users map[string]User
}

func newMemRepo() *memRepo { return &memRepo{users: make(map[string]User)} }

func (r *memRepo) CreateUser(_ context.Context, usr User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	usr.ID = uuid.NewString()
	r.users[usr.ID] = usr
	return usr, nil
}

func (r *memRepo) QueryActiveUsers(context.Context) ([]User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := make([]User, 0, len(r.users))
	for _, usr := range r.users {
		if usr.IsActive {
			users = append(users, usr)
		}
	}
	return users, nil
}

func (r *memRepo) GetUserByID(_ context.Context, id string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if usr, ok := r.users[id]; ok {
		return usr, nil
	}
	return User{}, ErrNotFound
}

func (r *memRepo) GetUserByEmail(_ context.Context, email string) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, usr := range r.users {
		if strings.EqualFold(usr.Email, email) {
			return usr, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *memRepo) UpdateUser(_ context.Context, usr User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[usr.ID]; !ok {
		return User{}, ErrNotFound
	}
	r.users[usr.ID] = usr
	return usr, nil
}

func (r *memRepo) SetUserLastLogin(_ context.Context, id string, lastLogin time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	usr, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	usr.LastLogin = &lastLogin
	r.users[id] = usr
	return nil
}

type profileStub struct{ created []string }

func (p *profileStub) Create(_ context.Context, userID, name, email string) (profile.Profile, error) {
	p.created = append(p.created, userID)
	return profile.Profile{UserID: userID, Name: name, Email: email}, nil
}

type mailStub struct{ sent []*core.EmailMessage }

func (m *mailStub) SendMessages(messages ...*core.EmailMessage) { m.sent = append(m.sent, messages...) }

func newTestService(t *testing.T) (*Service, *memRepo, *profileStub, *mailStub) {
	t.Helper()
	repo, profiles, mails := newMemRepo(), &profileStub{}, &mailStub{}
	conf := &core.Config{SecretKey: "secret", PasswordResetTimeoutDelta: 3 * 24 * time.Hour}
	return NewService(repo, profiles, mails, conf), repo, profiles, mails
}

func newValidator() *validator.Validate {
	validate := validator.New()
	translator := core.NewTranslator()
	core.InitValidators(validate, translator)
	InitValidators(validate, translator)
	return validate
}

func TestService_Register(t *testing.T) {
	svc, _, profiles, _ := newTestService(t)
	ctx := context.Background()

	usr, err := svc.Register(ctx, NewUser{Name: "Ana", Email: "ana@test.test", Password: "Tr0ub4dor&3"})
	require.NoError(t, err)
	assert.NotEmpty(t, usr.ID)
	assert.True(t, usr.IsActive)
	assert.NoError(t, usr.CheckPassword("Tr0ub4dor&3"))
	assert.Equal(t, []string{usr.ID}, profiles.created)

	_, err = svc.Register(ctx, NewUser{Name: "Ana 2", Email: "ana@test.test", Password: "Tr0ub4dor&3"})
	require.Error(t, err)
	assert.True(t, core.IsValidationError(err))
}

func TestService_Authenticate(t *testing.T) {
	svc, repo, _, _ := newTestService(t)
	ctx := context.Background()

	usr, err := svc.Register(ctx, NewUser{Name: "Ana", Email: "ana@test.test", Password: "Tr0ub4dor&3"})
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "nobody@test.test", "Tr0ub4dor&3")
	assert.Equal(t, ErrInvalidCredentials, err)
	_, err = svc.Authenticate(ctx, "ana@test.test", "wrong-password")
	assert.Equal(t, ErrInvalidCredentials, err)

	logged, err := svc.Authenticate(ctx, " ANA@test.test ", "Tr0ub4dor&3")
	require.NoError(t, err)
	require.NotNil(t, logged.LastLogin)
	stored, _ := repo.GetUserByID(ctx, usr.ID)
	assert.NotNil(t, stored.LastLogin)

	stored.IsActive = false
	_, _ = repo.UpdateUser(ctx, stored)
	_, err = svc.Authenticate(ctx, "ana@test.test", "Tr0ub4dor&3")
	assert.Equal(t, ErrAccountDeactivated, err)
}

func TestService_PasswordReset(t *testing.T) {
	svc, _, _, mails := newTestService(t)
	ctx := context.Background()

	usr, err := svc.Register(ctx, NewUser{Name: "Ana", Email: "ana@test.test", Password: "Tr0ub4dor&3"})
	require.NoError(t, err)

	assert.Equal(t, ErrNotFound, svc.RequestPasswordReset(ctx, "nobody@test.test"))
	require.NoError(t, svc.RequestPasswordReset(ctx, "ana@test.test"))
	require.Len(t, mails.sent, 1)
	msg := mails.sent[0]
	assert.Equal(t, "password_reset", msg.TemplateName)
	assert.Equal(t, usr.Email, msg.To[0].Address)
	data := msg.TemplateData.(map[string]string)

	err = svc.ResetPassword(ctx, ResetUserPassword{UID: data["UID"], Token: "bogus-token", Password: "N3w-secret!"})
	assert.True(t, core.IsValidationError(err))

	require.NoError(t, svc.ResetPassword(ctx, ResetUserPassword{UID: data["UID"], Token: data["Token"], Password: "N3w-secret!"}))
	_, err = svc.Authenticate(ctx, "ana@test.test", "N3w-secret!")
	require.NoError(t, err)

	// the password hash changed, so the token is spent
	err = svc.ResetPassword(ctx, ResetUserPassword{UID: data["UID"], Token: data["Token"], Password: "An0ther-secret!"})
	assert.True(t, core.IsValidationError(err))
}

func TestNewUser_Validate(t *testing.T) {
	validate := newValidator()

	tests := []struct {
		name    string
		pwd     string
		wantTag string
	}{
		{"too short", "Ab1!", pwdMinLenTag},
		{"whitespace", "correct horse", pwdNoSpaceTag},
		{"all numeric", "1234567890", pwdNotAllNumTag},
		{"similar to email", "anastasia@uni", pwdAttrSimTag},
		{"common", "Password123", pwdNoCommonTag},
		{"valid", "Tr0ub4dor&3", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nu := NewUser{Name: "Ana", Email: " Anastasia@Uni.edu ", Password: tt.pwd, PasswordConfirm: tt.pwd}
			err := nu.Validate(validate)
			assert.Equal(t, "anastasia@uni.edu", nu.Email)
			if tt.wantTag == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			verrs, ok := err.(validator.ValidationErrors)
			require.True(t, ok)
			assert.Equal(t, "password", verrs[0].Field())
			assert.Equal(t, tt.wantTag, verrs[0].Tag())
		})
	}

	nu := NewUser{Name: "Ana", Email: "ana@test.test", Password: "Tr0ub4dor&3", PasswordConfirm: "other"}
	assert.Error(t, nu.Validate(validate))
}
