package echoapi

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NicoleRU22/Studynest/core/user"
	sqlxrepos "github.com/NicoleRU22/Studynest/storage/database/sqlx"
)

func Test_userApi_registerAndLogin(t *testing.T) {
	app := setup(t)

	register := func(email, pwd, confirm string) map[string]string {
		return map[string]string{"name": "Ada Lovelace", "email": email, "password": pwd, "password_confirm": confirm}
	}

	res := expect[AuthResponse](t, app.do(http.MethodPost, "/v1/users/register", "", register(" Ada@Test.io ", testPassword, testPassword)), http.StatusCreated)
	assert.NotEmpty(t, res.Token)
	assert.Equal(t, "ada@test.io", res.User.Email)
	assert.True(t, res.User.IsActive)

	t.Run("profile created", func(t *testing.T) {
		prof := expect[map[string]interface{}](t, app.do(http.MethodGet, "/v1/profile", res.Token, nil), http.StatusOK)
		assert.Equal(t, "Ada Lovelace", prof["name"])
		assert.Equal(t, "ada@test.io", prof["email"])
	})

	tests := []struct {
		name     string
		body     interface{}
		wantCode int
	}{
		{name: "duplicate email", body: register("ADA@test.io", testPassword, testPassword), wantCode: http.StatusBadRequest},
		{name: "passwords mismatch", body: register("other@test.io", testPassword, testPassword+"x"), wantCode: http.StatusBadRequest},
		{name: "numeric password", body: register("other@test.io", "8426193075", "8426193075"), wantCode: http.StatusBadRequest},
		{name: "short password", body: register("other@test.io", "Ab1!", "Ab1!"), wantCode: http.StatusBadRequest},
		{name: "unknown field", body: `{"name":"X","email":"x@test.io","password":"a","password_confirm":"a","admin":true}`, wantCode: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkCode(t, app.do(http.MethodPost, "/v1/users/register", "", tt.body), tt.wantCode)
		})
	}

	t.Run("login", func(t *testing.T) {
		rec := app.do(http.MethodPost, "/v1/users/login", "", LoginRequest{Email: "ada@test.io", Password: "wrong-password"})
		assert.Equal(t, httpErr{Error: "authentication failed"}, expect[httpErr](t, rec, http.StatusBadRequest))

		login := expect[AuthResponse](t, app.do(http.MethodPost, "/v1/users/login", "", LoginRequest{Email: "ADA@test.io", Password: testPassword}), http.StatusOK)
		assert.NotEmpty(t, login.Token)
		require.NotNil(t, login.User.LastLogin)
	})
}

func Test_userApi_deactivated(t *testing.T) {
	app := setup(t)
	usr, token := app.newUser("Sleepy", "sleepy@test.io")
	usr.IsActive = false
	_, err := sqlxrepos.NewUserRepository(app.db).UpdateUser(context.Background(), usr)
	require.NoError(t, err)

	rec := app.do(http.MethodPost, "/v1/users/login", "", LoginRequest{Email: usr.Email, Password: testPassword})
	assert.Equal(t, httpErr{Error: "account deactivated"}, expect[httpErr](t, rec, http.StatusForbidden))

	checkCode(t, app.do(http.MethodPost, "/v1/users/token-refresh", token, nil), http.StatusForbidden)
}

func Test_userApi_me(t *testing.T) {
	app := setup(t)
	usr, token := app.newUser("Grace Hopper", "grace@test.io")

	checkCode(t, app.do(http.MethodGet, "/v1/users/me", "", nil), http.StatusUnauthorized)
	assert.Equal(t, errMissingToken, expect[httpErr](t, app.do(http.MethodGet, "/v1/users/me", "", nil), http.StatusUnauthorized))
	checkCode(t, app.do(http.MethodGet, "/v1/users/me", "not-a-token", nil), http.StatusUnauthorized)

	me := expect[user.User](t, app.do(http.MethodGet, "/v1/users/me", token, nil), http.StatusOK)
	assert.Equal(t, usr.ID, me.ID)

	updated := expect[user.User](t, app.do(http.MethodPut, "/v1/users/me", token, map[string]string{"name": "  Admiral Hopper "}), http.StatusOK)
	assert.Equal(t, "Admiral Hopper", updated.Name)
	assert.Equal(t, "grace@test.io", updated.Email)
}

func Test_userApi_refreshToken(t *testing.T) {
	app := setup(t)
	usr, _ := app.newUser("Alan Turing", "alan@test.io")

	now := time.Now()
	defer func() { nowFunc = time.Now }()

	tests := []struct {
		name     string
		issuedAt time.Time
		wantCode int
	}{
		{name: "fresh token", issuedAt: now.Add(-time.Minute), wantCode: http.StatusOK},
		{name: "refresh expired", issuedAt: now.Add(-25 * time.Hour), wantCode: http.StatusForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nowFunc = func() time.Time { return now }
			claims := app.srv.auth.userClaims(usr, tt.issuedAt.Unix())
			token, err := app.srv.auth.generateToken(claims)
			require.NoError(t, err)

			rec := app.do(http.MethodPost, "/v1/users/token-refresh", token, nil)
			res := expect[TokenResponse](t, rec, tt.wantCode)
			if tt.wantCode != http.StatusOK {
				return
			}

			parsed := new(Claims)
			_, err = jwt.ParseWithClaims(res.Token, parsed, func(*jwt.Token) (interface{}, error) {
				return []byte(app.srv.deps.Conf.SecretKey), nil
			})
			require.NoError(t, err)
			assert.Equal(t, usr.ID, parsed.Subject)
			assert.Equal(t, tt.issuedAt.Unix(), parsed.OrigIssuedAt)
		})
	}
}

func Test_userApi_passwordReset(t *testing.T) {
	app := setup(t)
	usr, _ := app.newUser("Katherine", "katherine@test.io")

	for _, email := range []string{usr.Email, "nobody@test.io"} {
		res := expect[SuccessResponse](t, app.do(http.MethodPost, "/v1/users/password-reset", "", PasswordResetRequest{Email: email}), http.StatusOK)
		assert.NotEmpty(t, res.Success)
	}
	checkCode(t, app.do(http.MethodPost, "/v1/users/password-reset", "", PasswordResetRequest{Email: "not-an-email"}), http.StatusBadRequest)

	rec := app.do(http.MethodPost, "/v1/users/password-reset-confirm", "", user.ResetUserPassword{
		UID:             usr.ID,
		Token:           "bogus-token",
		Password:        "N3w!Passphrase",
		PasswordConfirm: "N3w!Passphrase",
	})
	checkCode(t, rec, http.StatusBadRequest)
}
