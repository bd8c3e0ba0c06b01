package echoapi

import (
	"bytes"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NicoleRU22/Studynest/core/profile"
)

func Test_profileApi(t *testing.T) {
	app := setup(t)
	usr, token := app.newUser("Ada", "ada@test.io")

	checkCode(t, app.do(http.MethodGet, "/v1/profile", "", nil), http.StatusUnauthorized)

	p := expect[profile.Profile](t, app.do(http.MethodGet, "/v1/profile", token, nil), http.StatusOK)
	assert.Equal(t, usr.ID, p.UserID)
	assert.Empty(t, p.SmallWins)

	p = expect[profile.Profile](t, app.do(http.MethodPut, "/v1/profile", token, map[string]string{
		"university": " MIT ", "semester_goal": "Pass everything",
	}), http.StatusOK)
	require.NotNil(t, p.University)
	assert.Equal(t, "MIT", *p.University)
	assert.Equal(t, "Ada", p.Name)

	// omitted fields are kept, blank ones cleared
	p = expect[profile.Profile](t, app.do(http.MethodPut, "/v1/profile", token, map[string]string{"semester_goal": "  "}), http.StatusOK)
	assert.Nil(t, p.SemesterGoal)
	require.NotNil(t, p.University)

	for _, win := range []string{"Finished the essay", "Ran 5k", "Slept 8h"} {
		p = expect[profile.Profile](t, app.do(http.MethodPost, "/v1/profile/wins", token, profile.NewWin{Text: win}), http.StatusCreated)
	}
	assert.Equal(t, []string{"Finished the essay", "Ran 5k", "Slept 8h"}, p.SmallWins)
	checkCode(t, app.do(http.MethodPost, "/v1/profile/wins", token, profile.NewWin{Text: "   "}), http.StatusBadRequest)

	p = expect[profile.Profile](t, app.do(http.MethodDelete, "/v1/profile/wins/1", token, nil), http.StatusOK)
	assert.Equal(t, []string{"Finished the essay", "Slept 8h"}, p.SmallWins)

	checkCode(t, app.do(http.MethodDelete, "/v1/profile/wins/2", token, nil), http.StatusNotFound)
	checkCode(t, app.do(http.MethodDelete, "/v1/profile/wins/-1", token, nil), http.StatusNotFound)
	checkCode(t, app.do(http.MethodDelete, "/v1/profile/wins/first", token, nil), http.StatusNotFound)

	stored := expect[profile.Profile](t, app.do(http.MethodGet, "/v1/profile", token, nil), http.StatusOK)
	assert.Equal(t, p.SmallWins, stored.SmallWins)
}

func (app testApp) uploadAvatar(token, filename, contentType string, content []byte) *httptest.ResponseRecorder {
	app.t.Helper()
	body := new(bytes.Buffer)
	w := multipart.NewWriter(body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="avatar"; filename="%s"`, filename))
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(app.t, err)
	_, err = part.Write(content)
	require.NoError(app.t, err)
	require.NoError(app.t, w.Close())

	req := httptest.NewRequest(http.MethodPut, "/v1/profile/avatar", body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	app.srv.ServeHTTP(rec, req)
	return rec
}

func Test_profileApi_avatar(t *testing.T) {
	app := setup(t)
	usr, token := app.newUser("Ada", "ada@test.io")
	storedFile := func(url string) string {
		return filepath.Join(app.media, filepath.FromSlash(strings.TrimPrefix(url, testMediaBaseURL+"/")))
	}

	t.Run("validation", func(t *testing.T) {
		got := expect[map[string]string](t, app.uploadAvatar(token, "cv.pdf", "application/pdf", []byte("%PDF")), http.StatusBadRequest)
		assert.Equal(t, map[string]string{"avatar": "must be an image"}, got)

		big := bytes.Repeat([]byte{0}, profile.MaxAvatarSize+1)
		got = expect[map[string]string](t, app.uploadAvatar(token, "huge.png", "image/png", big), http.StatusBadRequest)
		assert.Equal(t, map[string]string{"avatar": "must be smaller than 5MB"}, got)

		got = expect[map[string]string](t, app.do(http.MethodPut, "/v1/profile/avatar", token, nil), http.StatusBadRequest)
		assert.Equal(t, map[string]string{"avatar": "this field is required"}, got)
	})

	first := expect[profile.Profile](t, app.uploadAvatar(token, "me.PNG", "image/png", []byte("first")), http.StatusOK)
	require.NotNil(t, first.AvatarURL)
	assert.True(t, strings.HasPrefix(*first.AvatarURL, testMediaBaseURL+"/avatars/"+usr.ID+"-"), *first.AvatarURL)
	assert.True(t, strings.HasSuffix(*first.AvatarURL, ".png"), *first.AvatarURL)
	data, err := os.ReadFile(storedFile(*first.AvatarURL))
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	// wait for a new millisecond so the second key differs
	time.Sleep(2 * time.Millisecond)
	second := expect[profile.Profile](t, app.uploadAvatar(token, "me.jpg", "image/jpeg", []byte("second")), http.StatusOK)
	require.NotNil(t, second.AvatarURL)
	assert.NotEqual(t, *first.AvatarURL, *second.AvatarURL)
	_, err = os.Stat(storedFile(*first.AvatarURL))
	assert.True(t, os.IsNotExist(err), "the replaced avatar is deleted")

	stored := expect[profile.Profile](t, app.do(http.MethodGet, "/v1/profile", token, nil), http.StatusOK)
	assert.Equal(t, second.AvatarURL, stored.AvatarURL)

	removed := expect[profile.Profile](t, app.do(http.MethodDelete, "/v1/profile/avatar", token, nil), http.StatusOK)
	assert.Nil(t, removed.AvatarURL)
	_, err = os.Stat(storedFile(*second.AvatarURL))
	assert.True(t, os.IsNotExist(err))

	// removing again is a no-op
	removed = expect[profile.Profile](t, app.do(http.MethodDelete, "/v1/profile/avatar", token, nil), http.StatusOK)
	assert.Nil(t, removed.AvatarURL)
}
