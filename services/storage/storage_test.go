package storagesvc

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NicoleRU22/Studynest/core"
	logsvc "github.com/NicoleRU22/Studynest/services/logger"
)

func newTestLocalStorage(t *testing.T) *localStorage {
	conf := &core.Config{
		Env:      "TEST",
		TestMode: true,
		Storage:  core.StorageConfig{MediaRoot: t.TempDir(), MediaBaseURL: "http://api.test/media/"},
	}
	return NewLocalStorage(conf, logsvc.NewRollbarLogger(log.New(io.Discard, "", 0), conf))
}

func TestLocalStorage(t *testing.T) {
	ctx := context.Background()
	s := newTestLocalStorage(t)

	url, err := s.Upload(ctx, "avatars/ada-1.png", "image/png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "http://api.test/media/avatars/ada-1.png", url)

	data, err := os.ReadFile(filepath.Join(s.root, "avatars", "ada-1.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	key, ok := s.KeyFromURL(url)
	require.True(t, ok)
	assert.Equal(t, "avatars/ada-1.png", key)

	require.NoError(t, s.Delete(ctx, key))
	_, err = os.Stat(filepath.Join(s.root, "avatars", "ada-1.png"))
	assert.True(t, os.IsNotExist(err))

	// deleting twice is fine
	assert.NoError(t, s.Delete(ctx, key))
}

func TestLocalStorage_invalidKeys(t *testing.T) {
	ctx := context.Background()
	s := newTestLocalStorage(t)

	for _, key := range []string{"", "../escape.png", "/etc/passwd"} {
		_, err := s.Upload(ctx, key, "image/png", strings.NewReader("x"))
		assert.Errorf(t, err, "key %q", key)
	}
}

func Test_keyFromURL(t *testing.T) {
	prefix := "https://f000.backblazeb2.com/file/studynest-avatars/"
	tests := []struct {
		url     string
		wantKey string
		wantOk  bool
	}{
		{url: prefix + "avatars/ada-1.png", wantKey: "avatars/ada-1.png", wantOk: true},
		{url: prefix, wantOk: false},
		{url: "https://elsewhere.test/avatars/ada-1.png", wantOk: false},
	}
	for _, tt := range tests {
		key, ok := keyFromURL(prefix, tt.url)
		assert.Equal(t, tt.wantOk, ok, tt.url)
		assert.Equal(t, tt.wantKey, key, tt.url)
	}
}
