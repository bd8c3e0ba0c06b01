// Package storagesvc stores uploaded files: Backblaze B2 in production, a local directory otherwise.
package storagesvc

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/NicoleRU22/Studynest/core"
)

type localStorage struct {
	root    string
	baseURL string
	logger  core.Logger
}

var _ core.FileStorage = (*localStorage)(nil)

// NewLocalStorage keeps files under conf.Storage.MediaRoot, which the API serves under conf.Storage.MediaBaseURL.
func NewLocalStorage(conf *core.Config, logger core.Logger) *localStorage {
	return &localStorage{
		root:    conf.Storage.MediaRoot,
		baseURL: strings.TrimSuffix(conf.Storage.MediaBaseURL, "/") + "/",
		logger:  logger,
	}
}

func (s *localStorage) path(key string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(key))
	if clean == "." || filepath.IsAbs(clean) || strings.HasPrefix(clean, "..") {
		return "", errors.Errorf("invalid key %q", key)
	}
	return filepath.Join(s.root, clean), nil
}

func (s *localStorage) Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	fp, err := s.path(key)
	if err != nil {
		return "", err
	}
	if err = os.MkdirAll(filepath.Dir(fp), 0o755); err != nil {
		return "", errors.Wrap(err, "creating media dir")
	}
	f, err := os.Create(fp)
	if err != nil {
		return "", errors.Wrapf(err, "creating %s", fp)
	}
	n, err := io.Copy(f, r)
	if cErr := f.Close(); err == nil {
		err = cErr
	}
	if err != nil {
		return "", errors.Wrapf(err, "writing %s", fp)
	}

	s.logger.Info(fmt.Sprintf("stored %s (%s, %d bytes)", key, contentType, n))
	return s.baseURL + key, nil
}

func (s *localStorage) Delete(ctx context.Context, key string) error {
	fp, err := s.path(key)
	if err != nil {
		return err
	}
	if err = os.Remove(fp); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "removing %s", fp)
	}
	return nil
}

func (s *localStorage) KeyFromURL(url string) (string, bool) {
	return keyFromURL(s.baseURL, url)
}
