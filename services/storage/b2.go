package storagesvc

import (
	"context"
	"io"
	"strings"

	"github.com/kurin/blazer/b2"
	"github.com/pkg/errors"

	"github.com/NicoleRU22/Studynest/core"
)

type b2Storage struct {
	bucket    *b2.Bucket
	urlPrefix string // <base>/file/<bucket>/
}

var _ core.FileStorage = (*b2Storage)(nil)

// NewB2Storage connects to the configured Backblaze B2 bucket.
func NewB2Storage(ctx context.Context, conf *core.Config) (*b2Storage, error) {
	client, err := b2.NewClient(ctx, conf.Storage.B2AccountID, conf.Storage.B2ApplicationKey)
	if err != nil {
		return nil, errors.Wrap(err, "creating b2 client")
	}
	bucket, err := client.Bucket(ctx, conf.Storage.B2Bucket)
	if err != nil {
		return nil, errors.Wrapf(err, "getting b2 bucket %q", conf.Storage.B2Bucket)
	}
	return &b2Storage{
		bucket:    bucket,
		urlPrefix: bucket.BaseURL() + "/file/" + bucket.Name() + "/",
	}, nil
}

func (s *b2Storage) Upload(ctx context.Context, key, contentType string, r io.Reader) (string, error) {
	obj := s.bucket.Object(key)
	w := obj.NewWriter(ctx, b2.WithAttrsOption(&b2.Attrs{ContentType: contentType}))
	if _, err := io.Copy(w, r); err != nil {
		_ = w.Close()
		return "", errors.Wrapf(err, "writing object %s", key)
	}
	if err := w.Close(); err != nil {
		return "", errors.Wrapf(err, "closing object %s", key)
	}
	return s.urlPrefix + key, nil
}

func (s *b2Storage) Delete(ctx context.Context, key string) error {
	if err := s.bucket.Object(key).Delete(ctx); err != nil && !b2.IsNotExist(err) {
		return errors.Wrapf(err, "deleting object %s", key)
	}
	return nil
}

func (s *b2Storage) KeyFromURL(url string) (string, bool) {
	return keyFromURL(s.urlPrefix, url)
}

func keyFromURL(prefix, url string) (string, bool) {
	if !strings.HasPrefix(url, prefix) {
		return "", false
	}
	key := strings.TrimPrefix(url, prefix)
	return key, key != ""
}
