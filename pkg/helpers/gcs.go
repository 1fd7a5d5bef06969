package helpers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"
)

// ErrObjectNotFound is returned by object stores for a missing key.
var ErrObjectNotFound = errors.New("object not found")

// NewGCSClient creates a Google Cloud Storage client. If credsPath is empty, ADC is used.
func NewGCSClient(ctx context.Context, credsPath string) (*storage.Client, error) {
	if credsPath == "" {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsFile(credsPath))
}

// GCSStore keeps small JSON blobs (user snapshots) in a single bucket.
type GCSStore struct {
	Client *storage.Client
	Bucket string
}

func NewGCSStore(client *storage.Client, bucket string) *GCSStore {
	return &GCSStore{Client: client, Bucket: bucket}
}

// Put overwrites key in one request. Snapshots are rewritten in place, so
// they are marked uncacheable.
func (s *GCSStore) Put(ctx context.Context, key, contentType string, body []byte) error {
	w := s.Client.Bucket(s.Bucket).Object(key).NewWriter(ctx)
	w.ContentType = contentType
	w.CacheControl = "no-store"
	w.ChunkSize = 0
	if _, err := io.Copy(w, bytes.NewReader(body)); err != nil {
		_ = w.Close()
		return fmt.Errorf("gcs write %s: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("gcs close %s: %w", key, err)
	}
	return nil
}

func (s *GCSStore) Get(ctx context.Context, key string) ([]byte, error) {
	rc, err := s.Client.Bucket(s.Bucket).Object(key).NewReader(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrObjectNotFound, key)
		}
		return nil, err
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(rc)
}

// URL is the object's public address; it only resolves for public buckets
// or with a signed query string.
func (s *GCSStore) URL(key string) string {
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.Bucket, key)
}
