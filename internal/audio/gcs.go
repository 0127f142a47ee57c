package audio

import (
	"context"
	"fmt"
	"io"

	"cloud.google.com/go/storage"
)

// GCSStore serves "gs://bucket/object" references.
type GCSStore struct {
	client *storage.Client
}

// NewGCSStore creates a client using application default credentials.
func NewGCSStore(ctx context.Context) (*GCSStore, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create Storage client: %w", err)
	}
	return &GCSStore{client: client}, nil
}

func (s *GCSStore) Scheme() string { return "gs" }

func (s *GCSStore) Open(ctx context.Context, ref Ref) (io.ReadCloser, error) {
	r, err := s.client.Bucket(ref.Bucket).Object(ref.Key).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get GCS object reader for %s: %w", ref, err)
	}
	return r, nil
}

func (s *GCSStore) Close() error {
	return s.client.Close()
}
