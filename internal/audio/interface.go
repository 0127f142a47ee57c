package audio

import (
	"context"
	"io"
)

// Audio is a loaded Source: the raw bytes plus their fingerprint.
type Audio struct {
	Name   string
	Origin Origin
	Data   []byte
	Hash   string
}

// Loader turns any Source into bytes ready for upload.
type Loader interface {
	Load(ctx context.Context, src Source) (*Audio, error)
}

// Store opens objects from a content store.
type Store interface {
	Scheme() string
	Open(ctx context.Context, ref Ref) (io.ReadCloser, error)
}
