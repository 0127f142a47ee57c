package audio

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Origin says where a Source's bytes come from.
type Origin string

const (
	OriginUpload Origin = "upload"
	OriginLocal  Origin = "local"
	OriginStore  Origin = "store"
)

// Source describes audio to be processed. It is immutable once built; use
// FromBytes, FromPath or FromRef.
type Source struct {
	origin Origin
	name   string
	path   string
	ref    Ref
	data   []byte
}

// FromBytes wraps bytes received from a caller. The slice is copied.
func FromBytes(name string, data []byte) Source {
	return Source{
		origin: OriginUpload,
		name:   name,
		data:   append([]byte(nil), data...),
	}
}

// FromPath points at a file on local disk.
func FromPath(path string) Source {
	return Source{
		origin: OriginLocal,
		name:   filepath.Base(path),
		path:   path,
	}
}

// FromRef points at an object in a content store, e.g. "gridfs:<id>" or
// "gs://bucket/object".
func FromRef(raw string) (Source, error) {
	ref, err := ParseRef(raw)
	if err != nil {
		return Source{}, err
	}
	return Source{
		origin: OriginStore,
		name:   ref.Name(),
		ref:    ref,
	}, nil
}

func (s Source) Origin() Origin { return s.origin }
func (s Source) Name() string   { return s.name }
func (s Source) Path() string   { return s.path }
func (s Source) Ref() Ref       { return s.ref }

// Describe returns a short label for logs.
func (s Source) Describe() string {
	switch s.origin {
	case OriginLocal:
		return "local:" + s.path
	case OriginStore:
		return s.ref.String()
	default:
		return fmt.Sprintf("upload:%s (%d bytes)", s.name, len(s.data))
	}
}

// Ref addresses an object in a content store.
type Ref struct {
	Scheme string // gridfs | gs
	Bucket string
	Key    string
}

func (r Ref) String() string {
	if r.Scheme == "gs" {
		return "gs://" + r.Bucket + "/" + r.Key
	}
	return r.Scheme + ":" + r.Key
}

// Name is the last path element of the key.
func (r Ref) Name() string {
	return filepath.Base(r.Key)
}

// ParseRef parses "gridfs:<hex id>" and "gs://bucket/object".
func ParseRef(raw string) (Ref, error) {
	switch {
	case strings.HasPrefix(raw, "gs://"):
		rest := strings.TrimPrefix(raw, "gs://")
		bucket, object, ok := strings.Cut(rest, "/")
		if !ok || bucket == "" || object == "" {
			return Ref{}, fmt.Errorf("invalid gcs reference %q", raw)
		}
		return Ref{Scheme: "gs", Bucket: bucket, Key: object}, nil
	case strings.HasPrefix(raw, "gridfs:"):
		id := strings.TrimPrefix(raw, "gridfs:")
		if id == "" {
			return Ref{}, fmt.Errorf("invalid gridfs reference %q", raw)
		}
		return Ref{Scheme: "gridfs", Key: id}, nil
	default:
		return Ref{}, fmt.Errorf("unsupported content reference %q", raw)
	}
}
