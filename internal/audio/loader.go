package audio

import (
	"context"
	"fmt"
	"io"
	"os"
)

// Load reads the source's bytes and fingerprints them.
func (l *implLoader) Load(ctx context.Context, src Source) (*Audio, error) {
	var (
		data []byte
		err  error
	)

	switch src.origin {
	case OriginUpload:
		data = src.data
	case OriginLocal:
		data, err = l.loadLocal(ctx, src.path)
	case OriginStore:
		data, err = l.loadStore(ctx, src.ref)
	default:
		err = fmt.Errorf("unknown audio origin %q", src.origin)
	}
	if err != nil {
		return nil, err
	}

	if len(data) == 0 {
		return nil, fmt.Errorf("audio %s is empty", src.Describe())
	}

	a := &Audio{
		Name:   src.name,
		Origin: src.origin,
		Data:   data,
		Hash:   Fingerprint(data),
	}
	l.logger.Debug(ctx, "Loaded audio %s (%d bytes, hash %s)", src.Describe(), len(data), a.Hash)
	return a, nil
}

func (l *implLoader) loadLocal(ctx context.Context, path string) ([]byte, error) {
	if l.extractor != nil && IsVideo(path) {
		wav, err := l.extractor.Extract(ctx, path)
		if err != nil {
			return nil, err
		}
		defer l.removeTemp(ctx, wav)
		path = wav
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read audio file: %w", err)
	}
	return data, nil
}

func (l *implLoader) loadStore(ctx context.Context, ref Ref) ([]byte, error) {
	store, ok := l.stores[ref.Scheme]
	if !ok {
		return nil, fmt.Errorf("no content store configured for %q", ref.Scheme)
	}

	rc, err := store.Open(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", ref, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", ref, err)
	}
	return data, nil
}

func (l *implLoader) removeTemp(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil {
		l.logger.Warn(ctx, "Failed to cleanup temp file %s: %v", path, err)
	} else {
		l.logger.Debug(ctx, "Cleaned up temp file: %s", path)
	}
}
