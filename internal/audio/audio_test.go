package audio

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nguyentantai21042004/recap/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	scheme  string
	objects map[string]string
}

func (f *fakeStore) Scheme() string { return f.scheme }

func (f *fakeStore) Open(_ context.Context, ref Ref) (io.ReadCloser, error) {
	body, ok := f.objects[ref.Key]
	if !ok {
		return nil, errors.New("object not found")
	}
	return io.NopCloser(strings.NewReader(body)), nil
}

type fakeExecutor struct {
	calls [][]string
	err   error
}

func (f *fakeExecutor) Execute(_ context.Context, name string, args ...string) (string, error) {
	f.calls = append(f.calls, append([]string{name}, args...))
	if f.err != nil {
		return "", f.err
	}
	out := args[len(args)-1]
	return "", os.WriteFile(out, []byte("RIFF-wav"), 0o644)
}

func (f *fakeExecutor) ExecuteInDir(ctx context.Context, _ string, name string, args ...string) (string, error) {
	return f.Execute(ctx, name, args...)
}

func (f *fakeExecutor) Available(string) bool { return true }

func TestParseRef(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Ref
		wantErr bool
	}{
		{"gridfs", "gridfs:64b7f0c2a1b2c3d4e5f60718", Ref{Scheme: "gridfs", Key: "64b7f0c2a1b2c3d4e5f60718"}, false},
		{"gcs", "gs://meetings/2024/standup.mp3", Ref{Scheme: "gs", Bucket: "meetings", Key: "2024/standup.mp3"}, false},
		{"gcs missing object", "gs://meetings", Ref{}, true},
		{"gridfs missing id", "gridfs:", Ref{}, true},
		{"unknown scheme", "s3://bucket/key", Ref{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRef(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.raw, got.String())
		})
	}
}

func TestFromBytesCopies(t *testing.T) {
	buf := []byte("audio")
	src := FromBytes("a.mp3", buf)
	buf[0] = 'X'

	a, err := New(logger.Nop(), nil).Load(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, "audio", string(a.Data))
	assert.Equal(t, OriginUpload, a.Origin)
	assert.Equal(t, Fingerprint([]byte("audio")), a.Hash)
}

func TestLoadLocal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "meeting.wav")
	require.NoError(t, os.WriteFile(path, []byte("wavdata"), 0o644))

	a, err := New(logger.Nop(), nil).Load(context.Background(), FromPath(path))
	require.NoError(t, err)
	assert.Equal(t, "meeting.wav", a.Name)
	assert.Equal(t, "wavdata", string(a.Data))
}

func TestLoadLocalMissing(t *testing.T) {
	_, err := New(logger.Nop(), nil).Load(context.Background(), FromPath("/nope/missing.wav"))
	assert.Error(t, err)
}

func TestLoadEmpty(t *testing.T) {
	_, err := New(logger.Nop(), nil).Load(context.Background(), FromBytes("a.mp3", nil))
	assert.Error(t, err)
}

func TestLoadStore(t *testing.T) {
	store := &fakeStore{scheme: "gs", objects: map[string]string{"calls/a.mp3": "mp3data"}}
	loader := New(logger.Nop(), nil, store)

	src, err := FromRef("gs://bucket/calls/a.mp3")
	require.NoError(t, err)

	a, err := loader.Load(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, "mp3data", string(a.Data))
	assert.Equal(t, "a.mp3", a.Name)

	missing, err := FromRef("gs://bucket/calls/b.mp3")
	require.NoError(t, err)
	_, err = loader.Load(context.Background(), missing)
	assert.Error(t, err)
}

func TestLoadStoreNotConfigured(t *testing.T) {
	src, err := FromRef("gridfs:64b7f0c2a1b2c3d4e5f60718")
	require.NoError(t, err)

	_, err = New(logger.Nop(), nil).Load(context.Background(), src)
	assert.ErrorContains(t, err, "no content store")
}

func TestLoadVideoExtractsAudio(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "demo.mp4")
	require.NoError(t, os.WriteFile(video, []byte("mp4"), 0o644))

	exec := &fakeExecutor{}
	tempDir := filepath.Join(dir, "temp")
	ext := NewExtractor(exec, logger.Nop(), "ffmpeg", 16000, tempDir)

	a, err := New(logger.Nop(), ext).Load(context.Background(), FromPath(video))
	require.NoError(t, err)
	assert.Equal(t, "RIFF-wav", string(a.Data))

	require.Len(t, exec.calls, 1)
	assert.Equal(t, "ffmpeg", exec.calls[0][0])
	assert.Contains(t, exec.calls[0], "16000")

	_, statErr := os.Stat(filepath.Join(tempDir, "demo_temp.wav"))
	assert.True(t, os.IsNotExist(statErr), "temp wav should be removed")
}

func TestLoadVideoExtractFails(t *testing.T) {
	dir := t.TempDir()
	video := filepath.Join(dir, "demo.mov")
	require.NoError(t, os.WriteFile(video, []byte("mov"), 0o644))

	ext := NewExtractor(&fakeExecutor{err: errors.New("exit 1")}, logger.Nop(), "ffmpeg", 16000, dir)
	_, err := New(logger.Nop(), ext).Load(context.Background(), FromPath(video))
	assert.ErrorContains(t, err, "ffmpeg extract audio")
}

func TestIsVideo(t *testing.T) {
	assert.True(t, IsVideo("a.MP4"))
	assert.True(t, IsVideo("/x/y.mkv"))
	assert.False(t, IsVideo("a.mp3"))
	assert.False(t, IsVideo("a.wav"))
}

func TestFingerprint(t *testing.T) {
	a := Fingerprint([]byte("same"))
	assert.Len(t, a, 64)
	assert.Equal(t, a, Fingerprint([]byte("same")))
	assert.NotEqual(t, a, Fingerprint([]byte("other")))
}
