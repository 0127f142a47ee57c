package processor

import (
	"context"
	stderrors "errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nguyentantai21042004/recap/internal/audio"
	"github.com/nguyentantai21042004/recap/internal/config"
	"github.com/nguyentantai21042004/recap/internal/errors"
	"github.com/nguyentantai21042004/recap/internal/history"
	"github.com/nguyentantai21042004/recap/internal/logger"
	"github.com/nguyentantai21042004/recap/internal/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePipeline struct {
	sources []audio.Source
	err     error
}

func (f *fakePipeline) Run(_ context.Context, src audio.Source) (*pipeline.Result, error) {
	f.sources = append(f.sources, src)
	if f.err != nil {
		return nil, f.err
	}
	return &pipeline.Result{
		Summary:    "## Key Points\n- shipped",
		Transcript: "We shipped. Great work.",
		Outcome:    &history.Outcome{Title: "Release Retro", Summary: "## Key Points\n- shipped"},
	}, nil
}

func setup(t *testing.T) (config.PathsConfig, string) {
	t.Helper()
	root := t.TempDir()
	paths := config.PathsConfig{
		Input:    filepath.Join(root, "input"),
		Output:   filepath.Join(root, "output"),
		Archived: filepath.Join(root, "archived"),
		Failed:   filepath.Join(root, "failed"),
	}
	require.NoError(t, os.MkdirAll(paths.Input, 0755))
	src := filepath.Join(paths.Input, "retro.m4a")
	require.NoError(t, os.WriteFile(src, []byte("m4a"), 0644))
	return paths, src
}

func TestProcessSuccess(t *testing.T) {
	paths, src := setup(t)
	fp := &fakePipeline{}
	p := New(paths, fp, logger.Nop()).(*implProcessor)
	p.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 0, 0, time.UTC) }

	require.NoError(t, p.Process(context.Background(), src))

	require.Len(t, fp.sources, 1)
	assert.Equal(t, audio.OriginLocal, fp.sources[0].Origin())
	assert.Equal(t, src, fp.sources[0].Path())

	for _, name := range []string{"retro.md", "retro.html", "retro.docx", "retro_transcript.docx"} {
		assert.FileExists(t, filepath.Join(paths.Output, name))
	}
	md, err := os.ReadFile(filepath.Join(paths.Output, "retro.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "# Release Retro")

	assert.FileExists(t, filepath.Join(paths.Archived, "retro.m4a"))
	assert.NoFileExists(t, src)
}

func TestProcessFailureMovesToFailed(t *testing.T) {
	paths, src := setup(t)
	fp := &fakePipeline{err: errors.NewEmptyTranscript("tx-1")}

	err := New(paths, fp, logger.Nop()).Process(context.Background(), src)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrEmptyTranscript))
	assert.False(t, stderrors.Is(err, os.ErrNotExist))

	assert.FileExists(t, filepath.Join(paths.Failed, "retro.m4a"))
	assert.NoFileExists(t, filepath.Join(paths.Output, "retro.md"))
}
