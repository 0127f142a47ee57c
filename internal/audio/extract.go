package audio

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/recap/internal/logger"
	"github.com/nguyentantai21042004/recap/pkg/executor"
)

var videoExtensions = map[string]bool{
	".mp4":  true,
	".mov":  true,
	".mkv":  true,
	".avi":  true,
	".webm": true,
	".m4v":  true,
}

// IsVideo reports whether path has a known video container extension.
func IsVideo(path string) bool {
	return videoExtensions[strings.ToLower(filepath.Ext(path))]
}

// Extractor pulls the audio track out of video files with ffmpeg.
type Extractor struct {
	executor   executor.Executor
	logger     logger.Logger
	binary     string
	sampleRate int
	tempDir    string
}

func NewExtractor(exec executor.Executor, log logger.Logger, binary string, sampleRate int, tempDir string) *Extractor {
	return &Extractor{
		executor:   exec,
		logger:     log,
		binary:     binary,
		sampleRate: sampleRate,
		tempDir:    tempDir,
	}
}

// Extract writes a mono PCM WAV next to tempDir and returns its path. The
// caller owns the file.
func (e *Extractor) Extract(ctx context.Context, videoPath string) (string, error) {
	if err := os.MkdirAll(e.tempDir, 0o755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}

	base := strings.TrimSuffix(filepath.Base(videoPath), filepath.Ext(videoPath))
	audioPath := filepath.Join(e.tempDir, base+"_temp.wav")

	e.logger.Info(ctx, "Extracting audio: %s", videoPath)

	args := []string{
		"-i", videoPath,
		"-vn",
		"-ar", strconv.Itoa(e.sampleRate),
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		audioPath,
	}

	if _, err := e.executor.Execute(ctx, e.binary, args...); err != nil {
		return "", fmt.Errorf("ffmpeg extract audio: %w", err)
	}

	e.logger.Info(ctx, "Audio extracted successfully: %s", audioPath)
	return audioPath, nil
}
