package pipeline

import (
	"time"

	"github.com/nguyentantai21042004/recap/internal/audio"
	"github.com/nguyentantai21042004/recap/internal/chunker"
	"github.com/nguyentantai21042004/recap/internal/logger"
	"github.com/nguyentantai21042004/recap/internal/summarizer"
	"github.com/nguyentantai21042004/recap/internal/transcription"
)

const (
	ModeSingle  = "single"
	ModeChunked = "chunked"
)

type Options struct {
	Mode         string
	MaxChunkSize int
	PollInterval time.Duration
	MaxWait      time.Duration
}

type implPipeline struct {
	loader      audio.Loader
	transcriber transcription.Client
	summarizer  summarizer.Summarizer
	recorder    Recorder
	observer    Observer
	opts        Options
	logger      logger.Logger
}

// New wires the run steps together. observer may be nil.
func New(loader audio.Loader, tc transcription.Client, sum summarizer.Summarizer, rec Recorder, opts Options, observer Observer, log logger.Logger) Pipeline {
	if opts.Mode == "" {
		opts.Mode = ModeChunked
	}
	if opts.MaxChunkSize <= 0 {
		opts.MaxChunkSize = chunker.DefaultMaxChunkSize
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = 3 * time.Second
	}
	if opts.MaxWait <= 0 {
		opts.MaxWait = 30 * time.Minute
	}

	return &implPipeline{
		loader:      loader,
		transcriber: tc,
		summarizer:  sum,
		recorder:    rec,
		observer:    observer,
		opts:        opts,
		logger:      log,
	}
}
