package summarizer

import (
	"github.com/nguyentantai21042004/recap/internal/generation"
	"github.com/nguyentantai21042004/recap/internal/logger"
)

type Options struct {
	Temperature float32
	// Parallelism > 1 summarizes that many chunks at once.
	Parallelism int
}

type implSummarizer struct {
	generator   generation.Generator
	temperature float32
	parallelism int
	logger      logger.Logger
}

// New creates a Summarizer backed by gen.
func New(gen generation.Generator, opts Options, log logger.Logger) Summarizer {
	if opts.Parallelism < 1 {
		opts.Parallelism = 1
	}
	return &implSummarizer{
		generator:   gen,
		temperature: opts.Temperature,
		parallelism: opts.Parallelism,
		logger:      log,
	}
}
