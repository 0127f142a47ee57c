package processor

import (
	"time"

	"github.com/nguyentantai21042004/recap/internal/config"
	"github.com/nguyentantai21042004/recap/internal/logger"
	"github.com/nguyentantai21042004/recap/internal/pipeline"
)

type implProcessor struct {
	paths    config.PathsConfig
	pipeline pipeline.Pipeline
	logger   logger.Logger
	now      func() time.Time
}

// New creates a Processor that runs p on each file and writes the results
// under paths.Output.
func New(paths config.PathsConfig, p pipeline.Pipeline, log logger.Logger) Processor {
	return &implProcessor{
		paths:    paths,
		pipeline: p,
		logger:   log,
		now:      time.Now,
	}
}
