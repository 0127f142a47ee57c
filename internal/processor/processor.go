package processor

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/nguyentantai21042004/recap/internal/audio"
	"github.com/nguyentantai21042004/recap/internal/export"
)

// Process runs the pipeline on mediaPath, writes the summary exports and
// moves the source to the archived folder, or to the failed folder if any
// step fails.
func (p *implProcessor) Process(ctx context.Context, mediaPath string) error {
	startTime := time.Now()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting processing: %s", mediaPath)
	p.logger.Info(ctx, "========================================")

	res, err := p.pipeline.Run(ctx, audio.FromPath(mediaPath))
	if err != nil {
		p.moveTo(ctx, mediaPath, p.paths.Failed)
		return fmt.Errorf("run pipeline: %w", err)
	}

	name := strings.TrimSuffix(filepath.Base(mediaPath), filepath.Ext(mediaPath))
	written, err := export.WriteAll(export.Document{
		Name:       name,
		Title:      res.Outcome.Title,
		Summary:    res.Summary,
		Transcript: res.Transcript,
		CreatedAt:  p.now(),
	}, p.paths.Output)
	if err != nil {
		p.moveTo(ctx, mediaPath, p.paths.Failed)
		return fmt.Errorf("export: %w", err)
	}

	p.moveTo(ctx, mediaPath, p.paths.Archived)

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	p.logger.Info(ctx, "Title: %s", res.Outcome.Title)
	if res.Outcome.Message != "" {
		p.logger.Info(ctx, "History: %s", res.Outcome.Message)
	}
	for _, path := range written {
		p.logger.Info(ctx, "Output: %s", path)
	}
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime))
	p.logger.Info(ctx, "========================================")

	return nil
}
