package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/recap/internal/audio"
	"github.com/nguyentantai21042004/recap/internal/config"
	"github.com/nguyentantai21042004/recap/internal/generation"
	"github.com/nguyentantai21042004/recap/internal/history"
	"github.com/nguyentantai21042004/recap/internal/identity"
	"github.com/nguyentantai21042004/recap/internal/logger"
	"github.com/nguyentantai21042004/recap/internal/pipeline"
	"github.com/nguyentantai21042004/recap/internal/summarizer"
	"github.com/nguyentantai21042004/recap/internal/transcription"
	"github.com/nguyentantai21042004/recap/pkg/executor"
)

// deps holds everything built from the config. Close releases it in reverse
// order of construction.
type deps struct {
	cfg       *config.Config
	logger    logger.Logger
	store     history.Store
	generator generation.Generator
	loader    audio.Loader
	closers   []func() error
}

func bootstrap(ctx context.Context, cfgPath string) (*deps, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	d := &deps{
		cfg:    cfg,
		logger: logger.NewWithFormat(cfg.Logging.Level, cfg.Logging.Format, os.Stderr),
	}

	if err := d.openHistory(ctx); err != nil {
		d.Close()
		return nil, err
	}
	if err := d.buildLoader(ctx); err != nil {
		d.Close()
		return nil, err
	}

	d.generator, err = generation.New(cfg, d.logger)
	if err != nil {
		d.Close()
		return nil, err
	}
	return d, nil
}

func (d *deps) openHistory(ctx context.Context) error {
	if d.cfg.History.Driver == "mongo" {
		s, err := history.ConnectMongo(ctx, d.cfg.History.MongoURI, d.cfg.History.Database, d.cfg.History.Collection)
		if err != nil {
			return fmt.Errorf("open history: %w", err)
		}
		d.store = s
		d.closers = append(d.closers, s.Close)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(d.cfg.History.SQLitePath), 0755); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}
	s, err := history.OpenSQLite(d.cfg.History.SQLitePath)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	d.store = s
	d.closers = append(d.closers, s.Close)
	return nil
}

// buildLoader registers the content stores the config enables. GridFS shares
// the history connection when history lives in Mongo.
func (d *deps) buildLoader(ctx context.Context) error {
	var stores []audio.Store

	if d.cfg.History.MongoURI != "" {
		ms, ok := d.store.(*history.MongoStore)
		if !ok {
			conn, err := history.ConnectMongo(ctx, d.cfg.History.MongoURI, d.cfg.History.Database, d.cfg.History.Collection)
			if err != nil {
				return fmt.Errorf("connect gridfs: %w", err)
			}
			d.closers = append(d.closers, conn.Close)
			ms = conn
		}
		gfs, err := audio.NewGridFSStore(ms.Database(), d.cfg.Storage.GridFSBucket)
		if err != nil {
			return err
		}
		stores = append(stores, gfs)
	}

	if d.cfg.Storage.GCSEnabled {
		gcs, err := audio.NewGCSStore(ctx)
		if err != nil {
			return err
		}
		d.closers = append(d.closers, gcs.Close)
		stores = append(stores, gcs)
	}

	var extractor *audio.Extractor
	if d.cfg.FFmpeg.Enabled {
		exec := executor.New()
		if !exec.Available(d.cfg.FFmpeg.BinaryPath) {
			return fmt.Errorf("ffmpeg binary %q not found", d.cfg.FFmpeg.BinaryPath)
		}
		extractor = audio.NewExtractor(exec, d.logger, d.cfg.FFmpeg.BinaryPath, d.cfg.FFmpeg.SampleRate, d.cfg.Paths.Temp)
	}

	d.loader = audio.New(d.logger, extractor, stores...)
	return nil
}

func (d *deps) recorder(checker identity.Checker) *history.Recorder {
	return history.NewRecorder(d.store, checker, d.generator, history.TitleOptions{
		Temperature: *d.cfg.Generation.TitleTemperature,
		MaxTokens:   d.cfg.Generation.TitleMaxTokens,
	}, d.logger)
}

func (d *deps) pipeline(rec pipeline.Recorder) pipeline.Pipeline {
	tc := transcription.New(transcription.Options{
		APIKey:  d.cfg.AssemblyAI.APIKey,
		BaseURL: d.cfg.AssemblyAI.BaseURL,
	}, d.logger)

	sum := summarizer.New(d.generator, summarizer.Options{
		Temperature: *d.cfg.Generation.SummaryTemperature,
		Parallelism: d.cfg.Summarizer.Parallelism,
	}, d.logger)

	observer := pipeline.ObserverFunc(func(ctx context.Context, runID string, from, to pipeline.State) {
		d.logger.Debug(ctx, "Run %s: %s -> %s", runID, from, to)
	})

	return pipeline.New(d.loader, tc, sum, rec, pipeline.Options{
		Mode:         d.cfg.Summarizer.Mode,
		MaxChunkSize: d.cfg.Summarizer.MaxChunkSize,
		PollInterval: d.cfg.AssemblyAI.PollInterval,
		MaxWait:      d.cfg.AssemblyAI.MaxWait,
	}, observer, d.logger)
}

func (d *deps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			d.logger.Warn(context.Background(), "Close failed: %v", err)
		}
	}
	d.closers = nil
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Archived,
		cfg.Paths.Failed,
		cfg.Paths.Temp,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
