package summarizer

import (
	"context"

	"github.com/nguyentantai21042004/recap/internal/chunker"
	"github.com/nguyentantai21042004/recap/internal/errors"
	"github.com/nguyentantai21042004/recap/internal/generation"
	"golang.org/x/sync/errgroup"
)

// SummarizeChunk sends one chunk to the generator. Chunks share no context.
func (s *implSummarizer) SummarizeChunk(ctx context.Context, chunk chunker.Chunk) (Fragment, error) {
	text, err := s.generator.Generate(ctx, ReportParts(chunk.Text), generation.Options{
		Temperature: generation.Temperature(s.temperature),
	})
	if err != nil {
		return Fragment{}, errors.NewSummarization(chunk.Index, err)
	}
	return Fragment{Index: chunk.Index, Text: text}, nil
}

// SummarizeAll runs chunks one at a time in index order, or with a bounded
// worker group when parallelism > 1. Either way a single failure cancels the
// remaining work and no fragments are returned.
func (s *implSummarizer) SummarizeAll(ctx context.Context, chunks []chunker.Chunk) ([]Fragment, error) {
	if s.parallelism <= 1 || len(chunks) <= 1 {
		return s.sequential(ctx, chunks)
	}
	return s.parallel(ctx, chunks)
}

func (s *implSummarizer) sequential(ctx context.Context, chunks []chunker.Chunk) ([]Fragment, error) {
	fragments := make([]Fragment, 0, len(chunks))
	for i, c := range chunks {
		s.logger.Info(ctx, "[%d/%d] Summarizing chunk %d (%d chars)", i+1, len(chunks), c.Index, c.Size())

		f, err := s.SummarizeChunk(ctx, c)
		if err != nil {
			s.logger.Error(ctx, "Failed to summarize chunk %d: %v", c.Index, err)
			return nil, err
		}
		fragments = append(fragments, f)
	}
	return fragments, nil
}

func (s *implSummarizer) parallel(ctx context.Context, chunks []chunker.Chunk) ([]Fragment, error) {
	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.parallelism)

	fragments := make([]Fragment, len(chunks))
	for i, c := range chunks {
		g.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return errors.NewSummarization(c.Index, err)
			}
			s.logger.Info(gCtx, "[%d/%d] Summarizing chunk %d (%d chars)", i+1, len(chunks), c.Index, c.Size())

			f, err := s.SummarizeChunk(gCtx, c)
			if err != nil {
				s.logger.Error(gCtx, "Failed to summarize chunk %d: %v", c.Index, err)
				return err
			}
			fragments[i] = f
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return fragments, nil
}
