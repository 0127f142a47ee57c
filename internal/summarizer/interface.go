package summarizer

import (
	"context"

	"github.com/nguyentantai21042004/recap/internal/chunker"
)

// Fragment is the summary of one transcript chunk.
type Fragment struct {
	Index int
	Text  string
}

// Summarizer turns transcript chunks into summary fragments.
type Summarizer interface {
	// SummarizeChunk runs the report template over a single chunk.
	SummarizeChunk(ctx context.Context, chunk chunker.Chunk) (Fragment, error)
	// SummarizeAll summarizes every chunk and returns fragments in index
	// order. The first failure aborts the rest.
	SummarizeAll(ctx context.Context, chunks []chunker.Chunk) ([]Fragment, error)
}
