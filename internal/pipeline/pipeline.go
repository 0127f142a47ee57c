package pipeline

import (
	"context"
	"crypto/rand"
	"strings"
	"time"

	"github.com/nguyentantai21042004/recap/internal/audio"
	"github.com/nguyentantai21042004/recap/internal/chunker"
	"github.com/nguyentantai21042004/recap/internal/errors"
	"github.com/nguyentantai21042004/recap/internal/history"
	"github.com/nguyentantai21042004/recap/internal/logger"
	"github.com/nguyentantai21042004/recap/internal/summarizer"
	"github.com/oklog/ulid/v2"
)

// run tracks one pass through the state machine.
type run struct {
	p     *implPipeline
	id    string
	state State
}

func (r *run) to(ctx context.Context, next State) {
	prev := r.state
	r.state = next
	r.p.logger.Info(ctx, "State %s -> %s", prev, next)
	if r.p.observer != nil {
		r.p.observer.OnTransition(ctx, r.id, prev, next)
	}
}

func (r *run) fail(ctx context.Context, err error) error {
	pErr := errors.As(err)
	r.p.logger.Error(ctx, "Run failed in %s: %v", r.state, err)
	r.to(ctx, StateFailed)
	return pErr
}

// Run moves the source through every state in order. Any failure ends the
// run in StateFailed with a structured error; nothing is retried and nothing
// is persisted after a failure.
func (p *implPipeline) Run(ctx context.Context, src audio.Source) (*Result, error) {
	r := &run{p: p, id: newRunID()}
	ctx = logger.WithRunID(ctx, r.id)
	res := &Result{RunID: r.id, AudioName: src.Name()}

	r.to(ctx, StateIngesting)
	a, err := p.loader.Load(ctx, src)
	if err != nil {
		return nil, r.fail(ctx, errors.NewAudioSource(err))
	}
	res.AudioHash = a.Hash

	r.to(ctx, StateTranscribing)
	job, err := p.transcriber.Submit(ctx, a)
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	res.JobID = job.ID
	job, err = p.transcriber.AwaitCompletion(ctx, job, p.opts.PollInterval, p.opts.MaxWait)
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	res.Transcript = job.Text
	res.AudioDurationMs = job.DurationMillis()

	r.to(ctx, StateChunking)
	chunks := p.split(job.Text)
	if len(chunks) == 0 || strings.TrimSpace(job.Text) == "" {
		return nil, r.fail(ctx, errors.NewEmptyTranscript(job.ID))
	}
	res.Chunks = len(chunks)
	p.logger.Info(ctx, "Transcript of %d chars split into %d chunks (%s mode)", len([]rune(job.Text)), len(chunks), p.opts.Mode)

	r.to(ctx, StateSummarizing)
	fragments, err := p.summarizer.SummarizeAll(ctx, chunks)
	if err != nil {
		return nil, r.fail(ctx, err)
	}

	r.to(ctx, StateAggregating)
	summary, err := summarizer.Combine(fragments)
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	res.Summary = summary

	r.to(ctx, StateRecording)
	outcome, err := p.recorder.Record(ctx, summary, history.Meta{AudioHash: a.Hash})
	if err != nil {
		return nil, r.fail(ctx, err)
	}
	res.Outcome = outcome

	r.to(ctx, StateDone)
	return res, nil
}

func (p *implPipeline) split(text string) []chunker.Chunk {
	if p.opts.Mode == ModeSingle {
		return chunker.Whole(text)
	}
	return chunker.Split(text, p.opts.MaxChunkSize)
}

func newRunID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}
