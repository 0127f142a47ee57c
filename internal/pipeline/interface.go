package pipeline

import (
	"context"

	"github.com/nguyentantai21042004/recap/internal/audio"
	"github.com/nguyentantai21042004/recap/internal/history"
)

type State string

const (
	StateIngesting    State = "ingesting"
	StateTranscribing State = "transcribing"
	StateChunking     State = "chunking"
	StateSummarizing  State = "summarizing"
	StateAggregating  State = "aggregating"
	StateRecording    State = "recording"
	StateDone         State = "done"
	StateFailed       State = "failed"
)

// Terminal reports whether no further transition can happen.
func (s State) Terminal() bool {
	return s == StateDone || s == StateFailed
}

// Pipeline turns audio into a recorded summary.
type Pipeline interface {
	Run(ctx context.Context, src audio.Source) (*Result, error)
}

// Recorder is the last step of a run.
type Recorder interface {
	Record(ctx context.Context, summary string, meta history.Meta) (*history.Outcome, error)
}

// Observer is told about every state change of a run.
type Observer interface {
	OnTransition(ctx context.Context, runID string, from, to State)
}

type ObserverFunc func(ctx context.Context, runID string, from, to State)

func (f ObserverFunc) OnTransition(ctx context.Context, runID string, from, to State) {
	f(ctx, runID, from, to)
}

// Result describes a completed run.
type Result struct {
	RunID           string
	JobID           string
	AudioName       string
	AudioHash       string
	AudioDurationMs uint64
	Transcript      string
	Chunks          int
	Summary         string
	Outcome         *history.Outcome
}

// Payload is the caller-facing result shape.
func (r *Result) Payload() map[string]any {
	return r.Outcome.Payload()
}
