package transcription

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/recap/internal/audio"
	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// Job is one transcription request at the provider. It lives only for the
// duration of a pipeline run.
type Job struct {
	ID       string
	Status   Status
	AudioURL string

	// Set once Completed.
	Text          string
	AudioDuration *decimal.Decimal

	// Raw provider status and, for Failed jobs, the provider's response body.
	ProviderStatus string
	Details        map[string]any
}

// Terminal reports whether the job will not change any more.
func (j *Job) Terminal() bool {
	return j.Status == StatusCompleted || j.Status == StatusFailed
}

// DurationMillis returns the audio length in milliseconds, or 0 if unknown.
func (j *Job) DurationMillis() uint64 {
	if j.AudioDuration == nil {
		return 0
	}
	return j.AudioDuration.Mul(decimal.NewFromInt(1000)).BigInt().Uint64()
}

// Client talks to a speech-to-text provider.
type Client interface {
	// Submit uploads the audio and starts a job in Pending state.
	Submit(ctx context.Context, a *audio.Audio) (*Job, error)
	// Poll fetches the job's current state. Safe to call repeatedly.
	Poll(ctx context.Context, job *Job) (*Job, error)
	// AwaitCompletion polls every interval until the job is Completed, the
	// provider reports failure, or maxWait elapses.
	AwaitCompletion(ctx context.Context, job *Job, interval, maxWait time.Duration) (*Job, error)
}
