package transcription

import (
	"context"
	"time"

	"github.com/nguyentantai21042004/recap/internal/errors"
)

// AwaitCompletion polls until the job is terminal. A provider-reported
// failure and running out of time are distinct errors. maxWait bounds the
// whole loop, including a poll request that is still in flight.
func (c *implClient) AwaitCompletion(ctx context.Context, job *Job, interval, maxWait time.Duration) (*Job, error) {
	start := c.now()
	polls := 0

	loopCtx, cancel := context.WithTimeout(ctx, maxWait)
	defer cancel()

	for {
		next, err := c.Poll(loopCtx, job)
		if err != nil {
			if c.deadlineHit(ctx, loopCtx) {
				return nil, c.timeout(ctx, job, start, maxWait)
			}
			return nil, err
		}
		polls++

		switch next.Status {
		case StatusCompleted:
			c.logger.Info(ctx, "Transcription job %s completed after %d polls", job.ID, polls)
			return next, nil
		case StatusFailed:
			c.logger.Error(ctx, "Transcription job %s failed: %v", job.ID, next.Details["error"])
			return next, errors.NewTranscription(next.Details)
		}

		elapsed := c.now().Sub(start)
		if elapsed+interval > maxWait {
			c.logger.Error(ctx, "Transcription job %s still %s after %s", job.ID, next.ProviderStatus, elapsed)
			return next, errors.NewTranscriptionTimeout(job.ID, maxWait.String())
		}

		if err := c.sleep(loopCtx, interval); err != nil {
			if c.deadlineHit(ctx, loopCtx) {
				return nil, c.timeout(ctx, job, start, maxWait)
			}
			return nil, errors.NewTranscriptionRequest("poll", err)
		}
		job = next
	}
}

// deadlineHit reports whether the loop ran out of time while the caller's
// context is still live.
func (c *implClient) deadlineHit(parent, loopCtx context.Context) bool {
	return parent.Err() == nil && loopCtx.Err() == context.DeadlineExceeded
}

func (c *implClient) timeout(ctx context.Context, job *Job, start time.Time, maxWait time.Duration) error {
	c.logger.Error(ctx, "Transcription job %s timed out after %s", job.ID, c.now().Sub(start))
	return errors.NewTranscriptionTimeout(job.ID, maxWait.String())
}
