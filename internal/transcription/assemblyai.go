package transcription

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/nguyentantai21042004/recap/internal/audio"
	"github.com/nguyentantai21042004/recap/internal/errors"
	"github.com/shopspring/decimal"
)

type uploadResponse struct {
	UploadURL string `json:"upload_url"`
}

type transcriptRequest struct {
	AudioURL string `json:"audio_url"`
}

type transcriptResponse struct {
	ID            string           `json:"id"`
	Status        string           `json:"status"`
	AudioURL      string           `json:"audio_url"`
	Text          string           `json:"text"`
	Error         string           `json:"error"`
	AudioDuration *decimal.Decimal `json:"audio_duration"`
}

// Submit uploads the audio bytes and requests a transcript for the returned
// upload URL.
func (c *implClient) Submit(ctx context.Context, a *audio.Audio) (*Job, error) {
	c.logger.Info(ctx, "Uploading audio %s (%d bytes)", a.Name, len(a.Data))

	var up uploadResponse
	if _, err := c.do(ctx, http.MethodPost, "/upload", "application/octet-stream", bytes.NewReader(a.Data), &up); err != nil {
		return nil, errors.NewUpload(err)
	}
	if up.UploadURL == "" {
		return nil, errors.NewUpload(fmt.Errorf("provider returned no upload_url"))
	}

	body, err := json.Marshal(transcriptRequest{AudioURL: up.UploadURL})
	if err != nil {
		return nil, errors.NewTranscriptionRequest("start", err)
	}

	var tr transcriptResponse
	if _, err := c.do(ctx, http.MethodPost, "/transcript", "application/json", bytes.NewReader(body), &tr); err != nil {
		return nil, errors.NewTranscriptionRequest("start", err)
	}
	if tr.ID == "" {
		return nil, errors.NewTranscriptionRequest("start", fmt.Errorf("provider returned no transcript id"))
	}

	c.logger.Info(ctx, "Transcription job started: %s", tr.ID)
	return &Job{
		ID:             tr.ID,
		Status:         StatusPending,
		AudioURL:       up.UploadURL,
		ProviderStatus: tr.Status,
	}, nil
}

// Poll fetches the job state. The passed job is not modified.
func (c *implClient) Poll(ctx context.Context, job *Job) (*Job, error) {
	var tr transcriptResponse
	raw, err := c.do(ctx, http.MethodGet, "/transcript/"+job.ID, "", nil, &tr)
	if err != nil {
		return nil, errors.NewTranscriptionRequest("poll", err)
	}

	next := &Job{
		ID:             job.ID,
		AudioURL:       job.AudioURL,
		ProviderStatus: tr.Status,
		Status:         mapStatus(tr.Status),
	}

	switch next.Status {
	case StatusCompleted:
		next.Text = tr.Text
		next.AudioDuration = tr.AudioDuration
	case StatusFailed:
		var details map[string]any
		if err := json.Unmarshal(raw, &details); err != nil || details == nil {
			details = map[string]any{"status": tr.Status, "error": tr.Error}
		}
		next.Details = details
	}

	c.logger.Debug(ctx, "Transcription job %s status: %s", job.ID, tr.Status)
	return next, nil
}

// mapStatus treats anything that is not clearly terminal as still pending.
func mapStatus(s string) Status {
	switch s {
	case "completed":
		return StatusCompleted
	case "error":
		return StatusFailed
	default:
		return StatusPending
	}
}

func (c *implClient) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("authorization", c.apiKey)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%s %s: bad status %s: %s", method, path, resp.Status, bytes.TrimSpace(raw))
	}

	if err := json.Unmarshal(raw, out); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return raw, nil
}
