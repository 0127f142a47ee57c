package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructors(t *testing.T) {
	cause := stderrors.New("boom")

	tests := []struct {
		name   string
		err    *PipelineError
		code   ErrorCode
		stage  Stage
		status int
	}{
		{"audio source", NewAudioSource(cause), ErrAudioSource, StageIngesting, 400},
		{"upload", NewUpload(cause), ErrUpload, StageTranscribing, 502},
		{"transcription", NewTranscription(map[string]any{"status": "error"}), ErrTranscription, StageTranscribing, 502},
		{"transcription request", NewTranscriptionRequest("poll", cause), ErrTranscription, StageTranscribing, 502},
		{"timeout", NewTranscriptionTimeout("job-1", "30m0s"), ErrTranscriptionTimeout, StageTranscribing, 504},
		{"empty transcript", NewEmptyTranscript("job-1"), ErrEmptyTranscript, StageChunking, 422},
		{"summarization", NewSummarization(2, cause), ErrSummarization, StageSummarizing, 502},
		{"aggregation", NewAggregation(cause), ErrSummarization, StageAggregating, 500},
		{"title", NewTitleGeneration(cause), ErrTitleGeneration, StageRecording, 502},
		{"persistence", NewPersistence(cause), ErrPersistence, StageRecording, 500},
		{"invalid request", NewInvalidRequest("bad"), ErrInvalidRequest, StageHistory, 400},
		{"unauthorized", NewUnauthorized("login required"), ErrUnauthorized, StageHistory, 401},
		{"forbidden", NewForbidden("not yours"), ErrForbidden, StageHistory, 403},
		{"not found", NewNotFound("abc"), ErrNotFound, StageHistory, 404},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.code, tt.err.Code)
			assert.Equal(t, tt.stage, tt.err.Stage)
			assert.Equal(t, tt.status, tt.err.Status)
			assert.NotEmpty(t, tt.err.Error())
		})
	}
}

func TestPayload(t *testing.T) {
	err := NewTranscription(map[string]any{"status": "error", "error": "bad audio"})

	p := err.Payload()
	assert.Equal(t, "Transcription failed", p["error"])
	assert.Equal(t, "TRANSCRIPTION_FAILURE", p["code"])
	assert.Equal(t, "transcribing", p["stage"])
	assert.Equal(t, map[string]any{"status": "error", "error": "bad audio"}, p["details"])
}

func TestPayloadOmitsEmptyDetails(t *testing.T) {
	p := NewInvalidRequest("no history IDs provided").Payload()
	_, ok := p["details"]
	assert.False(t, ok)
}

func TestIsThroughWrapping(t *testing.T) {
	err := fmt.Errorf("run: %w", NewEmptyTranscript("j"))

	assert.True(t, Is(err, ErrEmptyTranscript))
	assert.False(t, Is(err, ErrUpload))
	assert.False(t, Is(stderrors.New("plain"), ErrUpload))
	assert.False(t, Is(nil, ErrUpload))
}

func TestAs(t *testing.T) {
	assert.Nil(t, As(nil))

	wrapped := fmt.Errorf("x: %w", NewUpload(stderrors.New("refused")))
	assert.Equal(t, ErrUpload, As(wrapped).Code)

	plain := As(stderrors.New("plain"))
	assert.Equal(t, ErrInternal, plain.Code)
	assert.Equal(t, 500, plain.Status)
}

func TestUnwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := NewPersistence(cause)
	assert.True(t, stderrors.Is(err, cause))
}
