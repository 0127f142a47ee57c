package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorCode identifies a class of pipeline or history failure.
type ErrorCode string

const (
	ErrAudioSource          ErrorCode = "AUDIO_SOURCE_FAILURE"     // 400
	ErrUpload               ErrorCode = "UPLOAD_FAILURE"           // 502
	ErrTranscription        ErrorCode = "TRANSCRIPTION_FAILURE"    // 502
	ErrTranscriptionTimeout ErrorCode = "TRANSCRIPTION_TIMEOUT"    // 504
	ErrEmptyTranscript      ErrorCode = "EMPTY_TRANSCRIPT"         // 422
	ErrSummarization        ErrorCode = "SUMMARIZATION_FAILURE"    // 502
	ErrTitleGeneration      ErrorCode = "TITLE_GENERATION_FAILURE" // 502
	ErrPersistence          ErrorCode = "PERSISTENCE_FAILURE"      // 500
	ErrInvalidRequest       ErrorCode = "INVALID_REQUEST"          // 400
	ErrUnauthorized         ErrorCode = "UNAUTHORIZED"             // 401
	ErrForbidden            ErrorCode = "FORBIDDEN"                // 403
	ErrNotFound             ErrorCode = "NOT_FOUND"                // 404
	ErrInternal             ErrorCode = "INTERNAL"                 // 500
)

// Stage names the pipeline state a failure happened in.
type Stage string

const (
	StageIngesting    Stage = "ingesting"
	StageTranscribing Stage = "transcribing"
	StageChunking     Stage = "chunking"
	StageSummarizing  Stage = "summarizing"
	StageAggregating  Stage = "aggregating"
	StageRecording    Stage = "recording"
	StageHistory      Stage = "history"
)

// PipelineError is a structured failure carrying the stage, an HTTP status
// and whatever diagnostic detail the provider returned.
type PipelineError struct {
	Code    ErrorCode
	Stage   Stage
	Status  int
	Message string
	Details map[string]any
	Err     error
}

// Error implements the error interface.
func (e *PipelineError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the underlying cause.
func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Payload renders the failure shape returned to callers.
func (e *PipelineError) Payload() map[string]any {
	p := map[string]any{
		"error": e.Message,
		"code":  string(e.Code),
	}
	if e.Stage != "" {
		p["stage"] = string(e.Stage)
	}
	if len(e.Details) > 0 {
		p["details"] = e.Details
	}
	return p
}

// NewAudioSource creates a 400 error when the audio could not be read.
func NewAudioSource(err error) *PipelineError {
	return &PipelineError{
		Code:    ErrAudioSource,
		Stage:   StageIngesting,
		Status:  400,
		Message: "Audio source unavailable",
		Err:     err,
	}
}

// NewUpload creates a 502 error when the audio upload to the provider fails.
func NewUpload(err error) *PipelineError {
	return &PipelineError{
		Code:    ErrUpload,
		Stage:   StageTranscribing,
		Status:  502,
		Message: "Audio upload failed",
		Err:     err,
	}
}

// NewTranscription creates a 502 error for a provider-reported failure.
// details is the provider's response body.
func NewTranscription(details map[string]any) *PipelineError {
	return &PipelineError{
		Code:    ErrTranscription,
		Stage:   StageTranscribing,
		Status:  502,
		Message: "Transcription failed",
		Details: details,
	}
}

// NewTranscriptionRequest creates a 502 error when starting or polling a
// transcription job fails at the transport level.
func NewTranscriptionRequest(op string, err error) *PipelineError {
	return &PipelineError{
		Code:    ErrTranscription,
		Stage:   StageTranscribing,
		Status:  502,
		Message: "Transcription failed",
		Details: map[string]any{"operation": op, "cause": errString(err)},
		Err:     err,
	}
}

// NewTranscriptionTimeout creates a 504 error when the job never reached a
// terminal state in time.
func NewTranscriptionTimeout(jobID string, waited string) *PipelineError {
	return &PipelineError{
		Code:    ErrTranscriptionTimeout,
		Stage:   StageTranscribing,
		Status:  504,
		Message: "Transcription timed out",
		Details: map[string]any{"job_id": jobID, "waited": waited},
	}
}

// NewEmptyTranscript creates a 422 error when there is nothing to summarize.
func NewEmptyTranscript(jobID string) *PipelineError {
	return &PipelineError{
		Code:    ErrEmptyTranscript,
		Stage:   StageChunking,
		Status:  422,
		Message: "Nothing to summarize",
		Details: map[string]any{"job_id": jobID},
	}
}

// NewSummarization creates a 502 error for a failed generation call on a chunk.
func NewSummarization(chunkIndex int, err error) *PipelineError {
	return &PipelineError{
		Code:    ErrSummarization,
		Stage:   StageSummarizing,
		Status:  502,
		Message: "Summarization failed",
		Details: map[string]any{"chunk_index": chunkIndex, "cause": errString(err)},
		Err:     err,
	}
}

// NewAggregation creates a 500 error when fragments cannot be recombined.
func NewAggregation(err error) *PipelineError {
	return &PipelineError{
		Code:    ErrSummarization,
		Stage:   StageAggregating,
		Status:  500,
		Message: "Summary fragments incomplete",
		Details: map[string]any{"cause": errString(err)},
		Err:     err,
	}
}

// NewTitleGeneration creates a 502 error when the title call fails.
func NewTitleGeneration(err error) *PipelineError {
	return &PipelineError{
		Code:    ErrTitleGeneration,
		Stage:   StageRecording,
		Status:  502,
		Message: "Title generation failed",
		Details: map[string]any{"cause": errString(err)},
		Err:     err,
	}
}

// NewPersistence creates a 500 error for a failed store operation.
func NewPersistence(err error) *PipelineError {
	return &PipelineError{
		Code:    ErrPersistence,
		Stage:   StageRecording,
		Status:  500,
		Message: "Saving history failed",
		Details: map[string]any{"cause": errString(err)},
		Err:     err,
	}
}

// NewInvalidRequest creates a 400 error for bad caller input.
func NewInvalidRequest(msg string) *PipelineError {
	return &PipelineError{
		Code:    ErrInvalidRequest,
		Stage:   StageHistory,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a missing history record.
func NewNotFound(id string) *PipelineError {
	return &PipelineError{
		Code:    ErrNotFound,
		Stage:   StageHistory,
		Status:  404,
		Message: fmt.Sprintf("history not found: %s", id),
		Details: map[string]any{"id": id},
	}
}

// NewUnauthorized creates a 401 error when a history route has no valid
// caller identity.
func NewUnauthorized(msg string) *PipelineError {
	return &PipelineError{
		Code:    ErrUnauthorized,
		Stage:   StageHistory,
		Status:  401,
		Message: msg,
	}
}

// NewForbidden creates a 403 error when a caller asks for another user's
// history.
func NewForbidden(msg string) *PipelineError {
	return &PipelineError{
		Code:    ErrForbidden,
		Stage:   StageHistory,
		Status:  403,
		Message: msg,
	}
}

// NewInternal creates a 500 error for unexpected failures.
func NewInternal(err error) *PipelineError {
	return &PipelineError{
		Code:    ErrInternal,
		Status:  500,
		Message: "internal error",
		Details: map[string]any{"cause": errString(err)},
		Err:     err,
	}
}

// Is reports whether err (or anything it wraps) is a PipelineError with code.
func Is(err error, code ErrorCode) bool {
	var pErr *PipelineError
	if stderrors.As(err, &pErr) {
		return pErr.Code == code
	}
	return false
}

// As extracts the PipelineError from err, wrapping unknown errors as internal.
func As(err error) *PipelineError {
	if err == nil {
		return nil
	}
	var pErr *PipelineError
	if stderrors.As(err, &pErr) {
		return pErr
	}
	return NewInternal(err)
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
