package history

import (
	"context"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/recap/internal/errors"
	"github.com/nguyentantai21042004/recap/internal/generation"
	"github.com/nguyentantai21042004/recap/internal/identity"
	"github.com/nguyentantai21042004/recap/internal/logger"
)

const (
	MessageSaved    = "history saved"
	MessageNotSaved = "history not saved"
)

// Outcome is what Record hands back to the caller.
type Outcome struct {
	Saved    bool
	Message  string
	Title    string
	Summary  string
	RecordID string
	Warning  string
}

// Payload renders the outcome the way callers receive it. Anonymous callers
// only get the summary back.
func (o *Outcome) Payload() map[string]any {
	if o.Message == "" {
		return map[string]any{"response": o.Summary}
	}
	p := map[string]any{
		"message": o.Message,
		"title":   o.Title,
		"resp":    o.Summary,
	}
	if o.RecordID != "" {
		p["id"] = o.RecordID
	}
	if o.Warning != "" {
		p["warning"] = o.Warning
	}
	return p
}

// Meta is optional data stored alongside a record.
type Meta struct {
	AudioHash string
}

type TitleOptions struct {
	Temperature float32
	MaxTokens   int32
}

// Recorder titles a summary and saves it for logged in callers.
type Recorder struct {
	store     Store
	checker   identity.Checker
	generator generation.Generator
	title     TitleOptions
	logger    logger.Logger
	now       func() time.Time
}

func NewRecorder(store Store, checker identity.Checker, gen generation.Generator, opts TitleOptions, log logger.Logger) *Recorder {
	return &Recorder{
		store:     store,
		checker:   checker,
		generator: gen,
		title:     opts,
		logger:    log,
		now:       time.Now,
	}
}

// Record checks who is calling, generates a title (always, even for anonymous
// callers) and inserts a record only when the caller is logged in. A failed
// title aborts; a failed insert still returns the summary with a warning.
func (r *Recorder) Record(ctx context.Context, summary string, meta Meta) (*Outcome, error) {
	ident, err := r.checker.CheckLogin(ctx)
	if err != nil {
		r.logger.Warn(ctx, "Login check failed, treating caller as anonymous: %v", err)
		ident = identity.Identity{}
	}

	title, err := r.GenerateTitle(ctx, summary)
	if err != nil {
		return nil, err
	}

	if !ident.LoggedIn || ident.UserID == "" {
		r.logger.Info(ctx, "Caller not logged in, history not stored")
		return &Outcome{Title: title, Summary: summary}, nil
	}

	rec := &Record{
		UserID:    ident.UserID,
		Title:     title,
		Body:      summary,
		AudioHash: meta.AudioHash,
		CreatedAt: r.now().UTC(),
	}
	if err := r.store.Insert(ctx, rec); err != nil {
		pErr := errors.NewPersistence(err)
		r.logger.Error(ctx, "Failed to save history for %s: %v", ident.UserID, err)
		return &Outcome{
			Message: MessageNotSaved,
			Title:   title,
			Summary: summary,
			Warning: pErr.Error(),
		}, nil
	}

	r.logger.Info(ctx, "History saved: %s (%q)", rec.ID, title)
	return &Outcome{
		Saved:    true,
		Message:  MessageSaved,
		Title:    title,
		Summary:  summary,
		RecordID: rec.ID,
	}, nil
}

// GenerateTitle asks the generator for a headline and trims it to
// MaxTitleWords words.
func (r *Recorder) GenerateTitle(ctx context.Context, summary string) (string, error) {
	raw, err := r.generator.Generate(ctx, TitleParts(summary), generation.Options{
		Temperature:     generation.Temperature(r.title.Temperature),
		MaxOutputTokens: r.title.MaxTokens,
	})
	if err != nil {
		return "", errors.NewTitleGeneration(err)
	}

	title := CleanTitle(raw)
	if title == "" {
		return "", errors.NewTitleGeneration(fmt.Errorf("generator returned an empty title"))
	}
	return title, nil
}
