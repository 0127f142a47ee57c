package history

import (
	"context"
	"time"
)

// Record is one saved summary. Body is always the full combined summary.
type Record struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	Body      string    `json:"history"`
	AudioHash string    `json:"audio_hash,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Store persists history records. Each call is a single atomic operation.
type Store interface {
	// Insert saves r and fills in r.ID.
	Insert(ctx context.Context, r *Record) error
	// FindByUser returns the user's records, newest first.
	FindByUser(ctx context.Context, userID string) ([]Record, error)
	// DeleteOne removes a record and reports whether it existed.
	DeleteOne(ctx context.Context, id string) (bool, error)
	DeleteByUser(ctx context.Context, userID string) (int64, error)
	DeleteByIDs(ctx context.Context, ids []string) (int64, error)
	Close() error
}
