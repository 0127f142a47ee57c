package watcher

import "context"

// Watcher feeds recordings dropped into the inbox folder to a Handler.
type Watcher interface {
	// Start handles files already in the inbox, then blocks on new ones
	// until ctx is cancelled.
	Start(ctx context.Context) error
	Stop() error
}

// Handler processes one recording. Errors are logged, the watcher keeps going.
type Handler func(ctx context.Context, mediaPath string) error
