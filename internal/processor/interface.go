package processor

import "context"

// Processor handles one media file dropped into the inbox.
type Processor interface {
	Process(ctx context.Context, mediaPath string) error
}
