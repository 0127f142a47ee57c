package audio

import (
	"github.com/nguyentantai21042004/recap/internal/logger"
)

type implLoader struct {
	stores    map[string]Store
	extractor *Extractor
	logger    logger.Logger
}

// New creates a Loader. extractor may be nil, in which case video files are
// uploaded as-is.
func New(log logger.Logger, extractor *Extractor, stores ...Store) Loader {
	m := make(map[string]Store, len(stores))
	for _, s := range stores {
		m[s.Scheme()] = s
	}
	return &implLoader{
		stores:    m,
		extractor: extractor,
		logger:    log,
	}
}
