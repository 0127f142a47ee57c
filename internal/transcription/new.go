package transcription

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/nguyentantai21042004/recap/internal/logger"
)

const defaultBaseURL = "https://api.assemblyai.com/v2"

type Options struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

type implClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
	logger  logger.Logger

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error
}

// New creates an AssemblyAI client.
func New(opts Options, log logger.Logger) Client {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 5 * time.Minute}
	}

	return &implClient{
		apiKey:  opts.APIKey,
		baseURL: baseURL,
		http:    httpClient,
		logger:  log,
		now:     time.Now,
		sleep:   sleepContext,
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
