package generation

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/nguyentantai21042004/recap/internal/logger"
	"github.com/sashabaranov/go-openai"
)

type implOpenAI struct {
	client *openai.Client
	model  string
	logger logger.Logger
}

// NewOpenAI creates a Generator on an OpenAI-compatible chat completions API.
// baseURL may be empty for api.openai.com.
func NewOpenAI(apiKey, baseURL, model string, log logger.Logger) Generator {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &implOpenAI{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: log,
	}
}

// Generate joins parts into a single user message.
func (o *implOpenAI) Generate(ctx context.Context, parts []string, opts Options) (string, error) {
	req := openai.ChatCompletionRequest{
		Model: o.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: strings.Join(parts, "\n\n")},
		},
		MaxTokens: int(opts.MaxOutputTokens),
	}
	if opts.Temperature != nil {
		req.Temperature = *opts.Temperature
		// go-openai omits a zero temperature from the request body.
		if req.Temperature == 0 {
			req.Temperature = math.SmallestNonzeroFloat32
		}
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", fmt.Errorf("empty response from %s", o.model)
	}

	o.logger.Debug(ctx, "OpenAI %s used %d tokens", o.model, resp.Usage.TotalTokens)
	return resp.Choices[0].Message.Content, nil
}
