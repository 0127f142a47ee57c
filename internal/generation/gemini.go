package generation

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/nguyentantai21042004/recap/internal/logger"
	"google.golang.org/genai"
)

type generateFunc func(ctx context.Context, key string, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)

type implGemini struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
	clients    map[string]*genai.Client
	clientCfg  genai.ClientConfig
	model      string
	logger     logger.Logger
	generate   generateFunc
}

// NewGemini creates a Generator on the Gemini API that rotates through the
// supplied API keys.
func NewGemini(apiKeys []string, model string, log logger.Logger) Generator {
	g := &implGemini{
		apiKeys:   apiKeys,
		clients:   make(map[string]*genai.Client),
		clientCfg: genai.ClientConfig{Backend: genai.BackendGeminiAPI},
		model:     model,
		logger:    log,
	}
	g.generate = g.callModel
	return g
}

// NewVertex creates a Generator on Vertex AI using application default
// credentials. There is a single credential so nothing rotates.
func NewVertex(project, location, model string, log logger.Logger) Generator {
	g := &implGemini{
		apiKeys: []string{""},
		clients: make(map[string]*genai.Client),
		clientCfg: genai.ClientConfig{
			Backend:  genai.BackendVertexAI,
			Project:  project,
			Location: location,
		},
		model:  model,
		logger: log,
	}
	g.generate = g.callModel
	return g
}

// Generate sends parts as one user turn. Rotates API keys on 429 / quota
// errors.
func (g *implGemini) Generate(ctx context.Context, parts []string, opts Options) (string, error) {
	if len(g.apiKeys) == 0 {
		return "", fmt.Errorf("no Gemini API keys configured")
	}

	gParts := make([]*genai.Part, 0, len(parts))
	for _, p := range parts {
		gParts = append(gParts, genai.NewPartFromText(p))
	}
	contents := []*genai.Content{genai.NewContentFromParts(gParts, genai.RoleUser)}

	config := &genai.GenerateContentConfig{
		Temperature:     opts.Temperature,
		MaxOutputTokens: opts.MaxOutputTokens,
	}

	var lastErr error
	for range len(g.apiKeys) {
		idx, key := g.key()

		result, err := g.generate(ctx, key, g.model, contents, config)
		if err != nil {
			if isRateLimited(err) && len(g.apiKeys) > 1 {
				g.logger.Warn(ctx, "Key %d rate limited, rotating...", idx+1)
				g.rotateKey(idx)
				lastErr = err
				continue
			}
			return "", fmt.Errorf("generate content: %w", err)
		}

		text := extractText(result)
		if text == "" {
			return "", fmt.Errorf("empty response from Gemini")
		}
		return text, nil
	}

	return "", fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func (g *implGemini) callModel(ctx context.Context, key string, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	client, err := g.client(ctx, key)
	if err != nil {
		return nil, err
	}
	return client.Models.GenerateContent(ctx, model, contents, config)
}

func (g *implGemini) client(ctx context.Context, key string) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if c, ok := g.clients[key]; ok {
		return c, nil
	}

	cfg := g.clientCfg
	cfg.APIKey = key
	c, err := genai.NewClient(ctx, &cfg)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	g.clients[key] = c
	return c, nil
}

func (g *implGemini) key() (int, string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentKey, g.apiKeys[g.currentKey]
}

// rotateKey moves past idx unless another caller already rotated.
func (g *implGemini) rotateKey(idx int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.currentKey == idx {
		g.currentKey = (g.currentKey + 1) % len(g.apiKeys)
	}
}

func isRateLimited(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func extractText(result *genai.GenerateContentResponse) string {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}
