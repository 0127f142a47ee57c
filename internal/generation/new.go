package generation

import (
	"fmt"

	"github.com/nguyentantai21042004/recap/internal/config"
	"github.com/nguyentantai21042004/recap/internal/logger"
)

// New builds the Generator selected by cfg.Generation.Provider.
func New(cfg *config.Config, log logger.Logger) (Generator, error) {
	switch cfg.Generation.Provider {
	case "gemini", "":
		if cfg.Gemini.Backend == "vertex" {
			return NewVertex(cfg.Gemini.Project, cfg.Gemini.Location, cfg.Gemini.Model, log), nil
		}
		return NewGemini(cfg.Gemini.APIKeys, cfg.Gemini.Model, log), nil
	case "openai":
		return NewOpenAI(cfg.OpenAI.APIKey, cfg.OpenAI.BaseURL, cfg.OpenAI.Model, log), nil
	default:
		return nil, fmt.Errorf("unsupported generation provider %q", cfg.Generation.Provider)
	}
}
