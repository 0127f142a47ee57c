package config

import (
	"fmt"
	"time"
)

type Config struct {
	AssemblyAI  AssemblyAIConfig  `yaml:"assemblyai"`
	Generation  GenerationConfig  `yaml:"generation"`
	Gemini      GeminiConfig      `yaml:"gemini"`
	OpenAI      OpenAIConfig      `yaml:"openai"`
	Summarizer  SummarizerConfig  `yaml:"summarizer"`
	History     HistoryConfig     `yaml:"history"`
	Storage     StorageConfig     `yaml:"storage"`
	FFmpeg      FFmpegConfig      `yaml:"ffmpeg"`
	Paths       PathsConfig       `yaml:"paths"`
	Server      ServerConfig      `yaml:"server"`
	Logging     LoggingConfig     `yaml:"logging"`
	Watch       WatchConfig       `yaml:"watch"`
	Performance PerformanceConfig `yaml:"performance"`
}

type AssemblyAIConfig struct {
	APIKey       string        `yaml:"api_key"`
	BaseURL      string        `yaml:"base_url"`
	PollInterval time.Duration `yaml:"poll_interval"`
	MaxWait      time.Duration `yaml:"max_wait"`
}

// GenerationConfig selects the LLM backend and the sampling options used for
// summaries and titles. Temperatures are pointers so an explicit 0 survives
// defaulting.
type GenerationConfig struct {
	Provider           string   `yaml:"provider"` // gemini | openai
	SummaryTemperature *float32 `yaml:"summary_temperature"`
	TitleTemperature   *float32 `yaml:"title_temperature"`
	TitleMaxTokens     int32    `yaml:"title_max_tokens"`
}

type GeminiConfig struct {
	Model    string   `yaml:"model"`
	APIKeys  []string `yaml:"api_keys"`
	Backend  string   `yaml:"backend"` // gemini | vertex
	Project  string   `yaml:"project"`
	Location string   `yaml:"location"`
}

type OpenAIConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

type SummarizerConfig struct {
	Mode         string `yaml:"mode"` // single | chunked
	MaxChunkSize int    `yaml:"max_chunk_size"`
	Parallelism  int    `yaml:"parallelism"`
}

type HistoryConfig struct {
	Driver     string `yaml:"driver"` // sqlite | mongo
	SQLitePath string `yaml:"sqlite_path"`
	MongoURI   string `yaml:"mongo_uri"`
	Database   string `yaml:"database"`
	Collection string `yaml:"collection"`
}

// StorageConfig enables content-store references. GCS uses application
// default credentials.
type StorageConfig struct {
	GridFSBucket string `yaml:"gridfs_bucket"`
	GCSEnabled   bool   `yaml:"gcs_enabled"`
}

type FFmpegConfig struct {
	Enabled    bool   `yaml:"enabled"`
	BinaryPath string `yaml:"binary_path"`
	SampleRate int    `yaml:"sample_rate"`
}

type PathsConfig struct {
	Input    string `yaml:"input"`
	Output   string `yaml:"output"`
	Archived string `yaml:"archived"`
	Failed   string `yaml:"failed"`
	Temp     string `yaml:"temp"`
}

type ServerConfig struct {
	Addr         string `yaml:"addr"`
	JWTSecret    string `yaml:"jwt_secret"`
	MaxUploadMiB int    `yaml:"max_upload_mib"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// WatchConfig identifies whose history watch-mode runs are recorded under.
// Empty UserID means watch runs are anonymous and nothing is persisted.
type WatchConfig struct {
	UserID string `yaml:"user_id"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

func (c *Config) Validate() error {
	if c.AssemblyAI.APIKey == "" {
		return fmt.Errorf("assemblyai.api_key is required")
	}

	if c.Generation.Provider == "" {
		c.Generation.Provider = "gemini"
	}
	switch c.Generation.Provider {
	case "gemini":
		if c.Gemini.Backend == "" {
			c.Gemini.Backend = "gemini"
		}
		if c.Gemini.Backend == "gemini" && len(c.Gemini.APIKeys) == 0 {
			return fmt.Errorf("gemini.api_keys is required")
		}
		if c.Gemini.Backend == "vertex" && c.Gemini.Project == "" {
			return fmt.Errorf("gemini.project is required for the vertex backend")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("openai.api_key is required")
		}
	default:
		return fmt.Errorf("generation.provider %q is not supported", c.Generation.Provider)
	}

	if c.Summarizer.Mode == "" {
		c.Summarizer.Mode = "chunked"
	}
	if c.Summarizer.Mode != "single" && c.Summarizer.Mode != "chunked" {
		return fmt.Errorf("summarizer.mode %q is not supported", c.Summarizer.Mode)
	}

	if c.History.Driver == "" {
		c.History.Driver = "sqlite"
	}
	switch c.History.Driver {
	case "sqlite":
		if c.History.SQLitePath == "" {
			c.History.SQLitePath = "data/recap.db"
		}
	case "mongo":
		if c.History.MongoURI == "" {
			return fmt.Errorf("history.mongo_uri is required for the mongo driver")
		}
	default:
		return fmt.Errorf("history.driver %q is not supported", c.History.Driver)
	}

	if c.AssemblyAI.BaseURL == "" {
		c.AssemblyAI.BaseURL = "https://api.assemblyai.com/v2"
	}
	if c.AssemblyAI.PollInterval == 0 {
		c.AssemblyAI.PollInterval = 3 * time.Second
	}
	if c.AssemblyAI.MaxWait == 0 {
		c.AssemblyAI.MaxWait = 30 * time.Minute
	}
	if c.Generation.SummaryTemperature == nil {
		c.Generation.SummaryTemperature = float32Ptr(1.0)
	}
	if c.Generation.TitleTemperature == nil {
		c.Generation.TitleTemperature = float32Ptr(0.5)
	}
	if c.Generation.TitleMaxTokens == 0 {
		c.Generation.TitleMaxTokens = 5000
	}
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-2.5-flash"
	}
	if c.Gemini.Location == "" {
		c.Gemini.Location = "us-central1"
	}
	if c.OpenAI.Model == "" {
		c.OpenAI.Model = "gpt-4o-mini"
	}
	if c.Summarizer.MaxChunkSize == 0 {
		c.Summarizer.MaxChunkSize = 6000
	}
	if c.Summarizer.Parallelism == 0 {
		c.Summarizer.Parallelism = 1
	}
	if c.History.Database == "" {
		c.History.Database = "recap"
	}
	if c.History.Collection == "" {
		c.History.Collection = "history"
	}
	if c.Storage.GridFSBucket == "" {
		c.Storage.GridFSBucket = "fs"
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.FFmpeg.SampleRate == 0 {
		c.FFmpeg.SampleRate = 16000
	}
	if c.Paths.Input == "" {
		c.Paths.Input = "data/input"
	}
	if c.Paths.Output == "" {
		c.Paths.Output = "data/output"
	}
	if c.Paths.Archived == "" {
		c.Paths.Archived = "data/archived"
	}
	if c.Paths.Failed == "" {
		c.Paths.Failed = "data/failed"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Server.Addr == "" {
		c.Server.Addr = ":5000"
	}
	if c.Server.MaxUploadMiB == 0 {
		c.Server.MaxUploadMiB = 200
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}

	return nil
}

func float32Ptr(v float32) *float32 { return &v }
