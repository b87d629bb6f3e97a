package config

import (
	"fmt"
	"time"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Whisper    WhisperConfig    `yaml:"whisper"`
	Summarizer SummarizerConfig `yaml:"summarizer"`
	Captions   CaptionsConfig   `yaml:"captions"`
	Tools      ToolsConfig      `yaml:"tools"`
	Paths      PathsConfig      `yaml:"paths"`
	Logging    LoggingConfig    `yaml:"logging"`
	Janitor    JanitorConfig    `yaml:"janitor"`
}

type ServerConfig struct {
	Addr         string `yaml:"addr"`
	TemplatesDir string `yaml:"templates_dir"`
	Reload       bool   `yaml:"reload"`
}

type WhisperConfig struct {
	ModelPath  string `yaml:"model_path"`
	BinaryPath string `yaml:"binary_path"`
	Language   string `yaml:"language"`
	Threads    int    `yaml:"threads"`
	BeamSize   int    `yaml:"beam_size"`
}

type SummarizerConfig struct {
	Backend         string        `yaml:"backend"`
	Model           string        `yaml:"model"`
	BaseURL         string        `yaml:"base_url"`
	APIKey          string        `yaml:"api_key"`
	Temperature     *float64      `yaml:"temperature"`
	NumCtx          int           `yaml:"num_ctx"`
	ProbeTimeout    time.Duration `yaml:"probe_timeout"`
	GenerateTimeout time.Duration `yaml:"generate_timeout"`
}

type CaptionsConfig struct {
	Enabled   *bool    `yaml:"enabled"`
	Languages []string `yaml:"languages"`
}

type ToolsConfig struct {
	YtDlp     string `yaml:"yt_dlp"`
	FFmpegDir string `yaml:"ffmpeg_dir"`
}

type PathsConfig struct {
	Downloads string `yaml:"downloads"`
	Models    string `yaml:"models"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type JanitorConfig struct {
	Schedule string        `yaml:"schedule"`
	MaxAge   time.Duration `yaml:"max_age"`
}

const (
	BackendOllama = "ollama"
	BackendGemini = "gemini"
)

// Temperature returns the sampling temperature; 0 is a valid explicit value.
func (c *Config) Temperature() float64 {
	if c.Summarizer.Temperature == nil {
		return 0.3
	}
	return *c.Summarizer.Temperature
}

// CaptionsEnabled reports whether the caption-first lookup should run.
func (c *Config) CaptionsEnabled() bool {
	return c.Captions.Enabled == nil || *c.Captions.Enabled
}

func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		c.Server.Addr = "127.0.0.1:8000"
	}
	if c.Paths.Downloads == "" {
		c.Paths.Downloads = "downloads"
	}
	if c.Paths.Models == "" {
		c.Paths.Models = "models"
	}
	if c.Whisper.ModelPath == "" {
		c.Whisper.ModelPath = "models/whisper/ggml-tiny.en.bin"
	}
	if c.Whisper.BinaryPath == "" {
		c.Whisper.BinaryPath = "whisper-cli"
	}
	if c.Whisper.Language == "" {
		c.Whisper.Language = "auto"
	}
	if c.Whisper.Threads == 0 {
		c.Whisper.Threads = 4
	}
	if c.Whisper.BeamSize == 0 {
		c.Whisper.BeamSize = 5
	}
	if c.Summarizer.Backend == "" {
		c.Summarizer.Backend = BackendOllama
	}
	if c.Summarizer.Model == "" {
		switch c.Summarizer.Backend {
		case BackendGemini:
			c.Summarizer.Model = "gemini-2.5-flash"
		default:
			c.Summarizer.Model = "llama3.2:1b"
		}
	}
	if c.Summarizer.BaseURL == "" {
		c.Summarizer.BaseURL = "http://localhost:11434"
	}
	if c.Summarizer.Temperature == nil {
		t := 0.3
		c.Summarizer.Temperature = &t
	}
	if c.Summarizer.NumCtx == 0 {
		c.Summarizer.NumCtx = 2048
	}
	if c.Summarizer.ProbeTimeout == 0 {
		c.Summarizer.ProbeTimeout = 5 * time.Second
	}
	if c.Summarizer.GenerateTimeout == 0 {
		c.Summarizer.GenerateTimeout = 5 * time.Minute
	}
	if len(c.Captions.Languages) == 0 {
		c.Captions.Languages = []string{"en", "en-US", "ta", "ta-IN"}
	}
	if c.Tools.YtDlp == "" {
		c.Tools.YtDlp = "yt-dlp"
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Janitor.Schedule == "" {
		c.Janitor.Schedule = "@every 30m"
	}
	if c.Janitor.MaxAge == 0 {
		c.Janitor.MaxAge = 2 * time.Hour
	}

	switch c.Summarizer.Backend {
	case BackendOllama:
	case BackendGemini:
		if c.Summarizer.APIKey == "" {
			return fmt.Errorf("summarizer.api_key is required for the gemini backend (set GEMINI_API_KEY)")
		}
	default:
		return fmt.Errorf("summarizer.backend %q is not supported", c.Summarizer.Backend)
	}
	if t := *c.Summarizer.Temperature; t < 0 || t > 2 {
		return fmt.Errorf("summarizer.temperature must be between 0 and 2, got %v", t)
	}
	if c.Summarizer.NumCtx < 0 {
		return fmt.Errorf("summarizer.num_ctx must be positive, got %d", c.Summarizer.NumCtx)
	}
	if c.Whisper.BeamSize < 1 {
		return fmt.Errorf("whisper.beam_size must be at least 1, got %d", c.Whisper.BeamSize)
	}
	if c.Janitor.MaxAge < 0 {
		return fmt.Errorf("janitor.max_age must be positive, got %s", c.Janitor.MaxAge)
	}

	return nil
}
