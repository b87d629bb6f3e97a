package main

import (
	"context"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/tube-digest/internal/captions"
	"github.com/nguyentantai21042004/tube-digest/internal/config"
	"github.com/nguyentantai21042004/tube-digest/internal/downloader"
	"github.com/nguyentantai21042004/tube-digest/internal/logger"
	"github.com/nguyentantai21042004/tube-digest/internal/processor"
	"github.com/nguyentantai21042004/tube-digest/internal/summarizer"
	"github.com/nguyentantai21042004/tube-digest/internal/transcriber"
	"github.com/nguyentantai21042004/tube-digest/pkg/executor"
)

// app holds everything a command needs once configuration is loaded.
type app struct {
	cfg       *config.Config
	logger    logger.Logger
	executor  executor.Executor
	handles   *processor.Handles
	processor processor.Processor
}

func loadConfig() (*config.Config, logger.Logger, error) {
	cfg, err := config.Load(config.Path(configPath))
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)

	if cfg.Tools.FFmpegDir != "" {
		if err := executor.PrependPath(cfg.Tools.FFmpegDir); err != nil {
			return nil, nil, fmt.Errorf("ffmpeg dir: %w", err)
		}
	}
	return cfg, log, nil
}

func newApp() (*app, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, err
	}

	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	exec := executor.New()

	src := captions.New(captions.Options{
		YtDlp:     cfg.Tools.YtDlp,
		Dir:       cfg.Paths.Downloads,
		Languages: cfg.Captions.Languages,
	}, exec, log)

	fetcher, err := downloader.New(cfg.Tools.YtDlp, cfg.Paths.Downloads, exec, log)
	if err != nil {
		return nil, err
	}

	handles := processor.NewHandles(processor.Loaders{
		Transcriber: func(ctx context.Context) (transcriber.Transcriber, error) {
			log.Info(ctx, "Loading whisper model %s", cfg.Whisper.ModelPath)
			return transcriber.New(transcriberOptions(cfg), exec, log)
		},
		Summarizer: func(ctx context.Context) (summarizer.Summarizer, error) {
			log.Info(ctx, "Connecting to %s summarizer (model %s)", cfg.Summarizer.Backend, cfg.Summarizer.Model)
			return summarizer.New(ctx, summarizerOptions(cfg), log)
		},
	})

	proc := processor.New(processor.Options{Captions: cfg.CaptionsEnabled()}, handles, src, fetcher, log)

	return &app{
		cfg:       cfg,
		logger:    log,
		executor:  exec,
		handles:   handles,
		processor: proc,
	}, nil
}

func transcriberOptions(cfg *config.Config) transcriber.Options {
	return transcriber.Options{
		BinaryPath: cfg.Whisper.BinaryPath,
		ModelPath:  cfg.Whisper.ModelPath,
		Language:   cfg.Whisper.Language,
		Threads:    cfg.Whisper.Threads,
		BeamSize:   cfg.Whisper.BeamSize,
	}
}

func summarizerOptions(cfg *config.Config) summarizer.Options {
	return summarizer.Options{
		Backend:         cfg.Summarizer.Backend,
		Model:           cfg.Summarizer.Model,
		BaseURL:         cfg.Summarizer.BaseURL,
		APIKey:          cfg.Summarizer.APIKey,
		Temperature:     cfg.Temperature(),
		NumCtx:          cfg.Summarizer.NumCtx,
		ProbeTimeout:    cfg.Summarizer.ProbeTimeout,
		GenerateTimeout: cfg.Summarizer.GenerateTimeout,
	}
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Downloads,
		cfg.Paths.Models,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	return nil
}
