package summarizer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/nguyentantai21042004/tube-digest/internal/logger"
)

type implGemini struct {
	client          *genai.Client
	model           string
	temperature     float32
	generateTimeout time.Duration
	logger          logger.Logger
}

func newGemini(ctx context.Context, opts Options, log logger.Logger) (*implGemini, error) {
	if opts.APIKey == "" {
		return nil, fmt.Errorf("gemini backend requires an API key")
	}

	cc := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	// BaseURL doubles as an endpoint override for proxies and tests.
	if opts.BaseURL != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	log.Info(ctx, "Initialized Gemini summarizer with model: %s", opts.Model)

	return &implGemini{
		client:          client,
		model:           opts.Model,
		temperature:     float32(opts.Temperature),
		generateTimeout: opts.GenerateTimeout,
		logger:          log,
	}, nil
}

func (g *implGemini) Summarize(ctx context.Context, text string) string {
	g.logger.Info(ctx, "Sending %d chars to %s for summarization...", len(text), g.model)

	if g.generateTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.generateTimeout)
		defer cancel()
	}

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(BuildPrompt(text)), &genai.GenerateContentConfig{
		Temperature: genai.Ptr(g.temperature),
	})
	if err != nil {
		if isConnectError(err) {
			g.logger.Error(ctx, "Could not connect to Gemini: %v", err)
			return fmt.Sprintf("Error: Could not connect to the Gemini API: %v", err)
		}
		g.logger.Error(ctx, "Gemini error: %v", err)
		return fmt.Sprintf(msgGenerate, err)
	}

	summary := strings.TrimSpace(result.Text())
	if summary == "" {
		return fmt.Sprintf(msgGenerate, "empty response from Gemini")
	}
	return summary
}
