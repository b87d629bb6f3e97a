package summarizer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ollama/ollama/api"

	"github.com/nguyentantai21042004/tube-digest/internal/logger"
)

type implOllama struct {
	client          *api.Client
	baseURL         string
	model           string
	temperature     float64
	numCtx          int
	generateTimeout time.Duration
	logger          logger.Logger
}

func newOllama(ctx context.Context, opts Options, log logger.Logger) (*implOllama, error) {
	base, err := url.Parse(strings.TrimRight(opts.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid language model server URL %q", opts.BaseURL)
	}

	log.Info(ctx, "Initialized Ollama summarizer with model: %s", opts.Model)

	if err := probe(ctx, base.String(), opts.ProbeTimeout, log); err != nil {
		return nil, err
	}

	return &implOllama{
		client:          api.NewClient(base, http.DefaultClient),
		baseURL:         base.String(),
		model:           opts.Model,
		temperature:     opts.Temperature,
		numCtx:          opts.NumCtx,
		generateTimeout: opts.GenerateTimeout,
		logger:          log,
	}, nil
}

// probe issues a GET against the server root; Ollama answers
// "Ollama is running" there.
func probe(ctx context.Context, baseURL string, timeout time.Duration, log logger.Logger) error {
	log.Info(ctx, "Pinging language model server at %s...", baseURL)

	client := &http.Client{Timeout: timeout}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL, nil)
	if err != nil {
		return &ProbeError{Kind: ProbeOther, URL: baseURL, Err: err}
	}

	resp, err := client.Do(req)
	if err != nil {
		kind := classifyProbe(err)
		log.Error(ctx, "Language model server probe failed (%s): %v", kind, err)
		return &ProbeError{Kind: kind, URL: baseURL, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		err := fmt.Errorf("unexpected status %s", resp.Status)
		log.Error(ctx, "Language model server probe failed: %v", err)
		return &ProbeError{Kind: ProbeOther, URL: baseURL, Err: err}
	}

	log.Info(ctx, "Language model server is running")
	return nil
}

// Summarize sends one non-streaming generate request.
func (o *implOllama) Summarize(ctx context.Context, text string) string {
	o.logger.Info(ctx, "Sending %d chars to %s for summarization...", len(text), o.model)

	if o.generateTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.generateTimeout)
		defer cancel()
	}

	stream := false
	req := &api.GenerateRequest{
		Model:  o.model,
		Prompt: BuildPrompt(text),
		Stream: &stream,
		Options: map[string]interface{}{
			"temperature": o.temperature,
			"num_ctx":     o.numCtx,
		},
	}

	var sb strings.Builder
	err := o.client.Generate(ctx, req, func(resp api.GenerateResponse) error {
		sb.WriteString(resp.Response)
		return nil
	})
	if err != nil {
		if isConnectError(err) {
			o.logger.Error(ctx, "Could not connect to %s: %v", o.baseURL, err)
			return fmt.Sprintf(msgConnect, o.baseURL)
		}
		o.logger.Error(ctx, "Ollama error: %v", err)
		return fmt.Sprintf(msgGenerate, err)
	}

	return strings.TrimSpace(sb.String())
}
