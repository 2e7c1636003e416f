package langchain

import (
	"context"
	"fmt"
	"net/http"

	"agent-pipeline/internal/application/port/output"
	"agent-pipeline/internal/domain/entity"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

var _ output.CompletionPort = (*Adapter)(nil)

type Config struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	Logger     output.LoggerPort
}

// Adapter runs completions through langchaingo's OpenAI-compatible model.
type Adapter struct {
	model  llms.Model
	name   string
	logger output.LoggerPort
}

// New returns an adapter whose Complete reports ErrMissingCredential when no
// API key is configured; construction itself never fails on that.
func New(cfg Config) (*Adapter, error) {
	a := &Adapter{name: cfg.Model, logger: cfg.Logger}
	if cfg.APIKey == "" {
		return a, nil
	}

	opts := []openai.Option{
		openai.WithToken(cfg.APIKey),
		openai.WithModel(cfg.Model),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, openai.WithHTTPClient(cfg.HTTPClient))
	}

	llm, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create langchain model: %w", err)
	}
	a.model = llm
	return a, nil
}

func (a *Adapter) Complete(ctx context.Context, prompt string) (string, error) {
	if a.model == nil {
		return "", fmt.Errorf("langchain: %w", entity.ErrMissingCredential)
	}

	if a.logger != nil {
		a.logger.Debug("Generating completion", "model", a.name, "promptChars", len(prompt))
	}

	resp, err := a.model.GenerateContent(ctx, []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeHuman, prompt),
	})
	if err != nil {
		return "", fmt.Errorf("%w: %w", entity.ErrTransport, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices in response", entity.ErrMalformedResponse)
	}

	return resp.Choices[0].Content, nil
}
