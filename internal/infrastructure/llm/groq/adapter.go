package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"agent-pipeline/internal/application/port/output"
	"agent-pipeline/internal/domain/entity"

	"github.com/sashabaranov/go-openai"
)

var _ output.LLMPort = (*GroqAdapter)(nil)

const (
	DefaultBaseURL = "https://api.groq.com/openai/v1"
	DefaultModel   = "llama-3.1-8b-instant"
)

type GroqAdapter struct {
	client *openai.Client
	apiKey string
	model  string
	logger output.LoggerPort
}

type Config struct {
	APIKey  string
	Model   string
	BaseURL string
	// LogHTTP wraps the transport so every request and response status is logged.
	LogHTTP    bool
	HTTPClient *http.Client
	Logger     output.LoggerPort
}

func DefaultConfig(apiKey string) Config {
	return Config{
		APIKey:  apiKey,
		Model:   DefaultModel,
		BaseURL: DefaultBaseURL,
	}
}

type loggingTransport struct {
	base   http.RoundTripper
	logger output.LoggerPort
}

func (t *loggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	var bodyBytes []byte
	if req.Body != nil {
		bodyBytes, _ = io.ReadAll(req.Body)
		req.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
	}

	var requestData map[string]interface{}
	if len(bodyBytes) > 0 {
		_ = json.Unmarshal(bodyBytes, &requestData)
	}

	t.logger.Debug("HTTP Request",
		"method", req.Method,
		"url", req.URL.String(),
		"body", requestData,
	)

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		t.logger.Warn("HTTP Request failed", "error", err)
		return resp, err
	}

	t.logger.Debug("HTTP Response",
		"status", resp.Status,
		"statusCode", resp.StatusCode,
	)
	return resp, nil
}

func NewGroqAdapter(cfg Config) *GroqAdapter {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	httpClient := cfg.HTTPClient
	if cfg.LogHTTP && cfg.Logger != nil {
		base := http.DefaultTransport
		if httpClient != nil && httpClient.Transport != nil {
			base = httpClient.Transport
		}
		httpClient = &http.Client{
			Transport: &loggingTransport{base: base, logger: cfg.Logger},
		}
	}
	if httpClient != nil {
		config.HTTPClient = httpClient
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &GroqAdapter{
		client: openai.NewClientWithConfig(config),
		apiKey: cfg.APIKey,
		model:  model,
		logger: cfg.Logger,
	}
}

// Complete sends prompt as the only user message and returns the first choice.
func (a *GroqAdapter) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := a.Chat(ctx, output.ChatRequest{
		Messages: []entity.Message{entity.UserMessage(prompt)},
	})
	if err != nil {
		return "", err
	}
	return resp.Message.Content, nil
}

func (a *GroqAdapter) Chat(ctx context.Context, req output.ChatRequest) (*output.ChatResponse, error) {
	if a.apiKey == "" {
		return nil, fmt.Errorf("groq: %w", entity.ErrMissingCredential)
	}

	if a.logger != nil {
		a.logger.Debug("Creating chat completion",
			"model", a.model,
			"messagesCount", len(req.Messages),
			"promptChars", totalChars(req.Messages))
	}

	resp, err := a.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       a.model,
		Messages:    convertMessages(req.Messages),
		Temperature: req.Temperature,
	})
	if err != nil {
		return nil, classifyError(err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", entity.ErrMalformedResponse)
	}

	return &output.ChatResponse{
		Message: convertResponseMessage(resp.Choices[0].Message),
	}, nil
}

// classifyError keeps JSON decoding failures apart from transport failures. A
// body cut off mid-document counts as malformed.
func classifyError(err error) error {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF) {
		return fmt.Errorf("%w: %w", entity.ErrMalformedResponse, err)
	}
	return fmt.Errorf("%w: %w", entity.ErrTransport, err)
}

func totalChars(messages []entity.Message) int {
	n := 0
	for _, m := range messages {
		n += len(m.Content)
	}
	return n
}

func convertMessages(messages []entity.Message) []openai.ChatCompletionMessage {
	result := make([]openai.ChatCompletionMessage, 0, len(messages))
	for _, msg := range messages {
		result = append(result, openai.ChatCompletionMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	return result
}

func convertResponseMessage(msg openai.ChatCompletionMessage) entity.Message {
	return entity.Message{
		Role:    entity.MessageRole(msg.Role),
		Content: msg.Content,
	}
}
