package output

import (
	"context"

	"agent-pipeline/internal/domain/entity"
)

// CompletionPort turns one prompt into one completion. Implementations make a
// single outbound call and never retry.
type CompletionPort interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type LLMPort interface {
	CompletionPort
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

type ChatRequest struct {
	Messages    []entity.Message
	Temperature float32
}

type ChatResponse struct {
	Message entity.Message
}
