package input

import (
	"context"

	"agent-pipeline/internal/domain/entity"
)

type WorkflowExecutor interface {
	RunWorkflow(ctx context.Context, topic string) (*entity.PipelineResult, error)
	Execute(ctx context.Context, wf entity.Workflow, topic string) (*entity.PipelineResult, error)
}
