package output

import (
	"context"

	"agent-pipeline/internal/domain/entity"
)

type PresenterPort interface {
	ShowWorkflowStart(ctx context.Context, workflow entity.Workflow)
	ShowStageStart(ctx context.Context, step entity.Step)
	ShowStageResult(ctx context.Context, stage entity.StageResult)
	ShowWorkflowDone(ctx context.Context, result *entity.PipelineResult)
}
