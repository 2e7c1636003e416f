package orchestrator

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"agent-pipeline/internal/application/port/input"
	"agent-pipeline/internal/application/port/output"
	"agent-pipeline/internal/domain/entity"

	"github.com/google/uuid"
)

var _ input.WorkflowExecutor = (*UseCase)(nil)

type Config struct {
	// Language is the translator target used by RunWorkflow.
	Language      string
	FailurePolicy entity.FailurePolicy
}

type Option func(*UseCase)

func WithPresenter(p output.PresenterPort) Option {
	return func(uc *UseCase) { uc.presenter = p }
}

func WithRunIDFunc(fn func() string) Option {
	return func(uc *UseCase) { uc.newRunID = fn }
}

func WithClock(fn func() time.Time) Option {
	return func(uc *UseCase) { uc.now = fn }
}

// UseCase runs workflows step by step. Each step waits for the previous one;
// nothing runs in parallel. The agent registry is only read while running.
type UseCase struct {
	agents    output.AgentRegistry
	logger    output.LoggerPort
	presenter output.PresenterPort
	config    Config
	newRunID  func() string
	now       func() time.Time

	mu        sync.Mutex
	workflows map[string]entity.Workflow
}

func New(agents output.AgentRegistry, logger output.LoggerPort, cfg Config, opts ...Option) *UseCase {
	if cfg.FailurePolicy == "" {
		cfg.FailurePolicy = entity.FailurePolicySkip
	}

	uc := &UseCase{
		agents:    agents,
		logger:    logger.Named("orchestrator"),
		config:    cfg,
		newRunID:  uuid.NewString,
		now:       time.Now,
		workflows: make(map[string]entity.Workflow),
	}
	for _, opt := range opts {
		opt(uc)
	}

	def := entity.DefaultWorkflow(cfg.Language)
	uc.workflows[def.ID] = def

	return uc
}

// Register stores agent under name, replacing any agent already there.
func (uc *UseCase) Register(name string, agent output.Agent) {
	uc.agents.Register(name, agent)
	uc.logger.Info("Agent registered", "name", name, "role", agent.Role().String())
}

func (uc *UseCase) Agents() []string {
	return uc.agents.Names()
}

// CreateWorkflow declares an empty workflow and returns its ID. Declaring the
// same name again resets its task list.
func (uc *UseCase) CreateWorkflow(name string) string {
	id := entity.WorkflowID(name)

	uc.mu.Lock()
	uc.workflows[id] = entity.Workflow{ID: id, Name: name}
	uc.mu.Unlock()

	uc.logger.Info("Workflow created", "workflow", id)
	return id
}

func (uc *UseCase) AddTask(workflowID string, step entity.Step) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	wf, ok := uc.workflows[workflowID]
	if !ok {
		return fmt.Errorf("%w: %s", entity.ErrUnknownWorkflow, workflowID)
	}
	if step.Stage == "" {
		step.Stage = step.Agent
	}

	steps := make([]entity.Step, len(wf.Steps), len(wf.Steps)+1)
	copy(steps, wf.Steps)
	wf.Steps = append(steps, step)
	uc.workflows[workflowID] = wf
	return nil
}

func (uc *UseCase) Workflow(workflowID string) (entity.Workflow, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	wf, ok := uc.workflows[workflowID]
	return wf, ok
}

func (uc *UseCase) ExecuteWorkflow(ctx context.Context, workflowID, topic string) (*entity.PipelineResult, error) {
	wf, ok := uc.Workflow(workflowID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", entity.ErrUnknownWorkflow, workflowID)
	}
	return uc.Execute(ctx, wf, topic)
}

// RunWorkflow runs research → analyze → write → translate for topic.
func (uc *UseCase) RunWorkflow(ctx context.Context, topic string) (*entity.PipelineResult, error) {
	return uc.Execute(ctx, entity.DefaultWorkflow(uc.config.Language), topic)
}

// Execute runs wf in declaration order. Stage failures never produce an error
// here: they are recorded on the result, which always has one entry per step.
// Errors are returned only when wf itself cannot run.
func (uc *UseCase) Execute(ctx context.Context, wf entity.Workflow, topic string) (*entity.PipelineResult, error) {
	if strings.TrimSpace(topic) == "" {
		return nil, entity.ErrEmptyTopic
	}

	agents, err := uc.resolveAgents(wf)
	if err != nil {
		return nil, err
	}

	result := &entity.PipelineResult{
		RunID:     uc.newRunID(),
		Workflow:  wf.ID,
		Status:    entity.RunStatusRunning,
		Stages:    make([]entity.StageResult, 0, len(wf.Steps)),
		StartedAt: uc.now(),
	}
	log := uc.logger.WithFields(map[string]any{"run_id": result.RunID, "workflow": wf.ID})
	log.Info("Executing workflow", "steps", len(wf.Steps), "policy", string(uc.config.FailurePolicy))

	if uc.presenter != nil {
		uc.presenter.ShowWorkflowStart(ctx, wf)
	}

	done := make(map[string]entity.StageResult, len(wf.Steps))
	// root failure behind every failed or skipped stage
	failedRoot := make(map[string]string)

	for i, step := range wf.Steps {
		stepLog := log.WithField("stage", step.Stage)

		stage, skipped := uc.skipStage(stepLog, step, done, failedRoot)
		if !skipped {
			if uc.presenter != nil {
				uc.presenter.ShowStageStart(ctx, step)
			}
			stage = uc.runStep(ctx, stepLog, step, agents[i], topic, done, failedRoot)
		}

		done[step.Stage] = stage
		result.Stages = append(result.Stages, stage)

		if uc.presenter != nil {
			uc.presenter.ShowStageResult(ctx, stage)
		}
	}

	result.Status = entity.RunStatusCompleted
	result.FinishedAt = uc.now()
	log.Info("Workflow completed", "outputs", len(result.Stages), "succeeded", result.Succeeded())

	if uc.presenter != nil {
		uc.presenter.ShowWorkflowDone(ctx, result)
	}

	return result, nil
}

// skipStage reports whether step must not run because an upstream stage it
// reads from failed under the skip policy.
func (uc *UseCase) skipStage(
	stepLog output.LoggerPort,
	step entity.Step,
	done map[string]entity.StageResult,
	failedRoot map[string]string,
) (entity.StageResult, bool) {
	if uc.config.FailurePolicy != entity.FailurePolicySkip || step.Input.Kind != entity.InputStage {
		return entity.StageResult{}, false
	}
	upstream := done[step.Input.Stage]
	if !upstream.Failed() {
		return entity.StageResult{}, false
	}

	root := failedRoot[upstream.Stage]
	failedRoot[step.Stage] = root
	stepLog.Warn("Stage skipped", "upstream", upstream.Stage, "root", root)
	return entity.StageResult{
		Stage:  step.Stage,
		Agent:  step.Agent,
		Status: entity.StageStatusSkipped,
		Output: fmt.Sprintf("%s %s not run: upstream stage %s failed", entity.SkippedMarker, step.Stage, root),
	}, true
}

func (uc *UseCase) runStep(
	ctx context.Context,
	stepLog output.LoggerPort,
	step entity.Step,
	agent output.Agent,
	topic string,
	done map[string]entity.StageResult,
	failedRoot map[string]string,
) entity.StageResult {
	stage := entity.StageResult{Stage: step.Stage, Agent: step.Agent}

	text := topic
	switch step.Input.Kind {
	case entity.InputStage:
		upstream := done[step.Input.Stage]
		if upstream.Failed() {
			stepLog.Warn("Feeding failed stage output forward", "upstream", upstream.Stage)
		}
		text = upstream.Output
	case entity.InputLiteral:
		text = step.Input.Value
	}

	stepLog.Info("Stage started", "agent", step.Agent, "inputChars", len(text))
	start := uc.now()

	out, err := agent.Run(ctx, entity.AgentInput{Text: text, Params: step.Params})
	if err != nil {
		failedRoot[step.Stage] = step.Stage
		stage.Status = entity.StageStatusFailed
		stage.Err = err
		stage.Output = entity.MarkError(err)
		stepLog.Error("Stage failed", "error", err, "duration", uc.now().Sub(start))
		return stage
	}

	stage.Status = entity.StageStatusCompleted
	stage.Output = out
	stepLog.Info("Stage completed", "outputChars", len(out), "duration", uc.now().Sub(start))
	return stage
}

// resolveAgents looks up every step's agent and checks stage references before
// anything runs, so a broken workflow makes no client calls.
func (uc *UseCase) resolveAgents(wf entity.Workflow) ([]output.Agent, error) {
	agents := make([]output.Agent, 0, len(wf.Steps))
	seen := make(map[string]bool, len(wf.Steps))

	for _, step := range wf.Steps {
		if step.Stage == "" {
			return nil, fmt.Errorf("%w: step for agent %q has no stage name", entity.ErrUnknownStage, step.Agent)
		}
		if seen[step.Stage] {
			return nil, fmt.Errorf("%w: duplicate stage %q in workflow %s", entity.ErrUnknownStage, step.Stage, wf.ID)
		}
		if step.Input.Kind == entity.InputStage && !seen[step.Input.Stage] {
			return nil, fmt.Errorf("%w: stage %q reads %q before it runs", entity.ErrUnknownStage, step.Stage, step.Input.Stage)
		}

		agent, ok := uc.agents.Get(step.Agent)
		if !ok {
			return nil, fmt.Errorf("%w: %s", entity.ErrUnknownAgent, step.Agent)
		}

		seen[step.Stage] = true
		agents = append(agents, agent)
	}

	return agents, nil
}
