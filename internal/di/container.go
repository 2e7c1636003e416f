package di

import (
	"context"
	"fmt"

	"agent-pipeline/internal/application/port/output"
	"agent-pipeline/internal/application/service"
	"agent-pipeline/internal/domain/entity"
	"agent-pipeline/internal/infrastructure/env"
	"agent-pipeline/internal/infrastructure/llm/groq"
	"agent-pipeline/internal/infrastructure/llm/langchain"
	"agent-pipeline/internal/infrastructure/logger"
	"agent-pipeline/internal/usecase/agent"
	"agent-pipeline/internal/usecase/orchestrator"
)

const (
	BackendOpenAI    = "openai"
	BackendLangchain = "langchain"
)

type Container struct {
	LLM          output.CompletionPort
	Logger       output.LoggerPort
	Agents       output.AgentRegistry
	Orchestrator *orchestrator.UseCase
}

type Config struct {
	APIKey         string
	Model          string
	BaseURL        string
	Backend        string
	LogHTTP        bool
	TargetLanguage string
	FailurePolicy  entity.FailurePolicy
	LogName        string

	// Logger overrides the file logger; tests pass a no-op one.
	Logger    output.LoggerPort
	Presenter output.PresenterPort
}

// ConfigFromEnv reads the pipeline settings. A missing API key is not an
// error here: each completion reports it instead.
func ConfigFromEnv(cfg output.ConfigPort) Config {
	return Config{
		APIKey:         cfg.Get(env.KeyAPIKey),
		Model:          cfg.GetWithDefault(env.KeyModel, groq.DefaultModel),
		BaseURL:        cfg.GetWithDefault(env.KeyBaseURL, groq.DefaultBaseURL),
		Backend:        cfg.GetWithDefault(env.KeyBackend, BackendOpenAI),
		LogHTTP:        cfg.GetBool(env.KeyLogHTTP, false),
		TargetLanguage: cfg.Get(env.KeyTargetLanguage),
		FailurePolicy:  entity.ParseFailurePolicy(cfg.Get(env.KeyFailurePolicy)),
	}
}

var pipelineRoles = []entity.AgentRole{
	entity.AgentRoleResearcher,
	entity.AgentRoleAnalyzer,
	entity.AgentRoleWriter,
	entity.AgentRoleTranslator,
	entity.AgentRoleSummarizer,
	entity.AgentRoleCodeReviewer,
}

func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	log := cfg.Logger
	if log == nil {
		name := cfg.LogName
		if name == "" {
			name = "pipeline"
		}
		fileLog, err := logger.NewLoggerAdapter(name)
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
		log = fileLog
	}

	llm, err := newCompletionClient(cfg, log)
	if err != nil {
		log.Close()
		return nil, fmt.Errorf("failed to create llm client: %w", err)
	}
	if cfg.APIKey == "" {
		log.Warn("No API key configured; every stage will fail", "key", env.KeyAPIKey)
	}

	var opts []orchestrator.Option
	if cfg.Presenter != nil {
		opts = append(opts, orchestrator.WithPresenter(cfg.Presenter))
	}

	registry := service.NewAgentRegistry()
	uc := orchestrator.New(registry, log, orchestrator.Config{
		Language:      cfg.TargetLanguage,
		FailurePolicy: cfg.FailurePolicy,
	}, opts...)

	if err := registerAgents(uc, llm, log); err != nil {
		log.Close()
		return nil, err
	}

	log.Info("Container ready", "backend", cfg.Backend, "model", cfg.Model, "agents", registry.Names())

	return &Container{
		LLM:          llm,
		Logger:       log,
		Agents:       registry,
		Orchestrator: uc,
	}, nil
}

func (c *Container) Close() {
	if c.Logger != nil {
		c.Logger.Close()
	}
}

func newCompletionClient(cfg Config, log output.LoggerPort) (output.CompletionPort, error) {
	switch cfg.Backend {
	case "", BackendOpenAI:
		return groq.NewGroqAdapter(groq.Config{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
			LogHTTP: cfg.LogHTTP,
			Logger:  log.Named("llm"),
		}), nil
	case BackendLangchain:
		client, err := langchain.New(langchain.Config{
			APIKey:  cfg.APIKey,
			Model:   cfg.Model,
			BaseURL: cfg.BaseURL,
			Logger:  log.Named("llm"),
		})
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unknown llm backend %q", cfg.Backend)
	}
}

func registerAgents(uc *orchestrator.UseCase, llm output.CompletionPort, log output.LoggerPort) error {
	for _, role := range pipelineRoles {
		a, err := agent.NewForRole(role, llm, log)
		if err != nil {
			return fmt.Errorf("failed to create %s agent: %w", role, err)
		}
		uc.Register(role.String(), a)
	}
	return nil
}
