package agent

import (
	"context"
	"fmt"

	"agent-pipeline/internal/application/port/output"
	"agent-pipeline/internal/domain/entity"
	"agent-pipeline/internal/infrastructure/language"
	"agent-pipeline/internal/infrastructure/prompts"
)

var _ output.Agent = (*Agent)(nil)

// Agent renders its role's prompt from the stage input and hands it to the
// completion client. Roles differ only in the template.
type Agent struct {
	role     entity.AgentRole
	template *prompts.Template
	llm      output.CompletionPort
	logger   output.LoggerPort
}

func New(role entity.AgentRole, template *prompts.Template, llm output.CompletionPort, logger output.LoggerPort) *Agent {
	return &Agent{
		role:     role,
		template: template,
		llm:      llm,
		logger:   logger.WithField("agent", role.String()),
	}
}

// NewForRole builds an agent from the built-in template for role.
func NewForRole(role entity.AgentRole, llm output.CompletionPort, logger output.LoggerPort) (*Agent, error) {
	src, ok := prompts.ForRole(role)
	if !ok {
		return nil, fmt.Errorf("%w: no prompt template for role %q", entity.ErrUnknownAgent, role)
	}
	tmpl, err := prompts.Parse(role.String(), src)
	if err != nil {
		return nil, err
	}
	return New(role, tmpl, llm, logger), nil
}

func (a *Agent) Role() entity.AgentRole {
	return a.role
}

func (a *Agent) Prompt(in entity.AgentInput) (string, error) {
	return a.template.Render(prompts.PromptData{
		Input:    in.Text,
		Language: language.DisplayName(in.Param(entity.ParamLanguage, language.Default)),
	})
}

// Run returns whatever text the client produced. Client errors are returned
// unchanged; the caller decides what a failed stage means.
func (a *Agent) Run(ctx context.Context, in entity.AgentInput) (string, error) {
	prompt, err := a.Prompt(in)
	if err != nil {
		return "", err
	}

	a.logger.Debug("Agent prompt rendered", "promptChars", len(prompt))

	out, err := a.llm.Complete(ctx, prompt)
	if err != nil {
		a.logger.Warn("Completion failed", "error", err)
		return "", err
	}

	a.logger.Debug("Agent completed", "outputChars", len(out))
	return out, nil
}
