package agent

import (
	"context"
	"errors"
	"strings"
	"testing"

	"agent-pipeline/internal/domain/entity"
	"agent-pipeline/internal/infrastructure/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type echoLLM struct {
	prompts []string
}

func (e *echoLLM) Complete(ctx context.Context, prompt string) (string, error) {
	e.prompts = append(e.prompts, prompt)
	return prompt, nil
}

type failingLLM struct{ err error }

func (f failingLLM) Complete(ctx context.Context, prompt string) (string, error) {
	return "", f.err
}

func TestAgent_ResearcherIncludesTopic(t *testing.T) {
	llm := &echoLLM{}
	a, err := NewForRole(entity.AgentRoleResearcher, llm, logger.NewNop())
	require.NoError(t, err)

	out, err := a.Run(context.Background(), entity.AgentInput{Text: "renewable energy"})
	require.NoError(t, err)

	assert.Contains(t, out, "renewable energy")
	assert.Equal(t, entity.AgentRoleResearcher, a.Role())
	require.Len(t, llm.prompts, 1)
}

func TestAgent_TranslatorDefaultLanguage(t *testing.T) {
	a, err := NewForRole(entity.AgentRoleTranslator, &echoLLM{}, logger.NewNop())
	require.NoError(t, err)

	prompt, err := a.Prompt(entity.AgentInput{Text: "Hello"})
	require.NoError(t, err)
	assert.Contains(t, prompt, "into Tamil:")
}

func TestAgent_TranslatorLanguageParam(t *testing.T) {
	a, err := NewForRole(entity.AgentRoleTranslator, &echoLLM{}, logger.NewNop())
	require.NoError(t, err)

	prompt, err := a.Prompt(entity.AgentInput{
		Text:   "Hello",
		Params: map[string]string{entity.ParamLanguage: "fr"},
	})
	require.NoError(t, err)
	assert.Contains(t, prompt, "into French:")
}

func TestAgent_ReturnsErrorMarkerContentUnchanged(t *testing.T) {
	marker := "[Error] GROQ_API_KEY not found."
	a, err := NewForRole(entity.AgentRoleWriter, stubLLM(marker), logger.NewNop())
	require.NoError(t, err)

	out, err := a.Run(context.Background(), entity.AgentInput{Text: "summary"})
	require.NoError(t, err)
	assert.Equal(t, marker, out)
}

func TestAgent_PropagatesClientError(t *testing.T) {
	a, err := NewForRole(entity.AgentRoleAnalyzer, failingLLM{err: entity.ErrMissingCredential}, logger.NewNop())
	require.NoError(t, err)

	out, err := a.Run(context.Background(), entity.AgentInput{Text: "research"})

	assert.Empty(t, out)
	assert.True(t, errors.Is(err, entity.ErrMissingCredential))
}

func TestAgent_AllRolesBuild(t *testing.T) {
	for _, role := range []entity.AgentRole{
		entity.AgentRoleResearcher,
		entity.AgentRoleAnalyzer,
		entity.AgentRoleWriter,
		entity.AgentRoleTranslator,
		entity.AgentRoleSummarizer,
		entity.AgentRoleCodeReviewer,
	} {
		a, err := NewForRole(role, &echoLLM{}, logger.NewNop())
		require.NoError(t, err, role)

		out, err := a.Run(context.Background(), entity.AgentInput{Text: "payload-" + role.String()})
		require.NoError(t, err)
		assert.True(t, strings.Contains(out, "payload-"+role.String()), role)
	}
}

func TestNewForRole_Unknown(t *testing.T) {
	_, err := NewForRole("poet", &echoLLM{}, logger.NewNop())
	assert.True(t, errors.Is(err, entity.ErrUnknownAgent))
}

type stubLLM string

func (s stubLLM) Complete(ctx context.Context, prompt string) (string, error) {
	return string(s), nil
}
