package prompts

import (
	_ "embed"

	"agent-pipeline/internal/domain/entity"
)

//go:embed researcher.txt
var ResearcherPrompt string

//go:embed analyzer.txt
var AnalyzerPrompt string

//go:embed writer.txt
var WriterPrompt string

//go:embed translator.txt
var TranslatorPrompt string

//go:embed summarizer.txt
var SummarizerPrompt string

//go:embed code_reviewer.txt
var CodeReviewerPrompt string

// ForRole returns the built-in template source for role.
func ForRole(role entity.AgentRole) (string, bool) {
	switch role {
	case entity.AgentRoleResearcher:
		return ResearcherPrompt, true
	case entity.AgentRoleAnalyzer:
		return AnalyzerPrompt, true
	case entity.AgentRoleWriter:
		return WriterPrompt, true
	case entity.AgentRoleTranslator:
		return TranslatorPrompt, true
	case entity.AgentRoleSummarizer:
		return SummarizerPrompt, true
	case entity.AgentRoleCodeReviewer:
		return CodeReviewerPrompt, true
	}
	return "", false
}
