package entity

type AgentRole string

const (
	AgentRoleResearcher   AgentRole = "researcher"
	AgentRoleAnalyzer     AgentRole = "analyzer"
	AgentRoleWriter       AgentRole = "writer"
	AgentRoleTranslator   AgentRole = "translator"
	AgentRoleSummarizer   AgentRole = "summarizer"
	AgentRoleCodeReviewer AgentRole = "code_reviewer"
)

func (r AgentRole) String() string {
	return string(r)
}

// AgentInput is what a stage hands to an agent: the resolved upstream text plus
// step parameters such as the target language.
type AgentInput struct {
	Text   string
	Params map[string]string
}

const ParamLanguage = "language"

func (in AgentInput) Param(key, defaultValue string) string {
	if v, ok := in.Params[key]; ok && v != "" {
		return v
	}
	return defaultValue
}
