package entity

import "strings"

type InputKind string

const (
	InputTopic   InputKind = "topic"
	InputStage   InputKind = "stage"
	InputLiteral InputKind = "literal"
)

// InputSource says where a step takes its text from. It is resolved when the
// step runs, not when the workflow is declared.
type InputSource struct {
	Kind  InputKind
	Stage string
	Value string
}

func FromTopic() InputSource {
	return InputSource{Kind: InputTopic}
}

func FromStage(stage string) InputSource {
	return InputSource{Kind: InputStage, Stage: stage}
}

func Literal(value string) InputSource {
	return InputSource{Kind: InputLiteral, Value: value}
}

type Step struct {
	Stage  string
	Agent  string
	Input  InputSource
	Params map[string]string
}

type Workflow struct {
	ID    string
	Name  string
	Steps []Step
}

func WorkflowID(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", "_"))
}

const (
	StageResearch   = "research"
	StageSummary    = "summary"
	StageArticle    = "article"
	StageTranslated = "translated"
)

const DefaultWorkflowName = "Research Analyze Write Translate"

// DefaultWorkflow is the research → analyze → write → translate pipeline.
func DefaultWorkflow(language string) Workflow {
	return Workflow{
		ID:   WorkflowID(DefaultWorkflowName),
		Name: DefaultWorkflowName,
		Steps: []Step{
			{Stage: StageResearch, Agent: AgentRoleResearcher.String(), Input: FromTopic()},
			{Stage: StageSummary, Agent: AgentRoleAnalyzer.String(), Input: FromStage(StageResearch)},
			{Stage: StageArticle, Agent: AgentRoleWriter.String(), Input: FromStage(StageSummary)},
			{
				Stage:  StageTranslated,
				Agent:  AgentRoleTranslator.String(),
				Input:  FromStage(StageArticle),
				Params: map[string]string{ParamLanguage: language},
			},
		},
	}
}
