package userinteraction

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"agent-pipeline/internal/application/port/output"
	"agent-pipeline/internal/domain/entity"

	"github.com/fatih/color"
)

var _ output.PresenterPort = (*Console)(nil)

const (
	stagePreviewLen   = 400
	summaryPreviewLen = 500
)

type Console struct {
	in  *bufio.Reader
	out io.Writer
}

func NewConsole() *Console {
	return NewConsoleWithIO(os.Stdin, color.Output)
}

func NewConsoleWithIO(in io.Reader, out io.Writer) *Console {
	return &Console{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// AskTopic reads one line. A final line without a newline is accepted.
func (c *Console) AskTopic(ctx context.Context) (string, error) {
	color.New(color.FgCyan, color.Bold).Fprint(c.out, "\n🔎 Enter a topic to research: ")

	line, err := c.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("failed to read topic: %w", err)
	}

	return strings.TrimSpace(line), nil
}

func (c *Console) ShowBanner(ctx context.Context, model string) {
	color.New(color.FgMagenta, color.Bold).Fprintf(c.out, "\n🚀 Multi-Agent Orchestrator (%s)\n", model)
	fmt.Fprintln(c.out, strings.Repeat("=", 50))
}

func (c *Console) ShowWorkflowStart(ctx context.Context, wf entity.Workflow) {
	stages := make([]string, 0, len(wf.Steps))
	for _, s := range wf.Steps {
		stages = append(stages, s.Stage)
	}
	color.New(color.FgCyan, color.Bold).Fprintf(c.out, "\n📋 Starting Workflow: %s\n\n", strings.Join(stages, " → "))
}

func (c *Console) ShowStageStart(ctx context.Context, step entity.Step) {
	icon, _ := stageDisplay(step.Stage)
	color.New(color.FgYellow).Fprintf(c.out, "%s %s is working on %s...\n", icon, step.Agent, step.Stage)
}

func (c *Console) ShowStageResult(ctx context.Context, stage entity.StageResult) {
	_, title := stageDisplay(stage.Stage)

	switch stage.Status {
	case entity.StageStatusFailed:
		color.New(color.FgRed, color.Bold).Fprintf(c.out, "\n❌ %s failed:\n", title)
		color.New(color.FgRed).Fprintf(c.out, "%s\n\n", truncate(stage.Output, stagePreviewLen))
	case entity.StageStatusSkipped:
		color.New(color.Faint).Fprintf(c.out, "\n⏭️  %s skipped: %s\n\n", title, stage.Output)
	default:
		color.New(color.FgGreen, color.Bold).Fprintf(c.out, "\n%s:\n", title)
		fmt.Fprintf(c.out, "%s\n\n", truncate(stage.Output, stagePreviewLen))
	}
}

func (c *Console) ShowWorkflowDone(ctx context.Context, result *entity.PipelineResult) {
	if result.Succeeded() {
		color.New(color.FgGreen, color.Bold).Fprintln(c.out, "✅ Workflow Completed Successfully!")
		return
	}
	color.New(color.FgYellow, color.Bold).Fprintln(c.out, "⚠️  Workflow completed with failed stages")
}

func (c *Console) ShowSummary(ctx context.Context, result *entity.PipelineResult) {
	color.New(color.Bold).Fprintln(c.out, "\n🧾 Final Results Summary:")
	for _, s := range result.Stages {
		color.New(color.FgCyan, color.Bold).Fprintf(c.out, "\n🔹 %s:\n", strings.ToUpper(s.Stage))
		fmt.Fprintf(c.out, "%s\n", truncate(s.Output, summaryPreviewLen))
	}
}

func stageDisplay(stage string) (string, string) {
	displays := map[string][2]string{
		entity.StageResearch:   {"🔍", "📊 Research Output"},
		entity.StageSummary:    {"🧠", "📑 Summary"},
		entity.StageArticle:    {"✍️", "📰 Article"},
		entity.StageTranslated: {"🌐", "🌍 Translated Version"},
	}

	if display, ok := displays[stage]; ok {
		return display[0], display[1]
	}
	return "🔧", stage
}

// truncate cuts s to maxLen runes so multi-byte scripts are never split.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
