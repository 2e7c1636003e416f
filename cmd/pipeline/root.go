package main

import (
	"context"
	"fmt"
	"io"

	"agent-pipeline/internal/di"
	"agent-pipeline/internal/infrastructure/env"
	"agent-pipeline/internal/infrastructure/userinteraction"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "pipeline",
		Short: "Research → analyze → write → translate with an LLM",
		Long: `Reads a topic from standard input and runs it through four agents in order:
researcher, analyzer, writer and translator. Each stage's output becomes the
next stage's input.

Configuration comes from the environment (and .env files):
  GROQ_API_KEY     API token; when missing every stage reports an error
  LLM_MODEL        model identifier (default llama-3.1-8b-instant)
  LLM_BASE_URL     OpenAI-compatible endpoint (default Groq)
  LLM_BACKEND      openai | langchain
  TARGET_LANGUAGE  translator target, name or BCP 47 tag (default Tamil)
  FAILURE_POLICY   skip | cascade; skip (default) stops feeding a failed
                   stage forward, cascade passes its error text on as input`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInteractive(cmd.Context())
		},
	}

	root.AddCommand(newServeCmd())
	return root
}

// execute runs root and reports any error on its error stream; errors are
// silenced inside cobra so they are printed exactly once.
func execute(root *cobra.Command) error {
	err := root.Execute()
	if err != nil {
		printError(root.ErrOrStderr(), err)
	}
	return err
}

func printError(w io.Writer, err error) {
	color.New(color.FgRed, color.Bold).Fprintf(w, "Error: %v\n", err)
}

func runInteractive(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	envService := env.NewEnvService()
	console := userinteraction.NewConsole()

	cfg := di.ConfigFromEnv(envService)
	cfg.LogName = "interactive"
	cfg.Presenter = console

	console.ShowBanner(ctx, cfg.Model)

	container, err := di.NewContainer(ctx, cfg)
	if err != nil {
		return err
	}
	defer container.Close()

	topic, err := console.AskTopic(ctx)
	if err != nil {
		container.Logger.Error("Reading topic failed", "error", err)
		return err
	}

	container.Logger.Info("Topic received", "topic", topic)

	result, err := container.Orchestrator.RunWorkflow(ctx, topic)
	if err != nil {
		container.Logger.Error("Workflow failed", "error", err)
		return fmt.Errorf("workflow failed: %w", err)
	}

	console.ShowSummary(ctx, result)
	return nil
}
