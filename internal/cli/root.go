package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "promptlab",
	Short: "Prompt experimentation pipeline for LLM templates",
	Long: `promptlab runs prompt experiments against an OpenAI-compatible API.

Render prompt templates with variables, collect model responses, score them
across six quality dimensions, and compare templates across experiments.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(migrateCmd)
}
