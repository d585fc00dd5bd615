// Package cli holds the studymate command tree: the HTTP server plus one-shot
// commands that call the generation service directly.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "studymate",
		Short: "StudyMate - topic explanations and quizzes backed by Gemini",
		Long: `StudyMate relays topics and study notes to the Gemini generateContent API
and returns structured concept explanations and multiple-choice quizzes.

Configuration is read from the environment (and a .env file when present).
GEMINI_API_KEY is required.`,
		SilenceUsage: true,
	}

	root.AddCommand(newServeCmd(), newExplainCmd(), newQuizCmd())
	return root
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
