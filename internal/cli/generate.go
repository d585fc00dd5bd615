package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/studymate/studymate-backend/config"
	"github.com/studymate/studymate-backend/internal/bootstrap"
	"github.com/studymate/studymate-backend/internal/logging"
	"github.com/studymate/studymate-backend/internal/study_assistant/domain"
	"github.com/studymate/studymate-backend/internal/study_assistant/service"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F780FF"))
	labelStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#8BE9FD"))
	answerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B"))
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))
)

func newExplainCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "explain [topic]",
		Short: "Explain a topic and suggest a textbook and a video",
		Example: `  studymate explain Photosynthesis
  studymate explain "binary search trees" --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			// The HTTP routes forward input verbatim; shell args are trimmed.
			topic := strings.TrimSpace(strings.Join(args, " "))
			if topic == "" {
				return fmt.Errorf("no topic provided")
			}

			svc, err := loadService()
			if err != nil {
				return err
			}
			out, err := svc.ExplainTopic(cmd.Context(), topic)
			if err != nil {
				return fmt.Errorf("failed to generate topic explanation: %w", err)
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			renderTopic(cmd.OutOrStdout(), topic, out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw JSON record")
	return cmd
}

func newQuizCmd() *cobra.Command {
	var (
		asJSON bool
		file   string
	)

	cmd := &cobra.Command{
		Use:   "quiz [text]",
		Short: "Generate one multiple-choice question from text",
		Example: `  studymate quiz "Water boils at 100C at sea level."
  studymate quiz --file notes.txt`,
		RunE: func(cmd *cobra.Command, args []string) error {
			text := strings.Join(args, " ")
			if file != "" {
				b, err := os.ReadFile(file)
				if err != nil {
					return fmt.Errorf("read %s: %w", file, err)
				}
				text = string(b)
			}
			text = strings.TrimSpace(text)
			if text == "" {
				return fmt.Errorf("no text provided for quiz generation")
			}

			svc, err := loadService()
			if err != nil {
				return err
			}
			out, err := svc.GenerateQuiz(cmd.Context(), text)
			if err != nil {
				return fmt.Errorf("failed to generate quiz: %w", err)
			}

			if asJSON {
				return writeJSON(cmd.OutOrStdout(), out)
			}
			renderQuiz(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw JSON record")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Read the source text from a file")
	return cmd
}

func loadService() (*service.StudyService, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg.App.LogLevel, cfg.App.LogFormat)
	logging.SetOutput(os.Stderr)

	svc, _, err := bootstrap.NewStudyService(cfg)
	return svc, err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderTopic(w io.Writer, topic string, t *domain.TopicExplanation) {
	fmt.Fprintln(w, headerStyle.Render(topic))
	fmt.Fprintln(w, t.Concept)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Textbook:"), orPlaceholder(t.Textbook))
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("Video:"), orPlaceholder(t.Video))
}

func renderQuiz(w io.Writer, q *domain.QuizItem) {
	fmt.Fprintln(w, headerStyle.Render(q.Question))
	for i, opt := range q.Options {
		fmt.Fprintf(w, "  %c) %s\n", 'A'+rune(i%26), opt)
	}
	if q.Answer != "" {
		fmt.Fprintln(w, answerStyle.Render("Answer: "+q.Answer))
	}
}

func orPlaceholder(s string) string {
	if s == "" {
		return mutedStyle.Render("(none)")
	}
	return s
}
