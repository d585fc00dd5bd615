package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/studymate/studymate-backend/internal/logging"
	"github.com/studymate/studymate-backend/internal/metrics"
	"github.com/studymate/studymate-backend/internal/study_assistant/domain"
	"github.com/studymate/studymate-backend/internal/study_assistant/llm"
	"github.com/studymate/studymate-backend/internal/study_assistant/prompts"
)

const (
	opExplainTopic = "explain_topic"
	opGenerateQuiz = "generate_quiz"
)

var ErrEmptyInput = errors.New("input is empty")

// Generator is the upstream text generator; *llm.Client satisfies it.
type Generator interface {
	Generate(ctx context.Context, req llm.GenerateRequest) (string, error)
}

// StudyService builds prompts, calls the generator, and normalizes replies.
// It holds no per-request state.
type StudyService struct {
	gen     Generator
	catalog *prompts.Catalog
}

func NewStudyService(gen Generator, catalog *prompts.Catalog) *StudyService {
	return &StudyService{gen: gen, catalog: catalog}
}

// ExplainTopic returns a concept explanation with textbook and video suggestions.
// A reply that is not the requested JSON degrades to a record whose Concept is
// the raw reply. Any upstream failure is returned as an error.
func (s *StudyService) ExplainTopic(ctx context.Context, topic string) (*domain.TopicExplanation, error) {
	raw, err := s.call(ctx, opExplainTopic, prompts.Topic, topic)
	if err != nil {
		return nil, err
	}

	if out, ok := parseTopic(raw); ok {
		return out, nil
	}
	logging.NewLogger(ctx).LogWarnf(opExplainTopic, "reply is not a valid topic object, using fallback (%d bytes)", len(raw))
	metrics.RecordFallback(opExplainTopic)
	return topicFallback(raw), nil
}

// GenerateQuiz returns one multiple-choice question derived from text.
func (s *StudyService) GenerateQuiz(ctx context.Context, text string) (*domain.QuizItem, error) {
	raw, err := s.call(ctx, opGenerateQuiz, prompts.Quiz, text)
	if err != nil {
		return nil, err
	}

	if out, ok := parseQuiz(raw); ok {
		return out, nil
	}
	logging.NewLogger(ctx).LogWarnf(opGenerateQuiz, "reply is not a valid quiz object, using fallback (%d bytes)", len(raw))
	metrics.RecordFallback(opGenerateQuiz)
	return quizFallback(raw), nil
}

func (s *StudyService) call(ctx context.Context, operation, promptName, input string) (string, error) {
	if input == "" {
		return "", ErrEmptyInput
	}

	tmpl, err := s.catalog.Get(promptName)
	if err != nil {
		return "", err
	}
	prompt, err := tmpl.Render(input)
	if err != nil {
		return "", err
	}

	raw, err := s.gen.Generate(ctx, llm.GenerateRequest{
		Operation: operation,
		Prompt:    prompt,
		Schema:    tmpl.Schema,
	})
	if err != nil {
		return "", fmt.Errorf("%s: %w", operation, err)
	}
	return raw, nil
}
