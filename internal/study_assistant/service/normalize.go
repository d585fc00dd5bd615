package service

import (
	"encoding/json"
	"strings"

	"github.com/studymate/studymate-backend/internal/study_assistant/domain"
)

// stripFences removes a surrounding ```json ... ``` block some models add
// even when JSON output was requested.
func stripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimPrefix(s, "json")
	s = strings.TrimPrefix(s, "JSON")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func decodeObject(raw string) (map[string]json.RawMessage, bool) {
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(stripFences(raw)), &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

func stringField(obj map[string]json.RawMessage, key string) (string, bool) {
	v, ok := obj[key]
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return "", false
	}
	return s, true
}

func stringsField(obj map[string]json.RawMessage, key string) ([]string, bool) {
	v, ok := obj[key]
	if !ok {
		return nil, false
	}
	var out []string
	if err := json.Unmarshal(v, &out); err != nil || out == nil {
		return nil, false
	}
	return out, true
}

// parseTopic accepts only objects whose three required keys are strings.
func parseTopic(raw string) (*domain.TopicExplanation, bool) {
	obj, ok := decodeObject(raw)
	if !ok {
		return nil, false
	}
	concept, ok1 := stringField(obj, "concept")
	textbook, ok2 := stringField(obj, "textbook")
	video, ok3 := stringField(obj, "video")
	if !ok1 || !ok2 || !ok3 {
		return nil, false
	}
	return &domain.TopicExplanation{Concept: concept, Textbook: textbook, Video: video}, true
}

func parseQuiz(raw string) (*domain.QuizItem, bool) {
	obj, ok := decodeObject(raw)
	if !ok {
		return nil, false
	}
	question, ok1 := stringField(obj, "question")
	options, ok2 := stringsField(obj, "options")
	answer, ok3 := stringField(obj, "answer")
	if !ok1 || !ok2 || !ok3 {
		return nil, false
	}
	return &domain.QuizItem{Question: question, Options: options, Answer: answer}, true
}

func topicFallback(raw string) *domain.TopicExplanation {
	return &domain.TopicExplanation{Concept: raw}
}

// quizFallback keeps the QuizItem shape so clients never see a topic-shaped
// record on the quiz endpoint.
func quizFallback(raw string) *domain.QuizItem {
	return &domain.QuizItem{Question: raw, Options: []string{}}
}
