package domain

// TopicExplanation is the reply to a topic request.
type TopicExplanation struct {
	Concept  string `json:"concept"`
	Textbook string `json:"textbook"`
	Video    string `json:"video"`
}

// QuizItem is a single multiple-choice question. Answer is not checked
// against Options.
type QuizItem struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type SummaryResponse struct {
	Summary string `json:"summary"`
}

type TopicRequest struct {
	Topic string `json:"topic"`
}

type QuizRequest struct {
	Text string `json:"text"`
}
