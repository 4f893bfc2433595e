package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"quiz-ia/internal/domain"
)

var (
	jsonFencePattern = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")
	anyFencePattern  = regexp.MustCompile("(?s)```\\s*(.*?)\\s*```")
)

// questionPayload uses pointers so that missing fields can be told apart from zero values.
type questionPayload struct {
	Question      *string  `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correctAnswer"`
}

// ExtractJSONPayload strips reasoning blocks and a surrounding markdown fence from a model reply.
func ExtractJSONPayload(raw string) string {
	cleaned := stripThinkBlock(strings.TrimSpace(raw))

	if m := jsonFencePattern.FindStringSubmatch(cleaned); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := anyFencePattern.FindStringSubmatch(cleaned); m != nil {
		return strings.TrimSpace(m[1])
	}
	return cleaned
}

func stripThinkBlock(s string) string {
	thinkStart := strings.Index(s, "<think>")
	if thinkStart == -1 {
		return s
	}
	thinkEnd := strings.Index(s, "</think>")
	if thinkEnd == -1 || thinkEnd < thinkStart {
		return s
	}
	return strings.TrimSpace(s[:thinkStart] + s[thinkEnd+len("</think>"):])
}

// braceSpan returns the text from the first '{' to the last '}'.
func braceSpan(s string) (string, bool) {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return s[start : end+1], true
}

// ParseQuizSet turns a model reply into a validated QuizSet.
// Unparseable text is CodeMalformedResponse; any structural problem is CodeInvalidQuizShape.
func ParseQuizSet(raw string) (*domain.QuizSet, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, domain.NewMalformedResponseError(errors.New("empty model response"))
	}

	payload := ExtractJSONPayload(raw)

	var decoded any
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		candidate, ok := braceSpan(payload)
		if !ok {
			return nil, domain.NewMalformedResponseError(fmt.Errorf("reply is not JSON: %w", err))
		}
		if errCandidate := json.Unmarshal([]byte(candidate), &decoded); errCandidate != nil {
			return nil, domain.NewMalformedResponseError(fmt.Errorf("reply is not JSON: %w", errCandidate))
		}
		payload = candidate
	}

	obj, ok := decoded.(map[string]any)
	if !ok {
		return nil, domain.NewInvalidQuizShapeError(errors.New("reply is not a JSON object"))
	}
	rawQuestions, present := obj["questions"]
	if !present || rawQuestions == nil {
		return nil, domain.NewInvalidQuizShapeError(errors.New("questions field is missing"))
	}
	list, ok := rawQuestions.([]any)
	if !ok {
		return nil, domain.NewInvalidQuizShapeError(errors.New("questions is not an array"))
	}
	if len(list) != domain.QuizSize {
		return nil, domain.NewInvalidQuizShapeError(fmt.Errorf("expected %d questions, got %d", domain.QuizSize, len(list)))
	}

	var envelope struct {
		Questions []questionPayload `json:"questions"`
	}
	if err := json.Unmarshal([]byte(payload), &envelope); err != nil {
		return nil, domain.NewInvalidQuizShapeError(fmt.Errorf("questions have unexpected field types: %w", err))
	}

	quiz := &domain.QuizSet{Questions: make([]domain.Question, 0, len(envelope.Questions))}
	for i, q := range envelope.Questions {
		if q.Question == nil || q.CorrectAnswer == nil {
			return nil, domain.NewInvalidQuizShapeError(fmt.Errorf("question %d is missing question or correctAnswer", i+1))
		}
		quiz.Questions = append(quiz.Questions, domain.Question{
			Question:      *q.Question,
			Options:       q.Options,
			CorrectAnswer: *q.CorrectAnswer,
		})
	}

	if err := quiz.Validate(); err != nil {
		return nil, domain.NewInvalidQuizShapeError(err)
	}
	return quiz, nil
}
