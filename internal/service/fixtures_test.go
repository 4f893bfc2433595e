package service

import (
	"encoding/json"
	"fmt"

	"quiz-ia/internal/domain"
)

func sampleQuiz(n int) *domain.QuizSet {
	qs := make([]domain.Question, n)
	for i := range qs {
		qs[i] = domain.Question{
			Question:      fmt.Sprintf("Pregunta %d sobre CSS", i+1),
			Options:       []string{"a", "b", "c", "d"},
			CorrectAnswer: i % domain.OptionCount,
		}
	}
	return &domain.QuizSet{Questions: qs}
}

func sampleQuizJSON(n int) string {
	b, _ := json.Marshal(sampleQuiz(n))
	return string(b)
}
