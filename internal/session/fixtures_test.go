package session

import (
	"context"
	"fmt"
	"sync"

	"quiz-ia/internal/domain"
)

// quizWithAnswers builds a valid quiz whose correct answers are the given indices.
func quizWithAnswers(answers ...int) *domain.QuizSet {
	questions := make([]domain.Question, len(answers))
	for i, a := range answers {
		questions[i] = domain.Question{
			Question:      fmt.Sprintf("Pregunta %d", i+1),
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: a,
		}
	}
	return &domain.QuizSet{Questions: questions}
}

func fiveQuestionQuiz() *domain.QuizSet {
	return quizWithAnswers(0, 1, 2, 3, 0)
}

// fakeGenerator returns a canned result and records the topics it was asked for.
type fakeGenerator struct {
	mu     sync.Mutex
	quiz   *domain.QuizSet
	err    error
	topics []string
	// block, when set, is waited on before returning; started is closed on entry.
	block   chan struct{}
	started chan struct{}
}

func (g *fakeGenerator) Generate(ctx context.Context, topic string) (*domain.QuizSet, error) {
	g.mu.Lock()
	g.topics = append(g.topics, topic)
	g.mu.Unlock()

	if g.started != nil {
		close(g.started)
	}
	if g.block != nil {
		<-g.block
	}
	return g.quiz, g.err
}

func (g *fakeGenerator) calls() []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]string(nil), g.topics...)
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []Notification
}

func (n *recordingNotifier) Notify(note Notification) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, note)
}

func (n *recordingNotifier) all() []Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]Notification(nil), n.sent...)
}
