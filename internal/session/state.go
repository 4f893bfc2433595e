package session

import (
	"strings"

	"quiz-ia/internal/domain"
)

// Screen is the view a session is currently showing.
type Screen string

const (
	ScreenInput   Screen = "input"
	ScreenQuiz    Screen = "quiz"
	ScreenResults Screen = "results"
)

// noSelection marks that no option of the current question has been picked.
const noSelection = -1

// State is the full client-side session. Transitions never mutate their argument.
type State struct {
	Screen       Screen
	Quiz         *domain.QuizSet
	CurrentIndex int
	Score        int
	IsLoading    bool
	Answered     bool
	Selected     int
}

// NewState returns a fresh session on the topic entry screen.
func NewState() State {
	return State{Screen: ScreenInput, Selected: noSelection}
}

// Total is the number of questions in the loaded quiz.
func (s State) Total() int {
	return s.Quiz.Len()
}

// CurrentQuestion returns the question being shown, or nil outside the quiz screen.
func (s State) CurrentQuestion() *domain.Question {
	if s.Screen != ScreenQuiz || s.CurrentIndex < 0 || s.CurrentIndex >= s.Total() {
		return nil
	}
	return &s.Quiz.Questions[s.CurrentIndex]
}

func (s State) isCurrent(questionIndex int) bool {
	return s.Screen == ScreenQuiz && s.CurrentIndex == questionIndex
}

// IsLastQuestion reports whether the current question is the final one.
func (s State) IsLastQuestion() bool {
	return s.CurrentIndex == s.Total()-1
}

// SelectAnswer records the first answer to the current question.
// Later answers, out-of-range indices and calls outside the quiz screen are ignored.
func SelectAnswer(s State, index int) State {
	q := s.CurrentQuestion()
	if q == nil || s.Answered || index < 0 || index >= len(q.Options) {
		return s
	}
	if q.IsCorrect(index) {
		s.Score++
	}
	s.Answered = true
	s.Selected = index
	return s
}

// Next advances past an answered question, moving to results after the last one.
func Next(s State) State {
	if s.Screen != ScreenQuiz || !s.Answered {
		return s
	}
	if s.IsLastQuestion() {
		s.Screen = ScreenResults
		return s
	}
	s.CurrentIndex++
	s.Answered = false
	s.Selected = noSelection
	return s
}

// Restart discards the quiz and returns to topic entry.
// The loading flag is kept so an in-flight generation still guards new submits.
func Restart(s State) State {
	next := NewState()
	next.IsLoading = s.IsLoading
	return next
}

func beginSubmit(s State, topic string) (State, bool) {
	if strings.TrimSpace(topic) == "" || s.IsLoading {
		return s, false
	}
	s.IsLoading = true
	return s, true
}

// completeSubmit applies a generation result. A result that is not a valid
// quiz is turned into an error and the screen is left unchanged.
func completeSubmit(s State, quiz *domain.QuizSet, err error) (State, error) {
	s.IsLoading = false
	if err == nil {
		if verr := quiz.Validate(); verr != nil {
			err = domain.NewError(domain.CodeInvalidQuizShape, domain.MsgInvalidQuizShape, verr)
		}
	}
	if err != nil {
		return s, err
	}

	s.Screen = ScreenQuiz
	s.Quiz = quiz
	s.CurrentIndex = 0
	s.Score = 0
	s.Answered = false
	s.Selected = noSelection
	return s, nil
}
