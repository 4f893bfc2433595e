package session

import (
	"fmt"
	"math"
)

// Feedback is how an option is rendered once the question is answered.
type Feedback int

const (
	FeedbackNone Feedback = iota
	FeedbackCorrect
	FeedbackIncorrect
	FeedbackDimmed
)

func (f Feedback) String() string {
	switch f {
	case FeedbackCorrect:
		return "correct"
	case FeedbackIncorrect:
		return "incorrect"
	case FeedbackDimmed:
		return "dimmed"
	default:
		return "none"
	}
}

const (
	labelNextQuestion = "Siguiente Pregunta"
	labelSeeResults   = "Ver Resultados"
)

var suggestions = []string{"Diseño UX", "Marketing", "JavaScript", "CSS"}

// Suggestions returns the topic chips offered on the input screen.
func Suggestions() []string {
	out := make([]string, len(suggestions))
	copy(out, suggestions)
	return out
}

// Progress describes the quiz progress indicator.
type Progress struct {
	Current int
	Total   int
	// Filled has one entry per question; answered-or-passed segments are true.
	Filled []bool
}

func (p Progress) Label() string {
	return fmt.Sprintf("Pregunta %d de %d", p.Current, p.Total)
}

// Progress returns the indicator for the current question.
func (s State) Progress() Progress {
	total := s.Total()
	filled := make([]bool, total)
	for i := range filled {
		filled[i] = i <= s.CurrentIndex
	}
	return Progress{Current: s.CurrentIndex + 1, Total: total, Filled: filled}
}

// OptionFeedback returns the rendering of option i of the current question.
func (s State) OptionFeedback(i int) Feedback {
	q := s.CurrentQuestion()
	if q == nil || !s.Answered {
		return FeedbackNone
	}
	switch {
	case q.IsCorrect(i):
		return FeedbackCorrect
	case i == s.Selected:
		return FeedbackIncorrect
	default:
		return FeedbackDimmed
	}
}

// NextLabel is the caption of the button that leaves an answered question.
func (s State) NextLabel() string {
	if s.IsLastQuestion() {
		return labelSeeResults
	}
	return labelNextQuestion
}

// Percentage returns score/total as a whole percent.
func Percentage(score, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(score) / float64(total) * 100))
}

// ResultMessage picks the closing message for a percentage.
func ResultMessage(percentage int) string {
	switch {
	case percentage == 100:
		return "¡Perfecto! 🎉"
	case percentage >= 80:
		return "¡Excelente! 🌟"
	case percentage >= 60:
		return "¡Bien hecho! 👏"
	case percentage >= 40:
		return "¡Buen intento! 💪"
	default:
		return "Sigue practicando 📚"
	}
}

// ShareText is the line users copy to share their result.
func ShareText(score, total int) string {
	return fmt.Sprintf("¡Obtuve %d/%d en Quiz IA! 🎯", score, total)
}

// Result summarizes a finished quiz.
type Result struct {
	Score      int
	Total      int
	Percentage int
	Message    string
	Share      string
}

// Result returns the summary shown on the results screen.
func (s State) Result() Result {
	total := s.Total()
	pct := Percentage(s.Score, total)
	return Result{
		Score:      s.Score,
		Total:      total,
		Percentage: pct,
		Message:    ResultMessage(pct),
		Share:      ShareText(s.Score, total),
	}
}
