package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"quiz-ia/internal/session"
)

const optionLetters = "ABCD"

// App is an interactive terminal front end for one quiz session.
type App struct {
	ctrl *session.Controller
	in   *bufio.Scanner
	out  io.Writer
}

// New creates a terminal session that reads commands from in and renders to out.
func New(generator session.Generator, in io.Reader, out io.Writer) *App {
	a := &App{in: bufio.NewScanner(in), out: out}
	a.ctrl = session.NewController(generator, session.NotifierFunc(a.notify))
	return a
}

// Controller exposes the session being driven.
func (a *App) Controller() *session.Controller {
	return a.ctrl
}

func (a *App) notify(n session.Notification) {
	if n.Kind == session.NotificationError {
		fmt.Fprintf(a.out, "✗ %s: %s\n", n.Title, n.Description)
		return
	}
	fmt.Fprintf(a.out, "✔ %s %s\n", n.Title, n.Description)
}

// Run drives the session until the user quits or input ends.
func (a *App) Run(ctx context.Context) error {
	for {
		var quit bool
		var err error
		switch a.ctrl.State().Screen {
		case session.ScreenInput:
			quit, err = a.inputScreen(ctx)
		case session.ScreenQuiz:
			quit, err = a.quizScreen()
		case session.ScreenResults:
			quit, err = a.resultsScreen()
		}
		if err != nil || quit {
			return err
		}
	}
}

// readLine returns the next trimmed line; ok is false at end of input.
func (a *App) readLine(prompt string) (string, bool, error) {
	fmt.Fprint(a.out, prompt)
	if !a.in.Scan() {
		fmt.Fprintln(a.out)
		return "", false, a.in.Err()
	}
	return strings.TrimSpace(a.in.Text()), true, nil
}

func isQuit(line string) bool {
	return strings.EqualFold(line, "q")
}

func (a *App) inputScreen(ctx context.Context) (bool, error) {
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "Quiz IA")
	fmt.Fprintln(a.out, "¿Sobre qué quieres aprender hoy?")
	suggestions := session.Suggestions()
	for i, s := range suggestions {
		fmt.Fprintf(a.out, "  %d) %s\n", i+1, s)
	}

	line, ok, err := a.readLine("Tema (número de sugerencia, o q para salir): ")
	if !ok || err != nil {
		return true, err
	}
	if isQuit(line) {
		return true, nil
	}

	topic := line
	if n, convErr := strconv.Atoi(line); convErr == nil && n >= 1 && n <= len(suggestions) {
		topic = suggestions[n-1]
	}
	if topic == "" {
		return false, nil
	}

	fmt.Fprintln(a.out, "Generando quiz...")
	a.ctrl.Submit(ctx, topic)
	return false, nil
}

func (a *App) quizScreen() (bool, error) {
	s := a.ctrl.State()
	if !s.Answered {
		a.renderQuestion(s)
		line, ok, err := a.readLine("Respuesta (A-D): ")
		if !ok || err != nil {
			return true, err
		}
		if isQuit(line) {
			return true, nil
		}
		index, valid := parseOption(line)
		if !valid {
			fmt.Fprintln(a.out, "Opción inválida")
			return false, nil
		}
		s = a.ctrl.SelectAnswer(index)
	}

	a.renderFeedback(s)
	line, ok, err := a.readLine(fmt.Sprintf("Enter: %s ", s.NextLabel()))
	if !ok || err != nil {
		return true, err
	}
	if isQuit(line) {
		return true, nil
	}
	a.ctrl.Next()
	return false, nil
}

func (a *App) renderQuestion(s session.State) {
	q := s.CurrentQuestion()
	fmt.Fprintln(a.out)
	fmt.Fprintf(a.out, "%s %s\n", s.Progress().Label(), progressBar(s.Progress()))
	fmt.Fprintln(a.out, q.Question)
	for i, opt := range q.Options {
		fmt.Fprintf(a.out, "  %c) %s\n", optionLetters[i], opt)
	}
}

func (a *App) renderFeedback(s session.State) {
	q := s.CurrentQuestion()
	for i, opt := range q.Options {
		fmt.Fprintf(a.out, "%s %c) %s\n", feedbackMark(s.OptionFeedback(i)), optionLetters[i], opt)
	}
}

func (a *App) resultsScreen() (bool, error) {
	r := a.ctrl.State().Result()
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, "¡Quiz completado!")
	fmt.Fprintf(a.out, "Puntuación: %d/%d (%d%%)\n", r.Score, r.Total, r.Percentage)
	fmt.Fprintln(a.out, r.Message)
	fmt.Fprintln(a.out, "Compartir:", r.Share)

	for {
		line, ok, err := a.readLine("n: nuevo quiz, q: salir: ")
		if !ok || err != nil {
			return true, err
		}
		switch strings.ToLower(line) {
		case "q":
			return true, nil
		case "n":
			a.ctrl.Restart()
			return false, nil
		}
	}
}

// parseOption accepts a letter A-D or a number 1-4.
func parseOption(line string) (int, bool) {
	if len(line) != 1 {
		return 0, false
	}
	if i := strings.Index(optionLetters, strings.ToUpper(line)); i >= 0 {
		return i, true
	}
	if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(optionLetters) {
		return n - 1, true
	}
	return 0, false
}

func progressBar(p session.Progress) string {
	var b strings.Builder
	b.WriteByte('[')
	for _, filled := range p.Filled {
		if filled {
			b.WriteString("■")
		} else {
			b.WriteString("□")
		}
	}
	b.WriteByte(']')
	return b.String()
}

func feedbackMark(f session.Feedback) string {
	switch f {
	case session.FeedbackCorrect:
		return "✓"
	case session.FeedbackIncorrect:
		return "✗"
	default:
		return " "
	}
}
