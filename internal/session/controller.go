package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"quiz-ia/internal/domain"
	"quiz-ia/internal/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Generator produces a quiz for a topic. internal/client implements it over HTTP.
type Generator interface {
	Generate(ctx context.Context, topic string) (*domain.QuizSet, error)
}

type NotificationKind string

const (
	NotificationSuccess NotificationKind = "success"
	NotificationError   NotificationKind = "error"
)

// Notification is a toast-style message for the user.
type Notification struct {
	Kind        NotificationKind
	Title       string
	Description string
}

type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(n Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

// Controller owns one quiz session. It is safe for concurrent use; at most one
// generation runs at a time.
type Controller struct {
	mu        sync.Mutex
	state     State
	generator Generator
	notifier  Notifier
	id        string
}

// NewController creates a session in the input screen. notifier may be nil.
func NewController(generator Generator, notifier Notifier) *Controller {
	if notifier == nil {
		notifier = NotifierFunc(func(Notification) {})
	}
	return &Controller{
		state:     NewState(),
		generator: generator,
		notifier:  notifier,
		id:        uuid.NewString(),
	}
}

// ID identifies the session in logs.
func (c *Controller) ID() string {
	return c.id
}

// State returns a snapshot of the session.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) log() *zap.Logger {
	return logger.Get().With(zap.String("session_id", c.id))
}

// Submit requests a quiz about topic and reports whether the session moved to the quiz screen.
// Blank topics and submits while a generation is in flight are ignored.
func (c *Controller) Submit(ctx context.Context, topic string) bool {
	trimmed := strings.TrimSpace(topic)

	c.mu.Lock()
	next, ok := beginSubmit(c.state, trimmed)
	if !ok {
		c.mu.Unlock()
		c.log().Debug("Submit ignored", zap.String("topic", trimmed))
		return false
	}
	c.state = next
	c.mu.Unlock()

	c.log().Info("Requesting quiz", zap.String("topic", trimmed))
	quiz, err := c.generator.Generate(ctx, trimmed)

	c.mu.Lock()
	next, err = completeSubmit(c.state, quiz, err)
	c.state = next
	c.mu.Unlock()

	if err != nil {
		c.log().Warn("Quiz generation failed", zap.String("topic", trimmed), zap.Error(err))
		c.notifier.Notify(Notification{
			Kind:        NotificationError,
			Title:       "Error",
			Description: domain.UserMessage(err, domain.MsgGenerateFallback),
		})
		return false
	}

	c.log().Info("Quiz ready", zap.String("topic", trimmed))
	c.notifier.Notify(Notification{
		Kind:        NotificationSuccess,
		Title:       "¡Quiz generado!",
		Description: fmt.Sprintf("%d preguntas sobre %s están listas.", domain.QuizSize, trimmed),
	})
	return true
}

// SelectAnswer answers the current question and returns the new state.
func (c *Controller) SelectAnswer(index int) State {
	return c.apply(func(s State) State { return SelectAnswer(s, index) })
}

// SelectAnswerAt answers question questionIndex only if it is the unanswered current
// question. ok reports whether the answer was recorded.
func (c *Controller) SelectAnswerAt(questionIndex, option int) (State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.isCurrent(questionIndex) || c.state.Answered {
		return c.state, false
	}
	c.state = SelectAnswer(c.state, option)
	return c.state, c.state.Answered
}

// NextAt leaves question questionIndex only if it is the answered current question.
func (c *Controller) NextAt(questionIndex int) (State, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.state.isCurrent(questionIndex) || !c.state.Answered {
		return c.state, false
	}
	c.state = Next(c.state)
	return c.state, true
}

// Next leaves an answered question and returns the new state.
func (c *Controller) Next() State {
	return c.apply(Next)
}

// Restart returns the session to topic entry.
func (c *Controller) Restart() State {
	return c.apply(Restart)
}

func (c *Controller) apply(transition func(State) State) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state = transition(c.state)
	return c.state
}
