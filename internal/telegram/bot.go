package telegram

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"quiz-ia/internal/config"
	"quiz-ia/internal/logger"
	"quiz-ia/internal/session"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

const (
	cmdStart   = "start"
	cmdRestart = "restart"

	callbackTopic   = "topic:"
	callbackAnswer  = "answer:"
	callbackNext    = "next:"
	callbackRestart = "restart"

	optionLetters = "ABCD"
)

// Sender is the subset of *tgbotapi.BotAPI the bot needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Bot runs one quiz session per Telegram chat.
type Bot struct {
	api       Sender
	generator session.Generator

	mu       sync.Mutex
	sessions map[int64]*session.Controller
}

// NewBotAPI connects to Telegram with the configured token.
func NewBotAPI(cfg config.TelegramConfig) (*tgbotapi.BotAPI, error) {
	if strings.TrimSpace(cfg.BotToken) == "" {
		return nil, fmt.Errorf("telegram bot token cannot be empty")
	}
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot API: %w", err)
	}
	api.Debug = cfg.Debug
	return api, nil
}

// New creates a bot that generates quizzes through generator.
func New(api Sender, generator session.Generator) *Bot {
	return &Bot{
		api:       api,
		generator: generator,
		sessions:  make(map[int64]*session.Controller),
	}
}

// Start handles updates until ctx is done or the channel closes.
// Each update runs on its own goroutine; Start waits for them before returning.
func (b *Bot) Start(ctx context.Context, updates tgbotapi.UpdatesChannel) {
	logger.Get().Info("Starting bot polling...")

	var wg sync.WaitGroup
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				b.handleUpdate(ctx, update)
			}()
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	}
}

// controller returns the session for chatID, creating it on first use.
func (b *Bot) controller(chatID int64) *session.Controller {
	b.mu.Lock()
	defer b.mu.Unlock()

	ctrl, ok := b.sessions[chatID]
	if !ok {
		ctrl = session.NewController(b.generator, session.NotifierFunc(func(n session.Notification) {
			b.sendMessage(chatID, fmt.Sprintf("%s\n%s", n.Title, n.Description), nil)
		}))
		b.sessions[chatID] = ctrl
		logger.Get().Info("New chat session", zap.Int64("chat_id", chatID), zap.String("session_id", ctrl.ID()))
	}
	return ctrl
}

func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	if message.Chat == nil {
		return
	}
	chatID := message.Chat.ID
	ctrl := b.controller(chatID)

	switch message.Command() {
	case cmdStart, cmdRestart:
		ctrl.Restart()
		b.sendWelcome(chatID)
		return
	}

	if ctrl.State().Screen != session.ScreenInput {
		b.sendMessage(chatID, "Usa los botones para continuar, o /restart para empezar de nuevo.", nil)
		return
	}
	b.submit(ctx, chatID, ctrl, message.Text)
}

func (b *Bot) handleCallback(ctx context.Context, callback *tgbotapi.CallbackQuery) {
	b.sendCallbackResponse(callback.ID)
	if callback.Message == nil || callback.Message.Chat == nil {
		return
	}
	chatID := callback.Message.Chat.ID
	ctrl := b.controller(chatID)
	l := logger.Get().With(zap.Int64("chat_id", chatID), zap.String("data", callback.Data))

	switch data := callback.Data; {
	case strings.HasPrefix(data, callbackTopic):
		i, err := strconv.Atoi(strings.TrimPrefix(data, callbackTopic))
		suggestions := session.Suggestions()
		if err != nil || i < 0 || i >= len(suggestions) {
			l.Warn("Invalid topic callback")
			return
		}
		if ctrl.State().Screen != session.ScreenInput {
			return
		}
		b.submit(ctx, chatID, ctrl, suggestions[i])

	case strings.HasPrefix(data, callbackAnswer):
		parts := strings.Split(strings.TrimPrefix(data, callbackAnswer), ":")
		if len(parts) != 2 {
			l.Warn("Invalid answer callback")
			return
		}
		questionIndex, err1 := strconv.Atoi(parts[0])
		option, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil {
			l.Warn("Invalid answer callback")
			return
		}
		next, ok := ctrl.SelectAnswerAt(questionIndex, option)
		if !ok {
			l.Debug("Stale answer callback ignored")
			return
		}
		b.sendFeedback(chatID, next)

	case strings.HasPrefix(data, callbackNext):
		questionIndex, err := strconv.Atoi(strings.TrimPrefix(data, callbackNext))
		if err != nil {
			l.Warn("Invalid next callback")
			return
		}
		next, ok := ctrl.NextAt(questionIndex)
		if !ok {
			l.Debug("Stale next callback ignored")
			return
		}
		b.sendScreen(chatID, next)

	case data == callbackRestart:
		ctrl.Restart()
		b.sendWelcome(chatID)

	default:
		l.Warn("Unknown callback")
	}
}

func (b *Bot) submit(ctx context.Context, chatID int64, ctrl *session.Controller, topic string) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return
	}
	b.sendMessage(chatID, fmt.Sprintf("Generando quiz sobre %s...", topic), nil)
	if ctrl.Submit(ctx, topic) {
		b.sendScreen(chatID, ctrl.State())
	}
}

// sendScreen renders the screen the session is on.
func (b *Bot) sendScreen(chatID int64, s session.State) {
	switch s.Screen {
	case session.ScreenQuiz:
		b.sendQuestion(chatID, s)
	case session.ScreenResults:
		b.sendResults(chatID, s)
	default:
		b.sendWelcome(chatID)
	}
}

func (b *Bot) sendWelcome(chatID int64) {
	var row []tgbotapi.InlineKeyboardButton
	for i, s := range session.Suggestions() {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(s, fmt.Sprintf("%s%d", callbackTopic, i)))
	}
	keyboard := tgbotapi.NewInlineKeyboardMarkup(row)
	b.sendMessage(chatID, "Quiz IA\n¿Sobre qué quieres aprender hoy? Escribe un tema o elige una sugerencia.", &keyboard)
}

func (b *Bot) sendQuestion(chatID int64, s session.State) {
	q := s.CurrentQuestion()
	if q == nil {
		return
	}

	var keyboard [][]tgbotapi.InlineKeyboardButton
	for i, opt := range q.Options {
		callbackData := fmt.Sprintf("%s%d:%d", callbackAnswer, s.CurrentIndex, i)
		button := tgbotapi.NewInlineKeyboardButtonData(fmt.Sprintf("%c) %s", optionLetters[i], opt), callbackData)
		keyboard = append(keyboard, []tgbotapi.InlineKeyboardButton{button})
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(keyboard...)

	p := s.Progress()
	text := fmt.Sprintf("%s\n%s\n\n%s", p.Label(), progressBar(p), q.Question)
	b.sendMessage(chatID, text, &markup)
}

func (b *Bot) sendFeedback(chatID int64, s session.State) {
	q := s.CurrentQuestion()
	if q == nil {
		return
	}

	var lines []string
	for i, opt := range q.Options {
		lines = append(lines, fmt.Sprintf("%s %c) %s", feedbackMark(s.OptionFeedback(i)), optionLetters[i], opt))
	}
	markup := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData(s.NextLabel(), fmt.Sprintf("%s%d", callbackNext, s.CurrentIndex)),
	))
	b.sendMessage(chatID, strings.Join(lines, "\n"), &markup)
}

func (b *Bot) sendResults(chatID int64, s session.State) {
	r := s.Result()
	text := fmt.Sprintf("¡Quiz completado!\n%d/%d (%d%%)\n%s\n\n%s", r.Score, r.Total, r.Percentage, r.Message, r.Share)
	markup := tgbotapi.NewInlineKeyboardMarkup(tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("Nuevo Quiz", callbackRestart),
	))
	b.sendMessage(chatID, text, &markup)
}

// sendMessage sends plain text, optionally with an inline keyboard.
func (b *Bot) sendMessage(chatID int64, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	if keyboard != nil {
		msg.ReplyMarkup = *keyboard
	}
	if _, err := b.api.Send(msg); err != nil {
		logger.Get().Error("Error sending message", zap.Int64("chat_id", chatID), zap.Error(err))
	}
}

func (b *Bot) sendCallbackResponse(callbackID string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		logger.Get().Warn("Error sending callback response", zap.Error(err))
	}
}

func progressBar(p session.Progress) string {
	var sb strings.Builder
	for _, filled := range p.Filled {
		if filled {
			sb.WriteString("■")
		} else {
			sb.WriteString("□")
		}
	}
	return sb.String()
}

func feedbackMark(f session.Feedback) string {
	switch f {
	case session.FeedbackCorrect:
		return "✅"
	case session.FeedbackIncorrect:
		return "❌"
	default:
		return "▫️"
	}
}
