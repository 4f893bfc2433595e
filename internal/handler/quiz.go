package handler

import (
	"encoding/json"
	"errors"

	"quiz-ia/internal/domain"
	"quiz-ia/internal/dto"
	"quiz-ia/internal/logger"
	"quiz-ia/internal/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// QuizHandler handles quiz-related HTTP requests
type QuizHandler struct {
	service service.QuizService
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service: service,
	}
}

// GenerateQuiz godoc
// @Summary Generate a quiz
// @Description Asks the language model for five multiple-choice questions about a topic
// @Tags quiz
// @Accept json
// @Produce json
// @Param request body dto.GenerateQuizRequest true "Quiz topic"
// @Success 200 {object} dto.GenerateQuizResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 402 {object} dto.ErrorResponse
// @Failure 429 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /generate-quiz [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	var req dto.GenerateQuizRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		logger.Get().Warn("Invalid generate-quiz request body", zap.Error(err))
		// A topic of the wrong JSON type counts as a missing topic.
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return domain.NewInvalidInputError(domain.MsgTopicRequired)
		}
		return domain.NewInvalidInputError(domain.MsgInvalidBody)
	}

	quiz, err := h.service.GenerateQuiz(c.UserContext(), req.Topic)
	if err != nil {
		return err
	}

	return c.JSON(dto.GenerateQuizResponse{
		Questions: quiz.Questions,
	})
}
