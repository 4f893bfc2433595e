package middleware

import (
	"errors"
	"net/http"

	"quiz-ia/internal/domain"
	"quiz-ia/internal/dto"
	"quiz-ia/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorHandler is a centralized error handling middleware
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		l := logger.Get()
		requestID := c.GetRespHeader(fiber.HeaderXRequestID)

		// Handle domain errors
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			statusCode := domainErr.HTTPStatus()
			fields := []zap.Field{
				zap.String("code", string(domainErr.Code)),
				zap.String("message", domainErr.Message),
				zap.Int("status", statusCode),
				zap.String("path", c.Path()),
				zap.String("request_id", requestID),
				zap.Error(domainErr.Err),
			}
			if statusCode >= http.StatusInternalServerError {
				l.Error("Domain error occurred", fields...)
			} else {
				l.Warn("Domain error occurred", fields...)
			}

			return c.Status(statusCode).JSON(dto.ErrorResponse{
				Error: domainErr.Message,
				Code:  string(domainErr.Code),
			})
		}

		// Handle fiber errors
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			l.Warn("Fiber error occurred",
				zap.Int("code", fiberErr.Code),
				zap.String("message", fiberErr.Message),
				zap.String("path", c.Path()),
				zap.String("request_id", requestID),
			)
			return c.Status(fiberErr.Code).JSON(dto.ErrorResponse{
				Error: fiberErr.Message,
				Code:  "HTTP_ERROR",
			})
		}

		// Handle unknown errors
		l.Error("Unknown error occurred",
			zap.String("path", c.Path()),
			zap.String("request_id", requestID),
			zap.Error(err),
		)

		return c.Status(http.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: domain.MsgUnknown,
			Code:  string(domain.CodeUnknown),
		})
	}
}
