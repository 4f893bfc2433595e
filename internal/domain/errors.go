package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	CodeInvalidInput        ErrorCode = "INVALID_INPUT"
	CodeServerMisconfigured ErrorCode = "SERVER_MISCONFIGURED"
	CodeRateLimited         ErrorCode = "RATE_LIMITED"
	CodePaymentRequired     ErrorCode = "PAYMENT_REQUIRED"
	CodeProviderError       ErrorCode = "PROVIDER_ERROR"
	CodeMalformedResponse   ErrorCode = "MALFORMED_RESPONSE"
	CodeInvalidQuizShape    ErrorCode = "INVALID_QUIZ_SHAPE"
	CodeUnknown             ErrorCode = "UNKNOWN"
)

// User-facing messages returned in the {error} payload.
const (
	MsgTopicRequired       = "El tema es requerido"
	MsgTopicTooLong        = "El tema es demasiado largo"
	MsgInvalidBody         = "Cuerpo de la solicitud inválido"
	MsgServerMisconfigured = "Error de configuración del servidor"
	MsgRateLimited         = "Límite de solicitudes alcanzado. Por favor, intenta más tarde."
	MsgPaymentRequired     = "Se requiere pago. Por favor, agrega fondos a tu workspace."
	MsgProviderError       = "Error al generar el quiz"
	MsgMalformedResponse   = "Error al procesar la respuesta de la IA"
	MsgInvalidQuizShape    = "Error al generar el formato correcto del quiz"
	MsgUnknown             = "Error desconocido"
	MsgNoQuestions         = "No se recibieron preguntas del servidor"
	MsgGenerateFallback    = "No se pudo generar el quiz. Intenta de nuevo."
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// HTTPStatus maps the error code to the status written on the wire.
func (e *DomainError) HTTPStatus() int {
	return StatusForCode(e.Code)
}

// StatusForCode maps an error code to an HTTP status code.
func StatusForCode(code ErrorCode) int {
	switch code {
	case CodeInvalidInput:
		return http.StatusBadRequest
	case CodeRateLimited:
		return http.StatusTooManyRequests
	case CodePaymentRequired:
		return http.StatusPaymentRequired
	default:
		return http.StatusInternalServerError
	}
}

// CodeForStatus is the inverse of StatusForCode, used by clients reading an error reply.
func CodeForStatus(status int) ErrorCode {
	switch status {
	case http.StatusBadRequest:
		return CodeInvalidInput
	case http.StatusTooManyRequests:
		return CodeRateLimited
	case http.StatusPaymentRequired:
		return CodePaymentRequired
	default:
		return CodeUnknown
	}
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, err error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Helper functions for common errors
func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewServerMisconfiguredError(err error) *DomainError {
	return NewError(CodeServerMisconfigured, MsgServerMisconfigured, err)
}

func NewRateLimitedError(err error) *DomainError {
	return NewError(CodeRateLimited, MsgRateLimited, err)
}

func NewPaymentRequiredError(err error) *DomainError {
	return NewError(CodePaymentRequired, MsgPaymentRequired, err)
}

func NewProviderError(err error) *DomainError {
	return NewError(CodeProviderError, MsgProviderError, err)
}

func NewMalformedResponseError(err error) *DomainError {
	return NewError(CodeMalformedResponse, MsgMalformedResponse, err)
}

func NewInvalidQuizShapeError(err error) *DomainError {
	return NewError(CodeInvalidQuizShape, MsgInvalidQuizShape, err)
}

func NewUnknownError(err error) *DomainError {
	return NewError(CodeUnknown, MsgUnknown, err)
}

// AsDomainError returns err as a *DomainError, wrapping anything else as CodeUnknown.
func AsDomainError(err error) *DomainError {
	if err == nil {
		return nil
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr
	}
	return NewUnknownError(err)
}

// UserMessage extracts the message to show a user, or fallback when there is none.
func UserMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		if domainErr.Message != "" {
			return domainErr.Message
		}
		return fallback
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return fallback
}
