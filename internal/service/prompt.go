package service

import (
	"fmt"

	"quiz-ia/internal/domain"
)

var systemPrompt = fmt.Sprintf(`Eres un experto en crear quizzes educativos. Genera exactamente %[1]d preguntas de opción múltiple sobre el tema proporcionado.
Cada pregunta debe tener:
- Una pregunta clara y concisa
- %[2]d opciones de respuesta
- Solo una respuesta correcta
- Las preguntas deben ser educativas y apropiadas

Responde ÚNICAMENTE con un objeto JSON válido en este formato exacto:
{
  "questions": [
    {
      "question": "texto de la pregunta",
      "options": ["opción 1", "opción 2", "opción 3", "opción 4"],
      "correctAnswer": 0
    }
  ]
}

El campo correctAnswer debe ser el índice (0-%[3]d) de la respuesta correcta en el array de opciones.
NO incluyas texto adicional, solo el JSON.`, domain.QuizSize, domain.OptionCount, domain.OptionCount-1)

// SystemPrompt returns the instruction that fixes the reply format.
func SystemPrompt() string {
	return systemPrompt
}

// BuildUserPrompt embeds the topic in the user-role instruction.
func BuildUserPrompt(topic string) string {
	return fmt.Sprintf("Crea %d preguntas de quiz sobre: %s", domain.QuizSize, topic)
}
