package usecase

import (
	"strings"

	"github.com/xHiades/presidentestic/internal/domain"
)

const (
	// DefaultPersona is the system prompt used when the caller sends none.
	DefaultPersona = "Sos un presidente argentino del siglo XX. Respondé en forma clara, breve y en español rioplatense."
	// FallbackAnswer is returned when the provider answers without content.
	FallbackAnswer = "No pude generar una respuesta en este momento."

	model       = "gpt-4o-mini"
	temperature = 0.7
	maxTokens   = 300
)

func buildCompletionRequest(systemPrompt, question string) domain.CompletionRequest {
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = DefaultPersona
	}
	return domain.CompletionRequest{
		Model: model,
		Messages: []domain.ChatMessage{
			{Role: domain.RoleSystem, Content: systemPrompt},
			{Role: domain.RoleUser, Content: question},
		},
		Temperature: temperature,
		MaxTokens:   maxTokens,
	}
}

func extractAnswer(content string, ok bool) string {
	answer := strings.TrimSpace(content)
	if !ok || answer == "" {
		return FallbackAnswer
	}
	return answer
}
