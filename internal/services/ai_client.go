package services

import (
	"context"
	"strings"

	"github.com/selahapp/selah-backend/internal/logger"
	"github.com/selahapp/selah-backend/internal/utils"
)

const (
	RoleSystem = "system"
	RoleUser   = "user"
)

type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// AIClient is the provider boundary for the personalization engine. The
// provider is chosen once at startup; callers never see which one is behind
// the interface. Implementations are injected, never held as package state.
type AIClient interface {
	ChatCompletion(ctx context.Context, messages []ChatMessage, temperature float64, maxTokens int) (string, error)
}

// NewAIClientFromEnv selects the provider from AI_PROVIDER (case-insensitive,
// unrecognized values fall back to openai). Missing the selected provider's
// credential is a construction error, surfaced at startup.
func NewAIClientFromEnv(log *logger.Logger) (AIClient, error) {
	provider := strings.ToLower(strings.TrimSpace(utils.GetEnv("AI_PROVIDER", "openai", log)))
	switch provider {
	case "gemini":
		return NewGeminiClient(log)
	case "openai":
		return NewOpenAIClient(log)
	default:
		log.Warn("Unrecognized AI_PROVIDER, falling back to openai", "provider", provider)
		return NewOpenAIClient(log)
	}
}
