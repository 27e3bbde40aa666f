package llm

import (
	"context"

	"github.com/lozanofamily/madrid-guide/domain"
)

// MockCompleter answers every window with a canned reply. Useful for local
// development without an OpenRouter key.
type MockCompleter struct {
	Reply string
}

func NewMockCompleter() *MockCompleter {
	return &MockCompleter{
		Reply: "¡Hala! Soy Chulapo en modo prueba. Cuando tenga mi bono de transporte os cuento los secretos de Madrid de verdad.",
	}
}

func (m *MockCompleter) Complete(_ context.Context, _ []domain.ChatMessage) (domain.ChatMessage, error) {
	return domain.ChatMessage{Role: domain.AssistantRole, Content: m.Reply}, nil
}
