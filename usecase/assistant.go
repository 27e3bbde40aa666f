package usecase

import (
	"context"

	"github.com/lozanofamily/madrid-guide/domain"
)

// Persona is the fixed identity of Chulapo, the family's AI guide. It pins
// the response language to Spanish.
const Persona = "Eres el guía experto de la familia Lozano para su viaje a Madrid " +
	"del 26 de marzo al 6 de abril. Responde de forma amable, cercana y con un " +
	"toque de humor madrileño. Conoces bien la historia, los mejores restaurantes " +
	"y lugares secretos de la ciudad. Ayúdales a resolver dudas sobre transporte, " +
	"clima y qué hacer en cada día de su itinerario. Responde siempre en español."

// WindowSize bounds how many conversation turns travel with each request.
const WindowSize = 5

// BuildWindow takes the last WindowSize turns of the conversation, order
// preserved, and prepends one system turn carrying the persona.
func BuildWindow(persona string, turns []domain.ChatMessage) []domain.ChatMessage {
	if len(turns) > WindowSize {
		turns = turns[len(turns)-WindowSize:]
	}

	window := make([]domain.ChatMessage, 0, len(turns)+1)
	window = append(window, domain.ChatMessage{Role: domain.SystemRole, Content: persona})
	window = append(window, turns...)
	return window
}

// AssistantService turns a conversation history into one assistant reply.
type AssistantService struct {
	completer domain.Completer
	persona   string
}

func NewAssistantService(completer domain.Completer) *AssistantService {
	return &AssistantService{
		completer: completer,
		persona:   Persona,
	}
}

// Reply builds the bounded window from the full history (incoming user turn
// last) and asks the completion backend for the next assistant turn.
func (s *AssistantService) Reply(ctx context.Context, history []domain.ChatMessage) (domain.ChatMessage, error) {
	return s.completer.Complete(ctx, BuildWindow(s.persona, history))
}
