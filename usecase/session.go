package usecase

import (
	"context"
	"strings"
	"sync"

	"github.com/lozanofamily/madrid-guide/domain"
)

// FailureReply is what Chulapo says when every model attempt failed. The
// family never sees a raw error.
const FailureReply = "Lo siento, familia. He tenido un pequeño despiste madrileño. " +
	"¿Podéis repetir la pregunta?"

// Session holds one conversation with the guide. The turn list is
// append-only and every completed submit adds exactly one user turn and one
// assistant turn.
type Session struct {
	svc *AssistantService

	mu      sync.Mutex
	pending bool
	turns   []domain.ChatMessage
}

func NewSession(svc *AssistantService) *Session {
	return &Session{svc: svc}
}

// Submit runs one full round trip: append the user turn, ask the backend,
// append the reply (or the fixed failure wording). Blank input and submits
// while another round trip is in flight are rejected as no-ops.
func (s *Session) Submit(ctx context.Context, text string) bool {
	text = strings.TrimSpace(text)

	s.mu.Lock()
	if text == "" || s.pending {
		s.mu.Unlock()
		return false
	}
	s.pending = true
	s.turns = append(s.turns, domain.ChatMessage{Role: domain.UserRole, Content: text})
	history := make([]domain.ChatMessage, len(s.turns))
	copy(history, s.turns)
	s.mu.Unlock()

	reply, err := s.svc.Reply(ctx, history)
	if err != nil {
		reply = domain.ChatMessage{Role: domain.AssistantRole, Content: FailureReply}
	}

	s.mu.Lock()
	s.turns = append(s.turns, reply)
	s.pending = false
	s.mu.Unlock()
	return true
}

// Pending reports whether a round trip is in flight.
func (s *Session) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Turns returns a snapshot of the conversation so far.
func (s *Session) Turns() []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ChatMessage, len(s.turns))
	copy(out, s.turns)
	return out
}
