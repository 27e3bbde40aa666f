package domain

import (
	"context"
	"errors"
)

// Role tags the speaker of a chat message.
type Role string

const (
	SystemRole    Role = "system"
	UserRole      Role = "user"
	AssistantRole Role = "assistant"
)

// ChatMessage is one turn of the concierge conversation. Turns are
// append-only: once created they are never mutated.
type ChatMessage struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Completer abstracts the remote chat-completion backend. Implementations
// absorb per-model failures internally and only fail once every option is
// exhausted.
type Completer interface {
	Complete(ctx context.Context, window []ChatMessage) (ChatMessage, error)
}

var (
	// ErrNoAPIKey signals the completion credential is not configured.
	ErrNoAPIKey = errors.New("completion api key not configured")

	// ErrExhausted signals every fallback model failed. Wrapped errors
	// carry the last per-model reason.
	ErrExhausted = errors.New("all completion models failed")
)
