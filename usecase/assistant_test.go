package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lozanofamily/madrid-guide/domain"
)

func userTurns(n int) []domain.ChatMessage {
	turns := make([]domain.ChatMessage, n)
	for i := range turns {
		turns[i] = domain.ChatMessage{Role: domain.UserRole, Content: fmt.Sprintf("mensaje %d", i)}
	}
	return turns
}

func TestBuildWindowBound(t *testing.T) {
	for m := 0; m <= 10; m++ {
		turns := append(userTurns(m), domain.ChatMessage{Role: domain.UserRole, Content: "nuevo"})
		window := BuildWindow("persona", turns)

		want := m + 1
		if want > WindowSize {
			want = WindowSize
		}
		assert.Len(t, window, want+1, "history length %d", m)
		assert.Equal(t, domain.SystemRole, window[0].Role)
		assert.Equal(t, "persona", window[0].Content)
	}
}

func TestBuildWindowPreservesOrder(t *testing.T) {
	turns := userTurns(8)
	window := BuildWindow("persona", turns)

	require.Len(t, window, WindowSize+1)
	for i, msg := range window[1:] {
		assert.Equal(t, turns[len(turns)-WindowSize+i].Content, msg.Content)
	}
}

func TestBuildWindowEmptyHistory(t *testing.T) {
	window := BuildWindow(Persona, []domain.ChatMessage{
		{Role: domain.UserRole, Content: "¿Qué museo recomiendas?"},
	})

	require.Len(t, window, 2)
	assert.Equal(t, domain.SystemRole, window[0].Role)
	assert.Equal(t, Persona, window[0].Content)
	assert.Equal(t, "¿Qué museo recomiendas?", window[1].Content)
}

type recordingCompleter struct {
	windows [][]domain.ChatMessage
	reply   domain.ChatMessage
	err     error
}

func (r *recordingCompleter) Complete(_ context.Context, window []domain.ChatMessage) (domain.ChatMessage, error) {
	r.windows = append(r.windows, window)
	return r.reply, r.err
}

func TestReplyPassesBoundedWindow(t *testing.T) {
	completer := &recordingCompleter{
		reply: domain.ChatMessage{Role: domain.AssistantRole, Content: "Visita el Prado"},
	}
	svc := NewAssistantService(completer)

	reply, err := svc.Reply(context.Background(), userTurns(9))
	require.NoError(t, err)
	assert.Equal(t, "Visita el Prado", reply.Content)

	require.Len(t, completer.windows, 1)
	assert.Len(t, completer.windows[0], WindowSize+1)
	assert.Equal(t, domain.SystemRole, completer.windows[0][0].Role)
}

func TestReplyPropagatesExhaustion(t *testing.T) {
	completer := &recordingCompleter{err: fmt.Errorf("%w: all models busy", domain.ErrExhausted)}
	svc := NewAssistantService(completer)

	_, err := svc.Reply(context.Background(), userTurns(1))
	assert.True(t, errors.Is(err, domain.ErrExhausted))
}
