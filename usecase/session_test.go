package usecase

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lozanofamily/madrid-guide/domain"
)

type blockingCompleter struct {
	release chan struct{}
	calls   int
}

func (b *blockingCompleter) Complete(_ context.Context, _ []domain.ChatMessage) (domain.ChatMessage, error) {
	b.calls++
	if b.release != nil {
		<-b.release
	}
	return domain.ChatMessage{Role: domain.AssistantRole, Content: "respuesta"}, nil
}

func TestSubmitAppendsPair(t *testing.T) {
	session := NewSession(NewAssistantService(&blockingCompleter{}))

	ok := session.Submit(context.Background(), "¿Qué museo recomiendas?")
	require.True(t, ok)

	turns := session.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, domain.UserRole, turns[0].Role)
	assert.Equal(t, "¿Qué museo recomiendas?", turns[0].Content)
	assert.Equal(t, domain.AssistantRole, turns[1].Role)
	assert.Equal(t, "respuesta", turns[1].Content)
	assert.False(t, session.Pending())
}

func TestSubmitRejectsBlankInput(t *testing.T) {
	completer := &blockingCompleter{}
	session := NewSession(NewAssistantService(completer))

	assert.False(t, session.Submit(context.Background(), ""))
	assert.False(t, session.Submit(context.Background(), "   \n\t"))
	assert.Empty(t, session.Turns())
	assert.Zero(t, completer.calls)
}

func TestSubmitTotalFailureAppendsApology(t *testing.T) {
	completer := &recordingCompleter{err: fmt.Errorf("%w: connection error", domain.ErrExhausted)}
	session := NewSession(NewAssistantService(completer))

	require.True(t, session.Submit(context.Background(), "hola"))

	turns := session.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, domain.AssistantRole, turns[1].Role)
	assert.Equal(t, FailureReply, turns[1].Content)
}

func TestSubmitSingleFlight(t *testing.T) {
	completer := &blockingCompleter{release: make(chan struct{})}
	session := NewSession(NewAssistantService(completer))

	done := make(chan bool)
	go func() {
		done <- session.Submit(context.Background(), "primera")
	}()

	// Wait for the first round trip to be in flight.
	require.Eventually(t, session.Pending, time.Second, time.Millisecond)

	// A second submit while pending is a no-op.
	assert.False(t, session.Submit(context.Background(), "segunda"))
	assert.Len(t, session.Turns(), 1)
	assert.Equal(t, 1, completer.calls)

	close(completer.release)
	assert.True(t, <-done)

	turns := session.Turns()
	require.Len(t, turns, 2)
	assert.Equal(t, "primera", turns[0].Content)
}

func TestSubmitHistoryGrowsInPairs(t *testing.T) {
	session := NewSession(NewAssistantService(&blockingCompleter{}))

	for i := 1; i <= 4; i++ {
		before := len(session.Turns())
		require.True(t, session.Submit(context.Background(), fmt.Sprintf("pregunta %d", i)))
		assert.Equal(t, before+2, len(session.Turns()))
	}
}
