package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lozanofamily/madrid-guide/domain"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestItineraryOrderedByTripDay(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	events := []*domain.ItineraryEvent{
		{ID: uuid.NewString(), Day: 2, Month: "Abr", Title: "Cena Flamenca", Status: "Libre"},
		{ID: uuid.NewString(), Day: 26, Month: "Mar", Title: "Llegada y Check-in", Status: "Reservado"},
		{ID: uuid.NewString(), Day: 28, Month: "Mar", Title: "Madrid de los Austrias", Status: "Pendiente"},
	}
	for _, ev := range events {
		require.NoError(t, store.AddItineraryEvent(ctx, ev))
	}

	got, err := store.ListItinerary(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "Llegada y Check-in", got[0].Title)
	assert.Equal(t, "Madrid de los Austrias", got[1].Title)
	assert.Equal(t, "Cena Flamenca", got[2].Title)
}

func TestItineraryStatusUpdate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	ev := &domain.ItineraryEvent{ID: uuid.NewString(), Day: 29, Month: "Mar", Title: "Museo del Prado", Status: "Libre"}
	require.NoError(t, store.AddItineraryEvent(ctx, ev))

	require.NoError(t, store.UpdateItineraryStatus(ctx, ev.ID, "Reservado"))

	got, err := store.ListItinerary(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Reservado", got[0].Status)

	assert.ErrorIs(t, store.UpdateItineraryStatus(ctx, "no-such-id", "Libre"), domain.ErrNotFound)
}

func TestExpensesNewestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	old := &domain.Expense{ID: uuid.NewString(), Payer: "Pablo", Amount: 42.50, Concept: "Tapas", CreatedAt: time.Now().Add(-time.Hour)}
	recent := &domain.Expense{ID: uuid.NewString(), Payer: "María", Amount: 18, Concept: "Metro", CreatedAt: time.Now()}
	require.NoError(t, store.AddExpense(ctx, old))
	require.NoError(t, store.AddExpense(ctx, recent))

	got, err := store.ListExpenses(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Metro", got[0].Concept)

	require.NoError(t, store.DeleteExpense(ctx, old.ID))
	got, err = store.ListExpenses(ctx)
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestChecklistUpsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	entry := &domain.ChecklistEntry{Item: "Pasaportes", Person: "Lucía", Done: false}
	require.NoError(t, store.UpsertChecklistEntry(ctx, entry))

	entry.Done = true
	require.NoError(t, store.UpsertChecklistEntry(ctx, entry))

	got, err := store.ListChecklist(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Done)
}

func TestRestaurantVisitedToggle(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	r := &domain.Restaurant{ID: uuid.NewString(), Name: "Sobrino de Botín", Specialty: "Cochinillo Asado", Rating: 5}
	require.NoError(t, store.AddRestaurant(ctx, r))
	require.NoError(t, store.SetRestaurantVisited(ctx, r.ID, true))

	got, err := store.ListRestaurants(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, got[0].Visited)
}

func TestWallPostsOldestFirst(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	first := &domain.WallPost{ID: uuid.NewString(), UserName: "Pablo", Content: "¡Ya falta poco!", CreatedAt: time.Now().Add(-time.Minute)}
	second := &domain.WallPost{ID: uuid.NewString(), UserName: "María", Content: "Maletas listas", CreatedAt: time.Now()}
	require.NoError(t, store.AddWallPost(ctx, second))
	require.NoError(t, store.AddWallPost(ctx, first))

	got, err := store.ListWallPosts(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "¡Ya falta poco!", got[0].Content)
}

func TestMapPinsRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	pin := &domain.MapPin{ID: uuid.NewString(), Name: "Templo de Debod", Category: "Interés", Lat: 40.4240, Lon: -3.7177}
	require.NoError(t, store.AddMapPin(ctx, pin))

	got, err := store.ListMapPins(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, pin.Lat, got[0].Lat)

	require.NoError(t, store.DeleteMapPin(ctx, pin.ID))
	assert.ErrorIs(t, store.DeleteMapPin(ctx, pin.ID), domain.ErrNotFound)
}
