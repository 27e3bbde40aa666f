package domain

import (
	"context"
	"errors"
)

// ErrNotFound is returned by stores when a row does not exist.
var ErrNotFound = errors.New("not found")

type ItineraryStore interface {
	ListItinerary(ctx context.Context) ([]*ItineraryEvent, error)
	AddItineraryEvent(ctx context.Context, ev *ItineraryEvent) error
	UpdateItineraryStatus(ctx context.Context, id, status string) error
	DeleteItineraryEvent(ctx context.Context, id string) error
}

type PlaceStore interface {
	ListPlaces(ctx context.Context) ([]*Place, error)
	AddPlace(ctx context.Context, p *Place) error
	DeletePlace(ctx context.Context, id string) error
}

type RestaurantStore interface {
	ListRestaurants(ctx context.Context) ([]*Restaurant, error)
	AddRestaurant(ctx context.Context, r *Restaurant) error
	SetRestaurantVisited(ctx context.Context, id string, visited bool) error
	DeleteRestaurant(ctx context.Context, id string) error
}

type ExpenseStore interface {
	ListExpenses(ctx context.Context) ([]*Expense, error)
	AddExpense(ctx context.Context, e *Expense) error
	DeleteExpense(ctx context.Context, id string) error
}

type ChecklistStore interface {
	ListChecklist(ctx context.Context) ([]*ChecklistEntry, error)
	UpsertChecklistEntry(ctx context.Context, entry *ChecklistEntry) error
}

type WallStore interface {
	ListWallPosts(ctx context.Context) ([]*WallPost, error)
	AddWallPost(ctx context.Context, p *WallPost) error
}

type PhotoStore interface {
	ListPhotos(ctx context.Context) ([]*Photo, error)
	AddPhoto(ctx context.Context, p *Photo) error
	DeletePhoto(ctx context.Context, id string) error
}

type SafetyStore interface {
	ListSafetyContacts(ctx context.Context) ([]*SafetyContact, error)
	AddSafetyContact(ctx context.Context, c *SafetyContact) error
	DeleteSafetyContact(ctx context.Context, id string) error
}

type MapPinStore interface {
	ListMapPins(ctx context.Context) ([]*MapPin, error)
	AddMapPin(ctx context.Context, p *MapPin) error
	DeleteMapPin(ctx context.Context, id string) error
}

// TripStore is the full persistence surface. Both the sqlite and the
// in-memory backends implement it.
type TripStore interface {
	ItineraryStore
	PlaceStore
	RestaurantStore
	ExpenseStore
	ChecklistStore
	WallStore
	PhotoStore
	SafetyStore
	MapPinStore
}
