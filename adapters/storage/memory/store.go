package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/lozanofamily/madrid-guide/domain"
)

// Store keeps everything in process memory. Used in tests and for local
// development without a database file.
type Store struct {
	mu          sync.RWMutex
	itinerary   []*domain.ItineraryEvent
	places      []*domain.Place
	restaurants []*domain.Restaurant
	expenses    []*domain.Expense
	checklist   map[string]*domain.ChecklistEntry
	wall        []*domain.WallPost
	photos      []*domain.Photo
	safety      []*domain.SafetyContact
	pins        []*domain.MapPin
}

func NewStore() *Store {
	return &Store{
		checklist: make(map[string]*domain.ChecklistEntry),
	}
}

// tripOrder sorts March before April, then by day. The trip only spans
// those two months.
func tripOrder(a, b *domain.ItineraryEvent) bool {
	if a.Month != b.Month {
		return a.Month == "Mar"
	}
	return a.Day < b.Day
}

func (s *Store) ListItinerary(_ context.Context) ([]*domain.ItineraryEvent, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.ItineraryEvent, len(s.itinerary))
	copy(out, s.itinerary)
	sort.SliceStable(out, func(i, j int) bool { return tripOrder(out[i], out[j]) })
	return out, nil
}

func (s *Store) AddItineraryEvent(_ context.Context, ev *domain.ItineraryEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.itinerary = append(s.itinerary, ev)
	return nil
}

func (s *Store) UpdateItineraryStatus(_ context.Context, id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, ev := range s.itinerary {
		if ev.ID == id {
			ev.Status = status
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *Store) DeleteItineraryEvent(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, ev := range s.itinerary {
		if ev.ID == id {
			s.itinerary = append(s.itinerary[:i], s.itinerary[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *Store) ListPlaces(_ context.Context) ([]*domain.Place, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Place, len(s.places))
	copy(out, s.places)
	return out, nil
}

func (s *Store) AddPlace(_ context.Context, p *domain.Place) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.places = append(s.places, p)
	return nil
}

func (s *Store) DeletePlace(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.places {
		if p.ID == id {
			s.places = append(s.places[:i], s.places[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *Store) ListRestaurants(_ context.Context) ([]*domain.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Restaurant, len(s.restaurants))
	copy(out, s.restaurants)
	return out, nil
}

func (s *Store) AddRestaurant(_ context.Context, r *domain.Restaurant) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.restaurants = append(s.restaurants, r)
	return nil
}

func (s *Store) SetRestaurantVisited(_ context.Context, id string, visited bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range s.restaurants {
		if r.ID == id {
			r.Visited = visited
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *Store) DeleteRestaurant(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, r := range s.restaurants {
		if r.ID == id {
			s.restaurants = append(s.restaurants[:i], s.restaurants[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *Store) ListExpenses(_ context.Context) ([]*domain.Expense, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Expense, len(s.expenses))
	copy(out, s.expenses)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) AddExpense(_ context.Context, e *domain.Expense) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expenses = append(s.expenses, e)
	return nil
}

func (s *Store) DeleteExpense(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, e := range s.expenses {
		if e.ID == id {
			s.expenses = append(s.expenses[:i], s.expenses[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func checklistKey(item, person string) string {
	return item + "|" + person
}

func (s *Store) ListChecklist(_ context.Context) ([]*domain.ChecklistEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.ChecklistEntry, 0, len(s.checklist))
	for _, entry := range s.checklist {
		out = append(out, entry)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Item != out[j].Item {
			return out[i].Item < out[j].Item
		}
		return out[i].Person < out[j].Person
	})
	return out, nil
}

func (s *Store) UpsertChecklistEntry(_ context.Context, entry *domain.ChecklistEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.checklist[checklistKey(entry.Item, entry.Person)] = entry
	return nil
}

func (s *Store) ListWallPosts(_ context.Context) ([]*domain.WallPost, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.WallPost, len(s.wall))
	copy(out, s.wall)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) AddWallPost(_ context.Context, p *domain.WallPost) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.wall = append(s.wall, p)
	return nil
}

func (s *Store) ListPhotos(_ context.Context) ([]*domain.Photo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.Photo, len(s.photos))
	copy(out, s.photos)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) AddPhoto(_ context.Context, p *domain.Photo) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.photos = append(s.photos, p)
	return nil
}

func (s *Store) DeletePhoto(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.photos {
		if p.ID == id {
			s.photos = append(s.photos[:i], s.photos[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *Store) ListSafetyContacts(_ context.Context) ([]*domain.SafetyContact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.SafetyContact, len(s.safety))
	copy(out, s.safety)
	return out, nil
}

func (s *Store) AddSafetyContact(_ context.Context, c *domain.SafetyContact) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.safety = append(s.safety, c)
	return nil
}

func (s *Store) DeleteSafetyContact(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, c := range s.safety {
		if c.ID == id {
			s.safety = append(s.safety[:i], s.safety[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func (s *Store) ListMapPins(_ context.Context) ([]*domain.MapPin, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*domain.MapPin, len(s.pins))
	copy(out, s.pins)
	return out, nil
}

func (s *Store) AddMapPin(_ context.Context, p *domain.MapPin) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pins = append(s.pins, p)
	return nil
}

func (s *Store) DeleteMapPin(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, p := range s.pins {
		if p.ID == id {
			s.pins = append(s.pins[:i], s.pins[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}
