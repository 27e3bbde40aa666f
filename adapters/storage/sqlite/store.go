package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/lozanofamily/madrid-guide/domain"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store implements domain.TripStore on a sqlite file.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database at path and brings the schema up
// to date.
func NewStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	// modernc sqlite misbehaves with concurrent writers on one file.
	db.SetMaxOpenConns(1)

	goose.SetBaseFS(migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return nil, fmt.Errorf("setting goose dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) ListItinerary(ctx context.Context) ([]*domain.ItineraryEvent, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, day, month, title, status FROM itinerary
		ORDER BY CASE month WHEN 'Mar' THEN 0 ELSE 1 END, day
	`)
	if err != nil {
		return nil, fmt.Errorf("listing itinerary: %w", err)
	}
	defer rows.Close()

	var out []*domain.ItineraryEvent
	for rows.Next() {
		var ev domain.ItineraryEvent
		if err := rows.Scan(&ev.ID, &ev.Day, &ev.Month, &ev.Title, &ev.Status); err != nil {
			return nil, fmt.Errorf("scanning itinerary event: %w", err)
		}
		out = append(out, &ev)
	}
	return out, rows.Err()
}

func (s *Store) AddItineraryEvent(ctx context.Context, ev *domain.ItineraryEvent) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO itinerary (id, day, month, title, status) VALUES (?, ?, ?, ?, ?)
	`, ev.ID, ev.Day, ev.Month, ev.Title, ev.Status)
	if err != nil {
		return fmt.Errorf("inserting itinerary event: %w", err)
	}
	return nil
}

func (s *Store) UpdateItineraryStatus(ctx context.Context, id, status string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE itinerary SET status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("updating itinerary status: %w", err)
	}
	return oneRowAffected(res)
}

func (s *Store) DeleteItineraryEvent(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM itinerary WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting itinerary event: %w", err)
	}
	return oneRowAffected(res)
}

func (s *Store) ListPlaces(ctx context.Context) ([]*domain.Place, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, category, description, image_url FROM places ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("listing places: %w", err)
	}
	defer rows.Close()

	var out []*domain.Place
	for rows.Next() {
		var p domain.Place
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Description, &p.ImageURL); err != nil {
			return nil, fmt.Errorf("scanning place: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (s *Store) AddPlace(ctx context.Context, p *domain.Place) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO places (id, name, category, description, image_url) VALUES (?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.Category, p.Description, p.ImageURL)
	if err != nil {
		return fmt.Errorf("inserting place: %w", err)
	}
	return nil
}

func (s *Store) DeletePlace(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM places WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting place: %w", err)
	}
	return oneRowAffected(res)
}

func (s *Store) ListRestaurants(ctx context.Context) ([]*domain.Restaurant, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, specialty, description, rating, image_url, visited
		FROM restaurants ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("listing restaurants: %w", err)
	}
	defer rows.Close()

	var out []*domain.Restaurant
	for rows.Next() {
		var r domain.Restaurant
		if err := rows.Scan(&r.ID, &r.Name, &r.Specialty, &r.Description, &r.Rating, &r.ImageURL, &r.Visited); err != nil {
			return nil, fmt.Errorf("scanning restaurant: %w", err)
		}
		out = append(out, &r)
	}
	return out, rows.Err()
}

func (s *Store) AddRestaurant(ctx context.Context, r *domain.Restaurant) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO restaurants (id, name, specialty, description, rating, image_url, visited)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, r.ID, r.Name, r.Specialty, r.Description, r.Rating, r.ImageURL, r.Visited)
	if err != nil {
		return fmt.Errorf("inserting restaurant: %w", err)
	}
	return nil
}

func (s *Store) SetRestaurantVisited(ctx context.Context, id string, visited bool) error {
	res, err := s.db.ExecContext(ctx, `UPDATE restaurants SET visited = ? WHERE id = ?`, visited, id)
	if err != nil {
		return fmt.Errorf("updating restaurant: %w", err)
	}
	return oneRowAffected(res)
}

func (s *Store) DeleteRestaurant(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM restaurants WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting restaurant: %w", err)
	}
	return oneRowAffected(res)
}

func (s *Store) ListExpenses(ctx context.Context) ([]*domain.Expense, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, payer, amount, concept, created_at FROM expenses ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing expenses: %w", err)
	}
	defer rows.Close()

	var out []*domain.Expense
	for rows.Next() {
		var e domain.Expense
		if err := rows.Scan(&e.ID, &e.Payer, &e.Amount, &e.Concept, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning expense: %w", err)
		}
		out = append(out, &e)
	}
	return out, rows.Err()
}

func (s *Store) AddExpense(ctx context.Context, e *domain.Expense) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO expenses (id, payer, amount, concept, created_at) VALUES (?, ?, ?, ?, ?)
	`, e.ID, e.Payer, e.Amount, e.Concept, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting expense: %w", err)
	}
	return nil
}

func (s *Store) DeleteExpense(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting expense: %w", err)
	}
	return oneRowAffected(res)
}

func (s *Store) ListChecklist(ctx context.Context) ([]*domain.ChecklistEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT item, person, done FROM checklist ORDER BY item, person
	`)
	if err != nil {
		return nil, fmt.Errorf("listing checklist: %w", err)
	}
	defer rows.Close()

	var out []*domain.ChecklistEntry
	for rows.Next() {
		var entry domain.ChecklistEntry
		if err := rows.Scan(&entry.Item, &entry.Person, &entry.Done); err != nil {
			return nil, fmt.Errorf("scanning checklist entry: %w", err)
		}
		out = append(out, &entry)
	}
	return out, rows.Err()
}

func (s *Store) UpsertChecklistEntry(ctx context.Context, entry *domain.ChecklistEntry) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO checklist (item, person, done) VALUES (?, ?, ?)
		ON CONFLICT (item, person) DO UPDATE SET done = excluded.done
	`, entry.Item, entry.Person, entry.Done)
	if err != nil {
		return fmt.Errorf("upserting checklist entry: %w", err)
	}
	return nil
}

func (s *Store) ListWallPosts(ctx context.Context) ([]*domain.WallPost, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, user_name, content, created_at FROM wall_posts ORDER BY created_at
	`)
	if err != nil {
		return nil, fmt.Errorf("listing wall posts: %w", err)
	}
	defer rows.Close()

	var out []*domain.WallPost
	for rows.Next() {
		var p domain.WallPost
		if err := rows.Scan(&p.ID, &p.UserName, &p.Content, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning wall post: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (s *Store) AddWallPost(ctx context.Context, p *domain.WallPost) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO wall_posts (id, user_name, content, created_at) VALUES (?, ?, ?, ?)
	`, p.ID, p.UserName, p.Content, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting wall post: %w", err)
	}
	return nil
}

func (s *Store) ListPhotos(ctx context.Context) ([]*domain.Photo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, url, caption, user_name, created_at FROM photos ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("listing photos: %w", err)
	}
	defer rows.Close()

	var out []*domain.Photo
	for rows.Next() {
		var p domain.Photo
		if err := rows.Scan(&p.ID, &p.URL, &p.Caption, &p.UserName, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning photo: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (s *Store) AddPhoto(ctx context.Context, p *domain.Photo) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO photos (id, url, caption, user_name, created_at) VALUES (?, ?, ?, ?, ?)
	`, p.ID, p.URL, p.Caption, p.UserName, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting photo: %w", err)
	}
	return nil
}

func (s *Store) DeletePhoto(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM photos WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting photo: %w", err)
	}
	return oneRowAffected(res)
}

func (s *Store) ListSafetyContacts(ctx context.Context) ([]*domain.SafetyContact, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, phone, kind FROM safety_contacts ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("listing safety contacts: %w", err)
	}
	defer rows.Close()

	var out []*domain.SafetyContact
	for rows.Next() {
		var c domain.SafetyContact
		if err := rows.Scan(&c.ID, &c.Name, &c.Phone, &c.Kind); err != nil {
			return nil, fmt.Errorf("scanning safety contact: %w", err)
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}

func (s *Store) AddSafetyContact(ctx context.Context, c *domain.SafetyContact) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO safety_contacts (id, name, phone, kind) VALUES (?, ?, ?, ?)
	`, c.ID, c.Name, c.Phone, c.Kind)
	if err != nil {
		return fmt.Errorf("inserting safety contact: %w", err)
	}
	return nil
}

func (s *Store) DeleteSafetyContact(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM safety_contacts WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting safety contact: %w", err)
	}
	return oneRowAffected(res)
}

func (s *Store) ListMapPins(ctx context.Context) ([]*domain.MapPin, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, category, latitude, longitude FROM map_pins ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("listing map pins: %w", err)
	}
	defer rows.Close()

	var out []*domain.MapPin
	for rows.Next() {
		var p domain.MapPin
		if err := rows.Scan(&p.ID, &p.Name, &p.Category, &p.Lat, &p.Lon); err != nil {
			return nil, fmt.Errorf("scanning map pin: %w", err)
		}
		out = append(out, &p)
	}
	return out, rows.Err()
}

func (s *Store) AddMapPin(ctx context.Context, p *domain.MapPin) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO map_pins (id, name, category, latitude, longitude) VALUES (?, ?, ?, ?, ?)
	`, p.ID, p.Name, p.Category, p.Lat, p.Lon)
	if err != nil {
		return fmt.Errorf("inserting map pin: %w", err)
	}
	return nil
}

func (s *Store) DeleteMapPin(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM map_pins WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting map pin: %w", err)
	}
	return oneRowAffected(res)
}

func oneRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
