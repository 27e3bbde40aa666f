package domain

import "time"

// ItineraryEvent is one planned day of the trip.
type ItineraryEvent struct {
	ID     string `json:"id"`
	Day    int    `json:"day"`
	Month  string `json:"month"` // "Mar" or "Abr"
	Title  string `json:"title"`
	Status string `json:"status"` // Reservado, Pendiente, Libre, Confirmado
}

// Place is a point of interest the family wants to visit.
type Place struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

// Restaurant is a tapas bar or restaurant candidate.
type Restaurant struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Specialty   string `json:"specialty"`
	Description string `json:"description"`
	Rating      int    `json:"rating"` // 1..5
	ImageURL    string `json:"image_url"`
	Visited     bool   `json:"visited"`
}

// Expense is one shared cost, registered by whoever paid.
type Expense struct {
	ID        string    `json:"id"`
	Payer     string    `json:"payer"`
	Amount    float64   `json:"amount"`
	Concept   string    `json:"concept"`
	CreatedAt time.Time `json:"created_at"`
}

// ExpenseSummary aggregates the expense list for the balance view.
type ExpenseSummary struct {
	Total   float64            `json:"total"`
	ByPayer map[string]float64 `json:"by_payer"`
	PerHead float64            `json:"per_head"`
}

// ChecklistEntry records whether one family member has one travel
// document or item ready.
type ChecklistEntry struct {
	Item   string `json:"item"`
	Person string `json:"person"`
	Done   bool   `json:"done"`
}

// WallPost is one message on the family wall.
type WallPost struct {
	ID        string    `json:"id"`
	UserName  string    `json:"user_name"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Photo is one gallery upload.
type Photo struct {
	ID        string    `json:"id"`
	URL       string    `json:"url"`
	Caption   string    `json:"caption"`
	UserName  string    `json:"user_name"`
	CreatedAt time.Time `json:"created_at"`
}

// SafetyContact is an emergency number or meeting point.
type SafetyContact struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Kind  string `json:"kind"` // emergencia, familia, punto de encuentro
}

// MapPin is a custom marker dropped on the trip map.
type MapPin struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Lat      float64 `json:"latitude"`
	Lon      float64 `json:"longitude"`
}
