package http

import (
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/lozanofamily/madrid-guide/adapters/weather"
	"github.com/lozanofamily/madrid-guide/domain"
	"github.com/lozanofamily/madrid-guide/usecase"
	"github.com/lozanofamily/madrid-guide/utils/log"
)

// TripHandler serves every planning page: itinerary, places, restaurants,
// expenses, checklist, wall, gallery, safety contacts and map pins.
type TripHandler struct {
	store   domain.TripStore
	wall    *usecase.WallService
	weather *weather.Client
	now     func() time.Time
}

func NewTripHandler(store domain.TripStore, wall *usecase.WallService, weatherClient *weather.Client) *TripHandler {
	return &TripHandler{
		store:   store,
		wall:    wall,
		weather: weatherClient,
		now:     time.Now,
	}
}

func storeError(c echo.Context, err error) error {
	if err == domain.ErrNotFound {
		return echo.NewHTTPError(http.StatusNotFound, "not found")
	}
	log.WithCtx(c.Request().Context()).Error("store operation failed", zap.Error(err))
	return echo.NewHTTPError(http.StatusInternalServerError, "storage error")
}

// ── Itinerary ──

type addItineraryRequest struct {
	Day    int    `json:"day"`
	Month  string `json:"month"`
	Title  string `json:"title"`
	Status string `json:"status"`
}

func (h *TripHandler) ListItinerary(c echo.Context) error {
	events, err := h.store.ListItinerary(c.Request().Context())
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, events)
}

func (h *TripHandler) AddItineraryEvent(c echo.Context) error {
	var req addItineraryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body")
	}
	if req.Day < 1 || req.Day > 31 || strings.TrimSpace(req.Title) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "day and title are required")
	}
	if req.Month != "Mar" && req.Month != "Abr" {
		return echo.NewHTTPError(http.StatusBadRequest, "month must be Mar or Abr")
	}
	if req.Status == "" {
		req.Status = "Libre"
	}

	ev := &domain.ItineraryEvent{
		ID:     uuid.NewString(),
		Day:    req.Day,
		Month:  req.Month,
		Title:  strings.TrimSpace(req.Title),
		Status: req.Status,
	}
	if err := h.store.AddItineraryEvent(c.Request().Context(), ev); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusCreated, ev)
}

func (h *TripHandler) UpdateItineraryStatus(c echo.Context) error {
	var req struct {
		Status string `json:"status"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body")
	}
	if req.Status == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "status is required")
	}
	if err := h.store.UpdateItineraryStatus(c.Request().Context(), c.Param("id"), req.Status); err != nil {
		return storeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TripHandler) DeleteItineraryEvent(c echo.Context) error {
	if err := h.store.DeleteItineraryEvent(c.Request().Context(), c.Param("id")); err != nil {
		return storeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ── Places ──

type addPlaceRequest struct {
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}

func (h *TripHandler) ListPlaces(c echo.Context) error {
	places, err := h.store.ListPlaces(c.Request().Context())
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, places)
}

func (h *TripHandler) AddPlace(c echo.Context) error {
	var req addPlaceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if req.Category == "" {
		req.Category = "Visita"
	}

	p := &domain.Place{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Category:    req.Category,
		Description: req.Description,
		ImageURL:    req.ImageURL,
	}
	if err := h.store.AddPlace(c.Request().Context(), p); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *TripHandler) DeletePlace(c echo.Context) error {
	if err := h.store.DeletePlace(c.Request().Context(), c.Param("id")); err != nil {
		return storeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ── Restaurants ──

type addRestaurantRequest struct {
	Name        string `json:"name"`
	Specialty   string `json:"specialty"`
	Description string `json:"description"`
	Rating      int    `json:"rating"`
	ImageURL    string `json:"image_url"`
}

func (h *TripHandler) ListRestaurants(c echo.Context) error {
	restaurants, err := h.store.ListRestaurants(c.Request().Context())
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, restaurants)
}

func (h *TripHandler) AddRestaurant(c echo.Context) error {
	var req addRestaurantRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if req.Rating < 0 || req.Rating > 5 {
		return echo.NewHTTPError(http.StatusBadRequest, "rating must be between 0 and 5")
	}

	r := &domain.Restaurant{
		ID:          uuid.NewString(),
		Name:        strings.TrimSpace(req.Name),
		Specialty:   req.Specialty,
		Description: req.Description,
		Rating:      req.Rating,
		ImageURL:    req.ImageURL,
	}
	if err := h.store.AddRestaurant(c.Request().Context(), r); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusCreated, r)
}

func (h *TripHandler) SetRestaurantVisited(c echo.Context) error {
	var req struct {
		Visited bool `json:"visited"`
	}
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body")
	}
	if err := h.store.SetRestaurantVisited(c.Request().Context(), c.Param("id"), req.Visited); err != nil {
		return storeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TripHandler) DeleteRestaurant(c echo.Context) error {
	if err := h.store.DeleteRestaurant(c.Request().Context(), c.Param("id")); err != nil {
		return storeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ── Expenses ──

type addExpenseRequest struct {
	Payer   string  `json:"payer"`
	Amount  float64 `json:"amount"`
	Concept string  `json:"concept"`
}

func (h *TripHandler) ListExpenses(c echo.Context) error {
	expenses, err := h.store.ListExpenses(c.Request().Context())
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, expenses)
}

func (h *TripHandler) AddExpense(c echo.Context) error {
	var req addExpenseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body")
	}
	if strings.TrimSpace(req.Payer) == "" || strings.TrimSpace(req.Concept) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "payer and concept are required")
	}
	if req.Amount <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "amount must be positive")
	}

	e := &domain.Expense{
		ID:        uuid.NewString(),
		Payer:     strings.TrimSpace(req.Payer),
		Amount:    req.Amount,
		Concept:   strings.TrimSpace(req.Concept),
		CreatedAt: h.now(),
	}
	if err := h.store.AddExpense(c.Request().Context(), e); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusCreated, e)
}

func (h *TripHandler) DeleteExpense(c echo.Context) error {
	if err := h.store.DeleteExpense(c.Request().Context(), c.Param("id")); err != nil {
		return storeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *TripHandler) ExpenseSummary(c echo.Context) error {
	expenses, err := h.store.ListExpenses(c.Request().Context())
	if err != nil {
		return storeError(c, err)
	}

	summary := domain.ExpenseSummary{ByPayer: make(map[string]float64)}
	for _, e := range expenses {
		summary.Total += e.Amount
		summary.ByPayer[e.Payer] += e.Amount
	}
	if len(summary.ByPayer) > 0 {
		summary.PerHead = summary.Total / float64(len(summary.ByPayer))
	}
	return c.JSON(http.StatusOK, summary)
}

// ── Checklist ──

func (h *TripHandler) ListChecklist(c echo.Context) error {
	entries, err := h.store.ListChecklist(c.Request().Context())
	if err != nil {
		return storeError(c, err)
	}

	// Same shape the checklist page renders: item → person → done.
	grouped := make(map[string]map[string]bool)
	for _, entry := range entries {
		if grouped[entry.Item] == nil {
			grouped[entry.Item] = make(map[string]bool)
		}
		grouped[entry.Item][entry.Person] = entry.Done
	}
	return c.JSON(http.StatusOK, grouped)
}

func (h *TripHandler) UpsertChecklistEntry(c echo.Context) error {
	var req domain.ChecklistEntry
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body")
	}
	if strings.TrimSpace(req.Item) == "" || strings.TrimSpace(req.Person) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "item and person are required")
	}
	if err := h.store.UpsertChecklistEntry(c.Request().Context(), &req); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, req)
}

// ── Wall ──

type addWallPostRequest struct {
	Content string `json:"content"`
}

func (h *TripHandler) ListWallPosts(c echo.Context) error {
	posts, err := h.wall.List(c.Request().Context())
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, posts)
}

func (h *TripHandler) AddWallPost(c echo.Context) error {
	var req addWallPostRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body")
	}
	if strings.TrimSpace(req.Content) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "content is required")
	}

	member, _ := c.Get("family_member").(string)
	if member == "" {
		member = "Anónimo"
	}

	post, err := h.wall.Post(c.Request().Context(), member, req.Content)
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusCreated, post)
}

// ── Photos ──

type addPhotoRequest struct {
	URL     string `json:"url"`
	Caption string `json:"caption"`
}

func (h *TripHandler) ListPhotos(c echo.Context) error {
	photos, err := h.store.ListPhotos(c.Request().Context())
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, photos)
}

func (h *TripHandler) AddPhoto(c echo.Context) error {
	var req addPhotoRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body")
	}
	if strings.TrimSpace(req.URL) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "url is required")
	}

	member, _ := c.Get("family_member").(string)

	p := &domain.Photo{
		ID:        uuid.NewString(),
		URL:       strings.TrimSpace(req.URL),
		Caption:   req.Caption,
		UserName:  member,
		CreatedAt: h.now(),
	}
	if err := h.store.AddPhoto(c.Request().Context(), p); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusCreated, p)
}

func (h *TripHandler) DeletePhoto(c echo.Context) error {
	if err := h.store.DeletePhoto(c.Request().Context(), c.Param("id")); err != nil {
		return storeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ── Safety contacts ──

type addSafetyContactRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Kind  string `json:"kind"`
}

func (h *TripHandler) ListSafetyContacts(c echo.Context) error {
	contacts, err := h.store.ListSafetyContacts(c.Request().Context())
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, contacts)
}

func (h *TripHandler) AddSafetyContact(c echo.Context) error {
	var req addSafetyContactRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body")
	}
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Phone) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name and phone are required")
	}
	if req.Kind == "" {
		req.Kind = "familia"
	}

	contact := &domain.SafetyContact{
		ID:    uuid.NewString(),
		Name:  strings.TrimSpace(req.Name),
		Phone: strings.TrimSpace(req.Phone),
		Kind:  req.Kind,
	}
	if err := h.store.AddSafetyContact(c.Request().Context(), contact); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusCreated, contact)
}

func (h *TripHandler) DeleteSafetyContact(c echo.Context) error {
	if err := h.store.DeleteSafetyContact(c.Request().Context(), c.Param("id")); err != nil {
		return storeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ── Map pins ──

type addMapPinRequest struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Lat      float64 `json:"latitude"`
	Lon      float64 `json:"longitude"`
}

func (h *TripHandler) ListMapPins(c echo.Context) error {
	pins, err := h.store.ListMapPins(c.Request().Context())
	if err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusOK, pins)
}

func (h *TripHandler) AddMapPin(c echo.Context) error {
	var req addMapPinRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON body")
	}
	if strings.TrimSpace(req.Name) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}
	if req.Category == "" {
		req.Category = "Interés"
	}

	pin := &domain.MapPin{
		ID:       uuid.NewString(),
		Name:     strings.TrimSpace(req.Name),
		Category: req.Category,
		Lat:      req.Lat,
		Lon:      req.Lon,
	}
	if err := h.store.AddMapPin(c.Request().Context(), pin); err != nil {
		return storeError(c, err)
	}
	return c.JSON(http.StatusCreated, pin)
}

func (h *TripHandler) DeleteMapPin(c echo.Context) error {
	if err := h.store.DeleteMapPin(c.Request().Context(), c.Param("id")); err != nil {
		return storeError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// ── Weather and countdown ──

func (h *TripHandler) Weather(c echo.Context) error {
	current, err := h.weather.Current(c.Request().Context())
	if err != nil {
		log.WithCtx(c.Request().Context()).Error("weather fetch failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadGateway, "weather service unavailable")
	}
	return c.JSON(http.StatusOK, current)
}

func (h *TripHandler) TripInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, usecase.TripStatus(h.now()))
}

func (h *TripHandler) HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
