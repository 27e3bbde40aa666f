package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

// Madrid city centre.
const (
	madridLat = 40.4168
	madridLon = -3.7038
)

const defaultBaseURL = "https://api.open-meteo.com"

// cacheTTL matches the refresh cadence of the original widget.
const cacheTTL = 30 * time.Minute

// CurrentWeather mirrors Open-Meteo's current_weather block.
type CurrentWeather struct {
	Temperature float64 `json:"temperature"`
	Windspeed   float64 `json:"windspeed"`
	WeatherCode int     `json:"weathercode"`
	Time        string  `json:"time"`
}

// Client fetches Madrid's current weather, caching results so a page of
// family members does not hammer the free API.
type Client struct {
	baseURL string
	client  *http.Client
	now     func() time.Time

	mu        sync.Mutex
	cached    *CurrentWeather
	fetchedAt time.Time
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 10 * time.Second},
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Current returns the cached weather if fresh enough, otherwise fetches.
func (c *Client) Current(ctx context.Context) (*CurrentWeather, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.cached != nil && c.now().Sub(c.fetchedAt) < cacheTTL {
		return c.cached, nil
	}

	url := fmt.Sprintf("%s/v1/forecast?latitude=%v&longitude=%v&current_weather=true&timezone=Europe%%2FMadrid",
		c.baseURL, madridLat, madridLon)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("building weather request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching weather: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("weather api returned status %d", resp.StatusCode)
	}

	var body struct {
		CurrentWeather CurrentWeather `json:"current_weather"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding weather response: %w", err)
	}

	c.cached = &body.CurrentWeather
	c.fetchedAt = c.now()
	return c.cached, nil
}
