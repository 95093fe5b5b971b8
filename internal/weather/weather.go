// Package weather resolves the current temperature for a city through
// the OpenWeatherMap current-weather API.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/m3rciful/fitbot/core/logger"
	"github.com/m3rciful/fitbot/core/netutil"
	"log/slog"
)

var (
	// ErrUnavailable means the upstream could not answer; callers surface
	// a retry-later message instead of using a stale temperature.
	ErrUnavailable = errors.New("weather: upstream unavailable")
	// ErrCityNotFound means the upstream does not know the city.
	ErrCityNotFound = errors.New("weather: city not found")
)

const defaultBaseURL = "https://api.openweathermap.org/data/2.5/weather"

// Client queries OpenWeatherMap.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// Option customises the client.
type Option func(*Client)

// WithBaseURL overrides the API endpoint. Used in tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient builds a weather client with a generous timeout and retries
// on transient network failures.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: netutil.NewClient(netutil.ClientOptions{
			Timeout:       20 * time.Second,
			RetryAttempts: 2,
		}),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type currentWeather struct {
	Main struct {
		Temp float64 `json:"temp"`
	} `json:"main"`
}

// Temperature returns the current temperature in Celsius for city.
func (c *Client) Temperature(ctx context.Context, city string) (float64, error) {
	q := url.Values{}
	q.Set("q", city)
	q.Set("appid", c.apiKey)
	q.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.L.LogAttrs(ctx, slog.LevelWarn, "weather.fetch.failed",
			slog.String("component", "weather"),
			slog.String("city", city),
			slog.String("err", err.Error()),
		)
		return 0, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return 0, fmt.Errorf("%w: %q", ErrCityNotFound, city)
	case resp.StatusCode != http.StatusOK:
		logger.L.LogAttrs(ctx, slog.LevelWarn, "weather.fetch.failed",
			slog.String("component", "weather"),
			slog.String("city", city),
			slog.Int("http_code", resp.StatusCode),
		)
		return 0, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var cw currentWeather
	if err := json.NewDecoder(resp.Body).Decode(&cw); err != nil {
		return 0, fmt.Errorf("%w: decode: %v", ErrUnavailable, err)
	}

	logger.L.LogAttrs(ctx, slog.LevelDebug, "weather.fetch",
		slog.String("component", "weather"),
		slog.String("city", city),
		slog.Float64("temp_c", cw.Main.Temp),
		slog.Duration("duration", logger.Took(start)),
	)
	return cw.Main.Temp, nil
}
