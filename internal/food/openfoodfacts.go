package food

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"

	"github.com/m3rciful/fitbot/core/netutil"
)

const offBaseURL = "https://world.openfoodfacts.org/cgi/search.pl"

// ErrNoMatch means the nutrition database has no usable entry.
var ErrNoMatch = errors.New("food: no matching product")

// OpenFoodFacts looks products up in the OpenFoodFacts search API.
type OpenFoodFacts struct {
	baseURL string
	http    *http.Client
}

// OFFOption customises the OpenFoodFacts client.
type OFFOption func(*OpenFoodFacts)

// WithOFFBaseURL overrides the API endpoint. Used in tests.
func WithOFFBaseURL(u string) OFFOption {
	return func(o *OpenFoodFacts) { o.baseURL = u }
}

// WithOFFHTTPClient overrides the underlying HTTP client.
func WithOFFHTTPClient(h *http.Client) OFFOption {
	return func(o *OpenFoodFacts) { o.http = h }
}

// NewOpenFoodFacts builds the nutrition database lookup.
func NewOpenFoodFacts(opts ...OFFOption) *OpenFoodFacts {
	o := &OpenFoodFacts{
		baseURL: offBaseURL,
		http: netutil.NewClient(netutil.ClientOptions{
			Timeout:       20 * time.Second,
			RetryAttempts: 1,
		}),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

type offResponse struct {
	Products []struct {
		Nutriments struct {
			EnergyKcal100g float64 `json:"energy-kcal_100g"`
		} `json:"nutriments"`
	} `json:"products"`
}

// KcalPer100g returns the caloric density of the best search match.
func (o *OpenFoodFacts) KcalPer100g(ctx context.Context, product string) (int, error) {
	q := url.Values{}
	q.Set("search_terms", product)
	q.Set("search_simple", "1")
	q.Set("action", "process")
	q.Set("json", "1")
	q.Set("page_size", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+"?"+q.Encode(), nil)
	if err != nil {
		return 0, fmt.Errorf("food: build request: %w", err)
	}
	resp, err := o.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("food: openfoodfacts: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("food: openfoodfacts status %d", resp.StatusCode)
	}

	var out offResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return 0, fmt.Errorf("food: decode: %w", err)
	}
	if len(out.Products) == 0 || out.Products[0].Nutriments.EnergyKcal100g <= 0 {
		return 0, fmt.Errorf("%w: %q", ErrNoMatch, product)
	}
	return int(math.Round(out.Products[0].Nutriments.EnergyKcal100g)), nil
}
