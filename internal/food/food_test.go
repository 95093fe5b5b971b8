package food

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

type stubLookup struct {
	kcal int
	err  error
}

func (s stubLookup) KcalPer100g(ctx context.Context, product string) (int, error) {
	return s.kcal, s.err
}

func TestChainFirstHit(t *testing.T) {
	c := NewChain(stubLookup{kcal: 350}, stubLookup{err: errors.New("must not be called")})
	kcal, err := c.KcalPer100g(context.Background(), "oatmeal")
	if err != nil || kcal != 350 {
		t.Fatalf("got %d, %v", kcal, err)
	}
}

func TestChainSkipsFailures(t *testing.T) {
	c := NewChain(stubLookup{err: errors.New("down")}, stubLookup{kcal: 89})
	kcal, err := c.KcalPer100g(context.Background(), "banana")
	if err != nil || kcal != 89 {
		t.Fatalf("got %d, %v", kcal, err)
	}
}

func TestChainFallbackDefault(t *testing.T) {
	c := NewChain(stubLookup{err: errors.New("down")}, stubLookup{err: errors.New("also down")})
	kcal, err := c.KcalPer100g(context.Background(), "mystery dish")
	if err != nil {
		t.Fatalf("fallback must not be an error: %v", err)
	}
	if kcal != DefaultKcalPer100g {
		t.Fatalf("got %d, want %d", kcal, DefaultKcalPer100g)
	}
}

func TestOpenFoodFactsLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("search_terms"); got != "oatmeal" {
			t.Errorf("search_terms = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products":[{"nutriments":{"energy-kcal_100g":379.4}}]}`))
	}))
	defer srv.Close()

	o := NewOpenFoodFacts(WithOFFBaseURL(srv.URL), WithOFFHTTPClient(srv.Client()))
	kcal, err := o.KcalPer100g(context.Background(), "oatmeal")
	if err != nil {
		t.Fatalf("KcalPer100g: %v", err)
	}
	if kcal != 379 {
		t.Fatalf("kcal = %d, want 379", kcal)
	}
}

func TestOpenFoodFactsNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"products":[]}`))
	}))
	defer srv.Close()

	o := NewOpenFoodFacts(WithOFFBaseURL(srv.URL), WithOFFHTTPClient(srv.Client()))
	if _, err := o.KcalPer100g(context.Background(), "unknownium"); !errors.Is(err, ErrNoMatch) {
		t.Fatalf("got %v, want ErrNoMatch", err)
	}
}
