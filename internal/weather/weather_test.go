package weather

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestTemperature(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("q"); got != "Berlin" {
			t.Errorf("city query = %q", got)
		}
		if got := r.URL.Query().Get("units"); got != "metric" {
			t.Errorf("units query = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"main":{"temp":21.5}}`))
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	temp, err := c.Temperature(context.Background(), "Berlin")
	if err != nil {
		t.Fatalf("Temperature: %v", err)
	}
	if temp != 21.5 {
		t.Fatalf("temp = %v, want 21.5", temp)
	}
}

func TestTemperatureCityNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"cod":"404","message":"city not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	_, err := c.Temperature(context.Background(), "Nowhereville")
	if !errors.Is(err, ErrCityNotFound) {
		t.Fatalf("got %v, want ErrCityNotFound", err)
	}
}

func TestTemperatureUpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "oops", http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient("test-key", WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	_, err := c.Temperature(context.Background(), "Berlin")
	if !errors.Is(err, ErrUnavailable) {
		t.Fatalf("got %v, want ErrUnavailable", err)
	}
}
