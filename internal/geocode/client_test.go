package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

// newTestClient points a client at a stub server and drops the rate limit
// so tests don't sit in waitForRateLimit
func newTestClient(t *testing.T, server *httptest.Server) *Client {
	t.Helper()

	c := NewClient()
	c.rateLimiter.Reset(time.Millisecond)
	if server != nil {
		c.baseURL = server.URL
		c.httpClient = server.Client()
	}
	t.Cleanup(c.Close)

	return c
}

func TestGeocodeParsesFirstResult(t *testing.T) {
	var gotUA, gotAccept string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotAccept = r.Header.Get("Accept")
		w.Write([]byte(`[{"lat":"48.8588897","lon":"2.3200410","display_name":"Paris, France"},
			{"lat":"33.6617962","lon":"-95.5555130","display_name":"Paris, Texas"}]`))
	}))
	defer server.Close()

	c := newTestClient(t, server)

	coords, err := c.Geocode(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("geocode failed: %v", err)
	}
	if coords == nil {
		t.Fatal("expected coordinates, got nil")
	}
	if coords.Lat != 48.8588897 || coords.Lon != 2.3200410 {
		t.Errorf("expected the first result's coordinates, got %f, %f", coords.Lat, coords.Lon)
	}

	if gotUA != UserAgent {
		t.Errorf("expected User-Agent %q, got %q", UserAgent, gotUA)
	}
	if gotAccept != "application/json" {
		t.Errorf("expected Accept application/json, got %q", gotAccept)
	}
}

func TestGeocodeUnresolvableIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := newTestClient(t, server)

	coords, err := c.Geocode(context.Background(), "xyzzy nowhere at all")
	if err != nil {
		t.Fatalf("expected no error for an unresolvable destination, got %v", err)
	}
	if coords != nil {
		t.Errorf("expected nil coordinates, got %+v", coords)
	}
}

func TestGeocodeNonOKStatusIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "try later", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	c := newTestClient(t, server)

	coords, err := c.Geocode(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("expected no error for a 503, got %v", err)
	}
	if coords != nil {
		t.Errorf("expected nil coordinates, got %+v", coords)
	}
}

func TestGeocodeMalformedBodyIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer server.Close()

	c := newTestClient(t, server)

	coords, err := c.Geocode(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("expected no error for a malformed body, got %v", err)
	}
	if coords != nil {
		t.Errorf("expected nil coordinates, got %+v", coords)
	}
}

func TestGeocodeUnparseableCoordinatesIsUnavailable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat":"not-a-number","lon":"2.32"}]`))
	}))
	defer server.Close()

	c := newTestClient(t, server)

	coords, err := c.Geocode(context.Background(), "Paris")
	if err != nil {
		t.Fatalf("expected no error for unparseable coordinates, got %v", err)
	}
	if coords != nil {
		t.Errorf("expected nil coordinates, got %+v", coords)
	}
}

func TestGeocodeEmptyDestination(t *testing.T) {
	c := newTestClient(t, nil)

	if _, err := c.Geocode(context.Background(), "   "); err == nil {
		t.Error("expected an error for an empty destination")
	}
}

func TestClientRateLimiting(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping rate limit test in short mode")
	}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	c := NewClient()
	c.baseURL = server.URL
	c.httpClient = server.Client()
	defer c.Close()

	// 3 requests at 1 req/sec should take at least 2 intervals beyond the
	// first tick
	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := c.Geocode(context.Background(), "test"); err != nil {
			t.Fatalf("geocode failed: %v", err)
		}
	}

	if elapsed := time.Since(start); elapsed < 2*time.Second {
		t.Errorf("rate limiting not working: 3 requests took only %v", elapsed)
	}
}
