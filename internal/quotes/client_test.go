package quotes

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestTodayReturnsRemoteQuote(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/today" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"text":"Well begun is half done.","author":"Aristotle"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 3)
	quote := client.Today(context.Background())

	if quote.Text != "Well begun is half done." || quote.Author != "Aristotle" {
		t.Fatalf("unexpected quote: %+v", quote)
	}
}

func TestTodayFallsBackOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 3)
	if quote := client.Today(context.Background()); quote != DefaultQuote {
		t.Fatalf("expected default quote, got %+v", quote)
	}
}

func TestTodayFallsBackOnMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`not json`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 3)
	if quote := client.Today(context.Background()); quote != DefaultQuote {
		t.Fatalf("expected default quote, got %+v", quote)
	}
}

func TestTodayFallsBackOnSlowServer(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(server.URL, 1)

	start := time.Now()
	quote := client.Today(context.Background())
	elapsed := time.Since(start)

	if quote != DefaultQuote {
		t.Fatalf("expected default quote, got %+v", quote)
	}
	if elapsed > 2*time.Second {
		t.Fatalf("fallback took too long: %v", elapsed)
	}
}

func TestTodayWithoutBaseURL(t *testing.T) {
	client := NewClient("", 3)
	if quote := client.Today(context.Background()); quote != DefaultQuote {
		t.Fatalf("expected default quote, got %+v", quote)
	}
}
