package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestFetch(t *testing.T) {
	body := "%PDF-1.4\n%fake\n"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != "test-agent" {
			http.Error(w, "bad agent", http.StatusBadRequest)
			return
		}
		switch r.URL.Path {
		case "/book.pdf":
			w.Header().Set("Content-Type", "application/pdf")
			w.Write([]byte(body))
		case "/big.pdf":
			w.Write([]byte(strings.Repeat("x", 64)))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := New(Config{MaxBytes: 32, UserAgent: "test-agent"})

	t.Run("ok", func(t *testing.T) {
		data, err := f.Fetch(context.Background(), srv.URL+"/book.pdf")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != body {
			t.Errorf("body = %q, want %q", data, body)
		}
	})

	t.Run("not found", func(t *testing.T) {
		_, err := f.Fetch(context.Background(), srv.URL+"/missing.pdf")
		var fe *FetchError
		if !errors.As(err, &fe) {
			t.Fatalf("expected *FetchError, got %v", err)
		}
		if fe.StatusCode != http.StatusNotFound {
			t.Errorf("StatusCode = %d, want 404", fe.StatusCode)
		}
	})

	t.Run("too large", func(t *testing.T) {
		_, err := f.Fetch(context.Background(), srv.URL+"/big.pdf")
		var fe *FetchError
		if !errors.As(err, &fe) {
			t.Fatalf("expected *FetchError, got %v", err)
		}
		if !errors.Is(err, ErrTooLarge) {
			t.Errorf("expected ErrTooLarge, got %v", err)
		}
	})
}

func TestFetchRejectsBadURLs(t *testing.T) {
	f := New(Config{})
	for _, u := range []string{"ftp://example.com/book.pdf", "file:///etc/passwd", "book.pdf", "http://", "://bad"} {
		t.Run(u, func(t *testing.T) {
			_, err := f.Fetch(context.Background(), u)
			var fe *FetchError
			if !errors.As(err, &fe) {
				t.Fatalf("expected *FetchError, got %v", err)
			}
			if fe.URL != u {
				t.Errorf("URL = %q, want %q", fe.URL, u)
			}
		})
	}
}

func TestFetchConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	_, err := New(Config{}).Fetch(context.Background(), addr+"/book.pdf")
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %v", err)
	}
	if fe.StatusCode != 0 {
		t.Errorf("StatusCode = %d, want 0", fe.StatusCode)
	}
}

func TestFetchTimeout(t *testing.T) {
	done := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-done:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(done)

	_, err := New(Config{Timeout: 50 * time.Millisecond}).Fetch(context.Background(), srv.URL)
	var fe *FetchError
	if !errors.As(err, &fe) {
		t.Fatalf("expected *FetchError, got %v", err)
	}
}

func TestFilenameFromURL(t *testing.T) {
	tests := []struct {
		url  string
		want string
	}{
		{"https://reseaudumieuxetre.ca/wp-content/uploads/2021/01/French-Canadian-Recipes-.pdf", "French-Canadian-Recipes-.pdf"},
		{"https://example.com/books/tourti%C3%A8re.pdf?dl=1#page=2", "tourtière.pdf"},
		{"https://example.com/books/", ""},
		{"https://example.com", ""},
		{"book.pdf", "book.pdf"},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := FilenameFromURL(tt.url); got != tt.want {
				t.Errorf("FilenameFromURL(%q) = %q, want %q", tt.url, got, tt.want)
			}
		})
	}
}
