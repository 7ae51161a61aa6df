package engine

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func initFetchTest(t *testing.T, h http.HandlerFunc) string {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	Init(Config{HTTPClient: srv.Client(), FetchTimeout: 10 * time.Second})
	return srv.URL
}

func TestFetchPageRetriesTransientStatus(t *testing.T) {
	var calls atomic.Int32
	u := initFetchTest(t, func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		if r.Header.Get("X-Test") != "1" {
			t.Errorf("custom header not applied")
		}
		_, _ = w.Write([]byte("<html>ok</html>"))
	})

	body, err := FetchPage(context.Background(), u, map[string]string{"X-Test": "1"})
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	if string(body) != "<html>ok</html>" {
		t.Errorf("body = %q", body)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestFetchPagePermanentStatus(t *testing.T) {
	var calls atomic.Int32
	u := initFetchTest(t, func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "no such video", http.StatusNotFound)
	})

	_, err := FetchPage(context.Background(), u, nil)
	var serr *StatusError
	if !errors.As(err, &serr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if serr.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d", serr.StatusCode)
	}
	if calls.Load() != 1 {
		t.Errorf("404 was retried: calls = %d", calls.Load())
	}
}

func TestFetchPageGzip(t *testing.T) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, _ = gz.Write([]byte("compressed page"))
	_ = gz.Close()

	u := initFetchTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Encoding", "gzip")
		_, _ = w.Write(buf.Bytes())
	})

	body, err := FetchPage(context.Background(), u, nil)
	if err != nil {
		t.Fatalf("FetchPage: %v", err)
	}
	if string(body) != "compressed page" {
		t.Errorf("body = %q", body)
	}
}

func TestFetchPageCountsErrors(t *testing.T) {
	u := initFetchTest(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})
	before := metrics.FetchErrors.Load()
	if _, err := FetchPage(context.Background(), u, nil); err == nil {
		t.Fatal("expected error")
	}
	if metrics.FetchErrors.Load() != before+1 {
		t.Error("fetch error not counted")
	}
}
