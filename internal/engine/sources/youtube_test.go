package sources

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/anatolykoptev/go_tube/internal/engine/youtube"
	"github.com/tidwall/gjson"
)

type recorded struct {
	method string
	path   string
	query  map[string]string
	header http.Header
	body   string
}

// newTestServer serves fixed bodies per path and records every request.
func newTestServer(t *testing.T, status int, bodies map[string]string) (*httptest.Server, func() []recorded) {
	t.Helper()
	var mu sync.Mutex
	var reqs []recorded
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		q := map[string]string{}
		for k, v := range r.URL.Query() {
			q[k] = v[0]
		}
		mu.Lock()
		reqs = append(reqs, recorded{method: r.Method, path: r.URL.Path, query: q, header: r.Header.Clone(), body: string(b)})
		mu.Unlock()
		w.WriteHeader(status)
		_, _ = io.WriteString(w, bodies[r.URL.Path])
	}))
	t.Cleanup(srv.Close)

	engine.Init(engine.Config{
		YouTubeBaseURL: srv.URL,
		Language:       "de",
		Region:         "DE",
		HTTPClient:     srv.Client(),
		FetchTimeout:   5 * time.Second,
	})
	return srv, func() []recorded {
		mu.Lock()
		defer mu.Unlock()
		return append([]recorded(nil), reqs...)
	}
}

func TestYouTubeFetcherPages(t *testing.T) {
	_, requests := newTestServer(t, http.StatusOK, map[string]string{
		"/results":  "<html>results</html>",
		"/watch":    "<html>watch</html>",
		"/playlist": "<html>playlist</html>",
	})
	f := NewYouTubeFetcher()
	ctx := context.Background()

	body, err := f.Fetch(ctx, youtube.Request{Kind: youtube.FetchSearch, Target: "go generics", Params: "EgIQAQ=="})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if string(body) != "<html>results</html>" {
		t.Errorf("search body = %q", body)
	}
	if _, err := f.Fetch(ctx, youtube.Request{Kind: youtube.FetchVideo, Target: "dQw4w9WgXcQ"}); err != nil {
		t.Fatalf("video: %v", err)
	}
	if _, err := f.Fetch(ctx, youtube.Request{Kind: youtube.FetchPlaylist, Target: "PL123"}); err != nil {
		t.Fatalf("playlist: %v", err)
	}

	reqs := requests()
	if len(reqs) != 3 {
		t.Fatalf("got %d requests, want 3", len(reqs))
	}
	if reqs[0].query["search_query"] != "go generics" || reqs[0].query["sp"] != "EgIQAQ==" {
		t.Errorf("search query = %v", reqs[0].query)
	}
	if reqs[1].path != "/watch" || reqs[1].query["v"] != "dQw4w9WgXcQ" {
		t.Errorf("video request = %s %v", reqs[1].path, reqs[1].query)
	}
	if reqs[2].path != "/playlist" || reqs[2].query["list"] != "PL123" {
		t.Errorf("playlist request = %s %v", reqs[2].path, reqs[2].query)
	}
	for _, r := range reqs {
		if r.method != http.MethodGet {
			t.Errorf("%s: method %s, want GET", r.path, r.method)
		}
		if !strings.HasPrefix(r.header.Get("Accept-Language"), "de") {
			t.Errorf("%s: Accept-Language = %q", r.path, r.header.Get("Accept-Language"))
		}
		if r.header.Get("Cookie") == "" {
			t.Errorf("%s: consent cookie missing", r.path)
		}
	}
}

func TestYouTubeFetcherContinuation(t *testing.T) {
	_, requests := newTestServer(t, http.StatusOK, map[string]string{
		"/youtubei/v1/search": `{"onResponseReceivedCommands":[]}`,
		"/youtubei/v1/browse": `{"onResponseReceivedActions":[]}`,
	})
	f := NewYouTubeFetcher()
	ctxRaw := `{ "client": {"clientName": "WEB", "clientVersion": "2.x"},  "z": [1] }`

	body, err := f.Fetch(context.Background(), youtube.Request{
		Kind: youtube.FetchContinuation,
		Page: youtube.NextPage{Token: `tok"en`, Context: json.RawMessage(ctxRaw), APIKey: "k1", Source: youtube.FetchSearch},
	})
	if err != nil {
		t.Fatalf("continuation: %v", err)
	}
	if !gjson.ValidBytes(body) {
		t.Errorf("body is not JSON: %q", body)
	}

	_, err = f.Fetch(context.Background(), youtube.Request{
		Kind: youtube.FetchContinuation,
		Page: youtube.NextPage{Token: "p", Context: json.RawMessage(ctxRaw), Source: youtube.FetchPlaylist},
	})
	if err != nil {
		t.Fatalf("playlist continuation: %v", err)
	}

	reqs := requests()
	if len(reqs) != 2 {
		t.Fatalf("got %d requests, want 2", len(reqs))
	}
	first := reqs[0]
	if first.method != http.MethodPost || first.path != "/youtubei/v1/search" {
		t.Errorf("first request = %s %s", first.method, first.path)
	}
	if first.query["key"] != "k1" || first.query["prettyPrint"] != "false" {
		t.Errorf("query = %v", first.query)
	}
	wantBody := `{"context":` + ctxRaw + `,"continuation":"tok\"en"}`
	if first.body != wantBody {
		t.Errorf("body = %s\nwant %s", first.body, wantBody)
	}
	if first.header.Get("X-Youtube-Client-Name") != "1" {
		t.Errorf("missing client name header")
	}
	if reqs[1].path != "/youtubei/v1/browse" {
		t.Errorf("playlist continuation went to %s", reqs[1].path)
	}
	if _, ok := reqs[1].query["key"]; ok {
		t.Errorf("empty API key should not be sent")
	}
}

func TestYouTubeFetcherDefaultContext(t *testing.T) {
	_, requests := newTestServer(t, http.StatusOK, map[string]string{"/youtubei/v1/search": `{}`})
	if _, err := NewYouTubeFetcher().Fetch(context.Background(), youtube.Request{
		Kind: youtube.FetchContinuation,
		Page: youtube.NextPage{Token: "t"},
	}); err != nil {
		t.Fatalf("continuation: %v", err)
	}
	body := gjson.Parse(requests()[0].body)
	if got := body.Get("context.client.clientName").String(); got != "WEB" {
		t.Errorf("clientName = %q", got)
	}
	if got := body.Get("context.client.hl").String(); got != "de" {
		t.Errorf("hl = %q, want de", got)
	}
	if got := body.Get("context.client.gl").String(); got != "DE" {
		t.Errorf("gl = %q, want DE", got)
	}
}

func TestYouTubeFetcherErrors(t *testing.T) {
	newTestServer(t, http.StatusNotFound, map[string]string{"/watch": "gone"})
	f := NewYouTubeFetcher()

	requests := []youtube.Request{
		{Kind: youtube.FetchVideo, Target: "x"},
		{Kind: youtube.FetchContinuation, Page: youtube.NextPage{Token: "t"}},
	}
	for _, req := range requests {
		_, err := f.Fetch(context.Background(), req)
		if err == nil {
			t.Fatalf("%s: expected error on 404", req.Kind)
		}
		var ferr *FetchError
		if !errors.As(err, &ferr) {
			t.Fatalf("%s: error %T is not a *FetchError: %v", req.Kind, err, err)
		}
		if ferr.StatusCode != http.StatusNotFound {
			t.Errorf("%s: StatusCode = %d, want 404", req.Kind, ferr.StatusCode)
		}
		if ferr.Kind != req.Kind {
			t.Errorf("Kind = %q, want %q", ferr.Kind, req.Kind)
		}
		if errors.Is(err, youtube.ErrTubeSearch) {
			t.Errorf("%s: transport error must not wrap ErrTubeSearch", req.Kind)
		}
	}
	if _, err := f.Fetch(context.Background(), youtube.Request{Kind: "bogus"}); err == nil {
		t.Error("expected error on unknown kind")
	}
}

func TestContinuationEndpoint(t *testing.T) {
	tests := map[youtube.FetchKind]string{
		youtube.FetchSearch:   "search",
		"":                    "search",
		youtube.FetchPlaylist: "browse",
		youtube.FetchVideo:    "next",
	}
	for src, want := range tests {
		if got := continuationEndpoint(src); got != want {
			t.Errorf("continuationEndpoint(%q) = %q, want %q", src, got, want)
		}
	}
}
