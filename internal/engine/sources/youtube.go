package sources

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"strings"

	"github.com/anatolykoptev/go_tube/internal/engine"
	"github.com/anatolykoptev/go_tube/internal/engine/youtube"
)

// YouTube web and Innertube transport. Pages are fetched as HTML; continuations
// are POSTed to the Innertube endpoint that issued the token.

const (
	ytBaseURL       = "https://www.youtube.com"
	ytWebVersion    = "2.20250222.10.00"
	ytMaxJSONBytes  = 3 * 1024 * 1024
	ytConsentCookie = "SOCS=CAI; CONSENT=YES+cb"
)

type ytWebClientCtx struct {
	ClientName    string `json:"clientName"`
	ClientVersion string `json:"clientVersion"`
	VisitorData   string `json:"visitorData,omitempty"`
	Hl            string `json:"hl,omitempty"`
	Gl            string `json:"gl,omitempty"`
}

type ytWebUser struct {
	EnableSafetyMode bool `json:"enableSafetyMode"`
}

type ytWebReqCtx struct {
	UseSsl bool `json:"useSsl"`
}

// generateVisitorData creates a random 11-char visitor ID for Innertube requests.
func generateVisitorData() string {
	const chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789-_"
	b := make([]byte, 11)
	for i := range b {
		b[i] = chars[rand.Intn(len(chars))] //nolint:gosec // non-cryptographic use
	}
	return string(b)
}

// ytWebContext builds the standard WEB client context for Innertube payloads.
func ytWebContext(visitorData string) map[string]any {
	return map[string]any{
		"client": ytWebClientCtx{
			ClientName:    "WEB",
			ClientVersion: clientVersion(),
			VisitorData:   visitorData,
			Hl:            orDefault(engine.Cfg.Language, "en"),
			Gl:            orDefault(engine.Cfg.Region, "US"),
		},
		"user":    ytWebUser{EnableSafetyMode: false},
		"request": ytWebReqCtx{UseSsl: true},
	}
}

// DefaultYouTubeContext is the client context sent with continuations of
// pages that did not embed their own INNERTUBE_CONTEXT.
func DefaultYouTubeContext() json.RawMessage {
	data, err := json.Marshal(ytWebContext(generateVisitorData()))
	if err != nil {
		return json.RawMessage(`{"client":{"clientName":"WEB","clientVersion":"` + ytWebVersion + `"}}`)
	}
	return data
}

// FetchError is a transport failure. StatusCode is 0 when no response was
// received.
type FetchError struct {
	Kind       youtube.FetchKind
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("youtube %s %s: HTTP %d: %v", e.Kind, e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("youtube %s %s: %v", e.Kind, e.URL, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// YouTubeFetcher implements youtube.Fetcher against youtube.com.
type YouTubeFetcher struct {
	baseURL string
}

// NewYouTubeFetcher returns a fetcher for engine.Cfg.YouTubeBaseURL
// (youtube.com when unset).
func NewYouTubeFetcher() *YouTubeFetcher {
	return &YouTubeFetcher{baseURL: strings.TrimRight(orDefault(engine.Cfg.YouTubeBaseURL, ytBaseURL), "/")}
}

// Fetch performs one upstream request.
func (f *YouTubeFetcher) Fetch(ctx context.Context, req youtube.Request) ([]byte, error) {
	switch req.Kind {
	case youtube.FetchSearch:
		q := url.Values{}
		q.Set("search_query", req.Target)
		if req.Params != "" {
			q.Set("sp", req.Params)
		}
		return f.page(ctx, req.Kind, "/results?"+q.Encode())
	case youtube.FetchVideo:
		return f.page(ctx, req.Kind, "/watch?"+url.Values{"v": {req.Target}}.Encode())
	case youtube.FetchPlaylist:
		return f.page(ctx, req.Kind, "/playlist?"+url.Values{"list": {req.Target}}.Encode())
	case youtube.FetchContinuation:
		return f.continuation(ctx, req.Page)
	}
	return nil, fmt.Errorf("youtube: unsupported fetch kind %q", req.Kind)
}

func (f *YouTubeFetcher) page(ctx context.Context, kind youtube.FetchKind, pathQuery string) ([]byte, error) {
	pageURL := f.baseURL + pathQuery
	body, err := engine.FetchPage(ctx, pageURL, map[string]string{
		"Accept-Language": acceptLanguage(),
		"Cookie":          ytConsentCookie,
	})
	if err != nil {
		ferr := &FetchError{Kind: kind, URL: pageURL, Err: err}
		var serr *engine.StatusError
		if errors.As(err, &serr) {
			ferr.StatusCode = serr.StatusCode
		}
		return nil, ferr
	}
	slog.Debug("youtube: page fetched", slog.String("path", pathQuery), slog.Int("bytes", len(body)))
	return body, nil
}

// continuationEndpoint maps the family that issued a token to the Innertube
// endpoint that accepts it.
func continuationEndpoint(source youtube.FetchKind) string {
	switch source {
	case youtube.FetchPlaylist:
		return "browse"
	case youtube.FetchVideo:
		return "next"
	}
	return "search"
}

// continuationBody builds the POST payload with ctxRaw spliced in verbatim.
func continuationBody(ctxRaw json.RawMessage, token string) ([]byte, error) {
	tok, err := json.Marshal(token)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(`{"context":`)
	buf.Write(ctxRaw)
	buf.WriteString(`,"continuation":`)
	buf.Write(tok)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (f *YouTubeFetcher) continuation(ctx context.Context, np youtube.NextPage) ([]byte, error) {
	ctxRaw := np.Context
	if len(bytes.TrimSpace(ctxRaw)) == 0 {
		ctxRaw = DefaultYouTubeContext()
	}
	body, err := continuationBody(ctxRaw, np.Token)
	if err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("prettyPrint", "false")
	if np.APIKey != "" {
		q.Set("key", np.APIKey)
	}
	endpoint := f.baseURL + "/youtubei/v1/" + continuationEndpoint(np.Source) + "?" + q.Encode()

	engine.IncrFetch()
	visitorData := generateVisitorData()
	resp, err := engine.RetryHTTP(ctx, engine.DefaultRetryConfig, func() (*http.Response, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "*/*")
		req.Header.Set("Accept-Language", acceptLanguage())
		req.Header.Set("User-Agent", engine.UserAgentChrome)
		req.Header.Set("X-Youtube-Client-Name", "1")
		req.Header.Set("X-Youtube-Client-Version", clientVersion())
		req.Header.Set("X-Goog-Visitor-Id", visitorData)
		req.Header.Set("Origin", "https://www.youtube.com")
		req.Header.Set("Referer", "https://www.youtube.com/")
		return engine.Cfg.HTTPClient.Do(req)
	})
	if err != nil {
		engine.IncrFetchError()
		return nil, &FetchError{Kind: youtube.FetchContinuation, URL: endpoint, Err: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		engine.IncrFetchError()
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		return nil, &FetchError{
			Kind:       youtube.FetchContinuation,
			URL:        endpoint,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("innertube %s: %s", continuationEndpoint(np.Source), snippet),
		}
	}
	return io.ReadAll(io.LimitReader(resp.Body, ytMaxJSONBytes))
}

func clientVersion() string { return orDefault(engine.Cfg.ClientVersion, ytWebVersion) }

func acceptLanguage() string {
	lang := orDefault(engine.Cfg.Language, "en")
	return lang + ",en;q=0.9"
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
