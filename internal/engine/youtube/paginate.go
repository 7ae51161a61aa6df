package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Search filter parameters ("sp") accepted by the results page.
var filterParams = map[ItemType]string{
	TypeVideo:    "EgIQAQ==",
	TypeChannel:  "EgIQAg==",
	TypePlaylist: "EgIQAw==",
	TypeMovie:    "EgIQBA==",
}

var itemKinds = map[ItemType]NodeKind{
	TypeVideo:    KindVideo,
	TypeChannel:  KindChannel,
	TypePlaylist: KindPlaylist,
	TypeMovie:    KindMovie,
}

var defaultSearchKinds = NewKindSet(KindVideo, KindChannel)

// Validate rejects unknown item types.
func (o SearchOptions) Validate() error {
	if o.Type == "" {
		return nil
	}
	if _, ok := itemKinds[o.Type]; !ok {
		return fmt.Errorf("%w: unknown search type %q", ErrTubeSearch, o.Type)
	}
	return nil
}

// Kinds returns the renderer kinds a search with these options decodes.
func (o SearchOptions) Kinds() KindSet {
	if k, ok := itemKinds[o.Type]; ok {
		return NewKindSet(k)
	}
	if o.WithPlaylist {
		return defaultSearchKinds.With(KindPlaylist)
	}
	return defaultSearchKinds
}

// FilterParam returns the upstream filter for o.Type, or "".
func (o SearchOptions) FilterParam() string { return filterParams[o.Type] }

// Target is the starting point of a search pagination sequence.
type Target struct {
	Query   string
	Options SearchOptions
}

// Paginator runs single fetch+decode cycles. It holds no per-sequence state:
// everything needed to continue lives in the returned NextPage.
type Paginator struct {
	fetch      Fetcher
	defaultCtx json.RawMessage
}

// fallbackContext is used when NewPaginator is given no default context, so
// a non-empty token always travels with a client context.
var fallbackContext = json.RawMessage(`{"client":{"clientName":"WEB","clientVersion":"2.20250222.10.00","hl":"en","gl":"US"}}`)

// NewPaginator returns a Paginator that fetches through f. defaultCtx is the
// Innertube client context used when a page does not embed its own; an empty
// defaultCtx selects a minimal WEB client context.
func NewPaginator(f Fetcher, defaultCtx json.RawMessage) *Paginator {
	if len(bytes.TrimSpace(defaultCtx)) == 0 {
		defaultCtx = fallbackContext
	}
	return &Paginator{fetch: f, defaultCtx: defaultCtx}
}

// FirstPage fetches and decodes the first results page for t.
func (p *Paginator) FirstPage(ctx context.Context, t Target, limit int) (ResultPage, error) {
	const op = "search"
	if strings.TrimSpace(t.Query) == "" {
		return ResultPage{}, fmt.Errorf("%w: %s: query is required", ErrTubeSearch, op)
	}
	if err := t.Options.Validate(); err != nil {
		return ResultPage{}, err
	}
	raw, err := p.fetch.Fetch(ctx, Request{Kind: FetchSearch, Target: t.Query, Params: t.Options.FilterParam()})
	if err != nil {
		return ResultPage{}, err
	}
	emb := Locate(string(raw), BlobInitialData, BlobInnertubeContext)
	tree, err := emb.Require(op, BlobInitialData)
	if err != nil {
		return ResultPage{}, err
	}
	kinds := t.Options.Kinds()
	page := DecodePage(tree, kinds, limit, p.clientContext(emb))
	page.NextPage = route(page.NextPage, FetchSearch, kinds, emb.APIKey())
	return page, nil
}

// NextPage fetches and decodes the page that np points to. Calling it on a
// terminated NextPage is a DataExtractionError.
func (p *Paginator) NextPage(ctx context.Context, np NextPage, limit int) (ResultPage, error) {
	const op = "next page"
	if !np.HasMore() {
		return ResultPage{}, extractionErr(op, "continuation token is exhausted")
	}
	raw, err := p.fetch.Fetch(ctx, Request{Kind: FetchContinuation, Page: np})
	if err != nil {
		return ResultPage{}, err
	}
	if !gjson.ValidBytes(raw) {
		return ResultPage{}, extractionErr(op, "continuation response is not valid JSON")
	}
	kinds := np.Kinds
	if kinds == 0 {
		kinds = defaultSearchKinds
	}
	ctxRaw := np.Context
	if len(bytes.TrimSpace(ctxRaw)) == 0 {
		ctxRaw = p.defaultCtx
	}
	page := DecodePage(gjson.ParseBytes(raw), kinds, limit, ctxRaw)
	page.NextPage = route(page.NextPage, np.Source, kinds, np.APIKey)
	return page, nil
}

func (p *Paginator) clientContext(emb *Embedded) json.RawMessage {
	if c, ok := emb.Blob(BlobInnertubeContext); ok && c.IsObject() {
		return json.RawMessage(c.Raw)
	}
	return p.defaultCtx
}

// route stamps the fields the next fetch needs onto a non-terminal page.
func route(np NextPage, source FetchKind, kinds KindSet, apiKey string) NextPage {
	if !np.HasMore() {
		return np
	}
	np.Source = source
	np.Kinds = kinds
	np.APIKey = apiKey
	return np
}

// DecodePage decodes one search or continuation response: items of the
// given kinds in order, truncated to limit, plus the continuation computed
// from the whole tree.
func DecodePage(tree gjson.Result, kinds KindSet, limit int, ctx json.RawMessage) ResultPage {
	items := []SearchItem{}
	for n := range Walk(tree, kinds) {
		if item, ok := DecodeItem(n); ok {
			items = append(items, item)
		}
	}
	return ResultPage{
		Items:    truncate(items, limit),
		NextPage: ExtractContinuation(tree, ctx),
	}
}

func truncate(items []SearchItem, limit int) []SearchItem {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
